package player

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStateString(t *testing.T) {
	assert.Equal(t, "Stopped", Stopped.String())
	assert.Equal(t, "Playing", Playing.String())
	assert.Equal(t, "Paused", Paused.String())
	assert.Equal(t, "Unknown", State(9).String())
}

func TestStateIsActive(t *testing.T) {
	assert.False(t, Stopped.IsActive())
	assert.True(t, Playing.IsActive())
	assert.True(t, Paused.IsActive())
}

func TestMockPlayResetsPosition(t *testing.T) {
	m := NewMock()
	m.SetPosition(42 * time.Second)

	err := m.Play("https://archive.org/download/gd1977/t01.mp3")

	assert.NoError(t, err)
	assert.Equal(t, Playing, m.State())
	assert.Equal(t, time.Duration(0), m.Position())
	assert.Equal(t, []string{"https://archive.org/download/gd1977/t01.mp3"}, m.PlayCalls())
}

func TestMockPauseResume(t *testing.T) {
	m := NewMock()
	assert.NoError(t, m.Play("url"))

	m.Pause()
	assert.Equal(t, Paused, m.State())

	m.Resume()
	assert.Equal(t, Playing, m.State())

	// Pause is a no-op when stopped
	m.Stop()
	m.Pause()
	assert.Equal(t, Stopped, m.State())
}

func TestMockSimulateFinished(t *testing.T) {
	m := NewMock()
	assert.NoError(t, m.Play("url"))

	m.SimulateFinished()

	assert.Equal(t, Stopped, m.State())
	select {
	case <-m.FinishedChan():
	default:
		t.Fatal("finished channel should have a pending signal")
	}

	// A second finish without a receiver must not block.
	m.SimulateFinished()
	m.SimulateFinished()
}
