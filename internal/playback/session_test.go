package playback

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/llehouerou/tapedeck/internal/player"
	"github.com/llehouerou/tapedeck/internal/tracks"
)

func testTracks() []tracks.Track {
	return []tracks.Track{
		{Title: "Bertha", URL: "https://example.org/d/1.mp3", Length: 245, ShowIdentifier: "gd1971"},
		{Title: "Loser", URL: "https://example.org/d/2.mp3", Length: 310, ShowIdentifier: "gd1971"},
		{Title: "Deal", URL: "https://example.org/d/3.mp3", Length: 280, ShowIdentifier: "gd1971"},
	}
}

func newTestSession() (*Session, *player.Mock) {
	mock := player.NewMock()
	return NewSession(mock), mock
}

func TestOpen_StartsAtIndex(t *testing.T) {
	s, mock := newTestSession()

	if err := s.Open(testTracks(), 1); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if got := mock.PlayCalls(); len(got) != 1 || got[0] != "https://example.org/d/2.mp3" {
		t.Errorf("PlayCalls = %v", got)
	}
	if s.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex = %d, want 1", s.CurrentIndex())
	}
	if s.State() != StatePlaying {
		t.Errorf("State = %v, want Playing", s.State())
	}
}

func TestOpen_OutOfRangeIsNoop(t *testing.T) {
	s, mock := newTestSession()

	if err := s.Open(testTracks(), 5); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if len(mock.PlayCalls()) != 0 {
		t.Errorf("PlayCalls = %v, want none", mock.PlayCalls())
	}
	if s.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex = %d, want -1", s.CurrentIndex())
	}
}

func TestNext_AdvancesWithoutWrapping(t *testing.T) {
	s, mock := newTestSession()
	s.Open(testTracks(), 2)

	if err := s.Next(); err != nil {
		t.Fatalf("Next failed: %v", err)
	}

	if s.CurrentIndex() != 2 {
		t.Errorf("CurrentIndex = %d, want 2 (no wrap past end)", s.CurrentIndex())
	}
	if len(mock.PlayCalls()) != 1 {
		t.Errorf("Next at end should not replay, PlayCalls = %v", mock.PlayCalls())
	}

	s.SelectTrack(0)
	s.Next()
	if s.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex = %d, want 1", s.CurrentIndex())
	}
}

func TestPrevious_StopsAtHead(t *testing.T) {
	s, _ := newTestSession()
	s.Open(testTracks(), 0)

	if err := s.Previous(); err != nil {
		t.Fatalf("Previous failed: %v", err)
	}

	if s.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex = %d, want 0 (no wrap before head)", s.CurrentIndex())
	}
}

func TestToggle_PauseResume(t *testing.T) {
	s, mock := newTestSession()
	s.Open(testTracks(), 0)

	s.Toggle()
	if mock.State() != player.Paused {
		t.Fatalf("state after first toggle = %v, want Paused", mock.State())
	}

	s.Toggle()
	if mock.State() != player.Playing {
		t.Fatalf("state after second toggle = %v, want Playing", mock.State())
	}
}

func TestToggle_RestartsStoppedTrack(t *testing.T) {
	s, mock := newTestSession()
	s.Open(testTracks(), 1)
	mock.SetState(player.Stopped)

	if err := s.Toggle(); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}

	calls := mock.PlayCalls()
	if len(calls) != 2 || calls[1] != "https://example.org/d/2.mp3" {
		t.Errorf("PlayCalls = %v, want current track replayed", calls)
	}
}

func TestToggle_NoTrackIsNoop(t *testing.T) {
	s, mock := newTestSession()

	if err := s.Toggle(); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if len(mock.PlayCalls()) != 0 {
		t.Errorf("PlayCalls = %v, want none", mock.PlayCalls())
	}
}

func TestSeek_TargetsFractionOfDuration(t *testing.T) {
	s, mock := newTestSession()
	s.Open(testTracks(), 0) // 245s

	s.Seek(0.5)

	calls := mock.SeekCalls()
	if len(calls) != 1 {
		t.Fatalf("SeekCalls = %v, want one", calls)
	}
	want := time.Duration(0.5 * float64(245*time.Second))
	if calls[0] != want {
		t.Errorf("seek position = %v, want %v", calls[0], want)
	}
}

func TestSeek_UnknownDurationIsNoop(t *testing.T) {
	s, mock := newTestSession()
	list := []tracks.Track{{Title: "Space", URL: "https://example.org/d/s.mp3", Length: 0}}
	s.Open(list, 0)

	s.Seek(0.5)

	if len(mock.SeekCalls()) != 0 {
		t.Errorf("SeekCalls = %v, want none for unknown duration", mock.SeekCalls())
	}
}

func TestSeek_ClampsFraction(t *testing.T) {
	s, mock := newTestSession()
	s.Open(testTracks(), 0)

	s.Seek(1.5)
	s.Seek(-0.2)

	calls := mock.SeekCalls()
	if len(calls) != 2 {
		t.Fatalf("SeekCalls = %v", calls)
	}
	if calls[0] != 245*time.Second || calls[1] != 0 {
		t.Errorf("clamped seeks = %v, want [245s 0s]", calls)
	}
}

func TestOnTrackFinished_AdvancesThenStops(t *testing.T) {
	s, mock := newTestSession()
	s.Open(testTracks(), 1)

	if err := s.OnTrackFinished(); err != nil {
		t.Fatalf("OnTrackFinished failed: %v", err)
	}
	if s.CurrentIndex() != 2 {
		t.Fatalf("CurrentIndex = %d, want 2", s.CurrentIndex())
	}

	if err := s.OnTrackFinished(); err != nil {
		t.Fatalf("OnTrackFinished failed: %v", err)
	}
	if s.State() != StateStopped {
		t.Errorf("State = %v, want Stopped after final track", s.State())
	}
	if s.CurrentIndex() != 2 {
		t.Errorf("CurrentIndex = %d, selection should survive the stop", s.CurrentIndex())
	}
	if got := mock.State(); got != player.Stopped {
		t.Errorf("player state = %v, want Stopped", got)
	}
}

func TestOnTimeUpdate_ForwardsToSubscribers(t *testing.T) {
	s, _ := newTestSession()
	s.Open(testTracks(), 0)
	sub := s.Subscribe()

	s.OnTimeUpdate(30*time.Second, 250*time.Second)

	select {
	case e := <-sub.PositionChanged:
		if e.Position != 30*time.Second || e.Duration != 250*time.Second {
			t.Errorf("event = %+v", e)
		}
	default:
		t.Fatal("no PositionChange event")
	}
	if s.Position() != 30*time.Second {
		t.Errorf("Position = %v", s.Position())
	}
	if s.Duration() != 250*time.Second {
		t.Errorf("Duration = %v", s.Duration())
	}
}

func TestOnTimeUpdate_ZeroDurationKeepsManifestValue(t *testing.T) {
	s, _ := newTestSession()
	s.Open(testTracks(), 0)

	s.OnTimeUpdate(10*time.Second, 0)

	if s.Duration() != 245*time.Second {
		t.Errorf("Duration = %v, want manifest 245s", s.Duration())
	}
}

func TestSelectTrack_EmitsTrackChange(t *testing.T) {
	s, _ := newTestSession()
	s.Open(testTracks(), 0)
	sub := s.Subscribe()

	s.SelectTrack(2)

	select {
	case e := <-sub.TrackChanged:
		if e.Index != 2 || e.Current == nil || e.Current.Title != "Deal" {
			t.Errorf("event = %+v", e)
		}
		if e.PreviousIndex != 0 {
			t.Errorf("PreviousIndex = %d, want 0", e.PreviousIndex)
		}
	default:
		t.Fatal("no TrackChange event")
	}
}

func TestPlayError_EmitsErrorEvent(t *testing.T) {
	s, mock := newTestSession()
	sub := s.Subscribe()
	mock.SetPlayError(errors.New("boom"))

	err := s.Open(testTracks(), 0)
	if err == nil {
		t.Fatal("expected error from failing player")
	}

	select {
	case e := <-sub.Error:
		if e.Operation != "play" || e.URL != "https://example.org/d/1.mp3" {
			t.Errorf("event = %+v", e)
		}
	default:
		t.Fatal("no ErrorEvent")
	}
}

// The UI update loop and the D-Bus media controls drive the same session from
// different goroutines; run the whole control surface concurrently and check
// the session lands in a coherent state. Run with -race.
func TestControl_ConcurrentGoroutines(t *testing.T) {
	s, mock := newTestSession()
	s.Open(testTracks(), 0)

	ops := []func(){
		func() { s.Toggle() },
		func() { s.Next() },
		func() { s.Previous() },
		func() { s.SelectTrack(1) },
		func() { s.Seek(0.5) },
		func() { s.OnTimeUpdate(time.Second, 0) },
		func() { _ = s.State() },
		func() { _ = s.Position() },
		func() { _ = s.CurrentTrack() },
	}

	var wg sync.WaitGroup
	for _, op := range ops {
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				op()
			}()
		}
	}
	wg.Wait()

	if idx := s.CurrentIndex(); idx < 0 || idx >= len(testTracks()) {
		t.Errorf("CurrentIndex = %d, want a valid track index", idx)
	}
	if got := mock.State(); got != player.Playing && got != player.Paused && got != player.Stopped {
		t.Errorf("player state = %v, not a known state", got)
	}
}

func TestClose_ClosesSubscriptions(t *testing.T) {
	s, mock := newTestSession()
	s.Open(testTracks(), 0)
	sub := s.Subscribe()

	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	select {
	case <-sub.Done:
	default:
		t.Error("subscription not closed")
	}
	if mock.State() != player.Stopped {
		t.Errorf("player state = %v, want Stopped", mock.State())
	}

	if err := s.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}
