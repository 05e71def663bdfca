// Package player streams remote MP3 audio through the system speaker.
//
// Remote files are fetched into a temporary file before decoding so the
// decoder can seek; progressive streaming would make SeekTo unreliable on
// VBR files.
package player

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

const fetchUserAgent = "tapedeck/0.1 (https://github.com/llehouerou/tapedeck)"

// Player is safe for concurrent use: the session and the desktop media
// controls drive it from different goroutines.
type Player struct {
	mu         sync.Mutex
	state      State
	ctrl       *beep.Ctrl
	streamer   beep.StreamSeekCloser
	format     beep.Format
	file       *os.File
	finishedCh chan struct{}

	httpClient *http.Client
}

func New() *Player {
	return &Player{
		state:      Stopped,
		finishedCh: make(chan struct{}, 1),
		httpClient: &http.Client{},
	}
}

var speakerInitialized bool

// Play stops any current playback, fetches the given URL and starts playing
// it from the beginning.
func (p *Player) Play(url string) error {
	p.Stop()

	// Fetch and decode without the lock so state queries stay responsive
	// during the download.
	f, err := p.fetch(url)
	if err != nil {
		return err
	}

	streamer, format, err := decodeMP3(f)
	if err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("decode %s: %w", url, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// A concurrent Play may have started something while we were fetching.
	p.stopLocked()

	if !speakerInitialized {
		err = speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10))
		if err != nil {
			streamer.Close()
			os.Remove(f.Name())
			return err
		}
		speakerInitialized = true
	}

	p.file = f
	p.streamer = streamer
	p.format = format
	p.ctrl = &beep.Ctrl{Streamer: streamer, Paused: false}
	p.state = Playing

	finished := p.finishedCh
	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		select {
		case finished <- struct{}{}:
		default:
		}
	})))

	return nil
}

// fetch downloads the URL into a temporary file and rewinds it.
func (p *Player) fetch(url string) (*os.File, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	f, err := os.CreateTemp("", "tapedeck-*.mp3")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("download %s: %w", url, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, err
	}
	return f, nil
}

func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Player) stopLocked() {
	if p.state == Stopped {
		return
	}

	speaker.Clear()

	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	if p.file != nil {
		os.Remove(p.file.Name())
		p.file = nil
	}

	p.ctrl = nil
	p.state = Stopped

	// Drop a pending finished signal from the cleared streamer.
	select {
	case <-p.finishedCh:
	default:
	}
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Playing || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.state = Paused
}

func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Paused || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	p.state = Playing
}

func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.format.SampleRate.D(p.streamer.Position())
	speaker.Unlock()
	return pos
}

func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

// SeekTo jumps to an absolute position, clamped to the track bounds.
func (p *Player) SeekTo(pos time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return
	}
	if pos < 0 {
		pos = 0
	}

	speaker.Lock()
	sample := p.format.SampleRate.N(pos)
	if max := p.streamer.Len(); sample > max {
		sample = max
	}
	p.streamer.Seek(sample)
	speaker.Unlock()
}

// FinishedChan signals when a track plays to its natural end. Stopping or
// replacing a track does not signal.
func (p *Player) FinishedChan() <-chan struct{} {
	return p.finishedCh
}

func (p *Player) Close() error {
	p.Stop()
	return nil
}
