package player

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/keshon/voicebot/internal/logger"
	"github.com/keshon/voicebot/internal/music/stream"
)

var ErrNoTrackPlaying = errors.New("no track is currently playing")

// Opener starts decoding the file at path.
type Opener interface {
	Open(ctx context.Context, path string) (stream.PCM, error)
}

// PlayFunc drives a decoded stream into a sink until it ends or ctx is done.
type PlayFunc func(ctx context.Context, pcm stream.PCM, sink stream.Sink) error

// Player plays one file at a time into a voice connection.
type Player struct {
	mu      sync.Mutex
	opener  Opener
	play    PlayFunc
	current string
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a Player decoding with opener and streaming with stream.Play.
func New(opener Opener) *Player {
	return &Player{opener: opener, play: stream.Play}
}

// WithPlayFunc replaces the streaming function.
func (p *Player) WithPlayFunc(fn PlayFunc) *Player {
	p.play = fn
	return p
}

// Play stops the current track, if any, and starts streaming path into sink.
// It returns once the decoder is running; streaming continues in the
// background.
func (p *Player) Play(path string, sink stream.Sink) error {
	_ = p.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	pcm, err := p.opener.Open(ctx, path)
	if err != nil {
		cancel()
		return fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}

	done := make(chan struct{})
	name := filepath.Base(path)

	p.mu.Lock()
	prevCancel, prevDone := p.cancel, p.done
	p.current = name
	p.cancel = cancel
	p.done = done
	p.mu.Unlock()

	// A concurrent Play may have started a track since Stop above.
	if prevCancel != nil {
		prevCancel()
		<-prevDone
	}

	logger.Debugf("[Player] Starting track %q", name)
	go func() {
		defer close(done)
		defer cancel()

		if err := p.play(ctx, pcm, sink); err != nil {
			logger.Errorf("[Player] Playback error for track %q: %v", name, err)
		} else {
			logger.Debugf("[Player] Playback of %q finished", name)
		}

		p.mu.Lock()
		if p.done == done {
			p.current = ""
			p.cancel = nil
			p.done = nil
		}
		p.mu.Unlock()
	}()

	return nil
}

// Stop cancels the current track and waits for its goroutine to finish.
func (p *Player) Stop() error {
	p.mu.Lock()
	cancel, done, name := p.cancel, p.done, p.current
	p.mu.Unlock()

	if cancel == nil {
		return ErrNoTrackPlaying
	}

	cancel()
	<-done
	logger.Debugf("[Player] Stopped track %q", name)
	return nil
}

// IsPlaying reports whether a track is streaming.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done != nil
}

// Current returns the name of the file being played, or "".
func (p *Player) Current() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}
