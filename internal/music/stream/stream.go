// Package stream turns a local audio file into opus frames on a Discord voice
// connection: ffmpeg decodes to PCM, gopus encodes, the connection sends.
package stream

import (
	"context"
	"errors"
	"io"

	"golang.org/x/sync/errgroup"
)

const (
	Channels   = 2
	SampleRate = 48000
	FrameSize  = 960 // 20ms at 48kHz

	// frameBuffer is how many encoded frames may wait between the encoder
	// and the voice connection.
	frameBuffer = 16
)

// PCM is a stream of 48kHz stereo signed 16-bit little-endian samples.
type PCM interface {
	io.Reader
	Close() error
}

// Sink receives opus frames. *discordgo.VoiceConnection satisfies it through
// the voice package adapter.
type Sink interface {
	Speaking(bool) error
	Frames() chan<- []byte
}

// Play encodes pcm and sends it to sink until the stream ends or ctx is
// cancelled. pcm is closed before Play returns. Cancellation is not an error.
func Play(ctx context.Context, pcm PCM, sink Sink) error {
	g, gctx := errgroup.WithContext(ctx)
	frames := make(chan []byte, frameBuffer)

	g.Go(func() error {
		defer close(frames)
		err := Encode(gctx, pcm, frames)
		if cerr := pcm.Close(); err == nil && gctx.Err() == nil {
			err = cerr
		}
		return err
	})
	g.Go(func() error {
		return Send(gctx, frames, sink)
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return nil
	}
	return err
}
