package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"sync"
)

// FFmpeg decodes files to PCM by running an ffmpeg binary.
type FFmpeg struct {
	Path string
}

// Open starts ffmpeg on path. The process is killed when ctx is cancelled or
// the returned stream is closed.
func (f *FFmpeg) Open(ctx context.Context, path string) (PCM, error) {
	bin := f.Path
	if bin == "" {
		bin = "ffmpeg"
	}

	cmd := exec.CommandContext(ctx, bin,
		"-i", path,
		"-f", "s16le",
		"-ar", strconv.Itoa(SampleRate),
		"-ac", strconv.Itoa(Channels),
		"-loglevel", "warning",
		"pipe:1",
	)

	reader, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe error: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("command start error: %w", err)
	}

	return &ffmpegStream{cmd: cmd, reader: reader}, nil
}

type ffmpegStream struct {
	cmd    *exec.Cmd
	reader io.ReadCloser

	once sync.Once
	err  error
}

func (s *ffmpegStream) Read(p []byte) (int, error) {
	return s.reader.Read(p)
}

// Close stops ffmpeg if it is still running and reaps it. A process that was
// killed by Close is not reported as an error.
func (s *ffmpegStream) Close() error {
	s.once.Do(func() {
		s.reader.Close()
		err := s.cmd.Wait()
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && !exitErr.Exited() {
			err = nil
		}
		if err != nil {
			s.err = fmt.Errorf("ffmpeg: %w", err)
		}
	})
	return s.err
}
