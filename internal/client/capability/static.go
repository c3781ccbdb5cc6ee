package capability

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// StaticLocator always reports the same position, e.g. one set in config.
type StaticLocator struct {
	Position Position
}

func (l StaticLocator) CurrentPosition(ctx context.Context) (Position, error) {
	if err := ctx.Err(); err != nil {
		return Position{}, err
	}
	return l.Position, nil
}

// WriterSpeaker "speaks" by printing to w. A terminal has no audio.
type WriterSpeaker struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterSpeaker(w io.Writer) *WriterSpeaker {
	return &WriterSpeaker{w: w}
}

func (s *WriterSpeaker) Speak(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.w, "🔊 %s\n", text)
	return err
}
