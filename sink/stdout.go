package sink

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/hazyhaar/domscope/analyze"
)

// Stdout writes the composed report text to an io.Writer (default
// os.Stdout), one report after another.
type Stdout struct {
	mu sync.Mutex
	w  io.Writer
}

// NewStdout creates a Stdout sink. If w is nil, os.Stdout is used.
func NewStdout(w io.Writer) *Stdout {
	if w == nil {
		w = os.Stdout
	}
	return &Stdout{w: w}
}

func (s *Stdout) Send(_ context.Context, rep *analyze.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintln(s.w, rep.Text())
	return err
}

func (s *Stdout) Close() error { return nil }
