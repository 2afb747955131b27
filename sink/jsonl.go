package sink

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/hazyhaar/domscope/analyze"
)

// JSONL writes one JSON envelope per report to an io.Writer, for
// machine consumers (the composed text lines are omitted; structured
// fields carry everything).
type JSONL struct {
	mu  sync.Mutex
	enc *json.Encoder
	c   io.Closer
}

// NewJSONL creates a JSONL sink. If w implements io.Closer it is closed
// by Close.
func NewJSONL(w io.Writer) *JSONL {
	s := &JSONL{enc: json.NewEncoder(w)}
	if c, ok := w.(io.Closer); ok {
		s.c = c
	}
	return s
}

func (s *JSONL) Send(_ context.Context, rep *analyze.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Encode(envelope{Type: "report", Data: rep})
}

func (s *JSONL) Close() error {
	if s.c != nil {
		return s.c.Close()
	}
	return nil
}

type envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}
