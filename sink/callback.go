package sink

import (
	"context"

	"github.com/hazyhaar/domscope/analyze"
)

// ReportFunc is called for each report (in-process, zero serialisation).
type ReportFunc func(ctx context.Context, rep *analyze.Report) error

// Callback delivers reports via a Go function call. This is the local
// path: when the analysis consumer lives in the same binary, reports
// arrive as in-memory values with no serialisation overhead.
type Callback struct {
	onReport ReportFunc
}

// NewCallback creates a Callback sink. A nil handler discards reports.
func NewCallback(onReport ReportFunc) *Callback {
	return &Callback{onReport: onReport}
}

func (c *Callback) Send(ctx context.Context, rep *analyze.Report) error {
	if c.onReport != nil {
		return c.onReport(ctx, rep)
	}
	return nil
}

func (c *Callback) Close() error { return nil }
