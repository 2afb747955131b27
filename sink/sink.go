// Package sink defines output backends for analysis reports.
package sink

import (
	"context"

	"github.com/hazyhaar/domscope/analyze"
)

// Sink is the output interface. Implementations deliver reports to
// different backends (stdout, arbitrary writers, JSON lines,
// in-process callback). Delivery is append-only and ordered per sink.
type Sink interface {
	Send(ctx context.Context, rep *analyze.Report) error
	Close() error
}
