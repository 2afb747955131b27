// Package provider defines the tree acquisition boundary. A Provider
// produces one DOM snapshot tree per call for an opaque target (a URL,
// a file path, raw HTML); the analysis passes consume the tree read-only
// and never retain it past the call.
package provider

import (
	"context"
	"errors"

	"github.com/hazyhaar/domscope/domtree"
)

// ErrNoTree signals the normal absent-tree outcome: the target resolved
// but yielded no document. Callers render the fixed no-tree report
// instead of treating it as a failure. Any other error from a Provider
// is a genuine acquisition failure.
var ErrNoTree = errors.New("provider: no DOM tree available")

// Provider fetches the current DOM snapshot tree for a target.
type Provider interface {
	Tree(ctx context.Context, target string) (*domtree.Node, error)
}
