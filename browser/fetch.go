package browser

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hazyhaar/domscope/domtree"
	"github.com/hazyhaar/domscope/provider"
)

// wireNode is the in-page snapshot format, kept deliberately terse to
// shrink the JSON crossing the DevTools boundary.
type wireNode struct {
	Type            int               `json:"t"`
	Name            string            `json:"n"`
	Value           string            `json:"v,omitempty"`
	Attrs           map[string]string `json:"a,omitempty"`
	Children        []*wireNode       `json:"c,omitempty"`
	ContentDocument *wireNode         `json:"d,omitempty"`
	ShadowRoots     []*wireNode       `json:"s,omitempty"`
	Rect            *[4]float64       `json:"r,omitempty"`
	Visible         *bool             `json:"vis,omitempty"`
	Scrollable      *bool             `json:"scr,omitempty"`
	Clickable       bool              `json:"clk,omitempty"`
	Cursor          string            `json:"cur,omitempty"`
}

// Tree implements provider.Provider: it opens a tab on the target URL,
// snapshots the live DOM through the injected walker, and converts the
// result into the analysis node model with element indexes assigned.
func (m *Manager) Tree(ctx context.Context, target string) (*domtree.Node, error) {
	tab, err := m.OpenTab(ctx, target)
	if err != nil {
		return nil, err
	}
	defer tab.Close()
	return tab.Tree(ctx)
}

// Tree snapshots the DOM of an already-open tab.
func (t *Tab) Tree(ctx context.Context) (*domtree.Node, error) {
	res, err := t.Page.Context(ctx).Eval(snapshotScript)
	if err != nil {
		return nil, fmt.Errorf("browser: snapshot: %w", err)
	}

	raw := res.Value.Str()
	if raw == "" || raw == "null" {
		return nil, provider.ErrNoTree
	}

	var w wireNode
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return nil, fmt.Errorf("browser: decode snapshot: %w", err)
	}

	root := convertWire(&w)
	if root == nil {
		return nil, provider.ErrNoTree
	}
	provider.AssignElementIndexes(root)
	return root, nil
}

// convertWire maps the wire snapshot to the node model with an explicit
// stack; page depth is untrusted input.
func convertWire(w *wireNode) *domtree.Node {
	if w == nil {
		return nil
	}

	type item struct {
		src *wireNode
		dst *domtree.Node
	}
	root := makeWireNode(w)
	stack := []item{{w, root}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, c := range it.src.Children {
			if c == nil {
				continue
			}
			n := makeWireNode(c)
			it.dst.Children = append(it.dst.Children, n)
			stack = append(stack, item{c, n})
		}
		if cd := it.src.ContentDocument; cd != nil {
			n := makeWireNode(cd)
			it.dst.ContentDocument = n
			stack = append(stack, item{cd, n})
		}
		for _, sr := range it.src.ShadowRoots {
			if sr == nil {
				continue
			}
			n := makeWireNode(sr)
			it.dst.ShadowRoots = append(it.dst.ShadowRoots, n)
			stack = append(stack, item{sr, n})
		}
	}
	return root
}

func makeWireNode(w *wireNode) *domtree.Node {
	n := &domtree.Node{Name: w.Name, Value: w.Value}
	switch w.Type {
	case 1:
		n.Type = domtree.Element
	case 3:
		n.Type = domtree.Text
	default:
		n.Type = domtree.Other
	}
	if n.Type != domtree.Element {
		return n
	}

	n.Attributes = w.Attrs
	n.IsVisible = w.Visible
	n.IsScrollable = w.Scrollable
	if r := w.Rect; r != nil {
		n.AbsolutePosition = &domtree.Rect{X: r[0], Y: r[1], Width: r[2], Height: r[3]}
	}
	if w.Clickable || w.Cursor != "" {
		n.SnapshotNode = &domtree.SnapshotNode{IsClickable: w.Clickable, CursorStyle: w.Cursor}
	}

	// The live snapshot carries no accessibility tree; approximate the
	// record from ARIA attributes when present.
	role := w.Attrs["role"]
	name := w.Attrs["aria-label"]
	if name == "" {
		name = w.Attrs["title"]
	}
	if role != "" || name != "" {
		n.AXNode = &domtree.AXNode{Role: role, Name: name}
	}
	return n
}
