// Package analyze turns a DOM snapshot tree into human-readable output:
// a depth-bounded structural dump, aggregate counters, an interactive
// element catalog, and a composed report.
//
// Every pass reads the tree through domtree.Walk and never mutates it.
// Missing optional node data is skipped, not treated as an error.
package analyze

import (
	"fmt"
	"strings"

	"github.com/hazyhaar/domscope/domtree"
)

const (
	// DefaultMaxDepth bounds full structural dumps.
	DefaultMaxDepth = 5
	// DefaultOverviewDepth bounds the overview dump inside reports.
	DefaultOverviewDepth = 3

	// textMarkerLen caps the text preview on #TEXT lines.
	textMarkerLen = 50
)

// renderAttrs is the fixed attribute allowlist for structural dumps.
// The order is part of the output contract, independent of map order.
var renderAttrs = []string{"id", "class", "role", "type", "name"}

// detailAttrs extends the allowlist for interactive element details.
var detailAttrs = []string{"id", "class", "role", "type", "name", "href", "placeholder", "value"}

// RenderOptions configure a structural dump.
type RenderOptions struct {
	// MaxDepth bounds the dump. Values <= 0 fall back to DefaultMaxDepth.
	MaxDepth int
	// IncludeDetails emits a per-element detail block (visibility,
	// position, accessibility, snapshot data) under each open line.
	IncludeDetails bool
}

func (o *RenderOptions) defaults() {
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
}

// Render produces the indented line dump of the tree. Elements emit an
// open line, their descendants, then a close line; text nodes emit one
// marker line when non-blank; other node kinds emit nothing but their
// children are still walked. Content documents and shadow roots appear
// as bracketed sections after the ordinary children. A nil root renders
// to no lines.
func Render(root *domtree.Node, opts RenderOptions) []string {
	opts.defaults()

	var lines []string
	err := domtree.Walk(root, domtree.WalkOptions{MaxDepth: opts.MaxDepth}, func(ev domtree.Event) error {
		indent := strings.Repeat("  ", ev.Depth+ev.Sections)
		switch ev.Kind {
		case domtree.EnterNode:
			switch ev.Node.Type {
			case domtree.Text:
				if v := strings.TrimSpace(ev.Node.Value); v != "" {
					lines = append(lines, indent+"#TEXT: "+truncate(v, textMarkerLen))
				}
			case domtree.Element:
				lines = append(lines, indent+openTag(ev.Node, renderAttrs))
				if opts.IncludeDetails && ev.Depth <= opts.MaxDepth-1 {
					lines = appendDetails(lines, ev.Node, indent+"  ")
				}
			}
		case domtree.LeaveElement:
			lines = append(lines, indent+"</"+ev.Node.Tag()+">")
		case domtree.EnterContentDocument:
			lines = append(lines, indent+"[iframe content]:")
		case domtree.EnterShadowRoot:
			lines = append(lines, indent+"[shadow-root]:")
		case domtree.DepthLimit:
			lines = append(lines, indent+"... (max depth reached)")
		}
		return nil
	})
	if err != nil {
		// Only ErrEmptyTree can surface here; an absent tree dumps nothing.
		return nil
	}
	return lines
}

// openTag formats an element open line: tag, allowlisted attributes in
// fixed order, and the interactive index marker.
func openTag(n *domtree.Node, allow []string) string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(n.Tag())
	for _, key := range allow {
		if v, ok := n.Attr(key); ok {
			b.WriteString(" ")
			b.WriteString(key)
			b.WriteString("='")
			b.WriteString(v)
			b.WriteString("'")
		}
	}
	if n.ElementIndex != nil {
		fmt.Fprintf(&b, " [idx:%d]", *n.ElementIndex)
	}
	b.WriteString(">")
	return b.String()
}

// appendDetails emits the per-element detail block. Every field is
// optional; unset fields produce no line.
func appendDetails(lines []string, n *domtree.Node, prefix string) []string {
	if n.IsVisible != nil {
		lines = append(lines, fmt.Sprintf("%sVisible: %v", prefix, *n.IsVisible))
	}
	if n.IsScrollable != nil {
		lines = append(lines, fmt.Sprintf("%sScrollable: %v", prefix, *n.IsScrollable))
	}
	if p := n.AbsolutePosition; p != nil {
		lines = append(lines, fmt.Sprintf("%sPosition: x=%.1f, y=%.1f, width=%.1f, height=%.1f",
			prefix, p.X, p.Y, p.Width, p.Height))
	}
	if ax := n.AXNode; ax != nil {
		if ax.Role != "" {
			lines = append(lines, prefix+"AX Role: "+ax.Role)
		}
		if ax.Name != "" {
			lines = append(lines, prefix+"AX Name: "+ax.Name)
		}
		for _, prop := range ax.Properties {
			if prop.Value != nil {
				lines = append(lines, fmt.Sprintf("%sAX %s: %v", prefix, prop.Name, prop.Value))
			}
		}
	}
	if sn := n.SnapshotNode; sn != nil {
		if sn.IsClickable {
			lines = append(lines, fmt.Sprintf("%sClickable: %v", prefix, sn.IsClickable))
		}
		if sn.CursorStyle != "" {
			lines = append(lines, prefix+"Cursor: "+sn.CursorStyle)
		}
	}
	return lines
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
