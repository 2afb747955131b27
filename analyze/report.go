package analyze

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hazyhaar/domscope/domtree"
)

const (
	// DefaultInteractiveLimit caps detailed interactive entries.
	DefaultInteractiveLimit = 20
	// DefaultTextPreview caps extracted text per interactive entry.
	DefaultTextPreview = 100

	// NoTreeMessage is the fixed body of a report for an absent tree.
	NoTreeMessage = "No DOM tree available"

	bannerWidth = 80
)

// ReportOptions configure report composition.
type ReportOptions struct {
	// OverviewDepth bounds the structure section. Default 3.
	OverviewDepth int
	// IncludeDetails enables detail blocks in the structure section.
	// Off by default: the overview stays compact, details live in the
	// interactive section.
	IncludeDetails bool
	// InteractiveLimit caps detailed interactive entries. Default 20.
	InteractiveLimit int
	// TextPreview caps extracted text per entry, in runes. Default 100.
	TextPreview int
}

func (o *ReportOptions) defaults() {
	if o.OverviewDepth <= 0 {
		o.OverviewDepth = DefaultOverviewDepth
	}
	if o.InteractiveLimit <= 0 {
		o.InteractiveLimit = DefaultInteractiveLimit
	}
	if o.TextPreview <= 0 {
		o.TextPreview = DefaultTextPreview
	}
}

// InteractiveEntry is one catalog entry in a report.
type InteractiveEntry struct {
	Position     int               `json:"position"` // 1-based order in the catalog
	ElementIndex int               `json:"element_index"`
	Tag          string            `json:"tag"`
	Attributes   map[string]string `json:"attributes,omitempty"`
	Text         string            `json:"text,omitempty"`
	Rect         *domtree.Rect     `json:"absolute_position,omitempty"`
	Clickable    bool              `json:"clickable,omitempty"`
}

// Report is one complete analysis result: structured fields for machine
// consumers and the composed text lines for humans.
type Report struct {
	PageID  string `json:"page_id,omitempty"`
	PageURL string `json:"page_url,omitempty"`

	// Empty marks the fixed no-tree outcome. It is a normal result,
	// not an error.
	Empty bool `json:"empty,omitempty"`

	Summary            Summary            `json:"summary"`
	TagDistribution    map[string]int     `json:"tag_distribution,omitempty"`
	Interactive        []InteractiveEntry `json:"interactive,omitempty"`
	OmittedInteractive int                `json:"omitted_interactive,omitempty"`
	PageText           string             `json:"page_text,omitempty"`

	Lines []string `json:"-"`
}

// Text returns the composed report as one string.
func (r *Report) Text() string {
	return strings.Join(r.Lines, "\n")
}

// BuildReport composes summary, tag breakdown, overview dump, and the
// interactive catalog into one bounded report. A nil root yields the
// fixed no-tree report.
func BuildReport(root *domtree.Node, opts ReportOptions) *Report {
	opts.defaults()

	if root == nil {
		return &Report{Empty: true, Lines: []string{NoTreeMessage}}
	}

	banner := strings.Repeat("=", bannerWidth)
	divider := strings.Repeat("-", bannerWidth)

	rep := &Report{
		Summary:         Summarize(root),
		TagDistribution: TagDistribution(root),
	}
	s := rep.Summary

	lines := []string{
		banner,
		"DOM TREE ANALYSIS",
		banner,
		fmt.Sprintf("Summary: %d nodes, %d interactive elements", s.TotalNodes, s.InteractiveElements),
		fmt.Sprintf("Depth: %d, Visible: %d, Links: %d, Buttons: %d, Forms: %d",
			s.MaxDepth, s.VisibleElements, s.LinkCount, s.ButtonCount, s.FormElementCount),
		"Element types breakdown:",
	}
	for _, tc := range sortedTags(rep.TagDistribution) {
		lines = append(lines, fmt.Sprintf("  - %s: %d", tc.tag, tc.count))
	}

	lines = append(lines, divider, "DOM TREE STRUCTURE:")
	lines = append(lines, Render(root, RenderOptions{
		MaxDepth:       opts.OverviewDepth,
		IncludeDetails: opts.IncludeDetails,
	})...)

	lines = append(lines, divider, "INTERACTIVE ELEMENTS DETAILS:")
	catalog := InteractiveElements(root)
	if len(catalog) == 0 {
		lines = append(lines, "No interactive elements found")
	}
	shown := catalog
	if len(shown) > opts.InteractiveLimit {
		shown = shown[:opts.InteractiveLimit]
	}
	for i, n := range shown {
		entry := InteractiveEntry{
			Position:     i + 1,
			ElementIndex: *n.ElementIndex,
			Tag:          n.Tag(),
			Attributes:   pickAttrs(n, detailAttrs),
			Text:         truncate(ElementText(n), opts.TextPreview),
			Rect:         n.AbsolutePosition,
		}
		if sn := n.SnapshotNode; sn != nil {
			entry.Clickable = sn.IsClickable
		}
		rep.Interactive = append(rep.Interactive, entry)

		lines = append(lines, fmt.Sprintf("[%d] %s", entry.Position, openTag(n, detailAttrs)))
		if entry.Text != "" {
			lines = append(lines, fmt.Sprintf("    Text: %q", entry.Text))
		}
		if p := entry.Rect; p != nil {
			lines = append(lines, fmt.Sprintf("    Position: x=%.1f, y=%.1f, width=%.1f, height=%.1f",
				p.X, p.Y, p.Width, p.Height))
		}
		if entry.Clickable {
			lines = append(lines, fmt.Sprintf("    Clickable: %v", entry.Clickable))
		}
	}
	if rest := len(catalog) - len(shown); rest > 0 {
		rep.OmittedInteractive = rest
		lines = append(lines, fmt.Sprintf("... and %d more interactive elements", rest))
	}

	lines = append(lines, banner)
	rep.Lines = lines
	return rep
}

type tagCount struct {
	tag   string
	count int
}

// sortedTags orders the distribution by count descending, tag ascending
// on ties, so the breakdown is deterministic.
func sortedTags(dist map[string]int) []tagCount {
	out := make([]tagCount, 0, len(dist))
	for tag, count := range dist {
		out = append(out, tagCount{tag, count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].tag < out[j].tag
	})
	return out
}

func pickAttrs(n *domtree.Node, allow []string) map[string]string {
	var out map[string]string
	for _, key := range allow {
		if v, ok := n.Attr(key); ok {
			if out == nil {
				out = make(map[string]string)
			}
			out[key] = v
		}
	}
	return out
}
