package analyze

import "github.com/hazyhaar/domscope/domtree"

// Summary aggregates structural counters over one full traversal.
// All counters start at zero and each node contributes at most once.
type Summary struct {
	TotalNodes          int `json:"total_nodes"`
	MaxDepth            int `json:"max_depth"`
	VisibleElements     int `json:"visible_elements"`
	InteractiveElements int `json:"interactive_elements"`
	LinkCount           int `json:"links"`
	ButtonCount         int `json:"buttons"`
	FormElementCount    int `json:"form_elements"`
}

// Summarize computes the counters in a single unbounded traversal using
// the standard descent order (children, content document, shadow roots).
// A nil root yields the zero Summary.
func Summarize(root *domtree.Node) Summary {
	var s Summary
	err := domtree.Walk(root, domtree.WalkOptions{MaxDepth: domtree.Unlimited}, func(ev domtree.Event) error {
		if ev.Kind != domtree.EnterNode {
			return nil
		}
		s.TotalNodes++
		if ev.Depth > s.MaxDepth {
			s.MaxDepth = ev.Depth
		}

		n := ev.Node
		if n.Type != domtree.Element {
			return nil
		}
		if n.IsVisible != nil && *n.IsVisible {
			s.VisibleElements++
		}
		if n.ElementIndex != nil {
			s.InteractiveElements++
		}
		switch n.Tag() {
		case "a":
			s.LinkCount++
		case "button":
			s.ButtonCount++
		case "input", "select", "textarea":
			s.FormElementCount++
		}
		return nil
	})
	if err != nil {
		return Summary{}
	}
	return s
}

// TagDistribution maps each lowercased element tag to its occurrence
// count, elements only, same descent order as Summarize.
func TagDistribution(root *domtree.Node) map[string]int {
	dist := make(map[string]int)
	domtree.Walk(root, domtree.WalkOptions{MaxDepth: domtree.Unlimited}, func(ev domtree.Event) error {
		if ev.Kind == domtree.EnterNode && ev.Node.Type == domtree.Element {
			dist[ev.Node.Tag()]++
		}
		return nil
	})
	return dist
}
