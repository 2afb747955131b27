package analyze

import (
	"strings"

	"github.com/hazyhaar/domscope/domtree"
)

// InteractiveElements returns every element carrying an element index,
// in traversal order. The order is the externally assigned pre-order,
// not a sort by index value.
func InteractiveElements(root *domtree.Node) []*domtree.Node {
	var out []*domtree.Node
	domtree.Walk(root, domtree.WalkOptions{MaxDepth: domtree.Unlimited}, func(ev domtree.Event) error {
		if ev.Kind == domtree.EnterNode && ev.Node.Interactive() {
			out = append(out, ev.Node)
		}
		return nil
	})
	return out
}

// ElementText concatenates the trimmed text of every descendant text
// node reached through ordinary element children only, joined by single
// spaces in encounter order. Content documents and shadow roots are
// boundaries here: text behind them belongs to its own subtree, unlike
// the full logical traversal the other passes use.
func ElementText(n *domtree.Node) string {
	if n == nil {
		return ""
	}

	var parts []string
	stack := []*domtree.Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch cur.Type {
		case domtree.Text:
			if v := strings.TrimSpace(cur.Value); v != "" {
				parts = append(parts, v)
			}
		case domtree.Element:
			for i := len(cur.Children) - 1; i >= 0; i-- {
				if c := cur.Children[i]; c != nil {
					stack = append(stack, c)
				}
			}
		}
	}
	return strings.Join(parts, " ")
}
