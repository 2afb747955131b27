package provider

import (
	"strconv"
	"strings"

	"github.com/hazyhaar/domscope/domtree"
)

// interactiveTags always receive an element index.
var interactiveTags = map[string]bool{
	"button":   true,
	"input":    true,
	"select":   true,
	"textarea": true,
	"option":   true,
}

// interactiveRoles mark otherwise-passive elements as actionable.
var interactiveRoles = map[string]bool{
	"button":   true,
	"link":     true,
	"tab":      true,
	"checkbox": true,
	"radio":    true,
	"menuitem": true,
	"combobox": true,
	"switch":   true,
	"slider":   true,
	"textbox":  true,
}

// AssignElementIndexes numbers every actionable element in the full
// logical tree (children, content documents, shadow roots) in pre-order,
// starting at 0, and returns the count. Indexing happens on the provider
// side, before the tree is handed to analysis; existing indexes are
// overwritten.
func AssignElementIndexes(root *domtree.Node) int {
	next := 0
	domtree.Walk(root, domtree.WalkOptions{MaxDepth: domtree.Unlimited}, func(ev domtree.Event) error {
		if ev.Kind != domtree.EnterNode || ev.Node.Type != domtree.Element {
			return nil
		}
		if actionable(ev.Node) {
			idx := next
			ev.Node.ElementIndex = &idx
			next++
		}
		return nil
	})
	return next
}

func actionable(n *domtree.Node) bool {
	tag := n.Tag()
	if interactiveTags[tag] {
		return true
	}
	if tag == "a" {
		_, ok := n.Attr("href")
		return ok
	}
	if _, ok := n.Attr("onclick"); ok {
		return true
	}
	if v, ok := n.Attr("contenteditable"); ok && !strings.EqualFold(v, "false") {
		return true
	}
	if v, ok := n.Attr("role"); ok && interactiveRoles[strings.ToLower(v)] {
		return true
	}
	if v, ok := n.Attr("tabindex"); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && i >= 0 {
			return true
		}
	}
	return false
}
