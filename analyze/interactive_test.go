package analyze

import (
	"testing"

	"github.com/hazyhaar/domscope/domtree"
)

func TestInteractiveCatalogOrder(t *testing.T) {
	button := indexed(el("button"), 0)
	input := indexed(el("input"), 1)
	root := el("div", button, input)

	got := InteractiveElements(root)
	if len(got) != 2 {
		t.Fatalf("catalog length: got %d, want 2", len(got))
	}
	if got[0] != button || got[1] != input {
		t.Errorf("catalog order: got [%s %s], want [button input]", got[0].Tag(), got[1].Tag())
	}

	// Catalog length matches the summarizer for the same tree.
	if s := Summarize(root); s.InteractiveElements != len(got) {
		t.Errorf("InteractiveElements: summarizer %d, catalog %d", s.InteractiveElements, len(got))
	}
}

func TestInteractiveCatalogTraversalOrderNotIndexOrder(t *testing.T) {
	// Indexes assigned out of document order stay in traversal order.
	second := indexed(el("a"), 7)
	first := indexed(el("button"), 2)
	root := el("div", first, second)

	got := InteractiveElements(root)
	if len(got) != 2 {
		t.Fatalf("catalog length: got %d, want 2", len(got))
	}
	if *got[0].ElementIndex != 2 || *got[1].ElementIndex != 7 {
		t.Errorf("order: got [%d %d], want [2 7]", *got[0].ElementIndex, *got[1].ElementIndex)
	}
}

func TestInteractiveCatalogCrossesBoundaries(t *testing.T) {
	host := el("iframe")
	host.ContentDocument = el("html", indexed(el("a"), 0))
	host.ShadowRoots = []*domtree.Node{indexed(el("button"), 1)}

	got := InteractiveElements(el("div", host))
	if len(got) != 2 {
		t.Fatalf("catalog length: got %d, want 2", len(got))
	}
}

func TestElementText(t *testing.T) {
	root := el("div",
		txt("  hello "),
		el("p", txt("big"), el("b", txt("world"))),
		txt(" \n"),
	)
	if got, want := ElementText(root), "hello big world"; got != want {
		t.Errorf("ElementText: got %q, want %q", got, want)
	}
}

func TestElementTextStopsAtContentDocument(t *testing.T) {
	host := el("div", txt("outer"))
	frame := el("iframe")
	frame.ContentDocument = el("html", txt("framed"))
	frame.ShadowRoots = []*domtree.Node{el("span", txt("shadowed"))}
	host.Children = append(host.Children, frame)

	if got, want := ElementText(host), "outer"; got != want {
		t.Errorf("ElementText: got %q, want %q", got, want)
	}
}

func TestElementTextNil(t *testing.T) {
	if got := ElementText(nil); got != "" {
		t.Errorf("ElementText(nil): got %q, want empty", got)
	}
}
