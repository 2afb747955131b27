package analyze

import (
	"reflect"
	"testing"

	"github.com/hazyhaar/domscope/domtree"
)

func TestSummarizeScenario(t *testing.T) {
	// <div id="a"><p>hello</p><button>Click</button></div>
	root := attrs(el("div",
		el("p", txt("hello")),
		el("button", txt("Click")),
	), "id", "a")

	s := Summarize(root)
	if s.TotalNodes != 5 { // 3 elements + 2 text nodes
		t.Errorf("TotalNodes: got %d, want 5", s.TotalNodes)
	}
	if s.ButtonCount != 1 {
		t.Errorf("ButtonCount: got %d, want 1", s.ButtonCount)
	}
	if s.LinkCount != 0 {
		t.Errorf("LinkCount: got %d, want 0", s.LinkCount)
	}
	if s.MaxDepth != 2 {
		t.Errorf("MaxDepth: got %d, want 2", s.MaxDepth)
	}

	dist := TagDistribution(root)
	want := map[string]int{"div": 1, "p": 1, "button": 1}
	if !reflect.DeepEqual(dist, want) {
		t.Errorf("TagDistribution: got %v, want %v", dist, want)
	}
}

func TestSummarizeSingleNode(t *testing.T) {
	s := Summarize(el("div"))
	if s.TotalNodes != 1 {
		t.Errorf("TotalNodes: got %d, want 1", s.TotalNodes)
	}
	if s.MaxDepth != 0 {
		t.Errorf("MaxDepth: got %d, want 0", s.MaxDepth)
	}
}

func TestSummarizeCountsContentDocument(t *testing.T) {
	// A link nested inside an iframe's content document counts.
	host := el("iframe")
	host.ContentDocument = el("html", attrs(el("a"), "href", "https://example.com"))

	s := Summarize(el("div", host))
	if s.LinkCount != 1 {
		t.Errorf("LinkCount: got %d, want 1", s.LinkCount)
	}

	dist := TagDistribution(el("div", host))
	if dist["a"] != 1 {
		t.Errorf("dist[a]: got %d, want 1", dist["a"])
	}
}

func TestSummarizeCountsShadowRoots(t *testing.T) {
	host := el("div")
	host.ShadowRoots = []*domtree.Node{el("span", el("button"))}

	s := Summarize(host)
	if s.ButtonCount != 1 {
		t.Errorf("ButtonCount: got %d, want 1", s.ButtonCount)
	}
	if s.MaxDepth != 2 {
		t.Errorf("MaxDepth: got %d, want 2", s.MaxDepth)
	}
}

func TestSummarizeVisibleAndInteractive(t *testing.T) {
	root := el("form",
		indexed(visible(el("input")), 0),
		indexed(el("select"), 1),
		visible(el("textarea")),
	)

	s := Summarize(root)
	if s.VisibleElements != 2 {
		t.Errorf("VisibleElements: got %d, want 2", s.VisibleElements)
	}
	if s.InteractiveElements != 2 {
		t.Errorf("InteractiveElements: got %d, want 2", s.InteractiveElements)
	}
	if s.FormElementCount != 3 {
		t.Errorf("FormElementCount: got %d, want 3", s.FormElementCount)
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	root := el("div", el("p", txt("x")), el("a"))
	first := Summarize(root)
	second := Summarize(root)
	if first != second {
		t.Errorf("summaries differ: %+v vs %+v", first, second)
	}
}

func TestSummarizeMatchesWalkerVisits(t *testing.T) {
	host := el("div", el("p", txt("a")), el("iframe"))
	host.Children[1].ContentDocument = el("html", txt("b"))
	host.ShadowRoots = []*domtree.Node{el("nav")}

	visited := 0
	domtree.Walk(host, domtree.WalkOptions{MaxDepth: domtree.Unlimited}, func(ev domtree.Event) error {
		if ev.Kind == domtree.EnterNode {
			visited++
		}
		return nil
	})

	if s := Summarize(host); s.TotalNodes != visited {
		t.Errorf("TotalNodes: got %d, walker visited %d", s.TotalNodes, visited)
	}
}

func TestSummarizeNilRoot(t *testing.T) {
	if s := Summarize(nil); s != (Summary{}) {
		t.Errorf("nil root: got %+v, want zero summary", s)
	}
}
