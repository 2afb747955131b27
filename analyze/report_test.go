package analyze

import (
	"fmt"
	"strings"
	"testing"

	"github.com/hazyhaar/domscope/domtree"
)

func TestBuildReportNoTree(t *testing.T) {
	rep := BuildReport(nil, ReportOptions{})
	if !rep.Empty {
		t.Error("Empty: got false, want true")
	}
	if rep.Text() != NoTreeMessage {
		t.Errorf("Text: got %q, want %q", rep.Text(), NoTreeMessage)
	}
}

func TestBuildReportSections(t *testing.T) {
	root := el("div",
		indexed(attrs(el("button"), "id", "go"), 0),
		el("p", txt("some text")),
	)

	rep := BuildReport(root, ReportOptions{})
	text := rep.Text()

	for _, want := range []string{
		"DOM TREE ANALYSIS",
		"Summary: 4 nodes, 1 interactive elements",
		"Element types breakdown:",
		"  - button: 1",
		"DOM TREE STRUCTURE:",
		"INTERACTIVE ELEMENTS DETAILS:",
		"[1] <button id='go' [idx:0]>",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q\n%s", want, text)
		}
	}

	if len(rep.Interactive) != 1 {
		t.Fatalf("Interactive: got %d entries, want 1", len(rep.Interactive))
	}
	if rep.Interactive[0].ElementIndex != 0 || rep.Interactive[0].Tag != "button" {
		t.Errorf("entry: got %+v", rep.Interactive[0])
	}
}

func TestBuildReportBreakdownSorted(t *testing.T) {
	root := el("div", el("span"), el("span"), el("a"))

	rep := BuildReport(root, ReportOptions{})
	text := rep.Text()

	spanAt := strings.Index(text, "  - span: 2")
	aAt := strings.Index(text, "  - a: 1")
	divAt := strings.Index(text, "  - div: 1")
	if spanAt < 0 || aAt < 0 || divAt < 0 {
		t.Fatalf("breakdown lines missing:\n%s", text)
	}
	// Count descending, tag ascending on ties.
	if !(spanAt < aAt && aAt < divAt) {
		t.Errorf("breakdown order wrong:\n%s", text)
	}
}

func TestBuildReportInteractiveCap(t *testing.T) {
	kids := make([]*domtree.Node, 25)
	for i := range kids {
		kids[i] = indexed(el("button", txt(fmt.Sprintf("b%d", i))), i)
	}
	rep := BuildReport(el("div", kids...), ReportOptions{})

	if len(rep.Interactive) != DefaultInteractiveLimit {
		t.Errorf("Interactive: got %d entries, want %d", len(rep.Interactive), DefaultInteractiveLimit)
	}
	if rep.OmittedInteractive != 5 {
		t.Errorf("OmittedInteractive: got %d, want 5", rep.OmittedInteractive)
	}
	if !strings.Contains(rep.Text(), "... and 5 more interactive elements") {
		t.Errorf("remainder line missing:\n%s", rep.Text())
	}
	detailed := strings.Count(rep.Text(), "[idx:")
	if detailed != DefaultInteractiveLimit {
		t.Errorf("detailed entries in text: got %d, want %d", detailed, DefaultInteractiveLimit)
	}
}

func TestBuildReportNoInteractive(t *testing.T) {
	rep := BuildReport(el("div", el("p")), ReportOptions{})
	if !strings.Contains(rep.Text(), "No interactive elements found") {
		t.Errorf("missing no-interactive line:\n%s", rep.Text())
	}
}

func TestBuildReportEntryText(t *testing.T) {
	long := strings.Repeat("y", 150)
	root := el("div", indexed(el("button", txt(long)), 0))

	rep := BuildReport(root, ReportOptions{})
	if got := rep.Interactive[0].Text; len([]rune(got)) != DefaultTextPreview {
		t.Errorf("entry text length: got %d, want %d", len([]rune(got)), DefaultTextPreview)
	}
}

func TestBuildReportOverviewDepth(t *testing.T) {
	deep := el("l4", txt("bottom"))
	root := el("l0", el("l1", el("l2", el("l3", deep))))

	rep := BuildReport(root, ReportOptions{})
	text := rep.Text()
	if strings.Contains(text, "<l4>") || strings.Contains(text, "bottom") {
		t.Errorf("overview rendered beyond default depth:\n%s", text)
	}
	if !strings.Contains(text, "... (max depth reached)") {
		t.Errorf("overview missing depth placeholder:\n%s", text)
	}
}
