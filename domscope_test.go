package domscope

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hazyhaar/domscope/analyze"
	"github.com/hazyhaar/domscope/sink"
)

const samplePage = `<html><body>
<h1>Orders</h1>
<a href="/orders">All orders</a>
<button id="refresh">Refresh</button>
<p>Twelve open orders.</p>
</body></html>`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writePage(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAnalyzeReader(t *testing.T) {
	svc, err := New(nil, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer svc.Close()

	rep, err := svc.AnalyzeReader(strings.NewReader(samplePage), "orders")
	if err != nil {
		t.Fatal(err)
	}
	if rep.Empty {
		t.Fatal("report marked empty for non-empty page")
	}
	if rep.PageID != "orders" {
		t.Errorf("PageID = %q, want %q", rep.PageID, "orders")
	}
	if got := rep.Summary.InteractiveElements; got != 2 {
		t.Errorf("InteractiveElements = %d, want 2", got)
	}
	if !strings.Contains(rep.Text(), "DOM TREE ANALYSIS") {
		t.Error("report text missing header")
	}
}

func TestAnalyzeFilePageText(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Report.PageText = true
	svc, err := New(cfg, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer svc.Close()

	path := writePage(t, "orders.html", samplePage)
	rep, err := svc.AnalyzeFile(context.Background(), "orders", path)
	if err != nil {
		t.Fatal(err)
	}
	if rep.PageURL != path {
		t.Errorf("PageURL = %q, want %q", rep.PageURL, path)
	}
	if !strings.Contains(rep.PageText, "Orders") {
		t.Errorf("PageText missing heading text: %q", rep.PageText)
	}
}

func TestRunDeliversToSinks(t *testing.T) {
	good := writePage(t, "a.html", samplePage)

	cfg := DefaultConfig()
	cfg.Pages = []PageConfig{
		{ID: "a", File: good},
		{ID: "missing", File: filepath.Join(t.TempDir(), "nope.html")},
	}

	var got []*analyze.Report
	cb := sink.NewCallback(func(ctx context.Context, rep *analyze.Report) error {
		got = append(got, rep)
		return nil
	})
	svc, err := New(cfg, testLogger(), cb)
	if err != nil {
		t.Fatal(err)
	}
	defer svc.Close()

	if err := svc.Run(context.Background()); err == nil {
		t.Error("Run = nil, want error for missing file")
	}
	if len(got) != 1 {
		t.Fatalf("delivered %d reports, want 1", len(got))
	}
	if got[0].PageID != "a" {
		t.Errorf("PageID = %q, want %q", got[0].PageID, "a")
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Report.MaxDepth != 5 || cfg.Report.OverviewDepth != 3 {
		t.Errorf("depth defaults = %d/%d, want 5/3", cfg.Report.MaxDepth, cfg.Report.OverviewDepth)
	}
	if cfg.Report.InteractiveLimit != 20 {
		t.Errorf("InteractiveLimit = %d, want 20", cfg.Report.InteractiveLimit)
	}
	if cfg.Report.TextPreview != 100 {
		t.Errorf("TextPreview = %d, want 100", cfg.Report.TextPreview)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "domscope.yaml")
	body := `
browser:
  stealth: true
  nav_timeout: 5s
report:
  include_details: true
  overview_depth: 4
pages:
  - id: home
    url: https://example.com/
sinks:
  - type: stdout
  - type: jsonl
    path: out.jsonl
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Browser.Stealth {
		t.Error("Stealth not parsed")
	}
	if cfg.Browser.NavTimeout.Seconds() != 5 {
		t.Errorf("NavTimeout = %v, want 5s", cfg.Browser.NavTimeout)
	}
	if cfg.Report.OverviewDepth != 4 {
		t.Errorf("OverviewDepth = %d, want 4", cfg.Report.OverviewDepth)
	}
	if cfg.Report.MaxDepth != 5 {
		t.Errorf("MaxDepth default = %d, want 5", cfg.Report.MaxDepth)
	}
	if len(cfg.Pages) != 1 || cfg.Pages[0].ID != "home" {
		t.Errorf("pages = %+v", cfg.Pages)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
	}{
		{"page without target", func(c *Config) { c.Pages = []PageConfig{{ID: "x"}} }},
		{"page with both targets", func(c *Config) {
			c.Pages = []PageConfig{{URL: "https://x/", File: "x.html"}}
		}},
		{"jsonl without path", func(c *Config) { c.Sinks = []SinkConfig{{Type: "jsonl"}} }},
		{"unknown sink", func(c *Config) { c.Sinks = []SinkConfig{{Type: "kafka"}} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mut(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate = nil, want error")
			}
		})
	}
}
