package mcpsrv

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/domscope/analyze"
)

// PageInput is the shared input schema: which page to analyse.
type PageInput struct {
	URL    string `json:"url" jsonschema:"the page URL to load and analyse"`
	PageID string `json:"page_id,omitempty" jsonschema:"optional identifier echoed back in the report"`
}

// ReportOutput carries the full composed text report.
type ReportOutput struct {
	PageURL string `json:"page_url"`
	Empty   bool   `json:"empty"`
	Report  string `json:"report"`
}

// SummaryOutput carries aggregate statistics only.
type SummaryOutput struct {
	PageURL         string          `json:"page_url"`
	Empty           bool            `json:"empty"`
	Summary         analyze.Summary `json:"summary"`
	TagDistribution map[string]int  `json:"tag_distribution,omitempty"`
}

// InteractiveOutput carries the interactive-element catalog.
type InteractiveOutput struct {
	PageURL  string                     `json:"page_url"`
	Elements []analyze.InteractiveEntry `json:"elements"`
	Total    int                        `json:"total"`
	Omitted  int                        `json:"omitted"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "domscope_report",
		Description: "Load a web page and return the full DOM analysis report: statistics, depth-bounded tree structure and interactive elements",
	}, s.handleReport)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "domscope_summary",
		Description: "Load a web page and return aggregate DOM statistics and the element tag distribution",
	}, s.handleSummary)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "domscope_interactive",
		Description: "Load a web page and return its catalog of interactive elements with attributes, text and positions",
	}, s.handleInteractive)
}

func (s *Server) handleReport(ctx context.Context, _ *mcp.CallToolRequest, in PageInput) (*mcp.CallToolResult, ReportOutput, error) {
	rep, err := s.analyzer.AnalyzeURL(ctx, in.PageID, in.URL)
	if err != nil {
		return nil, ReportOutput{}, err
	}
	return nil, ReportOutput{
		PageURL: rep.PageURL,
		Empty:   rep.Empty,
		Report:  rep.Text(),
	}, nil
}

func (s *Server) handleSummary(ctx context.Context, _ *mcp.CallToolRequest, in PageInput) (*mcp.CallToolResult, SummaryOutput, error) {
	rep, err := s.analyzer.AnalyzeURL(ctx, in.PageID, in.URL)
	if err != nil {
		return nil, SummaryOutput{}, err
	}
	return nil, SummaryOutput{
		PageURL:         rep.PageURL,
		Empty:           rep.Empty,
		Summary:         rep.Summary,
		TagDistribution: rep.TagDistribution,
	}, nil
}

func (s *Server) handleInteractive(ctx context.Context, _ *mcp.CallToolRequest, in PageInput) (*mcp.CallToolResult, InteractiveOutput, error) {
	rep, err := s.analyzer.AnalyzeURL(ctx, in.PageID, in.URL)
	if err != nil {
		return nil, InteractiveOutput{}, err
	}
	return nil, InteractiveOutput{
		PageURL:  rep.PageURL,
		Elements: rep.Interactive,
		Total:    len(rep.Interactive) + rep.OmittedInteractive,
		Omitted:  rep.OmittedInteractive,
	}, nil
}
