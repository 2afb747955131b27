// Package domscope turns web pages into structural reports. It walks a
// captured DOM tree and produces a depth-bounded rendering, aggregate
// statistics, and a catalog of interactive elements, composed into a
// single text report or served over HTTP and MCP.
package domscope

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/hazyhaar/domscope/analyze"
	"github.com/hazyhaar/domscope/browser"
	"github.com/hazyhaar/domscope/pagetext"
	"github.com/hazyhaar/domscope/provider"
	"github.com/hazyhaar/domscope/sink"
	"github.com/hazyhaar/domscope/snapstore"
)

// Service ties tree acquisition, analysis and report delivery together.
// A zero Service is not usable; construct it with New.
type Service struct {
	cfg    *Config
	logger *slog.Logger
	router *sink.Router
	static *provider.Static
	conv   *pagetext.Converter
	store  *snapstore.Store

	mu      sync.Mutex
	browser *browser.Manager
}

// New builds a Service from cfg. Sinks and the snapshot store are opened
// eagerly; the browser is launched on first live analysis.
func New(cfg *Config, logger *slog.Logger, sinks ...sink.Sink) (*Service, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		cfg:    cfg,
		logger: logger,
		router: sink.NewRouter(logger, sinks...),
		static: provider.NewStatic(logger),
		conv:   pagetext.New(),
	}
	if cfg.Snapshots.Path != "" {
		store, err := snapstore.Open(cfg.Snapshots.Path, snapstore.WithMkdirAll())
		if err != nil {
			return nil, fmt.Errorf("domscope: open snapshot store: %w", err)
		}
		s.store = store
	}
	return s, nil
}

// Close releases the browser, the snapshot store and all sinks.
func (s *Service) Close() error {
	var errs []error
	s.mu.Lock()
	if s.browser != nil {
		errs = append(errs, s.browser.Close())
		s.browser = nil
	}
	s.mu.Unlock()
	if s.store != nil {
		errs = append(errs, s.store.Close())
	}
	errs = append(errs, s.router.Close())
	return errors.Join(errs...)
}

func (s *Service) ensureBrowser() *browser.Manager {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.browser == nil {
		s.browser = browser.NewManager(browser.Config{
			RemoteURL:  s.cfg.Browser.Remote,
			Stealth:    s.cfg.Browser.Stealth,
			Headful:    s.cfg.Browser.Headful,
			NavTimeout: s.cfg.Browser.NavTimeout,
			Logger:     s.logger,
		})
	}
	return s.browser
}

// reportOptions maps config to report composition. Detailed reports use
// the deeper structural bound, compact overviews the shallow one.
func (s *Service) reportOptions() analyze.ReportOptions {
	depth := s.cfg.Report.OverviewDepth
	if s.cfg.Report.IncludeDetails {
		depth = s.cfg.Report.MaxDepth
	}
	return analyze.ReportOptions{
		OverviewDepth:    depth,
		IncludeDetails:   s.cfg.Report.IncludeDetails,
		InteractiveLimit: s.cfg.Report.InteractiveLimit,
		TextPreview:      s.cfg.Report.TextPreview,
	}
}

// AnalyzeURL loads pageURL in a browser tab, captures its DOM tree and
// builds a report. A page with no tree yields an empty report, not an
// error. The raw HTML is cached in the snapshot store when one is
// configured.
func (s *Service) AnalyzeURL(ctx context.Context, pageID, pageURL string) (*analyze.Report, error) {
	m := s.ensureBrowser()
	tab, err := m.OpenTab(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("domscope: open %s: %w", pageURL, err)
	}
	defer tab.Close()

	if s.store != nil {
		if html, err := tab.HTML(ctx); err != nil {
			s.logger.Warn("snapshot capture failed", "url", pageURL, "error", err)
		} else if err := s.store.Put(ctx, &snapstore.Snapshot{URL: pageURL, HTML: html}); err != nil {
			s.logger.Warn("snapshot store failed", "url", pageURL, "error", err)
		}
	}

	root, err := tab.Tree(ctx)
	if err != nil && !errors.Is(err, provider.ErrNoTree) {
		return nil, fmt.Errorf("domscope: capture %s: %w", pageURL, err)
	}
	rep := analyze.BuildReport(root, s.reportOptions())
	rep.PageID = pageID
	rep.PageURL = pageURL
	if s.cfg.Report.PageText && root != nil {
		s.attachPageText(ctx, tab, rep)
	}
	return rep, nil
}

func (s *Service) attachPageText(ctx context.Context, tab *browser.Tab, rep *analyze.Report) {
	html, err := tab.HTML(ctx)
	if err != nil {
		s.logger.Warn("page text capture failed", "url", rep.PageURL, "error", err)
		return
	}
	md, err := s.conv.Markdown(html)
	if err != nil {
		s.logger.Warn("page text conversion failed", "url", rep.PageURL, "error", err)
		return
	}
	rep.PageText = md
}

// AnalyzeFile parses an HTML file from disk and builds a report.
func (s *Service) AnalyzeFile(ctx context.Context, pageID, path string) (*analyze.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("domscope: read %s: %w", path, err)
	}
	rep, err := s.AnalyzeReader(bytes.NewReader(data), pageID)
	if err != nil {
		return nil, fmt.Errorf("domscope: parse %s: %w", path, err)
	}
	rep.PageURL = path
	if s.cfg.Report.PageText {
		if md, err := s.conv.Markdown(data); err == nil {
			rep.PageText = md
		} else {
			s.logger.Warn("page text conversion failed", "file", path, "error", err)
		}
	}
	return rep, nil
}

// AnalyzeReader parses HTML from r and builds a report.
func (s *Service) AnalyzeReader(r io.Reader, pageID string) (*analyze.Report, error) {
	root, err := s.static.Parse(r)
	if err != nil && !errors.Is(err, provider.ErrNoTree) {
		return nil, fmt.Errorf("domscope: parse: %w", err)
	}
	rep := analyze.BuildReport(root, s.reportOptions())
	rep.PageID = pageID
	return rep, nil
}

// AnalyzeCached builds a report from the most recent stored snapshot of
// pageURL without touching the network. Returns ErrNoTree when no
// snapshot exists.
func (s *Service) AnalyzeCached(ctx context.Context, pageID, pageURL string) (*analyze.Report, error) {
	if s.store == nil {
		return nil, errors.New("domscope: snapshot store not configured")
	}
	snap, err := s.store.Latest(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("domscope: snapshot lookup: %w", err)
	}
	if snap == nil {
		return nil, fmt.Errorf("domscope: no snapshot for %s: %w", pageURL, provider.ErrNoTree)
	}
	rep, err := s.AnalyzeReader(bytes.NewReader(snap.HTML), pageID)
	if err != nil {
		return nil, err
	}
	rep.PageURL = pageURL
	if s.cfg.Report.PageText {
		if md, err := s.conv.Markdown(snap.HTML); err == nil {
			rep.PageText = md
		}
	}
	return rep, nil
}

// Run analyses every configured page once and delivers each report to
// the sinks. A failing page is logged and skipped; Run returns the
// first error after all pages have been attempted.
func (s *Service) Run(ctx context.Context) error {
	var first error
	for _, p := range s.cfg.Pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		rep, err := s.analyzePage(ctx, p)
		if err != nil {
			s.logger.Error("page analysis failed", "id", p.ID, "url", p.URL, "file", p.File, "error", err)
			if first == nil {
				first = err
			}
			continue
		}
		if err := s.router.Send(ctx, rep); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (s *Service) analyzePage(ctx context.Context, p PageConfig) (*analyze.Report, error) {
	if p.File != "" {
		return s.AnalyzeFile(ctx, p.ID, p.File)
	}
	return s.AnalyzeURL(ctx, p.ID, p.URL)
}

// Deliver sends a finished report to the configured sinks.
func (s *Service) Deliver(ctx context.Context, rep *analyze.Report) error {
	return s.router.Send(ctx, rep)
}
