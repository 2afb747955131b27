// Command domscope analyses DOM trees of web pages and HTML files.
//
// Usage:
//
//	domscope -url https://example.com       # analyse one page, report on stdout
//	domscope -file page.html                # analyse a local HTML file
//	domscope -config domscope.yaml          # analyse configured pages
//	domscope -serve :8080                   # HTTP API
//	domscope -mcp                           # MCP tools over stdio
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "modernc.org/sqlite"

	"github.com/hazyhaar/domscope"
	"github.com/hazyhaar/domscope/httpsrv"
	"github.com/hazyhaar/domscope/mcpsrv"
	"github.com/hazyhaar/domscope/sink"
)

type options struct {
	configPath string
	url        string
	file       string
	serveAddr  string
	mcpMode    bool

	maxDepth  int
	details   bool
	pageText  bool
	snapshots string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "path to domscope.yaml config file")
	flag.StringVar(&opts.url, "url", "", "analyse a single URL and exit")
	flag.StringVar(&opts.file, "file", "", "analyse a local HTML file and exit (- for stdin)")
	flag.StringVar(&opts.serveAddr, "serve", "", "serve the HTTP API on this address")
	flag.BoolVar(&opts.mcpMode, "mcp", false, "serve MCP tools over stdio")
	flag.IntVar(&opts.maxDepth, "max-depth", 0, "override tree depth in reports")
	flag.BoolVar(&opts.details, "details", false, "include element details in the structure dump")
	flag.BoolVar(&opts.pageText, "page-text", false, "append the page text as markdown")
	flag.StringVar(&opts.snapshots, "snapshots", "", "sqlite file for the HTML snapshot cache")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, opts); err != nil {
		logger.Error("domscope: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	sinks, closers, err := buildSinks(cfg)
	if err != nil {
		return err
	}
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()

	svc, err := domscope.New(cfg, logger, sinks...)
	if err != nil {
		return err
	}
	defer svc.Close()

	switch {
	case opts.mcpMode:
		return mcpsrv.NewServer(svc, logger).Run(ctx)
	case opts.serveAddr != "":
		return httpsrv.NewServer(svc, logger).Run(ctx, opts.serveAddr)
	case opts.url != "":
		rep, err := svc.AnalyzeURL(ctx, "", opts.url)
		if err != nil {
			return err
		}
		return svc.Deliver(ctx, rep)
	case opts.file == "-":
		rep, err := svc.AnalyzeReader(os.Stdin, "")
		if err != nil {
			return err
		}
		return svc.Deliver(ctx, rep)
	case opts.file != "":
		rep, err := svc.AnalyzeFile(ctx, "", opts.file)
		if err != nil {
			return err
		}
		return svc.Deliver(ctx, rep)
	case opts.configPath != "":
		return svc.Run(ctx)
	}

	fmt.Fprintln(os.Stderr, "usage: domscope -url <url> | -file <path> | -config <file> | -serve <addr> | -mcp")
	os.Exit(2)
	return nil
}

func loadConfig(opts options) (*domscope.Config, error) {
	var cfg *domscope.Config
	if opts.configPath != "" {
		loaded, err := domscope.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = domscope.DefaultConfig()
	}
	if opts.maxDepth > 0 {
		cfg.Report.MaxDepth = opts.maxDepth
		cfg.Report.OverviewDepth = opts.maxDepth
	}
	if opts.details {
		cfg.Report.IncludeDetails = true
	}
	if opts.pageText {
		cfg.Report.PageText = true
	}
	if opts.snapshots != "" {
		cfg.Snapshots.Path = opts.snapshots
	}
	return cfg, nil
}

// buildSinks maps sink configs to instances. With no configured sinks,
// reports go to stdout.
func buildSinks(cfg *domscope.Config) ([]sink.Sink, []*os.File, error) {
	if len(cfg.Sinks) == 0 {
		return []sink.Sink{sink.NewStdout(nil)}, nil, nil
	}
	var (
		sinks   []sink.Sink
		closers []*os.File
	)
	for _, sc := range cfg.Sinks {
		switch sc.Type {
		case "stdout":
			sinks = append(sinks, sink.NewStdout(nil))
		case "jsonl":
			f, err := os.OpenFile(sc.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return nil, nil, fmt.Errorf("open sink %s: %w", sc.Path, err)
			}
			closers = append(closers, f)
			sinks = append(sinks, sink.NewJSONL(f))
		case "file":
			f, err := os.OpenFile(sc.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return nil, nil, fmt.Errorf("open sink %s: %w", sc.Path, err)
			}
			closers = append(closers, f)
			sinks = append(sinks, sink.NewStdout(f))
		default:
			return nil, nil, fmt.Errorf("unknown sink type %q", sc.Type)
		}
	}
	return sinks, closers, nil
}
