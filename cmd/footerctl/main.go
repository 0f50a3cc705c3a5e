// CLAUDE:SUMMARY CLI for one-shot footer composition (HTML or Markdown) and the footer MCP tools over stdio.
// Command footerctl mounts the shared footer into one page and prints the
// result, or serves the footer MCP tools on stdio.
//
// Usage:
//
//	footerctl -page site/index.html                  # footer.html next to the page
//	footerctl -page - -fragment https://cdn.example/footer.html < index.html
//	footerctl -page site/index.html -format markdown
//	footerctl -mcp -static site
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/footer/dom"
	"github.com/hazyhaar/footer/footer"
	"github.com/hazyhaar/footer/fragment"
	"github.com/hazyhaar/footer/page"
)

type options struct {
	configPath string
	pagePath   string
	fragment   string
	format     string
	strict     bool
	sanitize   bool
	mcp        bool
	staticDir  string
}

func main() {
	var o options
	flag.StringVar(&o.configPath, "config", "", "path to footer.yaml config file")
	flag.StringVar(&o.pagePath, "page", "-", "page to compose, - for stdin")
	flag.StringVar(&o.fragment, "fragment", "", "fragment path or URL (default footer.html next to the page)")
	flag.StringVar(&o.format, "format", "html", "output format: html, markdown")
	flag.BoolVar(&o.strict, "strict", false, "treat non-2xx fragment responses as failures")
	flag.BoolVar(&o.sanitize, "sanitize", false, "sanitize the fetched footer")
	flag.BoolVar(&o.mcp, "mcp", false, "serve the footer MCP tools on stdio")
	flag.StringVar(&o.staticDir, "static", ".", "static root for -mcp")
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, o, os.Stdin, os.Stdout); err != nil {
		logger.Error("footerctl: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, o options, stdin io.Reader, stdout io.Writer) error {
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}

	if o.mcp {
		h := page.NewHandler(os.DirFS(o.staticDir), cfg, page.WithLogger(logger))
		srv := mcp.NewServer(&mcp.Implementation{Name: "footerctl", Version: "1.0.0"}, nil)
		h.RegisterMCP(srv)
		return srv.Run(ctx, &mcp.StdioTransport{})
	}

	in := stdin
	pageDir := "."
	if o.pagePath != "-" {
		f, err := os.Open(o.pagePath)
		if err != nil {
			return fmt.Errorf("open page: %w", err)
		}
		defer f.Close()
		in = f
		pageDir = filepath.Dir(o.pagePath)
	}

	doc, err := dom.Parse(in)
	if err != nil {
		return err
	}

	res := footer.New(sourceFor(cfg, pageDir, logger), cfg.Options(logger)...).Load(ctx, doc)
	logger.Info("footerctl: composed", "outcome", res.Outcome, "style", res.Style, "status", res.Status)

	switch o.format {
	case "markdown", "md":
		md, err := footer.Markdown(doc.Body())
		if err != nil {
			return fmt.Errorf("markdown: %w", err)
		}
		_, err = fmt.Fprintln(stdout, md)
		return err
	case "html":
		return doc.Render(stdout)
	default:
		return fmt.Errorf("unknown format %q", o.format)
	}
}

func loadConfig(o options) (*footer.Config, error) {
	cfg := footer.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = footer.LoadConfigFile(o.configPath); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if o.fragment != "" {
		cfg.Fragment = o.fragment
	}
	if o.strict {
		cfg.StrictStatus = true
	}
	if o.sanitize {
		cfg.Sanitize = true
	}
	return cfg, nil
}

// sourceFor reads a relative fragment from disk next to the page, the way
// a browser resolves footer.html against the page URL.
func sourceFor(cfg *footer.Config, pageDir string, logger *slog.Logger) fragment.Source {
	if fragment.IsRemote(cfg.Fragment) {
		return cfg.HTTPSource(cfg.Fragment, logger)
	}
	p := cfg.Fragment
	if !filepath.IsAbs(p) {
		p = filepath.Join(pageDir, p)
	}
	return fragment.File(os.DirFS(filepath.Dir(p)), filepath.Base(p))
}
