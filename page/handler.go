// CLAUDE:SUMMARY HTTP composer: chi router serving a static site with the shared footer mounted into every HTML page.
// Package page serves a static site and mounts the shared footer into every
// HTML page on the way out, once per request. Assets, including the footer
// fragment itself, are served unchanged.
package page

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hazyhaar/footer/dom"
	"github.com/hazyhaar/footer/footer"
	"github.com/hazyhaar/footer/fragment"
)

// OutcomeHeader carries the footer load outcome of a composed page.
const OutcomeHeader = "X-Footer-Outcome"

// Handler composes pages from a static file system.
type Handler struct {
	static     fs.FS
	cfg        *footer.Config
	publicURL  string
	logger     *slog.Logger
	loaderOpts []footer.Option
	now        func() time.Time
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) { h.logger = l }
}

// WithPublicURL makes relative fragment references resolve under base and
// be fetched over HTTP.
func WithPublicURL(base string) Option {
	return func(h *Handler) { h.publicURL = strings.TrimRight(base, "/") }
}

// WithLoaderOptions appends options to every loader the handler creates.
func WithLoaderOptions(opts ...footer.Option) Option {
	return func(h *Handler) { h.loaderOpts = append(h.loaderOpts, opts...) }
}

// WithClock sets the clock used for fallback footers.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// NewHandler creates a Handler serving static. A nil cfg uses
// footer.DefaultConfig.
func NewHandler(static fs.FS, cfg *footer.Config, opts ...Option) *Handler {
	if cfg == nil {
		cfg = footer.DefaultConfig()
	}
	h := &Handler{
		static: static,
		cfg:    cfg,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Router returns the chi router for the handler.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(h.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	r.Get("/*", h.servePage)
	r.Head("/*", h.servePage)
	return r
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Info("page: request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (h *Handler) servePage(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" || strings.HasSuffix(r.URL.Path, "/") {
		name = path.Join(name, "index.html")
	}

	if !isHTML(name) || h.isFragment(name) {
		http.FileServer(http.FS(h.static)).ServeHTTP(w, r)
		return
	}

	data, err := fs.ReadFile(h.static, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error("page: read", "name", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	doc, res, err := h.Compose(r.Context(), "/"+name, bytes.NewReader(data))
	if err != nil {
		h.logger.Error("page: compose", "name", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		h.logger.Error("page: render", "name", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set(OutcomeHeader, string(res.Outcome))
	w.Header().Set("Cache-Control", "no-cache")
	if r.Method == http.MethodHead {
		return
	}
	w.Write(buf.Bytes())
}

// Compose parses a page and mounts the footer into it. pagePath is the
// page's path under the static root, used to resolve the fragment.
func (h *Handler) Compose(ctx context.Context, pagePath string, page io.Reader) (*dom.Document, footer.Result, error) {
	doc, err := dom.Parse(page)
	if err != nil {
		return nil, footer.Result{}, err
	}
	src, err := h.cfg.Source(h.publicURL+pagePath, h.static, h.logger)
	if err != nil {
		return nil, footer.Result{}, err
	}
	res := h.loader(src).Load(ctx, doc)
	return doc, res, nil
}

func (h *Handler) loader(src fragment.Source) *footer.Loader {
	opts := append(h.cfg.Options(h.logger), footer.WithClock(h.now))
	opts = append(opts, h.loaderOpts...)
	return footer.New(src, opts...)
}

// isFragment reports whether name is the fragment a page at name would
// load, so the fragment is served raw instead of composed into itself.
func (h *Handler) isFragment(name string) bool {
	if fragment.IsRemote(h.cfg.Fragment) {
		return false
	}
	ref, err := fragment.Resolve("/"+name, h.cfg.Fragment)
	if err != nil {
		return false
	}
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return strings.TrimPrefix(u.Path, "/") == name
}

func isHTML(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".html" || ext == ".htm"
}
