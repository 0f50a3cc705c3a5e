// CLAUDE:SUMMARY FooterLoader: fetches the footer fragment, mounts its footer and style, falls back to a built-in footer.
// Package footer injects a shared page footer into HTML documents.
//
// A Loader retrieves the footer fragment once per call, moves the first
// <footer> of the fragment to the end of the document body and the first
// <style> to the end of the head. When the fragment cannot be retrieved or
// read it mounts a built-in fallback footer instead. Load never returns an
// error; the Result describes what happened.
package footer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/hazyhaar/footer/dom"
	"github.com/hazyhaar/footer/fragment"
	"github.com/hazyhaar/footer/idgen"
)

// Outcome names what a load mounted.
type Outcome string

const (
	// OutcomeFetched: the fragment's footer was mounted.
	OutcomeFetched Outcome = "fetched"
	// OutcomeNoFooter: the fragment was read but had no <footer>; nothing
	// was mounted.
	OutcomeNoFooter Outcome = "no_footer"
	// OutcomeFallback: the fragment was unusable and the fallback footer
	// was mounted.
	OutcomeFallback Outcome = "fallback"
)

// Result describes one load. Callers are free to ignore it.
type Result struct {
	ID      string
	Outcome Outcome
	Style   bool  // a <style> was moved to the head
	Status  int   // fragment status, 0 when nothing was received
	Err     error // wraps ErrUnavailable when Outcome is OutcomeFallback
}

// Loader mounts the footer fragment into documents. A Loader holds no
// per-document state and may be shared between goroutines as long as each
// goroutine mounts into its own document.
type Loader struct {
	src      fragment.Source
	logger   *slog.Logger
	now      func() time.Time
	fallback FallbackConfig
	policy   *bluemonday.Policy
	strict   bool
	newID    idgen.Generator
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(ld *Loader) { ld.logger = l }
}

// WithClock sets the clock read for the fallback copyright year.
func WithClock(now func() time.Time) Option {
	return func(ld *Loader) { ld.now = now }
}

// WithFallback customises the fallback footer.
func WithFallback(fc FallbackConfig) Option {
	return func(ld *Loader) { ld.fallback = fc }
}

// WithSanitizer filters the children of the fetched footer through p.
// The footer element itself and any <style> are left untouched.
func WithSanitizer(p *bluemonday.Policy) Option {
	return func(ld *Loader) { ld.policy = p }
}

// WithStrictStatus makes a non-2xx fragment response a failure, which
// mounts the fallback. By default such responses are parsed like any other.
func WithStrictStatus(strict bool) Option {
	return func(ld *Loader) { ld.strict = strict }
}

// WithIDGenerator sets the generator for load IDs.
func WithIDGenerator(gen idgen.Generator) Option {
	return func(ld *Loader) { ld.newID = gen }
}

// New creates a Loader reading the fragment from src.
func New(src fragment.Source, opts ...Option) *Loader {
	ld := &Loader{
		src:      src,
		logger:   slog.Default(),
		now:      time.Now,
		fallback: DefaultFallback(),
		newID:    idgen.Default,
	}
	for _, o := range opts {
		o(ld)
	}
	return ld
}

// Init is shorthand for New(src, opts...).Load(ctx, m).
func Init(ctx context.Context, m dom.Mount, src fragment.Source, opts ...Option) Result {
	return New(src, opts...).Load(ctx, m)
}

// Load retrieves the fragment and mounts its footer into m, or the
// fallback footer when retrieval fails. Every call mounts at most one
// footer; calling it twice on the same mount yields two footers.
func (l *Loader) Load(ctx context.Context, m dom.Mount) Result {
	res := Result{ID: l.newID()}
	logger := l.logger.With("load_id", res.ID)

	frag, container, err := l.retrieve(ctx, logger)
	if frag != nil {
		res.Status = frag.Status
	}
	if err != nil {
		logger.Error("footer: fragment unavailable, mounting fallback", "error", err)
		m.AppendBody(BuildFallback(l.now().Year(), l.fallback))
		res.Outcome = OutcomeFallback
		res.Err = err
		return res
	}

	footer := dom.First(container, "footer")
	if footer == nil {
		logger.Warn("footer: fragment has no <footer>, nothing mounted", "url", frag.URL)
		res.Outcome = OutcomeNoFooter
		return res
	}
	dom.Detach(footer)

	if l.policy != nil {
		if err := dom.SetInnerHTML(footer, l.policy.Sanitize(dom.InnerHTML(footer))); err != nil {
			logger.Warn("footer: sanitize", "error", err)
		}
	}
	m.AppendBody(footer)
	res.Outcome = OutcomeFetched

	// Searched after the footer is detached, so a <style> nested in the
	// footer stays there.
	if style := dom.First(container, "style"); style != nil {
		m.AppendHead(style)
		res.Style = true
	}

	logger.Debug("footer: mounted", "url", frag.URL, "status", frag.Status, "style", res.Style)
	return res
}

// retrieve fetches and parses the fragment. Any error it returns wraps
// ErrUnavailable.
func (l *Loader) retrieve(ctx context.Context, logger *slog.Logger) (*fragment.Fragment, *html.Node, error) {
	frag, err := l.src.Fetch(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if frag == nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUnavailable, ErrEmptyFragment)
	}

	if !frag.OK() {
		if l.strict {
			return frag, nil, fmt.Errorf("%w: %w", ErrUnavailable, frag.CheckStatus())
		}
		logger.Warn("footer: fragment served with error status, parsing anyway",
			"url", frag.URL, "status", frag.Status)
	}

	// Bytes that are not UTF-8 decode to U+FFFD, like a browser reading
	// the body as text.
	text := strings.ToValidUTF8(string(frag.Body), "\uFFFD")
	container, err := dom.ParseFragment(strings.NewReader(text))
	if err != nil {
		return frag, nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return frag, container, nil
}
