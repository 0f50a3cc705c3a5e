// CLAUDE:SUMMARY Fragment sources (HTTP GET, fs.FS file, static bytes) and browser-style reference resolution.
// Package fragment retrieves the footer fragment. A Source performs one
// retrieval per call: no retries and no caching.
package fragment

import (
	"context"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
)

// DefaultRef is the fragment reference used when none is configured.
const DefaultRef = "footer.html"

// Fragment is a retrieved fragment body. Status is the HTTP status for
// HTTP sources and 200 for the others.
type Fragment struct {
	URL    string
	Status int
	Body   []byte
}

// OK reports whether Status is 2xx.
func (f *Fragment) OK() bool {
	return f.Status >= 200 && f.Status < 300
}

// CheckStatus returns an error wrapping ErrStatus when Status is not 2xx.
func (f *Fragment) CheckStatus() error {
	if f.OK() {
		return nil
	}
	return fmt.Errorf("%w: %d from %s", ErrStatus, f.Status, f.URL)
}

// Source retrieves a fragment.
type Source interface {
	Fetch(ctx context.Context) (*Fragment, error)
}

// Func adapts a function to Source.
type Func func(ctx context.Context) (*Fragment, error)

// Fetch calls f.
func (f Func) Fetch(ctx context.Context) (*Fragment, error) {
	return f(ctx)
}

type staticSource struct {
	body []byte
}

// Static returns a Source that always yields body.
func Static(body []byte) Source {
	return staticSource{body: body}
}

func (s staticSource) Fetch(ctx context.Context) (*Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Fragment{URL: "static:", Status: 200, Body: s.body}, nil
}

type fileSource struct {
	fsys fs.FS
	name string
}

// File returns a Source reading name from fsys. A missing file is an error:
// unlike HTTP there is no status to carry the failure.
func File(fsys fs.FS, name string) Source {
	return fileSource{fsys: fsys, name: strings.TrimPrefix(name, "/")}
}

func (s fileSource) Fetch(ctx context.Context) (*Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := fs.ReadFile(s.fsys, s.name)
	if err != nil {
		return nil, fmt.Errorf("fragment: read %s: %w", s.name, err)
	}
	return &Fragment{URL: "file:" + s.name, Status: 200, Body: body}, nil
}

// Resolve resolves ref against base the way a browser resolves a relative
// fetch: "footer.html" against "https://x/docs/a.html" gives
// "https://x/docs/footer.html". An absolute ref is returned as is.
func Resolve(base, ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", ErrEmptyRef
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("fragment: parse ref: %w", err)
	}
	if base == "" {
		return r.String(), nil
	}
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("fragment: parse base: %w", err)
	}
	return b.ResolveReference(r).String(), nil
}

// IsRemote reports whether ref is an absolute http(s) URL.
func IsRemote(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
