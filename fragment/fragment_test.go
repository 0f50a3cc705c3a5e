package fragment

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
)

const testFooter = `<style>footer{color:#333}</style><footer><p>Ordo</p></footer>`

func TestHTTP_Fetch(t *testing.T) {
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(testFooter))
	}))
	defer srv.Close()

	src := HTTP(srv.URL+"/footer.html", WithClient(srv.Client()), WithUserAgent("test-agent"))
	frag, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(frag.Body) != testFooter {
		t.Errorf("Body: got %q, want %q", frag.Body, testFooter)
	}
	if frag.Status != http.StatusOK || !frag.OK() {
		t.Errorf("Status: got %d, want 200", frag.Status)
	}
	if frag.URL != src.URL() {
		t.Errorf("URL: got %q, want %q", frag.URL, src.URL())
	}
	if gotUA != "test-agent" {
		t.Errorf("User-Agent: got %q", gotUA)
	}
	if !strings.HasPrefix(gotAccept, "text/html") {
		t.Errorf("Accept: got %q", gotAccept)
	}
}

func TestHTTP_ErrorStatusIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "<h1>Not Found</h1>", http.StatusNotFound)
	}))
	defer srv.Close()

	frag, err := HTTP(srv.URL, WithClient(srv.Client())).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if frag.Status != http.StatusNotFound {
		t.Errorf("Status: got %d, want 404", frag.Status)
	}
	if frag.OK() {
		t.Error("OK should be false for 404")
	}
	if err := frag.CheckStatus(); !errors.Is(err, ErrStatus) {
		t.Errorf("CheckStatus: got %v, want ErrStatus", err)
	}
}

func TestHTTP_BodyOverLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<footer>"))
		w.Write([]byte(strings.Repeat("x", maxBody)))
	}))
	defer srv.Close()

	frag, err := HTTP(srv.URL, WithClient(srv.Client())).Fetch(context.Background())
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("fetch: got %v, want ErrTooLarge", err)
	}
	if frag != nil {
		t.Errorf("fragment: got %+v, want nil", frag)
	}
}

func TestHTTP_BodyAtLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", maxBody)))
	}))
	defer srv.Close()

	frag, err := HTTP(srv.URL, WithClient(srv.Client())).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(frag.Body) != maxBody {
		t.Errorf("Body: got %d bytes, want %d", len(frag.Body), maxBody)
	}
}

func TestHTTP_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := HTTP(url).Fetch(context.Background())
	if err == nil {
		t.Fatal("expected error for closed server")
	}
	if !strings.Contains(err.Error(), "fragment: do") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestHTTP_BadURL(t *testing.T) {
	_, err := HTTP("://bad").Fetch(context.Background())
	if err == nil || !strings.Contains(err.Error(), "new request") {
		t.Fatalf("expected new request error, got %v", err)
	}
}

func TestHTTP_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testFooter))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := HTTP(srv.URL, WithClient(srv.Client())).Fetch(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFile_Fetch(t *testing.T) {
	fsys := fstest.MapFS{"site/footer.html": {Data: []byte(testFooter)}}

	frag, err := File(fsys, "/site/footer.html").Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(frag.Body) != testFooter || frag.Status != 200 {
		t.Errorf("got status %d body %q", frag.Status, frag.Body)
	}

	_, err = File(fsys, "missing.html").Fetch(context.Background())
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("missing file: got %v, want fs.ErrNotExist", err)
	}
}

func TestStatic_Fetch(t *testing.T) {
	frag, err := Static([]byte("x")).Fetch(context.Background())
	if err != nil || string(frag.Body) != "x" || !frag.OK() {
		t.Fatalf("static: got %+v, %v", frag, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Static(nil).Fetch(ctx); err == nil {
		t.Fatal("static: expected error on canceled context")
	}
}

func TestFunc_Fetch(t *testing.T) {
	boom := errors.New("boom")
	src := Func(func(context.Context) (*Fragment, error) { return nil, boom })
	if _, err := src.Fetch(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("func: got %v", err)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		base, ref, want string
	}{
		{"https://ordo.example/docs/a.html", "footer.html", "https://ordo.example/docs/footer.html"},
		{"https://ordo.example/", "footer.html", "https://ordo.example/footer.html"},
		{"https://ordo.example/docs/a.html", "/footer.html", "https://ordo.example/footer.html"},
		{"https://ordo.example/a.html", "https://cdn.example/f.html", "https://cdn.example/f.html"},
		{"", "footer.html", "footer.html"},
	}
	for _, tt := range tests {
		got, err := Resolve(tt.base, tt.ref)
		if err != nil {
			t.Errorf("Resolve(%q, %q): %v", tt.base, tt.ref, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Resolve(%q, %q): got %q, want %q", tt.base, tt.ref, got, tt.want)
		}
	}

	if _, err := Resolve("https://x/", " "); !errors.Is(err, ErrEmptyRef) {
		t.Errorf("empty ref: got %v, want ErrEmptyRef", err)
	}
}

func TestIsRemote(t *testing.T) {
	cases := map[string]bool{
		"https://cdn.example/footer.html": true,
		"http://localhost:8080/f.html":    true,
		"footer.html":                     false,
		"/footer.html":                    false,
		"file:///tmp/footer.html":         false,
	}
	for ref, want := range cases {
		if got := IsRemote(ref); got != want {
			t.Errorf("IsRemote(%q): got %v, want %v", ref, got, want)
		}
	}
}
