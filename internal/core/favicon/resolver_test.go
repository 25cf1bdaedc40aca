package favicon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	kit "iconseek/internal/platform/testkit"
)

// recorder tracks every path the resolver requested, in order
type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (rec *recorder) add(p string) {
	rec.mu.Lock()
	rec.paths = append(rec.paths, p)
	rec.mu.Unlock()
}

func (rec *recorder) count(p string) int {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	n := 0
	for _, got := range rec.paths {
		if got == p {
			n++
		}
	}
	return n
}

func (rec *recorder) total() int {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return len(rec.paths)
}

func TestResolve_MalformedInput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request for %s", r.URL.Path)
	}))
	defer srv.Close()

	r := testResolver(srv, Config{})
	for _, in := range []string{"", "not a url", "ftp://example.com", "https://"} {
		rep := r.ResolveReport(context.Background(), in)
		if rep.IconURL != DefaultIconURL {
			t.Fatalf("ResolveReport(%q).IconURL = %q, want default", in, rep.IconURL)
		}
		if rep.Phase != PhaseDefault {
			t.Fatalf("ResolveReport(%q).Phase = %q, want default", in, rep.Phase)
		}
		if rep.Probes != 0 {
			t.Fatalf("ResolveReport(%q) issued %d probes, want 0", in, rep.Probes)
		}
	}
}

func TestResolve_DirectHitShortCircuits(t *testing.T) {
	icon := tinyPNG(t)
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r.URL.Path)
		if r.URL.Path == "/favicon.ico" {
			w.Header().Set("Content-Type", "image/x-icon")
			_, _ = w.Write(icon) // png bytes behind an ico name still decode
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	r := testResolver(srv, Config{})
	rep := r.ResolveReport(context.Background(), "https://site.test/some/page")

	if rep.Phase != PhaseDirect {
		t.Fatalf("Phase = %q, want direct", rep.Phase)
	}
	if rep.IconURL != "https://site.test/favicon.ico" {
		t.Fatalf("IconURL = %q, want first conventional path", rep.IconURL)
	}
	if rep.Probes != 1 {
		t.Fatalf("Probes = %d, want 1 (must stop at first hit)", rep.Probes)
	}
	if rec.total() != 1 {
		t.Fatalf("server saw %d requests, want 1: %v", rec.total(), rec.paths)
	}
}

func TestResolve_HTMLDeclaredIcon(t *testing.T) {
	icon := tinyPNG(t)
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r.URL.Path)
		switch r.URL.Path {
		case "/":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html><head><meta property="og:image" content="/brand.png"></head></html>`))
		case "/brand.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(icon)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	r := testResolver(srv, Config{})
	rep := r.ResolveReport(context.Background(), "http://site.test")

	if rep.Phase != PhaseHTML {
		t.Fatalf("Phase = %q, want html", rep.Phase)
	}
	if rep.IconURL != "http://site.test/brand.png" {
		t.Fatalf("IconURL = %q, want the og:image target", rep.IconURL)
	}
	// every direct candidate was probed before the page was consulted
	if rep.Probes != len(conventionalPaths)+2+1 {
		t.Fatalf("Probes = %d, want all direct candidates plus the html one", rep.Probes)
	}
}

func TestResolve_ServiceFallbackUnprobed(t *testing.T) {
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r.URL.Path)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	r := testResolver(srv, Config{IconSize: 128})
	rep := r.ResolveReport(context.Background(), "https://site.test")

	if rep.Phase != PhaseService {
		t.Fatalf("Phase = %q, want service", rep.Phase)
	}
	kit.MustContain(t, rep.IconURL, "www.google.com/s2/favicons")
	kit.MustContain(t, rep.IconURL, "domain=site.test")
	kit.MustContain(t, rep.IconURL, "sz=128")

	// the by-domain service is probed once as a direct candidate and then
	// trusted as the fallback without a second request
	if n := rec.count("/s2/favicons"); n != 1 {
		t.Fatalf("/s2/favicons requested %d times, want 1", n)
	}
}

func TestResolve_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := testResolver(srv, Config{})
	rep := r.ResolveReport(ctx, "https://site.test")

	if rep.Phase != PhaseService {
		t.Fatalf("Phase = %q, want service fallback when probing is abandoned", rep.Phase)
	}
	if rep.Probes != 0 {
		t.Fatalf("Probes = %d, want 0 on a dead context", rep.Probes)
	}
}

func TestResolve_MatchesReport(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	r := testResolver(srv, Config{})
	got := r.Resolve(context.Background(), "https://site.test")
	rep := r.ResolveReport(context.Background(), "https://site.test")
	if got != rep.IconURL {
		t.Fatalf("Resolve = %q, ResolveReport.IconURL = %q", got, rep.IconURL)
	}
	if !strings.HasPrefix(got, "https://www.google.com/s2/favicons") {
		t.Fatalf("fallback URL = %q", got)
	}
}

func TestNew_Defaults(t *testing.T) {
	r := New(Config{})
	if r.cfg.ProbeTimeout != DefaultProbeTimeout || r.cfg.FetchTimeout != DefaultFetchTimeout {
		t.Fatalf("timeout defaults not applied: %+v", r.cfg)
	}
	if r.cfg.IconSize != DefaultIconSize || r.cfg.UserAgent != DefaultUserAgent {
		t.Fatalf("size/agent defaults not applied: %+v", r.cfg)
	}
	if r.cfg.DefaultIconURL != DefaultIconURL {
		t.Fatalf("default icon URL not applied: %+v", r.cfg)
	}
}
