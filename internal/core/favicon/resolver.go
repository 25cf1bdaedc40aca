package favicon

import (
	"context"
	"net/http"
	"time"

	"iconseek/internal/platform/logger"
)

// Defaults applied by New when Config leaves a field zero
const (
	DefaultProbeTimeout = 3 * time.Second
	DefaultFetchTimeout = 5 * time.Second
	DefaultIconSize     = 64
	DefaultUserAgent    = "Mozilla/5.0 (compatible; iconseek/1.0; +https://iconseek.dev)"

	// DefaultIconURL is the placeholder returned when every other phase
	// comes up empty. It is a plain constant: the terminal phase must not
	// depend on the input URL being parseable at all
	DefaultIconURL = "https://placehold.co/64x64/png?text=%3F"
)

// Phase names which pipeline stage produced the resolved icon URL
type Phase string

const (
	// PhaseDirect means a conventional path or probeable service answered
	PhaseDirect Phase = "direct"

	// PhaseHTML means the page's own markup declared the icon
	PhaseHTML Phase = "html"

	// PhaseService means the unprobed favicon-by-domain fallback was used
	PhaseService Phase = "service"

	// PhaseDefault means the configured placeholder was used
	PhaseDefault Phase = "default"
)

// Config tunes a Resolver. Zero values select the package defaults
type Config struct {
	ProbeTimeout   time.Duration
	FetchTimeout   time.Duration
	UserAgent      string
	IconSize       int
	DefaultIconURL string
}

// Resolver runs the icon resolution pipeline. It is safe for concurrent use
type Resolver struct {
	cfg  Config
	http *http.Client
	log  logger.Logger
	now  func() time.Time
}

// Option customizes a Resolver at construction time
type Option func(*Resolver)

// WithHTTPClient swaps the transport, mainly for tests against httptest servers
func WithHTTPClient(c *http.Client) Option {
	return func(r *Resolver) {
		if c != nil {
			r.http = c
		}
	}
}

// WithClock swaps the time source used for cache-busting query params
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

// New builds a Resolver, filling unset Config fields with defaults
func New(cfg Config, opts ...Option) *Resolver {
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = DefaultProbeTimeout
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.IconSize <= 0 {
		cfg.IconSize = DefaultIconSize
	}
	if cfg.DefaultIconURL == "" {
		cfg.DefaultIconURL = DefaultIconURL
	}
	r := &Resolver{
		cfg:  cfg,
		http: &http.Client{},
		log:  *logger.Named("favicon"),
		now:  time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Report describes one resolution end to end
type Report struct {
	Input   string
	IconURL string
	Phase   Phase
	Probes  int
	Elapsed time.Duration
}

// pipeline states. Transitions only move forward; every state has a
// successor, so the machine always terminates with an icon URL
type state uint8

const (
	stateStart state = iota
	stateDirectProbe
	stateHTMLProbe
	stateServiceFallback
	stateDefault
)

// Resolve returns the best icon URL for raw. It never returns an error and
// never panics: any failure just walks the pipeline toward the default icon
func (r *Resolver) Resolve(ctx context.Context, raw string) string {
	return r.ResolveReport(ctx, raw).IconURL
}

// ResolveReport is Resolve plus per-resolution diagnostics
func (r *Resolver) ResolveReport(ctx context.Context, raw string) (rep Report) {
	start := r.now()
	rep.Input = raw
	defer func() {
		if p := recover(); p != nil {
			r.log.Error().Interface("panic", p).Str("input", raw).
				Msg("resolution panicked; serving default icon")
			rep.IconURL = r.cfg.DefaultIconURL
			rep.Phase = PhaseDefault
		}
		rep.Elapsed = r.now().Sub(start)
	}()

	var origin Origin
	st := stateStart

	for {
		switch st {
		case stateStart:
			o, err := ParseOrigin(raw)
			if err != nil {
				r.log.Debug().Err(err).Str("input", raw).Msg("unusable input")
				st = stateDefault
				continue
			}
			origin = o
			st = stateDirectProbe

		case stateDirectProbe:
			if url, ok := r.probeAll(ctx, &rep, Candidates(origin, r.cfg.IconSize)); ok {
				rep.IconURL = url
				rep.Phase = PhaseDirect
				return
			}
			st = stateHTMLProbe

		case stateHTMLProbe:
			links := r.extractIconLinks(ctx, origin.String()+"/")
			if url, ok := r.probeAll(ctx, &rep, links); ok {
				rep.IconURL = url
				rep.Phase = PhaseHTML
				return
			}
			st = stateServiceFallback

		case stateServiceFallback:
			// trusted without probing: the service itself falls back to a
			// generic glyph, so it always yields a renderable image
			rep.IconURL = byDomainURL(origin.Host, r.cfg.IconSize)
			rep.Phase = PhaseService
			return

		default: // stateDefault
			rep.IconURL = r.cfg.DefaultIconURL
			rep.Phase = PhaseDefault
			return
		}
	}
}

// probeAll tries candidates in order and returns the first that verifies
// Probing stops early once the context is done; the remaining candidates
// could only time out one by one
func (r *Resolver) probeAll(ctx context.Context, rep *Report, cands []Candidate) (string, bool) {
	for _, c := range cands {
		if ctx.Err() != nil {
			return "", false
		}
		rep.Probes++
		if r.probe(ctx, c) {
			r.log.Debug().Str("url", c.URL).Int("probes", rep.Probes).Msg("candidate verified")
			return c.URL, true
		}
	}
	return "", false
}
