package favicon

import (
	"net/url"
	"path"
	"strconv"
	"strings"
)

// Kind classifies how a candidate is verified
type Kind uint8

const (
	// KindRaster candidates are fetched and decoded as raster images
	KindRaster Kind = iota

	// KindVector candidates (.svg) are verified with a metadata-only request
	KindVector

	// KindService candidates point at an external favicon service
	// they answer with raster payloads and are probed like raster candidates
	KindService
)

// Candidate is a hypothesized absolute icon URL plus its verification kind
type Candidate struct {
	URL  string
	Kind Kind
}

// conventionalPaths is the ordered probe list applied to any origin
// Order encodes priority and must stay stable: plain favicon variants,
// apple touch icons, microsoft tiles, generic icon names, common asset
// directories, then PWA manifest names
var conventionalPaths = []string{
	"/favicon.ico",
	"/favicon.png",
	"/favicon.svg",
	"/favicon.gif",
	"/favicon.jpg",
	"/favicon.jpeg",
	"/favicon.webp",

	"/apple-touch-icon.png",
	"/apple-touch-icon-precomposed.png",
	"/apple-touch-icon-180x180.png",
	"/apple-touch-icon-152x152.png",
	"/apple-touch-icon-144x144.png",
	"/apple-touch-icon-120x120.png",
	"/apple-touch-icon-114x114.png",
	"/apple-touch-icon-76x76.png",
	"/apple-touch-icon-72x72.png",
	"/apple-touch-icon-60x60.png",
	"/apple-touch-icon-57x57.png",

	"/mstile-70x70.png",
	"/mstile-144x144.png",
	"/mstile-150x150.png",
	"/mstile-310x310.png",

	"/icon.png",
	"/icon.svg",
	"/icon.ico",

	"/assets/favicon.ico",
	"/assets/favicon.png",
	"/assets/icon.png",
	"/images/favicon.ico",
	"/images/favicon.png",
	"/images/icon.png",
	"/static/favicon.ico",
	"/static/favicon.png",
	"/img/favicon.ico",
	"/img/favicon.png",
	"/img/icon.png",

	"/android-chrome-192x192.png",
	"/android-chrome-512x512.png",
	"/maskable-icon.png",
	"/pwa-192x192.png",
	"/pwa-512x512.png",
}

// Candidates returns the full ordered probe sequence for an origin:
// every conventional path, then the two terminal favicon services
// The slice is built fresh per call; callers may not mutate shared state
func Candidates(o Origin, size int) []Candidate {
	out := make([]Candidate, 0, len(conventionalPaths)+2)
	base := o.String()
	for _, p := range conventionalPaths {
		out = append(out, Candidate{URL: base + p, Kind: classify(p)})
	}
	out = append(out,
		Candidate{URL: aggregatorURL(o, size), Kind: KindService},
		Candidate{URL: byDomainURL(o.Host, size), Kind: KindService},
	)
	return out
}

// aggregatorURL builds the gstatic faviconV2 service URL keyed by origin
func aggregatorURL(o Origin, size int) string {
	v := url.Values{}
	v.Set("client", "SOCIAL")
	v.Set("type", "FAVICON")
	v.Set("fallback_opts", "TYPE,SIZE,URL")
	v.Set("url", o.String())
	v.Set("size", strconv.Itoa(size))
	return "https://t1.gstatic.com/faviconV2?" + v.Encode()
}

// byDomainURL builds the favicon-by-domain service URL
// this doubles as the terminal fallback that is returned without probing
func byDomainURL(host string, size int) string {
	v := url.Values{}
	v.Set("domain", host)
	v.Set("sz", strconv.Itoa(size))
	return "https://www.google.com/s2/favicons?" + v.Encode()
}

// classify keys verification on the candidate file extension
func classify(ref string) Kind {
	p := ref
	if u, err := url.Parse(ref); err == nil {
		p = u.Path
	}
	if strings.EqualFold(path.Ext(p), ".svg") {
		return KindVector
	}
	return KindRaster
}
