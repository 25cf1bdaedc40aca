package favicon

import (
	"context"
	"image"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	// Register decoders so image.DecodeConfig can sniff the formats
	// favicons actually ship in
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "github.com/biessek/golang-ico"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// maxProbeBytes bounds how much of a candidate body we will read while
// decoding its header. 4 MiB is generous for any real icon
const maxProbeBytes = 4 << 20

// probe reports whether the candidate URL serves a usable icon right now
// Vector candidates get a metadata-only check; raster and service candidates
// are fetched and their image header decoded. Any failure means "not usable",
// never an error: the caller just moves to the next candidate
func (r *Resolver) probe(ctx context.Context, c Candidate) bool {
	if c.Kind == KindVector {
		return r.probeVector(ctx, c.URL)
	}
	return r.probeRaster(ctx, c.URL)
}

// probeVector verifies an SVG candidate without downloading it
// SVG has no raster header to decode, so a 2xx with an image content type
// is the strongest check available
func (r *Resolver) probeVector(ctx context.Context, rawURL string) bool {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", r.cfg.UserAgent)
	// ask intermediaries for the live resource, not a stale cached copy
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := r.http.Do(req)
	if err != nil {
		return false
	}
	defer drain(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false
	}
	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	return strings.Contains(ct, "svg") || strings.HasPrefix(ct, "image/")
}

// probeRaster fetches the candidate and decodes just the image header
// A decodable header with nonzero dimensions is proof enough that the URL
// serves a real image and not an HTML 404 page
func (r *Resolver) probeRaster(ctx context.Context, rawURL string) bool {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cacheBust(rawURL, r.now().Unix()), nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", r.cfg.UserAgent)

	resp, err := r.http.Do(req)
	if err != nil {
		return false
	}
	defer drain(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false
	}

	cfg, _, err := image.DecodeConfig(io.LimitReader(resp.Body, maxProbeBytes))
	if err != nil {
		return false
	}
	return cfg.Width > 0 && cfg.Height > 0
}

// cacheBust appends a cache=<unix> query parameter so CDNs and proxies
// cannot serve us a cached copy of an icon that has since disappeared
func cacheBust(rawURL string, unix int64) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set("cache", strconv.FormatInt(unix, 10))
	u.RawQuery = q.Encode()
	return u.String()
}

// drain empties and closes a response body so the connection can be reused
func drain(rc io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, maxProbeBytes))
	_ = rc.Close()
}
