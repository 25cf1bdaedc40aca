package favicon

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

// maxDocumentBytes bounds how much HTML we will parse looking for icon links
const maxDocumentBytes = 2 << 20

// iconRels are the <link rel> values that declare an icon
var iconRels = map[string]bool{
	"icon":             true,
	"shortcut icon":    true,
	"apple-touch-icon": true,
}

// metaImageProps are the <meta> property/name values whose content is a
// representative image. They rank below declared icons: a social share card
// is a worse icon than a real favicon, but better than nothing
var metaImageProps = map[string]bool{
	"og:image":                true,
	"msapplication-tileimage": true,
	"twitter:image":           true,
}

// extractIconLinks fetches the page at pageURL and returns the icon
// candidates its markup declares, in document priority order: link rels
// first, then meta image tags. References resolve against the page URL;
// malformed ones are skipped. Any fetch or parse failure yields nil
func (r *Resolver) extractIconLinks(ctx context.Context, pageURL string) []Candidate {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", r.cfg.UserAgent)

	resp, err := r.http.Do(req)
	if err != nil {
		return nil
	}
	defer drain(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil
	}
	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(ct, "text/html") && !strings.Contains(ct, "application/xhtml") {
		return nil
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	var body io.Reader = io.LimitReader(resp.Body, maxDocumentBytes)
	if dec, err := charset.NewReader(body, resp.Header.Get("Content-Type")); err == nil {
		body = dec
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil
	}

	var out []Candidate
	seen := map[string]bool{}
	add := func(ref string) {
		abs := resolveRef(base, ref)
		if abs == "" || seen[abs] {
			return
		}
		seen[abs] = true
		out = append(out, Candidate{URL: abs, Kind: classify(abs)})
	}

	doc.Find("link[rel]").Each(func(_ int, s *goquery.Selection) {
		rel, _ := s.Attr("rel")
		if !iconRels[strings.ToLower(strings.TrimSpace(rel))] {
			return
		}
		if href, ok := s.Attr("href"); ok {
			add(href)
		}
	})

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		key, ok := s.Attr("property")
		if !ok {
			key, ok = s.Attr("name")
		}
		if !ok || !metaImageProps[strings.ToLower(strings.TrimSpace(key))] {
			return
		}
		if content, ok := s.Attr("content"); ok {
			add(content)
		}
	})

	return out
}

// resolveRef turns a document reference into an absolute http(s) URL,
// or "" when the reference cannot serve as a probe target
func resolveRef(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	abs := base.ResolveReference(u)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return ""
	}
	if abs.Host == "" {
		return ""
	}
	return abs.String()
}
