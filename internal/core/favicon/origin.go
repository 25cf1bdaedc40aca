// Package favicon resolves the best available icon for an arbitrary web site URL
// Resolution is a layered pipeline
// 1 Normalize input to a scheme+host origin
// 2 Probe conventional icon paths and two favicon services in fixed priority order
// 3 Fetch the page HTML and probe the icon links it declares
// 4 Fall back to a favicon-by-domain service URL trusted without probing
// 5 Return the configured default icon when nothing else can be built
package favicon

import (
	"net/url"
	"strings"

	perr "iconseek/internal/platform/errors"

	"golang.org/x/net/idna"
)

// Origin is the scheme+host portion of a URL used to build candidate icon URLs
type Origin struct {
	Scheme string
	Host   string
}

// String renders the origin as scheme://host
func (o Origin) String() string { return o.Scheme + "://" + o.Host }

// ParseOrigin validates raw as an absolute http(s) URL and extracts its origin
// Path query and fragment are discarded. International hosts map to their
// punycode form so candidate URLs stay probeable on the wire
func ParseOrigin(raw string) (Origin, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Origin{}, perr.InvalidURLf("empty url")
	}
	u, err := url.Parse(s)
	if err != nil {
		return Origin{}, perr.Wrapf(err, perr.ErrorCodeInvalidURL, "unparseable url %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Origin{}, perr.InvalidURLf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return Origin{}, perr.InvalidURLf("missing host in %q", raw)
	}

	host := strings.ToLower(u.Host)
	if ascii, err := idna.Lookup.ToASCII(u.Hostname()); err == nil && !strings.EqualFold(ascii, u.Hostname()) {
		host = strings.ToLower(ascii)
		if p := u.Port(); p != "" {
			host += ":" + p
		}
	}
	return Origin{Scheme: u.Scheme, Host: host}, nil
}
