package urlutil

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// InvalidURLError indicates input that cannot be used as a crawl target
type InvalidURLError struct {
	URL    string
	Reason string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid URL %q: %s", e.URL, e.Reason)
}

// Normalize canonicalizes a URL into the string form used as the frontier's
// deduplication key. The result is stable: Normalize(Normalize(u)) == Normalize(u).
//
// Rules: scheme and host are lower-cased, the fragment is dropped, default
// ports are stripped, dot segments are resolved, and a bare origin gets a "/"
// path so "https://example.com" and "https://example.com/" collapse to one key.
// Query parameters are re-encoded in sorted key order.
func Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", &InvalidURLError{URL: raw, Reason: "empty"}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", &InvalidURLError{URL: raw, Reason: err.Error()}
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", &InvalidURLError{URL: raw, Reason: "scheme must be http or https"}
	}
	if u.Host == "" {
		return "", &InvalidURLError{URL: raw, Reason: "missing host"}
	}

	u.Host = strings.ToLower(u.Host)
	switch u.Scheme {
	case "http":
		u.Host = strings.TrimSuffix(u.Host, ":80")
	case "https":
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}

	// Resolve "." and ".." segments. path.Clean also drops any trailing
	// slash below the root, which keeps the form canonical.
	if u.Path == "" {
		u.Path = "/"
	} else {
		cleaned := path.Clean(u.Path)
		if cleaned == "." {
			cleaned = "/"
		}
		u.Path = cleaned
	}

	u.Fragment = ""
	u.RawFragment = ""
	u.RawQuery = u.Query().Encode()

	return u.String(), nil
}

// Resolve turns an attribute reference (href or src) into an absolute URL
// against the page it appeared on. Absolute references pass through,
// origin-relative ones attach to the page's origin, and everything else is
// resolved relative to the page URL. Non-navigable schemes are rejected.
func Resolve(ref, pageURL string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "#") ||
		strings.HasPrefix(ref, "javascript:") ||
		strings.HasPrefix(ref, "mailto:") ||
		strings.HasPrefix(ref, "tel:") {
		return "", &InvalidURLError{URL: ref, Reason: "not a navigable reference"}
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return "", &InvalidURLError{URL: pageURL, Reason: err.Error()}
	}

	u, err := url.Parse(ref)
	if err != nil {
		return "", &InvalidURLError{URL: ref, Reason: err.Error()}
	}

	resolved := base.ResolveReference(u)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", &InvalidURLError{URL: ref, Reason: "unsupported scheme"}
	}

	resolved.Fragment = ""
	return resolved.String(), nil
}

// SameOrigin reports whether a resolved link belongs to the page's origin
func SameOrigin(link, pageURL string) bool {
	l, err := url.Parse(link)
	if err != nil {
		return false
	}
	p, err := url.Parse(pageURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(l.Scheme, p.Scheme) && strings.EqualFold(l.Host, p.Host)
}

// Host extracts the hostname from a URL, empty when unparseable
func Host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
