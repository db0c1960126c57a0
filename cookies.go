package outbound

import (
	"net/url"
	"sort"
	"strings"
)

// CookieOptions carries the optional attributes of one Set-Cookie directive.
// Keys are attribute names (case-insensitive); an empty value renders the
// attribute as a bare flag (Secure, HttpOnly).
type CookieOptions map[string]string

// Attribute rendering order, so that directives come out deterministic.
var cookieAttributeOrder = []string{
	"path", "domain", "expires", "max-age", "secure", "httponly", "samesite",
}

var cookieAttributeNames = map[string]string{
	"path":     "Path",
	"domain":   "Domain",
	"expires":  "Expires",
	"max-age":  "Max-Age",
	"secure":   "Secure",
	"httponly": "HttpOnly",
	"samesite": "SameSite",
}

// SetCookie serializes one cookie directive and appends it to the
// Set-Cookie header. Multiple directives are newline-joined within the
// single header value; name and value are percent-encoded.
func (r *Response) SetCookie(name, value string, options CookieOptions) {
	directive := url.QueryEscape(name) + "=" + url.QueryEscape(value)
	attrs := r.normalizeCookieOptions(options)
	for _, key := range cookieAttributeOrder {
		val, ok := attrs[key]
		if !ok {
			continue
		}
		directive += renderCookieAttribute(cookieAttributeNames[key], val)
		delete(attrs, key)
	}
	// unknown attributes go last, sorted for stable output
	rest := make([]string, 0, len(attrs))
	for key := range attrs {
		rest = append(rest, key)
	}
	sort.Strings(rest)
	for _, key := range rest {
		directive += renderCookieAttribute(key, attrs[key])
	}
	if existing := r.headers.Get("Set-Cookie"); existing != "" {
		directive = existing + "\n" + directive
	}
	r.headers.Set("Set-Cookie", directive)
}

func renderCookieAttribute(name, value string) string {
	if value == "" {
		return "; " + name
	}
	return "; " + name + "=" + value
}

// normalizeCookieOptions lowercases attribute keys and remaps the
// deprecated http_only key to httponly with a non-fatal warning.
func (r *Response) normalizeCookieOptions(options CookieOptions) map[string]string {
	normalized := make(map[string]string, len(options))
	for key, value := range options {
		key = strings.ToLower(key)
		if key == "http_only" {
			r.log.Warn().Msg("Cookie option http_only is deprecated, use httponly")
			key = "httponly"
		}
		normalized[key] = value
	}
	return normalized
}

// Cookies parses the Set-Cookie header into a name to value mapping.
// Only the first name=value pair of each newline-joined directive is kept,
// percent-decoded. Malformed directives are skipped; the header itself
// stays authoritative.
func (r *Response) Cookies() map[string]string {
	cookies := make(map[string]string)
	header := r.headers.Get("Set-Cookie")
	if header == "" {
		return cookies
	}
	for _, directive := range strings.Split(header, "\n") {
		pair, _, _ := strings.Cut(directive, ";")
		rawName, rawValue, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		name, err := url.QueryUnescape(strings.TrimSpace(rawName))
		if err != nil || name == "" {
			continue
		}
		value, err := url.QueryUnescape(strings.TrimSpace(rawValue))
		if err != nil {
			continue
		}
		cookies[name] = value
	}
	return cookies
}
