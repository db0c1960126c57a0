package outbound

import (
	"fmt"
	"net/http"
	"strings"

	cachekey "github.com/outbound-dev/outbound/pkg/cache-key"
)

// CacheControl records explicit caching intent. The zero value means no
// intent has been expressed; finalization then derives a default.
type CacheControl struct {
	Public bool
	// MaxAge is the max-age directive in seconds. Nil omits the directive
	// entirely; zero is a valid value and is rendered.
	MaxAge         *int
	MustRevalidate bool
	// Extras are extension tokens appended verbatim.
	Extras []string
}

// MaxAgeSeconds is a convenience for populating the MaxAge pointer.
func MaxAgeSeconds(seconds int) *int {
	return &seconds
}

// IsZero reports whether no caching intent has been recorded.
func (c CacheControl) IsZero() bool {
	return !c.Public && c.MaxAge == nil && !c.MustRevalidate && len(c.Extras) == 0
}

// render joins the applicable directives in fixed order: max-age,
// public/private, must-revalidate, extras.
func (c CacheControl) render() string {
	parts := make([]string, 0, 3+len(c.Extras))
	if c.MaxAge != nil {
		parts = append(parts, fmt.Sprintf("max-age=%d", *c.MaxAge))
	}
	if c.Public {
		parts = append(parts, "public")
	} else {
		parts = append(parts, "private")
	}
	if c.MustRevalidate {
		parts = append(parts, "must-revalidate")
	}
	parts = append(parts, c.Extras...)
	return strings.Join(parts, ", ")
}

// Finalize applies HTTP semantics to the accumulated state: content type
// defaulting, conditional GET handling, and Set-Cookie normalization.
// It must be called after handler code has finished mutating the response
// and before the response is serialized, and is designed to run exactly
// once. A second call is harmless: the conditional handling short-circuits
// on the cache control record populated by the first call.
func (r *Response) Finalize() {
	r.defaultContentType()
	r.handleConditionalGet()
	if !r.headers.Has("Set-Cookie") {
		r.headers.Set("Set-Cookie", "")
	}
}

// defaultContentType composes the Content-Type header unless the caller
// already set one. Binary file transfers get no charset suffix.
func (r *Response) defaultContentType() {
	if r.headers.Get("Content-Type") != "" {
		return
	}
	contentType := r.contentType
	if contentType == "" {
		contentType = "text/html"
	}
	charset := r.charset
	if charset == "" {
		charset = r.defaultCharset
	}
	value := contentType
	if !r.sendingFile() {
		value += "; charset=" + charset
	}
	r.headers.Set("Content-Type", value)
}

// handleConditionalGet branches on three mutually exclusive conditions:
// the caller already expressed caching intent, the response is eligible for
// an auto-derived ETag, or the response must not be cached.
func (r *Response) handleConditionalGet() {
	if r.HasETag() || r.HasLastModified() || !r.cacheControl.IsZero() {
		// caller already decided caching policy, never override it
	} else if r.etagEligible() {
		r.headers.Set("ETag", cachekey.Digest(r.body.contents()))
		if r.validator != nil && r.validator.ETagMatches(r.ETag()) {
			r.status = http.StatusNotModified
			r.body = ChunkedBody()
		}
	} else {
		r.headers.Set("Cache-Control", "no-cache")
		return
	}
	r.setConditionalCacheControl()
}

// etagEligible reports whether a content fingerprint can be derived safely:
// the status is unset or 200 and the body content is fully materialized and
// non-empty.
func (r *Response) etagEligible() bool {
	if r.status != 0 && r.status != http.StatusOK {
		return false
	}
	return !r.body.streamed() && !r.body.empty()
}

// setConditionalCacheControl renders the Cache-Control header from the
// intent record, populating the record with the conservative default first
// if it is empty.
func (r *Response) setConditionalCacheControl() {
	if r.cacheControl.IsZero() {
		r.cacheControl = CacheControl{
			MaxAge:         MaxAgeSeconds(0),
			MustRevalidate: true,
		}
	}
	r.headers.Set("Cache-Control", r.cacheControl.render())
}
