// Package outbound models the outbound half of an HTTP exchange: a mutable
// response object that accumulates status, headers, cookies, and body
// content, and applies HTTP semantics (content type defaulting, conditional
// GET handling, cache control synthesis) when finalized.
package outbound

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	cachekey "github.com/outbound-dev/outbound/pkg/cache-key"
	headermap "github.com/outbound-dev/outbound/pkg/header-map"
	"github.com/outbound-dev/outbound/rfc9110"
)

// DefaultCharset is appended to defaulted content types unless a charset is
// set explicitly on the response.
const DefaultCharset = "utf-8"

// Validator answers whether a candidate entity tag matches the conditional
// headers of the request being responded to.
type Validator interface {
	ETagMatches(etag string) bool
}

// Response is the outbound response object for one HTTP exchange.
// It is created empty, mutated freely by handler code, finalized exactly
// once, and then read-only until the exchange ends. A Response must not be
// shared between goroutines.
type Response struct {
	status         int
	contentType    string
	charset        string
	defaultCharset string
	body           Body
	headers        *headermap.Map
	cacheControl   CacheControl
	validator      Validator
	writer         func(string)
	onComplete     func(*Response)
	log            zerolog.Logger
}

// NewResponse creates an empty response.
func NewResponse() *Response {
	return &Response{
		headers:        headermap.New(),
		defaultCharset: DefaultCharset,
		log:            log.Logger,
	}
}

// SetLogger replaces the logger used for non-fatal warnings.
func (r *Response) SetLogger(logger zerolog.Logger) {
	r.log = logger
}

// SetDefaultCharset replaces the charset used when content type defaulting
// runs and no explicit charset was set.
func (r *Response) SetDefaultCharset(charset string) {
	if charset != "" {
		r.defaultCharset = charset
	}
}

// SetValidator attaches the conditional-match predicate of the originating
// request. The response only ever queries it, never mutates it.
func (r *Response) SetValidator(v Validator) {
	r.validator = v
}

// Status returns the status code, zero if unset.
func (r *Response) Status() int {
	return r.status
}

// SetStatus sets the status code.
func (r *Response) SetStatus(code int) {
	r.status = code
}

// StatusMessage returns the canonical reason phrase for the current status.
func (r *Response) StatusMessage() string {
	return http.StatusText(r.status)
}

// ParseStatus converts untyped status input to a status code.
// It is the boundary where stringly status codes enter the model.
func ParseStatus(value string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(value))
}

// Headers returns the header map. The map is owned by the response; derived
// accessors like ETag and Location are views into it.
func (r *Response) Headers() *headermap.Map {
	return r.headers
}

// SetHeaders replaces the header map wholesale, e.g. with a test fixture.
func (r *Response) SetHeaders(headers *headermap.Map) {
	if headers != nil {
		r.headers = headers
	}
}

// SetContentType sets the media type used during content type defaulting.
// It does not write the Content-Type header; that happens at finalization.
func (r *Response) SetContentType(contentType string) {
	r.contentType = contentType
}

// SetCharset sets the charset used during content type defaulting.
func (r *Response) SetCharset(charset string) {
	r.charset = charset
}

// Location returns the Location header.
func (r *Response) Location() string {
	return r.headers.Get("Location")
}

// SetLocation sets the Location header.
func (r *Response) SetLocation(location string) {
	r.headers.Set("Location", location)
}

// ETag returns the ETag header verbatim.
func (r *Response) ETag() string {
	return r.headers.Get("ETag")
}

// HasETag reports whether an ETag header is present.
func (r *Response) HasETag() bool {
	return r.headers.Get("ETag") != ""
}

// SetETag stores the quoted MD5 digest of the cache key expansion of the
// given material as the ETag header. Nil or blank material deletes the
// header instead.
func (r *Response) SetETag(material any) {
	if material == nil {
		r.headers.Del("ETag")
		return
	}
	if s, ok := material.(string); ok && strings.TrimSpace(s) == "" {
		r.headers.Del("ETag")
		return
	}
	r.headers.Set("ETag", cachekey.Digest(material))
}

// LastModified parses the Last-Modified header as an HTTP-date.
// It returns false if the header is absent or cannot be parsed.
func (r *Response) LastModified() (time.Time, bool) {
	value := r.headers.Get("Last-Modified")
	if value == "" {
		return time.Time{}, false
	}
	date, err := rfc9110.HttpDate(value)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

// HasLastModified reports whether a Last-Modified header is present.
func (r *Response) HasLastModified() bool {
	return r.headers.Get("Last-Modified") != ""
}

// SetLastModified sets the Last-Modified header in IMF-fixdate format.
func (r *Response) SetLastModified(date time.Time) {
	r.headers.Set("Last-Modified", rfc9110.ToHttpDate(date))
}

// CacheControl returns the explicit caching intent record.
func (r *Response) CacheControl() CacheControl {
	return r.cacheControl
}

// SetCacheControl records explicit caching intent, used during finalization
// instead of the auto-derived default.
func (r *Response) SetCacheControl(cc CacheControl) {
	r.cacheControl = cc
}

// sendingFile reports whether the response is flagged as a binary file
// transfer. File transfers must not get a charset suffix.
func (r *Response) sendingFile() bool {
	return r.headers.Get("Content-Transfer-Encoding") == "binary"
}
