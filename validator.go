package outbound

import (
	"net/http"

	"github.com/outbound-dev/outbound/rfc9110"
)

// RequestValidator adapts an incoming request to the Validator interface
// using If-None-Match evaluation as defined in RFC 9110.
type RequestValidator struct {
	Request *http.Request
}

// ETagMatches reports whether the candidate entity tag matches the
// request's If-None-Match header.
func (v RequestValidator) ETagMatches(etag string) bool {
	if v.Request == nil {
		return false
	}
	return rfc9110.IfNoneMatch(v.Request.Header.Get("If-None-Match"), etag)
}
