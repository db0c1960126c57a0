package outbound

import (
	"crypto/md5"
	"encoding/hex"
	"net/http"
	"testing"
)

func quotedMD5(s string) string {
	sum := md5.Sum([]byte(s))
	return `"` + hex.EncodeToString(sum[:]) + `"`
}

// matchAll always reports a conditional match.
type matchAll struct{}

func (matchAll) ETagMatches(string) bool { return true }

func TestFinalizeDerivesETag(t *testing.T) {
	res := NewResponse()
	res.SetBody(ChunkedBody("hello", ", world"))

	res.Finalize()

	if etag := res.ETag(); etag != quotedMD5("hello, world") {
		t.Fatalf("ETag is %s", etag)
	}
	if cc := res.Headers().Get("Cache-Control"); cc != "max-age=0, private, must-revalidate" {
		t.Fatalf("Cache-Control is %s", cc)
	}
}

func TestFinalizeNotModifiedDowngrade(t *testing.T) {
	res := NewResponse()
	res.SetBody(FixedBody("hello"))
	res.SetValidator(matchAll{})

	res.Finalize()

	if res.Status() != http.StatusNotModified {
		t.Fatalf("Status is %d", res.Status())
	}
	if !res.Body().empty() {
		t.Fatalf("Body is %q", res.Body().contents())
	}
	// the fingerprint of the original content stays on the response
	if etag := res.ETag(); etag != quotedMD5("hello") {
		t.Fatalf("ETag is %s", etag)
	}
}

func TestFinalizeRequestValidator(t *testing.T) {
	etag := quotedMD5("hello")
	req, _ := http.NewRequest("GET", "/", nil)
	req.Header.Set("If-None-Match", etag)

	res := NewResponse()
	res.SetBody(FixedBody("hello"))
	res.SetValidator(RequestValidator{Request: req})

	res.Finalize()

	if res.Status() != http.StatusNotModified {
		t.Fatalf("Status is %d", res.Status())
	}
}

func TestFinalizeExplicitCacheControl(t *testing.T) {
	res := NewResponse()
	res.SetBody(FixedBody("hello"))
	res.SetCacheControl(CacheControl{Public: true, MaxAge: MaxAgeSeconds(60)})

	res.Finalize()

	if cc := res.Headers().Get("Cache-Control"); cc != "max-age=60, public" {
		t.Fatalf("Cache-Control is %s", cc)
	}
	// explicit intent means no derived fingerprint
	if res.HasETag() {
		t.Fatalf("ETag is %s", res.ETag())
	}
}

func TestFinalizeCacheControlExtras(t *testing.T) {
	res := NewResponse()
	res.SetBody(FixedBody("hello"))
	res.SetCacheControl(CacheControl{
		MaxAge:         MaxAgeSeconds(0),
		MustRevalidate: true,
		Extras:         []string{"no-transform"},
	})

	res.Finalize()

	if cc := res.Headers().Get("Cache-Control"); cc != "max-age=0, private, must-revalidate, no-transform" {
		t.Fatalf("Cache-Control is %s", cc)
	}
}

func TestFinalizeStreamedBodyNoCache(t *testing.T) {
	res := NewResponse()
	res.SetBody(StreamedBody(func(r *Response) {
		r.Write("streamed")
	}))

	res.Finalize()

	if cc := res.Headers().Get("Cache-Control"); cc != "no-cache" {
		t.Fatalf("Cache-Control is %s", cc)
	}
	if res.HasETag() {
		t.Fatalf("ETag is %s", res.ETag())
	}
}

func TestFinalizeEmptyBodyNoCache(t *testing.T) {
	res := NewResponse()

	res.Finalize()

	if cc := res.Headers().Get("Cache-Control"); cc != "no-cache" {
		t.Fatalf("Cache-Control is %s", cc)
	}
}

func TestFinalizeNonSuccessNoCache(t *testing.T) {
	res := NewResponse()
	res.SetStatus(http.StatusNotFound)
	res.SetBody(FixedBody("not here"))

	res.Finalize()

	if cc := res.Headers().Get("Cache-Control"); cc != "no-cache" {
		t.Fatalf("Cache-Control is %s", cc)
	}
	if res.HasETag() {
		t.Fatalf("ETag is %s", res.ETag())
	}
}

func TestFinalizeLastModifiedSkipsETag(t *testing.T) {
	res := NewResponse()
	res.SetBody(FixedBody("hello"))
	res.Headers().Set("Last-Modified", "Sun, 06 Nov 1994 08:49:37 GMT")

	res.Finalize()

	if res.HasETag() {
		t.Fatalf("ETag is %s", res.ETag())
	}
	if cc := res.Headers().Get("Cache-Control"); cc != "max-age=0, private, must-revalidate" {
		t.Fatalf("Cache-Control is %s", cc)
	}
}

func TestFinalizeContentTypeDefaults(t *testing.T) {
	res := NewResponse()
	res.SetBody(FixedBody("hello"))

	res.Finalize()

	if ct := res.Headers().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Fatalf("Content-Type is %s", ct)
	}
}

func TestFinalizeContentTypeConfiguredCharset(t *testing.T) {
	res := NewResponse()
	res.SetDefaultCharset("iso-8859-1")
	res.SetContentType("text/plain")

	res.Finalize()

	if ct := res.Headers().Get("Content-Type"); ct != "text/plain; charset=iso-8859-1" {
		t.Fatalf("Content-Type is %s", ct)
	}
}

func TestFinalizeContentTypeBinaryTransfer(t *testing.T) {
	res := NewResponse()
	res.SetContentType("image/png")
	res.Headers().Set("Content-Transfer-Encoding", "binary")

	res.Finalize()

	if ct := res.Headers().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("Content-Type is %s", ct)
	}
}

func TestFinalizeContentTypeExplicitHeaderUntouched(t *testing.T) {
	res := NewResponse()
	res.SetContentType("text/plain")
	res.Headers().Set("Content-Type", "application/json")

	res.Finalize()

	if ct := res.Headers().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type is %s", ct)
	}
}

func TestFinalizeSetCookiePresence(t *testing.T) {
	res := NewResponse()

	res.Finalize()

	if value, ok := res.Headers().Lookup("Set-Cookie"); !ok || value != "" {
		t.Fatalf("Set-Cookie is %q (present: %v)", value, ok)
	}
}

func TestFinalizeTwiceIsStable(t *testing.T) {
	res := NewResponse()
	res.SetBody(ChunkedBody("hello"))

	res.Finalize()
	etag := res.ETag()
	cc := res.Headers().Get("Cache-Control")

	res.Finalize()

	if res.ETag() != etag {
		t.Fatalf("ETag changed to %s", res.ETag())
	}
	if got := res.Headers().Get("Cache-Control"); got != cc {
		t.Fatalf("Cache-Control changed to %s", got)
	}
}
