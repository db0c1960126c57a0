package outbound

import (
	"testing"
	"time"

	headermap "github.com/outbound-dev/outbound/pkg/header-map"
)

func TestSetETagDigestsMaterial(t *testing.T) {
	res := NewResponse()

	res.SetETag("some cache key")

	if !res.HasETag() {
		t.Fatal("ETag not set")
	}
	if etag := res.ETag(); etag != quotedMD5("some cache key") {
		t.Fatalf("ETag is %s", etag)
	}
}

func TestSetETagStructuredMaterial(t *testing.T) {
	res := NewResponse()

	res.SetETag([]string{"users", "42"})

	if etag := res.ETag(); etag != quotedMD5("users/42") {
		t.Fatalf("ETag is %s", etag)
	}
}

func TestSetETagBlankClears(t *testing.T) {
	res := NewResponse()
	res.SetETag("some cache key")

	res.SetETag("")

	if res.HasETag() {
		t.Fatalf("ETag is %s", res.ETag())
	}
	if res.Headers().Has("ETag") {
		t.Fatal("ETag header still present")
	}
}

func TestSetETagNilClears(t *testing.T) {
	res := NewResponse()
	res.SetETag("some cache key")

	res.SetETag(nil)

	if res.Headers().Has("ETag") {
		t.Fatal("ETag header still present")
	}
}

func TestLastModifiedRoundTrip(t *testing.T) {
	res := NewResponse()
	date := time.Date(1994, time.November, 6, 8, 49, 37, 500_000_000, time.UTC)

	res.SetLastModified(date)

	got, ok := res.LastModified()
	if !ok {
		t.Fatal("Last-Modified not readable")
	}
	// HTTP-date precision is whole seconds
	if !got.Equal(date.Truncate(time.Second)) {
		t.Fatalf("Last-Modified is %s", got)
	}
	if header := res.Headers().Get("Last-Modified"); header != "Sun, 06 Nov 1994 08:49:37 GMT" {
		t.Fatalf("Last-Modified header is %s", header)
	}
}

func TestLastModifiedAbsent(t *testing.T) {
	res := NewResponse()

	if _, ok := res.LastModified(); ok {
		t.Fatal("Last-Modified reported present")
	}
	if res.HasLastModified() {
		t.Fatal("HasLastModified reported true")
	}
}

func TestLastModifiedGarbled(t *testing.T) {
	res := NewResponse()
	res.Headers().Set("Last-Modified", "not a date")

	if _, ok := res.LastModified(); ok {
		t.Fatal("Last-Modified reported present")
	}
}

func TestLocationView(t *testing.T) {
	res := NewResponse()

	res.SetLocation("/somewhere")

	if loc := res.Location(); loc != "/somewhere" {
		t.Fatalf("Location is %s", loc)
	}
	if header := res.Headers().Get("Location"); header != "/somewhere" {
		t.Fatalf("Location header is %s", header)
	}
}

func TestParseStatus(t *testing.T) {
	if status, err := ParseStatus(" 201 "); err != nil || status != 201 {
		t.Fatalf("Status is %d (%v)", status, err)
	}
	if _, err := ParseStatus("created"); err == nil {
		t.Fatal("No error for non-numeric status")
	}
}

func TestStatusMessage(t *testing.T) {
	res := NewResponse()
	res.SetStatus(404)

	if msg := res.StatusMessage(); msg != "Not Found" {
		t.Fatalf("Message is %s", msg)
	}
}

func TestSetHeadersReplacesWholesale(t *testing.T) {
	res := NewResponse()
	res.Headers().Set("X-Old", "1")

	fixture := headermap.New()
	fixture.Set("X-New", "2")
	res.SetHeaders(fixture)

	if res.Headers().Has("X-Old") {
		t.Fatal("Old header still present")
	}
	if res.Headers().Get("X-New") != "2" {
		t.Fatal("New header missing")
	}
}
