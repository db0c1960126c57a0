package outbound

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/outbound-dev/outbound/cache"
	cacherules "github.com/outbound-dev/outbound/pkg/cache-rules"
	headermap "github.com/outbound-dev/outbound/pkg/header-map"
	"github.com/outbound-dev/outbound/pkg/observability"
	recorder "github.com/outbound-dev/outbound/pkg/response-recorder"
	"github.com/outbound-dev/outbound/rfc9110"
)

// Config configures the finalization middleware.
type Config struct {
	// Store for finalized responses. Responses are not persisted when nil.
	Store cache.Provider
	// Charset used for content type defaulting.
	// DefaultCharset is used if empty.
	Charset string
	// Rules applied to response headers before finalization.
	Rules cacherules.Rules
	// Logger to use. The global zerolog logger is used if nil.
	Logger *zerolog.Logger
}

// Middleware wraps handlers so that their output passes through response
// finalization before reaching the client: defaulted content types, derived
// ETags and Cache-Control, and 304 short-circuits for conditional requests.
type Middleware struct {
	store   cache.Provider
	charset string
	rules   cacherules.Rules
	log     zerolog.Logger
}

// New creates a middleware instance from the given config.
func New(config Config) *Middleware {
	logger := log.Logger
	if config.Logger != nil {
		logger = *config.Logger
	}
	return &Middleware{
		store:   config.Store,
		charset: config.Charset,
		rules:   config.Rules,
		log:     logger,
	}
}

// Middleware returns a handler that finalizes the output of next.
func (m *Middleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.serveStored(w, r) {
			return
		}
		rec := recorder.New()
		next.ServeHTTP(rec, r)
		res := m.buildResponse(rec, r)
		m.rules.Apply(res.Headers(), r, res.Status())
		m.adoptCacheControlHeader(res)
		res.Finalize()
		if res.Status() == http.StatusNotModified {
			observability.NotModifiedTotal.Inc()
		}
		m.saveResponse(res, r)
		m.writeResponse(w, res)
	})
}

// buildResponse rebuilds the recorded handler output as a Response with the
// request's conditional-match predicate attached.
func (m *Middleware) buildResponse(rec *recorder.Recorder, r *http.Request) *Response {
	res := NewResponse()
	res.SetLogger(m.log)
	res.SetDefaultCharset(m.charset)
	res.SetStatus(rec.StatusCode())
	res.SetBody(ChunkedBody(rec.Chunks()...))
	res.SetValidator(RequestValidator{Request: r})
	for name, values := range rec.Header() {
		if name == "Set-Cookie" {
			res.Headers().Set(name, strings.Join(values, "\n"))
			continue
		}
		res.Headers().Set(name, strings.Join(values, ", "))
	}
	return res
}

// adoptCacheControlHeader is the boundary where a raw Cache-Control header,
// written by the handler or by a rule, becomes the typed intent record.
// Finalization then treats it as explicit caller intent and re-renders the
// header from the record.
func (m *Middleware) adoptCacheControlHeader(res *Response) {
	value := res.Headers().Get("Cache-Control")
	if value == "" || !res.CacheControl().IsZero() {
		return
	}
	res.SetCacheControl(parseCacheControl(value))
	res.Headers().Del("Cache-Control")
}

// parseCacheControl parses a Cache-Control value into an intent record.
// Unrecognized directives are carried along as extension tokens.
func parseCacheControl(value string) CacheControl {
	cc := CacheControl{}
	for _, directive := range strings.Split(value, ",") {
		name, arg, _ := strings.Cut(strings.TrimSpace(directive), "=")
		switch strings.ToLower(name) {
		case "public":
			cc.Public = true
		case "private":
			cc.Public = false
		case "must-revalidate":
			cc.MustRevalidate = true
		case "max-age":
			if seconds, err := strconv.Atoi(strings.Trim(arg, "\"")); err == nil {
				cc.MaxAge = MaxAgeSeconds(seconds)
			}
		case "":
		default:
			cc.Extras = append(cc.Extras, strings.TrimSpace(directive))
		}
	}
	return cc
}

// writeResponse emits the finalized response to the client.
func (m *Middleware) writeResponse(w http.ResponseWriter, res *Response) {
	res.Headers().Each(func(name, value string) {
		if strings.EqualFold(name, "Set-Cookie") {
			for _, cookie := range strings.Split(value, "\n") {
				if cookie != "" {
					w.Header().Add("Set-Cookie", cookie)
				}
			}
			return
		}
		w.Header().Set(name, value)
	})
	status := res.Status()
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	res.Each(func(chunk string) {
		if chunk != "" {
			w.Write([]byte(chunk))
		}
	})
	observability.ResponsesTotal.WithLabelValues(statusClass(status)).Inc()
	m.log.Debug().Int("status", status).Str("etag", res.ETag()).Msg("Sent finalized response")
}

// serveStored serves a previously stored finalized response if a fresh one
// exists for the request. A conditional request matching the stored ETag is
// answered with 304 without a body.
func (m *Middleware) serveStored(w http.ResponseWriter, r *http.Request) bool {
	if m.store == nil || r.Method != http.MethodGet {
		return false
	}
	// responses to authenticated requests are never shared
	if r.Header.Get("Authorization") != "" {
		return false
	}
	key := storeKey(r)
	entry, ok, err := m.store.Get(key)
	if err != nil || !ok {
		observability.StoreEventsTotal.WithLabelValues("miss").Inc()
		return false
	}
	observability.StoreEventsTotal.WithLabelValues("hit").Inc()
	if entry.ETag != "" && rfc9110.IfNoneMatch(r.Header.Get("If-None-Match"), entry.ETag) {
		w.Header().Set("ETag", entry.ETag)
		w.WriteHeader(http.StatusNotModified)
		observability.NotModifiedTotal.Inc()
		m.log.Debug().Str("key", key).Msg("Validated stored response")
		return true
	}
	decodeHeaders(entry.Headers).Each(func(name, value string) {
		w.Header().Set(name, value)
	})
	w.WriteHeader(entry.Status)
	w.Write(entry.Body)
	observability.ResponsesTotal.WithLabelValues(statusClass(entry.Status)).Inc()
	m.log.Debug().Str("key", key).Msg("Served stored response")
	return true
}

// saveResponse persists a finalized response when its Cache-Control allows
// storing and carries a positive max-age.
func (m *Middleware) saveResponse(res *Response, r *http.Request) {
	if m.store == nil || r.Method != http.MethodGet {
		return
	}
	if r.Header.Get("Authorization") != "" {
		return
	}
	status := res.Status()
	if status != 0 && status != http.StatusOK {
		return
	}
	maxAge, ok := storableMaxAge(res.Headers().Get("Cache-Control"))
	if !ok {
		return
	}
	entry := cache.Entry{
		Key:     storeKey(r),
		Expires: expiryFromNow(maxAge),
		Status:  http.StatusOK,
		ETag:    res.ETag(),
		Headers: encodeHeaders(res.Headers()),
		Body:    []byte(res.Body().contents()),
	}
	if err := m.store.Put(entry); err != nil {
		m.log.Error().Err(err).Str("key", entry.Key).Msg("Could not write to store")
		return
	}
	observability.StoreEventsTotal.WithLabelValues("save").Inc()
	m.log.Trace().Str("key", entry.Key).Time("expires", entry.Expires).Msg("Stored finalized response")
}

func storeKey(r *http.Request) string {
	return r.Method + ":" + r.URL.RequestURI()
}

// storableMaxAge extracts a positive max-age from a Cache-Control value.
// no-cache, no-store, and private responses are not storable.
func storableMaxAge(cacheControl string) (int, bool) {
	var maxAge int
	for _, directive := range strings.Split(cacheControl, ",") {
		name, arg, _ := strings.Cut(strings.TrimSpace(directive), "=")
		switch strings.ToLower(name) {
		case "no-cache", "no-store", "private":
			return 0, false
		case "max-age", "s-maxage":
			if seconds, err := strconv.Atoi(strings.Trim(arg, "\"")); err == nil {
				maxAge = seconds
			}
		}
	}
	return maxAge, maxAge > 0
}

func expiryFromNow(maxAge int) time.Time {
	return time.Now().Add(time.Duration(maxAge) * time.Second)
}

func statusClass(status int) string {
	return strconv.Itoa(status/100) + "xx"
}

// encodeHeaders serializes a header map as one "Name: value" line per
// field. Set-Cookie is dropped; cookies are never shared through the store.
func encodeHeaders(headers *headermap.Map) []byte {
	var b strings.Builder
	headers.Each(func(name, value string) {
		if strings.EqualFold(name, "Set-Cookie") {
			return
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("\r\n")
	})
	return []byte(b.String())
}

func decodeHeaders(encoded []byte) *headermap.Map {
	headers := headermap.New()
	for _, line := range strings.Split(string(encoded), "\r\n") {
		name, value, found := strings.Cut(line, ": ")
		if !found || name == "" {
			continue
		}
		headers.Set(name, value)
	}
	return headers
}
