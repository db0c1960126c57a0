// Package recorder captures the output of an http.Handler so it can be
// rebuilt as an outbound response and finalized before anything reaches
// the client.
package recorder

import (
	"net/http"
	"time"
)

// Recorder is an http.ResponseWriter that buffers status, headers, and body
// chunks instead of writing them anywhere.
type Recorder struct {
	header       http.Header
	status       int
	wroteHeaders bool
	chunks       []string
	CreatedAt    time.Time
}

// New returns a new Recorder.
func New() *Recorder {
	return &Recorder{
		CreatedAt: time.Now(),
		header:    http.Header{},
	}
}

// Implementation of http.ResponseWriter
func (r *Recorder) Header() http.Header {
	return r.header
}

// Implementation of http.ResponseWriter
func (r *Recorder) WriteHeader(statusCode int) {
	if r.wroteHeaders {
		return
	}
	r.wroteHeaders = true
	r.status = statusCode
}

// Implementation of http.ResponseWriter
func (r *Recorder) Write(b []byte) (int, error) {
	if !r.wroteHeaders {
		r.WriteHeader(http.StatusOK)
	}
	r.chunks = append(r.chunks, string(b))
	return len(b), nil
}

// StatusCode returns the recorded status code.
func (r *Recorder) StatusCode() int {
	return r.status
}

// Chunks returns the recorded body chunks in write order.
func (r *Recorder) Chunks() []string {
	return r.chunks
}
