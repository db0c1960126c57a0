// Package rfc9110 implements the parts of HTTP Semantics (RFC 9110) needed
// for outbound response finalization: entity tags, If-None-Match evaluation,
// and HTTP-date generation and parsing.
//
// The implementation is interleaved with the relevant specification text,
// quoted in "// §" comments, one file per section.
package rfc9110
