// Package cache stores finalized responses so later requests can be served
// or revalidated without invoking the handler again.
package cache

import "time"

// Provider is the storage interface for finalized responses.
//
// Implementations must be thread-safe!
type Provider interface {
	// Get returns the stored entry for the given key, if it exists.
	// It also returns a boolean indicating whether retrieval was successful.
	// If the entry has expired, the boolean should be false.
	Get(key string) (Entry, bool, error)
	// Put stores the given entry, replacing any previous entry for its key.
	Put(entry Entry) error
	// Purge removes the entry for the given key.
	Purge(key string)
	// Has checks if the specified key exists, expired or not.
	Has(key string) bool
}

// Entry is one stored finalized response.
type Entry struct {
	Key     string
	Expires time.Time
	Status  int
	// ETag is kept in its own column so conditional requests can be
	// answered without deserializing the header block.
	ETag    string
	Headers []byte
	Body    []byte
}

// Fresh reports whether the entry can still be served without revalidation.
func (e Entry) Fresh() bool {
	return time.Now().Before(e.Expires)
}
