// Package cachekey normalizes arbitrary cache key material into one
// canonical string and digests it into an entity tag value.
package cachekey

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

const (
	partSeparator = "/"
	pairSeparator = "&"
)

// Expand collapses cache key material into a canonical string.
// Strings pass through verbatim. String slices are joined with "/".
// String maps are rendered as sorted "name=value" pairs joined with "&".
// Anything else falls back to its default formatting.
func Expand(key any) string {
	switch k := key.(type) {
	case string:
		return k
	case []string:
		return strings.Join(k, partSeparator)
	case map[string]string:
		pairs := make([]string, 0, len(k))
		for name, value := range k {
			pairs = append(pairs, name+"="+value)
		}
		sort.Strings(pairs)
		return strings.Join(pairs, pairSeparator)
	case fmt.Stringer:
		return k.String()
	default:
		return fmt.Sprint(k)
	}
}

// Digest returns the quoted hexadecimal MD5 digest of the expanded key,
// suitable for use as an ETag header value.
func Digest(key any) string {
	sum := md5.Sum([]byte(Expand(key)))
	return `"` + hex.EncodeToString(sum[:]) + `"`
}
