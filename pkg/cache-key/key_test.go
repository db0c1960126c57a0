package cachekey

import (
	"crypto/md5"
	"encoding/hex"
	"testing"
)

func TestExpandString(t *testing.T) {
	if key := Expand("as-is"); key != "as-is" {
		t.Fatalf("Key is %s", key)
	}
}

func TestExpandSlice(t *testing.T) {
	if key := Expand([]string{"users", "42", "profile"}); key != "users/42/profile" {
		t.Fatalf("Key is %s", key)
	}
}

func TestExpandMapSorted(t *testing.T) {
	key := Expand(map[string]string{"b": "2", "a": "1"})
	if key != "a=1&b=2" {
		t.Fatalf("Key is %s", key)
	}
}

func TestDigestQuotedMD5(t *testing.T) {
	sum := md5.Sum([]byte("material"))
	expected := `"` + hex.EncodeToString(sum[:]) + `"`

	if digest := Digest("material"); digest != expected {
		t.Fatalf("Digest is %s", digest)
	}
}

func TestDigestStructuredEqualsExpanded(t *testing.T) {
	if Digest([]string{"a", "b"}) != Digest("a/b") {
		t.Fatal("Digests differ")
	}
}
