package rfc9110

import "strings"

// §  8.8.3.  ETag
// §
// §     The "ETag" field in a response provides the current entity tag for
// §     the selected representation, as determined at the conclusion of
// §     handling the request.  An entity tag is an opaque validator for
// §     differentiating between multiple representations of the same
// §     resource, regardless of whether those multiple representations are
// §     due to resource state changes over time, content negotiation
// §     resulting in multiple representations being valid at the same time,
// §     or both.
// §
// §       ETag       = entity-tag
// §
// §       entity-tag = [ weak ] opaque-tag
// §       weak       = %s"W/"
// §       opaque-tag = DQUOTE *etagc DQUOTE
// §       etagc      = %x21 / %x23-7E / obs-text
// §                  ; VCHAR except double quotes, plus obs-text

// EntityTag is one parsed entity-tag.
type EntityTag struct {
	Weak bool
	// Opaque is the opaque-tag without the surrounding quotes.
	Opaque string
}

// ParseEntityTag parses a single entity-tag.
// It returns false if the input does not conform to the grammar.
func ParseEntityTag(s string) (EntityTag, bool) {
	s = strings.TrimSpace(s)
	tag := EntityTag{}
	if strings.HasPrefix(s, "W/") {
		tag.Weak = true
		s = strings.TrimPrefix(s, "W/")
	}
	if len(s) < 2 || !strings.HasPrefix(s, `"`) || !strings.HasSuffix(s, `"`) {
		return tag, false
	}
	tag.Opaque = s[1 : len(s)-1]
	return tag, true
}

// §  8.8.3.2.  Comparison
// §
// §     There are two entity tag comparison functions, depending on whether
// §     or not the comparison context allows the use of weak validators:
// §
// §     Strong comparison:  two entity tags are equivalent if both are not
// §        weak and their opaque-tags match character-by-character.
// §
// §     Weak comparison:  two entity tags are equivalent if their opaque-tags
// §        match character-by-character, regardless of either or both being
// §        tagged as "weak".

// StrongMatch compares two entity tags using strong comparison.
func StrongMatch(a, b EntityTag) bool {
	return !a.Weak && !b.Weak && a.Opaque == b.Opaque
}

// WeakMatch compares two entity tags using weak comparison.
func WeakMatch(a, b EntityTag) bool {
	return a.Opaque == b.Opaque
}
