package rfc9110

import "strings"

// §  13.1.2.  If-None-Match
// §
// §     The "If-None-Match" header field makes the request method conditional
// §     on a recipient cache or origin server either not having any current
// §     representation of the target resource, when the field value is "*",
// §     or having a selected representation with an entity tag that does not
// §     match any of those listed in the field value.
// §
// §       If-None-Match = "*" / #entity-tag
// §
// §     An origin server that receives an If-None-Match header field MUST
// §     evaluate the condition prior to performing the method (Section 13.2).
// §     If the field value is "*", the condition is false if the origin
// §     server has a current representation for the target resource.
// §     Otherwise, the condition is false if any of the listed tags matches
// §     the entity tag of the selected representation.
// §
// §     A recipient MUST use the weak comparison function when comparing
// §     entity tags for If-None-Match (Section 8.8.3.2), since weak entity
// §     tags can be used for cache validation even if there have been changes
// §     to the representation data.

// IfNoneMatch evaluates an If-None-Match field value against the entity tag
// of the selected representation. It reports whether any listed tag matches
// the candidate, i.e. whether the condition of 13.1.2 is false and a GET may
// be answered with 304 (Not Modified).
//
// An empty field value never matches. A malformed candidate never matches.
// Malformed list members are skipped.
func IfNoneMatch(fieldValue, candidate string) bool {
	if fieldValue == "" {
		return false
	}
	selected, ok := ParseEntityTag(candidate)
	if !ok {
		return false
	}
	for _, member := range strings.Split(fieldValue, ",") {
		member = strings.TrimSpace(member)
		if member == "*" {
			return true
		}
		if tag, ok := ParseEntityTag(member); ok && WeakMatch(tag, selected) {
			return true
		}
	}
	return false
}
