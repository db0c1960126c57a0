// Package headermap provides the ordered, case-insensitive header storage
// owned by an outbound response.
//
// Unlike http.Header, a Map preserves insertion order and addresses at most
// one value per logical field name. Multi-valued fields (Set-Cookie) are
// represented as a single newline-joined value by the response layer.
package headermap

import "strings"

type field struct {
	name  string
	value string
}

// Map is an ordered string-to-string mapping with case-insensitive keys.
type Map struct {
	fields []field
	index  map[string]int
}

// New returns an empty Map.
func New() *Map {
	return &Map{
		index: make(map[string]int),
	}
}

// Get returns the value stored under the given name, or the empty string.
func (m *Map) Get(name string) string {
	value, _ := m.Lookup(name)
	return value
}

// Lookup returns the value stored under the given name and whether the
// field is present at all.
func (m *Map) Lookup(name string) (string, bool) {
	i, ok := m.index[strings.ToLower(name)]
	if !ok {
		return "", false
	}
	return m.fields[i].value, true
}

// Set stores the value under the given name. Overwriting an existing field
// keeps its position; the field name keeps the spelling of the first write.
func (m *Map) Set(name, value string) {
	key := strings.ToLower(name)
	if i, ok := m.index[key]; ok {
		m.fields[i].value = value
		return
	}
	m.index[key] = len(m.fields)
	m.fields = append(m.fields, field{name: name, value: value})
}

// Del removes the field with the given name, if present.
func (m *Map) Del(name string) {
	key := strings.ToLower(name)
	i, ok := m.index[key]
	if !ok {
		return
	}
	m.fields = append(m.fields[:i], m.fields[i+1:]...)
	delete(m.index, key)
	for k, pos := range m.index {
		if pos > i {
			m.index[k] = pos - 1
		}
	}
}

// Has reports whether a field with the given name is present.
func (m *Map) Has(name string) bool {
	_, ok := m.index[strings.ToLower(name)]
	return ok
}

// Len returns the number of fields.
func (m *Map) Len() int {
	return len(m.fields)
}

// Each calls fn for every field in insertion order.
func (m *Map) Each(fn func(name, value string)) {
	for _, f := range m.fields {
		fn(f.name, f.value)
	}
}

// Clone returns an independent copy of the map.
func (m *Map) Clone() *Map {
	c := New()
	for _, f := range m.fields {
		c.Set(f.name, f.value)
	}
	return c
}
