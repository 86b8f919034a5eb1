package scanner

import "sort"

// TagSet is the set of tag names eligible for identifier injection.
// A nil or empty TagSet matches nothing.
type TagSet map[string]bool

// NewTagSet returns a TagSet containing names. Empty names are ignored.
func NewTagSet(names ...string) TagSet {
	set := make(TagSet, len(names))
	set.Add(names...)
	return set
}

// Add inserts names into the set.
func (s TagSet) Add(names ...string) {
	for _, name := range names {
		if name != "" {
			s[name] = true
		}
	}
}

// Has reports whether name is in the set.
func (s TagSet) Has(name string) bool {
	return s[name]
}

// Len returns the number of names in the set.
func (s TagSet) Len() int {
	return len(s)
}

// Names returns the names in sorted order.
func (s TagSet) Names() []string {
	names := make([]string, 0, len(s))
	for name, ok := range s {
		if ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Union returns a new set holding the names of s and other.
func (s TagSet) Union(other TagSet) TagSet {
	out := make(TagSet, len(s)+len(other))
	for name, ok := range s {
		if ok {
			out[name] = true
		}
	}
	for name, ok := range other {
		if ok {
			out[name] = true
		}
	}
	return out
}
