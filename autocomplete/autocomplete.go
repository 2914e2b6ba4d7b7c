package autocomplete

import (
	"sort"
	"strings"
)

// Range is a half-open byte range [Start, End) inside a name.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Suggestion is one ranked result of a query. It owns a copy of the name and
// of the value, so it stays valid after the index changes.
type Suggestion[T any] struct {
	Name string
	// Matches holds the matched ranges inside Name. Today there is at most
	// one, since only a single contiguous match is searched for.
	Matches []Range
	Value   T
}

// candidate is the result of comparing a query against one indexed name.
type candidate struct {
	name  string
	match Range
}

// Index maps unique names to values and answers substring queries with
// ranked suggestions. The zero value is not usable, use New.
//
// Index is not safe for concurrent use.
type Index[T any] struct {
	entries map[string]T
}

// New creates an empty index.
func New[T any]() *Index[T] {
	return &Index[T]{
		entries: make(map[string]T),
	}
}

// Insert adds the value under name, replacing any existing value.
func (idx *Index[T]) Insert(name string, value T) {
	idx.entries[name] = value
}

// Remove deletes name from the index and reports whether it was present.
func (idx *Index[T]) Remove(name string) bool {
	if _, exists := idx.entries[name]; !exists {
		return false
	}
	delete(idx.entries, name)
	return true
}

// Get returns the value stored under the exact name.
func (idx *Index[T]) Get(name string) (T, bool) {
	value, exists := idx.entries[name]
	return value, exists
}

// Contains reports whether name is indexed.
func (idx *Index[T]) Contains(name string) bool {
	_, exists := idx.entries[name]
	return exists
}

// Len returns the number of indexed names.
func (idx *Index[T]) Len() int {
	return len(idx.entries)
}

// Names returns every indexed name in lexicographic order.
func (idx *Index[T]) Names() []string {
	names := make([]string, 0, len(idx.entries))
	for name := range idx.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Query returns at most maxResults suggestions whose name contains text as a
// contiguous, case-sensitive substring. Suggestions are ordered by the start
// of the match, earliest first, then by name. An empty text matches nothing.
func (idx *Index[T]) Query(text string, maxResults int) []Suggestion[T] {
	if text == "" || maxResults <= 0 {
		return []Suggestion[T]{}
	}

	candidates := make([]candidate, 0)
	for name := range idx.entries {
		if match, ok := findMatch(text, name); ok {
			candidates = append(candidates, candidate{name: name, match: match})
		}
	}

	// Names are unique, so this order is total and map iteration order
	// can never leak into the result.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].match.Start != candidates[j].match.Start {
			return candidates[i].match.Start < candidates[j].match.Start
		}
		return candidates[i].name < candidates[j].name
	})

	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}

	suggestions := make([]Suggestion[T], 0, len(candidates))
	for _, c := range candidates {
		suggestions = append(suggestions, Suggestion[T]{
			Name:    c.name,
			Matches: []Range{c.match},
			Value:   idx.entries[c.name],
		})
	}
	return suggestions
}

func findMatch(text, name string) (Range, bool) {
	start := strings.Index(name, text)
	if start < 0 {
		return Range{}, false
	}
	return Range{Start: start, End: start + len(text)}, true
}
