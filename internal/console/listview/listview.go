// Package listview implements the table model used by the console
// screens: free-text search, category filtering, and stable sorting
// composed as one pure function over an input slice.
package listview

import (
	"sort"
	"strings"
)

// Direction is the sort polarity
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort names the active sort column and its direction. The zero value
// means "no sorting".
type Sort struct {
	Key       string
	Direction Direction
}

// Toggle returns the sort state after the user selects a column:
// re-selecting the active column flips direction, selecting a new one
// resets to ascending.
func (s Sort) Toggle(key string) Sort {
	if s.Key == key {
		if s.Direction == Desc {
			return Sort{Key: key, Direction: Asc}
		}
		return Sort{Key: key, Direction: Desc}
	}
	return Sort{Key: key, Direction: Asc}
}

// Field extracts the named field of an item as a string. Unknown
// fields must yield "", never panic.
type Field[T any] func(item T, field string) string

// Query is everything the user has typed or clicked that shapes the
// visible rows.
type Query struct {
	Search      string   // free text, case-insensitive substring
	SearchKeys  []string // fields the search text is matched against
	FilterKey   string   // category field, e.g. "role"
	FilterValue string   // exact match; "" or "all" disables the filter
	Sort        Sort
}

// Apply returns the rows to render. The input slice is never mutated;
// the result is always a fresh slice.
func Apply[T any](items []T, q Query, field Field[T]) []T {
	out := make([]T, 0, len(items))

	search := strings.ToLower(strings.TrimSpace(q.Search))
	filterOn := q.FilterKey != "" && q.FilterValue != "" && q.FilterValue != "all"

	for _, item := range items {
		if filterOn && field(item, q.FilterKey) != q.FilterValue {
			continue
		}
		if search != "" && !matches(item, search, q.SearchKeys, field) {
			continue
		}
		out = append(out, item)
	}

	if q.Sort.Key != "" {
		desc := q.Sort.Direction == Desc
		sort.SliceStable(out, func(i, j int) bool {
			a := strings.ToLower(field(out[i], q.Sort.Key))
			b := strings.ToLower(field(out[j], q.Sort.Key))
			if desc {
				return a > b
			}
			return a < b
		})
	}

	return out
}

func matches[T any](item T, search string, keys []string, field Field[T]) bool {
	for _, key := range keys {
		if strings.Contains(strings.ToLower(field(item, key)), search) {
			return true
		}
	}
	return false
}
