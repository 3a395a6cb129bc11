// Package query applies request-supplied filters and sort expressions to
// entity collections, either in memory or as SQL clauses.
//
// Field names are resolved through a Schema registered once per entity type.
// Unknown field names are ignored, name lookup is case-insensitive, string
// values compare case-sensitively, and a value that cannot be parsed for its
// field matches nothing.
package query

import (
	"slices"
	"strings"
)

// Schema is the set of filterable and sortable fields of T.
type Schema[T any] struct {
	fields       map[string]Field[T]
	defaultOrder string
}

// NewSchema registers fields by their lower-cased names. Later fields win on
// duplicate names.
func NewSchema[T any](fields ...Field[T]) *Schema[T] {
	s := &Schema[T]{fields: make(map[string]Field[T], len(fields))}
	for _, f := range fields {
		s.fields[strings.ToLower(f.Name())] = f
	}
	return s
}

// WithDefaultOrder sets the SQL ORDER BY used when no sort term resolves,
// typically the primary key.
func (s *Schema[T]) WithDefaultOrder(orderBy string) *Schema[T] {
	s.defaultOrder = orderBy
	return s
}

// Lookup finds a field by name, ignoring case.
func (s *Schema[T]) Lookup(name string) (Field[T], bool) {
	f, ok := s.fields[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

type resolvedOrder[T any] struct {
	field Field[T]
	desc  bool
}

func (s *Schema[T]) resolveOrder(orderBy string) []resolvedOrder[T] {
	var out []resolvedOrder[T]
	for _, o := range ParseOrder(orderBy) {
		f, ok := s.Lookup(o.Field)
		if !ok {
			continue
		}
		out = append(out, resolvedOrder[T]{field: f, desc: o.Desc})
	}
	return out
}

func (s *Schema[T]) predicates(filters map[string]string) []func(T) bool {
	var out []func(T) bool
	for _, flt := range ParseFilters(filters) {
		f, ok := s.Lookup(flt.Field)
		if !ok {
			continue
		}
		match, ok := f.predicate(flt.Op, flt.Value)
		if !ok {
			match = func(T) bool { return false }
		}
		out = append(out, match)
	}
	return out
}

// Apply filters items and then sorts the survivors by orderBy. The result is a
// new slice; items and its elements are left untouched. Sorting is stable, so
// with no resolvable sort term the input order is preserved.
func (s *Schema[T]) Apply(items []T, orderBy string, filters map[string]string) []T {
	preds := s.predicates(filters)

	out := make([]T, 0, len(items))
next:
	for _, item := range items {
		for _, match := range preds {
			if !match(item) {
				continue next
			}
		}
		out = append(out, item)
	}

	orders := s.resolveOrder(orderBy)
	if len(orders) == 0 {
		return out
	}
	slices.SortStableFunc(out, func(a, b T) int {
		for _, o := range orders {
			c := o.field.compare(a, b)
			if o.desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
	return out
}
