package query

import (
	"sort"
	"strings"
)

const (
	minPrefix = "_min"
	maxPrefix = "_max"
)

// Reserved query keys that carry paging/sorting rather than filters.
const (
	KeyPage  = "_page"
	KeySize  = "_size"
	KeyOrder = "_order"
)

var reserved = map[string]struct{}{
	KeyPage:  {},
	KeySize:  {},
	KeyOrder: {},
}

// Filter is one parsed entry of a filter map.
type Filter struct {
	Field string
	Op    Op
	Value string
}

// ParseFilters turns a filter map into filters sorted by key. "_minAge=30"
// becomes a lower bound on Age, "_maxAge=40" an upper bound, and any other
// key an equality match. Reserved paging keys are dropped.
func ParseFilters(filters map[string]string) []Filter {
	if len(filters) == 0 {
		return nil
	}
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Filter, 0, len(keys))
	for _, k := range keys {
		name := strings.TrimSpace(k)
		if _, skip := reserved[strings.ToLower(name)]; skip || name == "" {
			continue
		}
		f := Filter{Field: name, Op: OpEq, Value: filters[k]}
		lower := strings.ToLower(name)
		switch {
		case strings.HasPrefix(lower, minPrefix) && len(name) > len(minPrefix):
			f.Field, f.Op = name[len(minPrefix):], OpMin
		case strings.HasPrefix(lower, maxPrefix) && len(name) > len(maxPrefix):
			f.Field, f.Op = name[len(maxPrefix):], OpMax
		}
		out = append(out, f)
	}
	return out
}
