package query

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Op is the comparison a filter key asks for.
type Op int

const (
	OpEq Op = iota
	OpMin
	OpMax
)

// Field resolves a filter or sort term against records of type T.
// Build one with String, Int, Float, Decimal, Bool, Time or Enum.
type Field[T any] interface {
	Name() string
	// Column is the SQL column backing the field, or "" for in-memory only fields.
	Column() string

	compare(a, b T) int
	// predicate returns ok=false when raw cannot be parsed for the field.
	predicate(op Op, raw string) (match func(T) bool, ok bool)
	condition(op Op, raw string) (sql string, args []any, ok bool)
}

type valueField[T, V any] struct {
	name   string
	column string
	get    func(T) V
	parse  func(string) (V, error)
	cmp    func(a, b V) int
	arg    func(V) any
}

func (f *valueField[T, V]) Name() string   { return f.name }
func (f *valueField[T, V]) Column() string { return f.column }

func (f *valueField[T, V]) compare(a, b T) int {
	return f.cmp(f.get(a), f.get(b))
}

func (f *valueField[T, V]) predicate(op Op, raw string) (func(T) bool, bool) {
	want, err := f.parse(raw)
	if err != nil {
		return nil, false
	}
	return func(item T) bool {
		c := f.cmp(f.get(item), want)
		switch op {
		case OpMin:
			return c >= 0
		case OpMax:
			return c <= 0
		default:
			return c == 0
		}
	}, true
}

func (f *valueField[T, V]) condition(op Op, raw string) (string, []any, bool) {
	want, err := f.parse(raw)
	if err != nil {
		return "", nil, false
	}
	arg := any(want)
	if f.arg != nil {
		arg = f.arg(want)
	}
	return f.column + " " + sqlOperator(op) + " ?", []any{arg}, true
}

func sqlOperator(op Op) string {
	switch op {
	case OpMin:
		return ">="
	case OpMax:
		return "<="
	default:
		return "="
	}
}

// textField compares case-sensitively and supports leading/trailing '*' wildcards on equality.
type textField[T any] struct {
	name   string
	column string
	get    func(T) string
}

func (f *textField[T]) Name() string   { return f.name }
func (f *textField[T]) Column() string { return f.column }

func (f *textField[T]) compare(a, b T) int {
	return strings.Compare(f.get(a), f.get(b))
}

func (f *textField[T]) predicate(op Op, raw string) (func(T) bool, bool) {
	switch op {
	case OpMin:
		return func(item T) bool { return f.get(item) >= raw }, true
	case OpMax:
		return func(item T) bool { return f.get(item) <= raw }, true
	}
	prefix, suffix, core := splitWildcard(raw)
	switch {
	case prefix && suffix:
		return func(item T) bool { return strings.Contains(f.get(item), core) }, true
	case suffix:
		return func(item T) bool { return strings.HasPrefix(f.get(item), core) }, true
	case prefix:
		return func(item T) bool { return strings.HasSuffix(f.get(item), core) }, true
	default:
		return func(item T) bool { return f.get(item) == raw }, true
	}
}

func (f *textField[T]) condition(op Op, raw string) (string, []any, bool) {
	if op != OpEq {
		return "BINARY " + f.column + " " + sqlOperator(op) + " ?", []any{raw}, true
	}
	prefix, suffix, core := splitWildcard(raw)
	if !prefix && !suffix {
		return "BINARY " + f.column + " = ?", []any{raw}, true
	}
	pattern := escapeLike(core)
	if prefix {
		pattern = "%" + pattern
	}
	if suffix {
		pattern += "%"
	}
	return "BINARY " + f.column + " LIKE ?", []any{pattern}, true
}

// splitWildcard reports a leading '*' as prefix and a trailing '*' as suffix.
func splitWildcard(raw string) (prefix, suffix bool, core string) {
	core = raw
	if strings.HasPrefix(core, "*") {
		prefix = true
		core = core[1:]
	}
	if strings.HasSuffix(core, "*") {
		suffix = true
		core = core[:len(core)-1]
	}
	return prefix, suffix, core
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// String registers a case-sensitive text field.
func String[T any](name, column string, get func(T) string) Field[T] {
	return &textField[T]{name: name, column: column, get: get}
}

// Int registers an integer field.
func Int[T any, N ~int | ~int32 | ~int64](name, column string, get func(T) N) Field[T] {
	return &valueField[T, N]{
		name:   name,
		column: column,
		get:    get,
		parse: func(s string) (N, error) {
			v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
			return N(v), err
		},
		cmp: cmp.Compare[N],
		arg: func(v N) any { return int64(v) },
	}
}

// Float registers a floating point field.
func Float[T any](name, column string, get func(T) float64) Field[T] {
	return &valueField[T, float64]{
		name:   name,
		column: column,
		get:    get,
		parse: func(s string) (float64, error) {
			return strconv.ParseFloat(strings.TrimSpace(s), 64)
		},
		cmp: cmp.Compare[float64],
	}
}

// Decimal registers a fixed-point (money) field.
func Decimal[T any](name, column string, get func(T) decimal.Decimal) Field[T] {
	return &valueField[T, decimal.Decimal]{
		name:   name,
		column: column,
		get:    get,
		parse: func(s string) (decimal.Decimal, error) {
			return decimal.NewFromString(strings.TrimSpace(s))
		},
		cmp: func(a, b decimal.Decimal) int { return a.Cmp(b) },
		arg: func(v decimal.Decimal) any { return v.String() },
	}
}

// Bool registers a boolean field; values are parsed with strconv.ParseBool.
func Bool[T any](name, column string, get func(T) bool) Field[T] {
	return &valueField[T, bool]{
		name:   name,
		column: column,
		get:    get,
		parse: func(s string) (bool, error) {
			return strconv.ParseBool(strings.TrimSpace(s))
		},
		cmp: func(a, b bool) int {
			switch {
			case a == b:
				return 0
			case !a:
				return -1
			default:
				return 1
			}
		},
	}
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"}

// Time registers a timestamp field accepting RFC 3339, "YYYY-MM-DD HH:MM:SS" or "YYYY-MM-DD" (UTC).
func Time[T any](name, column string, get func(T) time.Time) Field[T] {
	return &valueField[T, time.Time]{
		name:   name,
		column: column,
		get:    get,
		parse:  parseTime,
		cmp:    func(a, b time.Time) int { return a.Compare(b) },
	}
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q", s)
}

// Enum registers a string-backed enum field. Filter values are matched
// case-insensitively against allowed and normalized to the declared spelling;
// anything else does not parse.
func Enum[T any, E ~string](name, column string, get func(T) E, allowed ...E) Field[T] {
	return &valueField[T, E]{
		name:   name,
		column: column,
		get:    get,
		parse: func(s string) (E, error) {
			s = strings.TrimSpace(s)
			for _, a := range allowed {
				if strings.EqualFold(string(a), s) {
					return a, nil
				}
			}
			return "", fmt.Errorf("invalid %s %q", name, s)
		},
		cmp: func(a, b E) int { return strings.Compare(string(a), string(b)) },
		arg: func(v E) any { return string(v) },
	}
}
