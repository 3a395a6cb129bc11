package query

import (
	"fmt"
	"regexp"
	"strings"
)

// Order is a single sort term.
type Order struct {
	Field string `json:"field"`
	Desc  bool   `json:"desc"`
}

var fieldNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ParseOrder splits a sort expression such as "price desc, title" into
// terms, left to right. Terms that do not fit the grammar are skipped.
func ParseOrder(orderBy string) []Order {
	var out []Order
	for _, term := range strings.Split(orderBy, ",") {
		o, err := parseTerm(term)
		if err != nil {
			continue
		}
		out = append(out, o)
	}
	return out
}

// ValidateOrder checks the grammar of a sort expression without resolving
// field names. An empty expression is valid.
func ValidateOrder(orderBy string) error {
	if strings.TrimSpace(orderBy) == "" {
		return nil
	}
	for i, term := range strings.Split(orderBy, ",") {
		if _, err := parseTerm(term); err != nil {
			return fmt.Errorf("term %d: %w", i+1, err)
		}
	}
	return nil
}

func parseTerm(term string) (Order, error) {
	parts := strings.Fields(term)
	switch len(parts) {
	case 1, 2:
	case 0:
		return Order{}, fmt.Errorf("empty sort term")
	default:
		return Order{}, fmt.Errorf("sort term %q has too many words", strings.TrimSpace(term))
	}
	if !fieldNamePattern.MatchString(parts[0]) {
		return Order{}, fmt.Errorf("invalid field name %q", parts[0])
	}
	o := Order{Field: parts[0]}
	if len(parts) == 2 {
		switch strings.ToLower(strings.Trim(parts[1], "()")) {
		case "asc":
		case "desc":
			o.Desc = true
		default:
			return Order{}, fmt.Errorf("invalid direction %q", parts[1])
		}
	}
	return o, nil
}
