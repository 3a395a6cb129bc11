package query

import "strings"

// Clause is the SQL form of a filter map and sort expression. Where and
// OrderBy carry their leading keyword and a leading space, or are empty.
type Clause struct {
	Where   string
	Args    []any
	OrderBy string
}

// Clause translates filters and orderBy into MySQL fragments with the same
// semantics as Apply. Fields without a column are skipped.
func (s *Schema[T]) Clause(orderBy string, filters map[string]string) Clause {
	var (
		conds []string
		out   Clause
	)
	for _, flt := range ParseFilters(filters) {
		f, ok := s.Lookup(flt.Field)
		if !ok || f.Column() == "" {
			continue
		}
		cond, args, ok := f.condition(flt.Op, flt.Value)
		if !ok {
			cond, args = "1=0", nil
		}
		conds = append(conds, cond)
		out.Args = append(out.Args, args...)
	}
	if len(conds) > 0 {
		out.Where = " WHERE " + strings.Join(conds, " AND ")
	}

	var terms []string
	for _, o := range s.resolveOrder(orderBy) {
		if o.field.Column() == "" {
			continue
		}
		dir := " ASC"
		if o.desc {
			dir = " DESC"
		}
		terms = append(terms, o.field.Column()+dir)
	}
	// the default order also breaks ties so pages stay deterministic
	if s.defaultOrder != "" {
		terms = append(terms, s.defaultOrder)
	}
	if len(terms) > 0 {
		out.OrderBy = " ORDER BY " + strings.Join(terms, ", ")
	}
	return out
}

// And appends an extra condition to the clause.
func (c Clause) And(cond string, args ...any) Clause {
	if c.Where == "" {
		c.Where = " WHERE " + cond
	} else {
		c.Where += " AND " + cond
	}
	c.Args = append(append([]any(nil), c.Args...), args...)
	return c
}
