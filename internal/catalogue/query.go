package catalogue

import (
	"fmt"
	"strings"
)

// Predicate is a parameterized WHERE fragment. Placeholders start at $1.
type Predicate struct {
	Clause string
	Args   []any
}

// Where returns the clause prefixed with WHERE, or nothing for an empty predicate.
func (p Predicate) Where() string {
	if p.Clause == "" {
		return ""
	}

	return " WHERE " + p.Clause
}

// NextArg is the placeholder index the caller should use for its own arguments.
func (p Predicate) NextArg() int {
	return len(p.Args) + 1
}

var orderClauses = map[string]string{
	SortNewest:    "p.created_at DESC",
	SortOldest:    "p.created_at ASC",
	SortPriceDesc: "p.price DESC",
	SortPriceAsc:  "p.price ASC",
	SortNameAsc:   "p.name ASC",
	SortNameDesc:  "p.name DESC",
}

// BuildPredicate translates a filter into conditions on the products table (aliased p).
// All conditions are AND-ed together.
func BuildPredicate(f Filter) Predicate {
	var (
		conditions []string
		args       []any
	)

	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.CategoryID != nil {
		conditions = append(conditions, "p.category_id = "+next(*f.CategoryID))
	}

	if f.PeriodID != nil {
		conditions = append(conditions, "p.period_id = "+next(*f.PeriodID))
	}

	if f.MinPrice != nil {
		conditions = append(conditions, "p.price >= "+next(*f.MinPrice))
	}

	if f.MaxPrice != nil {
		conditions = append(conditions, "p.price <= "+next(*f.MaxPrice))
	}

	if f.Search != "" {
		ph := next("%" + EscapeILIKE(f.Search) + "%")
		conditions = append(conditions, fmt.Sprintf("(p.name ILIKE %s OR p.description ILIKE %s)", ph, ph))
	}

	return Predicate{
		Clause: strings.Join(conditions, " AND "),
		Args:   args,
	}
}

// OrderBy maps a sort key onto a whitelisted ORDER BY fragment.
func OrderBy(sort string) string {
	if clause, ok := orderClauses[sort]; ok {
		return clause
	}

	return orderClauses[DefaultSort]
}

// EscapeILIKE escapes the ILIKE wildcards so user text is matched literally.
func EscapeILIKE(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
