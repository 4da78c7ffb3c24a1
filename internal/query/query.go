// Package query builds the predicate, pagination, ordering, and aggregate
// fragments the store layer composes into SQL. Placeholders are numbered
// programmatically so callers never hand-index parameters.
package query

import (
	"fmt"
	"strings"
	"time"

	"paddy-backend/internal/apperrors"
	"paddy-backend/internal/timeutil"
)

// Builder accumulates WHERE conditions with `?` placeholders and rewrites
// them to positional $n parameters in the order they were added.
type Builder struct {
	conds []string
	args  []interface{}
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Where adds a condition. Each `?` in expr consumes one value.
func (b *Builder) Where(expr string, vals ...interface{}) *Builder {
	var sb strings.Builder
	n := 0
	for _, r := range expr {
		if r == '?' {
			b.args = append(b.args, vals[n])
			n++
			fmt.Fprintf(&sb, "$%d", len(b.args))
			continue
		}
		sb.WriteRune(r)
	}
	b.conds = append(b.conds, sb.String())
	return b
}

// WhereIf adds the condition only when cond is true.
func (b *Builder) WhereIf(cond bool, expr string, vals ...interface{}) *Builder {
	if cond {
		b.Where(expr, vals...)
	}
	return b
}

// Clause renders "WHERE c1 AND c2 ..." or an empty string.
func (b *Builder) Clause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(b.conds, " AND ")
}

// Args returns the accumulated parameter values in placeholder order.
func (b *Builder) Args() []interface{} {
	return b.args
}

// NextPlaceholder returns the positional placeholder a caller-appended
// fragment (LIMIT/OFFSET) should use next.
func (b *Builder) NextPlaceholder() int {
	return len(b.args) + 1
}

// Bind appends a value outside of Where, returning its placeholder.
func (b *Builder) Bind(val interface{}) string {
	b.args = append(b.args, val)
	return fmt.Sprintf("$%d", len(b.args))
}

// DateRange is an inclusive [From, To] range over business dates. To is
// forced to end-of-day so a same-day range matches records timestamped
// anywhere in that day.
type DateRange struct {
	From time.Time
	To   time.Time
}

// ParseDateRange validates and parses YYYY-MM-DD bounds. Empty strings leave
// the corresponding side open (zero time).
func ParseDateRange(from, to string) (DateRange, error) {
	var dr DateRange
	if from != "" {
		t, err := timeutil.ParseDate(from)
		if err != nil {
			return dr, apperrors.Validation("invalid from date %q, expected YYYY-MM-DD", from)
		}
		dr.From = timeutil.StartOfDay(t)
	}
	if to != "" {
		t, err := timeutil.ParseDate(to)
		if err != nil {
			return dr, apperrors.Validation("invalid to date %q, expected YYYY-MM-DD", to)
		}
		dr.To = timeutil.EndOfDay(t)
	}
	if !dr.From.IsZero() && !dr.To.IsZero() && dr.To.Before(dr.From) {
		return dr, apperrors.Validation("to date %s precedes from date %s", to, from)
	}
	return dr, nil
}

// Apply adds the range bounds against the given column.
func (dr DateRange) Apply(b *Builder, column string) {
	b.WhereIf(!dr.From.IsZero(), column+" >= ?", dr.From)
	b.WhereIf(!dr.To.IsZero(), column+" <= ?", dr.To)
}

// Pagination defaults and caps.
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

type Pagination struct {
	Page  int
	Limit int
}

// NormalizePagination clamps page/limit to sane bounds.
func NormalizePagination(page, limit int) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Pagination{Page: page, Limit: limit}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// OrderBy renders a safe ORDER BY from a caller-supplied sort key checked
// against the allowed column map. Unknown keys fall back to the default key,
// unknown directions to DESC.
func OrderBy(sortBy, sortOrder, defaultKey string, allowed map[string]string) string {
	col, ok := allowed[sortBy]
	if !ok {
		col = allowed[defaultKey]
	}
	dir := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		dir = "ASC"
	}
	return fmt.Sprintf("ORDER BY %s %s", col, dir)
}

// SearchPattern turns free text into a case-folded ILIKE pattern.
func SearchPattern(s string) string {
	return "%" + strings.TrimSpace(s) + "%"
}

// Aggregate composes a grouped-sum query: SELECT <selects> FROM <table>
// <joins> WHERE ... GROUP BY <groupBy> ORDER BY <orderBy>.
type Aggregate struct {
	Table   string
	Selects []string
	Joins   []string
	GroupBy []string
	OrderBy string
	Pred    *Builder
}

// SQL renders the query and its positional args.
func (a *Aggregate) SQL() (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(a.Selects, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(a.Table)
	for _, j := range a.Joins {
		sb.WriteString(" ")
		sb.WriteString(j)
	}
	if clause := a.Pred.Clause(); clause != "" {
		sb.WriteString(" ")
		sb.WriteString(clause)
	}
	if len(a.GroupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(a.GroupBy, ", "))
	}
	if a.OrderBy != "" {
		sb.WriteString(" ")
		sb.WriteString(a.OrderBy)
	}
	return sb.String(), a.Pred.Args()
}
