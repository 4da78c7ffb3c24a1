package repositories

import (
	"strings"
	"testing"

	"paddy-backend/internal/models"
)

func TestEntryListQueryComposition(t *testing.T) {
	q, err := buildEntryListQuery(1, &models.EntryFilter{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if n := strings.Count(q.listSQL, "ORDER BY"); n != 1 {
		t.Fatalf("list SQL has %d ORDER BY clauses, want 1:\n%s", n, q.listSQL)
	}
	if !strings.Contains(q.listSQL, "ORDER BY e.date DESC, e.id DESC") {
		t.Errorf("default sort missing, got:\n%s", q.listSQL)
	}
	// $1 tenant predicate, $2 limit, $3 offset.
	if len(q.listArgs) != 3 {
		t.Errorf("list args = %d, want 3 (%v)", len(q.listArgs), q.listArgs)
	}
	if !strings.Contains(q.listSQL, "LIMIT $2 OFFSET $3") {
		t.Errorf("pagination placeholders wrong:\n%s", q.listSQL)
	}
	// The count statement must not see the limit/offset bindings.
	if len(q.countArgs) != 1 {
		t.Errorf("count args = %d, want 1 (%v)", len(q.countArgs), q.countArgs)
	}
	if strings.Contains(q.countSQL, "ORDER BY") || strings.Contains(q.countSQL, "LIMIT") {
		t.Errorf("count SQL carries page fragments:\n%s", q.countSQL)
	}
}

func TestEntryListQuerySortWhitelist(t *testing.T) {
	q, err := buildEntryListQuery(1, &models.EntryFilter{SortBy: "quantity", SortOrder: "asc"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(q.listSQL, "ORDER BY e.quantity ASC, e.id DESC") {
		t.Errorf("sorted SQL wrong:\n%s", q.listSQL)
	}

	// Unknown keys fall back to the date default instead of injecting.
	q, err = buildEntryListQuery(1, &models.EntryFilter{SortBy: "id; DROP TABLE users"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(q.listSQL, "ORDER BY e.date DESC, e.id DESC") {
		t.Errorf("fallback sort wrong:\n%s", q.listSQL)
	}
}

func TestEntryListQueryFilters(t *testing.T) {
	f := &models.EntryFilter{
		SocietyID: 3, SeasonID: 7, Search: "T-4",
		FromDate: "2025-11-01", ToDate: "2025-11-30",
	}
	q, err := buildEntryListQuery(1, f)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, want := range []string{
		"e.tenant_id = $1", "e.society_id = $2", "e.season_id = $3",
		"e.token_no ILIKE $4", "e.date >= $7", "e.date <= $8",
	} {
		if !strings.Contains(q.listSQL, want) {
			t.Errorf("predicate %q missing:\n%s", want, q.listSQL)
		}
	}
	// 8 predicate args + limit + offset.
	if len(q.listArgs) != 10 {
		t.Errorf("list args = %d, want 10", len(q.listArgs))
	}
	if len(q.countArgs) != 8 {
		t.Errorf("count args = %d, want 8", len(q.countArgs))
	}

	if _, err := buildEntryListQuery(1, &models.EntryFilter{FromDate: "30-11-2025"}); err == nil {
		t.Error("malformed from date accepted")
	}
}
