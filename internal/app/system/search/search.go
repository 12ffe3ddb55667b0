// internal/app/system/search/search.go
package search

import (
	"strings"

	"github.com/dalemusser/advocates/internal/domain/models"
)

// Term normalizes a raw query for matching: surrounding whitespace is
// dropped and the rest is lower-cased.
func Term(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// Active reports whether q narrows a list at all. Empty and
// whitespace-only queries do not.
func Active(q string) bool {
	return Term(q) != ""
}

// Filter returns the advocates matching q, in their original order.
//
// An inactive query returns rows itself, unchanged. Otherwise a record
// matches when the term is a case-insensitive substring of its first name,
// last name, city, degree, any specialty, or years of experience.
//
// Typical usage when re-rendering a list after the query changes:
//
//	rows := search.Filter(all, r.URL.Query().Get("q"))
//
// Filter is pure and idempotent: filtering its own output with the same
// query returns the same records.
func Filter(rows []models.Advocate, q string) []models.Advocate {
	term := Term(q)
	if term == "" {
		return rows
	}
	out := make([]models.Advocate, 0, len(rows))
	for _, a := range rows {
		if Matches(a, term) {
			out = append(out, a)
		}
	}
	return out
}

// Matches reports whether a matches an already-normalized term (see Term).
// Absent fields never match.
func Matches(a models.Advocate, term string) bool {
	if containsFold(a.FirstName, term) ||
		containsFold(a.LastName, term) ||
		containsFold(a.City, term) ||
		containsFold(a.Degree, term) {
		return true
	}
	for _, s := range a.Specialties {
		if strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return containsFold(a.YearsOfExperience, term)
}

func containsFold(t models.Text, term string) bool {
	if !t.Valid {
		return false
	}
	return strings.Contains(strings.ToLower(t.String), term)
}
