package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dalemusser/advocates/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// AnnLee is the single-record listing used across scenario tests.
const AnnLee = `{"firstName":"Ann","lastName":"Lee","city":"Austin","degree":"MD","specialties":["Anxiety"],"yearsOfExperience":5,"phoneNumber":"555"}`

// SampleListing is a small {"data": [...]} response body with mixed field
// types, the way the advocates API serves them.
const SampleListing = `{"data":[
	{"id":1,"firstName":"Ann","lastName":"Lee","city":"Austin","degree":"MD","specialties":["Anxiety","Grief"],"yearsOfExperience":5,"phoneNumber":"555"},
	{"id":"b2","firstName":"Raj","lastName":"Patel","city":"New York","degree":"PhD","specialties":["Trauma"],"yearsOfExperience":"12","phoneNumber":5551112222},
	{"firstName":"Mia","lastName":"Nyx","city":"Denver","degree":"MSW","yearsOfExperience":15,"phoneNumber":"555-0003"}
]}`

// Envelope wraps raw JSON records in a {"data": [...]} body.
func Envelope(records ...string) string {
	body := `{"data":[`
	for i, r := range records {
		if i > 0 {
			body += ","
		}
		body += r
	}
	return body + `]}`
}

// Advocates decodes raw JSON records into models.Advocate values.
func Advocates(t *testing.T, records ...string) []models.Advocate {
	t.Helper()
	out := make([]models.Advocate, 0, len(records))
	for _, r := range records {
		var a models.Advocate
		if err := json.Unmarshal([]byte(r), &a); err != nil {
			t.Fatalf("bad advocate fixture %s: %v", r, err)
		}
		out = append(out, a)
	}
	return out
}
