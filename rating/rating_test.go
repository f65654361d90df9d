package rating

import (
	"birdlens/db/dbtest"
	"birdlens/user"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

func rate(t *testing.T, userID, value int) *httptest.ResponseRecorder {
	t.Helper()

	body := strings.NewReader(`{"rating": ` + strconv.Itoa(value) + `}`)
	req := httptest.NewRequest(http.MethodPost, "/rating", body)
	req = req.WithContext(user.WithIdentity(req.Context(), user.Identity{ID: userID}))
	rec := httptest.NewRecorder()
	RateHandler(rec, req)
	return rec
}

func TestRateAndReport(t *testing.T) {
	dbtest.Open(t)
	a := dbtest.SeedUser(t, "a@example.com", "A", "One")
	b := dbtest.SeedUser(t, "b@example.com", "B", "Two")
	dbtest.SeedUser(t, "c@example.com", "C", "Three") // never rates

	if rec := rate(t, a, 5); rec.Code != http.StatusOK {
		t.Fatalf("rate a: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := rate(t, b, 3); rec.Code != http.StatusOK {
		t.Fatalf("rate b: expected 200, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/rating/report", nil)
	rec := httptest.NewRecorder()
	ReportHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("report: expected 200, got %d", rec.Code)
	}

	var report struct {
		Average float64 `json:"average"`
		Count   int     `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	// The unrated user is excluded from both the average and the count.
	if report.Count != 2 {
		t.Fatalf("count = %d, want 2", report.Count)
	}
	if report.Average != 4 {
		t.Fatalf("average = %v, want 4", report.Average)
	}
}

func TestRateRewritesPreviousValue(t *testing.T) {
	dbtest.Open(t)
	uid := dbtest.SeedUser(t, "a@example.com", "A", "One")

	rate(t, uid, 2)
	rate(t, uid, 5)

	req := httptest.NewRequest(http.MethodGet, "/rating/report", nil)
	rec := httptest.NewRecorder()
	ReportHandler(rec, req)

	var report struct {
		Average float64 `json:"average"`
		Count   int     `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Count != 1 || report.Average != 5 {
		t.Fatalf("report = %+v, want one rating of 5", report)
	}
}

func TestRateOutOfRange(t *testing.T) {
	dbtest.Open(t)
	uid := dbtest.SeedUser(t, "a@example.com", "A", "One")

	for _, v := range []int{0, 6} {
		if rec := rate(t, uid, v); rec.Code != http.StatusBadRequest {
			t.Fatalf("rating %d: expected 400, got %d", v, rec.Code)
		}
	}
}

func TestReportEmpty(t *testing.T) {
	dbtest.Open(t)

	req := httptest.NewRequest(http.MethodGet, "/rating/report", nil)
	rec := httptest.NewRecorder()
	ReportHandler(rec, req)

	var report struct {
		Average float64 `json:"average"`
		Count   int     `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Count != 0 || report.Average != 0 {
		t.Fatalf("report = %+v, want zeroes", report)
	}
}
