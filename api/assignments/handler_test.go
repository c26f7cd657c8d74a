package assignments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/askilde/dispatchdesk/core/history"
)

type memStore struct{ recs []history.Record }

func (m *memStore) Append(ctx context.Context, r history.Record) error {
	m.recs = append(m.recs, r)
	return nil
}

func (m *memStore) Query(ctx context.Context, q history.Query) ([]history.Record, error) {
	var res []history.Record
	for _, r := range m.recs {
		if q.RouteID != "" {
			found := false
			for _, o := range r.Outcomes {
				if o.RouteID == q.RouteID {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		res = append(res, r)
	}
	return res, nil
}

func (m *memStore) Close() error { return nil }

func TestHistoryHandler_AuthAndFilters(t *testing.T) {
	store := &memStore{}
	if err := store.Append(context.Background(), history.Record{
		Timestamp: time.Now(),
		Requested: 1,
		Assigned:  1,
		Outcomes: []history.Outcome{
			{RouteID: "r1", DriverID: "d1", IsAssigned: true},
		},
	}); err != nil {
		t.Fatalf("append: %v", err)
	}
	h := NewHistoryHandler(store, "tok")

	req := httptest.NewRequest("GET", "/api/assignments/history?route_id=r1", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var out []history.Record
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 record")
	}
	// unauthorized
	req = httptest.NewRequest("GET", "/api/assignments/history", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rr.Code)
	}
}

func TestHistoryHandler_NoTokenAllowsAll(t *testing.T) {
	store := &memStore{}
	h := NewHistoryHandler(store, "")

	req := httptest.NewRequest("GET", "/api/assignments/history", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
}
