// Package assignments exposes the assignment journal over HTTP so operators
// can audit past submissions.
package assignments

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/askilde/dispatchdesk/core/history"
)

// NewHistoryHandler returns an HTTP handler exposing assignment history via
// GET /api/assignments/history. Requests must include an Authorization header
// with "Bearer <token>" when token is non-empty.
func NewHistoryHandler(store history.Store, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token != "" {
			auth := r.Header.Get("Authorization")
			if auth != "Bearer "+token {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		q := history.Query{}
		if s := r.URL.Query().Get("start"); s != "" {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				q.Start = t
			}
		}
		if s := r.URL.Query().Get("end"); s != "" {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				q.End = t
			}
		}
		q.RouteID = r.URL.Query().Get("route_id")
		q.DriverID = r.URL.Query().Get("driver_id")
		records, err := store.Query(r.Context(), q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
