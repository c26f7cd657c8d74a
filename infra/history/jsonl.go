package history

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"sync"

	corehistory "github.com/askilde/dispatchdesk/core/history"
)

// JSONLStore stores submission records in a JSONL file.
type JSONLStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONLStore creates the file if missing and returns the store.
func NewJSONLStore(path string) (*JSONLStore, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	if cerr := f.Close(); cerr != nil {
		return nil, cerr
	}
	return &JSONLStore{path: path}, nil
}

// Append writes the record as one JSON line.
func (s *JSONLStore) Append(ctx context.Context, rec corehistory.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return json.NewEncoder(f).Encode(rec)
}

// Query scans the file and returns records matching the filters. Malformed
// lines are skipped.
func (s *JSONLStore) Query(ctx context.Context, q corehistory.Query) ([]corehistory.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	var res []corehistory.Record
	scanner := bufio.NewScanner(f)
	// A record for a full 2000-pair batch exceeds the default 64KB token
	// limit.
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	for scanner.Scan() {
		var r corehistory.Record
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			continue
		}
		if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
			continue
		}
		if !q.End.IsZero() && r.Timestamp.After(q.End) {
			continue
		}
		if q.RouteID != "" && !recordMentionsRoute(r, q.RouteID) {
			continue
		}
		if q.DriverID != "" && !recordMentionsDriver(r, q.DriverID) {
			continue
		}
		res = append(res, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func recordMentionsRoute(r corehistory.Record, id string) bool {
	for _, o := range r.Outcomes {
		if o.RouteID == id {
			return true
		}
	}
	return false
}

func recordMentionsDriver(r corehistory.Record, id string) bool {
	for _, o := range r.Outcomes {
		if o.DriverID == id {
			return true
		}
	}
	return false
}

// Close implements Store.
func (s *JSONLStore) Close() error { return nil }
