package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// decodeJSON decodes the request body into dst, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return false
	}
	return true
}

// parseID converts a path parameter with one of the valueobject
// constructors, writing a 400 on failure.
func parseID[T any](w http.ResponseWriter, raw string, parse func(string) (T, error)) (T, bool) {
	id, err := parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return id, false
	}
	return id, true
}

// parseInterval reads the optional RFC 3339 from and to query parameters.
func parseInterval(r *http.Request) (from, to time.Time, err error) {
	q := r.URL.Query()
	if raw := q.Get("from"); raw != "" {
		if from, err = time.Parse(time.RFC3339, raw); err != nil {
			return from, to, fmt.Errorf("from: %w", err)
		}
	}
	if raw := q.Get("to"); raw != "" {
		if to, err = time.Parse(time.RFC3339, raw); err != nil {
			return from, to, fmt.Errorf("to: %w", err)
		}
	}
	return from, to, nil
}
