package response

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// JSON writes a JSON response. Nothing is written if data cannot be encoded,
// so the caller can still send an error response instead.
func JSON(w http.ResponseWriter, status int, data any) error {
	var body []byte
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("encode response: %w", err)
		}
		body = append(raw, '\n')
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
	return nil
}

// OK writes a 200 JSON response
func OK(w http.ResponseWriter, data any) error {
	return JSON(w, http.StatusOK, data)
}
