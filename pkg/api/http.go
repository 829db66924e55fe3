package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// errPayloadTooLarge is returned when the request body exceeds the size
// limit.
var errPayloadTooLarge = errors.New("payload too large")

// cors sets the permissive CORS headers the generation endpoint serves
// with, matching the browser clients it exists for.
func cors(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// writeJSON writes a JSON response with proper headers.
func writeJSON(w http.ResponseWriter, code int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}

// readJSON decodes the request body into v, enforcing a size limit to
// prevent memory exhaustion. Malformed bodies are rejected, not coerced.
func readJSON(w http.ResponseWriter, r *http.Request, limit int64, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("%w (max %d bytes)", errPayloadTooLarge, limit)
		}
		return err
	}
	if len(body) == 0 {
		return fmt.Errorf("empty body")
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("malformed json: %w", err)
	}
	return nil
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
