package handler

import (
	"encoding/json"
	"net/http"

	"github.com/neisdata/neis/internal/model"
)

// writeJSON serializes v as JSON and writes it to the response with the given
// HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeData wraps v in the standard success envelope.
func writeData(w http.ResponseWriter, status int, v interface{}) {
	writeJSON(w, status, model.APIResponse{Status: "success", Data: v})
}

// writeError writes a structured error response using the standard error
// envelope.
func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, model.ErrorResponse{
		Error: model.ErrorDetail{Code: code, Message: message},
	})
}

// readJSON decodes the request body as JSON into v. The body is closed after
// decoding regardless of success or failure.
func readJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// queryBool extracts a boolean query parameter, returning defaultVal when the
// parameter is absent. "false" and "0" read as false; "true" and "1" as true;
// anything else keeps the default.
func queryBool(r *http.Request, key string, defaultVal bool) bool {
	switch r.URL.Query().Get(key) {
	case "true", "1":
		return true
	case "false", "0":
		return false
	default:
		return defaultVal
	}
}
