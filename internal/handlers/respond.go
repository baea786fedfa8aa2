package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

// validate checks the struct tags on request DTOs.
var validate = validator.New()

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("failed to encode response")
	}
}

// decodeJSON reads the request body into v. Numbers are kept as
// json.Number where the DTO asks for it, so money fields are never silently
// truncated or zeroed.
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	return dec.Decode(v)
}
