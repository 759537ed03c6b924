package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

// WriteSuccess writes the {status:"success", data:...} envelope.
func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "success",
		"data":   data,
	})
}

// WriteError writes the {status:"error", message:...} envelope. The
// HTTP status comes from the error's taxonomy; anything unrecognized
// is a 500 with a generic message so internals never leak.
func WriteError(w http.ResponseWriter, err error) {
	status, message := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("unexpected error: %v", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "error",
		"message": message,
	})
}
