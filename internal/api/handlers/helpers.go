package handlers

import (
	"delivery-slot-service/internal/domain"
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeDomainError maps the core's error taxonomy onto status codes:
// caller-correctable input problems become 400, losing a reservation
// race becomes 409, everything else is a 500 with the detail kept out
// of the response body.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var invalid *domain.InvalidRequestError
	if errors.As(err, &invalid) {
		writeError(w, r, http.StatusBadRequest, invalid.Reason)
		return
	}

	var reserved *domain.SlotAlreadyReservedError
	if errors.As(err, &reserved) {
		writeError(w, r, http.StatusConflict, reserved.Error())
		return
	}

	log.Printf("request failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}
