package handlers

import (
	"delivery-slot-service/internal/domain"
	"net/http"
)

// Methods lists the delivery methods a client can book, as plain
// enum names.
func Methods(w http.ResponseWriter, r *http.Request) {
	methods := domain.Methods()
	names := make([]string, 0, len(methods))
	for _, m := range methods {
		names = append(names, string(m))
	}

	writeJSON(w, r, http.StatusOK, names)
}
