package handlers

import (
	"delivery-slot-service/internal/api/dto"
	"delivery-slot-service/internal/domain"
	"delivery-slot-service/internal/services"
	"net/http"
	"strings"
)

// SlotHandler exposes the slot browse endpoint.
type SlotHandler struct {
	Catalog *services.SlotCatalog
}

// List returns the bookable slots for ?method=&date=.
func (h *SlotHandler) List(w http.ResponseWriter, r *http.Request) {
	methodParam := strings.TrimSpace(r.URL.Query().Get("method"))
	if methodParam == "" {
		writeError(w, r, http.StatusBadRequest, "method is required")
		return
	}

	method, err := domain.ParseDeliveryMethod(methodParam)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	dateParam := strings.TrimSpace(r.URL.Query().Get("date"))
	if dateParam == "" {
		writeError(w, r, http.StatusBadRequest, "date is required")
		return
	}

	date, err := domain.ParseDate(dateParam)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid date: expected YYYY-MM-DD")
		return
	}

	slots, err := h.Catalog.GetSlots(r.Context(), method, date)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.ListSlotsResponse{Slots: make([]dto.SlotResponse, 0, len(slots))}
	for _, s := range slots {
		res.Slots = append(res.Slots, dto.SlotResponse{
			ID:        s.ID,
			Method:    string(s.Method),
			Date:      domain.FormatDate(s.Date),
			StartTime: s.Start.String(),
			EndTime:   s.End.String(),
			Status:    string(s.Status),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
