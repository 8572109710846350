package handlers

import (
	"delivery-slot-service/internal/api/dto"
	"delivery-slot-service/internal/domain"
	"delivery-slot-service/internal/services"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// ReservationHandler exposes the reservation endpoints. Field-presence
// validation happens here; the booking rules live in the engine.
type ReservationHandler struct {
	Engine *services.ReservationEngine
}

// Create claims a slot for a customer. Responds 201 on success, 400 on
// a malformed or rule-breaking request, 409 when the slot is taken.
func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateReservationRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if strings.TrimSpace(req.Method) == "" {
		writeError(w, r, http.StatusBadRequest, "method is required")
		return
	}
	method, err := domain.ParseDeliveryMethod(req.Method)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if strings.TrimSpace(req.Date) == "" {
		writeError(w, r, http.StatusBadRequest, "date is required")
		return
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid date: expected YYYY-MM-DD")
		return
	}

	if req.SlotID <= 0 {
		writeError(w, r, http.StatusBadRequest, "slot_id is required")
		return
	}

	customerID := strings.TrimSpace(req.CustomerID)
	if customerID == "" {
		writeError(w, r, http.StatusBadRequest, "customer_id is required")
		return
	}

	view, err := h.Engine.CreateReservation(r.Context(), services.CreateReservationRequest{
		Method:     method,
		Date:       date,
		SlotID:     req.SlotID,
		CustomerID: customerID,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toReservationResponse(view))
}

// Get returns one reservation by path id.
func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid reservation id")
		return
	}

	view, err := h.Engine.GetReservation(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toReservationResponse(view))
}

// List returns a customer's reservations for ?customer_id=.
func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	customerID := strings.TrimSpace(r.URL.Query().Get("customer_id"))
	if customerID == "" {
		writeError(w, r, http.StatusBadRequest, "customer_id is required")
		return
	}

	views, err := h.Engine.ListReservations(r.Context(), customerID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.ListReservationsResponse{
		Reservations: make([]dto.ReservationResponse, 0, len(views)),
	}
	for _, v := range views {
		res.Reservations = append(res.Reservations, toReservationResponse(v))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func toReservationResponse(v *services.ReservationView) dto.ReservationResponse {
	return dto.ReservationResponse{
		ID:         v.ID,
		SlotID:     v.SlotID,
		Method:     string(v.Method),
		Date:       domain.FormatDate(v.Date),
		StartTime:  v.Start.String(),
		EndTime:    v.End.String(),
		CustomerID: v.CustomerID,
		CreatedAt:  v.CreatedAt,
	}
}
