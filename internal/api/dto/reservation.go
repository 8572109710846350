package dto

import "time"

type CreateReservationRequest struct {
	Method     string `json:"method"`
	Date       string `json:"date"`
	SlotID     int64  `json:"slot_id"`
	CustomerID string `json:"customer_id"`
}

type ReservationResponse struct {
	ID         int64     `json:"id"`
	SlotID     int64     `json:"slot_id"`
	Method     string    `json:"method"`
	Date       string    `json:"date"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	CustomerID string    `json:"customer_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type ListReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}
