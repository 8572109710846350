package dto

type SlotResponse struct {
	ID        int64  `json:"id"`
	Method    string `json:"method"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

type ListSlotsResponse struct {
	Slots []SlotResponse `json:"slots"`
}
