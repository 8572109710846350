package api

import (
	"delivery-slot-service/internal/api/handlers"
	"delivery-slot-service/internal/services"
	"net/http"
)

// RouterConfig tunes the per-client rate limiter.
type RouterConfig struct {
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(catalog *services.SlotCatalog, engine *services.ReservationEngine, cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	slotHandler := &handlers.SlotHandler{Catalog: catalog}
	reservationHandler := &handlers.ReservationHandler{Engine: engine}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("GET /api/delivery-methods", handlers.Methods)
	mux.HandleFunc("GET /api/time-slots", slotHandler.List)
	mux.HandleFunc("POST /api/reservations", reservationHandler.Create)
	mux.HandleFunc("GET /api/reservations", reservationHandler.List)
	mux.HandleFunc("GET /api/reservations/{id}", reservationHandler.Get)

	var handler http.Handler = mux
	if cfg.RateLimitRPS > 0 {
		handler = rateLimitMiddleware(newClientLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst), handler)
	}

	return requestIDMiddleware(loggingMiddleware(handler))
}
