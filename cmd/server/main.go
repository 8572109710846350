package main

import (
	"database/sql"
	"delivery-slot-service/internal/adapters/cache"
	"delivery-slot-service/internal/adapters/repositories"
	"delivery-slot-service/internal/api"
	"delivery-slot-service/internal/config"
	"delivery-slot-service/internal/platform/db"
	"delivery-slot-service/internal/ports"
	"delivery-slot-service/internal/services"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, optional Redis)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")

	slots, reservations, closeDB, err := openStores()
	if err != nil {
		log.Fatal(err)
	}
	defer closeDB()

	// A Redis address enables the browse-path availability cache.
	// Without one the catalog serves every listing from the store.
	var availability ports.AvailabilityCache
	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		ttl := config.GetDuration("SLOT_CACHE_TTL", 30*time.Second)
		availability = cache.NewRedisSlotCache(client, ttl)
		log.Printf("availability cache enabled: addr=%s ttl=%s", addr, ttl)
	}

	clock := ports.SystemClock{}
	catalog := &services.SlotCatalog{Slots: slots, Clock: clock, Cache: availability}
	engine := &services.ReservationEngine{
		Slots:        slots,
		Reservations: reservations,
		Clock:        clock,
		Cache:        availability,
	}

	router := api.NewRouter(catalog, engine, api.RouterConfig{
		RateLimitRPS:   config.GetFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: config.GetInt("RATE_LIMIT_BURST", 40),
	})

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openStores picks the backing database: Postgres when DATABASE_URL is
// set (schema managed by cmd/dbtool), embedded SQLite otherwise (schema
// initialized here on startup for local runs).
func openStores() (ports.SlotStore, ports.ReservationStore, func(), error) {
	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, nil, err
		}

		log.Println("Using postgres store")
		return repositories.NewSQLSlotStore(pg),
			repositories.NewSQLReservationStore(pg),
			func() { _ = pg.Close() },
			nil
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	lite, err := openSqlite(dbPath)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := repositories.InitSchema(lite); err != nil {
		_ = lite.Close()
		return nil, nil, nil, err
	}

	log.Printf("Using sqlite store path=%s", dbPath)
	return repositories.NewSqliteSlotStore(lite),
		repositories.NewSqliteReservationStore(lite),
		func() { _ = lite.Close() },
		nil
}

func openSqlite(dbPath string) (*sql.DB, error) {
	lite, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := lite.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return lite, nil
}
