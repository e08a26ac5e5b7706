/*
main.go - HTTP server entry point

STARTUP SEQUENCE:
  1. Load config (.env + environment), parse flags
  2. Initialize SQLite store
  3. Pick email provider (Resend when RESEND_API_KEY is set, log otherwise)
  4. Configure HTTP router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: $PORT or 8080)
  -db      SQLite database path (default: $DB_PATH or grants.db)
           Use ":memory:" for in-memory database

EXAMPLES:
  ./server -db=":memory:"
  curl -X POST localhost:8080/api/scenarios/demo
  curl -X POST localhost:8080/api/grants/run
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/vacation-grant/api"
	"github.com/warp/vacation-grant/config"
	"github.com/warp/vacation-grant/email"
	"github.com/warp/vacation-grant/store/sqlite"
)

func main() {
	cfg := config.Load()

	port := flag.Int("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	flag.Parse()

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	if cfg.ResendAPIKey == "" {
		log.Println("RESEND_API_KEY not set, emails will be logged only")
	}
	handler := api.NewHandler(store, email.New(cfg.ResendAPIKey, cfg.EmailFrom))
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%d", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
