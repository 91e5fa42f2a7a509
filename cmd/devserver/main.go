package main

import (
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/eshaffer321/hospitalnav-go/internal/devserver"
	"github.com/eshaffer321/hospitalnav-go/pkg/hospital"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	addr := flag.String("addr", envOr("HOSPITAL_DEV_ADDR", ":8000"), "Listen address")
	latency := flag.Duration("latency", 0, "Delay added to every backend call")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	srv := devserver.New(&devserver.Options{
		Backend: hospital.NewFixtureBackend(&hospital.FixtureOptions{
			Latency: *latency,
			Logger:  logger,
		}),
		Logger: logger,
	})

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Serving hospital API", "addr", *addr)
	log.Fatal(httpServer.ListenAndServe())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
