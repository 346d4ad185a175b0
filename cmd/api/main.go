package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/k4lib3/stackover/backend/internal/config"
	"github.com/k4lib3/stackover/backend/internal/server"
)

func main() {
	cfg := config.Load()

	srv := server.NewServer(cfg)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %v", err)
	}
}
