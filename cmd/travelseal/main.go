/*
 * Copyright (c) 2025 TravelSeal Project. All Rights reserved.
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/travelseal/travelseal/internal/config"
	"github.com/travelseal/travelseal/internal/infra/memory"
	"github.com/travelseal/travelseal/internal/infra/sqlite"
	"github.com/travelseal/travelseal/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger := cfg.Logger

	var stores server.Stores
	if cfg.DatabasePath != "" {
		db, err := sqlite.InitDB(context.Background(), cfg.DatabasePath)
		if err != nil {
			logger.Fatalf("Failed to open database %s: %v.", cfg.DatabasePath, err)
		}
		defer func() {
			if err := sqlite.CloseDB(db); err != nil {
				logger.Printf("Failed to close database: %v.", err)
			}
		}()
		stores = server.Stores{
			Users:        sqlite.NewUserRepository(db),
			Trips:        sqlite.NewTripRepository(db),
			Items:        sqlite.NewManifestItemRepository(db),
			Certificates: sqlite.NewCertificateRepository(db),
		}
		logger.Printf("Using sqlite database at %s.", cfg.DatabasePath)
	} else {
		stores = server.Stores{
			Users:        memory.NewUserRepository(),
			Trips:        memory.NewTripRepository(),
			Items:        memory.NewManifestItemRepository(),
			Certificates: memory.NewCertificateRepository(),
		}
		logger.Print("DATABASE_PATH not set, using in-memory stores.")
	}

	srv, err := server.New(cfg, stores)
	if err != nil {
		logger.Fatalf("Failed to build server: %v.", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatalf("Server error: %v.", err)
		}
	case sig := <-quit:
		logger.Printf("Received %s, shutting down.", sig)
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Printf("Graceful shutdown failed: %v.", err)
		}
	}
}
