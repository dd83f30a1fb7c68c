/*
 * Copyright (c) 2025 TravelSeal Project. All Rights reserved.
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/rs/cors"
	"github.com/travelseal/travelseal/internal/artifact"
	"github.com/travelseal/travelseal/internal/config"
	"github.com/travelseal/travelseal/internal/domain/service"
	"github.com/travelseal/travelseal/internal/manifest"
)

// Stores bundles the repositories the server operates on. Any backend
// satisfying the interfaces works; main wires either sqlite or the
// in-memory store.
type Stores struct {
	Users        service.UserRepository
	Trips        service.TripRepository
	Items        service.ManifestItemRepository
	Certificates service.CertificateRepository
}

// Server wires the HTTP listener and request handling stack.
type Server struct {
	cfg     config.Config
	handler *handler
	http    *http.Server
	logger  *log.Logger
}

// New constructs a Server using the provided configuration and stores.
func New(cfg config.Config, stores Stores) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	core := manifest.NewService(stores.Users, stores.Trips, stores.Items, stores.Certificates, logger)
	renderer := artifact.NewRenderer(cfg.BaseURL)

	h, err := newHandler(core, renderer, stores, logger)
	if err != nil {
		return nil, err
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           c.Handler(h),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		cfg:     cfg,
		handler: h,
		http:    httpSrv,
		logger:  logger,
	}, nil
}

// ListenAndServe starts the HTTP server and blocks until it stops.
func (s *Server) ListenAndServe() error {
	s.logger.Printf("Run TravelSeal server on %s.", s.http.Addr)

	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully takes down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
