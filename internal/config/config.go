/*
 * Copyright (c) 2025 TravelSeal Project. All Rights reserved.
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package config

import (
	"log"
	"os"
	"strings"
)

// Config captures the tunables required to start the TravelSeal server.
type Config struct {
	// Addr is the listen address, e.g. ":5000".
	Addr string
	// DatabasePath points at the SQLite file; empty selects the
	// in-memory store (state lives for the process only).
	DatabasePath string
	// BaseURL is the public origin embedded in verification links and
	// QR codes.
	BaseURL string
	// AllowedOrigins configures CORS.
	AllowedOrigins []string
	Logger         *log.Logger
}

// FromEnv builds a Config from environment variables, with defaults
// suitable for local development.
func FromEnv() Config {
	return Config{
		Addr:           ":" + getEnv("SERVER_PORT", "5000"),
		DatabasePath:   os.Getenv("DATABASE_PATH"),
		BaseURL:        getEnv("BASE_URL", "http://localhost:5000"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		Logger:         log.New(os.Stdout, "", log.LstdFlags),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
