/*
 * Copyright (c) 2025 TravelSeal Project. All Rights reserved.
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package model

import "time"

// Certificate is an immutable attestation of a trip's manifest at
// issuance time. ManifestData holds the exact canonical bytes the
// hash was computed over, so verification replays what was hashed
// rather than re-reading live item storage.
type Certificate struct {
	ID           string
	TripID       string
	Hash         string
	ManifestData string
	ItemCount    int
	TotalValue   float64
	Verified     bool
	CreatedAt    time.Time
}
