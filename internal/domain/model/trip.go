/*
 * Copyright (c) 2025 TravelSeal Project. All Rights reserved.
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package model

import "time"

// Trip is a journey a manifest is declared for. Dates are kept as the
// ISO date strings the client supplies; they are display data, not
// instants the server computes with.
type Trip struct {
	ID          string
	UserID      string
	Title       string
	Destination string
	StartDate   string
	EndDate     string
	Notes       *string
	CreatedAt   time.Time
}
