/*
 * Copyright (c) 2025 TravelSeal Project. All Rights reserved.
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package model

import "time"

// ManifestItem is one declared piece of luggage content. Optional
// fields are pointers so that "not provided" survives storage and
// round-trips as JSON null.
type ManifestItem struct {
	ID             string
	TripID         string
	Name           string
	Category       string
	Quantity       int
	EstimatedValue *float64
	SerialNumber   *string
	LuggageBrand   *string
	LuggageSize    *string
	IsSealed       bool
	IsLocked       bool
	CreatedAt      time.Time
}
