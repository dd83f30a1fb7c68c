/*
 * Copyright (c) 2025 TravelSeal Project. All Rights reserved.
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package manifest

import (
	"github.com/travelseal/travelseal/internal/domain/model"
)

// timestampLayout is RFC 3339 with millisecond precision. Snapshots
// are always built in UTC, so the formatted value ends in "Z".
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// unknownOwner is substituted when the trip's owner record is missing.
// A manifest without a resolvable owner still certifies; the name is
// display data, not an authorization input.
const unknownOwner = "Unknown"

// Snapshot is the canonical representation of a trip's manifest at one
// instant. It is the exact structure that gets serialized and hashed,
// and the same structure the verification response replays, so the
// hashed fields and the shown fields cannot drift apart.
//
// The issuance timestamp is part of the hashed payload: certifying an
// unchanged trip at a different instant produces a different hash.
// Each certificate is thereby bound to its issuance instant; identical
// hashes imply identical content certified at the same instant.
type Snapshot struct {
	TripID      string `json:"tripId"`
	TripTitle   string `json:"tripTitle"`
	Destination string `json:"destination"`
	UserID      string `json:"userId"`
	UserName    string `json:"userName"`
	Items       []Item `json:"items"`
	Timestamp   string `json:"timestamp"`
}

// Item is the hashed summary of one manifest item. Field order here is
// field order in the canonical bytes; do not reorder.
type Item struct {
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Quantity       int      `json:"quantity"`
	EstimatedValue *float64 `json:"estimatedValue"`
	SerialNumber   *string  `json:"serialNumber"`
	LuggageBrand   *string  `json:"luggageBrand"`
	LuggageSize    *string  `json:"luggageSize"`
	IsSealed       bool     `json:"isSealed"`
	IsLocked       bool     `json:"isLocked"`
}

// newSnapshot assembles the canonical snapshot from store records.
// Items keep the repository's native return order.
func newSnapshot(trip *model.Trip, owner *model.User, items []*model.ManifestItem, issuedAt string) *Snapshot {
	ownerName := unknownOwner
	if owner != nil {
		ownerName = owner.Name
	}

	summaries := make([]Item, 0, len(items))
	for _, it := range items {
		summaries = append(summaries, Item{
			Name:           it.Name,
			Category:       it.Category,
			Quantity:       it.Quantity,
			EstimatedValue: it.EstimatedValue,
			SerialNumber:   it.SerialNumber,
			LuggageBrand:   it.LuggageBrand,
			LuggageSize:    it.LuggageSize,
			IsSealed:       it.IsSealed,
			IsLocked:       it.IsLocked,
		})
	}

	return &Snapshot{
		TripID:      trip.ID,
		TripTitle:   trip.Title,
		Destination: trip.Destination,
		UserID:      trip.UserID,
		UserName:    ownerName,
		Items:       summaries,
		Timestamp:   issuedAt,
	}
}

// Aggregates returns the denormalized item count and total estimated
// value. Items without an estimated value count as zero.
func (s *Snapshot) Aggregates() (itemCount int, totalValue float64) {
	for _, it := range s.Items {
		if it.EstimatedValue != nil {
			totalValue += *it.EstimatedValue
		}
	}
	return len(s.Items), totalValue
}
