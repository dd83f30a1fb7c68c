/*
 * Copyright (c) 2025 TravelSeal Project. All Rights reserved.
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package manifest

import (
	"context"
	"encoding/json"
	"fmt"
)

// VerificationResult is the public answer to "does this hash attest a
// manifest". When Valid is false no other field is populated. On the
// valid branch itemCount, totalValue and items are always emitted,
// zero values included; the display fields drop out when the trip or
// owner record is gone.
type VerificationResult struct {
	Valid       bool    `json:"valid"`
	ManifestID  string  `json:"manifestId,omitempty"`
	UserName    string  `json:"userName,omitempty"`
	TripTitle   string  `json:"tripTitle,omitempty"`
	Destination string  `json:"destination,omitempty"`
	ItemCount   int     `json:"itemCount"`
	TotalValue  float64 `json:"totalValue"`
	Items       []Item  `json:"items"`
	Timestamp   string  `json:"timestamp,omitempty"`
	Hash        string  `json:"hash,omitempty"`
}

// MarshalJSON keeps the invalid shape down to the single valid flag.
func (r *VerificationResult) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte(`{"valid":false}`), nil
	}
	type alias VerificationResult
	return json.Marshal((*alias)(r))
}

// Verify resolves a hash back to its certificate. An unknown, empty or
// malformed hash is a normal outcome, answered with Valid=false; an
// error is returned only when a backend fails. The item list is
// replayed verbatim from the certificate's stored snapshot, not from
// live item storage, so it reflects the manifest as it was at
// issuance even if items were edited or deleted since.
func (s *Service) Verify(ctx context.Context, hash string) (*VerificationResult, error) {
	invalid := &VerificationResult{Valid: false}
	if hash == "" {
		return invalid, nil
	}

	cert, err := s.certs.FindByHash(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("lookup certificate: %w", err)
	}
	if cert == nil {
		return invalid, nil
	}

	result := &VerificationResult{
		Valid:      true,
		ManifestID: cert.ID,
		ItemCount:  cert.ItemCount,
		TotalValue: cert.TotalValue,
		Items:      []Item{},
		Timestamp:  cert.CreatedAt.UTC().Format(timestampLayout),
		Hash:       cert.Hash,
	}

	// Best effort: the certificate stands on its own even when the
	// trip or owner record has since disappeared.
	trip, err := s.trips.FindByID(ctx, cert.TripID)
	if err != nil {
		s.logger.Printf("verify %s: trip lookup failed: %v", hash, err)
	}
	if trip != nil {
		result.TripTitle = trip.Title
		result.Destination = trip.Destination
		owner, err := s.users.FindByID(ctx, trip.UserID)
		if err != nil {
			s.logger.Printf("verify %s: owner lookup failed: %v", hash, err)
		}
		if owner != nil {
			result.UserName = owner.Name
		}
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(cert.ManifestData), &snap); err != nil {
		// Unparseable snapshot data degrades to an empty item list
		// rather than failing the verification.
		s.logger.Printf("verify %s: stored snapshot unparsable: %v", hash, err)
	} else if snap.Items != nil {
		result.Items = snap.Items
	}

	return result, nil
}
