/*
 * Copyright (c) 2025 TravelSeal Project. All Rights reserved.
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package manifest

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *Snapshot {
	value := 1200.0
	serial := "SN-123"
	return &Snapshot{
		TripID:      "trip-1",
		TripTitle:   "Madrid",
		Destination: "Madrid, Spain",
		UserID:      "user-1",
		UserName:    "Ana",
		Items: []Item{
			{Name: "Laptop", Category: "electronics", Quantity: 1, EstimatedValue: &value, SerialNumber: &serial, IsSealed: true},
			{Name: "Socks", Category: "clothing", Quantity: 4},
		},
		Timestamp: "2025-06-01T10:00:00.000Z",
	}
}

func TestFingerprint_Deterministic(t *testing.T) {
	a, err := testSnapshot().CanonicalBytes()
	require.NoError(t, err)
	b, err := testSnapshot().CanonicalBytes()
	require.NoError(t, err)

	assert.Equal(t, a, b, "independent builds of identical content must serialize identically")
	assert.Equal(t, Fingerprint(a), Fingerprint(b))
}

func TestFingerprint_Format(t *testing.T) {
	canonical, err := testSnapshot().CanonicalBytes()
	require.NoError(t, err)

	hash := Fingerprint(canonical)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{64}$`), hash)
}

func TestFingerprint_SensitiveToSingleFieldChanges(t *testing.T) {
	base, err := testSnapshot().CanonicalBytes()
	require.NoError(t, err)
	baseHash := Fingerprint(base)

	mutations := map[string]func(s *Snapshot){
		"item name":       func(s *Snapshot) { s.Items[0].Name = "Laptop Pro" },
		"item quantity":   func(s *Snapshot) { s.Items[1].Quantity = 5 },
		"estimated value": func(s *Snapshot) { v := 1200.01; s.Items[0].EstimatedValue = &v },
		"value removed":   func(s *Snapshot) { s.Items[0].EstimatedValue = nil },
		"sealed flag":     func(s *Snapshot) { s.Items[0].IsSealed = false },
		"locked flag":     func(s *Snapshot) { s.Items[1].IsLocked = true },
		"item order":      func(s *Snapshot) { s.Items[0], s.Items[1] = s.Items[1], s.Items[0] },
		"trip title":      func(s *Snapshot) { s.TripTitle = "Madrid 2" },
		"owner name":      func(s *Snapshot) { s.UserName = "Anna" },
		"timestamp":       func(s *Snapshot) { s.Timestamp = "2025-06-01T10:00:00.001Z" },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			s := testSnapshot()
			mutate(s)
			canonical, err := s.CanonicalBytes()
			require.NoError(t, err)
			assert.NotEqual(t, baseHash, Fingerprint(canonical))
		})
	}
}

func TestFingerprint_PureFunction(t *testing.T) {
	canonical := []byte(`{"tripId":"trip-1"}`)
	assert.Equal(t, Fingerprint(canonical), Fingerprint(canonical))
	assert.NotEqual(t, Fingerprint(canonical), Fingerprint([]byte(`{"tripId":"trip-2"}`)))
}
