/*
 * Copyright (c) 2025 TravelSeal Project. All Rights reserved.
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package artifact

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelseal/travelseal/internal/domain/model"
	"github.com/travelseal/travelseal/internal/manifest"
)

func TestVerificationURL(t *testing.T) {
	r := NewRenderer("https://travelseal.example.com")
	url := r.VerificationURL("abc123")
	assert.Equal(t, "https://travelseal.example.com/verify?hash=abc123", url)
}

func TestQRCode_PNG(t *testing.T) {
	r := NewRenderer("http://localhost:5000")
	png, err := r.QRCode("deadbeef")
	require.NoError(t, err)
	require.NotEmpty(t, png)
	assert.Equal(t, "\x89PNG", string(png[:4]))

	dataURL, err := r.QRCodeDataURL("deadbeef")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dataURL, "data:image/png;base64,"))
}

func TestPDF_RendersCertificate(t *testing.T) {
	r := NewRenderer("http://localhost:5000")

	value := 1200.0
	serial := "SN-1"
	brand := "Samsonite"
	size := "medium"
	snap := &manifest.Snapshot{
		TripID:      "trip-1",
		TripTitle:   "Madrid",
		Destination: "Madrid, Spain",
		UserID:      "user-1",
		UserName:    "Ana",
		Items: []manifest.Item{
			{Name: "Laptop", Category: "electronics", Quantity: 1, EstimatedValue: &value, SerialNumber: &serial, LuggageBrand: &brand, LuggageSize: &size, IsSealed: true, IsLocked: true},
			{Name: "Socks", Category: "clothing", Quantity: 4},
		},
		Timestamp: "2025-06-01T10:00:00.000Z",
	}
	cert := &model.Certificate{
		ID:         "cert-1",
		TripID:     "trip-1",
		Hash:       strings.Repeat("ab", 32),
		ItemCount:  2,
		TotalValue: 1200,
		CreatedAt:  time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	trip := &model.Trip{StartDate: "2025-06-01", EndDate: "2025-06-10"}

	qrPNG, err := r.QRCode(cert.Hash)
	require.NoError(t, err)

	pdf, err := r.PDF(cert, snap, trip, qrPNG)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestPDF_ToleratesMissingTripAndQR(t *testing.T) {
	r := NewRenderer("http://localhost:5000")

	snap := &manifest.Snapshot{TripTitle: "Oslo", Destination: "Oslo, Norway", UserName: "Unknown"}
	cert := &model.Certificate{Hash: "abc", CreatedAt: time.Now()}

	pdf, err := r.PDF(cert, snap, nil, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}

func TestItemLine_Details(t *testing.T) {
	value := 99.5
	brand := "Away"
	size := "small"
	line := itemLine(1, manifest.Item{
		Name: "Drone", Category: "electronics", Quantity: 2,
		EstimatedValue: &value, LuggageBrand: &brand, LuggageSize: &size,
		IsSealed: true,
	})
	assert.Equal(t, "1. Drone (electronics) - Cantidad: 2 - Valor: $99.5 - Maleta: Away (Pequeña) - Sellada", line)
}
