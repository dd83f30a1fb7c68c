/*
 * Copyright (c) 2025 TravelSeal Project. All Rights reserved.
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelseal/travelseal/internal/artifact"
	"github.com/travelseal/travelseal/internal/infra/memory"
	"github.com/travelseal/travelseal/internal/manifest"
)

func newTestHandler(t *testing.T) (*handler, Stores) {
	t.Helper()
	stores := Stores{
		Users:        memory.NewUserRepository(),
		Trips:        memory.NewTripRepository(),
		Items:        memory.NewManifestItemRepository(),
		Certificates: memory.NewCertificateRepository(),
	}
	logger := log.New(io.Discard, "", 0)
	core := manifest.NewService(stores.Users, stores.Trips, stores.Items, stores.Certificates, logger)
	h, err := newHandler(core, artifact.NewRenderer("http://localhost:5000"), stores, logger)
	require.NoError(t, err)
	return h, stores
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), "body: %s", rec.Body.String())
	return v
}

func TestCertifyAndVerify_EndToEnd(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/users", map[string]string{"email": "ana@example.com", "name": "Ana"})
	require.Equal(t, http.StatusOK, rec.Code)
	user := decode[userResponse](t, rec)

	rec = doJSON(t, h, http.MethodPost, "/api/trips", map[string]any{
		"userId": user.ID, "title": "Madrid", "destination": "Madrid, Spain",
		"startDate": "2025-06-01", "endDate": "2025-06-10",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	trip := decode[tripResponse](t, rec)

	for _, item := range []map[string]any{
		{"userId": user.ID, "name": "Laptop", "category": "electronics", "quantity": 1, "estimatedValue": 1200},
		{"userId": user.ID, "name": "Socks", "category": "clothing", "quantity": 4},
	} {
		rec = doJSON(t, h, http.MethodPost, "/api/trips/"+trip.ID+"/items", item)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPost, "/api/trips/"+trip.ID+"/certificate", map[string]string{"userId": user.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	issued := decode[issueCertificateResponse](t, rec)
	assert.Len(t, issued.Certificate.Hash, 64)
	assert.Equal(t, 2, issued.Certificate.ItemCount)
	assert.Equal(t, 1200.0, issued.Certificate.TotalValue)
	assert.True(t, strings.HasPrefix(issued.PDFURL, "data:application/pdf;base64,"))
	assert.True(t, strings.HasPrefix(issued.QRCode, "data:image/png;base64,"))

	rec = doJSON(t, h, http.MethodGet, "/api/verify/"+issued.Certificate.Hash, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	verified := decode[manifest.VerificationResult](t, rec)
	assert.True(t, verified.Valid)
	assert.Equal(t, issued.Certificate.ID, verified.ManifestID)
	assert.Equal(t, "Ana", verified.UserName)
	assert.Equal(t, "Madrid", verified.TripTitle)
	assert.Len(t, verified.Items, 2)

	// trip now reports as verified
	rec = doJSON(t, h, http.MethodGet, "/api/trips?userId="+user.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	trips := decode[[]tripResponse](t, rec)
	require.Len(t, trips, 1)
	assert.True(t, trips[0].Verified)
	assert.Equal(t, 2, trips[0].ItemCount)
}

func TestVerify_UnknownHash_SoftFail(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/api/verify/deadbeef", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	raw := decode[map[string]any](t, rec)
	assert.Equal(t, false, raw["valid"])
	_, hasManifest := raw["manifestId"]
	assert.False(t, hasManifest, "invalid result must not carry manifest fields")
}

func TestCertify_OwnershipEnforced(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/users", map[string]string{"email": "ana@example.com", "name": "Ana"})
	owner := decode[userResponse](t, rec)
	rec = doJSON(t, h, http.MethodPost, "/api/users", map[string]string{"email": "bob@example.com", "name": "Bob"})
	stranger := decode[userResponse](t, rec)

	rec = doJSON(t, h, http.MethodPost, "/api/trips", map[string]any{
		"userId": owner.ID, "title": "Madrid", "destination": "Madrid, Spain",
		"startDate": "2025-06-01", "endDate": "2025-06-10",
	})
	trip := decode[tripResponse](t, rec)

	rec = doJSON(t, h, http.MethodPost, "/api/trips/"+trip.ID+"/certificate", map[string]string{"userId": stranger.ID})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/trips/"+trip.ID+"/certificate", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCertify_TripNotFound(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := doJSON(t, h, http.MethodPost, "/api/trips/nope/certificate", map[string]string{"userId": "someone"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/users", map[string]string{"email": "ana@example.com", "name": "Ana"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/users", map[string]string{"email": "ana@example.com", "name": "Other"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[errorResponse](t, rec)
	assert.Equal(t, "Email already exists", resp.Error)
}

func TestItemUpdate_OwnershipChain(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/users", map[string]string{"email": "ana@example.com", "name": "Ana"})
	user := decode[userResponse](t, rec)
	rec = doJSON(t, h, http.MethodPost, "/api/trips", map[string]any{
		"userId": user.ID, "title": "Madrid", "destination": "Madrid, Spain",
		"startDate": "2025-06-01", "endDate": "2025-06-10",
	})
	trip := decode[tripResponse](t, rec)
	rec = doJSON(t, h, http.MethodPost, "/api/trips/"+trip.ID+"/items", map[string]any{
		"userId": user.ID, "name": "Camera", "category": "electronics",
	})
	item := decode[itemResponse](t, rec)

	rec = doJSON(t, h, http.MethodPatch, "/api/items/"+item.ID, map[string]any{
		"userId": user.ID, "name": "Camera (DSLR)", "isSealed": true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[itemResponse](t, rec)
	assert.Equal(t, "Camera (DSLR)", updated.Name)
	assert.True(t, updated.IsSealed)

	rec = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/items/%s?userId=%s", item.ID, user.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/items/%s?userId=%s", item.ID, user.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCertify_RecertificationKeepsPriorCertificates(t *testing.T) {
	h, stores := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/users", map[string]string{"email": "ana@example.com", "name": "Ana"})
	user := decode[userResponse](t, rec)
	rec = doJSON(t, h, http.MethodPost, "/api/trips", map[string]any{
		"userId": user.ID, "title": "Madrid", "destination": "Madrid, Spain",
		"startDate": "2025-06-01", "endDate": "2025-06-10",
	})
	trip := decode[tripResponse](t, rec)

	rec = doJSON(t, h, http.MethodPost, "/api/trips/"+trip.ID+"/certificate", map[string]string{"userId": user.ID})
	first := decode[issueCertificateResponse](t, rec)
	rec = doJSON(t, h, http.MethodPost, "/api/trips/"+trip.ID+"/certificate", map[string]string{"userId": user.ID})
	second := decode[issueCertificateResponse](t, rec)

	assert.NotEqual(t, first.Certificate.ID, second.Certificate.ID)

	certs, err := stores.Certificates.ListByTrip(context.Background(), trip.ID)
	require.NoError(t, err)
	assert.Len(t, certs, 2)

	// the first certificate still verifies
	rec = doJSON(t, h, http.MethodGet, "/api/verify/"+first.Certificate.Hash, nil)
	verified := decode[manifest.VerificationResult](t, rec)
	assert.True(t, verified.Valid)
}
