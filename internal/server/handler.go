/*
 * Copyright (c) 2025 TravelSeal Project. All Rights reserved.
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/travelseal/travelseal/internal/artifact"
	"github.com/travelseal/travelseal/internal/domain"
	"github.com/travelseal/travelseal/internal/domain/model"
	"github.com/travelseal/travelseal/internal/manifest"
)

const (
	maxRequestBodyBytes = 1 << 20 // 1 MiB covers any manifest payload.
)

type handler struct {
	mux      *http.ServeMux
	core     *manifest.Service
	renderer *artifact.Renderer
	stores   Stores
	logger   *log.Logger
}

func newHandler(core *manifest.Service, renderer *artifact.Renderer, stores Stores, logger *log.Logger) (*handler, error) {
	h := &handler{
		core:     core,
		renderer: renderer,
		stores:   stores,
		logger:   logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users", h.createUser)
	mux.HandleFunc("GET /api/users/{email}", h.getUserByEmail)
	mux.HandleFunc("GET /api/trips", h.listTrips)
	mux.HandleFunc("POST /api/trips", h.createTrip)
	mux.HandleFunc("GET /api/trips/{id}", h.tripDetail)
	mux.HandleFunc("PATCH /api/trips/{id}", h.updateTrip)
	mux.HandleFunc("DELETE /api/trips/{id}", h.deleteTrip)
	mux.HandleFunc("GET /api/trips/{id}/items", h.listItems)
	mux.HandleFunc("POST /api/trips/{id}/items", h.createItem)
	mux.HandleFunc("PATCH /api/items/{id}", h.updateItem)
	mux.HandleFunc("DELETE /api/items/{id}", h.deleteItem)
	mux.HandleFunc("POST /api/trips/{id}/certificate", h.issueCertificate)
	mux.HandleFunc("GET /api/verify/{hash}", h.verify)
	h.mux = mux

	return h, nil
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	h.mux.ServeHTTP(w, r)
}

// --- users ---

func (h *handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Name == "" {
		h.writeError(w, http.StatusBadRequest, "email and name are required")
		return
	}

	u := &model.User{Email: req.Email, Name: req.Name}
	if _, err := h.stores.Users.Create(r.Context(), u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			h.writeError(w, http.StatusBadRequest, "Email already exists")
			return
		}
		h.internalError(w, "create user", err)
		return
	}
	h.writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (h *handler) getUserByEmail(w http.ResponseWriter, r *http.Request) {
	u, err := h.stores.Users.FindByEmail(r.Context(), r.PathValue("email"))
	if err != nil {
		h.internalError(w, "find user", err)
		return
	}
	if u == nil {
		h.writeError(w, http.StatusNotFound, "User not found")
		return
	}
	h.writeJSON(w, http.StatusOK, toUserResponse(u))
}

// --- trips ---

func (h *handler) listTrips(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		h.writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	trips, err := h.stores.Trips.ListByUser(r.Context(), userID)
	if err != nil {
		h.internalError(w, "list trips", err)
		return
	}

	resp := make([]tripResponse, 0, len(trips))
	for _, t := range trips {
		tr, err := h.tripWithAggregates(r, t)
		if err != nil {
			h.internalError(w, "trip aggregates", err)
			return
		}
		resp = append(resp, tr)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) tripDetail(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.requireOwnedTrip(w, r, r.PathValue("id"), r.URL.Query().Get("userId"))
	if !ok {
		return
	}
	tr, err := h.tripWithAggregates(r, trip)
	if err != nil {
		h.internalError(w, "trip aggregates", err)
		return
	}
	h.writeJSON(w, http.StatusOK, tr)
}

func (h *handler) createTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" || req.Title == "" || req.Destination == "" || req.StartDate == "" || req.EndDate == "" {
		h.writeError(w, http.StatusBadRequest, "userId, title, destination, startDate and endDate are required")
		return
	}

	t := &model.Trip{
		UserID:      req.UserID,
		Title:       req.Title,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Notes:       req.Notes,
	}
	if _, err := h.stores.Trips.Create(r.Context(), t); err != nil {
		h.internalError(w, "create trip", err)
		return
	}
	h.writeJSON(w, http.StatusOK, toTripResponse(t, 0, false))
}

func (h *handler) updateTrip(w http.ResponseWriter, r *http.Request) {
	var req updateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	trip, ok := h.requireOwnedTrip(w, r, r.PathValue("id"), h.actingUser(r, req.UserID))
	if !ok {
		return
	}

	if req.Title != nil {
		trip.Title = *req.Title
	}
	if req.Destination != nil {
		trip.Destination = *req.Destination
	}
	if req.StartDate != nil {
		trip.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		trip.EndDate = *req.EndDate
	}
	if req.Notes != nil {
		trip.Notes = req.Notes
	}
	if err := h.stores.Trips.Update(r.Context(), trip); err != nil {
		h.internalError(w, "update trip", err)
		return
	}
	tr, err := h.tripWithAggregates(r, trip)
	if err != nil {
		h.internalError(w, "trip aggregates", err)
		return
	}
	h.writeJSON(w, http.StatusOK, tr)
}

func (h *handler) deleteTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.requireOwnedTrip(w, r, r.PathValue("id"), r.URL.Query().Get("userId"))
	if !ok {
		return
	}
	deleted, err := h.stores.Trips.Delete(r.Context(), trip.ID)
	if err != nil {
		h.internalError(w, "delete trip", err)
		return
	}
	if !deleted {
		h.writeError(w, http.StatusNotFound, "Trip not found")
		return
	}
	h.writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// --- manifest items ---

func (h *handler) listItems(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.requireOwnedTrip(w, r, r.PathValue("id"), r.URL.Query().Get("userId"))
	if !ok {
		return
	}
	items, err := h.stores.Items.ListByTrip(r.Context(), trip.ID)
	if err != nil {
		h.internalError(w, "list items", err)
		return
	}
	resp := make([]itemResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, toItemResponse(it))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) createItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	trip, ok := h.requireOwnedTrip(w, r, r.PathValue("id"), h.actingUser(r, req.UserID))
	if !ok {
		return
	}
	if req.Name == "" || req.Category == "" {
		h.writeError(w, http.StatusBadRequest, "name and category are required")
		return
	}

	it := &model.ManifestItem{
		TripID:         trip.ID,
		Name:           req.Name,
		Category:       req.Category,
		Quantity:       req.Quantity,
		EstimatedValue: req.EstimatedValue,
		SerialNumber:   req.SerialNumber,
		LuggageBrand:   req.LuggageBrand,
		LuggageSize:    req.LuggageSize,
		IsSealed:       req.IsSealed,
		IsLocked:       req.IsLocked,
	}
	if _, err := h.stores.Items.Create(r.Context(), it); err != nil {
		h.internalError(w, "create item", err)
		return
	}
	h.writeJSON(w, http.StatusOK, toItemResponse(it))
}

func (h *handler) updateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	it, ok := h.requireOwnedItem(w, r, r.PathValue("id"), h.actingUser(r, req.UserID))
	if !ok {
		return
	}

	if req.Name != nil {
		it.Name = *req.Name
	}
	if req.Category != nil {
		it.Category = *req.Category
	}
	if req.Quantity != nil {
		it.Quantity = *req.Quantity
	}
	if req.EstimatedValue != nil {
		it.EstimatedValue = req.EstimatedValue
	}
	if req.SerialNumber != nil {
		it.SerialNumber = req.SerialNumber
	}
	if req.LuggageBrand != nil {
		it.LuggageBrand = req.LuggageBrand
	}
	if req.LuggageSize != nil {
		it.LuggageSize = req.LuggageSize
	}
	if req.IsSealed != nil {
		it.IsSealed = *req.IsSealed
	}
	if req.IsLocked != nil {
		it.IsLocked = *req.IsLocked
	}
	if err := h.stores.Items.Update(r.Context(), it); err != nil {
		h.internalError(w, "update item", err)
		return
	}
	h.writeJSON(w, http.StatusOK, toItemResponse(it))
}

func (h *handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	it, ok := h.requireOwnedItem(w, r, r.PathValue("id"), r.URL.Query().Get("userId"))
	if !ok {
		return
	}
	deleted, err := h.stores.Items.Delete(r.Context(), it.ID)
	if err != nil {
		h.internalError(w, "delete item", err)
		return
	}
	if !deleted {
		h.writeError(w, http.StatusNotFound, "Item not found")
		return
	}
	h.writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// --- certification ---

func (h *handler) issueCertificate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
	}
	// an empty body is fine; ownership may come from the query string
	_ = json.NewDecoder(r.Body).Decode(&req)

	trip, ok := h.requireOwnedTrip(w, r, r.PathValue("id"), h.actingUser(r, req.UserID))
	if !ok {
		return
	}

	res, err := h.core.Issue(r.Context(), trip.ID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrNotFound):
			h.writeError(w, http.StatusNotFound, "Trip not found")
		default:
			h.internalError(w, "issue certificate", err)
		}
		return
	}

	resp := issueCertificateResponse{Certificate: toCertificateResponse(res.Certificate)}

	// Artifact rendering happens after the commit point; failures are
	// logged and the certificate is returned without the artifact.
	hash := res.Certificate.Hash
	qrPNG, err := h.renderer.QRCode(hash)
	if err != nil {
		h.logger.Printf("qr render failed for certificate %s: %v", res.Certificate.ID, err)
	} else {
		resp.QRCode = "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrPNG)
	}

	pdfURL, err := h.renderer.PDFDataURL(res.Certificate, res.Snapshot, trip, qrPNG)
	if err != nil {
		h.logger.Printf("pdf render failed for certificate %s: %v", res.Certificate.ID, err)
	} else {
		resp.PDFURL = pdfURL
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) verify(w http.ResponseWriter, r *http.Request) {
	result, err := h.core.Verify(r.Context(), r.PathValue("hash"))
	if err != nil {
		h.internalError(w, "verify", err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// --- helpers ---

// actingUser resolves the acting user id from the decoded body field,
// falling back to the userId query parameter.
func (h *handler) actingUser(r *http.Request, bodyUserID string) string {
	if bodyUserID != "" {
		return bodyUserID
	}
	return r.URL.Query().Get("userId")
}

// requireOwnedTrip loads the trip and enforces ownership, writing the
// error response itself when the check fails.
func (h *handler) requireOwnedTrip(w http.ResponseWriter, r *http.Request, tripID, userID string) (*model.Trip, bool) {
	if userID == "" {
		h.writeError(w, http.StatusUnauthorized, "User ID required")
		return nil, false
	}
	trip, err := h.stores.Trips.FindByID(r.Context(), tripID)
	if err != nil {
		h.internalError(w, "find trip", err)
		return nil, false
	}
	if trip == nil {
		h.writeError(w, http.StatusNotFound, "Trip not found")
		return nil, false
	}
	if trip.UserID != userID {
		h.writeError(w, http.StatusForbidden, "Access denied")
		return nil, false
	}
	return trip, true
}

func (h *handler) requireOwnedItem(w http.ResponseWriter, r *http.Request, itemID, userID string) (*model.ManifestItem, bool) {
	if userID == "" {
		h.writeError(w, http.StatusUnauthorized, "User ID required")
		return nil, false
	}
	it, err := h.stores.Items.FindByID(r.Context(), itemID)
	if err != nil {
		h.internalError(w, "find item", err)
		return nil, false
	}
	if it == nil {
		h.writeError(w, http.StatusNotFound, "Item not found")
		return nil, false
	}
	trip, err := h.stores.Trips.FindByID(r.Context(), it.TripID)
	if err != nil {
		h.internalError(w, "find trip", err)
		return nil, false
	}
	if trip == nil || trip.UserID != userID {
		h.writeError(w, http.StatusForbidden, "Access denied")
		return nil, false
	}
	return it, true
}

func (h *handler) tripWithAggregates(r *http.Request, t *model.Trip) (tripResponse, error) {
	items, err := h.stores.Items.ListByTrip(r.Context(), t.ID)
	if err != nil {
		return tripResponse{}, err
	}
	certs, err := h.core.CertificatesForTrip(r.Context(), t.ID)
	if err != nil {
		return tripResponse{}, err
	}
	return toTripResponse(t, len(items), len(certs) > 0), nil
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, v any) {
	for k, val := range defaultHeaders {
		w.Header().Set(k, val)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Printf("failed writing response body: %v", err)
	}
}

func (h *handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *handler) internalError(w http.ResponseWriter, op string, err error) {
	h.logger.Printf("%s: %v", op, err)
	h.writeError(w, http.StatusInternalServerError, "internal error")
}

var defaultHeaders = map[string]string{
	"Cache-Control":          "no-store",
	"X-Content-Type-Options": "nosniff",
}
