/*
 * Copyright (c) 2025 TravelSeal Project. All Rights reserved.
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"time"

	"github.com/travelseal/travelseal/internal/domain/model"
)

// Request payloads carry the acting user id explicitly; ownership is
// checked at this boundary before the certification core is invoked.

type createUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name}
}

type createTripRequest struct {
	UserID      string  `json:"userId"`
	Title       string  `json:"title"`
	Destination string  `json:"destination"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Notes       *string `json:"notes"`
}

type updateTripRequest struct {
	UserID      string  `json:"userId"`
	Title       *string `json:"title"`
	Destination *string `json:"destination"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Notes       *string `json:"notes"`
}

type tripResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId"`
	Title       string  `json:"title"`
	Destination string  `json:"destination"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Notes       *string `json:"notes"`
	CreatedAt   string  `json:"createdAt"`
	ItemCount   int     `json:"itemCount"`
	Verified    bool    `json:"verified"`
}

func toTripResponse(t *model.Trip, itemCount int, verified bool) tripResponse {
	return tripResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Destination: t.Destination,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		Notes:       t.Notes,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
		ItemCount:   itemCount,
		Verified:    verified,
	}
}

type createItemRequest struct {
	UserID         string   `json:"userId"`
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

type updateItemRequest struct {
	UserID         string   `json:"userId"`
	Name           *string  `json:"name"`
	Category       *string  `json:"category"`
	Quantity       *int     `json:"quantity"`
	EstimatedValue *float64 `json:"estimatedValue"`
	SerialNumber   *string  `json:"serialNumber"`
	LuggageBrand   *string  `json:"luggageBrand"`
	LuggageSize    *string  `json:"luggageSize"`
	IsSealed       *bool    `json:"isSealed"`
	IsLocked       *bool    `json:"isLocked"`
}

type itemResponse struct {
	ID             string   `json:"id"`
	TripID         string   `json:"tripId"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Quantity       int      `json:"quantity"`
	EstimatedValue *float64 `json:"estimatedValue"`
	SerialNumber   *string  `json:"serialNumber"`
	LuggageBrand   *string  `json:"luggageBrand"`
	LuggageSize    *string  `json:"luggageSize"`
	IsSealed       bool     `json:"isSealed"`
	IsLocked       bool     `json:"isLocked"`
	CreatedAt      string   `json:"createdAt"`
}

func toItemResponse(it *model.ManifestItem) itemResponse {
	return itemResponse{
		ID:             it.ID,
		TripID:         it.TripID,
		Name:           it.Name,
		Category:       it.Category,
		Quantity:       it.Quantity,
		EstimatedValue: it.EstimatedValue,
		SerialNumber:   it.SerialNumber,
		LuggageBrand:   it.LuggageBrand,
		LuggageSize:    it.LuggageSize,
		IsSealed:       it.IsSealed,
		IsLocked:       it.IsLocked,
		CreatedAt:      it.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type certificateResponse struct {
	ID         string  `json:"id"`
	TripID     string  `json:"tripId"`
	Hash       string  `json:"hash"`
	ItemCount  int     `json:"itemCount"`
	TotalValue float64 `json:"totalValue"`
	Verified   bool    `json:"verified"`
	CreatedAt  string  `json:"createdAt"`
}

func toCertificateResponse(c *model.Certificate) certificateResponse {
	return certificateResponse{
		ID:         c.ID,
		TripID:     c.TripID,
		Hash:       c.Hash,
		ItemCount:  c.ItemCount,
		TotalValue: c.TotalValue,
		Verified:   c.Verified,
		CreatedAt:  c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// issueCertificateResponse is the certify endpoint's envelope. The
// artifact fields are best-effort: a rendering failure leaves them
// empty without invalidating the persisted certificate.
type issueCertificateResponse struct {
	Certificate certificateResponse `json:"certificate"`
	PDFURL      string              `json:"pdfUrl,omitempty"`
	QRCode      string              `json:"qrCode,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}
