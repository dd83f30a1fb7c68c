/*
 * Copyright (c) 2025 TravelSeal Project. All Rights reserved.
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

// Package artifact renders the printable and scannable faces of a
// certificate: the PDF document and the QR code carrying the
// verification URL. It consumes finished certificate records and has
// no influence on what was hashed or stored.
package artifact

import (
	"encoding/base64"
	"fmt"
	"net/url"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/travelseal/travelseal/internal/domain/model"
	"github.com/travelseal/travelseal/internal/manifest"
)

const qrSizePixels = 256

// Renderer builds verification artifacts for issued certificates.
type Renderer struct {
	baseURL string
}

// NewRenderer returns a Renderer that points verification links at
// baseURL, e.g. "https://travelseal.example.com".
func NewRenderer(baseURL string) *Renderer {
	return &Renderer{baseURL: baseURL}
}

// VerificationURL returns the link a third party follows (or scans) to
// verify the given hash.
func (r *Renderer) VerificationURL(hash string) string {
	return fmt.Sprintf("%s/verify?hash=%s", r.baseURL, url.QueryEscape(hash))
}

// QRCode renders the verification URL for a hash as a PNG.
func (r *Renderer) QRCode(hash string) ([]byte, error) {
	png, err := qrcode.Encode(r.VerificationURL(hash), qrcode.Medium, qrSizePixels)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

// QRCodeDataURL renders the QR PNG as a data URL for embedding in API
// responses.
func (r *Renderer) QRCodeDataURL(hash string) (string, error) {
	png, err := r.QRCode(hash)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// PDFDataURL renders the certificate PDF as a data URL.
func (r *Renderer) PDFDataURL(cert *model.Certificate, snap *manifest.Snapshot, trip *model.Trip, qrPNG []byte) (string, error) {
	pdf, err := r.PDF(cert, snap, trip, qrPNG)
	if err != nil {
		return "", err
	}
	return "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(pdf), nil
}
