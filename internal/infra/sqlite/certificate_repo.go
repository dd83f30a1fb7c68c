/*
 * Copyright (c) 2025 TravelSeal Project. All Rights reserved.
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/travelseal/travelseal/internal/domain/model"
)

// CertificateRepository handles manifest certificate persistence.
// Certificates are insert-only; there is no update or delete path.
type CertificateRepository struct {
	db *sql.DB
}

func NewCertificateRepository(db *sql.DB) *CertificateRepository {
	return &CertificateRepository{db: db}
}

// Create inserts a new certificate and returns the assigned id.
func (r *CertificateRepository) Create(ctx context.Context, c *model.Certificate) (string, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	const q = `
		INSERT INTO manifest_certificates
			(id, trip_id, hash, manifest_data, item_count, total_value, verified, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, q,
		c.ID, c.TripID, c.Hash, c.ManifestData, c.ItemCount, c.TotalValue, c.Verified, c.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("certificate insert: %w", err)
	}
	return c.ID, nil
}

func (r *CertificateRepository) FindByID(ctx context.Context, id string) (*model.Certificate, error) {
	const q = selectCertificate + ` WHERE id = ?`
	row := r.db.QueryRowContext(ctx, q, id)
	c, err := scanCertificate(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("certificate scan: %w", err)
	}
	return c, nil
}

// FindByHash is the verification entry point: exact, case-sensitive
// match on the hash string. When two certificates share a hash (same
// content certified at the same instant) the most recent one is
// returned; they attest identical content, so either verifies alike.
func (r *CertificateRepository) FindByHash(ctx context.Context, hash string) (*model.Certificate, error) {
	const q = selectCertificate + ` WHERE hash = ? ORDER BY created_at DESC, id LIMIT 1`
	row := r.db.QueryRowContext(ctx, q, hash)
	c, err := scanCertificate(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("certificate scan: %w", err)
	}
	return c, nil
}

// ListByTrip returns the trip's certificates, most recent first. A
// non-empty result is what marks a trip as verified.
func (r *CertificateRepository) ListByTrip(ctx context.Context, tripID string) ([]*model.Certificate, error) {
	const q = selectCertificate + ` WHERE trip_id = ? ORDER BY created_at DESC, id`
	rows, err := r.db.QueryContext(ctx, q, tripID)
	if err != nil {
		return nil, fmt.Errorf("certificate list: %w", err)
	}
	defer rows.Close()

	var certs []*model.Certificate
	for rows.Next() {
		c, err := scanCertificate(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("certificate scan: %w", err)
		}
		certs = append(certs, c)
	}
	return certs, rows.Err()
}

const selectCertificate = `
	SELECT id, trip_id, hash, manifest_data, item_count, total_value, verified, created_at
	FROM manifest_certificates`

func scanCertificate(scan func(dest ...any) error) (*model.Certificate, error) {
	var c model.Certificate
	err := scan(&c.ID, &c.TripID, &c.Hash, &c.ManifestData, &c.ItemCount, &c.TotalValue, &c.Verified, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
