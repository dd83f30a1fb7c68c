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

// ManifestItemRepository handles manifest item persistence.
type ManifestItemRepository struct {
	db *sql.DB
}

func NewManifestItemRepository(db *sql.DB) *ManifestItemRepository {
	return &ManifestItemRepository{db: db}
}

// Create inserts a new manifest item and returns the assigned id.
func (r *ManifestItemRepository) Create(ctx context.Context, it *model.ManifestItem) (string, error) {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	if it.CreatedAt.IsZero() {
		it.CreatedAt = time.Now().UTC()
	}
	if it.Quantity == 0 {
		it.Quantity = 1
	}
	const q = `
		INSERT INTO manifest_items
			(id, trip_id, name, category, quantity, estimated_value, serial_number,
			 luggage_brand, luggage_size, is_sealed, is_locked, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, q,
		it.ID, it.TripID, it.Name, it.Category, it.Quantity,
		nullFloat(it.EstimatedValue), nullString(it.SerialNumber),
		nullString(it.LuggageBrand), nullString(it.LuggageSize),
		it.IsSealed, it.IsLocked, it.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("manifest item insert: %w", err)
	}
	return it.ID, nil
}

func (r *ManifestItemRepository) FindByID(ctx context.Context, id string) (*model.ManifestItem, error) {
	const q = selectItem + ` WHERE id = ?`
	row := r.db.QueryRowContext(ctx, q, id)
	it, err := scanItem(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("manifest item scan: %w", err)
	}
	return it, nil
}

// ListByTrip returns the trip's items newest-first. The id tiebreak
// keeps the order, and therefore the manifest hash, deterministic for
// items that share a created_at timestamp.
func (r *ManifestItemRepository) ListByTrip(ctx context.Context, tripID string) ([]*model.ManifestItem, error) {
	const q = selectItem + ` WHERE trip_id = ? ORDER BY created_at DESC, id`
	rows, err := r.db.QueryContext(ctx, q, tripID)
	if err != nil {
		return nil, fmt.Errorf("manifest item list: %w", err)
	}
	defer rows.Close()

	var items []*model.ManifestItem
	for rows.Next() {
		it, err := scanItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("manifest item scan: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Update rewrites every mutable column of an existing item.
func (r *ManifestItemRepository) Update(ctx context.Context, it *model.ManifestItem) error {
	const q = `
		UPDATE manifest_items
		SET name = ?, category = ?, quantity = ?, estimated_value = ?, serial_number = ?,
		    luggage_brand = ?, luggage_size = ?, is_sealed = ?, is_locked = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, q,
		it.Name, it.Category, it.Quantity,
		nullFloat(it.EstimatedValue), nullString(it.SerialNumber),
		nullString(it.LuggageBrand), nullString(it.LuggageSize),
		it.IsSealed, it.IsLocked, it.ID)
	if err != nil {
		return fmt.Errorf("manifest item update: %w", err)
	}
	return nil
}

// Delete removes an item, reporting whether a row existed.
func (r *ManifestItemRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM manifest_items WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("manifest item delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

const selectItem = `
	SELECT id, trip_id, name, category, quantity, estimated_value, serial_number,
	       luggage_brand, luggage_size, is_sealed, is_locked, created_at
	FROM manifest_items`

func scanItem(scan func(dest ...any) error) (*model.ManifestItem, error) {
	var (
		it     model.ManifestItem
		value  sql.NullFloat64
		serial sql.NullString
		brand  sql.NullString
		size   sql.NullString
	)
	err := scan(&it.ID, &it.TripID, &it.Name, &it.Category, &it.Quantity,
		&value, &serial, &brand, &size, &it.IsSealed, &it.IsLocked, &it.CreatedAt)
	if err != nil {
		return nil, err
	}
	if value.Valid {
		it.EstimatedValue = &value.Float64
	}
	if serial.Valid {
		it.SerialNumber = &serial.String
	}
	if brand.Valid {
		it.LuggageBrand = &brand.String
	}
	if size.Valid {
		it.LuggageSize = &size.String
	}
	return &it, nil
}
