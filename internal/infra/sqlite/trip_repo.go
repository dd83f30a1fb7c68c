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

// TripRepository handles trip persistence.
type TripRepository struct {
	db *sql.DB
}

func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{db: db}
}

// Create inserts a new trip and returns the assigned id.
func (r *TripRepository) Create(ctx context.Context, t *model.Trip) (string, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	const q = `
		INSERT INTO trips (id, user_id, title, destination, start_date, end_date, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, q,
		t.ID, t.UserID, t.Title, t.Destination, t.StartDate, t.EndDate, nullString(t.Notes), t.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("trip insert: %w", err)
	}
	return t.ID, nil
}

func (r *TripRepository) FindByID(ctx context.Context, id string) (*model.Trip, error) {
	const q = `
		SELECT id, user_id, title, destination, start_date, end_date, notes, created_at
		FROM trips
		WHERE id = ?
	`
	row := r.db.QueryRowContext(ctx, q, id)
	t, err := scanTrip(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("trip scan: %w", err)
	}
	return t, nil
}

// ListByUser returns the user's trips, most recently created first.
func (r *TripRepository) ListByUser(ctx context.Context, userID string) ([]*model.Trip, error) {
	const q = `
		SELECT id, user_id, title, destination, start_date, end_date, notes, created_at
		FROM trips
		WHERE user_id = ?
		ORDER BY created_at DESC, id
	`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("trip list: %w", err)
	}
	defer rows.Close()

	var trips []*model.Trip
	for rows.Next() {
		t, err := scanTrip(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("trip scan: %w", err)
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

// Update rewrites every mutable column of an existing trip.
func (r *TripRepository) Update(ctx context.Context, t *model.Trip) error {
	const q = `
		UPDATE trips
		SET title = ?, destination = ?, start_date = ?, end_date = ?, notes = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, q,
		t.Title, t.Destination, t.StartDate, t.EndDate, nullString(t.Notes), t.ID)
	if err != nil {
		return fmt.Errorf("trip update: %w", err)
	}
	return nil
}

// Delete removes a trip, reporting whether a row existed.
func (r *TripRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("trip delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanTrip(scan func(dest ...any) error) (*model.Trip, error) {
	var (
		t     model.Trip
		notes sql.NullString
	)
	if err := scan(&t.ID, &t.UserID, &t.Title, &t.Destination, &t.StartDate, &t.EndDate, &notes, &t.CreatedAt); err != nil {
		return nil, err
	}
	if notes.Valid {
		t.Notes = &notes.String
	}
	return &t, nil
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
