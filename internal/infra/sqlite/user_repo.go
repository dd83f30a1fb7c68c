/*
 * Copyright (c) 2025 TravelSeal Project. All Rights reserved.
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/travelseal/travelseal/internal/domain"
	"github.com/travelseal/travelseal/internal/domain/model"
)

// UserRepository handles user persistence.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and returns the assigned id. A taken
// email yields domain.ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, u *model.User) (string, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO users (id, email, name)
		VALUES (?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, q, u.ID, u.Email, u.Name); err != nil {
		var serr sqlite3.Error
		if errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return "", fmt.Errorf("user email %s: %w", u.Email, domain.ErrDuplicate)
		}
		return "", fmt.Errorf("user insert: %w", err)
	}
	return u.ID, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `
		SELECT id, email, name
		FROM users
		WHERE id = ?
	`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
		SELECT id, email, name
		FROM users
		WHERE email = ?
	`
	return r.scanOne(r.db.QueryRowContext(ctx, q, email))
}

func (r *UserRepository) scanOne(row *sql.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user scan: %w", err)
	}
	return &u, nil
}
