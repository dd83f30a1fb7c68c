/*
 * Copyright (c) 2025 TravelSeal Project. All Rights reserved.
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package service

import (
	"context"

	"github.com/travelseal/travelseal/internal/domain/model"
)

// Lookup methods return (nil, nil) when no record matches; a non-nil
// error always means the backend itself failed.

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) (string, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// TripRepository defines the interface for trip persistence.
type TripRepository interface {
	Create(ctx context.Context, t *model.Trip) (string, error)
	FindByID(ctx context.Context, id string) (*model.Trip, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Trip, error)
	Update(ctx context.Context, t *model.Trip) error
	Delete(ctx context.Context, id string) (bool, error)
}

// ManifestItemRepository defines the interface for manifest item
// persistence. ListByTrip returns items in the store's native order,
// created_at descending with id as tiebreak; snapshot hashing depends
// on that order being stable for an unchanged trip.
type ManifestItemRepository interface {
	Create(ctx context.Context, it *model.ManifestItem) (string, error)
	FindByID(ctx context.Context, id string) (*model.ManifestItem, error)
	ListByTrip(ctx context.Context, tripID string) ([]*model.ManifestItem, error)
	Update(ctx context.Context, it *model.ManifestItem) error
	Delete(ctx context.Context, id string) (bool, error)
}

// CertificateRepository defines the interface for certificate
// persistence. Certificates are immutable once created: the interface
// deliberately exposes no update or delete, and implementations must
// never mutate a stored record in place.
type CertificateRepository interface {
	Create(ctx context.Context, c *model.Certificate) (string, error)
	FindByID(ctx context.Context, id string) (*model.Certificate, error)
	FindByHash(ctx context.Context, hash string) (*model.Certificate, error)
	ListByTrip(ctx context.Context, tripID string) ([]*model.Certificate, error)
}
