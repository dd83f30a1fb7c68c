/*
 * Copyright (c) 2025 TravelSeal Project. All Rights reserved.
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/travelseal/travelseal/internal/domain/model"
)

// ManifestItemRepository handles in-memory manifest item persistence.
type ManifestItemRepository struct {
	mu    sync.RWMutex
	items map[string]*model.ManifestItem
}

func NewManifestItemRepository() *ManifestItemRepository {
	return &ManifestItemRepository{items: make(map[string]*model.ManifestItem)}
}

func (r *ManifestItemRepository) Create(_ context.Context, it *model.ManifestItem) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	if it.CreatedAt.IsZero() {
		it.CreatedAt = time.Now().UTC()
	}
	if it.Quantity == 0 {
		it.Quantity = 1
	}
	cp := *it
	r.items[cp.ID] = &cp
	return cp.ID, nil
}

func (r *ManifestItemRepository) FindByID(_ context.Context, id string) (*model.ManifestItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

// ListByTrip returns the trip's items newest-first with an id tiebreak,
// matching the sqlite backend so snapshots hash identically on either.
func (r *ManifestItemRepository) ListByTrip(_ context.Context, tripID string) ([]*model.ManifestItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var items []*model.ManifestItem
	for _, it := range r.items {
		if it.TripID == tripID {
			cp := *it
			items = append(items, &cp)
		}
	}
	sortNewestFirst(items, func(it *model.ManifestItem) (time.Time, string) { return it.CreatedAt, it.ID })
	return items, nil
}

func (r *ManifestItemRepository) Update(_ context.Context, it *model.ManifestItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[it.ID]; !ok {
		return nil
	}
	cp := *it
	r.items[cp.ID] = &cp
	return nil
}

func (r *ManifestItemRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}
