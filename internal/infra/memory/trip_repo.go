/*
 * Copyright (c) 2025 TravelSeal Project. All Rights reserved.
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/travelseal/travelseal/internal/domain/model"
)

// TripRepository handles in-memory trip persistence.
type TripRepository struct {
	mu    sync.RWMutex
	trips map[string]*model.Trip
}

func NewTripRepository() *TripRepository {
	return &TripRepository{trips: make(map[string]*model.Trip)}
}

func (r *TripRepository) Create(_ context.Context, t *model.Trip) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	cp := *t
	r.trips[cp.ID] = &cp
	return cp.ID, nil
}

func (r *TripRepository) FindByID(_ context.Context, id string) (*model.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.trips[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *TripRepository) ListByUser(_ context.Context, userID string) ([]*model.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var trips []*model.Trip
	for _, t := range r.trips {
		if t.UserID == userID {
			cp := *t
			trips = append(trips, &cp)
		}
	}
	sortNewestFirst(trips, func(t *model.Trip) (time.Time, string) { return t.CreatedAt, t.ID })
	return trips, nil
}

func (r *TripRepository) Update(_ context.Context, t *model.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.trips[t.ID]; !ok {
		return nil
	}
	cp := *t
	r.trips[cp.ID] = &cp
	return nil
}

func (r *TripRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.trips[id]; !ok {
		return false, nil
	}
	delete(r.trips, id)
	return true, nil
}

// sortNewestFirst orders records by creation time descending, breaking
// timestamp ties by id so list order is deterministic across calls.
func sortNewestFirst[T any](s []T, key func(T) (time.Time, string)) {
	sort.SliceStable(s, func(i, j int) bool {
		ti, idi := key(s[i])
		tj, idj := key(s[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return idi < idj
	})
}
