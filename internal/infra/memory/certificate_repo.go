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

// CertificateRepository handles in-memory certificate persistence.
// Insert-only: stored records are copied on the way in and out and are
// never mutated, so readers need no per-record locking.
type CertificateRepository struct {
	mu    sync.RWMutex
	certs map[string]*model.Certificate
}

func NewCertificateRepository() *CertificateRepository {
	return &CertificateRepository{certs: make(map[string]*model.Certificate)}
}

func (r *CertificateRepository) Create(_ context.Context, c *model.Certificate) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	cp := *c
	r.certs[cp.ID] = &cp
	return cp.ID, nil
}

func (r *CertificateRepository) FindByID(_ context.Context, id string) (*model.Certificate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.certs[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

// FindByHash matches the hash exactly and case-sensitively. Among
// same-hash certificates the most recent wins, as in the sqlite
// backend.
func (r *CertificateRepository) FindByHash(_ context.Context, hash string) (*model.Certificate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var best *model.Certificate
	for _, c := range r.certs {
		if c.Hash != hash {
			continue
		}
		if best == nil || c.CreatedAt.After(best.CreatedAt) || (c.CreatedAt.Equal(best.CreatedAt) && c.ID < best.ID) {
			best = c
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (r *CertificateRepository) ListByTrip(_ context.Context, tripID string) ([]*model.Certificate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var certs []*model.Certificate
	for _, c := range r.certs {
		if c.TripID == tripID {
			cp := *c
			certs = append(certs, &cp)
		}
	}
	sortNewestFirst(certs, func(c *model.Certificate) (time.Time, string) { return c.CreatedAt, c.ID })
	return certs, nil
}
