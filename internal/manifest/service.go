/*
 * Copyright (c) 2025 TravelSeal Project. All Rights reserved.
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

// Package manifest implements manifest certification: building the
// canonical snapshot of a trip's declared contents, fingerprinting it,
// persisting the certificate, and verifying a fingerprint back into
// the attested contents.
package manifest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/travelseal/travelseal/internal/domain"
	"github.com/travelseal/travelseal/internal/domain/model"
	"github.com/travelseal/travelseal/internal/domain/service"
)

// Service is the certification core. It reads trips, items and users
// through injected repositories and owns the certificate records it
// creates.
type Service struct {
	users  service.UserRepository
	trips  service.TripRepository
	items  service.ManifestItemRepository
	certs  service.CertificateRepository
	logger *log.Logger

	// Now supplies the issuance instant. Overridable so tests can pin
	// the clock; the timestamp participates in the content hash.
	Now func() time.Time
}

func NewService(
	users service.UserRepository,
	trips service.TripRepository,
	items service.ManifestItemRepository,
	certs service.CertificateRepository,
	logger *log.Logger,
) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		users:  users,
		trips:  trips,
		items:  items,
		certs:  certs,
		logger: logger,
		Now:    time.Now,
	}
}

// BuildSnapshot assembles the canonical snapshot for a trip as it
// stands right now. The issuance timestamp is generated here, never
// accepted from the caller.
func (s *Service) BuildSnapshot(ctx context.Context, tripID string) (*Snapshot, error) {
	if tripID == "" {
		return nil, ErrTripIDRequired
	}

	trip, err := s.trips.FindByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("load trip: %w", err)
	}
	if trip == nil {
		return nil, fmt.Errorf("trip %s: %w", tripID, domain.ErrNotFound)
	}

	items, err := s.items.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}

	owner, err := s.users.FindByID(ctx, trip.UserID)
	if err != nil {
		return nil, fmt.Errorf("load owner: %w", err)
	}
	if owner == nil {
		s.logger.Printf("owner %s missing for trip %s, certifying as %q", trip.UserID, tripID, unknownOwner)
	}

	issuedAt := s.Now().UTC().Format(timestampLayout)
	return newSnapshot(trip, owner, items, issuedAt), nil
}

// IssueResult carries the persisted certificate together with the
// snapshot it was computed from, for callers that render artifacts.
type IssueResult struct {
	Certificate *model.Certificate
	Snapshot    *Snapshot
}

// Issue certifies a trip's manifest: snapshot, fingerprint, persist.
// The certificate is the commit point; anything rendered from it
// afterwards (PDF, QR) can fail without invalidating the record.
func (s *Service) Issue(ctx context.Context, tripID string) (*IssueResult, error) {
	snap, err := s.BuildSnapshot(ctx, tripID)
	if err != nil {
		return nil, err
	}

	canonical, err := snap.CanonicalBytes()
	if err != nil {
		return nil, err
	}
	hash := Fingerprint(canonical)

	itemCount, totalValue := snap.Aggregates()
	cert := &model.Certificate{
		TripID:       tripID,
		Hash:         hash,
		ManifestData: string(canonical),
		ItemCount:    itemCount,
		TotalValue:   totalValue,
		Verified:     true,
		CreatedAt:    s.Now().UTC(),
	}

	if _, err := s.certs.Create(ctx, cert); err != nil {
		return nil, fmt.Errorf("store certificate: %w", err)
	}

	s.logger.Printf("issued certificate %s for trip %s (items=%d, hash=%s)", cert.ID, tripID, itemCount, hash)
	return &IssueResult{Certificate: cert, Snapshot: snap}, nil
}

// CertificatesForTrip lists a trip's certificates newest-first. A trip
// counts as verified when the list is non-empty.
func (s *Service) CertificatesForTrip(ctx context.Context, tripID string) ([]*model.Certificate, error) {
	return s.certs.ListByTrip(ctx, tripID)
}
