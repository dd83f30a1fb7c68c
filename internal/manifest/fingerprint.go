/*
 * Copyright (c) 2025 TravelSeal Project. All Rights reserved.
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// CanonicalBytes serializes the snapshot into its canonical byte
// sequence. encoding/json emits struct fields in declaration order
// with no insignificant whitespace, so identical snapshot content
// always yields identical bytes. These bytes are what gets hashed and
// what the certificate retains verbatim for replay.
func (s *Snapshot) CanonicalBytes() ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("canonical encode: %w", err)
	}
	return b, nil
}

// Fingerprint computes the content hash of a canonical snapshot
// encoding: sha256 over the bytes, lowercase hex. Pure function of its
// input.
func Fingerprint(canonical []byte) string {
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])
}
