/*
 * Copyright (c) 2025 TravelSeal Project. All Rights reserved.
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package manifest

import (
	"fmt"

	"github.com/travelseal/travelseal/internal/domain"
)

var (
	ErrTripIDRequired = fmt.Errorf("trip id is required: %w", domain.ErrValidation)
)
