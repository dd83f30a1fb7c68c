/*
 * Copyright (c) 2025 TravelSeal Project. All Rights reserved.
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package model

// User owns trips and is named on issued certificates.
type User struct {
	ID    string
	Email string
	Name  string
}
