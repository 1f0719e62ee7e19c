// SPDX-License-Identifier: MIT-0
// SPDX-FileCopyrightText: 2026 crcflip contributors

// Package flipper solves the inverse CRC problem: given a message, a set
// of bit positions in it that may be flipped, and a target CRC, it finds a
// subset of those positions whose flip makes the message's CRC equal the
// target. It reduces the search to a linear system over GF(2) (one
// equation per output bit) and solves it with Gaussian elimination and
// back substitution.
package flipper

import "github.com/pkg/errors"

var (
	// ErrInvalidPosition is returned when a requested flip position is
	// negative or falls outside the message (>= 8*lengthInBytes).
	ErrInvalidPosition = errors.New("flipper: invalid position")

	// ErrWidthMismatch is returned when the target CRC's width doesn't
	// match the engine's width.
	ErrWidthMismatch = errors.New("flipper: width mismatch")

	// errInconsistent is an internal marker for "no solution" rows
	// encountered during back substitution; Flip* methods translate it
	// into a nil, nil result rather than propagating it as an error, per
	// the package's no-solution convention (see Flipper.FlipWithValue).
	errInconsistent = errors.New("flipper: inconsistent linear system")

	// ErrRangeError is raised by BitArray/BitMatrix on an out-of-bounds
	// index.
	ErrRangeError = errors.New("flipper: index out of range")
)
