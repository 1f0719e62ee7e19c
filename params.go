// SPDX-License-Identifier: MIT-0
// SPDX-FileCopyrightText: 2026 crcflip contributors

package crc

import (
	"math/big"

	"github.com/pkg/errors"
)

// Params is the immutable parameter set of the generalized Rocksoft CRC
// model: width, polynomial, initial register value, final XOR mask, and
// whether input bytes / the final register are bit-reflected.
//
// Mixed reflection (InputReflected != OutputReflected) is rejected: the
// source algorithm this model is distilled from never exercises it, and
// the reflected/normal recurrences below don't generalize to it cleanly.
type Params struct {
	Width           int
	Poly            *big.Int
	Init            *big.Int
	XorOut          *big.Int
	InputReflected  bool
	OutputReflected bool
}

// NewParams validates and normalizes a Rocksoft parameter set. Poly, init
// and xorout are truncated (masked) to Width bits; a nil poly/init/xorout
// is treated as zero.
func NewParams(width int, poly, init, xorout *big.Int, inputReflected, outputReflected bool) (*Params, error) {
	if width < 8 || width%8 != 0 {
		return nil, errors.Wrapf(ErrUnsupportedModel, "width %d must be a multiple of 8 and >= 8", width)
	}
	if inputReflected != outputReflected {
		return nil, errors.Wrap(ErrUnsupportedModel, "input_reflected must equal output_reflected")
	}
	mask := maskOfWidth(width)
	return &Params{
		Width:           width,
		Poly:            maskBig(poly, mask),
		Init:            maskBig(init, mask),
		XorOut:          maskBig(xorout, mask),
		InputReflected:  inputReflected,
		OutputReflected: outputReflected,
	}, nil
}

// NewParamsUint64 is a convenience constructor for widths that fit in a
// uint64 (<= 64), which covers every catalogued CRC below CRC-65.
func NewParamsUint64(width int, poly, init, xorout uint64, reflected bool) (*Params, error) {
	return NewParams(width,
		new(big.Int).SetUint64(poly),
		new(big.Int).SetUint64(init),
		new(big.Int).SetUint64(xorout),
		reflected, reflected)
}

func maskBig(v *big.Int, mask *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).And(v, mask)
}

// fits64 reports whether this parameter set's width is small enough to be
// computed with native uint64 arithmetic.
func (p *Params) fits64() bool { return p.Width <= maxFixedWidth }

// cacheKey identifies the lookup table derived from this parameter set.
// Two Params with the same width, polynomial and reflection flag always
// produce bit-identical tables, regardless of init/xorout, so the cache
// is keyed on those three fields only.
type cacheKey struct {
	width     int
	polyText  string
	reflected bool
}

func (p *Params) cacheKey() cacheKey {
	return cacheKey{width: p.Width, polyText: p.Poly.Text(16), reflected: p.InputReflected}
}
