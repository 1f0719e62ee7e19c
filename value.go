// SPDX-License-Identifier: MIT-0
// SPDX-FileCopyrightText: 2026 crcflip contributors

// Package crc is a parametric CRC engine implementing the generalized
// Rocksoft model: arbitrary width, polynomial, initial value, final XOR
// mask, and input/output reflection. It streams bytes through a
// table-driven register, supports zero-run extension and mid-stream state
// cloning, and composes several CRCs into one wider engine.
//
// Widths up to 64 bits run entirely on native uint64 arithmetic. Wider
// widths (any multiple of 8 above 64) fall back to math/big so the same
// API covers both without the caller noticing which representation is in
// play. Widths that are not a multiple of 8, such as CRC-82, are rejected.
package crc

import (
	"fmt"
	"math/big"
)

// maxFixedWidth is the largest CRC width this platform can carry in a
// native machine word. Above it, registers and lookup tables are backed by
// math/big instead.
const maxFixedWidth = 64

// reflect reverses the least-significant width bits of val. Bits at or
// above position width are dropped: the result holds only the reversed
// low width bits.
//
//	reflect(0x80, 8) == 0x01
//	reflect(0x3E23, 3) == 6
func reflect(val uint64, width int) uint64 {
	var out uint64
	for i := 0; i < width; i++ {
		out <<= 1
		out |= val & 1
		val >>= 1
	}
	return out
}

// reflectBig reverses the least-significant width bits of val, returning a
// freshly allocated result. Used for widths beyond maxFixedWidth.
func reflectBig(val *big.Int, width int) *big.Int {
	out := new(big.Int)
	tmp := new(big.Int).Set(val)
	bit := new(big.Int)
	for i := 0; i < width; i++ {
		out.Lsh(out, 1)
		bit.And(tmp, bigOne)
		out.Or(out, bit)
		tmp.Rsh(tmp, 1)
	}
	return out
}

var (
	bigOne = big.NewInt(1)
)

// maskOfWidth returns (1<<width)-1 as a big.Int.
func maskOfWidth(width int) *big.Int {
	m := new(big.Int).Lsh(bigOne, uint(width))
	return m.Sub(m, bigOne)
}

// Value is the internal dual-representation integer: a value up to
// maxFixedWidth bits lives in small; wider values carry a non-nil big.
// Exactly one of the two is authoritative for a given Value; which one is
// decided once, at construction, by width.
type Value struct {
	width int
	small uint64
	big   *big.Int // nil unless width > maxFixedWidth
}

func valueFromUint64(width int, v uint64) Value {
	return Value{width: width, small: v}
}

func valueFromBig(width int, v *big.Int) Value {
	if width <= maxFixedWidth && v.IsUint64() {
		return Value{width: width, small: v.Uint64()}
	}
	return Value{width: width, big: new(big.Int).Set(v)}
}

// isBig reports whether this Value is backed by math/big.
func (v Value) isBig() bool { return v.big != nil }

// asBig widens v to a *big.Int regardless of its native representation.
func (v Value) asBig() *big.Int {
	if v.big != nil {
		return new(big.Int).Set(v.big)
	}
	return new(big.Int).SetUint64(v.small)
}

// bit returns the value (0 or 1) of bit i (0 = least significant).
func (v Value) bit(i int) int {
	if v.big != nil {
		return int(v.big.Bit(i))
	}
	return int((v.small >> uint(i)) & 1)
}

// xor returns v XOR other. Both must share the same width; the result
// widens to big only if either operand already does.
func (v Value) xor(other Value) Value {
	if v.big != nil || other.big != nil {
		return Value{width: v.width, big: new(big.Int).Xor(v.asBig(), other.asBig())}
	}
	return Value{width: v.width, small: v.small ^ other.small}
}

// CrcValue is the result of a CRC computation: an unsigned integer of up
// to the engine's configured width. Equality is numeric, regardless of
// whether either side happens to be represented as a native integer or as
// a big.Int.
type CrcValue struct {
	v Value
}

// Width returns the CRC width (in bits) this value was produced for.
func (c CrcValue) Width() int { return c.v.width }

// Uint64 returns c as a uint64. It panics if c does
// not fit in 64 bits; callers working with widths above 64 should use
// BigInt instead.
func (c CrcValue) Uint64() uint64 {
	if c.v.big != nil {
		if !c.v.big.IsUint64() {
			panic(fmt.Sprintf("crc: value does not fit in uint64: %s", c.v.big.String()))
		}
		return c.v.big.Uint64()
	}
	return c.v.small
}

// BigInt returns c widened into a *big.Int. The returned value is a copy;
// mutating it does not affect c.
func (c CrcValue) BigInt() *big.Int {
	return c.v.asBig()
}

// Bit returns the value (0 or 1) of bit i, 0 being the least significant
// bit of the register.
func (c CrcValue) Bit(i int) int { return c.v.bit(i) }

// Xor returns c XOR other as a new CrcValue of the same width as c.
func (c CrcValue) Xor(other CrcValue) CrcValue {
	return CrcValue{v: c.v.xor(other.v)}
}

// Equal reports whether c and other denote the same numeric value,
// independent of their internal representation or nominal width.
func (c CrcValue) Equal(other CrcValue) bool {
	if c.v.big == nil && other.v.big == nil {
		return c.v.small == other.v.small
	}
	return c.v.asBig().Cmp(other.v.asBig()) == 0
}

// EqualUint64 reports whether c equals the unsigned integer u.
func (c CrcValue) EqualUint64(u uint64) bool {
	if c.v.big == nil {
		return c.v.small == u
	}
	return c.v.big.Cmp(new(big.Int).SetUint64(u)) == 0
}

// String renders c in decimal, matching fmt.Stringer.
func (c CrcValue) String() string {
	return c.v.asBig().String()
}

// Text renders c in the given base (as accepted by math/big.Int.Text),
// e.g. Text(16) for hexadecimal.
func (c CrcValue) Text(base int) string {
	return c.v.asBig().Text(base)
}

func crcValueFromUint64(width int, v uint64) CrcValue {
	return CrcValue{v: valueFromUint64(width, v)}
}

func crcValueFromBig(width int, v *big.Int) CrcValue {
	return CrcValue{v: valueFromBig(width, v)}
}

// NewCrcValueUint64 builds a CrcValue of the given width from a native
// integer, for callers (such as a flipper's target) that did not obtain
// it from an Engine. width must fit the value: bits at or above width are
// not masked off automatically.
func NewCrcValueUint64(width int, v uint64) CrcValue {
	return crcValueFromUint64(width, v)
}

// NewCrcValueBigInt builds a CrcValue of the given width from a *big.Int,
// for widths beyond maxFixedWidth.
func NewCrcValueBigInt(width int, v *big.Int) CrcValue {
	return crcValueFromBig(width, v)
}
