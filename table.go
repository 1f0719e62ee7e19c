// SPDX-License-Identifier: MIT-0
// SPDX-FileCopyrightText: 2026 crcflip contributors

package crc

import (
	"math/big"
	"sync"
)

// fixedTable is the 256-entry byte-at-a-time accelerator table for widths
// that fit in a uint64 register.
type fixedTable [256]uint64

// bigTable is the equivalent table for widths beyond maxFixedWidth.
type bigTable [256]*big.Int

// tableCache is the process-wide, read-mostly mapping from a CRC model's
// (width, polynomial, reflected) triple to its accelerator table. Two
// engines built from Params that agree on those three fields always share
// the same table pointer: LoadOrStore makes first-time construction race
// tolerant; a second concurrent builder computes its own copy and loses
// the race harmlessly, but every reader ends up with one stable pointer.
var tableCache sync.Map // cacheKey -> *fixedTable or *bigTable

// buildFixedTable implements the lookup-table algorithm of spec.md 4.2 for
// widths <= maxFixedWidth, entirely in uint64 arithmetic.
func buildFixedTable(width int, poly uint64, reflected bool) *fixedTable {
	top := uint64(1) << uint(width-1)
	mask := (uint64(1) << uint(width)) - 1
	polyMasked := poly & mask

	var t fixedTable
	for i := 0; i < 256; i++ {
		var c uint64
		if reflected {
			c = reflect(uint64(i), 8) << uint(width-8)
		} else {
			c = uint64(i) << uint(width-8)
		}
		for b := 0; b < 8; b++ {
			if c&top != 0 {
				c = (c << 1) ^ polyMasked
			} else {
				c <<= 1
			}
		}
		if reflected {
			t[i] = reflect(c, width)
		} else {
			t[i] = c & mask
		}
	}
	return &t
}

// buildBigTable is buildFixedTable's counterpart for width > maxFixedWidth.
func buildBigTable(width int, poly *big.Int, reflected bool) *bigTable {
	top := new(big.Int).Lsh(bigOne, uint(width-1))
	mask := maskOfWidth(width)
	polyMasked := new(big.Int).And(poly, mask)

	var t bigTable
	for i := 0; i < 256; i++ {
		var c *big.Int
		if reflected {
			c = new(big.Int).Lsh(new(big.Int).SetUint64(reflect(uint64(i), 8)), uint(width-8))
		} else {
			c = new(big.Int).Lsh(big.NewInt(int64(i)), uint(width-8))
		}
		for b := 0; b < 8; b++ {
			if new(big.Int).And(c, top).Sign() != 0 {
				c.Lsh(c, 1)
				c.Xor(c, polyMasked)
			} else {
				c.Lsh(c, 1)
			}
		}
		if reflected {
			t[i] = reflectBig(c, width)
		} else {
			t[i] = new(big.Int).And(c, mask)
		}
	}
	return &t
}

// fixedTableFor returns the (possibly cached) accelerator table for p,
// building and memoizing it on first use.
func fixedTableFor(p *Params) *fixedTable {
	key := p.cacheKey()
	if v, ok := tableCache.Load(key); ok {
		return v.(*fixedTable)
	}
	t := buildFixedTable(p.Width, p.Poly.Uint64(), p.InputReflected)
	actual, _ := tableCache.LoadOrStore(key, t)
	return actual.(*fixedTable)
}

// bigTableFor is fixedTableFor's counterpart for width > maxFixedWidth.
func bigTableFor(p *Params) *bigTable {
	key := p.cacheKey()
	if v, ok := tableCache.Load(key); ok {
		return v.(*bigTable)
	}
	t := buildBigTable(p.Width, p.Poly, p.InputReflected)
	actual, _ := tableCache.LoadOrStore(key, t)
	return actual.(*bigTable)
}
