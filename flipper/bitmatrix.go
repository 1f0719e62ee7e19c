// SPDX-License-Identifier: MIT-0
// SPDX-FileCopyrightText: 2026 crcflip contributors

package flipper

import (
	"github.com/bits-and-blooms/bitset"
)

// BitArray is a fixed-length sequence of booleans. Its length never
// changes after construction; indexing out of range is a programming
// error and panics with ErrRangeError, the same synchronous-failure
// convention the crc package uses for Sink misuse.
type BitArray struct {
	bits   *bitset.BitSet
	length int
}

// NewBitArray returns a BitArray of the given length, all bits clear.
func NewBitArray(length int) *BitArray {
	return &BitArray{bits: bitset.New(uint(length)), length: length}
}

// Len returns the fixed length of a.
func (a *BitArray) Len() int { return a.length }

func (a *BitArray) checkIndex(i int) {
	if i < 0 || i >= a.length {
		panic(ErrRangeError)
	}
}

// Get returns the value of bit i.
func (a *BitArray) Get(i int) bool {
	a.checkIndex(i)
	return a.bits.Test(uint(i))
}

// Set assigns the value of bit i.
func (a *BitArray) Set(i int, v bool) {
	a.checkIndex(i)
	a.bits.SetTo(uint(i), v)
}

// Reset clears every bit back to zero.
func (a *BitArray) Reset() {
	a.bits.ClearAll()
}

// BitMatrix is a fixed rows x cols grid of bits over GF(2), stored as one
// BitArray per row. It supports the row operations Gaussian elimination
// needs: swap, and in-place elimination to reduced row-echelon form.
type BitMatrix struct {
	rows  []*BitArray
	nRows int
	nCols int
}

// NewBitMatrix returns a rows x cols matrix, all bits clear.
func NewBitMatrix(rows, cols int) *BitMatrix {
	m := &BitMatrix{rows: make([]*BitArray, rows), nRows: rows, nCols: cols}
	for i := range m.rows {
		m.rows[i] = NewBitArray(cols)
	}
	return m
}

// Rows returns the row count.
func (m *BitMatrix) Rows() int { return m.nRows }

// Cols returns the column count.
func (m *BitMatrix) Cols() int { return m.nCols }

func (m *BitMatrix) checkRow(r int) {
	if r < 0 || r >= m.nRows {
		panic(ErrRangeError)
	}
}

// Get returns bit (r, c).
func (m *BitMatrix) Get(r, c int) bool {
	m.checkRow(r)
	return m.rows[r].Get(c)
}

// Set assigns bit (r, c).
func (m *BitMatrix) Set(r, c int, v bool) {
	m.checkRow(r)
	m.rows[r].Set(c, v)
}

// SwapRows exchanges two rows in place.
func (m *BitMatrix) SwapRows(i, j int) {
	m.checkRow(i)
	m.checkRow(j)
	m.rows[i], m.rows[j] = m.rows[j], m.rows[i]
}

// xorRowInto XORs src into dst in place: dst ^= src.
func (m *BitMatrix) xorRowInto(dst, src int) {
	for c := 0; c < m.nCols; c++ {
		if m.rows[src].Get(c) {
			m.rows[dst].Set(c, !m.rows[dst].Get(c))
		}
	}
}

// Eliminate reduces m to reduced row-echelon form in place and returns,
// for each row, the column of its pivot (first set bit after reduction),
// or -1 for a row that became entirely zero. Columns are walked left to
// right across the full width of the matrix, including the rightmost
// (augmented) column: a row whose only remaining set bit lands there
// signals an inconsistent system, which callers detect by checking
// pivot >= number-of-unknowns.
//
// Eliminate is idempotent: a matrix already in reduced row-echelon form
// is unchanged by a second call, and the returned pivot vector is
// identical.
func (m *BitMatrix) Eliminate() []int {
	pivots := make([]int, m.nRows)
	for i := range pivots {
		pivots[i] = -1
	}

	fixedRows := 0
	for col := 0; col < m.nCols && fixedRows < m.nRows; col++ {
		pivotRow := -1
		for r := fixedRows; r < m.nRows; r++ {
			if m.rows[r].Get(col) {
				pivotRow = r
				break
			}
		}
		if pivotRow == -1 {
			continue
		}
		if pivotRow != fixedRows {
			m.SwapRows(pivotRow, fixedRows)
		}
		for r := 0; r < m.nRows; r++ {
			if r != fixedRows && m.rows[r].Get(col) {
				m.xorRowInto(r, fixedRows)
			}
		}
		pivots[fixedRows] = col
		fixedRows++
	}
	return pivots
}

// BackSubstitute reconstructs the solution vector x (length m.Cols()-1,
// one entry per unknown) from a matrix already reduced by Eliminate,
// given its pivot vector. It returns errInconsistent if any row reduces
// to "0 = 1": a zero row whose augmented bit is set, or a pivot that
// landed in the augmented column itself.
func (m *BitMatrix) BackSubstitute(pivots []int) ([]bool, error) {
	n := m.nCols - 1
	x := make([]bool, n)

	for r := m.nRows - 1; r >= 0; r-- {
		p := pivots[r]
		switch {
		case p == -1:
			if m.rows[r].Get(n) {
				return nil, errInconsistent
			}
		case p >= n:
			return nil, errInconsistent
		default:
			known := m.rows[r].Get(n)
			for c := p + 1; c < n; c++ {
				if x[c] && m.rows[r].Get(c) {
					known = !known
				}
			}
			x[p] = known
		}
	}
	return x, nil
}
