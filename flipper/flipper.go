// SPDX-License-Identifier: MIT-0
// SPDX-FileCopyrightText: 2026 crcflip contributors

package flipper

import (
	"sort"

	"github.com/pkg/errors"

	crc "github.com/crc-tools/crcflip"
)

// Flipper finds a subset of a message's flippable bit positions that,
// once flipped, makes the message's CRC equal an arbitrary target. It is
// built once from an Engine and can be reused across many messages of
// varying length, since the engine itself carries no per-message state.
type Flipper struct {
	engine crc.Engine
}

// New builds a Flipper that targets the CRC computed by engine.
func New(engine crc.Engine) *Flipper {
	return &Flipper{engine: engine}
}

// FlipWithData is a convenience wrapper around FlipWithValue that computes
// the message's current CRC first.
func (f *Flipper) FlipWithData(data []byte, allowedPositions []int, target crc.CrcValue) ([]int, error) {
	crcOfMessage := f.engine.Convert(data)
	return f.FlipWithValue(crcOfMessage, len(data), allowedPositions, target)
}

// FlipWithValue returns the subset of allowedPositions whose flip turns
// crcOfMessage into target, or (nil, nil) if no subset does. A non-nil
// error means the request itself was invalid (a bad position or a target
// of the wrong width); a nil, nil result is the expected "no solution"
// outcome for an unreachable target, distinct from a successful-but-empty
// result (returned when crcOfMessage already equals target).
func (f *Flipper) FlipWithValue(crcOfMessage crc.CrcValue, lengthInBytes int, allowedPositions []int, target crc.CrcValue) ([]int, error) {
	width := f.engine.Width()
	if target.Width() != width {
		return nil, errors.Wrapf(ErrWidthMismatch, "target width %d != engine width %d", target.Width(), width)
	}

	maxBit := 8 * lengthInBytes
	for _, p := range allowedPositions {
		if p < 0 || p >= maxBit {
			return nil, errors.Wrapf(ErrInvalidPosition, "position %d out of range [0, %d)", p, maxBit)
		}
	}

	if crcOfMessage.Equal(target) {
		return []int{}, nil
	}
	if len(allowedPositions) == 0 {
		return nil, nil
	}

	checksums := f.positionalChecksums(allowedPositions, lengthInBytes)

	n := len(allowedPositions)
	mat := NewBitMatrix(width, n+1)
	rhs := crcOfMessage.Xor(target)
	for r := 0; r < width; r++ {
		for c := 0; c < n; c++ {
			mat.Set(r, c, checksums[c].Bit(r) == 1)
		}
		mat.Set(r, n, rhs.Bit(r) == 1)
	}

	pivots := mat.Eliminate()
	x, err := mat.BackSubstitute(pivots)
	if err != nil {
		return nil, nil
	}

	result := make([]int, 0, n)
	for i, set := range x {
		if set {
			result = append(result, allowedPositions[i])
		}
	}
	return result, nil
}

// positionalChecksums computes, for every requested position p, the value
// c = CRC(all-zero message) XOR CRC(all-zero message with bit p set),
// returned in the same order as positions. It streams a single "blank"
// engine forward with zero bytes, splitting off a throwaway sibling at
// each position to inject that position's single set bit, so the zero
// prefix is fed only once. Each sibling still feeds its own remaining
// zero bytes up to lengthInBytes, so the total work is up to O(n*L)
// byte-feeds.
func (f *Flipper) positionalChecksums(positions []int, lengthInBytes int) []crc.CrcValue {
	type entry struct{ pos, origIdx int }
	sorted := make([]entry, len(positions))
	for i, p := range positions {
		sorted[i] = entry{pos: p, origIdx: i}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].pos < sorted[j].pos })

	blankOut := make(chan crc.CrcValue, 1)
	blank := f.engine.StartChunked(blankOut)
	bytesProcessed := 0

	singleCRCs := make([]crc.CrcValue, len(sorted))
	for i, e := range sorted {
		byteIdx := e.pos / 8
		if advance := byteIdx - bytesProcessed; advance > 0 {
			blank.AddZeros(advance)
			bytesProcessed += advance
		}

		singleOut := make(chan crc.CrcValue, 1)
		single := blank.Split(singleOut)
		single.Add([]byte{1 << uint(e.pos%8)})
		single.AddZeros(lengthInBytes - bytesProcessed - 1)
		single.Close()
		singleCRCs[i] = <-singleOut
	}

	blank.AddZeros(lengthInBytes - bytesProcessed)
	blank.Close()
	crcBlank := <-blankOut

	result := make([]crc.CrcValue, len(positions))
	for i, e := range sorted {
		result[e.origIdx] = crcBlank.Xor(singleCRCs[i])
	}
	return result
}
