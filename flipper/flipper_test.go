// SPDX-License-Identifier: MIT-0
// SPDX-FileCopyrightText: 2026 crcflip contributors

package flipper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	crc "github.com/crc-tools/crcflip"
	"github.com/crc-tools/crcflip/flipper"
)

// crc64ecmaEngine is CRC-64/ECMA-182: the CRC-64/XZ polynomial with zero
// init and xorout and no reflection.
func crc64ecmaEngine(t *testing.T) crc.Engine {
	t.Helper()
	p, err := crc.NewParamsUint64(64, 0x42F0E1EBA9EA3693, 0, 0, false)
	require.NoError(t, err)
	return crc.NewEngine(p)
}

func crc16Engine(t *testing.T) crc.Engine {
	t.Helper()
	p, err := crc.NewParamsUint64(16, 0x1021, 0xFFFF, 0x0000, true)
	require.NoError(t, err)
	return crc.NewEngine(p)
}

// flipBit toggles bit i (0 = LSB of byte 0) of data in place, using the
// same bit-within-byte convention as the engine: bit i lives in byte
// i/8, at position i%8 from the byte's LSB.
func flipBit(data []byte, i int) {
	data[i/8] ^= 1 << uint(i%8)
}

func TestFlipperEndToEndPigCartoon(t *testing.T) {
	const msg = "flipping lowercases to uppercases like mama pig making hot pancakes for daddy pig in peppa pig cartoon"
	const want = "flIPpiNG LOWErcAsEs To uPpERcaseS LIkE mAmA Pig mAKInG hOT paNcAKEs For DAdDY pig in peppa pig cartoon"
	require.Len(t, []byte(msg), 102)

	data := []byte(msg)
	var allowed []int
	for i, b := range data {
		if b >= 'a' && b <= 'z' {
			allowed = append(allowed, i*8+5)
		}
	}

	eng := crc64ecmaEngine(t)
	f := flipper.New(eng)
	target := crc.NewCrcValueUint64(64, 0xDEADBEEFCAFEBABE)

	positions, err := f.FlipWithData(data, allowed, target)
	require.NoError(t, err)
	require.NotNil(t, positions)

	flipped := append([]byte(nil), data...)
	for _, p := range positions {
		flipBit(flipped, p)
	}

	require.Equal(t, want, string(flipped))
	require.True(t, eng.Convert(flipped).Equal(target))

	for _, p := range positions {
		found := false
		for _, a := range allowed {
			if a == p {
				found = true
				break
			}
		}
		require.True(t, found, "returned position %d not in allowed set", p)
	}
	require.LessOrEqual(t, len(positions), eng.Width())
}

// Flipping to the message's own current CRC is a no-op solution: the
// empty set, since no bits need to change.
func TestFlipperNoOpWhenAlreadyAtTarget(t *testing.T) {
	eng := crc16Engine(t)
	f := flipper.New(eng)
	data := []byte("already correct")
	target := eng.Convert(data)

	positions, err := f.FlipWithData(data, []int{0, 1, 2, 3}, target)
	require.NoError(t, err)
	require.Equal(t, []int{}, positions)
}

// With the full bit range of a short message offered as allowed
// positions, any reachable 16-bit target must be found (completeness),
// and flipping the returned set must actually reach it (soundness).
func TestFlipperSoundnessAndCompletenessOverFullRange(t *testing.T) {
	eng := crc16Engine(t)
	f := flipper.New(eng)
	data := []byte("abcdefgh")

	allowed := make([]int, 8*len(data))
	for i := range allowed {
		allowed[i] = i
	}

	targets := []uint64{0x0000, 0xFFFF, 0x1234, 0xBEEF, 0xA5A5}
	for _, tv := range targets {
		target := crc.NewCrcValueUint64(16, tv)
		positions, err := f.FlipWithData(data, allowed, target)
		require.NoError(t, err)
		require.NotNil(t, positions, "target %#x should be reachable with full bit range", tv)

		flipped := append([]byte(nil), data...)
		for _, p := range positions {
			flipBit(flipped, p)
		}
		require.True(t, eng.Convert(flipped).Equal(target), "target %#x not reached", tv)

		seen := make(map[int]bool, len(allowed))
		for _, a := range allowed {
			seen[a] = true
		}
		for _, p := range positions {
			require.True(t, seen[p])
		}
		require.LessOrEqual(t, len(positions), eng.Width())
	}
}

// An unreachable target (too few independent allowed positions to hit an
// arbitrary 16-bit value) must report NoSolution as (nil, nil), not an
// error.
func TestFlipperNoSolutionIsNotAnError(t *testing.T) {
	eng := crc16Engine(t)
	f := flipper.New(eng)
	data := []byte("abcdefgh")

	positions, err := f.FlipWithData(data, []int{0}, crc.NewCrcValueUint64(16, 0x1234))
	require.NoError(t, err)
	require.Nil(t, positions)
}

func TestFlipperRejectsOutOfRangePosition(t *testing.T) {
	eng := crc16Engine(t)
	f := flipper.New(eng)
	data := []byte("abcdefgh")

	_, err := f.FlipWithData(data, []int{0, 64}, crc.NewCrcValueUint64(16, 0x1234))
	require.Error(t, err)
}

func TestFlipperRejectsWidthMismatch(t *testing.T) {
	eng := crc16Engine(t)
	f := flipper.New(eng)
	data := []byte("abcdefgh")

	_, err := f.FlipWithData(data, []int{0, 1}, crc.NewCrcValueUint64(32, 0x1234))
	require.Error(t, err)
}

func TestFlipperEmptyAllowedPositionsIsNoSolutionUnlessAlreadyThere(t *testing.T) {
	eng := crc16Engine(t)
	f := flipper.New(eng)
	data := []byte("abcdefgh")

	positions, err := f.FlipWithData(data, nil, crc.NewCrcValueUint64(16, 0xDEAD))
	require.NoError(t, err)
	require.Nil(t, positions)

	current := eng.Convert(data)
	positions, err = f.FlipWithData(data, nil, current)
	require.NoError(t, err)
	require.Equal(t, []int{}, positions)
}
