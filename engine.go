// SPDX-License-Identifier: MIT-0
// SPDX-FileCopyrightText: 2026 crcflip contributors

package crc

// Sink is a live, single-use CRC computation in progress: bytes fed to it
// update an internal register in strict order. A Sink has no I/O and
// cannot fail; misusing one (writing after Close, double-Split after
// Close) is a programming error and panics, same as the rest of this
// package's synchronous contract.
type Sink interface {
	// Add consumes data, updating the register.
	Add(data []byte)
	// AddZeros is equivalent to Add(make([]byte, n)) but skips the work
	// entirely when the register is already zero, since table[0] == 0
	// and both recurrences preserve a zero register on zero input.
	AddZeros(n int)
	// Split returns a new, independent Sink that is a snapshot of this
	// one at the time of the call. Feeding the same bytes to both
	// afterwards yields the same final value. The new Sink delivers its
	// result to out, never to this Sink's own output.
	Split(out chan<- CrcValue) Sink
	// Close is idempotent. On the first call it computes the final
	// CrcValue and sends it once on the output channel supplied at
	// construction, then closes that channel.
	Close()
}

// Engine is a reusable, immutable CRC algorithm: a parameter set bound to
// an accelerator table. One Engine can start any number of independent
// Sinks (concurrently or not; an Engine itself holds no mutable state).
type Engine interface {
	// Width is the CRC width in bits.
	Width() int
	// StartChunked begins a new streaming computation whose result is
	// delivered exactly once on out when the returned Sink is closed.
	StartChunked(out chan<- CrcValue) Sink
	// Convert is a one-shot convenience: feed data once, close, and
	// return the resulting CrcValue synchronously.
	Convert(data []byte) CrcValue
}

// NewEngine builds an Engine from p, acquiring (or lazily building) its
// accelerator table from the process-wide cache. Widths of 64 bits or
// less run on native uint64 arithmetic; wider ones fall back to math/big.
func NewEngine(p *Params) Engine {
	if p.fits64() {
		return newFixedEngine(p, fixedTableFor(p))
	}
	return newBigEngine(p, bigTableFor(p))
}

// convert runs a single one-shot computation through eng without
// requiring the caller to manage a channel.
func convert(eng Engine, data []byte) CrcValue {
	out := make(chan CrcValue, 1)
	s := eng.StartChunked(out)
	s.Add(data)
	s.Close()
	return <-out
}
