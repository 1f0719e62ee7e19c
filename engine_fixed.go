// SPDX-License-Identifier: MIT-0
// SPDX-FileCopyrightText: 2026 crcflip contributors

package crc

// fixedEngine is the Engine implementation for widths <= maxFixedWidth,
// backed entirely by uint64 arithmetic and a *fixedTable shared (via the
// process-wide cache) with every other engine built from equivalent
// parameters.
type fixedEngine struct {
	p     *Params
	table *fixedTable

	mask        uint64
	widthMinus8 uint
	initReg     uint64
	xorOut      uint64
}

// newFixedEngine precomputes every per-engine derived value once, up
// front, so that concurrently starting many Sinks from the same Engine
// never races on engine state.
func newFixedEngine(p *Params, table *fixedTable) *fixedEngine {
	e := &fixedEngine{
		p:           p,
		table:       table,
		mask:        (uint64(1) << uint(p.Width)) - 1,
		widthMinus8: uint(p.Width - 8),
		xorOut:      p.XorOut.Uint64(),
	}
	init := p.Init.Uint64()
	if p.InputReflected {
		e.initReg = reflect(init, p.Width)
	} else {
		e.initReg = init
	}
	return e
}

func (e *fixedEngine) Width() int { return e.p.Width }

func (e *fixedEngine) StartChunked(out chan<- CrcValue) Sink {
	return &fixedSink{e: e, reg: e.initReg, out: out}
}

func (e *fixedEngine) Convert(data []byte) CrcValue {
	return convert(e, data)
}

// fixedSink is the mutable, single-use streaming state of a fixedEngine
// computation: spec.md's EngineState, specialized to native arithmetic.
type fixedSink struct {
	e      *fixedEngine
	reg    uint64
	closed bool
	out    chan<- CrcValue
}

func (s *fixedSink) mustBeOpen() {
	if s.closed {
		panic("crc: write to a closed Sink")
	}
}

func (s *fixedSink) Add(data []byte) {
	s.mustBeOpen()
	e := s.e
	reg := s.reg
	if e.p.InputReflected {
		for _, b := range data {
			reg = e.table[byte(reg)^b] ^ (reg >> 8)
		}
	} else {
		for _, b := range data {
			reg = e.table[byte(reg>>e.widthMinus8)^b] ^ ((reg << 8) & e.mask)
		}
	}
	s.reg = reg
}

func (s *fixedSink) AddZeros(n int) {
	s.mustBeOpen()
	if s.reg == 0 || n <= 0 {
		return
	}
	const chunk = 4096
	zeros := make([]byte, chunk)
	for n > 0 {
		k := n
		if k > chunk {
			k = chunk
		}
		s.Add(zeros[:k])
		n -= k
		if s.reg == 0 {
			return
		}
	}
}

func (s *fixedSink) Split(out chan<- CrcValue) Sink {
	s.mustBeOpen()
	return &fixedSink{e: s.e, reg: s.reg, out: out}
}

func (s *fixedSink) Close() {
	if s.closed {
		return
	}
	s.closed = true
	final := s.reg ^ s.e.xorOut
	s.out <- crcValueFromUint64(s.e.p.Width, final)
	close(s.out)
}
