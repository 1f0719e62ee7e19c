// SPDX-License-Identifier: MIT-0
// SPDX-FileCopyrightText: 2026 crcflip contributors

package crc

import "math/big"

// bigEngine is the Engine implementation for widths beyond
// maxFixedWidth (64), backed by math/big. It mirrors fixedEngine's
// recurrences exactly; only the register's underlying type differs.
type bigEngine struct {
	p     *Params
	table *bigTable

	mask        *big.Int
	widthMinus8 uint
	initReg     *big.Int
	xorOut      *big.Int
}

func newBigEngine(p *Params, table *bigTable) *bigEngine {
	e := &bigEngine{
		p:           p,
		table:       table,
		mask:        maskOfWidth(p.Width),
		widthMinus8: uint(p.Width - 8),
		xorOut:      new(big.Int).Set(p.XorOut),
	}
	if p.InputReflected {
		e.initReg = reflectBig(p.Init, p.Width)
	} else {
		e.initReg = new(big.Int).Set(p.Init)
	}
	return e
}

func (e *bigEngine) Width() int { return e.p.Width }

func (e *bigEngine) StartChunked(out chan<- CrcValue) Sink {
	return &bigSink{e: e, reg: new(big.Int).Set(e.initReg), out: out}
}

func (e *bigEngine) Convert(data []byte) CrcValue {
	return convert(e, data)
}

type bigSink struct {
	e      *bigEngine
	reg    *big.Int
	closed bool
	out    chan<- CrcValue
}

func (s *bigSink) mustBeOpen() {
	if s.closed {
		panic("crc: write to a closed Sink")
	}
}

func (s *bigSink) Add(data []byte) {
	s.mustBeOpen()
	e := s.e
	reg := s.reg
	idx := new(big.Int)
	if e.p.InputReflected {
		for _, b := range data {
			idx.And(reg, big255)
			i := byte(idx.Uint64()) ^ b
			carry := new(big.Int).Rsh(reg, 8)
			reg = new(big.Int).Xor(e.table[i], carry)
		}
	} else {
		for _, b := range data {
			idx.Rsh(reg, e.widthMinus8)
			idx.And(idx, big255)
			i := byte(idx.Uint64()) ^ b
			carry := new(big.Int).Lsh(reg, 8)
			carry.And(carry, e.mask)
			reg = new(big.Int).Xor(e.table[i], carry)
		}
	}
	s.reg = reg
}

var big255 = big.NewInt(0xFF)

func (s *bigSink) AddZeros(n int) {
	s.mustBeOpen()
	if n <= 0 || s.reg.Sign() == 0 {
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
		if s.reg.Sign() == 0 {
			return
		}
	}
}

func (s *bigSink) Split(out chan<- CrcValue) Sink {
	s.mustBeOpen()
	return &bigSink{e: s.e, reg: new(big.Int).Set(s.reg), out: out}
}

func (s *bigSink) Close() {
	if s.closed {
		return
	}
	s.closed = true
	final := new(big.Int).Xor(s.reg, s.e.xorOut)
	s.out <- crcValueFromBig(s.e.p.Width, final)
	close(s.out)
}
