// SPDX-License-Identifier: MIT-0
// SPDX-FileCopyrightText: 2026 crcflip contributors

package crc

import "math/big"

// NewMultiEngine wraps several engines as one engine whose width is the
// sum of its children's widths and whose output is their bit-concatenation
// in the order given: the first child occupies the high-order bits. It
// exists so a single Flipper can target several independent CRCs with one
// linear system.
func NewMultiEngine(children ...Engine) Engine {
	widths := make([]int, len(children))
	total := 0
	for i, c := range children {
		widths[i] = c.Width()
		total += widths[i]
	}
	return &multiEngine{children: children, widths: widths, width: total}
}

type multiEngine struct {
	children []Engine
	widths   []int
	width    int
}

func (e *multiEngine) Width() int { return e.width }

func (e *multiEngine) StartChunked(out chan<- CrcValue) Sink {
	s := &multiSink{e: e, out: out, children: make([]Sink, len(e.children)), childOuts: make([]chan CrcValue, len(e.children))}
	for i, c := range e.children {
		s.childOuts[i] = make(chan CrcValue, 1)
		s.children[i] = c.StartChunked(s.childOuts[i])
	}
	return s
}

func (e *multiEngine) Convert(data []byte) CrcValue {
	return convert(e, data)
}

type multiSink struct {
	e         *multiEngine
	children  []Sink
	childOuts []chan CrcValue
	closed    bool
	out       chan<- CrcValue
}

func (s *multiSink) mustBeOpen() {
	if s.closed {
		panic("crc: write to a closed Sink")
	}
}

func (s *multiSink) Add(data []byte) {
	s.mustBeOpen()
	for _, c := range s.children {
		c.Add(data)
	}
}

func (s *multiSink) AddZeros(n int) {
	s.mustBeOpen()
	for _, c := range s.children {
		c.AddZeros(n)
	}
}

func (s *multiSink) Split(out chan<- CrcValue) Sink {
	s.mustBeOpen()
	clone := &multiSink{e: s.e, out: out, children: make([]Sink, len(s.children)), childOuts: make([]chan CrcValue, len(s.children))}
	for i, c := range s.children {
		clone.childOuts[i] = make(chan CrcValue, 1)
		clone.children[i] = c.Split(clone.childOuts[i])
	}
	return clone
}

// Close closes every child in order and composes their final values:
// V = (((v1 << w2) | v2) << w3 | v3) ...
func (s *multiSink) Close() {
	if s.closed {
		return
	}
	s.closed = true

	for _, c := range s.children {
		c.Close()
	}

	acc := new(big.Int)
	for i, ch := range s.childOuts {
		v := <-ch
		acc.Lsh(acc, uint(s.e.widths[i]))
		acc.Or(acc, v.BigInt())
	}
	s.out <- crcValueFromBig(s.e.width, acc)
	close(s.out)
}
