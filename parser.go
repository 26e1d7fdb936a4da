// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xswire

import (
	"encoding/binary"
)

// parserPhase is the Parser's internal state tag (§3 Parser state).
type parserPhase uint8

const (
	phaseReadingHeader parserPhase = iota
	phaseReadingBody
	phaseFinished
)

// ParserStatus is what Parser.State reports to the driving caller: either
// "feed me more bytes" (Continue) or "the frame is complete" (Done).
type ParserStatus struct {
	// Done is true once the parser has a terminal result (success or error).
	Done bool
	// Need is the number of bytes the caller should read next when !Done.
	Need int
	// Packet and Err are populated when Done; exactly one is non-zero/non-nil.
	Packet Packet
	Err    error
}

// Parser is a single-owner, incremental state machine that decodes one
// Packet from an arbitrary sequence of byte fragments. It never blocks,
// never allocates unbounded memory, and never mutates the caller's buffer.
//
// A Parser is created fresh by NewParser, advanced by repeated calls to
// Input, and discarded once Finished (State().Done == true); the caller
// allocates a new Parser for the next frame.
type Parser struct {
	phase parserPhase

	header    [packetHeaderLen]byte
	headerLen int

	ty   Op
	rid  uint32
	tid  uint32
	need int // clamped payload length
	data []byte

	err error
}

// NewParser returns a Parser ready to consume the start of a new frame.
func NewParser() *Parser {
	return &Parser{}
}

// State reports the parser's current status without consuming input.
func (p *Parser) State() ParserStatus {
	switch p.phase {
	case phaseFinished:
		if p.err != nil {
			return ParserStatus{Done: true, Err: p.err}
		}
		return ParserStatus{Done: true, Packet: Packet{ty: p.ty, rid: p.rid, tid: p.tid, data: p.data}}
	case phaseReadingHeader:
		return ParserStatus{Need: packetHeaderLen - p.headerLen}
	default: // phaseReadingBody
		return ParserStatus{Need: p.need - len(p.data)}
	}
}

// Input feeds the next fragment of bytes into the parser. Callers must never
// supply more bytes than the most recent State().Need reports; Input does
// not buffer ahead, and any bytes beyond that need are dropped. Once
// Finished, Input is a silent no-op.
func (p *Parser) Input(b []byte) {
	if p.phase == phaseFinished {
		return
	}
	switch p.phase {
	case phaseReadingHeader:
		p.inputHeader(b)
	case phaseReadingBody:
		p.inputBody(b)
	}
}

func (p *Parser) inputHeader(b []byte) {
	n := copy(p.header[p.headerLen:packetHeaderLen], b)
	p.headerLen += n
	if p.headerLen < packetHeaderLen {
		return
	}
	p.parseHeader()
}

func (p *Parser) parseHeader() {
	code := binary.LittleEndian.Uint32(p.header[0:4])
	rid := binary.LittleEndian.Uint32(p.header[4:8])
	tid := binary.LittleEndian.Uint32(p.header[8:12])
	length := binary.LittleEndian.Uint32(p.header[12:16])

	op, err := ParseOp(code)
	if err != nil {
		p.phase = phaseFinished
		p.err = err
		return
	}

	// Clamp rather than reject: an oversized-length peer is already
	// malformed and the connection will be discarded at a higher layer (§9 OQ1).
	need := int(length)
	if need > XenstorePayloadMax {
		need = XenstorePayloadMax
	}

	p.ty, p.rid, p.tid, p.need = op, rid, tid, need

	if need == 0 {
		p.phase = phaseFinished
		p.data = []byte{}
		return
	}
	p.phase = phaseReadingBody
	p.data = make([]byte, 0, need)
}

func (p *Parser) inputBody(b []byte) {
	remaining := p.need - len(p.data)
	n := len(b)
	if n > remaining {
		n = remaining
	}
	p.data = append(p.data, b[:n]...)
	if len(p.data) >= p.need {
		p.phase = phaseFinished
	}
}
