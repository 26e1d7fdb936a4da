// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xswire

import (
	"encoding/binary"
	"fmt"
)

// XenstorePayloadMax is the payload ceiling in bytes (§3, §4.3).
const XenstorePayloadMax = 4096

// packetHeaderLen is the fixed 16-byte header size (§4.2).
const packetHeaderLen = 16

// Packet is the framed unit exchanged over a PacketStream: a 16-byte header
// (op, request id, transaction id, payload length) plus opaque payload
// bytes. Packets are value-like; copying one is cheap and safe.
type Packet struct {
	ty   Op
	rid  uint32
	tid  uint32
	data []byte
}

// NewPacket constructs a Packet from fields and payload. len is derived from
// data; data is copied so the caller's slice may be reused. It fails if data
// exceeds XenstorePayloadMax.
func NewPacket(ty Op, rid, tid uint32, data []byte) (Packet, error) {
	if len(data) > XenstorePayloadMax {
		return Packet{}, fmt.Errorf("%w: %d bytes", ErrTooLong, len(data))
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return Packet{ty: ty, rid: rid, tid: tid, data: buf}, nil
}

// Op returns the packet's operation tag.
func (p Packet) Op() Op { return p.ty }

// Rid returns the request id (caller-chosen, echoed by the responder).
func (p Packet) Rid() uint32 { return p.rid }

// Tid returns the transaction id (0 outside a transaction).
func (p Packet) Tid() uint32 { return p.tid }

// Len returns the payload length in bytes.
func (p Packet) Len() int { return len(p.data) }

// DataRaw returns the payload exactly as carried on the wire.
func (p Packet) DataRaw() []byte {
	out := make([]byte, len(p.data))
	copy(out, p.data)
	return out
}

// Data returns the payload with a single trailing NUL byte stripped, if
// present. Many payloads are C-string-terminated on the wire, but callers
// generally want the logical string without the terminator.
func (p Packet) Data() []byte {
	if len(p.data) > 0 && p.data[len(p.data)-1] == 0 {
		return p.DataRaw()[:len(p.data)-1]
	}
	return p.DataRaw()
}

// String renders a debug-friendly summary; never used for control flow.
func (p Packet) String() string {
	return fmt.Sprintf("op=%s rid=%d tid=%d len=%d", p.ty, p.rid, p.tid, len(p.data))
}

// Marshal encodes the packet as wire bytes: a 16-byte little-endian header
// (op, rid, tid, len) followed by the payload.
func (p Packet) Marshal() []byte {
	out := make([]byte, packetHeaderLen+len(p.data))
	binary.LittleEndian.PutUint32(out[0:4], p.ty.Int())
	binary.LittleEndian.PutUint32(out[4:8], p.rid)
	binary.LittleEndian.PutUint32(out[8:12], p.tid)
	binary.LittleEndian.PutUint32(out[12:16], uint32(len(p.data)))
	copy(out[packetHeaderLen:], p.data)
	return out
}

// Equal reports whether p and q carry the same fields and payload bytes.
func (p Packet) Equal(q Packet) bool {
	if p.ty != q.ty || p.rid != q.rid || p.tid != q.tid {
		return false
	}
	if len(p.data) != len(q.data) {
		return false
	}
	for i := range p.data {
		if p.data[i] != q.data[i] {
			return false
		}
	}
	return true
}
