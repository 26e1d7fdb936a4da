// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package xswire implements the core of the XenStore wire protocol: binary
// framing, an incremental packet parser, a typed request/response message
// algebra, the path/name grammar, the access-control list encoding, and a
// transport-agnostic packet stream that can be driven over any byte-oriented
// full-duplex channel.
//
// XenStore is a request/response protocol used between a hypervisor control
// plane and guest domains to exchange small hierarchical key/value state.
// This package owns the wire format and the message algebra; it does not
// route, dispatch, authorize, persist, retry, or multiplex concurrent
// clients, and it does not own a transport's lifecycle or log anything
// itself. Those concerns belong to modules that consume the Request,
// Response, Packet, Parser, and PacketStream types this package exposes.
//
// Wire format: a 16-byte little-endian header (op, request id, transaction
// id, payload length) followed by up to XenstorePayloadMax bytes of
// payload. Op codes 0..20 are a closed, ordered registry (see Op); payload
// shapes are enumerated per-Op in Request and Response.
//
// Concurrency: Packet is value-like and safe to copy or share. Parser is a
// single-owner mutable state machine; it must not be driven from more than
// one goroutine. PacketStream assumes at most one outstanding Send and one
// outstanding Recv at a time — it does not lock, and the caller is
// responsible for serializing calls on each side.
package xswire
