// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xswire

import "fmt"

// Correlate decodes received against the request that produced it, per §4.9:
//
//  1. If received is an Error packet, decode its payload and return a
//     classified *ServerError.
//  2. Otherwise, if sent.Op() == received.Op(), invoke decode(received);
//     a false ok return becomes a generic parse error carrying hint and the
//     raw payload.
//  3. Otherwise, return ErrPacketMismatch naming both ops.
//
// hint is a caller-supplied debug label (e.g. the request kind) attached to
// any error raised.
func Correlate[T any](hint string, sent, received Packet, decode func(Packet) (T, bool)) (T, error) {
	var zero T

	if received.Op() == OpError {
		msg, _ := UnmarshalString(received)
		return zero, &ServerError{Kind: classifyServerError(msg), Hint: hint, Msg: msg}
	}

	if sent.Op() != received.Op() {
		return zero, fmt.Errorf("%w: %s: sent %s, received %s", ErrPacketMismatch, hint, sent.Op(), received.Op())
	}

	v, ok := decode(received)
	if !ok {
		return zero, fmt.Errorf("%w: %s: could not decode payload %q", ErrParseFailure, hint, received.Data())
	}
	return v, nil
}
