// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xswire

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOp reports that an incoming packet's op code is not a member
	// of the 21-tag registry. Non-recoverable on the connection it came from.
	ErrUnknownOp = errors.New("xswire: unknown xenstore operation id")

	// ErrParseFailure reports that a reply payload could not be decoded into
	// the shape its op requires.
	ErrParseFailure = errors.New("xswire: parse failure")

	// ErrPacketMismatch reports that a reply packet's op differs from the
	// request's op and the reply is not itself an Error packet.
	ErrPacketMismatch = errors.New("xswire: packet mismatch")

	// ErrEndOfStream reports that the underlying channel returned zero bytes.
	ErrEndOfStream = errors.New("xswire: the xenstore connection has closed")

	// ErrInvalidArgument names a nil channel or other unusable configuration,
	// mirroring the teacher framer's own sentinel for the same situation. No
	// function in this package returns it; NewPacketStream does not check its
	// arguments.
	ErrInvalidArgument = errors.New("xswire: invalid argument")

	// ErrTooLong reports an attempt to construct or marshal a Packet whose
	// payload exceeds XenstorePayloadMax.
	ErrTooLong = errors.New("xswire: payload too long")

	// ErrIllegalPayload reports a programmer error: marshaling a Request
	// payload variant that is illegal to send as a request (Watchevent, Error).
	ErrIllegalPayload = errors.New("xswire: illegal payload for this direction")
)

// InvalidPathError reports that a path violates length, emptiness, or
// character-class rules.
type InvalidPathError struct {
	Path   string
	Reason string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("xswire: invalid path %q: %s", e.Path, e.Reason)
}

// InvalidCharError reports a path element containing a byte outside the
// permitted alphabet [A-Za-z0-9_-@].
type InvalidCharError struct {
	Element string
	Char    byte
}

func (e *InvalidCharError) Error() string {
	return fmt.Sprintf("xswire: invalid character %q in path element %q", e.Char, e.Element)
}

// ServerErrorKind classifies a server-reported Error packet.
type ServerErrorKind uint8

const (
	// ServerErrorGeneric covers any error token not otherwise classified.
	ServerErrorGeneric ServerErrorKind = iota
	// ServerErrorEnoent means the server signaled a missing key.
	ServerErrorEnoent
	// ServerErrorEagain means the caller's transaction must be retried.
	ServerErrorEagain
	// ServerErrorInvalid means the server signaled a malformed request.
	ServerErrorInvalid
)

// ServerError wraps a server-signaled Error-op reply, classified by its
// canonical error token (ENOENT, EAGAIN, EINVAL) when recognized.
type ServerError struct {
	Kind ServerErrorKind
	// Hint is the caller-supplied debug label identifying the request that failed.
	Hint string
	// Msg is the raw payload string the server sent.
	Msg string
}

func (e *ServerError) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("xswire: server error: %s", e.Msg)
	}
	return fmt.Sprintf("xswire: %s: server error: %s", e.Hint, e.Msg)
}

// classifyServerError maps a raw server error token to a ServerErrorKind.
func classifyServerError(msg string) ServerErrorKind {
	switch msg {
	case "ENOENT":
		return ServerErrorEnoent
	case "EAGAIN":
		return ServerErrorEagain
	case "EINVAL":
		return ServerErrorInvalid
	default:
		return ServerErrorGeneric
	}
}
