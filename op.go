// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xswire

import "fmt"

// Op is the closed set of XenStore wire operation tags. The wire code for a
// tag is its zero-based index in the order below; this order is part of the
// wire format and must never change.
type Op uint32

const (
	OpDebug Op = iota
	OpDirectory
	OpRead
	OpGetperms
	OpWatch
	OpUnwatch
	OpTransactionStart
	OpTransactionEnd
	OpIntroduce
	OpRelease
	OpGetdomainpath
	OpWrite
	OpMkdir
	OpRm
	OpSetperms
	OpWatchevent
	OpError
	OpIsintroduced
	OpResume
	OpSetTarget
	OpRestrict

	opCount
)

// allOps is the 21 tags in wire order; Op.Int() is the index into this slice.
var allOps = [opCount]Op{
	OpDebug, OpDirectory, OpRead, OpGetperms, OpWatch, OpUnwatch,
	OpTransactionStart, OpTransactionEnd, OpIntroduce, OpRelease,
	OpGetdomainpath, OpWrite, OpMkdir, OpRm, OpSetperms, OpWatchevent,
	OpError, OpIsintroduced, OpResume, OpSetTarget, OpRestrict,
}

var opNames = [opCount]string{
	"DEBUG", "DIRECTORY", "READ", "GET_PERMS", "WATCH", "UNWATCH",
	"TRANSACTION_START", "TRANSACTION_END", "INTRODUCE", "RELEASE",
	"GET_DOMAIN_PATH", "WRITE", "MKDIR", "RM", "SET_PERMS", "WATCH_EVENT",
	"ERROR", "IS_INTRODUCED", "RESUME", "SET_TARGET", "RESTRICT",
}

// Int returns the wire code for op.
func (op Op) Int() uint32 { return uint32(op) }

// String renders the op's canonical name, or a numeric placeholder if op is
// not a member of the registry.
func (op Op) String() string {
	if uint32(op) >= uint32(opCount) {
		return fmt.Sprintf("Op(%d)", uint32(op))
	}
	return opNames[op]
}

// valid reports whether op is a member of the 21-tag registry.
func (op Op) valid() bool { return uint32(op) < uint32(opCount) }

// ParseOp maps a wire code back to its Op. It fails, naming the offending
// integer, when code falls outside the registry — the only signal available
// that a peer is speaking an op set this library doesn't know.
func ParseOp(code uint32) (Op, error) {
	if code >= uint32(opCount) {
		return 0, fmt.Errorf("%w: Unknown xenstore operation id: %d", ErrUnknownOp, code)
	}
	return Op(code), nil
}

// AllOps returns the 21 tags in wire order.
func AllOps() []Op {
	out := make([]Op, len(allOps))
	copy(out, allOps[:])
	return out
}
