// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xswire

import (
	"bytes"
	"fmt"
)

// Request is the sealed sum type of request payload variants (§4.6). Each
// concrete type below implements it; the set is closed the same way Op and
// Name are: an unexported marker method plus an exhaustive switch in
// MarshalRequest and ParseRequest.
type Request interface {
	isRequest()
}

type ReqRead struct{ Path string }
type ReqDirectory struct{ Path string }
type ReqGetperms struct{ Path string }
type ReqMkdir struct{ Path string }
type ReqRm struct{ Path string }
type ReqWrite struct {
	Path  string
	Value []byte
}
type ReqSetperms struct {
	Path string
	ACL  ACL
}
type ReqGetdomainpath struct{ Domid uint32 }
type ReqTransactionStart struct{}
type ReqTransactionEnd struct{ Commit bool }
type ReqWatch struct {
	Path  string
	Token Token
}
type ReqUnwatch struct {
	Path  string
	Token Token
}
type ReqDebug struct{ Items []string }
type ReqIntroduce struct {
	Domid uint32
	Mfn   uint64
	Port  uint32
}
type ReqResume struct{ Domid uint32 }
type ReqRelease struct{ Domid uint32 }
type ReqRestrict struct{ Domid uint32 }
type ReqIsintroduced struct{ Domid uint32 }
type ReqSetTarget struct {
	Mine  uint32
	Yours uint32
}

// ReqWatchevent and ReqErrorPayload exist only so that MarshalRequest has
// something concrete to reject: these two shapes are legal Response
// payloads but illegal to send as a Request (§4.6 table, §7).
type ReqWatchevent struct {
	Path  string
	Token Token
}
type ReqErrorPayload struct{ Msg string }

func (ReqRead) isRequest()             {}
func (ReqDirectory) isRequest()        {}
func (ReqGetperms) isRequest()         {}
func (ReqMkdir) isRequest()            {}
func (ReqRm) isRequest()               {}
func (ReqWrite) isRequest()            {}
func (ReqSetperms) isRequest()         {}
func (ReqGetdomainpath) isRequest()    {}
func (ReqTransactionStart) isRequest() {}
func (ReqTransactionEnd) isRequest()   {}
func (ReqWatch) isRequest()            {}
func (ReqUnwatch) isRequest()          {}
func (ReqDebug) isRequest()            {}
func (ReqIntroduce) isRequest()        {}
func (ReqResume) isRequest()           {}
func (ReqRelease) isRequest()          {}
func (ReqRestrict) isRequest()         {}
func (ReqIsintroduced) isRequest()     {}
func (ReqSetTarget) isRequest()        {}
func (ReqWatchevent) isRequest()       {}
func (ReqErrorPayload) isRequest()     {}

// isTransactional reports whether r's Op carries the caller's tid through
// unmodified. Everything else is forced to tid 0 (§4.6).
func isTransactional(r Request) bool {
	switch r.(type) {
	case ReqRead, ReqDirectory, ReqGetperms, ReqMkdir, ReqRm, ReqWrite, ReqSetperms, ReqTransactionEnd:
		return true
	default:
		return false
	}
}

// MarshalRequest builds the Packet for r, choosing Op from r's shape and
// zeroing tid when r is non-transactional regardless of the tid argument.
// Marshaling ReqWatchevent or ReqErrorPayload is a programmer error: these
// are legal Response shapes only.
func MarshalRequest(r Request, tid, rid uint32) (Packet, error) {
	if !isTransactional(r) {
		tid = 0
	}

	var op Op
	var payload []byte

	switch v := r.(type) {
	case ReqRead:
		op, payload = OpRead, oneStringPayload(v.Path)
	case ReqDirectory:
		op, payload = OpDirectory, oneStringPayload(v.Path)
	case ReqGetperms:
		op, payload = OpGetperms, oneStringPayload(v.Path)
	case ReqMkdir:
		op, payload = OpMkdir, oneStringPayload(v.Path)
	case ReqRm:
		op, payload = OpRm, oneStringPayload(v.Path)
	case ReqWrite:
		op = OpWrite
		payload = append(append([]byte(v.Path), 0), v.Value...)
	case ReqSetperms:
		op = OpSetperms
		payload = append(append([]byte(v.Path), 0), append([]byte(v.ACL.Marshal()), 0)...)
	case ReqGetdomainpath:
		op, payload = OpGetdomainpath, oneStringPayload(domidString(v.Domid))
	case ReqTransactionStart:
		op, payload = OpTransactionStart, nil
	case ReqTransactionEnd:
		op = OpTransactionEnd
		payload = oneStringPayload(boolString(v.Commit))
	case ReqWatch:
		op = OpWatch
		payload = twoStringsPayload(v.Path, v.Token.String())
	case ReqUnwatch:
		op = OpUnwatch
		payload = twoStringsPayload(v.Path, v.Token.String())
	case ReqDebug:
		op, payload = OpDebug, joinNULTerminated(v.Items)
	case ReqIntroduce:
		op = OpIntroduce
		payload = joinNULTerminated([]string{domidString(v.Domid), fmt.Sprintf("%d", v.Mfn), fmt.Sprintf("%d", v.Port)})
	case ReqResume:
		op, payload = OpResume, oneStringPayload(domidString(v.Domid))
	case ReqRelease:
		op, payload = OpRelease, oneStringPayload(domidString(v.Domid))
	case ReqRestrict:
		op, payload = OpRestrict, oneStringPayload(domidString(v.Domid))
	case ReqIsintroduced:
		op, payload = OpIsintroduced, oneStringPayload(domidString(v.Domid))
	case ReqSetTarget:
		op = OpSetTarget
		payload = twoStringsPayload(domidString(v.Mine), domidString(v.Yours))
	default:
		return Packet{}, ErrIllegalPayload
	}

	return NewPacket(op, rid, tid, payload)
}

// ParseRequest decodes a request Packet's payload according to its Op,
// returning the typed Request or a parse error.
func ParseRequest(p Packet) (Request, error) {
	data := p.DataRaw()
	switch p.Op() {
	case OpRead:
		s, err := oneString(data)
		return ReqRead{Path: s}, err
	case OpDirectory:
		s, err := oneString(data)
		return ReqDirectory{Path: s}, err
	case OpGetperms:
		s, err := oneString(data)
		return ReqGetperms{Path: s}, err
	case OpMkdir:
		s, err := oneString(data)
		return ReqMkdir{Path: s}, err
	case OpRm:
		s, err := oneString(data)
		return ReqRm{Path: s}, err
	case OpWrite:
		idx := bytes.IndexByte(data, 0)
		if idx < 0 {
			return nil, fmt.Errorf("%w: write payload missing NUL separator", ErrParseFailure)
		}
		return ReqWrite{Path: string(data[:idx]), Value: append([]byte(nil), data[idx+1:]...)}, nil
	case OpSetperms:
		path, rest, ok := splitOnce(data)
		if !ok {
			return nil, fmt.Errorf("%w: setperms payload missing NUL separator", ErrParseFailure)
		}
		acl, ok := ParseACL(string(trimTrailingNUL(rest)))
		if !ok {
			return nil, fmt.Errorf("%w: malformed ACL in setperms payload", ErrParseFailure)
		}
		return ReqSetperms{Path: string(path), ACL: acl}, nil
	case OpGetdomainpath:
		s, err := oneString(data)
		if err != nil {
			return nil, err
		}
		d, _ := parseDomidPermissive(s)
		return ReqGetdomainpath{Domid: d}, nil
	case OpTransactionStart:
		if len(data) != 0 {
			return nil, fmt.Errorf("%w: transaction-start payload must be empty", ErrParseFailure)
		}
		return ReqTransactionStart{}, nil
	case OpTransactionEnd:
		s, err := oneString(data)
		if err != nil {
			return nil, err
		}
		commit, ok := parseBool(s)
		if !ok {
			return nil, fmt.Errorf("%w: transaction-end payload must be T or F", ErrParseFailure)
		}
		return ReqTransactionEnd{Commit: commit}, nil
	case OpWatch:
		path, rest, ok := splitOnce(data)
		if !ok {
			return nil, fmt.Errorf("%w: watch payload missing NUL separator", ErrParseFailure)
		}
		return ReqWatch{Path: string(path), Token: Token(trimTrailingNUL(rest))}, nil
	case OpUnwatch:
		path, rest, ok := splitOnce(data)
		if !ok {
			return nil, fmt.Errorf("%w: unwatch payload missing NUL separator", ErrParseFailure)
		}
		return ReqUnwatch{Path: string(path), Token: Token(trimTrailingNUL(rest))}, nil
	case OpDebug:
		return ReqDebug{Items: splitNULTerminated(data)}, nil
	case OpIntroduce:
		items := splitNULTerminated(data)
		if len(items) != 3 {
			return nil, fmt.Errorf("%w: introduce payload must have 3 fields", ErrParseFailure)
		}
		d, _ := parseDomidPermissive(items[0])
		mfn, _ := parseDomidPermissive(items[1])
		port, _ := parseDomidPermissive(items[2])
		return ReqIntroduce{Domid: d, Mfn: uint64(mfn), Port: port}, nil
	case OpResume:
		s, err := oneString(data)
		if err != nil {
			return nil, err
		}
		d, _ := parseDomidPermissive(s)
		return ReqResume{Domid: d}, nil
	case OpRelease:
		s, err := oneString(data)
		if err != nil {
			return nil, err
		}
		d, _ := parseDomidPermissive(s)
		return ReqRelease{Domid: d}, nil
	case OpRestrict:
		s, err := oneString(data)
		if err != nil {
			return nil, err
		}
		d, _ := parseDomidPermissive(s)
		return ReqRestrict{Domid: d}, nil
	case OpIsintroduced:
		s, err := oneString(data)
		if err != nil {
			return nil, err
		}
		d, _ := parseDomidPermissive(s)
		return ReqIsintroduced{Domid: d}, nil
	case OpSetTarget:
		mine, rest, ok := splitOnce(data)
		if !ok {
			return nil, fmt.Errorf("%w: set-target payload missing NUL separator", ErrParseFailure)
		}
		yours := trimTrailingNUL(rest)
		m, _ := parseDomidPermissive(string(mine))
		y, _ := parseDomidPermissive(string(yours))
		return ReqSetTarget{Mine: m, Yours: y}, nil
	default:
		return nil, fmt.Errorf("%w: op %s is not a request", ErrParseFailure, p.Op())
	}
}

// --- payload encode/decode helpers shared with response.go ---

func oneStringPayload(s string) []byte {
	return append([]byte(s), 0)
}

func twoStringsPayload(a, b string) []byte {
	out := append([]byte(a), 0)
	out = append(out, b...)
	return append(out, 0)
}

func joinNULTerminated(items []string) []byte {
	var out []byte
	for _, it := range items {
		out = append(out, it...)
		out = append(out, 0)
	}
	return out
}

func splitNULTerminated(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	parts := bytes.Split(data, []byte{0})
	// A trailing NUL produces a trailing empty part; drop it.
	if len(parts) > 0 && len(parts[len(parts)-1]) == 0 {
		parts = parts[:len(parts)-1]
	}
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = string(p)
	}
	return out
}

func splitOnce(data []byte) (a, b []byte, ok bool) {
	idx := bytes.IndexByte(data, 0)
	if idx < 0 {
		return nil, nil, false
	}
	return data[:idx], data[idx+1:], true
}

func trimTrailingNUL(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == 0 {
		return b[:len(b)-1]
	}
	return b
}

// oneString requires exactly "x<NUL>" (x itself contains no NUL) and yields x.
func oneString(data []byte) (string, error) {
	if len(data) == 0 || data[len(data)-1] != 0 {
		return "", fmt.Errorf("%w: payload is not NUL-terminated", ErrParseFailure)
	}
	body := data[:len(data)-1]
	if bytes.IndexByte(body, 0) >= 0 {
		return "", fmt.Errorf("%w: payload has more than one field", ErrParseFailure)
	}
	return string(body), nil
}

// twoStrings splits once on NUL yielding (a, b); fails if no NUL is present.
func twoStrings(data []byte) (a, b string, err error) {
	aa, bb, ok := splitOnce(data)
	if !ok {
		return "", "", fmt.Errorf("%w: payload missing NUL separator", ErrParseFailure)
	}
	return string(aa), string(bb), nil
}

func parseBool(s string) (bool, bool) {
	switch s {
	case "T":
		return true, true
	case "F":
		return false, true
	default:
		return false, false
	}
}

func boolString(b bool) string {
	if b {
		return "T"
	}
	return "F"
}

func domidString(d uint32) string {
	return fmt.Sprintf("%d", d)
}

// parseDomidPermissive is the permissive decimal parser named in §4.6 and
// §9 OQ3: it skips leading non-digit bytes, then reads digits. Whether this
// tolerance is required for peer compatibility or an artifact of the
// reference implementation is unresolved upstream; implemented as specified.
func parseDomidPermissive(s string) (uint32, bool) {
	i := 0
	for i < len(s) && (s[i] < '0' || s[i] > '9') {
		i++
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if i == j {
		return 0, false
	}
	var n uint64
	for k := i; k < j; k++ {
		n = n*10 + uint64(s[k]-'0')
	}
	return uint32(n), true
}
