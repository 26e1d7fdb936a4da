// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xswire

import "fmt"

// okLiteral is the three-byte "OK\0" payload shared by ack-only replies (§6).
var okLiteral = []byte("OK\x00")

// Response is the sealed sum type of response payload variants (§4.7).
type Response interface {
	isResponse()
	// responseOp names the Op this payload renders on the wire.
	responseOp() Op
}

type RespRead struct{ Value []byte }
type RespDirectory struct{ Entries []string }
type RespGetperms struct{ ACL ACL }
type RespGetdomainpath struct{ Path string }
type RespTransactionStart struct{ Tid uint32 }
type RespIsintroduced struct{ Value bool }
type RespWatchevent struct {
	Path  string
	Token Token
}
type RespError struct{ Msg string }
type RespDebug struct{ Items []string }

// ack-only acknowledgements: one type per Op that replies with the literal "OK".
type RespWrite struct{}
type RespMkdir struct{}
type RespRm struct{}
type RespSetperms struct{}
type RespWatch struct{}
type RespUnwatch struct{}
type RespTransactionEnd struct{}
type RespIntroduce struct{}
type RespResume struct{}
type RespRelease struct{}
type RespSetTarget struct{}
type RespRestrict struct{}

func (RespRead) isResponse()             {}
func (RespDirectory) isResponse()        {}
func (RespGetperms) isResponse()         {}
func (RespGetdomainpath) isResponse()    {}
func (RespTransactionStart) isResponse() {}
func (RespIsintroduced) isResponse()     {}
func (RespWatchevent) isResponse()       {}
func (RespError) isResponse()            {}
func (RespDebug) isResponse()            {}
func (RespWrite) isResponse()            {}
func (RespMkdir) isResponse()            {}
func (RespRm) isResponse()               {}
func (RespSetperms) isResponse()         {}
func (RespWatch) isResponse()            {}
func (RespUnwatch) isResponse()          {}
func (RespTransactionEnd) isResponse()   {}
func (RespIntroduce) isResponse()        {}
func (RespResume) isResponse()           {}
func (RespRelease) isResponse()          {}
func (RespSetTarget) isResponse()        {}
func (RespRestrict) isResponse()         {}

func (RespRead) responseOp() Op             { return OpRead }
func (RespDirectory) responseOp() Op        { return OpDirectory }
func (RespGetperms) responseOp() Op         { return OpGetperms }
func (RespGetdomainpath) responseOp() Op    { return OpGetdomainpath }
func (RespTransactionStart) responseOp() Op { return OpTransactionStart }
func (RespIsintroduced) responseOp() Op     { return OpIsintroduced }
func (RespWatchevent) responseOp() Op       { return OpWatchevent }
func (RespError) responseOp() Op            { return OpError }
func (RespDebug) responseOp() Op            { return OpDebug }
func (RespWrite) responseOp() Op            { return OpWrite }
func (RespMkdir) responseOp() Op            { return OpMkdir }
func (RespRm) responseOp() Op               { return OpRm }
func (RespSetperms) responseOp() Op         { return OpSetperms }
func (RespWatch) responseOp() Op            { return OpWatch }
func (RespUnwatch) responseOp() Op          { return OpUnwatch }
func (RespTransactionEnd) responseOp() Op   { return OpTransactionEnd }
func (RespIntroduce) responseOp() Op        { return OpIntroduce }
func (RespResume) responseOp() Op           { return OpResume }
func (RespRelease) responseOp() Op          { return OpRelease }
func (RespSetTarget) responseOp() Op        { return OpSetTarget }
func (RespRestrict) responseOp() Op         { return OpRestrict }

// MarshalResponse builds the Packet for v, carrying v.responseOp() and the
// payload bytes prescribed by §4.7.
func MarshalResponse(v Response, tid, rid uint32) Packet {
	var payload []byte
	switch r := v.(type) {
	case RespRead:
		payload = r.Value
	case RespDirectory:
		payload = joinNULTerminated(r.Entries)
	case RespGetperms:
		payload = oneStringPayload(r.ACL.Marshal())
	case RespGetdomainpath:
		payload = oneStringPayload(r.Path)
	case RespTransactionStart:
		payload = oneStringPayload(domidString(r.Tid))
	case RespIsintroduced:
		payload = oneStringPayload(boolString(r.Value))
	case RespWatchevent:
		payload = twoStringsPayload(r.Path, r.Token.String())
	case RespError:
		payload = oneStringPayload(r.Msg)
	case RespDebug:
		payload = joinNULTerminated(r.Items)
	default:
		payload = okLiteral
	}
	buf := make([]byte, len(payload))
	copy(buf, payload)
	return Packet{ty: v.responseOp(), rid: rid, tid: tid, data: buf}
}

// --- §4.8 unmarshal helpers: typed accessors on a reply Packet ---

// UnmarshalString returns the raw payload with a trailing NUL trimmed.
func UnmarshalString(p Packet) (string, bool) {
	return string(p.Data()), true
}

// UnmarshalList returns the payload NUL-split into a list of strings.
func UnmarshalList(p Packet) ([]string, bool) {
	return splitNULTerminated(p.DataRaw()), true
}

// UnmarshalACL decodes the payload as an ACL.
func UnmarshalACL(p Packet) (ACL, bool) {
	return ParseACL(string(p.Data()))
}

// UnmarshalInt decodes the payload as a decimal integer using the
// permissive domid parser (§4.6).
func UnmarshalInt(p Packet) (uint32, bool) {
	return parseDomidPermissive(string(p.Data()))
}

// UnmarshalInt32 is UnmarshalInt reinterpreted as a signed 32-bit value.
func UnmarshalInt32(p Packet) (int32, bool) {
	n, ok := UnmarshalInt(p)
	return int32(n), ok
}

// UnmarshalUnit reports whether p carries an empty payload.
func UnmarshalUnit(p Packet) (struct{}, bool) {
	return struct{}{}, p.Len() == 0
}

// UnmarshalOK reports whether p's payload is exactly the "OK\0" literal.
func UnmarshalOK(p Packet) (struct{}, bool) {
	raw := p.DataRaw()
	if len(raw) != len(okLiteral) {
		return struct{}{}, false
	}
	for i := range raw {
		if raw[i] != okLiteral[i] {
			return struct{}{}, false
		}
	}
	return struct{}{}, true
}

// ParseResponse decodes a reply Packet's payload according to its Op,
// returning the typed Response or a parse error. This is the inverse of
// MarshalResponse for every non-ack-only variant; ack-only variants decode
// by checking the payload is the "OK" literal.
func ParseResponse(p Packet) (Response, error) {
	switch p.Op() {
	case OpRead:
		return RespRead{Value: p.Data()}, nil
	case OpDirectory:
		if p.Len() == 0 {
			return RespDirectory{}, nil
		}
		entries, _ := UnmarshalList(p)
		return RespDirectory{Entries: entries}, nil
	case OpGetperms:
		acl, ok := UnmarshalACL(p)
		if !ok {
			return nil, fmt.Errorf("%w: malformed ACL in getperms reply", ErrParseFailure)
		}
		return RespGetperms{ACL: acl}, nil
	case OpGetdomainpath:
		s, ok := UnmarshalString(p)
		if !ok {
			return nil, fmt.Errorf("%w: malformed get-domain-path reply", ErrParseFailure)
		}
		return RespGetdomainpath{Path: s}, nil
	case OpTransactionStart:
		tid, ok := UnmarshalInt(p)
		if !ok {
			return nil, fmt.Errorf("%w: malformed transaction-start reply", ErrParseFailure)
		}
		return RespTransactionStart{Tid: tid}, nil
	case OpIsintroduced:
		s, _ := UnmarshalString(p)
		b, ok := parseBool(s)
		if !ok {
			return nil, fmt.Errorf("%w: malformed is-introduced reply", ErrParseFailure)
		}
		return RespIsintroduced{Value: b}, nil
	case OpWatchevent:
		path, tok, err := twoStrings(p.DataRaw())
		if err != nil {
			return nil, err
		}
		return RespWatchevent{Path: path, Token: Token(trimTrailingNUL([]byte(tok)))}, nil
	case OpError:
		s, _ := UnmarshalString(p)
		return RespError{Msg: s}, nil
	case OpDebug:
		items, _ := UnmarshalList(p)
		return RespDebug{Items: items}, nil
	case OpWrite:
		if _, ok := UnmarshalOK(p); !ok {
			return nil, fmt.Errorf("%w: write reply is not OK", ErrParseFailure)
		}
		return RespWrite{}, nil
	case OpMkdir:
		if _, ok := UnmarshalOK(p); !ok {
			return nil, fmt.Errorf("%w: mkdir reply is not OK", ErrParseFailure)
		}
		return RespMkdir{}, nil
	case OpRm:
		if _, ok := UnmarshalOK(p); !ok {
			return nil, fmt.Errorf("%w: rm reply is not OK", ErrParseFailure)
		}
		return RespRm{}, nil
	case OpSetperms:
		if _, ok := UnmarshalOK(p); !ok {
			return nil, fmt.Errorf("%w: setperms reply is not OK", ErrParseFailure)
		}
		return RespSetperms{}, nil
	case OpWatch:
		if _, ok := UnmarshalOK(p); !ok {
			return nil, fmt.Errorf("%w: watch reply is not OK", ErrParseFailure)
		}
		return RespWatch{}, nil
	case OpUnwatch:
		if _, ok := UnmarshalOK(p); !ok {
			return nil, fmt.Errorf("%w: unwatch reply is not OK", ErrParseFailure)
		}
		return RespUnwatch{}, nil
	case OpTransactionEnd:
		if _, ok := UnmarshalOK(p); !ok {
			return nil, fmt.Errorf("%w: transaction-end reply is not OK", ErrParseFailure)
		}
		return RespTransactionEnd{}, nil
	case OpIntroduce:
		if _, ok := UnmarshalOK(p); !ok {
			return nil, fmt.Errorf("%w: introduce reply is not OK", ErrParseFailure)
		}
		return RespIntroduce{}, nil
	case OpResume:
		if _, ok := UnmarshalOK(p); !ok {
			return nil, fmt.Errorf("%w: resume reply is not OK", ErrParseFailure)
		}
		return RespResume{}, nil
	case OpRelease:
		if _, ok := UnmarshalOK(p); !ok {
			return nil, fmt.Errorf("%w: release reply is not OK", ErrParseFailure)
		}
		return RespRelease{}, nil
	case OpSetTarget:
		if _, ok := UnmarshalOK(p); !ok {
			return nil, fmt.Errorf("%w: set-target reply is not OK", ErrParseFailure)
		}
		return RespSetTarget{}, nil
	case OpRestrict:
		if _, ok := UnmarshalOK(p); !ok {
			return nil, fmt.Errorf("%w: restrict reply is not OK", ErrParseFailure)
		}
		return RespRestrict{}, nil
	default:
		return nil, fmt.Errorf("%w: op %s is not a response", ErrParseFailure, p.Op())
	}
}
