// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xswire

import (
	"strconv"
	"strings"
)

// Perm is one of NONE, READ, WRITE, RDWR (§3 ACL.perm).
type Perm uint8

const (
	PermNone Perm = iota
	PermRead
	PermWrite
	PermRDWR
)

// Byte returns the single-character wire code for perm.
func (perm Perm) Byte() byte {
	switch perm {
	case PermRead:
		return 'r'
	case PermWrite:
		return 'w'
	case PermRDWR:
		return 'b'
	default:
		return 'n'
	}
}

func (perm Perm) String() string { return string(perm.Byte()) }

// ParsePerm maps a single-character wire code back to a Perm. It fails on
// any byte outside {n, r, w, b}.
func ParsePerm(c byte) (Perm, bool) {
	switch c {
	case 'n':
		return PermNone, true
	case 'r':
		return PermRead, true
	case 'w':
		return PermWrite, true
	case 'b':
		return PermRDWR, true
	default:
		return 0, false
	}
}

// DomPerm pairs a domain id with a permission, used for ACL per-domain
// overrides.
type DomPerm struct {
	Domid uint32
	Perm  Perm
}

// ACL is the owner + default + per-domain override permission set attached
// to a store node (§3 ACL.t).
type ACL struct {
	Owner   uint32
	Other   Perm
	Entries []DomPerm
}

// Marshal emits "<char><domid>" entries, NUL-separated, owner-first with
// Other as the owner entry's permission character, followed by per-domain
// overrides (§4.4).
func (a ACL) Marshal() string {
	var b strings.Builder
	b.WriteByte(a.Other.Byte())
	b.WriteString(strconv.FormatUint(uint64(a.Owner), 10))
	for _, e := range a.Entries {
		b.WriteByte(0)
		b.WriteByte(e.Perm.Byte())
		b.WriteString(strconv.FormatUint(uint64(e.Domid), 10))
	}
	return b.String()
}

// ParseACL splits s on NUL and parses each "<char><digits>" entry. It
// rejects entries shorter than 2 bytes or carrying an unrecognized
// permission character, returning ok=false on any failure. The empty string
// yields the zero-value ACL (owner 0, Other NONE, no overrides) per §4.4's
// zero-entries edge case.
func ParseACL(s string) (ACL, bool) {
	if s == "" {
		return ACL{}, true
	}
	parts := strings.Split(s, "\x00")
	var out ACL
	for i, part := range parts {
		if len(part) < 2 {
			return ACL{}, false
		}
		perm, ok := ParsePerm(part[0])
		if !ok {
			return ACL{}, false
		}
		domid, err := strconv.ParseUint(part[1:], 10, 32)
		if err != nil {
			return ACL{}, false
		}
		if i == 0 {
			out.Owner = uint32(domid)
			out.Other = perm
			continue
		}
		out.Entries = append(out.Entries, DomPerm{Domid: uint32(domid), Perm: perm})
	}
	return out, true
}
