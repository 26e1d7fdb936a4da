// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xswire

import (
	"strconv"
	"strings"
)

// Token is an opaque string tagging a watch registration, returned with
// every matching watch event (§3 Token). Its wire form is "<prefix>:<suffix>":
// the prefix is an internal cookie (an id or epoch chosen by the watch
// registrar), the suffix is the caller-supplied label returned verbatim on
// decode (§9 OQ2).
type Token string

// NewToken builds a Token from an internal cookie and a caller-supplied
// suffix. This core has no clock or id source of its own — generating the
// cookie is left to whichever module owns watch registration.
func NewToken(prefix uint64, suffix string) Token {
	return Token(strconv.FormatUint(prefix, 10) + ":" + suffix)
}

// Suffix returns the user-supplied portion of the token, i.e. everything
// after the first ":". If t has no ":" the whole string is the suffix.
func (t Token) Suffix() string {
	_, suffix, ok := strings.Cut(string(t), ":")
	if !ok {
		return string(t)
	}
	return suffix
}

// Prefix returns the internal cookie portion of the token, or 0 if t does
// not have the "<prefix>:<suffix>" shape.
func (t Token) Prefix() uint64 {
	prefix, _, ok := strings.Cut(string(t), ":")
	if !ok {
		return 0
	}
	n, err := strconv.ParseUint(prefix, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func (t Token) String() string { return string(t) }
