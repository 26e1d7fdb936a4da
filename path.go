// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xswire

import (
	"fmt"
	"strings"
)

// PathMaxLen is the maximum encoded path length in bytes (§3 Path.t).
const PathMaxLen = 1024

// isPathChar reports whether c belongs to the path-element alphabet
// [A-Za-z0-9_-@].
func isPathChar(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '_' || c == '-' || c == '@':
		return true
	default:
		return false
	}
}

// Path is an ordered sequence of non-empty elements. The zero value is the
// empty path, which denotes the root.
type Path struct {
	elements []string
}

// Elements returns the path's elements in order. The returned slice is
// owned by the caller.
func (p Path) Elements() []string {
	out := make([]string, len(p.elements))
	copy(out, p.elements)
	return out
}

// IsRoot reports whether p is the empty path.
func (p Path) IsRoot() bool { return len(p.elements) == 0 }

// ParsePath validates and parses a path string. It rejects empty input,
// input longer than PathMaxLen bytes, and any segment containing a byte
// outside the path-element alphabet. A leading "/" is accepted (and
// dropped) here; callers working with Name should use ParseName to get
// absolute/relative discrimination.
func ParsePath(s string) (Path, error) {
	if len(s) == 0 {
		return Path{}, &InvalidPathError{Path: s, Reason: "empty path"}
	}
	if len(s) > PathMaxLen {
		return Path{}, &InvalidPathError{Path: s, Reason: fmt.Sprintf("exceeds maximum length %d", PathMaxLen)}
	}
	trimmed := strings.TrimPrefix(s, "/")
	if trimmed == "" {
		// "/" alone, or the empty string after a leading slash, is the root.
		return Path{}, nil
	}
	parts := strings.Split(trimmed, "/")
	elements := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return Path{}, &InvalidPathError{Path: s, Reason: "empty path element"}
		}
		for i := 0; i < len(part); i++ {
			if !isPathChar(part[i]) {
				return Path{}, &InvalidCharError{Element: part, Char: part[i]}
			}
		}
		elements = append(elements, part)
	}
	return Path{elements: elements}, nil
}

// String renders the path back to its canonical relative form: elements
// joined by "/". The root renders as the empty string.
func (p Path) String() string {
	return strings.Join(p.elements, "/")
}

// Dirname drops the last element. The root's dirname is itself.
func (p Path) Dirname() Path {
	if len(p.elements) == 0 {
		return p
	}
	return Path{elements: append([]string(nil), p.elements[:len(p.elements)-1]...)}
}

// Basename returns the last element, or "" for the root.
func (p Path) Basename() string {
	if len(p.elements) == 0 {
		return ""
	}
	return p.elements[len(p.elements)-1]
}

// Join appends name as a new element, returning the child path.
func (p Path) Join(name string) Path {
	return Path{elements: append(append([]string(nil), p.elements...), name)}
}

// WalkPath folds fn left-to-right over every element of p, starting from init.
func WalkPath[T any](p Path, init T, fn func(acc T, element string) T) T {
	acc := init
	for _, e := range p.elements {
		acc = fn(acc, e)
	}
	return acc
}

// FoldPath folds fn over every non-empty prefix of p in increasing length,
// starting from init. The prefixes are themselves Paths.
func FoldPath[T any](p Path, init T, fn func(acc T, prefix Path) T) T {
	acc := init
	for i := 1; i <= len(p.elements); i++ {
		acc = fn(acc, Path{elements: p.elements[:i]})
	}
	return acc
}

// IterPath calls fn once per non-empty prefix of p, in increasing length order.
func IterPath(p Path, fn func(prefix Path)) {
	FoldPath(p, struct{}{}, func(acc struct{}, prefix Path) struct{} {
		fn(prefix)
		return acc
	})
}

// CommonPrefix returns the longest path that is a prefix of both a and b.
func CommonPrefix(a, b Path) Path {
	n := len(a.elements)
	if len(b.elements) < n {
		n = len(b.elements)
	}
	i := 0
	for i < n && a.elements[i] == b.elements[i] {
		i++
	}
	return Path{elements: append([]string(nil), a.elements[:i]...)}
}

// isPrefixOf reports whether base is a prefix of p, returning the suffix
// elements when it is.
func isPrefixOf(base, p Path) (suffix []string, ok bool) {
	if len(base.elements) > len(p.elements) {
		return nil, false
	}
	for i, e := range base.elements {
		if p.elements[i] != e {
			return nil, false
		}
	}
	return p.elements[len(base.elements):], true
}
