// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xswire

import "strings"

// Predefined is the sum of watch-name sentinels referring to domain
// lifecycle events rather than store paths.
type Predefined uint8

const (
	// IntroduceDomain is the literal "@introduceDomain" sentinel.
	IntroduceDomain Predefined = iota
	// ReleaseDomain is the literal "@releaseDomain" sentinel.
	ReleaseDomain
)

func (p Predefined) String() string {
	switch p {
	case IntroduceDomain:
		return "@introduceDomain"
	case ReleaseDomain:
		return "@releaseDomain"
	default:
		return ""
	}
}

// nameKind discriminates Name's sum-type cases.
type nameKind uint8

const (
	nameKindRelative nameKind = iota
	nameKindPredefined
	nameKindAbsolute
)

// Name is a sum of Predefined(IntroduceDomain|ReleaseDomain), Absolute(Path),
// and Relative(Path) (§3 Name.t, §4.5). The zero value is the empty relative
// path (the root, relative).
type Name struct {
	kind       nameKind
	predefined Predefined
	path       Path
}

// PredefinedName wraps a predefined sentinel as a Name.
func PredefinedName(p Predefined) Name {
	return Name{kind: nameKindPredefined, predefined: p}
}

// AbsoluteName wraps path as an absolute Name.
func AbsoluteName(path Path) Name {
	return Name{kind: nameKindAbsolute, path: path}
}

// RelativeName wraps path as a relative Name.
func RelativeName(path Path) Name {
	return Name{kind: nameKindRelative, path: path}
}

// IsPredefined reports whether n is one of the predefined sentinels, and
// returns it when so.
func (n Name) IsPredefined() (Predefined, bool) {
	if n.kind == nameKindPredefined {
		return n.predefined, true
	}
	return 0, false
}

// IsAbsolute reports whether n is an absolute path, and returns it when so.
func (n Name) IsAbsolute() (Path, bool) {
	if n.kind == nameKindAbsolute {
		return n.path, true
	}
	return Path{}, false
}

// IsRelative reports whether n is a relative path, and returns it when so.
func (n Name) IsRelative() (Path, bool) {
	if n.kind == nameKindRelative {
		return n.path, true
	}
	return Path{}, false
}

// ParseName recognizes the two predefined sentinels exactly; otherwise a
// leading "/" selects Absolute, and anything else selects Relative.
func ParseName(s string) (Name, error) {
	switch s {
	case IntroduceDomain.String():
		return PredefinedName(IntroduceDomain), nil
	case ReleaseDomain.String():
		return PredefinedName(ReleaseDomain), nil
	}
	path, err := ParsePath(s)
	if err != nil {
		return Name{}, err
	}
	if strings.HasPrefix(s, "/") {
		return AbsoluteName(path), nil
	}
	return RelativeName(path), nil
}

// String renders n back to its canonical wire form.
func (n Name) String() string {
	switch n.kind {
	case nameKindPredefined:
		return n.predefined.String()
	case nameKindAbsolute:
		return "/" + n.path.String()
	default:
		return n.path.String()
	}
}

// Resolve rewrites a Relative n against relativeTo: when n is Relative and
// relativeTo is Absolute, the result is Absolute(relativeTo ++ n).
// Otherwise n is returned unchanged (§4.5).
func Resolve(n, relativeTo Name) Name {
	rel, isRel := n.IsRelative()
	if !isRel {
		return n
	}
	base, isAbs := relativeTo.IsAbsolute()
	if !isAbs {
		return n
	}
	joined := base
	for _, e := range rel.Elements() {
		joined = joined.Join(e)
	}
	return AbsoluteName(joined)
}

// Relative rewrites an Absolute n against base: when both are Absolute and
// base is a prefix of n, the result is Relative(n - base). Otherwise n is
// returned unchanged (§4.5).
func Relative(n, base Name) Name {
	nPath, isAbs := n.IsAbsolute()
	if !isAbs {
		return n
	}
	basePath, baseIsAbs := base.IsAbsolute()
	if !baseIsAbs {
		return n
	}
	suffix, ok := isPrefixOf(basePath, nPath)
	if !ok {
		return n
	}
	rel := Path{}
	for _, e := range suffix {
		rel = rel.Join(e)
	}
	return RelativeName(rel)
}
