package xswire_test

import (
	"testing"

	xs "code.hybscloud.com/xswire"
)

func TestName_PredefinedRoundTrip(t *testing.T) {
	for _, lit := range []string{"@introduceDomain", "@releaseDomain"} {
		n, err := xs.ParseName(lit)
		if err != nil {
			t.Fatalf("ParseName(%q): %v", lit, err)
		}
		if got := n.String(); got != lit {
			t.Fatalf("ParseName(%q).String() = %q, want %q", lit, got, lit)
		}
		if _, ok := n.IsPredefined(); !ok {
			t.Fatalf("ParseName(%q).IsPredefined() = false, want true", lit)
		}
	}
}

func TestName_AbsoluteVsRelative(t *testing.T) {
	abs, err := xs.ParseName("/local/domain/0")
	if err != nil {
		t.Fatalf("ParseName: %v", err)
	}
	if _, ok := abs.IsAbsolute(); !ok {
		t.Fatalf("IsAbsolute() = false, want true")
	}
	if got := abs.String(); got != "/local/domain/0" {
		t.Fatalf("String() = %q, want %q", got, "/local/domain/0")
	}

	rel, err := xs.ParseName("local/domain/0")
	if err != nil {
		t.Fatalf("ParseName: %v", err)
	}
	if _, ok := rel.IsRelative(); !ok {
		t.Fatalf("IsRelative() = false, want true")
	}
	if got := rel.String(); got != "local/domain/0" {
		t.Fatalf("String() = %q, want %q", got, "local/domain/0")
	}
}

func TestName_ResolveRelativeLaws(t *testing.T) {
	basePath, _ := xs.ParsePath("local/domain/0")
	base := xs.AbsoluteName(basePath)

	relPath, _ := xs.ParsePath("data")
	rel := xs.RelativeName(relPath)

	resolved := xs.Resolve(rel, base)
	want := "/local/domain/0/data"
	if got := resolved.String(); got != want {
		t.Fatalf("Resolve() = %q, want %q", got, want)
	}

	// resolve(relative(t, base), base) == t when t is absolute and base is a prefix of t.
	full, _ := xs.ParseName("/local/domain/0/data/nested")
	r := xs.Relative(full, base)
	if _, ok := r.IsRelative(); !ok {
		t.Fatalf("Relative() did not produce a Relative name: %v", r)
	}
	back := xs.Resolve(r, base)
	if back.String() != full.String() {
		t.Fatalf("Resolve(Relative(t, base), base) = %q, want %q", back.String(), full.String())
	}
}

func TestName_ResolveNoOpWhenNotApplicable(t *testing.T) {
	// Resolve on an already-absolute name is a no-op.
	abs, _ := xs.ParseName("/a/b")
	base, _ := xs.ParseName("/x/y")
	if got := xs.Resolve(abs, base); got.String() != abs.String() {
		t.Fatalf("Resolve(absolute, _) = %q, want unchanged %q", got.String(), abs.String())
	}

	// Relative when base is not a prefix of t is a no-op.
	t1, _ := xs.ParseName("/a/b/c")
	base2, _ := xs.ParseName("/x/y")
	if got := xs.Relative(t1, base2); got.String() != t1.String() {
		t.Fatalf("Relative(t, non-prefix base) = %q, want unchanged %q", got.String(), t1.String())
	}

	// Relative when t is relative is a no-op.
	rel, _ := xs.ParseName("a/b")
	if got := xs.Relative(rel, base2); got.String() != rel.String() {
		t.Fatalf("Relative(relative-t, _) = %q, want unchanged %q", got.String(), rel.String())
	}
}
