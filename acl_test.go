package xswire_test

import (
	"testing"

	xs "code.hybscloud.com/xswire"
)

func TestACL_RoundTrip(t *testing.T) {
	cases := []xs.ACL{
		{Owner: 0, Other: xs.PermNone},
		{Owner: 1, Other: xs.PermRDWR},
		{Owner: 3, Other: xs.PermRead, Entries: []xs.DomPerm{{Domid: 5, Perm: xs.PermWrite}}},
		{Owner: 7, Other: xs.PermWrite, Entries: []xs.DomPerm{
			{Domid: 1, Perm: xs.PermRead},
			{Domid: 2, Perm: xs.PermRDWR},
			{Domid: 3, Perm: xs.PermNone},
		}},
	}
	for _, a := range cases {
		s := a.Marshal()
		got, ok := xs.ParseACL(s)
		if !ok {
			t.Fatalf("ParseACL(%q): failed to parse", s)
		}
		if got.Owner != a.Owner || got.Other != a.Other || len(got.Entries) != len(a.Entries) {
			t.Fatalf("ParseACL(Marshal(%+v)) = %+v", a, got)
		}
		for i := range a.Entries {
			if got.Entries[i] != a.Entries[i] {
				t.Fatalf("entry %d: got %+v, want %+v", i, got.Entries[i], a.Entries[i])
			}
		}
	}
}

func TestACL_EmptyStringYieldsZeroValue(t *testing.T) {
	got, ok := xs.ParseACL("")
	if !ok {
		t.Fatalf("ParseACL(\"\") failed")
	}
	if got.Owner != 0 || got.Other != xs.PermNone || len(got.Entries) != 0 {
		t.Fatalf("ParseACL(\"\") = %+v, want zero value", got)
	}
}

func TestACL_RejectsMalformed(t *testing.T) {
	cases := []string{"x", "r", "z5", "r\x00x"}
	for _, s := range cases {
		if _, ok := xs.ParseACL(s); ok {
			t.Fatalf("ParseACL(%q): want failure", s)
		}
	}
}

func TestACL_MarshalOwnerFirst(t *testing.T) {
	a := xs.ACL{Owner: 9, Other: xs.PermRead, Entries: []xs.DomPerm{{Domid: 2, Perm: xs.PermWrite}}}
	got := a.Marshal()
	want := "r9\x00w2"
	if got != want {
		t.Fatalf("Marshal() = %q, want %q", got, want)
	}
}

func TestPerm_Codes(t *testing.T) {
	cases := map[xs.Perm]byte{
		xs.PermNone: 'n',
		xs.PermRead: 'r',
		xs.PermWrite: 'w',
		xs.PermRDWR: 'b',
	}
	for perm, want := range cases {
		if got := perm.Byte(); got != want {
			t.Fatalf("%v.Byte() = %q, want %q", perm, got, want)
		}
		parsed, ok := xs.ParsePerm(want)
		if !ok || parsed != perm {
			t.Fatalf("ParsePerm(%q) = %v,%v want %v,true", want, parsed, ok, perm)
		}
	}
	if _, ok := xs.ParsePerm('x'); ok {
		t.Fatalf("ParsePerm('x'): want failure")
	}
}
