package catalog

import "testing"

func TestMap(t *testing.T) {
	cases := []struct {
		in   string
		want Category
	}{
		{"classic-clog", Clogs},
		{"Classic Clog", Clogs},
		{"  CLOGS  ", Clogs},
		{"everyday-sneaker", Sneakers},
		{"trainers", Sneakers},
		{"arch-insole", Insoles},
		{"gift-card", Other},
		{"mystery product", Other},
		{"", None},
		{"   ", None},
	}

	for _, tc := range cases {
		if got := Map(tc.in); got != tc.want {
			t.Errorf("Map(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMapIsTotal(t *testing.T) {
	// Every non-empty input yields a defined category.
	for _, in := range []string{"x", "12345", "!!!", "never-seen-before"} {
		if got := Map(in); got == None {
			t.Errorf("Map(%q) returned None for non-empty input", in)
		}
	}
}

func TestCombinable(t *testing.T) {
	if Combinable(Other) {
		t.Error("Other must be excluded from combinatorics")
	}
	if Combinable(None) {
		t.Error("None must be excluded from combinatorics")
	}
	for _, c := range Purchasable {
		if !Combinable(c) {
			t.Errorf("%q should be combinable", c)
		}
	}
}
