package config

import "testing"

func TestTrimSourceExt(t *testing.T) {
	cases := map[string]string{
		"greet.aster": "greet",
		"greet.cnl":   "greet",
		"greet.txt":   "greet.txt",
		"greet":       "greet",
	}
	for in, want := range cases {
		if got := TrimSourceExt(in); got != want {
			t.Errorf("TrimSourceExt(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHasSourceExt(t *testing.T) {
	cases := map[string]bool{
		"greet.aster":      true,
		"path/to/mod.cnl":  true,
		"greet.txt":        false,
		"greet":            false,
		"aster":            false,
	}
	for in, want := range cases {
		if got := HasSourceExt(in); got != want {
			t.Errorf("HasSourceExt(%q) = %v, want %v", in, got, want)
		}
	}
}
