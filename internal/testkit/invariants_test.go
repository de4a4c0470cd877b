package testkit

import "testing"

func TestStripSGR(t *testing.T) {
	in := "\x1b[90mfile \x1b[38;2;214;92;92;1ma.ts\x1b[0m\x1b[90m 3:\x1b[0m"
	if got := StripSGR(in); got != "file a.ts 3:" {
		t.Fatalf("StripSGR = %q", got)
	}
}

func TestCheckFilteredChunk(t *testing.T) {
	cases := []struct {
		name      string
		out       string
		colored   bool
		keepClear bool
		ok        bool
	}{
		{"plain", "a.ts 3: oops\n", false, false, true},
		{"empty", "\n", false, false, true},
		{"colored", "\x1b[90mhello\x1b[0m\n", true, false, true},
		{"missing newline", "hello", false, false, false},
		{"clear screen", "\x1bchello\n", false, false, false},
		{"clear screen kept", "\x1bchello\n", false, true, true},
		{"colored without reset", "\x1b[90mhello\n", true, false, false},
		{"escape in plain mode", "\x1b[90mhello\x1b[0m\n", false, false, false},
		{"styled empty", "\x1b[90m\x1b[0m\n", true, false, false},
	}
	for _, tc := range cases {
		err := CheckFilteredChunk(tc.out, tc.colored, tc.keepClear)
		if (err == nil) != tc.ok {
			t.Fatalf("%s: CheckFilteredChunk(%q) = %v, want ok=%v", tc.name, tc.out, err, tc.ok)
		}
	}
}
