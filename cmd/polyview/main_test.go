package main

import "testing"

func TestParseBackground(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  uint32
		ok    bool
	}{
		{"default", "30,30,40", 0x1e1e28, true},
		{"full range", "255,0,128", 0xff0080, true},
		{"spaces tolerated", "10, 20, 30", 0x0a141e, true},
		{"black", "0,0,0", 0x000000, true},
		{"non-numeric component", "10,zz,30", 0, false},
		{"component over 255", "300,0,0", 0, false},
		{"negative component", "-1,0,0", 0, false},
		{"too few components", "10,20", 0, false},
		{"too many components", "10,20,30,40", 0, false},
		{"trailing garbage", "10,20,30junk", 0, false},
		{"empty", "", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseBackground(tc.input)
			if tc.ok != (err == nil) {
				t.Fatalf("parseBackground(%q) error = %v, want ok=%v", tc.input, err, tc.ok)
			}
			if tc.ok && got != tc.want {
				t.Errorf("parseBackground(%q) = %#06x, want %#06x", tc.input, got, tc.want)
			}
		})
	}
}
