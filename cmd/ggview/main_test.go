package main

import "testing"

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		w, h    int
		wantErr bool
	}{
		{"1200x800", 1200, 800, false},
		{"640x480", 640, 480, false},
		{"800", 0, 0, true},
		{"x800", 0, 0, true},
		{"800x", 0, 0, true},
		{"0x600", 0, 0, true},
		{"800x-1", 0, 0, true},
		{"axb", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w, h, err := parseSize(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && (w != tt.w || h != tt.h) {
				t.Errorf("parseSize(%q) = %dx%d, want %dx%d", tt.in, w, h, tt.w, tt.h)
			}
		})
	}
}

func TestRootFlags(t *testing.T) {
	cmd := newRoot()
	for _, name := range []string{"size", "tile-limit", "texture-budget", "log-level", "log-file"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("flag --%s not registered", name)
		}
	}
	if err := cmd.Args(cmd, []string{}); err == nil {
		t.Error("no-argument invocation accepted")
	}
	if err := cmd.Args(cmd, []string{"a.png"}); err != nil {
		t.Errorf("single argument rejected: %v", err)
	}
}
