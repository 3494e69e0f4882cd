package hexid

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		id   uint
		want string
	}{
		{0, "#0"},
		{10, "#A"},
		{255, "#FF"},
		{6699, "#1A2B"},
	}
	for _, tc := range cases {
		if got := Format(tc.id); got != tc.want {
			t.Errorf("Format(%d) = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		in      string
		want    uint
		wantErr bool
	}{
		{"#1A2B", 6699, false},
		{"1A2B", 6699, false},
		{"1a2b", 6699, false},
		{" #ff ", 255, false},
		{"0", 0, false},
		{"", 0, true},
		{"#", 0, true},
		{"zzz", 0, true},
		{"#-1", 0, true},
		{"0x10", 0, true},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Parse(%q) err = %v, want ErrInvalid", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, id := range []uint{0, 1, 15, 16, 255, 4096, 6699, 1<<31 - 1, 1 << 40, 1<<63 - 1} {
		got, err := Parse(Format(id))
		if err != nil {
			t.Fatalf("Parse(Format(%d)): %v", id, err)
		}
		if got != id {
			t.Fatalf("round trip %d -> %q -> %d", id, Format(id), got)
		}
	}
}
