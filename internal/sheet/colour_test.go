package sheet

import "testing"

func TestParseColour(t *testing.T) {
	tests := []struct {
		in      string
		want    Colour
		wantErr bool
	}{
		{"65535", DefaultHighlight, false},
		{"#FFFF00", DefaultHighlight, false},
		{"#ff0000", RGB(255, 0, 0), false},
		{"yellow", DefaultHighlight, false},
		{"Red", RGB(255, 0, 0), false},
		{"", 0, true},
		{"-1", 0, true},
		{"16777216", 0, true},
		{"not-a-colour", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColour(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColour(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseColour(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColourComponents(t *testing.T) {
	c := RGB(0x12, 0x34, 0x56)
	r, g, b := c.Components()
	if r != 0x12 || g != 0x34 || b != 0x56 {
		t.Errorf("Components() = %x %x %x", r, g, b)
	}
	if c.Hex() != "123456" {
		t.Errorf("Hex() = %q, want 123456", c.Hex())
	}
}
