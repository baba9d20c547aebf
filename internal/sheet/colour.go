package sheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Colour is a host fill colour in the host's native BGR integer layout:
// blue in the high byte, red in the low byte. 65535 is yellow.
type Colour int32

// DefaultHighlight is the fill used for changed ranges when no colour is
// configured.
const DefaultHighlight Colour = 65535

// RGB builds a Colour from red, green and blue components.
func RGB(r, g, b uint8) Colour {
	return Colour(int32(b)<<16 | int32(g)<<8 | int32(r))
}

// Components returns the red, green and blue components.
func (c Colour) Components() (r, g, b uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16)
}

// Hex returns the colour as "RRGGBB".
func (c Colour) Hex() string {
	r, g, b := c.Components()
	return fmt.Sprintf("%02X%02X%02X", r, g, b)
}

// String implements fmt.Stringer.
func (c Colour) String() string {
	return "#" + c.Hex()
}

// ParseColour accepts a decimal host colour ("65535"), an HTML hex colour
// ("#FFFF00") or a W3C colour name ("yellow").
func ParseColour(s string) (Colour, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty colour")
	}

	if n, err := strconv.ParseInt(s, 10, 32); err == nil {
		if n < 0 || n > 0xFFFFFF {
			return 0, fmt.Errorf("colour %d out of range", n)
		}
		return Colour(n), nil
	}

	tc := tcell.GetColor(strings.ToLower(s))
	if tc == tcell.ColorDefault {
		return 0, fmt.Errorf("unknown colour %q", s)
	}
	r, g, b := tc.RGB()
	if r < 0 || g < 0 || b < 0 {
		return 0, fmt.Errorf("colour %q has no RGB value", s)
	}
	return RGB(uint8(r), uint8(g), uint8(b)), nil
}
