package grid

import (
	"encoding/json"
	"fmt"
)

// Color is an opaque, equality-comparable RGBA value. The zero value means
// "unset"; sections and supplements treat unset colors as "inherit" or
// "draw nothing". Compare with ==.
type Color struct {
	R, G, B, A uint8
	set        bool
}

// RGB creates a fully opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255, set: true}
}

// RGBA creates a color with an explicit alpha component.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a, set: true}
}

// Transparent is the sentinel "draw nothing" color. Metrics normalization
// collapses it to the unset zero value.
var Transparent = Color{set: true}

// IsSet returns false for the zero value.
func (c Color) IsSet() bool {
	return c.set
}

// Normalize collapses the transparent sentinel (any color with zero alpha)
// to the unset zero value. All metrics colors are normalized before layout.
func (c Color) Normalize() Color {
	if c.set && c.A == 0 {
		return Color{}
	}
	return c
}

// Hex returns "#RRGGBB" or "#RRGGBBAA" for translucent colors, and the
// empty string when unset.
func (c Color) Hex() string {
	if !c.set {
		return ""
	}
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// ParseColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA". The empty string
// parses to the unset color.
func ParseColor(s string) (Color, error) {
	if s == "" {
		return Color{}, nil
	}
	if s[0] != '#' {
		return Color{}, fmt.Errorf("color %q must start with '#'", s)
	}
	hex := s[1:]
	var r, g, b, a uint8
	a = 255
	switch len(hex) {
	case 3:
		if _, err := fmt.Sscanf(hex, "%1x%1x%1x", &r, &g, &b); err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		r, g, b = r*17, g*17, b*17
	case 6:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
	case 8:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
	default:
		return Color{}, fmt.Errorf("color %q must be #RGB, #RRGGBB or #RRGGBBAA", s)
	}
	return Color{R: r, G: g, B: b, A: a, set: true}, nil
}

// MarshalJSON emits the hex form, or null when unset.
func (c Color) MarshalJSON() ([]byte, error) {
	if !c.set {
		return []byte("null"), nil
	}
	return json.Marshal(c.Hex())
}

// UnmarshalJSON accepts null or a hex string.
func (c *Color) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Color{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
