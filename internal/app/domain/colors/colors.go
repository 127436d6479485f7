package colors

import "strconv"

// RGB is an 8-bit per channel color triple.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Default is the neutral gray used for senders without a color
// and for system messages.
var Default = RGB{R: 0xAD, G: 0xAD, B: 0xB8}

// FromHex parses a 3- or 6-digit hex color, with or without a leading '#'.
// A 3-digit value expands by digit doubling ("f0a" -> "ff00aa"). Anything
// else yields the neutral default and false.
func FromHex(hex string) (RGB, bool) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}

	if len(hex) == 3 {
		expanded := make([]byte, 6)
		for i := range 3 {
			expanded[2*i] = hex[i]
			expanded[2*i+1] = hex[i]
		}
		hex = string(expanded)
	}

	if len(hex) != 6 {
		return Default, false
	}

	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Default, false
	}

	return RGB{
		R: uint8(val >> 16 & 0xFF),
		G: uint8(val >> 8 & 0xFF),
		B: uint8(val & 0xFF),
	}, true
}
