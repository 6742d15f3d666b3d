package render

import "math"

// RGB is a 24-bit color
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
	RGBBlue  = RGB{0, 0, 255}
	RGBGreen = RGB{0, 255, 0}
	RGBRed   = RGB{255, 0, 0}
)

// RGBA implements color.Color with full opacity
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// channel converts a [0,255] float to uint8 by truncation, clamping out of range input
func channel(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}

// ValueToColor maps a scalar onto a blue -> green -> red gradient
// Input is clamped to [0,1], NaN is treated as 0
// [0,0.5) interpolates blue to green, [0.5,1] green to red
// Channels are truncated, not rounded
func ValueToColor(value float64) RGB {
	if math.IsNaN(value) || value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}

	if value < 0.5 {
		return RGB{
			B: channel(255 * (1 - 2*value)),
			G: channel(255 * 2 * value),
		}
	}
	return RGB{
		G: channel(255 * (2 - 2*value)),
		R: channel(255 * (2*value - 1)),
	}
}
