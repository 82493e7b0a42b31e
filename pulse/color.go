package pulse

import "image/color"

var (
	ColorBlack  = ColorXRGB(0, 0, 0)
	ColorWhite  = ColorXRGB(255, 255, 255)
	ColorBlue   = ColorXRGB(0, 0, 255)
	ColorYellow = ColorXRGB(255, 255, 0)
)

// Color is a packed 32 bit ARGB color value, the layout of D3DCOLOR.
type Color uint32

// ColorARGB packs the given components into a Color.
func ColorARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// ColorXRGB packs a fully opaque color.
func ColorXRGB(r, g, b uint8) Color {
	return ColorARGB(0xff, r, g, b)
}

func (c Color) Alpha() uint8 {
	return uint8(c >> 24)
}

func (c Color) Red() uint8 {
	return uint8(c >> 16)
}

func (c Color) Green() uint8 {
	return uint8(c >> 8)
}

func (c Color) Blue() uint8 {
	return uint8(c)
}

// NRGBA converts the color into its non premultiplied image/color representation.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.Red(), G: c.Green(), B: c.Blue(), A: c.Alpha()}
}

// ColorOf converts any color.Color into a packed Color.
func ColorOf(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return ColorARGB(n.A, n.R, n.G, n.B)
}
