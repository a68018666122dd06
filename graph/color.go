package graph

import "image/color"

// Theme names one of the fixed chart palettes.
type Theme uint8

const (
	ThemeMixed Theme = iota
	ThemeBlue
	ThemePurple
)

var palettes = map[Theme][]color.NRGBA{
	ThemeMixed: {
		{R: 0xa4, G: 0x63, B: 0x3a, A: 0xff},
		{R: 0x85, G: 0x76, B: 0x25, A: 0xff}, //#857625
		{R: 0x51, G: 0x85, B: 0x4d, A: 0xff}, //#51854d
		{R: 0x2b, G: 0x7f, B: 0xa8, A: 0xff}, //#2b7fa8
		{R: 0x72, G: 0x6c, B: 0xae, A: 0xff}, //#726cae
		{R: 0x97, G: 0x5f, B: 0x91, A: 0xff}, //975f91
		{R: 0xc1, G: 0x4d, B: 0x4d, A: 0xff},
		{R: 0x3c, G: 0x99, B: 0x8e, A: 0xff},
		{R: 0xb5, G: 0x85, B: 0x3f, A: 0xff},
		{R: 0x60, G: 0x60, B: 0x60, A: 0xff},
	},
	ThemeBlue: {
		{R: 0x0f, G: 0x2d, B: 0x5c, A: 0xff},
		{R: 0x15, G: 0x41, B: 0x7e, A: 0xff},
		{R: 0x1d, G: 0x58, B: 0xa0, A: 0xff},
		{R: 0x2b, G: 0x7f, B: 0xa8, A: 0xff},
		{R: 0x4d, G: 0x9f, B: 0xc4, A: 0xff},
		{R: 0x7f, G: 0xbf, B: 0xd9, A: 0xff},
		{R: 0xb3, G: 0xdc, B: 0xeb, A: 0xff},
	},
	ThemePurple: {
		{R: 0x2e, G: 0x1a, B: 0x47, A: 0xff},
		{R: 0x44, G: 0x28, B: 0x6d, A: 0xff},
		{R: 0x5c, G: 0x3a, B: 0x8e, A: 0xff},
		{R: 0x72, G: 0x6c, B: 0xae, A: 0xff},
		{R: 0x93, G: 0x70, B: 0xc4, A: 0xff},
		{R: 0xb2, G: 0x96, B: 0xd9, A: 0xff},
		{R: 0xd3, G: 0xc0, B: 0xeb, A: 0xff},
	},
}

// ColorFor maps a series' canonical ordinal to a display color. The
// palette wraps when there are more series than entries, so the same
// (theme, index) pair always yields the same color.
func ColorFor(theme Theme, index int) color.NRGBA {
	palette, ok := palettes[theme]
	if !ok {
		palette = palettes[ThemeMixed]
	}
	return palette[index%len(palette)]
}
