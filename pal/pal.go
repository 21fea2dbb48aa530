/*
Package pal converts between 24-bit RGB palette entries and the packed
12-bit color register words used by the target display hardware.

A register word is laid out as 0x0RGB; the high nibble is always zero
and the remaining three nibbles hold the 4-bit red, green and blue
components. Words are stored big-endian on disk.
*/
package pal

import (
	"encoding/binary"
	"image/color"
)

// RGB is a 24-bit palette entry as found in a CMAP chunk.
type RGB struct {
	R, G, B uint8
}

// RGBA implements the color.Color interface.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// FromColor truncates a color.Color to a 24-bit palette entry.
func FromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}

// Word quantizes each component to 4 bits and packs the result as a
// 0RGB register word.
func Word(c RGB) uint16 {
	return uint16(c.R>>4)<<8 | uint16(c.G>>4)<<4 | uint16(c.B>>4)
}

// Color expands a 0RGB register word back to a 24-bit palette entry.
// Each nibble is scaled by 17 so that 0xf maps to 0xff. The high
// nibble of w is ignored; callers that care should check Valid first.
func Color(w uint16) RGB {
	return RGB{
		R: uint8(w>>8&0x0f) * 17,
		G: uint8(w>>4&0x0f) * 17,
		B: uint8(w&0x0f) * 17,
	}
}

// Valid reports whether the high nibble of the register word is zero.
func Valid(w uint16) bool {
	return w&0xf000 == 0
}

// Default returns the palette synthesized when the input carries none:
// entry 0 is black, every other entry is white.
func Default(n int) []RGB {
	p := make([]RGB, n)
	for i := 1; i < n; i++ {
		p[i] = RGB{0xff, 0xff, 0xff}
	}
	return p
}

// AppendWords appends each entry of p to dst as a big-endian 0RGB word.
func AppendWords(dst []byte, p []RGB) []byte {
	var tmp [2]byte
	for _, c := range p {
		binary.BigEndian.PutUint16(tmp[:], Word(c))
		dst = append(dst, tmp[:]...)
	}
	return dst
}

// ParseWords interprets data as a sequence of big-endian register
// words. A trailing odd byte is ignored.
func ParseWords(data []byte) []uint16 {
	words := make([]uint16, 0, len(data)/2)
	for i := 0; i+2 <= len(data); i += 2 {
		words = append(words, binary.BigEndian.Uint16(data[i:]))
	}
	return words
}
