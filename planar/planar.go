/*
Package planar transforms raster data between the bitplane layouts
used by ILBM files and planar display hardware.

Three layouts are handled. Interleaved keeps the scanlines of all
planes for a given row adjacent: row 0 of plane 0, row 0 of plane 1,
and so on. Non-interleaved keeps each plane contiguous: all rows of
plane 0, then all rows of plane 1. Chunky stores one byte per pixel in
row-major order, with plane 0 contributing the least significant bit.

Every plane row occupies RowBytes(width) bytes, padded on the right to
a 16-bit word boundary as the ILBM BODY layout requires. Bits within a
byte are most-significant-bit first: pixel x=0 is bit 7 of byte 0.
*/
package planar

// RowBytes returns the word-aligned byte count per plane per row.
func RowBytes(width int) int {
	return (width + 15) / 16 * 2
}

// MinRowBytes returns the minimal byte count per plane per row,
// without word padding.
func MinRowBytes(width int) int {
	return (width + 7) / 8
}

// ToChunky converts an interleaved planar buffer to chunky layout,
// one byte per pixel. Bits beyond numPlanes are zero.
func ToChunky(interleaved []byte, width, height, numPlanes int) []byte {
	rowBytes := RowBytes(width)
	chunky := make([]byte, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var pixel byte
			for p := 0; p < numPlanes; p++ {
				b := interleaved[(y*numPlanes+p)*rowBytes+x>>3]
				pixel |= (b >> uint(7-x&7) & 1) << uint(p)
			}
			chunky[y*width+x] = pixel
		}
	}
	return chunky
}

// FromChunky converts a chunky buffer back to interleaved planar
// layout. Pixel values must fit in numPlanes bits; higher bits are
// discarded.
func FromChunky(chunky []byte, width, height, numPlanes int) []byte {
	rowBytes := RowBytes(width)
	interleaved := make([]byte, rowBytes*height*numPlanes)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pixel := chunky[y*width+x]
			for p := 0; p < numPlanes; p++ {
				if pixel>>uint(p)&1 != 0 {
					interleaved[(y*numPlanes+p)*rowBytes+x>>3] |= 1 << uint(7-x&7)
				}
			}
		}
	}
	return interleaved
}

// doubledNibble[v] spreads each of the low four bits of v over two
// adjacent output bits, for display modes that double pixels
// horizontally.
var doubledNibble = [16]byte{
	0x00, 0x03, 0x0c, 0x0f,
	0x30, 0x33, 0x3c, 0x3f,
	0xc0, 0xc3, 0xcc, 0xcf,
	0xf0, 0xf3, 0xfc, 0xff,
}

// DoubleBits returns a copy of the chunky buffer with the low nibble
// of every byte bit-doubled into a full byte. The upper nibble of the
// input is ignored.
func DoubleBits(chunky []byte) []byte {
	out := make([]byte, len(chunky))
	for i, v := range chunky {
		out[i] = doubledNibble[v&0x0f]
	}
	return out
}

// Deinterleave rearranges an interleaved buffer into non-interleaved
// (plane-major) layout. Row size is unchanged.
func Deinterleave(interleaved []byte, width, height, numPlanes int) []byte {
	rowBytes := RowBytes(width)
	planeSize := rowBytes * height
	out := make([]byte, planeSize*numPlanes)

	for p := 0; p < numPlanes; p++ {
		for y := 0; y < height; y++ {
			src := (y*numPlanes + p) * rowBytes
			dst := p*planeSize + y*rowBytes
			copy(out[dst:dst+rowBytes], interleaved[src:src+rowBytes])
		}
	}
	return out
}

// Interleave assembles a plane-major buffer of padded rows into
// interleaved layout, iterating rows outer and planes inner.
func Interleave(planes []byte, width, height, numPlanes int) []byte {
	rowBytes := RowBytes(width)
	planeSize := rowBytes * height
	out := make([]byte, planeSize*numPlanes)

	bo := 0
	for y := 0; y < height; y++ {
		for p := 0; p < numPlanes; p++ {
			src := p*planeSize + y*rowBytes
			copy(out[bo:bo+rowBytes], planes[src:src+rowBytes])
			bo += rowBytes
		}
	}
	return out
}

// PadPlanes normalizes raw input with minimal (unpadded) rows into a
// plane-major buffer with every row zero-padded to RowBytes(width).
// When interleaved is true the input rows are ordered row-major with
// planes adjacent, otherwise the input is plane-sequential.
func PadPlanes(src []byte, width, height, numPlanes int, interleaved bool) []byte {
	rowBytes := RowBytes(width)
	minRow := MinRowBytes(width)
	planeSize := rowBytes * height
	out := make([]byte, planeSize*numPlanes)

	if interleaved {
		so := 0
		for y := 0; y < height; y++ {
			for p := 0; p < numPlanes; p++ {
				dst := p*planeSize + y*rowBytes
				copy(out[dst:dst+minRow], src[so:so+minRow])
				so += minRow
			}
		}
		return out
	}

	for p := 0; p < numPlanes; p++ {
		for y := 0; y < height; y++ {
			so := p*minRow*height + y*minRow
			dst := p*planeSize + y*rowBytes
			copy(out[dst:dst+minRow], src[so:so+minRow])
		}
	}
	return out
}
