package planar

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowBytes(t *testing.T) {
	assert.Equal(t, 2, RowBytes(1))
	assert.Equal(t, 2, RowBytes(16))
	assert.Equal(t, 4, RowBytes(17))
	assert.Equal(t, 40, RowBytes(320))

	assert.Equal(t, 1, MinRowBytes(1))
	assert.Equal(t, 2, MinRowBytes(16))
	assert.Equal(t, 3, MinRowBytes(17))
	assert.Equal(t, 40, MinRowBytes(320))
}

func TestToChunky(t *testing.T) {
	// 8x1, two planes; plane 0 contributes the least significant bit.
	// Rows are still padded to a full word.
	interleaved := []byte{
		0xaa, 0x00, // plane 0: 10101010
		0xcc, 0x00, // plane 1: 11001100
	}

	chunky := ToChunky(interleaved, 8, 1, 2)
	assert.Equal(t, []byte{3, 2, 3, 2, 1, 0, 1, 0}, chunky)
}

func TestDoubleBits(t *testing.T) {
	in := []byte{0x01, 0x02, 0x0d, 0x0f, 0x00, 0xfd}
	out := DoubleBits(in)
	// The upper input nibble is ignored.
	assert.Equal(t, []byte{0x03, 0x0c, 0xf3, 0xff, 0x00, 0xf3}, out)
}

func randomInterleaved(rnd *rand.Rand, width, height, numPlanes int) []byte {
	rowBytes := RowBytes(width)
	minRow := MinRowBytes(width)
	buf := make([]byte, rowBytes*height*numPlanes)
	for row := 0; row < height*numPlanes; row++ {
		for i := 0; i < minRow; i++ {
			buf[row*rowBytes+i] = byte(rnd.Intn(256))
		}
	}
	// Mask the bits beyond width in the last used byte of each row so
	// a chunky round trip can reproduce the buffer exactly.
	if width&7 != 0 {
		mask := byte(0xff) << uint(8-width&7)
		for row := 0; row < height*numPlanes; row++ {
			buf[row*rowBytes+minRow-1] &= mask
		}
	}
	return buf
}

func TestInterleaveRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))

	for _, g := range []struct{ width, height, planes int }{
		{1, 1, 1},
		{16, 4, 1},
		{17, 3, 2},
		{320, 5, 5},
		{640, 2, 8},
	} {
		in := randomInterleaved(rnd, g.width, g.height, g.planes)

		planes := Deinterleave(in, g.width, g.height, g.planes)
		out := Interleave(planes, g.width, g.height, g.planes)
		assert.Equal(t, in, out, "geometry %+v", g)
	}
}

func TestChunkyRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))

	for _, g := range []struct{ width, height, planes int }{
		{8, 1, 2},
		{16, 4, 1},
		{33, 7, 4},
		{320, 3, 8},
	} {
		in := randomInterleaved(rnd, g.width, g.height, g.planes)

		chunky := ToChunky(in, g.width, g.height, g.planes)
		out := FromChunky(chunky, g.width, g.height, g.planes)
		assert.Equal(t, in, out, "geometry %+v", g)
	}
}

func TestTransposePlanes(t *testing.T) {
	// 16x4, one plane, column width 1: two byte-columns of four rows.
	src := []byte{
		0x10, 0x11, 0x12, 0x13, // column 0, rows 0..3
		0x20, 0x21, 0x22, 0x23, // column 1, rows 0..3
	}

	out := TransposePlanes(src, 16, 4, 1, 1)
	assert.Equal(t, []byte{
		0x10, 0x20,
		0x11, 0x21,
		0x12, 0x22,
		0x13, 0x23,
	}, out)
}

func TestTransposePlanesWideColumns(t *testing.T) {
	// Width 24 pixels: three minimal bytes per row, column width 2, so
	// two columns with the second only partly used.
	width, height := 24, 2
	assert.Equal(t, 2, Columns(width, 2))
	assert.Equal(t, 8, TransposedPlaneSize(width, height, 2))

	src := []byte{
		1, 2, 3, 4, // column 0: rows 0 and 1, two bytes each
		5, 6, 7, 8, // column 1
	}

	out := TransposePlanes(src, width, height, 1, 2)
	assert.Equal(t, []byte{
		1, 2, 5, 6,
		3, 4, 7, 8,
	}, out)
}

func TestPadPlanesSequential(t *testing.T) {
	// Width 20: minimal rows are 3 bytes, padded rows 4.
	src := []byte{
		1, 2, 3, // plane 0 row 0
		4, 5, 6, // plane 0 row 1
		7, 8, 9, // plane 1 row 0
		10, 11, 12, // plane 1 row 1
	}

	out := PadPlanes(src, 20, 2, 2, false)
	assert.Equal(t, []byte{
		1, 2, 3, 0,
		4, 5, 6, 0,
		7, 8, 9, 0,
		10, 11, 12, 0,
	}, out)
}

func TestPadPlanesInterleaved(t *testing.T) {
	src := []byte{
		1, 2, 3, // row 0 plane 0
		7, 8, 9, // row 0 plane 1
		4, 5, 6, // row 1 plane 0
		10, 11, 12, // row 1 plane 1
	}

	out := PadPlanes(src, 20, 2, 2, true)
	assert.Equal(t, []byte{
		1, 2, 3, 0,
		4, 5, 6, 0,
		7, 8, 9, 0,
		10, 11, 12, 0,
	}, out)
}

func TestInterleaveOrder(t *testing.T) {
	// Two planes of one padded row each: output is row-major with
	// planes adjacent.
	planes := []byte{
		1, 2, 3, 4, // plane 0, rows 0 and 1
		5, 6, 7, 8, // plane 1, rows 0 and 1
	}

	out := Interleave(planes, 16, 2, 2)
	assert.Equal(t, []byte{1, 2, 5, 6, 3, 4, 7, 8}, out)
}
