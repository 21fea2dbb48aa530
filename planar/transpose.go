package planar

// Some toolchains emit plane data in vertical byte strips rather than
// horizontal scanlines: each strip is colWidth bytes wide and height
// rows tall, and strips are stored one after another. Transposing
// reorders those bytes into row-major padded rows.

// Columns returns the number of byte-columns of colWidth bytes needed
// to cover one minimal row.
func Columns(width, colWidth int) int {
	return (MinRowBytes(width) + colWidth - 1) / colWidth
}

// TransposedPlaneSize returns the byte count one plane occupies in
// column-major input form.
func TransposedPlaneSize(width, height, colWidth int) int {
	return Columns(width, colWidth) * colWidth * height
}

// TransposePlanes reorders column-major plane data into a plane-major
// buffer with rows padded to RowBytes(width). The byte at column c,
// row y, offset b within the strip moves from source index
// (c*height+y)*colWidth+b to destination index y*RowBytes+c*colWidth+b
// of its plane. Padding bytes stay zero.
func TransposePlanes(src []byte, width, height, numPlanes, colWidth int) []byte {
	rowBytes := RowBytes(width)
	columns := Columns(width, colWidth)
	planeInputSize := columns * colWidth * height
	planeSize := rowBytes * height
	out := make([]byte, planeSize*numPlanes)

	for p := 0; p < numPlanes; p++ {
		srcPlane := src[p*planeInputSize : (p+1)*planeInputSize]
		dstPlane := out[p*planeSize : (p+1)*planeSize]
		for c := 0; c < columns; c++ {
			for y := 0; y < height; y++ {
				for b := 0; b < colWidth; b++ {
					didx := y*rowBytes + c*colWidth + b
					if didx >= planeSize {
						continue
					}
					dstPlane[didx] = srcPlane[(c*height+y)*colWidth+b]
				}
			}
		}
	}
	return out
}
