package iffbpl

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/pawelmat/iffbpl/ilbm"
	"github.com/pawelmat/iffbpl/packbits"
	"github.com/pawelmat/iffbpl/pal"
	"github.com/pawelmat/iffbpl/planar"
)

// ErrInputSize means the raw input file length matches neither the
// bare plane data size nor the plane data size plus a trailing
// palette.
var ErrInputSize = errors.New("iffbpl: input file size mismatch")

// BuildOptions describe the geometry and memory layout of the raw
// input handed to Build.
type BuildOptions struct {
	// Width and Height in pixels, NumPlanes in 1..8.
	Width, Height, NumPlanes int

	// Interleaved marks the input rows as interleaved
	// (row0 plane0, row0 plane1, ...). Without it the input is
	// plane-sequential.
	Interleaved bool

	// ColumnWidth, when positive, marks the input as byte-column
	// transposed with strips of that many bytes. Takes precedence
	// over Interleaved.
	ColumnWidth int

	// PackBody compresses the BODY chunk with PackBits.
	PackBody bool
}

// Build converts the raw planar file at input into an ILBM file at
// output, appending ".iff" to the output name when missing. A file
// whose length exceeds the plane data by exactly 2*2^NumPlanes bytes
// is taken to carry a trailing palette of packed color register
// words; otherwise the default palette is synthesized.
func (c *Converter) Build(input, output string, opts BuildOptions) error {
	if opts.Width < 1 || opts.Height < 1 {
		return errors.New("iffbpl: width and height must be positive")
	}
	if opts.NumPlanes < 1 || opts.NumPlanes > 8 {
		return ilbm.ErrNumPlanes
	}
	if !strings.HasSuffix(output, ".iff") {
		output += ".iff"
	}

	var planeInputSize int
	if opts.ColumnWidth > 0 {
		planeInputSize = planar.TransposedPlaneSize(opts.Width, opts.Height, opts.ColumnWidth)
	} else {
		planeInputSize = planar.MinRowBytes(opts.Width) * opts.Height
	}

	expected := planeInputSize * opts.NumPlanes
	numColors := 1 << uint(opts.NumPlanes)
	paletteSize := numColors * 2

	data, err := ioutil.ReadFile(input)
	if err != nil {
		return err
	}

	var words []uint16
	switch len(data) {
	case expected:
	case expected + paletteSize:
		words = pal.ParseWords(data[expected:])
		data = data[:expected]
		c.logger.Printf("found palette with %d colours at offset %d\n", numColors, expected)
	default:
		return fmt.Errorf("%w: expected %d bytes (or %d with palette), got %d",
			ErrInputSize, expected, expected+paletteSize, len(data))
	}

	palette := pal.Default(numColors)
	if words != nil {
		warned := false
		for i, w := range words {
			if !pal.Valid(w) && !warned {
				c.logger.Printf("colour %d has non-zero leading bits (0x%04X), palette format might be incorrect\n", i, w)
				warned = true
			}
			palette[i] = pal.Color(w)
		}
	}

	var planes []byte
	if opts.ColumnWidth > 0 {
		planes = planar.TransposePlanes(data, opts.Width, opts.Height, opts.NumPlanes, opts.ColumnWidth)
	} else {
		planes = planar.PadPlanes(data, opts.Width, opts.Height, opts.NumPlanes, opts.Interleaved)
	}
	body := planar.Interleave(planes, opts.Width, opts.Height, opts.NumPlanes)

	w := ilbm.NewWriter()
	if err := w.WriteHeader(&ilbm.BMHD{
		Width:       uint16(opts.Width),
		Height:      uint16(opts.Height),
		NumPlanes:   uint8(opts.NumPlanes),
		Compression: ilbm.CompressNone, // patched below for PackBits
		XAspect:     1,
		YAspect:     1,
		PageWidth:   uint16(opts.Width),
		PageHeight:  uint16(opts.Height),
	}); err != nil {
		return err
	}
	w.WritePalette(palette)

	if opts.PackBody {
		rowBytes := planar.RowBytes(opts.Width)
		rows := opts.Height * opts.NumPlanes
		packed := make([]byte, 0, len(body))
		for row := 0; row < rows; row++ {
			packed = append(packed, packbits.Pack(body[row*rowBytes:(row+1)*rowBytes])...)
		}
		w.WriteBody(packed)
		w.SetCompression(ilbm.CompressPackBits)
	} else {
		w.WriteBody(body)
	}

	out, err := os.Create(output)
	if err != nil {
		return err
	}
	if _, err := w.WriteTo(out); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	c.logger.Printf("wrote ILBM file: %s\n", output)
	return nil
}
