package ilbm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/pawelmat/iffbpl/pal"
	"github.com/pawelmat/iffbpl/planar"
)

const maxColors = 256

// Writer stages a FORM ILBM chunk stream in memory. Staging allows
// the FORM size placeholder and the BMHD compression byte to be
// patched once the BODY is known, before anything reaches the
// underlying writer. Chunks must be staged in BMHD, CMAP, BODY order.
type Writer struct {
	buf            bytes.Buffer
	compressionOff int
}

// NewWriter returns a Writer with the FORM/ILBM preamble and size
// placeholder already staged.
func NewWriter() *Writer {
	w := &Writer{}
	w.buf.WriteString(formTag)
	w.buf.Write([]byte{0, 0, 0, 0}) // patched by WriteTo
	w.buf.WriteString(ilbmTag)
	return w
}

func (w *Writer) chunkHeader(tag string, size uint32) {
	var b [4]byte
	w.buf.WriteString(tag)
	binary.BigEndian.PutUint32(b[:], size)
	w.buf.Write(b[:])
}

func (w *Writer) pad(size uint32) {
	if size&1 != 0 {
		w.buf.WriteByte(0)
	}
}

// WriteHeader stages the BMHD chunk and remembers where the
// compression byte landed so SetCompression can patch it later.
func (w *Writer) WriteHeader(h *BMHD) error {
	w.chunkHeader(bmhdTag, BMHDSize)
	w.compressionOff = w.buf.Len() + 10 // width through masking precede it
	return h.write(&w.buf)
}

// WritePalette stages the CMAP chunk, padding it when 3*len(p) is odd.
func (w *Writer) WritePalette(p []pal.RGB) {
	size := uint32(3 * len(p))
	w.chunkHeader(cmapTag, size)
	for _, c := range p {
		w.buf.Write([]byte{c.R, c.G, c.B})
	}
	w.pad(size)
}

// WriteBody stages the BODY chunk, padding it when len(body) is odd.
func (w *Writer) WriteBody(body []byte) {
	size := uint32(len(body))
	w.chunkHeader(bodyTag, size)
	w.buf.Write(body)
	w.pad(size)
}

// SetCompression patches the compression byte inside the staged BMHD.
func (w *Writer) SetCompression(c uint8) {
	w.buf.Bytes()[w.compressionOff] = c
}

// WriteTo patches the FORM size and flushes the staged stream to out.
// The FORM size is the file length minus the 8 bytes of FORM tag and
// size field.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	b := w.buf.Bytes()
	binary.BigEndian.PutUint32(b[4:8], uint32(len(b)-8))
	n, err := out.Write(b)
	return int64(n), err
}

// Encode writes the Image m to w as an uncompressed ILBM. Images that
// are not paletted, or that carry more than 256 colors, are quantized
// first.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		return errors.New("ilbm: empty image")
	}

	pm, _ := m.(*image.Paletted)
	if pm == nil {
		if cp, ok := m.ColorModel().(color.Palette); ok && len(cp) <= maxColors {
			pm = image.NewPaletted(b, cp)
			draw.Draw(pm, b, m, b.Min, draw.Src)
		}
	}
	if pm == nil || len(pm.Palette) > maxColors {
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(b, q.Quantize(make(color.Palette, 0, maxColors), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}

	// Adjust image so that top-left corner is at (0, 0)
	if pm.Rect.Min != (image.Point{}) {
		dup := *pm
		dup.Rect = dup.Rect.Sub(dup.Rect.Min)
		pm = &dup
	}

	numPlanes := 1
	for 1<<uint(numPlanes) < len(pm.Palette) {
		numPlanes++
	}

	width, height := b.Dx(), b.Dy()
	chunky := make([]byte, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			chunky[y*width+x] = pm.ColorIndexAt(x, y)
		}
	}

	palette := make([]pal.RGB, 1<<uint(numPlanes))
	for i := range palette {
		if i < len(pm.Palette) {
			palette[i] = pal.FromColor(pm.Palette[i])
		}
	}

	iw := NewWriter()
	if err := iw.WriteHeader(&BMHD{
		Width:      uint16(width),
		Height:     uint16(height),
		NumPlanes:  uint8(numPlanes),
		XAspect:    1,
		YAspect:    1,
		PageWidth:  uint16(width),
		PageHeight: uint16(height),
	}); err != nil {
		return err
	}
	iw.WritePalette(palette)
	iw.WriteBody(planar.FromChunky(chunky, width, height, numPlanes))

	_, err := iw.WriteTo(w)
	return err
}
