package ilbm

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"io"
	"io/ioutil"
	"log"

	"github.com/pawelmat/iffbpl/packbits"
	"github.com/pawelmat/iffbpl/pal"
	"github.com/pawelmat/iffbpl/planar"
)

func init() {
	image.RegisterFormat("ilbm", "FORM????ILBM", Decode, DecodeConfig)
}

// File holds the chunks of interest collected from a FORM ILBM
// stream. When the same chunk appears more than once, the last one
// wins.
type File struct {
	Header  *BMHD
	Palette []pal.RGB // nil when no CMAP chunk was present
	Body    []byte    // nil when no BODY chunk was present
}

// Parse reads a FORM ILBM stream and collects the BMHD, CMAP and BODY
// chunks. Unrecognized chunks are skipped. Chunks after the last
// complete one are ignored, as some writers leave trailing bytes.
func Parse(r io.Reader) (*File, error) {
	var head [12]byte
	if err := readFull(r, head[:]); err != nil {
		return nil, ErrFormat
	}
	if string(head[0:4]) != formTag || string(head[8:12]) != ilbmTag {
		return nil, ErrFormat
	}

	f := &File{}
	var hdr [8]byte
	for {
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			// Clean or ragged end of the chunk stream.
			break
		}
		tag := string(hdr[0:4])
		size := binary.BigEndian.Uint32(hdr[4:8])
		padded := paddedSize(size)

		switch tag {
		case bmhdTag:
			if size < BMHDSize {
				return nil, fmt.Errorf("ilbm: BMHD chunk too small (%d bytes)", size)
			}
			payload, err := readChunk(r, tag, padded)
			if err != nil {
				return nil, err
			}
			h := &BMHD{}
			if err := h.read(bytes.NewReader(payload)); err != nil {
				return nil, err
			}
			f.Header = h
		case cmapTag:
			payload, err := readChunk(r, tag, padded)
			if err != nil {
				return nil, err
			}
			n := int(size) / 3
			p := make([]pal.RGB, n)
			for i := 0; i < n; i++ {
				p[i] = pal.RGB{
					R: payload[i*3+0],
					G: payload[i*3+1],
					B: payload[i*3+2],
				}
			}
			f.Palette = p
		case bodyTag:
			payload, err := readChunk(r, tag, padded)
			if err != nil {
				return nil, err
			}
			f.Body = payload[:size]
		default:
			if _, err := io.CopyN(ioutil.Discard, r, int64(padded)); err != nil {
				return nil, fmt.Errorf("ilbm: chunk %q size %d exceeds file bounds", tag, size)
			}
		}
	}

	return f, nil
}

func readChunk(r io.Reader, tag string, padded uint32) ([]byte, error) {
	payload := make([]byte, padded)
	if err := readFull(r, payload); err != nil {
		return nil, fmt.Errorf("ilbm: chunk %q size %d exceeds file bounds", tag, padded)
	}
	return payload, nil
}

// InterleavedBody returns the BODY data in uncompressed interleaved
// form, always RowBytes(width)*height*numPlanes bytes long. For
// PackBits bodies each scanline is decompressed against a budget of
// one padded row; a scanline that does not produce exactly RowBytes
// bytes is reported through logger and decoding resumes at the next
// scanline boundary of the control stream. An uncompressed BODY whose
// size disagrees with the geometry is reported, zero-padded and
// truncated to fit.
func (f *File) InterleavedBody(logger *log.Logger) ([]byte, error) {
	if f.Header == nil {
		return nil, ErrMissingBMHD
	}
	if f.Body == nil {
		return nil, ErrMissingBody
	}

	h := f.Header
	rowBytes := planar.RowBytes(int(h.Width))
	rows := int(h.Height) * int(h.NumPlanes)

	switch h.Compression {
	case CompressNone:
		if len(f.Body) == rowBytes*rows {
			return f.Body, nil
		}
		// The chunk size and the BMHD geometry disagree. Missing
		// plane data reads as zero, surplus bytes are ignored.
		logger.Printf("BODY is %d bytes, expected %d\n", len(f.Body), rowBytes*rows)
		out := make([]byte, rowBytes*rows)
		copy(out, f.Body)
		return out, nil
	case CompressPackBits:
	default:
		return nil, ErrCompression
	}

	out := make([]byte, rowBytes*rows)

	so := 0
	for row := 0; row < rows; row++ {
		written, consumed, _ := packbits.Unpack(out[row*rowBytes:(row+1)*rowBytes], f.Body[so:])
		if written != rowBytes {
			logger.Printf("scanline %d produced %d bytes, expected %d\n", row, written, rowBytes)
		}
		so += consumed
	}
	return out, nil
}

// colorPalette widens the CMAP entries to a color.Palette with one
// entry per representable pixel value, so that any decoded index is
// addressable. Missing entries are opaque black; a missing CMAP gets
// the synthesized default palette.
func (f *File) colorPalette() color.Palette {
	n := 1 << uint(f.Header.NumPlanes)
	if n > 256 {
		n = 256
	}

	src := f.Palette
	if src == nil {
		src = pal.Default(n)
	}

	p := make(color.Palette, n)
	for i := range p {
		if i < len(src) {
			p[i] = src[i]
		} else {
			p[i] = color.RGBA{A: 0xff}
		}
	}
	return p
}

// Decode reads an ILBM image from r and returns it as an
// image.Paletted.
func Decode(r io.Reader) (image.Image, error) {
	f, err := Parse(r)
	if err != nil {
		return nil, err
	}
	if f.Header == nil {
		return nil, ErrMissingBMHD
	}
	h := f.Header
	if h.NumPlanes < 1 || h.NumPlanes > 8 {
		return nil, ErrNumPlanes
	}

	body, err := f.InterleavedBody(log.New(ioutil.Discard, "", 0))
	if err != nil {
		return nil, err
	}

	m := image.NewPaletted(image.Rect(0, 0, int(h.Width), int(h.Height)), f.colorPalette())
	copy(m.Pix, planar.ToChunky(body, int(h.Width), int(h.Height), int(h.NumPlanes)))
	return m, nil
}

// DecodeConfig returns the color model and dimensions of an ILBM
// image without decoding the bitplanes.
func DecodeConfig(r io.Reader) (image.Config, error) {
	f, err := Parse(r)
	if err != nil {
		return image.Config{}, err
	}
	if f.Header == nil {
		return image.Config{}, ErrMissingBMHD
	}
	return image.Config{
		ColorModel: f.colorPalette(),
		Width:      int(f.Header.Width),
		Height:     int(f.Header.Height),
	}, nil
}
