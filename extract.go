package iffbpl

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/pawelmat/iffbpl/ilbm"
	"github.com/pawelmat/iffbpl/pal"
	"github.com/pawelmat/iffbpl/planar"
)

// ExtractOptions control which artifacts Extract writes beyond the
// interleaved planes and the palette.
type ExtractOptions struct {
	// OutputBase overrides the base name for output files. When empty
	// the input path with its extension stripped is used.
	OutputBase string

	// Chunky also writes one byte per pixel to <base>.chk.
	Chunky bool

	// ChunkyDoubled also writes bit-doubled chunky data to <base>.chk.
	// It takes precedence over Chunky when both are set.
	ChunkyDoubled bool

	// NonInterleaved also writes plane-major data to <base>.bpf.
	NonInterleaved bool
}

// Extract converts the ILBM file at path into raw artifacts:
// <base>.bpl with the interleaved planes, <base>.pal with the packed
// color register words when a CMAP chunk is present, and optionally
// <base>.chk and <base>.bpf. Unsupported compression or a missing
// chunk is reported through the logger; files produced up to that
// point are kept.
func (c *Converter) Extract(path string, opts ExtractOptions) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	c.logger.Printf("input file: %s (%d bytes)\n", path, len(data))

	base := opts.OutputBase
	if base == "" {
		base = strings.TrimSuffix(path, filepath.Ext(path))
	}

	f, err := ilbm.Parse(bytes.NewReader(data))
	if err != nil {
		return err
	}

	if f.Header != nil {
		h := f.Header
		c.logger.Printf("BMHD: width %d (%d bytes), height %d, planes %d, compression %d\n",
			h.Width, h.Width/8, h.Height, h.NumPlanes, h.Compression)
	} else {
		c.logger.Println("BMHD chunk not found")
	}

	if f.Palette != nil {
		name := base + ".pal"
		if err := ioutil.WriteFile(name, pal.AppendWords(nil, f.Palette), 0644); err != nil {
			return err
		}
		c.logger.Printf("palette (%d colours) written to: %s\n", len(f.Palette), name)
	} else {
		c.logger.Println("CMAP chunk not found")
	}

	if f.Body == nil {
		c.logger.Println("BODY chunk not found")
		return nil
	}
	if f.Header == nil {
		// No geometry to decode the BODY against.
		return nil
	}

	h := f.Header
	if h.NumPlanes < 1 || h.NumPlanes > 8 {
		c.logger.Printf("unsupported number of planes: %d\n", h.NumPlanes)
		return nil
	}

	body, err := f.InterleavedBody(c.logger)
	if err == ilbm.ErrCompression {
		c.logger.Printf("unknown compression type: %d\n", h.Compression)
		return nil
	}
	if err != nil {
		return err
	}

	name := base + ".bpl"
	if err := ioutil.WriteFile(name, body, 0644); err != nil {
		return err
	}
	c.logger.Printf("BODY (%d bytes) written to: %s\n", len(body), name)

	width, height, numPlanes := int(h.Width), int(h.Height), int(h.NumPlanes)

	if opts.Chunky || opts.ChunkyDoubled {
		chunky := planar.ToChunky(body, width, height, numPlanes)
		if opts.ChunkyDoubled {
			chunky = planar.DoubleBits(chunky)
		}
		name := base + ".chk"
		if err := ioutil.WriteFile(name, chunky, 0644); err != nil {
			return err
		}
		c.logger.Printf("chunky data written to: %s (%d bytes)\n", name, len(chunky))
	}

	if opts.NonInterleaved {
		name := base + ".bpf"
		out := planar.Deinterleave(body, width, height, numPlanes)
		if err := ioutil.WriteFile(name, out, 0644); err != nil {
			return err
		}
		c.logger.Printf("non-interleaved data written to: %s (%d bytes)\n", name, len(out))
	}

	return nil
}
