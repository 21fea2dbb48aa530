/*
Package ilbm implements a decoder and encoder for the ILBM variant of
the IFF interchange format.

An ILBM file is a FORM container holding tagged, length-prefixed
chunks. Three chunks matter here: BMHD carries the fixed 20-byte
bitmap header, CMAP an ordered list of 24-bit RGB palette entries, and
BODY the bitplane data, either raw or PackBits compressed. Every
multi-byte field on disk is big-endian and every chunk payload is
padded to an even length; the declared chunk size excludes the pad.

The package also registers itself with the standard image package, so
image.Decode recognizes ILBM streams.
*/
package ilbm

import (
	"encoding/binary"
	"errors"
	"io"
)

const (
	formTag = "FORM"
	ilbmTag = "ILBM"
	bmhdTag = "BMHD"
	cmapTag = "CMAP"
	bodyTag = "BODY"
)

// BMHD compression modes.
const (
	CompressNone     = 0
	CompressPackBits = 1
)

// BMHDSize is the on-disk size of the bitmap header chunk payload.
const BMHDSize = 20

var (
	ErrFormat      = errors.New("ilbm: not an ILBM file")
	ErrMissingBMHD = errors.New("ilbm: missing BMHD chunk")
	ErrMissingBody = errors.New("ilbm: missing BODY chunk")
	ErrNumPlanes   = errors.New("ilbm: number of planes not in 1..8")
	ErrCompression = errors.New("ilbm: unsupported compression type")
)

// BMHD is the bitmap header record. The field order matches the
// on-disk layout so the whole record serializes through
// encoding/binary.
type BMHD struct {
	Width            uint16
	Height           uint16
	X                int16
	Y                int16
	NumPlanes        uint8
	Masking          uint8
	Compression      uint8
	Pad1             uint8
	TransparentColor uint16
	XAspect          uint8
	YAspect          uint8
	PageWidth        uint16
	PageHeight       uint16
}

func (h *BMHD) read(r io.Reader) error {
	return binary.Read(r, binary.BigEndian, h)
}

func (h *BMHD) write(w io.Writer) error {
	return binary.Write(w, binary.BigEndian, h)
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// paddedSize rounds a declared chunk size up to an even byte count.
func paddedSize(size uint32) uint32 {
	return (size + 1) &^ 1
}
