/*
Package packbits implements the PackBits run-length encoding used by
ILBM BODY chunks.

The compressed stream is a sequence of control bytes. A control byte n,
read as a signed 8-bit value, means:

	0..127    copy the next n+1 bytes literally
	-127..-1  repeat the next byte (-n)+1 times
	-128      no operation

ILBM writers compress each scanline independently; runs and literals
never cross a scanline boundary. Unpack therefore works against a
destination budget of one scanline and reports how many source bytes
the scanline consumed, so a damaged scanline can be skipped without
losing sync with the control stream.
*/
package packbits

import "errors"

var (
	// ErrTruncated means a control byte promised more payload than
	// remained in the source.
	ErrTruncated = errors.New("packbits: truncated input")

	// ErrOverflow means decoding would have exceeded the destination
	// budget; the output was clamped to fit.
	ErrOverflow = errors.New("packbits: destination overflow")
)

// Unpack decompresses src into dst, stopping once dst is full or src
// is exhausted. It returns the number of bytes written to dst and the
// number of bytes of src consumed. A control unit straddling the end
// of dst is consumed in full so that consumed always points at the
// next scanline's first control byte.
func Unpack(dst, src []byte) (written, consumed int, err error) {
	for consumed < len(src) && written < len(dst) {
		n := int8(src[consumed])
		consumed++

		switch {
		case n >= 0:
			count := int(n) + 1
			if consumed+count > len(src) {
				count = len(src) - consumed
				err = ErrTruncated
			}
			fit := count
			if written+fit > len(dst) {
				fit = len(dst) - written
				if err == nil {
					err = ErrOverflow
				}
			}
			copy(dst[written:written+fit], src[consumed:consumed+fit])
			consumed += count
			written += fit
			if err == ErrTruncated {
				return written, consumed, err
			}
		case n == -128:
			// no-op
		default:
			count := 1 - int(n)
			if consumed >= len(src) {
				return written, consumed, ErrTruncated
			}
			v := src[consumed]
			consumed++
			fit := count
			if written+fit > len(dst) {
				fit = len(dst) - written
				err = ErrOverflow
			}
			for i := 0; i < fit; i++ {
				dst[written+i] = v
			}
			written += fit
		}
	}
	return written, consumed, err
}

// Pack compresses src and returns the packed bytes. The encoder is
// greedy: three or more identical bytes become a run of up to 128
// repetitions, anything else accumulates into literal blocks of up to
// 128 bytes, cut short when a length-3 run begins. Callers wanting
// scanline-granular output must call Pack once per scanline and
// concatenate the results.
func Pack(src []byte) []byte {
	out := make([]byte, 0, len(src)+len(src)/128+1)
	for i := 0; i < len(src); {
		run := 1
		for i+run < len(src) && src[i+run] == src[i] && run < 128 {
			run++
		}
		if run >= 3 {
			out = append(out, byte(1-run), src[i])
			i += run
			continue
		}

		start := i
		lit := 0
		for i < len(src) && lit < 128 {
			if i+2 < len(src) && src[i] == src[i+1] && src[i] == src[i+2] {
				break
			}
			i++
			lit++
		}
		out = append(out, byte(lit-1))
		out = append(out, src[start:i]...)
	}
	return out
}
