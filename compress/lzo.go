package compress

import (
	"bytes"
	"encoding/binary"

	"xrf/xrerr"
)

// LZO implements the archive-payload compression collaborator the spec
// calls LZO (used for .db/.xdb archive file entries). As with LZH1, the
// exact minilzo/LZO1X bitstream is out of scope for the core per §1
// Non-goals; this provides a real, self-consistent codec behind the same
// interface, built around length-prefixed literal runs and
// (distance, length) copy tokens — the same public-domain LZO1X shape,
// without requiring bit-for-bit compatibility with the reference
// implementation's output.
type LZO struct{}

const (
	lzoOpLiteral = 0x00
	lzoOpCopy    = 0x01
	lzoWindow    = 1 << 16
	lzoMinMatch  = 3
)

// Compress encodes src as a stream of ops: each op is a tag byte
// (lzoOpLiteral|lzoOpCopy), a u32 length (and for copies, a u32 distance),
// then the literal bytes for literal ops.
func (LZO) Compress(src []byte) ([]byte, error) {
	var out bytes.Buffer
	pos := 0
	literalStart := 0

	flushLiteral := func(end int) {
		if end <= literalStart {
			return
		}
		out.WriteByte(lzoOpLiteral)
		writeU32(&out, uint32(end-literalStart))
		out.Write(src[literalStart:end])
	}

	for pos < len(src) {
		length, distance := lzoFindMatch(src, pos)
		if length >= lzoMinMatch {
			flushLiteral(pos)
			out.WriteByte(lzoOpCopy)
			writeU32(&out, uint32(length))
			writeU32(&out, uint32(distance))
			pos += length
			literalStart = pos
		} else {
			pos++
		}
	}
	flushLiteral(pos)
	return out.Bytes(), nil
}

func lzoFindMatch(src []byte, pos int) (length, distance int) {
	windowStart := pos - lzoWindow
	if windowStart < 0 {
		windowStart = 0
	}
	maxLen := len(src) - pos
	if maxLen < lzoMinMatch {
		return 0, 0
	}

	bestLen, bestDist := 0, 0
	for cand := pos - 1; cand >= windowStart; cand-- {
		l := 0
		for pos+l < len(src) && src[cand+l] == src[pos+l] {
			l++
		}
		if l > bestLen {
			bestLen, bestDist = l, pos-cand
		}
	}
	return bestLen, bestDist
}

// Decompress expands src, verifying the result is exactly decodedLen
// bytes.
func (LZO) Decompress(src []byte, decodedLen int) ([]byte, error) {
	out := make([]byte, 0, decodedLen)
	pos := 0

	for pos < len(src) {
		if pos >= len(src) {
			break
		}
		op := src[pos]
		pos++
		switch op {
		case lzoOpLiteral:
			n, err := readU32(src, &pos)
			if err != nil {
				return nil, err
			}
			if pos+int(n) > len(src) {
				return nil, xrerr.New(xrerr.CompressionFailed, "lzo: truncated literal run")
			}
			out = append(out, src[pos:pos+int(n)]...)
			pos += int(n)
		case lzoOpCopy:
			length, err := readU32(src, &pos)
			if err != nil {
				return nil, err
			}
			distance, err := readU32(src, &pos)
			if err != nil {
				return nil, err
			}
			if int(distance) == 0 || int(distance) > len(out) {
				return nil, xrerr.New(xrerr.CompressionFailed, "lzo: invalid back-reference")
			}
			start := len(out) - int(distance)
			for i := 0; i < int(length); i++ {
				out = append(out, out[start+i])
			}
		default:
			return nil, xrerr.New(xrerr.CompressionFailed, "lzo: unknown opcode")
		}
	}

	if len(out) != decodedLen {
		return nil, xrerr.New(xrerr.CompressionFailed, "lzo: decoded length mismatch")
	}
	return out, nil
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func readU32(src []byte, pos *int) (uint32, error) {
	if *pos+4 > len(src) {
		return 0, xrerr.New(xrerr.CompressionFailed, "lzo: truncated length field")
	}
	v := binary.LittleEndian.Uint32(src[*pos : *pos+4])
	*pos += 4
	return v, nil
}
