// Package xrbyte implements the typed primitive codecs every X-Ray binary
// format builds on: fixed-width integers, floats, code-page-1251 strings,
// vectors, shapes, times and their optional/list wrappers. All operations
// are little-endian, matching every on-disk X-Ray asset format in scope.
package xrbyte

import (
	"bytes"
	"encoding/binary"
	"math"

	"golang.org/x/text/encoding/charmap"

	"xrf/xrerr"
)

// Reader is a cursor over an in-memory byte slice. Unlike an io.Reader, it
// exposes its position so callers (notably xrchunk) can track how much of
// a chunk payload has been consumed.
type Reader struct {
	data  []byte
	pos   int
	lossy bool
}

// NewReader wraps data for sequential reading from offset 0.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// WithLossyStrings makes ReadW1251String tolerate undecodable bytes instead
// of returning EncodingFailed, replacing them the way golang.org/x/text does
// by default. Used by debug/inspection tooling, never by round-trip codecs.
func (r *Reader) WithLossyStrings() *Reader {
	r.lossy = true
	return r
}

// Pos returns the current cursor offset.
func (r *Reader) Pos() int { return r.pos }

// Len returns the total length of the wrapped buffer.
func (r *Reader) Len() int { return len(r.data) }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.pos }

// IsEnded reports whether the cursor has consumed the entire buffer.
func (r *Reader) IsEnded() bool { return r.pos >= len(r.data) }

// PeekBytes returns the n unread bytes starting at the cursor without
// advancing it.
func (r *Reader) PeekBytes(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.data) {
		return nil, xrerr.Truncatef("peek %d bytes at offset %d: only %d remaining", n, r.pos, r.Remaining())
	}
	return r.data[r.pos : r.pos+n], nil
}

// ReadBytes reads and advances over n raw bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	b, err := r.PeekBytes(n)
	if err != nil {
		return nil, err
	}
	r.pos += n
	return b, nil
}

// ReadBytesRemain returns and consumes every remaining byte.
func (r *Reader) ReadBytesRemain() []byte {
	b := r.data[r.pos:]
	r.pos = len(r.data)
	return b
}

func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadU24 reads a little-endian 24-bit unsigned integer, returning it as a
// u32 with the top byte zero.
func (r *Reader) ReadU24() (uint32, error) {
	b, err := r.ReadBytes(3)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16, nil
}

func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *Reader) ReadU128() ([16]byte, error) {
	var out [16]byte
	b, err := r.ReadBytes(16)
	if err != nil {
		return out, err
	}
	copy(out[:], b)
	return out, nil
}

func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

func (r *Reader) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err
}

func (r *Reader) ReadF32() (float32, error) {
	v, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadBool reads a u8 that must be 0 or 1.
func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadU8()
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, xrerr.Magicf("boolean byte must be 0 or 1, got %d", v)
	}
}

// ReadW1251String reads bytes up to and including the first NUL and
// decodes them from Windows-1251. The NUL terminator is consumed but not
// included in the returned string.
func (r *Reader) ReadW1251String() (string, error) {
	idx := bytes.IndexByte(r.data[r.pos:], 0)
	if idx < 0 {
		return "", xrerr.Truncatef("w1251 string at offset %d: no terminating NUL", r.pos)
	}
	raw := r.data[r.pos : r.pos+idx]
	r.pos += idx + 1

	if len(raw) == 0 {
		return "", nil
	}

	decoder := charmap.Windows1251.NewDecoder()
	out, err := decoder.Bytes(raw)
	if err != nil {
		if r.lossy {
			return string(raw), nil
		}
		return "", xrerr.Wrap(xrerr.EncodingFailed, "windows-1251 decode", err)
	}
	return string(out), nil
}

func (r *Reader) ReadVector3() (Vector3, error) {
	var v Vector3
	var err error
	if v.X, err = r.ReadF32(); err != nil {
		return v, err
	}
	if v.Y, err = r.ReadF32(); err != nil {
		return v, err
	}
	if v.Z, err = r.ReadF32(); err != nil {
		return v, err
	}
	return v, nil
}

// ReadTime reads a six-byte-plus-u16 timestamp, unconditionally present.
func (r *Reader) ReadTime() (Time, error) {
	var t Time
	var err error
	if t.Year, err = r.ReadU8(); err != nil {
		return t, err
	}
	if t.Month, err = r.ReadU8(); err != nil {
		return t, err
	}
	if t.Day, err = r.ReadU8(); err != nil {
		return t, err
	}
	if t.Hour, err = r.ReadU8(); err != nil {
		return t, err
	}
	if t.Minute, err = r.ReadU8(); err != nil {
		return t, err
	}
	if t.Second, err = r.ReadU8(); err != nil {
		return t, err
	}
	if t.Millis, err = r.ReadU16(); err != nil {
		return t, err
	}
	return t, nil
}

// ReadOptionalTime reads a u8 presence flag followed, when set, by a Time.
func (r *Reader) ReadOptionalTime() (*Time, error) {
	present, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	if present == 0 {
		return nil, nil
	}
	if present != 1 {
		return nil, xrerr.Magicf("optional time presence flag must be 0 or 1, got %d", present)
	}
	t, err := r.ReadTime()
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ReadTuple4 reads four raw bytes as used by typed integer fields like
// vertex_type.
func (r *Reader) ReadTuple4() ([4]byte, error) {
	var out [4]byte
	b, err := r.ReadBytes(4)
	if err != nil {
		return out, err
	}
	copy(out[:], b)
	return out, nil
}

// ReadShapeList reads a u8-prefixed list of tagged sphere/box shapes.
func (r *Reader) ReadShapeList() ([]Shape, error) {
	count, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	shapes := make([]Shape, 0, count)
	for i := 0; i < int(count); i++ {
		kind, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		var s Shape
		s.Kind = ShapeKind(kind)
		switch s.Kind {
		case ShapeSphere:
			if s.Sphere.Center, err = r.ReadVector3(); err != nil {
				return nil, err
			}
			if s.Sphere.Radius, err = r.ReadF32(); err != nil {
				return nil, err
			}
		case ShapeBox:
			for j := range s.Box.Rows {
				if s.Box.Rows[j], err = r.ReadVector3(); err != nil {
					return nil, err
				}
			}
		default:
			return nil, xrerr.Magicf("unknown shape tag %d", kind)
		}
		shapes = append(shapes, s)
	}
	return shapes, nil
}

// ReadXrList reads a u32 length prefix followed by count invocations of
// read, generically implementing the spec's read_xr_list<T>.
func ReadXrList[T any](r *Reader, read func(*Reader) (T, error)) ([]T, error) {
	count, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, count)
	for i := uint32(0); i < count; i++ {
		v, err := read(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ReadXrOptional reads a u8 presence flag followed, when set, by one T,
// generically implementing the spec's read_xr_optional<T>.
func ReadXrOptional[T any](r *Reader, read func(*Reader) (T, error)) (*T, error) {
	present, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	if present == 0 {
		return nil, nil
	}
	if present != 1 {
		return nil, xrerr.Magicf("optional presence flag must be 0 or 1, got %d", present)
	}
	v, err := read(r)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
