package xrbyte

import (
	"bytes"
	"encoding/binary"
	"math"

	"golang.org/x/text/encoding/charmap"

	"xrf/xrerr"
)

// Writer accumulates bytes for one record, chunk payload, or file. It
// never fails on the happy path; only write_u24-style range checks and
// encoding failures return errors.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Bytes returns the accumulated payload.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return w.buf.Len() }

func (w *Writer) WriteBytes(b []byte) { w.buf.Write(b) }

func (w *Writer) WriteU8(v uint8) { w.buf.WriteByte(v) }

func (w *Writer) WriteU16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

// WriteU24 rejects values that do not fit in 24 bits.
func (w *Writer) WriteU24(v uint32) error {
	if v >= 1<<24 {
		return xrerr.New(xrerr.FormatMagic, "u24 value out of range")
	}
	w.buf.Write([]byte{byte(v), byte(v >> 8), byte(v >> 16)})
	return nil
}

func (w *Writer) WriteU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) WriteU64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) WriteU128(v [16]byte) { w.buf.Write(v[:]) }

func (w *Writer) WriteI32(v int32) { w.WriteU32(uint32(v)) }

func (w *Writer) WriteI64(v int64) { w.WriteU64(uint64(v)) }

func (w *Writer) WriteF32(v float32) { w.WriteU32(math.Float32bits(v)) }

func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteU8(1)
	} else {
		w.WriteU8(0)
	}
}

// WriteW1251String encodes s as Windows-1251 and appends a terminating
// NUL, the on-disk form of every X-Ray string field.
func (w *Writer) WriteW1251String(s string) error {
	if s != "" {
		encoder := charmap.Windows1251.NewEncoder()
		raw, err := encoder.String(s)
		if err != nil {
			return xrerr.Wrap(xrerr.EncodingFailed, "windows-1251 encode", err)
		}
		w.buf.WriteString(raw)
	}
	w.buf.WriteByte(0)
	return nil
}

func (w *Writer) WriteVector3(v Vector3) {
	w.WriteF32(v.X)
	w.WriteF32(v.Y)
	w.WriteF32(v.Z)
}

func (w *Writer) WriteTime(t Time) {
	w.WriteU8(t.Year)
	w.WriteU8(t.Month)
	w.WriteU8(t.Day)
	w.WriteU8(t.Hour)
	w.WriteU8(t.Minute)
	w.WriteU8(t.Second)
	w.WriteU16(t.Millis)
}

// WriteOptionalTime writes the presence flag and, if non-nil, the time.
func (w *Writer) WriteOptionalTime(t *Time) {
	if t == nil {
		w.WriteU8(0)
		return
	}
	w.WriteU8(1)
	w.WriteTime(*t)
}

func (w *Writer) WriteTuple4(v [4]byte) { w.buf.Write(v[:]) }

// WriteShapeList writes a u8 count prefix followed by each tagged shape.
func (w *Writer) WriteShapeList(shapes []Shape) error {
	if len(shapes) > 0xFF {
		return xrerr.New(xrerr.FormatMagic, "shape list exceeds u8 count")
	}
	w.WriteU8(uint8(len(shapes)))
	for _, s := range shapes {
		w.WriteU8(uint8(s.Kind))
		switch s.Kind {
		case ShapeSphere:
			w.WriteVector3(s.Sphere.Center)
			w.WriteF32(s.Sphere.Radius)
		case ShapeBox:
			for _, row := range s.Box.Rows {
				w.WriteVector3(row)
			}
		default:
			return xrerr.Magicf("unknown shape tag %d", s.Kind)
		}
	}
	return nil
}

// WriteXrList writes a u32 length prefix followed by each item, generically
// implementing the spec's write_xr_list<T>.
func WriteXrList[T any](w *Writer, items []T, write func(*Writer, T) error) error {
	w.WriteU32(uint32(len(items)))
	for _, it := range items {
		if err := write(w, it); err != nil {
			return err
		}
	}
	return nil
}

// WriteXrOptional writes 1+value when present is non-nil, else a lone 0,
// generically implementing the spec's write_xr_optional<T>.
func WriteXrOptional[T any](w *Writer, item *T, write func(*Writer, T) error) error {
	if item == nil {
		w.WriteU8(0)
		return nil
	}
	w.WriteU8(1)
	return write(w, *item)
}
