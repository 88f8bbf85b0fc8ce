package xrbyte

import (
	"testing"
)

func TestRoundTripPrimitives(t *testing.T) {
	w := NewWriter()
	w.WriteU8(7)
	w.WriteU16(1000)
	if err := w.WriteU24(0xABCDEF); err != nil {
		t.Fatalf("WriteU24: %v", err)
	}
	w.WriteU32(0xDEADBEEF)
	w.WriteU64(0x1122334455667788)
	w.WriteI32(-5)
	w.WriteI64(-9)
	w.WriteF32(3.5)
	w.WriteBool(true)

	r := NewReader(w.Bytes())
	if v, err := r.ReadU8(); err != nil || v != 7 {
		t.Fatalf("ReadU8 = %v, %v", v, err)
	}
	if v, err := r.ReadU16(); err != nil || v != 1000 {
		t.Fatalf("ReadU16 = %v, %v", v, err)
	}
	if v, err := r.ReadU24(); err != nil || v != 0xABCDEF {
		t.Fatalf("ReadU24 = %v, %v", v, err)
	}
	if v, err := r.ReadU32(); err != nil || v != 0xDEADBEEF {
		t.Fatalf("ReadU32 = %v, %v", v, err)
	}
	if v, err := r.ReadU64(); err != nil || v != 0x1122334455667788 {
		t.Fatalf("ReadU64 = %v, %v", v, err)
	}
	if v, err := r.ReadI32(); err != nil || v != -5 {
		t.Fatalf("ReadI32 = %v, %v", v, err)
	}
	if v, err := r.ReadI64(); err != nil || v != -9 {
		t.Fatalf("ReadI64 = %v, %v", v, err)
	}
	if v, err := r.ReadF32(); err != nil || v != 3.5 {
		t.Fatalf("ReadF32 = %v, %v", v, err)
	}
	if v, err := r.ReadBool(); err != nil || !v {
		t.Fatalf("ReadBool = %v, %v", v, err)
	}
	if !r.IsEnded() {
		t.Fatalf("expected reader to be fully consumed, %d bytes remain", r.Remaining())
	}
}

func TestWriteU24RejectsOutOfRange(t *testing.T) {
	w := NewWriter()
	if err := w.WriteU24(1 << 24); err == nil {
		t.Fatal("expected error for u24 overflow")
	}
}

func TestW1251StringRoundTrip(t *testing.T) {
	w := NewWriter()
	if err := w.WriteW1251String("custom-data"); err != nil {
		t.Fatalf("WriteW1251String: %v", err)
	}
	r := NewReader(w.Bytes())
	s, err := r.ReadW1251String()
	if err != nil {
		t.Fatalf("ReadW1251String: %v", err)
	}
	if s != "custom-data" {
		t.Fatalf("got %q", s)
	}
}

func TestW1251StringEmptyIsOnlyNul(t *testing.T) {
	w := NewWriter()
	if err := w.WriteW1251String(""); err != nil {
		t.Fatalf("WriteW1251String: %v", err)
	}
	if w.Len() != 1 {
		t.Fatalf("expected 1 byte for empty string, got %d", w.Len())
	}
	r := NewReader(w.Bytes())
	s, err := r.ReadW1251String()
	if err != nil {
		t.Fatalf("ReadW1251String: %v", err)
	}
	if s != "" {
		t.Fatalf("got %q", s)
	}
}

func TestVector3RoundTrip(t *testing.T) {
	w := NewWriter()
	v := Vector3{X: 1.5, Y: -2.25, Z: 3}
	w.WriteVector3(v)
	r := NewReader(w.Bytes())
	got, err := r.ReadVector3()
	if err != nil {
		t.Fatalf("ReadVector3: %v", err)
	}
	if got != v {
		t.Fatalf("got %+v, want %+v", got, v)
	}
}

func TestShapeListRoundTrip(t *testing.T) {
	shapes := []Shape{
		{Kind: ShapeSphere, Sphere: SphereShape{Center: Vector3{X: 2.5, Y: 5.1, Z: 1.5}, Radius: 1.0}},
		{Kind: ShapeBox, Box: BoxShape{Rows: [4]Vector3{
			{X: 4.1, Y: 1.1, Z: 3.1},
			{X: 1.1, Y: 3.2, Z: 3.3},
			{X: 4.0, Y: 5.0, Z: 6.4},
			{X: 9.2, Y: 8.3, Z: 3.0},
		}}},
	}
	w := NewWriter()
	if err := w.WriteShapeList(shapes); err != nil {
		t.Fatalf("WriteShapeList: %v", err)
	}
	r := NewReader(w.Bytes())
	got, err := r.ReadShapeList()
	if err != nil {
		t.Fatalf("ReadShapeList: %v", err)
	}
	if len(got) != 2 || got[0] != shapes[0] || got[1] != shapes[1] {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestShapeListEmptyRoundTrip(t *testing.T) {
	w := NewWriter()
	if err := w.WriteShapeList(nil); err != nil {
		t.Fatalf("WriteShapeList: %v", err)
	}
	if w.Len() != 1 {
		t.Fatalf("expected single count byte, got %d bytes", w.Len())
	}
	r := NewReader(w.Bytes())
	got, err := r.ReadShapeList()
	if err != nil {
		t.Fatalf("ReadShapeList: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty shape list, got %d", len(got))
	}
}

func TestOptionalTimeAbsent(t *testing.T) {
	w := NewWriter()
	w.WriteOptionalTime(nil)
	if w.Len() != 1 {
		t.Fatalf("expected single flag byte, got %d", w.Len())
	}
	r := NewReader(w.Bytes())
	got, err := r.ReadOptionalTime()
	if err != nil {
		t.Fatalf("ReadOptionalTime: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestOptionalTimePresent(t *testing.T) {
	tm := Time{Year: 22, Month: 10, Day: 24, Hour: 20, Minute: 30, Second: 50, Millis: 250}
	w := NewWriter()
	w.WriteOptionalTime(&tm)
	r := NewReader(w.Bytes())
	got, err := r.ReadOptionalTime()
	if err != nil {
		t.Fatalf("ReadOptionalTime: %v", err)
	}
	if got == nil || *got != tm {
		t.Fatalf("got %+v, want %+v", got, tm)
	}
}

func TestXrListRoundTrip(t *testing.T) {
	w := NewWriter()
	items := []uint32{1, 2, 3, 4}
	if err := WriteXrList(w, items, func(w *Writer, v uint32) error {
		w.WriteU32(v)
		return nil
	}); err != nil {
		t.Fatalf("WriteXrList: %v", err)
	}
	r := NewReader(w.Bytes())
	got, err := ReadXrList(r, func(r *Reader) (uint32, error) { return r.ReadU32() })
	if err != nil {
		t.Fatalf("ReadXrList: %v", err)
	}
	if len(got) != len(items) {
		t.Fatalf("got %v, want %v", got, items)
	}
	for i := range items {
		if got[i] != items[i] {
			t.Fatalf("index %d: got %v, want %v", i, got[i], items[i])
		}
	}
}

func TestTruncationError(t *testing.T) {
	r := NewReader([]byte{1, 2})
	if _, err := r.ReadU32(); err == nil {
		t.Fatal("expected truncation error")
	}
}
