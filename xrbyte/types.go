package xrbyte

// Vector3 is three f32 components in x, y, z order.
type Vector3 struct {
	X, Y, Z float32
}

// Time is the six-field-plus-millis timestamp embedded in several records.
type Time struct {
	Year, Month, Day, Hour, Minute, Second uint8
	Millis                                 uint16
}

// ShapeKind tags a Shape's variant.
type ShapeKind uint8

const (
	ShapeSphere ShapeKind = 0
	ShapeBox    ShapeKind = 1
)

// Shape is the sphere/oriented-box tagged union used to delimit zones.
type Shape struct {
	Kind   ShapeKind
	Sphere SphereShape
	Box    BoxShape
}

// SphereShape is a center point plus radius.
type SphereShape struct {
	Center Vector3
	Radius float32
}

// BoxShape is four row vectors describing an oriented box.
type BoxShape struct {
	Rows [4]Vector3
}
