package ltxproj

import (
	"fmt"
	"strconv"
	"strings"

	"xrf/ltx"
	"xrf/xrbyte"
	"xrf/xrerr"
)

// shapeToString renders a single Shape as "sphere:cx,cy,cz,r" or
// "box:r0x,r0y,r0z,r1x,r1y,r1z,r2x,r2y,r2z,r3x,r3y,r3z".
func shapeToString(s xrbyte.Shape) string {
	switch s.Kind {
	case xrbyte.ShapeSphere:
		c := s.Sphere.Center
		return fmt.Sprintf("sphere:%g,%g,%g,%g", c.X, c.Y, c.Z, s.Sphere.Radius)
	case xrbyte.ShapeBox:
		parts := make([]string, 0, 12)
		for _, row := range s.Box.Rows {
			parts = append(parts, fmt.Sprintf("%g", row.X), fmt.Sprintf("%g", row.Y), fmt.Sprintf("%g", row.Z))
		}
		return "box:" + strings.Join(parts, ",")
	default:
		return ""
	}
}

func shapeFromString(raw string) (xrbyte.Shape, error) {
	kind, body, ok := strings.Cut(raw, ":")
	if !ok {
		return xrbyte.Shape{}, xrerr.New(xrerr.LtxParse, "invalid shape entry "+raw)
	}
	fields := strings.Split(body, ",")
	parseF := func(s string) (float32, error) {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
		if err != nil {
			return 0, xrerr.Wrap(xrerr.LtxParse, "shape field: not a float", err)
		}
		return float32(v), nil
	}
	switch kind {
	case "sphere":
		if len(fields) != 4 {
			return xrbyte.Shape{}, xrerr.New(xrerr.LtxParse, "sphere shape needs 4 fields")
		}
		x, err := parseF(fields[0])
		if err != nil {
			return xrbyte.Shape{}, err
		}
		y, err := parseF(fields[1])
		if err != nil {
			return xrbyte.Shape{}, err
		}
		z, err := parseF(fields[2])
		if err != nil {
			return xrbyte.Shape{}, err
		}
		r, err := parseF(fields[3])
		if err != nil {
			return xrbyte.Shape{}, err
		}
		return xrbyte.Shape{Kind: xrbyte.ShapeSphere, Sphere: xrbyte.SphereShape{Center: xrbyte.Vector3{X: x, Y: y, Z: z}, Radius: r}}, nil
	case "box":
		if len(fields) != 12 {
			return xrbyte.Shape{}, xrerr.New(xrerr.LtxParse, "box shape needs 12 fields")
		}
		var box xrbyte.BoxShape
		for i := 0; i < 4; i++ {
			x, err := parseF(fields[i*3])
			if err != nil {
				return xrbyte.Shape{}, err
			}
			y, err := parseF(fields[i*3+1])
			if err != nil {
				return xrbyte.Shape{}, err
			}
			z, err := parseF(fields[i*3+2])
			if err != nil {
				return xrbyte.Shape{}, err
			}
			box.Rows[i] = xrbyte.Vector3{X: x, Y: y, Z: z}
		}
		return xrbyte.Shape{Kind: xrbyte.ShapeBox, Box: box}, nil
	default:
		return xrbyte.Shape{}, xrerr.New(xrerr.LtxParse, "unknown shape kind "+kind)
	}
}

// exportShapeList exports shapes as a ";"-joined list under key, or
// the nil literal when empty.
func exportShapeList(key string, shapes []xrbyte.Shape, sec *ltx.Section) {
	if len(shapes) == 0 {
		sec.Set(key, nilLiteral)
		return
	}
	parts := make([]string, len(shapes))
	for i, s := range shapes {
		parts[i] = shapeToString(s)
	}
	sec.Set(key, strings.Join(parts, ";"))
}

func importShapeList(key string, sec *ltx.Section) ([]xrbyte.Shape, error) {
	raw, ok := sec.Get(key)
	if !ok {
		return nil, xrerr.New(xrerr.LtxParse, "missing required field "+key)
	}
	if raw == nilLiteral {
		return nil, nil
	}
	parts := strings.Split(raw, ";")
	out := make([]xrbyte.Shape, len(parts))
	for i, p := range parts {
		s, err := shapeFromString(p)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// exportOptionalTime exports *xrbyte.Time as "Y,Mo,D,H,Mi,S,Ms", or the
// nil literal when absent.
func exportOptionalTime(key string, t *xrbyte.Time, sec *ltx.Section) {
	if t == nil {
		sec.Set(key, nilLiteral)
		return
	}
	sec.Set(key, fmt.Sprintf("%d,%d,%d,%d,%d,%d,%d", t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second, t.Millis))
}

func importOptionalTime(key string, sec *ltx.Section) (*xrbyte.Time, error) {
	raw, ok := sec.Get(key)
	if !ok || raw == nilLiteral {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 7 {
		return nil, xrerr.New(xrerr.LtxParse, "field "+key+": time must have 7 components")
	}
	vals := make([]uint64, 7)
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 16)
		if err != nil {
			return nil, xrerr.Wrap(xrerr.LtxParse, "field "+key+": invalid time component", err)
		}
		vals[i] = v
	}
	return &xrbyte.Time{
		Year: uint8(vals[0]), Month: uint8(vals[1]), Day: uint8(vals[2]),
		Hour: uint8(vals[3]), Minute: uint8(vals[4]), Second: uint8(vals[5]),
		Millis: uint16(vals[6]),
	}, nil
}
