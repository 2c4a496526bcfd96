package entity

import (
	"github.com/drawxchange/dxf/pkg/codepair"
	"github.com/drawxchange/dxf/pkg/enums"
)

func init() {
	register("LINE", func() Entity { return &Line{Record: newRecord(), Normal: [3]float64{0, 0, 1}} })
	register("POINT", func() Entity { return &Point{Record: newRecord(), Normal: [3]float64{0, 0, 1}} })
	register("CIRCLE", func() Entity { return &Circle{Record: newRecord(), Normal: [3]float64{0, 0, 1}} })
	register("ARC", func() Entity { return &Arc{Record: newRecord(), Normal: [3]float64{0, 0, 1}} })
	register("ELLIPSE", func() Entity { return &Ellipse{Record: newRecord(), Normal: [3]float64{0, 0, 1}, EndParam: 6.283185307179586} })
	register("3DFACE", func() Entity { return &Face3D{Record: newRecord()} })
	register("SOLID", func() Entity { return &Solid{Record: newRecord(), Normal: [3]float64{0, 0, 1}} })
}

// Line is a straight segment between two points.
type Line struct {
	Record
	Start, End [3]float64
	Thickness  float64
	Normal     [3]float64
}

func (e *Line) TypeName() string         { return "LINE" }
func (e *Line) MinVersion() enums.Version { return enums.R10 }
func (e *Line) MaxVersion() enums.Version { return enums.R2018 }
func (e *Line) Base() *Record             { return &e.Record }

func (e *Line) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 10:
		e.Start[0] = mustDouble(p)
	case 20:
		e.Start[1] = mustDouble(p)
	case 30:
		e.Start[2] = mustDouble(p)
	case 11:
		e.End[0] = mustDouble(p)
	case 21:
		e.End[1] = mustDouble(p)
	case 31:
		e.End[2] = mustDouble(p)
	case 39:
		e.Thickness = mustDouble(p)
	case 210:
		e.Normal[0] = mustDouble(p)
	case 220:
		e.Normal[1] = mustDouble(p)
	case 230:
		e.Normal[2] = mustDouble(p)
	default:
		return false, nil
	}
	return true, nil
}

func (e *Line) WritePairs(w codepair.Writer, target enums.Version) error {
	return emitAll(w,
		codepair.NewDouble(10, e.Start[0]), codepair.NewDouble(20, e.Start[1]), codepair.NewDouble(30, e.Start[2]),
		codepair.NewDouble(11, e.End[0]), codepair.NewDouble(21, e.End[1]), codepair.NewDouble(31, e.End[2]),
		codepair.NewDouble(39, e.Thickness),
		codepair.NewDouble(210, e.Normal[0]), codepair.NewDouble(220, e.Normal[1]), codepair.NewDouble(230, e.Normal[2]),
	)
}

// Point is a single position marker.
type Point struct {
	Record
	Position [3]float64
	Normal   [3]float64
}

func (e *Point) TypeName() string         { return "POINT" }
func (e *Point) MinVersion() enums.Version { return enums.R10 }
func (e *Point) MaxVersion() enums.Version { return enums.R2018 }
func (e *Point) Base() *Record             { return &e.Record }

func (e *Point) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 10:
		e.Position[0] = mustDouble(p)
	case 20:
		e.Position[1] = mustDouble(p)
	case 30:
		e.Position[2] = mustDouble(p)
	case 210:
		e.Normal[0] = mustDouble(p)
	case 220:
		e.Normal[1] = mustDouble(p)
	case 230:
		e.Normal[2] = mustDouble(p)
	default:
		return false, nil
	}
	return true, nil
}

func (e *Point) WritePairs(w codepair.Writer, target enums.Version) error {
	return emitAll(w,
		codepair.NewDouble(10, e.Position[0]), codepair.NewDouble(20, e.Position[1]), codepair.NewDouble(30, e.Position[2]),
		codepair.NewDouble(210, e.Normal[0]), codepair.NewDouble(220, e.Normal[1]), codepair.NewDouble(230, e.Normal[2]),
	)
}

// Circle is defined by center, radius, and extrusion normal.
type Circle struct {
	Record
	Center    [3]float64
	Radius    float64
	Thickness float64
	Normal    [3]float64
}

func (e *Circle) TypeName() string         { return "CIRCLE" }
func (e *Circle) MinVersion() enums.Version { return enums.R10 }
func (e *Circle) MaxVersion() enums.Version { return enums.R2018 }
func (e *Circle) Base() *Record             { return &e.Record }

func (e *Circle) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 10:
		e.Center[0] = mustDouble(p)
	case 20:
		e.Center[1] = mustDouble(p)
	case 30:
		e.Center[2] = mustDouble(p)
	case 40:
		e.Radius = mustDouble(p)
	case 39:
		e.Thickness = mustDouble(p)
	case 210:
		e.Normal[0] = mustDouble(p)
	case 220:
		e.Normal[1] = mustDouble(p)
	case 230:
		e.Normal[2] = mustDouble(p)
	default:
		return false, nil
	}
	return true, nil
}

func (e *Circle) WritePairs(w codepair.Writer, target enums.Version) error {
	return emitAll(w,
		codepair.NewDouble(10, e.Center[0]), codepair.NewDouble(20, e.Center[1]), codepair.NewDouble(30, e.Center[2]),
		codepair.NewDouble(40, e.Radius), codepair.NewDouble(39, e.Thickness),
		codepair.NewDouble(210, e.Normal[0]), codepair.NewDouble(220, e.Normal[1]), codepair.NewDouble(230, e.Normal[2]),
	)
}

// Arc is a Circle plus start/end angles in degrees.
type Arc struct {
	Record
	Center            [3]float64
	Radius            float64
	Thickness         float64
	StartAngle, EndAngle float64
	Normal            [3]float64
}

func (e *Arc) TypeName() string         { return "ARC" }
func (e *Arc) MinVersion() enums.Version { return enums.R10 }
func (e *Arc) MaxVersion() enums.Version { return enums.R2018 }
func (e *Arc) Base() *Record             { return &e.Record }

func (e *Arc) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 10:
		e.Center[0] = mustDouble(p)
	case 20:
		e.Center[1] = mustDouble(p)
	case 30:
		e.Center[2] = mustDouble(p)
	case 40:
		e.Radius = mustDouble(p)
	case 39:
		e.Thickness = mustDouble(p)
	case 50:
		e.StartAngle = mustDouble(p)
	case 51:
		e.EndAngle = mustDouble(p)
	case 210:
		e.Normal[0] = mustDouble(p)
	case 220:
		e.Normal[1] = mustDouble(p)
	case 230:
		e.Normal[2] = mustDouble(p)
	default:
		return false, nil
	}
	return true, nil
}

func (e *Arc) WritePairs(w codepair.Writer, target enums.Version) error {
	return emitAll(w,
		codepair.NewDouble(10, e.Center[0]), codepair.NewDouble(20, e.Center[1]), codepair.NewDouble(30, e.Center[2]),
		codepair.NewDouble(40, e.Radius), codepair.NewDouble(39, e.Thickness),
		codepair.NewDouble(50, e.StartAngle), codepair.NewDouble(51, e.EndAngle),
		codepair.NewDouble(210, e.Normal[0]), codepair.NewDouble(220, e.Normal[1]), codepair.NewDouble(230, e.Normal[2]),
	)
}

// Ellipse is defined by center, major-axis endpoint (relative), axis
// ratio, and start/end parameter (radians).
type Ellipse struct {
	Record
	Center      [3]float64
	MajorAxis   [3]float64
	AxisRatio   float64
	StartParam  float64
	EndParam    float64
	Normal      [3]float64
}

func (e *Ellipse) TypeName() string         { return "ELLIPSE" }
func (e *Ellipse) MinVersion() enums.Version { return enums.R13 }
func (e *Ellipse) MaxVersion() enums.Version { return enums.R2018 }
func (e *Ellipse) Base() *Record             { return &e.Record }

func (e *Ellipse) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 10:
		e.Center[0] = mustDouble(p)
	case 20:
		e.Center[1] = mustDouble(p)
	case 30:
		e.Center[2] = mustDouble(p)
	case 11:
		e.MajorAxis[0] = mustDouble(p)
	case 21:
		e.MajorAxis[1] = mustDouble(p)
	case 31:
		e.MajorAxis[2] = mustDouble(p)
	case 40:
		e.AxisRatio = mustDouble(p)
	case 41:
		e.StartParam = mustDouble(p)
	case 42:
		e.EndParam = mustDouble(p)
	case 210:
		e.Normal[0] = mustDouble(p)
	case 220:
		e.Normal[1] = mustDouble(p)
	case 230:
		e.Normal[2] = mustDouble(p)
	default:
		return false, nil
	}
	return true, nil
}

func (e *Ellipse) WritePairs(w codepair.Writer, target enums.Version) error {
	return emitAll(w,
		codepair.NewDouble(10, e.Center[0]), codepair.NewDouble(20, e.Center[1]), codepair.NewDouble(30, e.Center[2]),
		codepair.NewDouble(11, e.MajorAxis[0]), codepair.NewDouble(21, e.MajorAxis[1]), codepair.NewDouble(31, e.MajorAxis[2]),
		codepair.NewDouble(40, e.AxisRatio), codepair.NewDouble(41, e.StartParam), codepair.NewDouble(42, e.EndParam),
		codepair.NewDouble(210, e.Normal[0]), codepair.NewDouble(220, e.Normal[1]), codepair.NewDouble(230, e.Normal[2]),
	)
}

// Face3D is a (possibly degenerate) quadrilateral with per-edge visibility
// flags (code 70).
type Face3D struct {
	Record
	Corners    [4][3]float64
	EdgeFlags  int16
}

func (e *Face3D) TypeName() string         { return "3DFACE" }
func (e *Face3D) MinVersion() enums.Version { return enums.R10 }
func (e *Face3D) MaxVersion() enums.Version { return enums.R2018 }
func (e *Face3D) Base() *Record             { return &e.Record }

func (e *Face3D) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 10, 11, 12, 13:
		e.Corners[p.Code-10][0] = mustDouble(p)
	case 20, 21, 22, 23:
		e.Corners[p.Code-20][1] = mustDouble(p)
	case 30, 31, 32, 33:
		e.Corners[p.Code-30][2] = mustDouble(p)
	case 70:
		e.EdgeFlags = mustShort(p)
	default:
		return false, nil
	}
	return true, nil
}

func (e *Face3D) WritePairs(w codepair.Writer, target enums.Version) error {
	for i, c := range e.Corners {
		if err := emitAll(w, codepair.NewDouble(10+i, c[0]), codepair.NewDouble(20+i, c[1]), codepair.NewDouble(30+i, c[2])); err != nil {
			return err
		}
	}
	return emitAll(w, codepair.NewShort(70, e.EdgeFlags))
}

// Solid is a filled quadrilateral (degenerate to a triangle when the last
// two corners coincide).
type Solid struct {
	Record
	Corners   [4][2]float64
	Elevation float64
	Thickness float64
	Normal    [3]float64
}

func (e *Solid) TypeName() string         { return "SOLID" }
func (e *Solid) MinVersion() enums.Version { return enums.R10 }
func (e *Solid) MaxVersion() enums.Version { return enums.R2018 }
func (e *Solid) Base() *Record             { return &e.Record }

func (e *Solid) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 10, 11, 12, 13:
		e.Corners[p.Code-10][0] = mustDouble(p)
	case 20, 21, 22, 23:
		e.Corners[p.Code-20][1] = mustDouble(p)
	case 38:
		e.Elevation = mustDouble(p)
	case 39:
		e.Thickness = mustDouble(p)
	case 210:
		e.Normal[0] = mustDouble(p)
	case 220:
		e.Normal[1] = mustDouble(p)
	case 230:
		e.Normal[2] = mustDouble(p)
	default:
		return false, nil
	}
	return true, nil
}

func (e *Solid) WritePairs(w codepair.Writer, target enums.Version) error {
	for i, c := range e.Corners {
		if err := emitAll(w, codepair.NewDouble(10+i, c[0]), codepair.NewDouble(20+i, c[1])); err != nil {
			return err
		}
	}
	return emitAll(w,
		codepair.NewDouble(38, e.Elevation), codepair.NewDouble(39, e.Thickness),
		codepair.NewDouble(210, e.Normal[0]), codepair.NewDouble(220, e.Normal[1]), codepair.NewDouble(230, e.Normal[2]),
	)
}

func mustDouble(p codepair.Pair) float64 { v, _ := p.Double(); return v }
func mustShort(p codepair.Pair) int16    { v, _ := p.Short(); return v }

func emitAll(w codepair.Writer, pairs ...codepair.Pair) error {
	for _, p := range pairs {
		if err := w.Emit(p); err != nil {
			return err
		}
	}
	return nil
}
