package entity

import (
	"github.com/drawxchange/dxf/pkg/codepair"
	"github.com/drawxchange/dxf/pkg/enums"
)

func init() {
	register("POLYLINE", func() Entity { return &Polyline{Record: newRecord(), Normal: [3]float64{0, 0, 1}} })
	register("VERTEX", func() Entity { return &Vertex{Record: newRecord()} })
	register("LWPOLYLINE", func() Entity { return &LWPolyline{Record: newRecord()} })
	register("SPLINE", func() Entity { return &Spline{Record: newRecord(), Normal: [3]float64{0, 0, 1}} })
}

// Polyline is a legacy (pre-LWPOLYLINE) vertex chain. Its vertices arrive
// as sibling VERTEX entities terminated by SEQEND, attached by
// ReadSection/attachSuccessors.
type Polyline struct {
	Record
	Flags     int16
	Elevation float64
	Normal    [3]float64

	Vertices []*Vertex
	SeqEnd   *SeqEnd
}

func (e *Polyline) TypeName() string         { return "POLYLINE" }
func (e *Polyline) MinVersion() enums.Version { return enums.R10 }
func (e *Polyline) MaxVersion() enums.Version { return enums.R2018 }
func (e *Polyline) Base() *Record             { return &e.Record }

func (e *Polyline) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 70:
		e.Flags = mustShort(p)
	case 30:
		e.Elevation = mustDouble(p)
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

func (e *Polyline) WritePairs(w codepair.Writer, target enums.Version) error {
	return emitAll(w,
		codepair.NewShort(70, e.Flags), codepair.NewDouble(30, e.Elevation),
		codepair.NewDouble(210, e.Normal[0]), codepair.NewDouble(220, e.Normal[1]), codepair.NewDouble(230, e.Normal[2]),
	)
}

// Vertex is one POLYLINE control point.
type Vertex struct {
	Record
	Location [3]float64
	Bulge    float64
	Flags    int16
}

func (e *Vertex) TypeName() string         { return "VERTEX" }
func (e *Vertex) MinVersion() enums.Version { return enums.R10 }
func (e *Vertex) MaxVersion() enums.Version { return enums.R2018 }
func (e *Vertex) Base() *Record             { return &e.Record }

func (e *Vertex) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 10:
		e.Location[0] = mustDouble(p)
	case 20:
		e.Location[1] = mustDouble(p)
	case 30:
		e.Location[2] = mustDouble(p)
	case 42:
		e.Bulge = mustDouble(p)
	case 70:
		e.Flags = mustShort(p)
	default:
		return false, nil
	}
	return true, nil
}

func (e *Vertex) WritePairs(w codepair.Writer, target enums.Version) error {
	return emitAll(w,
		codepair.NewDouble(10, e.Location[0]), codepair.NewDouble(20, e.Location[1]), codepair.NewDouble(30, e.Location[2]),
		codepair.NewDouble(42, e.Bulge), codepair.NewShort(70, e.Flags),
	)
}

// LWPolyline stores its vertices inline, interleaved as repeated (10,20)
// pairs with an optional trailing (42) bulge per vertex - the "allow
// multiple" field shape, handled here by treating each code 10 as the
// start of a new vertex.
type LWPolyline struct {
	Record
	Flags     int16
	Elevation float64
	Vertices  [][2]float64
	Bulges    []float64
}

func (e *LWPolyline) TypeName() string         { return "LWPOLYLINE" }
func (e *LWPolyline) MinVersion() enums.Version { return enums.R14 }
func (e *LWPolyline) MaxVersion() enums.Version { return enums.R2018 }
func (e *LWPolyline) Base() *Record             { return &e.Record }

func (e *LWPolyline) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 70:
		e.Flags = mustShort(p)
	case 38:
		e.Elevation = mustDouble(p)
	case 10:
		e.Vertices = append(e.Vertices, [2]float64{mustDouble(p), 0})
		e.Bulges = append(e.Bulges, 0)
	case 20:
		if n := len(e.Vertices); n > 0 {
			e.Vertices[n-1][1] = mustDouble(p)
		}
	case 42:
		if n := len(e.Bulges); n > 0 {
			e.Bulges[n-1] = mustDouble(p)
		}
	default:
		return false, nil
	}
	return true, nil
}

func (e *LWPolyline) WritePairs(w codepair.Writer, target enums.Version) error {
	if err := emitAll(w, codepair.NewShort(70, e.Flags), codepair.NewDouble(38, e.Elevation)); err != nil {
		return err
	}
	for i, v := range e.Vertices {
		if err := emitAll(w, codepair.NewDouble(10, v[0]), codepair.NewDouble(20, v[1])); err != nil {
			return err
		}
		if i < len(e.Bulges) && e.Bulges[i] != 0 {
			if err := w.Emit(codepair.NewDouble(42, e.Bulges[i])); err != nil {
				return err
			}
		}
	}
	return nil
}

// Spline stores knots and control points inline as repeated groups. Each
// code 40 appends a knot; each code 10 starts a new control point, filled
// in by the following 20/30.
type Spline struct {
	Record
	Flags         int16
	Degree        int16
	Knots         []float64
	ControlPoints [][3]float64
	Normal        [3]float64
}

func (e *Spline) TypeName() string         { return "SPLINE" }
func (e *Spline) MinVersion() enums.Version { return enums.R13 }
func (e *Spline) MaxVersion() enums.Version { return enums.R2018 }
func (e *Spline) Base() *Record             { return &e.Record }

func (e *Spline) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 70:
		e.Flags = mustShort(p)
	case 71:
		e.Degree = mustShort(p)
	case 40:
		e.Knots = append(e.Knots, mustDouble(p))
	case 10:
		e.ControlPoints = append(e.ControlPoints, [3]float64{mustDouble(p), 0, 0})
	case 20:
		if n := len(e.ControlPoints); n > 0 {
			e.ControlPoints[n-1][1] = mustDouble(p)
		}
	case 30:
		if n := len(e.ControlPoints); n > 0 {
			e.ControlPoints[n-1][2] = mustDouble(p)
		}
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

func (e *Spline) WritePairs(w codepair.Writer, target enums.Version) error {
	if err := emitAll(w, codepair.NewShort(70, e.Flags), codepair.NewShort(71, e.Degree)); err != nil {
		return err
	}
	for _, k := range e.Knots {
		if err := w.Emit(codepair.NewDouble(40, k)); err != nil {
			return err
		}
	}
	for _, c := range e.ControlPoints {
		if err := emitAll(w, codepair.NewDouble(10, c[0]), codepair.NewDouble(20, c[1]), codepair.NewDouble(30, c[2])); err != nil {
			return err
		}
	}
	return emitAll(w, codepair.NewDouble(210, e.Normal[0]), codepair.NewDouble(220, e.Normal[1]), codepair.NewDouble(230, e.Normal[2]))
}
