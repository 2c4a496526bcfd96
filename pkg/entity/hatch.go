package entity

import (
	"github.com/drawxchange/dxf/pkg/codepair"
	"github.com/drawxchange/dxf/pkg/enums"
)

func init() {
	register("HATCH", func() Entity { return &Hatch{Record: newRecord(), Normal: [3]float64{0, 0, 1}, PatternScale: 1} })
}

// BoundaryPath is one loop of a HATCH's boundary set. Vertices interleave as
// repeated (10,20) pairs the same way LWPOLYLINE's do.
type BoundaryPath struct {
	Flags    int32
	Vertices [][2]float64
	Bulges   []float64
}

// Hatch is a filled region bounded by one or more BoundaryPath loops. The
// boundary-path run is threaded through ApplyPair: code 92 opens a new
// path, and the following 10/20/42 triples populate it, mirroring how
// LWPolyline threads its own vertex run.
type Hatch struct {
	Record
	PatternName  string
	IsSolid      bool
	PatternAngle float64
	PatternScale float64
	Elevation    float64
	Normal       [3]float64
	Paths        []BoundaryPath
}

func (e *Hatch) TypeName() string         { return "HATCH" }
func (e *Hatch) MinVersion() enums.Version { return enums.R13 }
func (e *Hatch) MaxVersion() enums.Version { return enums.R2018 }
func (e *Hatch) Base() *Record             { return &e.Record }

func (e *Hatch) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 2:
		e.PatternName, _ = p.Str()
	case 70:
		e.IsSolid = mustShort(p) != 0
	case 30:
		e.Elevation = mustDouble(p)
	case 41:
		e.PatternScale = mustDouble(p)
	case 52:
		e.PatternAngle = mustDouble(p)
	case 210:
		e.Normal[0] = mustDouble(p)
	case 220:
		e.Normal[1] = mustDouble(p)
	case 230:
		e.Normal[2] = mustDouble(p)
	case 92:
		flags, _ := p.Int()
		e.Paths = append(e.Paths, BoundaryPath{Flags: flags})
	case 10:
		if n := len(e.Paths); n > 0 {
			path := &e.Paths[n-1]
			path.Vertices = append(path.Vertices, [2]float64{mustDouble(p), 0})
			path.Bulges = append(path.Bulges, 0)
		}
	case 20:
		if n := len(e.Paths); n > 0 {
			path := &e.Paths[n-1]
			if m := len(path.Vertices); m > 0 {
				path.Vertices[m-1][1] = mustDouble(p)
			}
		}
	case 42:
		if n := len(e.Paths); n > 0 {
			path := &e.Paths[n-1]
			if m := len(path.Bulges); m > 0 {
				path.Bulges[m-1] = mustDouble(p)
			}
		}
	default:
		return false, nil
	}
	return true, nil
}

func (e *Hatch) WritePairs(w codepair.Writer, target enums.Version) error {
	var solidFlag int16
	if e.IsSolid {
		solidFlag = 1
	}
	if err := emitAll(w,
		codepair.NewString(2, e.PatternName), codepair.NewShort(70, solidFlag),
		codepair.NewDouble(30, e.Elevation), codepair.NewDouble(41, e.PatternScale), codepair.NewDouble(52, e.PatternAngle),
		codepair.NewDouble(210, e.Normal[0]), codepair.NewDouble(220, e.Normal[1]), codepair.NewDouble(230, e.Normal[2]),
		codepair.NewInt(91, int32(len(e.Paths))),
	); err != nil {
		return err
	}
	for _, path := range e.Paths {
		if err := w.Emit(codepair.NewInt(92, path.Flags)); err != nil {
			return err
		}
		for i, v := range path.Vertices {
			if err := emitAll(w, codepair.NewDouble(10, v[0]), codepair.NewDouble(20, v[1])); err != nil {
				return err
			}
			if i < len(path.Bulges) && path.Bulges[i] != 0 {
				if err := w.Emit(codepair.NewDouble(42, path.Bulges[i])); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
