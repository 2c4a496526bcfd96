package entity

import (
	"github.com/drawxchange/dxf/pkg/codepair"
	"github.com/drawxchange/dxf/pkg/enums"
)

func init() {
	register("VIEWPORT", func() Entity {
		return &Viewport{Record: newRecord(), Normal: [3]float64{0, 0, 1}, ViewHeight: 1, Width: 1, Height: 1}
	})
}

// Viewport is a paper-space window onto a model-space view. It only exists
// from R13 on, when paper space/model space viewports were introduced.
type Viewport struct {
	Record
	Center     [3]float64
	Width      float64
	Height     float64
	ViewCenter [2]float64
	ViewHeight float64
	Status     int32
	ID         int32
	Normal     [3]float64
}

func (e *Viewport) TypeName() string         { return "VIEWPORT" }
func (e *Viewport) MinVersion() enums.Version { return enums.R13 }
func (e *Viewport) MaxVersion() enums.Version { return enums.R2018 }
func (e *Viewport) Base() *Record             { return &e.Record }

func (e *Viewport) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 10:
		e.Center[0] = mustDouble(p)
	case 20:
		e.Center[1] = mustDouble(p)
	case 30:
		e.Center[2] = mustDouble(p)
	case 40:
		e.Width = mustDouble(p)
	case 41:
		e.Height = mustDouble(p)
	case 12:
		e.ViewCenter[0] = mustDouble(p)
	case 22:
		e.ViewCenter[1] = mustDouble(p)
	case 45:
		e.ViewHeight = mustDouble(p)
	case 68:
		e.Status = int32(mustShort(p))
	case 90:
		v, _ := p.Int()
		e.ID = v
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

func (e *Viewport) WritePairs(w codepair.Writer, target enums.Version) error {
	return emitAll(w,
		codepair.NewDouble(10, e.Center[0]), codepair.NewDouble(20, e.Center[1]), codepair.NewDouble(30, e.Center[2]),
		codepair.NewDouble(40, e.Width), codepair.NewDouble(41, e.Height),
		codepair.NewDouble(12, e.ViewCenter[0]), codepair.NewDouble(22, e.ViewCenter[1]),
		codepair.NewDouble(45, e.ViewHeight),
		codepair.NewShort(68, int16(e.Status)), codepair.NewInt(90, e.ID),
		codepair.NewDouble(210, e.Normal[0]), codepair.NewDouble(220, e.Normal[1]), codepair.NewDouble(230, e.Normal[2]),
	)
}
