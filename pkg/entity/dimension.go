package entity

import (
	"github.com/drawxchange/dxf/pkg/codepair"
	"github.com/drawxchange/dxf/pkg/enums"
)

func init() {
	register("DIMENSION", func() Entity { return &Dimension{Record: newRecord(), Normal: [3]float64{0, 0, 1}} })
}

// DimensionType mirrors the low 3 bits of group 70, distinguishing the
// linear/aligned/angular/diameter/radius/ordinate subtypes the real format
// packs into one entity type name rather than several.
type DimensionType int16

const (
	DimensionRotated DimensionType = iota
	DimensionAligned
	DimensionAngular
	DimensionDiameter
	DimensionRadius
	DimensionAngular3Point
	DimensionOrdinate
)

// Dimension covers the linear and aligned subtypes directly and carries the
// remaining fields any other subtype needs; Type reports which one a given
// instance is.
type Dimension struct {
	Record
	BlockName    string
	DefPoint     [3]float64
	TextMidpoint [3]float64
	Flags        int16
	Text         string
	LinearPoint1 [3]float64
	LinearPoint2 [3]float64
	Measurement  float64
	Rotation     float64
	Normal       [3]float64
}

func (e *Dimension) Type() DimensionType { return DimensionType(e.Flags & 0x7) }

func (e *Dimension) TypeName() string         { return "DIMENSION" }
func (e *Dimension) MinVersion() enums.Version { return enums.R13 }
func (e *Dimension) MaxVersion() enums.Version { return enums.R2018 }
func (e *Dimension) Base() *Record             { return &e.Record }

func (e *Dimension) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 2:
		e.BlockName, _ = p.Str()
	case 10:
		e.DefPoint[0] = mustDouble(p)
	case 20:
		e.DefPoint[1] = mustDouble(p)
	case 30:
		e.DefPoint[2] = mustDouble(p)
	case 11:
		e.TextMidpoint[0] = mustDouble(p)
	case 21:
		e.TextMidpoint[1] = mustDouble(p)
	case 31:
		e.TextMidpoint[2] = mustDouble(p)
	case 13:
		e.LinearPoint1[0] = mustDouble(p)
	case 23:
		e.LinearPoint1[1] = mustDouble(p)
	case 33:
		e.LinearPoint1[2] = mustDouble(p)
	case 14:
		e.LinearPoint2[0] = mustDouble(p)
	case 24:
		e.LinearPoint2[1] = mustDouble(p)
	case 34:
		e.LinearPoint2[2] = mustDouble(p)
	case 70:
		e.Flags = mustShort(p)
	case 1:
		e.Text, _ = p.Str()
	case 42:
		e.Measurement = mustDouble(p)
	case 50:
		e.Rotation = mustDouble(p)
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

func (e *Dimension) WritePairs(w codepair.Writer, target enums.Version) error {
	return emitAll(w,
		codepair.NewString(2, e.BlockName),
		codepair.NewDouble(10, e.DefPoint[0]), codepair.NewDouble(20, e.DefPoint[1]), codepair.NewDouble(30, e.DefPoint[2]),
		codepair.NewDouble(11, e.TextMidpoint[0]), codepair.NewDouble(21, e.TextMidpoint[1]), codepair.NewDouble(31, e.TextMidpoint[2]),
		codepair.NewDouble(13, e.LinearPoint1[0]), codepair.NewDouble(23, e.LinearPoint1[1]), codepair.NewDouble(33, e.LinearPoint1[2]),
		codepair.NewDouble(14, e.LinearPoint2[0]), codepair.NewDouble(24, e.LinearPoint2[1]), codepair.NewDouble(34, e.LinearPoint2[2]),
		codepair.NewShort(70, e.Flags), codepair.NewString(1, e.Text),
		codepair.NewDouble(42, e.Measurement), codepair.NewDouble(50, e.Rotation),
		codepair.NewDouble(210, e.Normal[0]), codepair.NewDouble(220, e.Normal[1]), codepair.NewDouble(230, e.Normal[2]),
	)
}
