package entity

import (
	"github.com/drawxchange/dxf/pkg/codepair"
	"github.com/drawxchange/dxf/pkg/enums"
)

func init() {
	register("INSERT", func() Entity {
		return &Insert{Record: newRecord(), Scale: [3]float64{1, 1, 1}, Normal: [3]float64{0, 0, 1}}
	})
	register("SEQEND", func() Entity { return &SeqEnd{Record: newRecord()} })
}

// Insert is a block reference. Its trailing ATTRIB run and SEQEND are
// attached by ReadSection/attachSuccessors, not by ApplyPair, since they
// arrive as sibling entities rather than fields of this one.
type Insert struct {
	Record
	BlockName  string
	Insertion  [3]float64
	Scale      [3]float64
	Rotation   float64
	HasAttribs bool
	Normal     [3]float64

	Attributes []*Attrib
	SeqEnd     *SeqEnd
}

func (e *Insert) TypeName() string         { return "INSERT" }
func (e *Insert) MinVersion() enums.Version { return enums.R10 }
func (e *Insert) MaxVersion() enums.Version { return enums.R2018 }
func (e *Insert) Base() *Record             { return &e.Record }

func (e *Insert) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 2:
		e.BlockName, _ = p.Str()
	case 10:
		e.Insertion[0] = mustDouble(p)
	case 20:
		e.Insertion[1] = mustDouble(p)
	case 30:
		e.Insertion[2] = mustDouble(p)
	case 41:
		e.Scale[0] = mustDouble(p)
	case 42:
		e.Scale[1] = mustDouble(p)
	case 43:
		e.Scale[2] = mustDouble(p)
	case 50:
		e.Rotation = mustDouble(p)
	case 66:
		v := mustShort(p)
		e.HasAttribs = v != 0
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

func (e *Insert) WritePairs(w codepair.Writer, target enums.Version) error {
	hasAttribs := e.HasAttribs || len(e.Attributes) > 0
	var attribsFlag int16
	if hasAttribs {
		attribsFlag = 1
	}
	return emitAll(w,
		codepair.NewString(2, e.BlockName),
		codepair.NewDouble(10, e.Insertion[0]), codepair.NewDouble(20, e.Insertion[1]), codepair.NewDouble(30, e.Insertion[2]),
		codepair.NewDouble(41, e.Scale[0]), codepair.NewDouble(42, e.Scale[1]), codepair.NewDouble(43, e.Scale[2]),
		codepair.NewDouble(50, e.Rotation), codepair.NewShort(66, attribsFlag),
		codepair.NewDouble(210, e.Normal[0]), codepair.NewDouble(220, e.Normal[1]), codepair.NewDouble(230, e.Normal[2]),
	)
}

// SeqEnd closes an INSERT's attribute run or a POLYLINE's vertex run. It
// carries only the common record (handle/owner); no variant-specific
// fields.
type SeqEnd struct {
	Record
}

func (e *SeqEnd) TypeName() string         { return "SEQEND" }
func (e *SeqEnd) MinVersion() enums.Version { return enums.R10 }
func (e *SeqEnd) MaxVersion() enums.Version { return enums.R2018 }
func (e *SeqEnd) Base() *Record             { return &e.Record }

func (e *SeqEnd) ApplyPair(p codepair.Pair) (bool, error) { return false, nil }
func (e *SeqEnd) WritePairs(w codepair.Writer, target enums.Version) error { return nil }
