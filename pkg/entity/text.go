package entity

import (
	"github.com/drawxchange/dxf/pkg/codepair"
	"github.com/drawxchange/dxf/pkg/enums"
)

func init() {
	register("TEXT", func() Entity { return &Text{Record: newRecord(), Normal: [3]float64{0, 0, 1}, Height: 1} })
	register("MTEXT", func() Entity { return &MText{Record: newRecord(), Normal: [3]float64{0, 0, 1}} })
	register("ATTRIB", func() Entity { return &Attrib{Record: newRecord(), Normal: [3]float64{0, 0, 1}, Height: 1} })
	register("ATTDEF", func() Entity { return &Attdef{Record: newRecord(), Normal: [3]float64{0, 0, 1}, Height: 1} })
}

// Text is a single-line text entity.
type Text struct {
	Record
	Insertion [3]float64
	Height    float64
	Value     string
	Rotation  float64
	Style     string
	Normal    [3]float64
}

func (e *Text) TypeName() string         { return "TEXT" }
func (e *Text) MinVersion() enums.Version { return enums.R10 }
func (e *Text) MaxVersion() enums.Version { return enums.R2018 }
func (e *Text) Base() *Record             { return &e.Record }

func (e *Text) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 10:
		e.Insertion[0] = mustDouble(p)
	case 20:
		e.Insertion[1] = mustDouble(p)
	case 30:
		e.Insertion[2] = mustDouble(p)
	case 40:
		e.Height = mustDouble(p)
	case 1:
		e.Value, _ = p.Str()
	case 50:
		e.Rotation = mustDouble(p)
	case 7:
		e.Style, _ = p.Str()
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

func (e *Text) WritePairs(w codepair.Writer, target enums.Version) error {
	return emitAll(w,
		codepair.NewDouble(10, e.Insertion[0]), codepair.NewDouble(20, e.Insertion[1]), codepair.NewDouble(30, e.Insertion[2]),
		codepair.NewDouble(40, e.Height), codepair.NewString(1, e.Value), codepair.NewDouble(50, e.Rotation),
		codepair.NewString(7, e.Style),
		codepair.NewDouble(210, e.Normal[0]), codepair.NewDouble(220, e.Normal[1]), codepair.NewDouble(230, e.Normal[2]),
	)
}

// MText is a paragraph-text entity. Its value arrives as one primary chunk
// (code 1, up to 250 characters) plus zero or more code-3 continuation chunks;
// ApplyPair's default field-table behavior already handles this correctly
// since it is called once per pair in encounter order - each code-3 simply
// appends.
type MText struct {
	Record
	Insertion     [3]float64
	Height        float64
	RefRectWidth  float64
	Value         string
	Style         string
	Normal        [3]float64
}

func (e *MText) TypeName() string         { return "MTEXT" }
func (e *MText) MinVersion() enums.Version { return enums.R13 }
func (e *MText) MaxVersion() enums.Version { return enums.R2018 }
func (e *MText) Base() *Record             { return &e.Record }

func (e *MText) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 10:
		e.Insertion[0] = mustDouble(p)
	case 20:
		e.Insertion[1] = mustDouble(p)
	case 30:
		e.Insertion[2] = mustDouble(p)
	case 40:
		e.Height = mustDouble(p)
	case 41:
		e.RefRectWidth = mustDouble(p)
	case 1:
		e.Value = mustStr(p)
	case 3:
		e.Value += mustStr(p)
	case 7:
		e.Style, _ = p.Str()
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

func (e *MText) WritePairs(w codepair.Writer, target enums.Version) error {
	if err := emitAll(w,
		codepair.NewDouble(10, e.Insertion[0]), codepair.NewDouble(20, e.Insertion[1]), codepair.NewDouble(30, e.Insertion[2]),
		codepair.NewDouble(40, e.Height), codepair.NewDouble(41, e.RefRectWidth),
	); err != nil {
		return err
	}
	if err := writeMTextChunks(w, e.Value); err != nil {
		return err
	}
	return emitAll(w,
		codepair.NewString(7, e.Style),
		codepair.NewDouble(210, e.Normal[0]), codepair.NewDouble(220, e.Normal[1]), codepair.NewDouble(230, e.Normal[2]),
	)
}

// writeMTextChunks splits value into a leading code-1 chunk plus code-3
// continuation chunks of at most 250 characters (runes) each, mirroring
// the real writer's wire limit.
func writeMTextChunks(w codepair.Writer, value string) error {
	const chunkLen = 250
	runes := []rune(value)
	if len(runes) <= chunkLen {
		return w.Emit(codepair.NewString(1, value))
	}
	first := string(runes[:chunkLen])
	if err := w.Emit(codepair.NewString(1, first)); err != nil {
		return err
	}
	for i := chunkLen; i < len(runes); i += chunkLen {
		end := i + chunkLen
		if end > len(runes) {
			end = len(runes)
		}
		if err := w.Emit(codepair.NewString(3, string(runes[i:end]))); err != nil {
			return err
		}
	}
	return nil
}

// Attrib is an attribute instance attached to an INSERT.
type Attrib struct {
	Record
	Insertion [3]float64
	Height    float64
	Value     string
	Tag       string
	Flags     int16
	Normal    [3]float64
}

func (e *Attrib) TypeName() string         { return "ATTRIB" }
func (e *Attrib) MinVersion() enums.Version { return enums.R10 }
func (e *Attrib) MaxVersion() enums.Version { return enums.R2018 }
func (e *Attrib) Base() *Record             { return &e.Record }

func (e *Attrib) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 10:
		e.Insertion[0] = mustDouble(p)
	case 20:
		e.Insertion[1] = mustDouble(p)
	case 30:
		e.Insertion[2] = mustDouble(p)
	case 40:
		e.Height = mustDouble(p)
	case 1:
		e.Value, _ = p.Str()
	case 2:
		e.Tag, _ = p.Str()
	case 70:
		e.Flags = mustShort(p)
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

func (e *Attrib) WritePairs(w codepair.Writer, target enums.Version) error {
	return emitAll(w,
		codepair.NewDouble(10, e.Insertion[0]), codepair.NewDouble(20, e.Insertion[1]), codepair.NewDouble(30, e.Insertion[2]),
		codepair.NewDouble(40, e.Height), codepair.NewString(1, e.Value), codepair.NewString(2, e.Tag),
		codepair.NewShort(70, e.Flags),
		codepair.NewDouble(210, e.Normal[0]), codepair.NewDouble(220, e.Normal[1]), codepair.NewDouble(230, e.Normal[2]),
	)
}

// Attdef is an attribute definition template stored inside a BLOCK.
type Attdef struct {
	Record
	Insertion [3]float64
	Height    float64
	Value     string
	Tag       string
	Prompt    string
	Flags     int16
	Normal    [3]float64
}

func (e *Attdef) TypeName() string         { return "ATTDEF" }
func (e *Attdef) MinVersion() enums.Version { return enums.R10 }
func (e *Attdef) MaxVersion() enums.Version { return enums.R2018 }
func (e *Attdef) Base() *Record             { return &e.Record }

func (e *Attdef) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 10:
		e.Insertion[0] = mustDouble(p)
	case 20:
		e.Insertion[1] = mustDouble(p)
	case 30:
		e.Insertion[2] = mustDouble(p)
	case 40:
		e.Height = mustDouble(p)
	case 1:
		e.Value, _ = p.Str()
	case 2:
		e.Tag, _ = p.Str()
	case 3:
		e.Prompt, _ = p.Str()
	case 70:
		e.Flags = mustShort(p)
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

func (e *Attdef) WritePairs(w codepair.Writer, target enums.Version) error {
	return emitAll(w,
		codepair.NewDouble(10, e.Insertion[0]), codepair.NewDouble(20, e.Insertion[1]), codepair.NewDouble(30, e.Insertion[2]),
		codepair.NewDouble(40, e.Height), codepair.NewString(1, e.Value), codepair.NewString(2, e.Tag), codepair.NewString(3, e.Prompt),
		codepair.NewShort(70, e.Flags),
		codepair.NewDouble(210, e.Normal[0]), codepair.NewDouble(220, e.Normal[1]), codepair.NewDouble(230, e.Normal[2]),
	)
}

func mustStr(p codepair.Pair) string { s, _ := p.Str(); return s }
