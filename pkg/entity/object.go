package entity

import (
	"github.com/drawxchange/dxf/pkg/codepair"
	"github.com/drawxchange/dxf/pkg/enums"
)

// Non-graphical objects satisfy the same TypeName/MinVersion/MaxVersion/
// Base/ApplyPair/WritePairs contract as graphics entities and share
// this package's registry/dispatch, since an OBJECTS-section record and an
// ENTITIES-section entity differ only in which group codes they carry, not
// in how they are read or written.

func init() {
	register("DICTIONARY", func() Entity { return &Dictionary{Record: newRecord()} })
	register("XRECORD", func() Entity { return &XRecord{Record: newRecord()} })
	register("LAYOUT", func() Entity { return &Layout{Record: newRecord()} })
	register("IMAGEDEF", func() Entity { return &ImageDef{Record: newRecord()} })
	register("GROUP", func() Entity { return &Group{Record: newRecord()} })
	register("MLINESTYLE", func() Entity { return &MLineStyle{Record: newRecord()} })
}

// DictionaryEntry is one (name, owned-object handle) slot.
type DictionaryEntry struct {
	Name   string
	Handle codepair.Handle
}

// Dictionary maps names to owned-object handles - the structure the OBJECTS
// section uses to reach everything not reachable from a table or block.
type Dictionary struct {
	Record
	HardOwned bool
	Entries   []DictionaryEntry
}

func (e *Dictionary) TypeName() string         { return "DICTIONARY" }
func (e *Dictionary) MinVersion() enums.Version { return enums.R13 }
func (e *Dictionary) MaxVersion() enums.Version { return enums.R2018 }
func (e *Dictionary) Base() *Record             { return &e.Record }

func (e *Dictionary) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 280:
		e.HardOwned = mustShort(p) != 0
	case 3:
		name, _ := p.Str()
		e.Entries = append(e.Entries, DictionaryEntry{Name: name})
	case 350, 360:
		if n := len(e.Entries); n > 0 && e.Entries[n-1].Handle == 0 {
			h, _ := p.HandleValue()
			e.Entries[n-1].Handle = h
		}
	default:
		return false, nil
	}
	return true, nil
}

func (e *Dictionary) WritePairs(w codepair.Writer, target enums.Version) error {
	var hardOwned int16
	if e.HardOwned {
		hardOwned = 1
	}
	if err := w.Emit(codepair.NewShort(280, hardOwned)); err != nil {
		return err
	}
	for _, entry := range e.Entries {
		if err := emitAll(w, codepair.NewString(3, entry.Name), codepair.NewHandle(350, entry.Handle)); err != nil {
			return err
		}
	}
	return nil
}

// XRecord stores an arbitrary pair sequence verbatim, for data an
// application attaches that has no dedicated object type. ApplyPair claims
// every pair it sees rather than matching specific codes.
type XRecord struct {
	Record
	CloningFlag int16
	Data        []codepair.Pair
}

func (e *XRecord) TypeName() string         { return "XRECORD" }
func (e *XRecord) MinVersion() enums.Version { return enums.R13 }
func (e *XRecord) MaxVersion() enums.Version { return enums.R2018 }
func (e *XRecord) Base() *Record             { return &e.Record }

func (e *XRecord) ApplyPair(p codepair.Pair) (bool, error) {
	if p.Code == 280 {
		e.CloningFlag = mustShort(p)
		return true, nil
	}
	e.Data = append(e.Data, p)
	return true, nil
}

func (e *XRecord) WritePairs(w codepair.Writer, target enums.Version) error {
	if err := w.Emit(codepair.NewShort(280, e.CloningFlag)); err != nil {
		return err
	}
	for _, p := range e.Data {
		if err := w.Emit(p); err != nil {
			return err
		}
	}
	return nil
}

// Layout is a named paper-space or model-space tab.
type Layout struct {
	Record
	Name     string
	Flags    int16
	TabOrder int16
}

func (e *Layout) TypeName() string         { return "LAYOUT" }
func (e *Layout) MinVersion() enums.Version { return enums.R2000 }
func (e *Layout) MaxVersion() enums.Version { return enums.R2018 }
func (e *Layout) Base() *Record             { return &e.Record }

func (e *Layout) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 1:
		e.Name, _ = p.Str()
	case 70:
		e.Flags = mustShort(p)
	case 71:
		e.TabOrder = mustShort(p)
	default:
		return false, nil
	}
	return true, nil
}

func (e *Layout) WritePairs(w codepair.Writer, target enums.Version) error {
	return emitAll(w, codepair.NewString(1, e.Name), codepair.NewShort(70, e.Flags), codepair.NewShort(71, e.TabOrder))
}

// ImageDef references a raster image file an IMAGE entity instantiates.
type ImageDef struct {
	Record
	FilePath string
	Width    float64
	Height   float64
	Loaded   bool
}

func (e *ImageDef) TypeName() string         { return "IMAGEDEF" }
func (e *ImageDef) MinVersion() enums.Version { return enums.R14 }
func (e *ImageDef) MaxVersion() enums.Version { return enums.R2018 }
func (e *ImageDef) Base() *Record             { return &e.Record }

func (e *ImageDef) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 1:
		e.FilePath, _ = p.Str()
	case 10:
		e.Width = mustDouble(p)
	case 20:
		e.Height = mustDouble(p)
	case 280:
		e.Loaded = mustShort(p) != 0
	default:
		return false, nil
	}
	return true, nil
}

func (e *ImageDef) WritePairs(w codepair.Writer, target enums.Version) error {
	var loaded int16
	if e.Loaded {
		loaded = 1
	}
	return emitAll(w,
		codepair.NewString(1, e.FilePath),
		codepair.NewDouble(10, e.Width), codepair.NewDouble(20, e.Height),
		codepair.NewShort(280, loaded),
	)
}

// Group is a named, unordered set of entity handles with no drawing
// presence of its own.
type Group struct {
	Record
	Description string
	Selectable  bool
	Members     []codepair.Handle
}

func (e *Group) TypeName() string         { return "GROUP" }
func (e *Group) MinVersion() enums.Version { return enums.R13 }
func (e *Group) MaxVersion() enums.Version { return enums.R2018 }
func (e *Group) Base() *Record             { return &e.Record }

func (e *Group) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 300:
		e.Description, _ = p.Str()
	case 71:
		e.Selectable = mustShort(p) != 0
	case 340:
		h, _ := p.HandleValue()
		e.Members = append(e.Members, h)
	default:
		return false, nil
	}
	return true, nil
}

func (e *Group) WritePairs(w codepair.Writer, target enums.Version) error {
	var selectable int16
	if e.Selectable {
		selectable = 1
	}
	if err := emitAll(w, codepair.NewString(300, e.Description), codepair.NewShort(71, selectable)); err != nil {
		return err
	}
	for _, h := range e.Members {
		if err := w.Emit(codepair.NewHandle(340, h)); err != nil {
			return err
		}
	}
	return nil
}

// MLineStyleElement is one offset line within a multiline style.
type MLineStyleElement struct {
	Offset   float64
	Color    enums.Color
	LineType string
}

// MLineStyle names a reusable multiline profile: a stack of offset lines,
// each with its own color and linetype.
type MLineStyle struct {
	Record
	Name        string
	Description string
	Flags       int16
	Elements    []MLineStyleElement
}

func (e *MLineStyle) TypeName() string         { return "MLINESTYLE" }
func (e *MLineStyle) MinVersion() enums.Version { return enums.R13 }
func (e *MLineStyle) MaxVersion() enums.Version { return enums.R2018 }
func (e *MLineStyle) Base() *Record             { return &e.Record }

func (e *MLineStyle) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 2:
		e.Name, _ = p.Str()
	case 3:
		e.Description, _ = p.Str()
	case 70:
		e.Flags = mustShort(p)
	case 49:
		e.Elements = append(e.Elements, MLineStyleElement{Offset: mustDouble(p)})
	case 62:
		if n := len(e.Elements); n > 0 {
			v := mustShort(p)
			e.Elements[n-1].Color = enums.FromWireColor(v)
		}
	case 6:
		if n := len(e.Elements); n > 0 {
			s, _ := p.Str()
			e.Elements[n-1].LineType = s
		}
	default:
		return false, nil
	}
	return true, nil
}

func (e *MLineStyle) WritePairs(w codepair.Writer, target enums.Version) error {
	if err := emitAll(w,
		codepair.NewString(2, e.Name), codepair.NewString(3, e.Description), codepair.NewShort(70, e.Flags),
	); err != nil {
		return err
	}
	for _, el := range e.Elements {
		if err := emitAll(w,
			codepair.NewDouble(49, el.Offset),
			codepair.NewShort(62, el.Color.ToWire()),
			codepair.NewString(6, el.LineType),
		); err != nil {
			return err
		}
	}
	return nil
}
