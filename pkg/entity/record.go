// Package entity implements the drawing's entity/object sum type: a
// common record shared by every variant, the runtime field-table contract
// (TypeName/MinVersion/MaxVersion/BaseFields/WritePairs/ApplyPair) each
// variant satisfies, and a representative set of graphics and non-graphical
// variants spanning every custom-reader case the format requires.
package entity

import (
	"strconv"

	"github.com/drawxchange/dxf/pkg/codepair"
	"github.com/drawxchange/dxf/pkg/enums"
	"github.com/drawxchange/dxf/pkg/xdata"
)

// Record is the common entity/object record every variant embeds: handle,
// owner, layer, linetype, color, lineweight, transparency, material, plot
// style, and the two trailing data lists.
type Record struct {
	Handle   codepair.Handle
	Owner    codepair.Handle
	Layer    string
	LineType string

	Color      enums.Color
	TrueColor  *enums.TrueColor
	LineWeight enums.LineWeight

	Transparency *int32
	Material     codepair.Handle
	PlotStyle    codepair.Handle

	ExtData []xdata.Group
	XData   []xdata.Block

	// RawPairs preserves any pair the variant's field table didn't claim,
	// in encounter order, so an entity this library understands only
	// partially still round-trips the rest verbatim.
	RawPairs []codepair.Pair
}

func newRecord() Record {
	return Record{Color: enums.ColorByLayer, LineWeight: enums.LineWeightByLayer}
}

// ApplyCommonPair handles the handful of codes every variant shares.
// ReadOne calls it directly for handle (5) and owner (330); every other
// pair reaches it only after the variant's own ApplyPair has rejected it
// (see entity.go's ReadOne). It reports whether it claimed p.
func (rec *Record) ApplyCommonPair(p codepair.Pair) bool {
	switch p.Code {
	case 5:
		s, err := p.Str()
		if err != nil {
			return false
		}
		if v, err := strconv.ParseUint(s, 16, 64); err == nil {
			rec.Handle = codepair.Handle(v)
		}
		return true
	case 330:
		h, err := p.HandleValue()
		if err != nil {
			return false
		}
		rec.Owner = h
		return true
	case 8:
		s, _ := p.Str()
		rec.Layer = s
		return true
	case 6:
		s, _ := p.Str()
		rec.LineType = s
		return true
	case 62:
		v, _ := p.Short()
		rec.Color = enums.FromWireColor(v)
		return true
	case 420:
		v, _ := p.Int()
		tc := enums.TrueColor(v)
		rec.TrueColor = &tc
		return true
	case 370:
		v, _ := p.Short()
		rec.LineWeight = enums.FromWireLineWeight(v)
		return true
	case 440:
		v, _ := p.Int()
		rec.Transparency = &v
		return true
	case 347:
		h, _ := p.HandleValue()
		rec.Material = h
		return true
	case 390:
		h, _ := p.HandleValue()
		rec.PlotStyle = h
		return true
	case 100:
		return true // AcDb* subclass marker, consumed and otherwise ignored
	default:
		return false
	}
}

// WriteCommonPairs emits the common record's fields that differ from
// their defaults, in a stable order: zero for handles, "" for the layer,
// nil for true color and transparency, ByLayer for color and lineweight,
// and "" or "BYLAYER" for the linetype.
func (rec *Record) WriteCommonPairs(w codepair.Writer) error {
	if rec.Handle != 0 {
		if err := w.Emit(codepair.NewString(5, strconv.FormatUint(uint64(rec.Handle), 16))); err != nil {
			return err
		}
	}
	if rec.Owner != 0 {
		if err := w.Emit(codepair.NewHandle(330, rec.Owner)); err != nil {
			return err
		}
	}
	if rec.Layer != "" {
		if err := w.Emit(codepair.NewString(8, rec.Layer)); err != nil {
			return err
		}
	}
	if rec.LineType != "" && rec.LineType != "BYLAYER" {
		if err := w.Emit(codepair.NewString(6, rec.LineType)); err != nil {
			return err
		}
	}
	if rec.Color != enums.ColorByLayer {
		if err := w.Emit(codepair.NewShort(62, rec.Color.ToWire())); err != nil {
			return err
		}
	}
	if rec.TrueColor != nil {
		if err := w.Emit(codepair.NewInt(420, int32(*rec.TrueColor))); err != nil {
			return err
		}
	}
	if rec.LineWeight != enums.LineWeightByLayer {
		if err := w.Emit(codepair.NewShort(370, rec.LineWeight.ToWire())); err != nil {
			return err
		}
	}
	if rec.Transparency != nil {
		if err := w.Emit(codepair.NewInt(440, *rec.Transparency)); err != nil {
			return err
		}
	}
	if rec.Material != 0 {
		if err := w.Emit(codepair.NewHandle(347, rec.Material)); err != nil {
			return err
		}
	}
	if rec.PlotStyle != 0 {
		if err := w.Emit(codepair.NewHandle(390, rec.PlotStyle)); err != nil {
			return err
		}
	}
	return nil
}

// WriteTrailingData emits extension data then XDATA, in insertion order,
// last among the entity's pairs.
func (rec *Record) WriteTrailingData(w codepair.Writer) error {
	for _, g := range rec.ExtData {
		if err := xdata.WriteGroup(w, g); err != nil {
			return err
		}
	}
	for _, b := range rec.XData {
		if err := xdata.WriteBlock(w, b); err != nil {
			return err
		}
	}
	return nil
}
