package enums

// Units is the $INSUNITS/$MEASUREMENT family of drawing unit enums.
// FromWireUnits falls back to Unitless for any undocumented integer, per
// the library's fallback-on-unknown policy.
type Units int16

const (
	UnitsUnitless Units = 0
	UnitsInches   Units = 1
	UnitsFeet     Units = 2
	UnitsMiles    Units = 3
	UnitsMillimeters Units = 4
	UnitsCentimeters Units = 5
	UnitsMeters      Units = 6
	UnitsKilometers  Units = 7
	UnitsMicroinches Units = 8
	UnitsMils        Units = 9
	UnitsYards       Units = 10
	UnitsAngstroms   Units = 11
	UnitsNanometers  Units = 12
	UnitsMicrons     Units = 13
	UnitsDecimeters  Units = 14
	UnitsDecameters  Units = 15
	UnitsHectometers Units = 16
	UnitsGigameters  Units = 17
	UnitsAstronomicalUnits Units = 18
	UnitsLightYears  Units = 19
	UnitsParsecs     Units = 20
)

func FromWireUnits(raw int16) Units {
	u := Units(raw)
	if u >= UnitsUnitless && u <= UnitsParsecs {
		return u
	}
	return UnitsUnitless
}

func (u Units) ToWire() int16 { return int16(u) }

// PointFormat governs how POINT entities render their "node" marker
// ($PDMODE); the documented range is 0-4 combined with optional flag bits.
// Unknown values fall back to PointFormatDot.
type PointFormat int16

const (
	PointFormatDot    PointFormat = 0
	PointFormatNone   PointFormat = 1
	PointFormatPlus   PointFormat = 2
	PointFormatCross  PointFormat = 3
	PointFormatTick   PointFormat = 4
)

func FromWirePointFormat(raw int16) PointFormat {
	base := raw & 0x0F
	switch PointFormat(base) {
	case PointFormatDot, PointFormatNone, PointFormatPlus, PointFormatCross, PointFormatTick:
		return PointFormat(base)
	default:
		return PointFormatDot
	}
}

func (p PointFormat) ToWire() int16 { return int16(p) }

// LineSpacingStyle is the MTEXT/paragraph line-spacing style (group 73).
type LineSpacingStyle int16

const (
	LineSpacingAtLeast LineSpacingStyle = 1
	LineSpacingExact   LineSpacingStyle = 2
)

func FromWireLineSpacingStyle(raw int16) LineSpacingStyle {
	switch LineSpacingStyle(raw) {
	case LineSpacingAtLeast, LineSpacingExact:
		return LineSpacingStyle(raw)
	default:
		return LineSpacingAtLeast
	}
}

func (s LineSpacingStyle) ToWire() int16 { return int16(s) }

// AttachmentPoint is the MTEXT attachment point (group 71): a 3x3 grid,
// 1=top-left .. 9=bottom-right.
type AttachmentPoint int16

const (
	AttachmentTopLeft AttachmentPoint = iota + 1
	AttachmentTopCenter
	AttachmentTopRight
	AttachmentMiddleLeft
	AttachmentMiddleCenter
	AttachmentMiddleRight
	AttachmentBottomLeft
	AttachmentBottomCenter
	AttachmentBottomRight
)

func FromWireAttachmentPoint(raw int16) AttachmentPoint {
	a := AttachmentPoint(raw)
	if a >= AttachmentTopLeft && a <= AttachmentBottomRight {
		return a
	}
	return AttachmentTopLeft
}

func (a AttachmentPoint) ToWire() int16 { return int16(a) }

// HorizontalTextJustification is TEXT's group-72 horizontal alignment.
type HorizontalTextJustification int16

const (
	HJustifyLeft HorizontalTextJustification = iota
	HJustifyCenter
	HJustifyRight
	HJustifyAligned
	HJustifyMiddle
	HJustifyFit
)

func FromWireHorizontalJustification(raw int16) HorizontalTextJustification {
	h := HorizontalTextJustification(raw)
	if h >= HJustifyLeft && h <= HJustifyFit {
		return h
	}
	return HJustifyLeft
}

func (h HorizontalTextJustification) ToWire() int16 { return int16(h) }

// VerticalTextJustification is TEXT's group-73 vertical alignment.
type VerticalTextJustification int16

const (
	VJustifyBaseline VerticalTextJustification = iota
	VJustifyBottom
	VJustifyMiddle
	VJustifyTop
)

func FromWireVerticalJustification(raw int16) VerticalTextJustification {
	v := VerticalTextJustification(raw)
	if v >= VJustifyBaseline && v <= VJustifyTop {
		return v
	}
	return VJustifyBaseline
}

func (v VerticalTextJustification) ToWire() int16 { return int16(v) }

// PlotStyleType (group 380) controls how an entity resolves its plot style.
type PlotStyleType int16

const (
	PlotStyleByLayer  PlotStyleType = 0
	PlotStyleByBlock  PlotStyleType = 1
	PlotStyleByDictionaryDefault PlotStyleType = 2
	PlotStyleByObjectID PlotStyleType = 3
)

func FromWirePlotStyleType(raw int16) PlotStyleType {
	p := PlotStyleType(raw)
	if p >= PlotStyleByLayer && p <= PlotStyleByObjectID {
		return p
	}
	return PlotStyleByLayer
}

func (p PlotStyleType) ToWire() int16 { return int16(p) }
