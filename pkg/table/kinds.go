package table

import (
	"github.com/drawxchange/dxf/pkg/codepair"
	"github.com/drawxchange/dxf/pkg/enums"
)

func init() {
	register("LAYER", func() Entry { return &Layer{LineWeight: enums.LineWeightByDefault, Plotting: true} })
	register("LTYPE", func() Entry { return &LType{} })
	register("STYLE", func() Entry { return &Style{WidthFactor: 1} })
	register("VIEW", func() Entry { return &View{} })
	register("UCS", func() Entry { return &UCS{XAxis: [3]float64{1, 0, 0}, YAxis: [3]float64{0, 1, 0}} })
	register("VPORT", func() Entry { return &VPort{Height: 1} })
	register("DIMSTYLE", func() Entry { return &DimStyle{DimScale: 1, DimASZ: 0.18} })
	register("BLOCK_RECORD", func() Entry { return &BlockRecord{} })
	register("APPID", func() Entry { return &AppID{} })
}

func mustDouble(p codepair.Pair) float64 { v, _ := p.Double(); return v }
func mustShort(p codepair.Pair) int16    { v, _ := p.Short(); return v }

// Layer is a named drawing layer: visibility/lock state plus default color,
// linetype, and lineweight for entities that inherit "BYLAYER".
type Layer struct {
	Common
	Color      enums.Color
	LineType   string
	LineWeight enums.LineWeight
	Plotting   bool
}

func (e *Layer) TypeName() string { return "LAYER" }
func (e *Layer) Base() *Common    { return &e.Common }

func (e *Layer) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 62:
		e.Color = enums.FromWireColor(mustShort(p))
	case 6:
		e.LineType, _ = p.Str()
	case 370:
		e.LineWeight = enums.FromWireLineWeight(mustShort(p))
	case 290:
		v, _ := p.Bool()
		e.Plotting = v
	default:
		return false, nil
	}
	return true, nil
}

func (e *Layer) WritePairs(w codepair.Writer) error {
	return emitAll(w,
		codepair.NewShort(62, e.Color.ToWire()), codepair.NewString(6, e.LineType),
		codepair.NewShort(370, e.LineWeight.ToWire()), codepair.NewBool(290, e.Plotting),
	)
}

// LType is a named line dash pattern.
type LType struct {
	Common
	Description   string
	PatternLength float64
	DashLengths   []float64
}

func (e *LType) TypeName() string { return "LTYPE" }
func (e *LType) Base() *Common    { return &e.Common }

func (e *LType) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 3:
		e.Description, _ = p.Str()
	case 40:
		e.PatternLength = mustDouble(p)
	case 49:
		e.DashLengths = append(e.DashLengths, mustDouble(p))
	default:
		return false, nil
	}
	return true, nil
}

func (e *LType) WritePairs(w codepair.Writer) error {
	if err := emitAll(w,
		codepair.NewString(3, e.Description), codepair.NewDouble(40, e.PatternLength),
		codepair.NewShort(73, int16(len(e.DashLengths))),
	); err != nil {
		return err
	}
	for _, d := range e.DashLengths {
		if err := w.Emit(codepair.NewDouble(49, d)); err != nil {
			return err
		}
	}
	return nil
}

// Style is a named text style: font file, width/oblique shaping.
type Style struct {
	Common
	FixedHeight  float64
	WidthFactor  float64
	ObliqueAngle float64
	FontFile     string
	BigFontFile  string
}

func (e *Style) TypeName() string { return "STYLE" }
func (e *Style) Base() *Common    { return &e.Common }

func (e *Style) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 40:
		e.FixedHeight = mustDouble(p)
	case 41:
		e.WidthFactor = mustDouble(p)
	case 50:
		e.ObliqueAngle = mustDouble(p)
	case 3:
		e.FontFile, _ = p.Str()
	case 4:
		e.BigFontFile, _ = p.Str()
	default:
		return false, nil
	}
	return true, nil
}

func (e *Style) WritePairs(w codepair.Writer) error {
	return emitAll(w,
		codepair.NewDouble(40, e.FixedHeight), codepair.NewDouble(41, e.WidthFactor), codepair.NewDouble(50, e.ObliqueAngle),
		codepair.NewString(3, e.FontFile), codepair.NewString(4, e.BigFontFile),
	)
}

// View is a saved named view.
type View struct {
	Common
	Height float64
	Width  float64
	Center [2]float64
}

func (e *View) TypeName() string { return "VIEW" }
func (e *View) Base() *Common    { return &e.Common }

func (e *View) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 40:
		e.Height = mustDouble(p)
	case 41:
		e.Width = mustDouble(p)
	case 10:
		e.Center[0] = mustDouble(p)
	case 20:
		e.Center[1] = mustDouble(p)
	default:
		return false, nil
	}
	return true, nil
}

func (e *View) WritePairs(w codepair.Writer) error {
	return emitAll(w,
		codepair.NewDouble(40, e.Height), codepair.NewDouble(41, e.Width),
		codepair.NewDouble(10, e.Center[0]), codepair.NewDouble(20, e.Center[1]),
	)
}

// UCS is a named user coordinate system.
type UCS struct {
	Common
	Origin [3]float64
	XAxis  [3]float64
	YAxis  [3]float64
}

func (e *UCS) TypeName() string { return "UCS" }
func (e *UCS) Base() *Common    { return &e.Common }

func (e *UCS) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 10:
		e.Origin[0] = mustDouble(p)
	case 20:
		e.Origin[1] = mustDouble(p)
	case 30:
		e.Origin[2] = mustDouble(p)
	case 11:
		e.XAxis[0] = mustDouble(p)
	case 21:
		e.XAxis[1] = mustDouble(p)
	case 31:
		e.XAxis[2] = mustDouble(p)
	case 12:
		e.YAxis[0] = mustDouble(p)
	case 22:
		e.YAxis[1] = mustDouble(p)
	case 32:
		e.YAxis[2] = mustDouble(p)
	default:
		return false, nil
	}
	return true, nil
}

func (e *UCS) WritePairs(w codepair.Writer) error {
	return emitAll(w,
		codepair.NewDouble(10, e.Origin[0]), codepair.NewDouble(20, e.Origin[1]), codepair.NewDouble(30, e.Origin[2]),
		codepair.NewDouble(11, e.XAxis[0]), codepair.NewDouble(21, e.XAxis[1]), codepair.NewDouble(31, e.XAxis[2]),
		codepair.NewDouble(12, e.YAxis[0]), codepair.NewDouble(22, e.YAxis[1]), codepair.NewDouble(32, e.YAxis[2]),
	)
}

// VPort is a named (or *Active) viewport configuration.
type VPort struct {
	Common
	LowerLeft  [2]float64
	UpperRight [2]float64
	Height     float64
}

func (e *VPort) TypeName() string { return "VPORT" }
func (e *VPort) Base() *Common    { return &e.Common }

func (e *VPort) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 10:
		e.LowerLeft[0] = mustDouble(p)
	case 20:
		e.LowerLeft[1] = mustDouble(p)
	case 11:
		e.UpperRight[0] = mustDouble(p)
	case 21:
		e.UpperRight[1] = mustDouble(p)
	case 40:
		e.Height = mustDouble(p)
	default:
		return false, nil
	}
	return true, nil
}

func (e *VPort) WritePairs(w codepair.Writer) error {
	return emitAll(w,
		codepair.NewDouble(10, e.LowerLeft[0]), codepair.NewDouble(20, e.LowerLeft[1]),
		codepair.NewDouble(11, e.UpperRight[0]), codepair.NewDouble(21, e.UpperRight[1]),
		codepair.NewDouble(40, e.Height),
	)
}

// DimStyle is a named dimension-style override set. The full style carries
// dozens of DIMxxx variables; this keeps the two most load-bearing ones
// (overall scale and arrow size) as a representative subset.
type DimStyle struct {
	Common
	DimScale float64
	DimASZ   float64
}

func (e *DimStyle) TypeName() string { return "DIMSTYLE" }
func (e *DimStyle) Base() *Common    { return &e.Common }

func (e *DimStyle) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 40:
		e.DimScale = mustDouble(p)
	case 41:
		e.DimASZ = mustDouble(p)
	default:
		return false, nil
	}
	return true, nil
}

func (e *DimStyle) WritePairs(w codepair.Writer) error {
	return emitAll(w, codepair.NewDouble(40, e.DimScale), codepair.NewDouble(41, e.DimASZ))
}

// BlockRecord is the TABLES-section side of a block definition, owning the
// handle the BLOCKS section's BLOCK/ENDBLK pair and any INSERT referencing
// it point back to.
type BlockRecord struct {
	Common
	LayoutHandle codepair.Handle
}

func (e *BlockRecord) TypeName() string { return "BLOCK_RECORD" }
func (e *BlockRecord) Base() *Common    { return &e.Common }

func (e *BlockRecord) ApplyPair(p codepair.Pair) (bool, error) {
	switch p.Code {
	case 340:
		h, _ := p.HandleValue()
		e.LayoutHandle = h
	default:
		return false, nil
	}
	return true, nil
}

func (e *BlockRecord) WritePairs(w codepair.Writer) error {
	if e.LayoutHandle == 0 {
		return nil
	}
	return w.Emit(codepair.NewHandle(340, e.LayoutHandle))
}

// AppID registers an application name allowed to own XDATA in this drawing.
type AppID struct {
	Common
}

func (e *AppID) TypeName() string                         { return "APPID" }
func (e *AppID) Base() *Common                             { return &e.Common }
func (e *AppID) ApplyPair(p codepair.Pair) (bool, error)    { return false, nil }
func (e *AppID) WritePairs(w codepair.Writer) error         { return nil }

func emitAll(w codepair.Writer, pairs ...codepair.Pair) error {
	for _, p := range pairs {
		if err := w.Emit(p); err != nil {
			return err
		}
	}
	return nil
}
