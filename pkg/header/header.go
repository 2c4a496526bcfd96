package header

import (
	"io"
	"sort"
	"strconv"

	"github.com/drawxchange/dxf/pkg/codepair"
	"github.com/drawxchange/dxf/pkg/diag"
	"github.com/drawxchange/dxf/pkg/enums"
)

// Header is the drawing's named global variable record. Variables this
// library has a typed field for are promoted to named struct fields;
// everything else round-trips verbatim through Extra, keyed by $NAME, so
// an unrecognized variable is preserved rather than dropped.
type Header struct {
	Version            enums.Version
	MaintenanceVersion int32
	CodePage           string

	InsBase [3]float64
	ExtMin  [3]float64
	ExtMax  [3]float64
	LimMin  [2]float64
	LimMax  [2]float64

	CurrentLayer    string
	CurrentLineType string
	TextStyle       string
	CurrentColor    enums.Color
	LineWeight      enums.LineWeight

	HandleSeed  codepair.Handle
	Measurement int16

	DimScale float64
	DimASZ   float64

	LinearUnits   int16
	LinearUnitsPrecision int16

	// Extra holds every $NAME slot this library has no typed field for,
	// keyed by variable name, exactly as read.
	Extra map[string][]codepair.Pair

	// seen tracks which names have already been assigned during the
	// current Read, to detect and warn on duplicates (last-write-wins).
	seen map[string]bool
}

// New returns a Header with library defaults: DefaultVersion, layer "0",
// "BYLAYER" current color/linetype, "STANDARD" text style.
func New() *Header {
	return &Header{
		Version:         enums.DefaultVersion,
		CodePage:        "ANSI_1252",
		CurrentLayer:    "0",
		CurrentLineType: "BYLAYER",
		TextStyle:       "STANDARD",
		CurrentColor:    enums.ColorByLayer,
		LineWeight:      enums.LineWeightByLayer,
		Measurement:     0,
		DimScale:        1.0,
		DimASZ:          0.18,
		LinearUnits:     2,
		Extra:           map[string][]codepair.Pair{},
	}
}

// Read parses the HEADER section's body: the caller has already consumed
// the (0,"SECTION")(2,"HEADER") pairs, and Read stops at (and consumes)
// the (0,"ENDSEC") pair. If the stream ends or a new SECTION starts without
// an ENDSEC, Read tolerates it (warns through sink), leaving the
// triggering pair unconsumed.
func Read(r codepair.Reader, sink diag.Sink) (*Header, error) {
	if sink == nil {
		sink = diag.Noop{}
	}
	h := New()
	h.Extra = map[string][]codepair.Pair{}
	h.seen = map[string]bool{}

	for {
		p, err := r.Next()
		if err == io.EOF {
			sink.Warn(diag.CodeMissingEndsec, "header section ended without ENDSEC", nil)
			return h, nil
		}
		if err != nil {
			return nil, err
		}
		if p.Code == 0 {
			s, _ := p.Str()
			if s == "ENDSEC" {
				return h, nil
			}
			sink.Warn(diag.CodeMissingEndsec, "header section ended without ENDSEC", map[string]interface{}{"found": s})
			r.Unget(p)
			return h, nil
		}
		if p.Code != 9 {
			continue // stray pair outside any slot; ignore
		}
		name, _ := p.Str()
		slot, err := drainSlot(r)
		if err != nil {
			return nil, err
		}
		if h.seen[name] {
			sink.Warn(diag.CodeDuplicateHeaderVar, "duplicate header variable", map[string]interface{}{"name": name})
		}
		h.seen[name] = true
		h.apply(name, slot)
	}
}

// drainSlot consumes every pair belonging to the current $NAME slot: all
// pairs up to (not including) the next code-9 or code-0 pair.
func drainSlot(r codepair.Reader) ([]codepair.Pair, error) {
	var out []codepair.Pair
	for {
		p, err := r.Peek()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if p.Code == 9 || p.Code == 0 {
			return out, nil
		}
		p, _ = r.Next()
		out = append(out, p)
	}
}

func (h *Header) apply(name string, pairs []codepair.Pair) {
	switch name {
	case "$ACADVER":
		if s := firstString(pairs); s != "" {
			if v, ok := enums.VersionFromACADVER(s); ok {
				h.Version = v
			}
		}
	case "$ACADMAINTVER":
		h.MaintenanceVersion = firstInt(pairs)
	case "$DWGCODEPAGE":
		if s := firstString(pairs); s != "" {
			h.CodePage = s
		}
	case "$INSBASE":
		h.InsBase = point3(pairs)
	case "$EXTMIN":
		h.ExtMin = point3(pairs)
	case "$EXTMAX":
		h.ExtMax = point3(pairs)
	case "$LIMMIN":
		h.LimMin = point2(pairs)
	case "$LIMMAX":
		h.LimMax = point2(pairs)
	case "$CLAYER":
		if s := firstString(pairs); s != "" {
			h.CurrentLayer = s
		}
	case "$CELTYPE":
		if s := firstString(pairs); s != "" {
			h.CurrentLineType = s
		}
	case "$TEXTSTYLE":
		if s := firstString(pairs); s != "" {
			h.TextStyle = s
		}
	case "$CECOLOR":
		h.CurrentColor = enums.FromWireColor(firstShort(pairs))
	case "$CELWEIGHT":
		h.LineWeight = enums.FromWireLineWeight(firstShort(pairs))
	case "$HANDSEED":
		if s := firstString(pairs); s != "" {
			if v, err := strconv.ParseUint(s, 16, 64); err == nil {
				h.HandleSeed = codepair.Handle(v)
			}
		}
	case "$MEASUREMENT":
		h.Measurement = firstShort(pairs)
	case "$DIMSCALE":
		h.DimScale = firstDouble(pairs)
	case "$DIMASZ":
		h.DimASZ = firstDouble(pairs)
	case "$LUNITS":
		h.LinearUnits = firstShort(pairs)
	case "$LUPREC":
		h.LinearUnitsPrecision = firstShort(pairs)
	default:
		h.Extra[name] = pairs
	}
}

func firstString(pairs []codepair.Pair) string {
	for _, p := range pairs {
		if s, err := p.Str(); err == nil {
			return s
		}
	}
	return ""
}

func firstShort(pairs []codepair.Pair) int16 {
	for _, p := range pairs {
		if v, err := p.Short(); err == nil {
			return v
		}
	}
	return 0
}

func firstInt(pairs []codepair.Pair) int32 {
	for _, p := range pairs {
		switch p.Kind {
		case codepair.KindInt:
			v, _ := p.Int()
			return v
		case codepair.KindShort:
			v, _ := p.Short()
			return int32(v)
		}
	}
	return 0
}

func firstDouble(pairs []codepair.Pair) float64 {
	for _, p := range pairs {
		if v, err := p.Double(); err == nil {
			return v
		}
	}
	return 0
}

// point3 assigns codes 10/20/30 to X/Y/Z regardless of the order they
// appeared in; missing codes default to 0.
func point3(pairs []codepair.Pair) [3]float64 {
	var pt [3]float64
	for _, p := range pairs {
		v, err := p.Double()
		if err != nil {
			continue
		}
		switch p.Code {
		case 10:
			pt[0] = v
		case 20:
			pt[1] = v
		case 30:
			pt[2] = v
		}
	}
	return pt
}

func point2(pairs []codepair.Pair) [2]float64 {
	var pt [2]float64
	for _, p := range pairs {
		v, err := p.Double()
		if err != nil {
			continue
		}
		switch p.Code {
		case 10:
			pt[0] = v
		case 20:
			pt[1] = v
		}
	}
	return pt
}

// Write emits the header's variable slots in a fixed, deterministic order:
// known fields first (skipping any whose registry min_version exceeds
// target), then preserved Extra slots in sorted name order.
func Write(w codepair.Writer, h *Header, target enums.Version) error {
	emit := func(name string, values ...codepair.Pair) error {
		if target < minVersion(name) {
			return nil
		}
		if err := w.Emit(codepair.NewString(9, name)); err != nil {
			return err
		}
		for _, v := range values {
			if err := w.Emit(v); err != nil {
				return err
			}
		}
		return nil
	}

	if err := emit("$ACADVER", codepair.NewString(1, target.ACADVER())); err != nil {
		return err
	}
	// $ACADMAINTVER moved from a short code-70 pair to an int code-90 pair
	// in R2018; emit whichever form is canonical for the target.
	maintPair := codepair.NewShort(70, int16(h.MaintenanceVersion))
	if target.AtLeast(enums.R2018) {
		maintPair = codepair.NewInt(90, h.MaintenanceVersion)
	}
	if err := emit("$ACADMAINTVER", maintPair); err != nil {
		return err
	}
	if err := emit("$DWGCODEPAGE", codepair.NewString(3, h.CodePage)); err != nil {
		return err
	}
	if err := emit("$INSBASE", point3Pairs(h.InsBase)...); err != nil {
		return err
	}
	if err := emit("$EXTMIN", point3Pairs(h.ExtMin)...); err != nil {
		return err
	}
	if err := emit("$EXTMAX", point3Pairs(h.ExtMax)...); err != nil {
		return err
	}
	if err := emit("$LIMMIN", point2Pairs(h.LimMin)...); err != nil {
		return err
	}
	if err := emit("$LIMMAX", point2Pairs(h.LimMax)...); err != nil {
		return err
	}
	if err := emit("$CLAYER", codepair.NewString(8, h.CurrentLayer)); err != nil {
		return err
	}
	if err := emit("$CELTYPE", codepair.NewString(6, h.CurrentLineType)); err != nil {
		return err
	}
	if err := emit("$TEXTSTYLE", codepair.NewString(7, h.TextStyle)); err != nil {
		return err
	}
	if err := emit("$CECOLOR", codepair.NewShort(62, h.CurrentColor.ToWire())); err != nil {
		return err
	}
	if err := emit("$CELWEIGHT", codepair.NewShort(370, h.LineWeight.ToWire())); err != nil {
		return err
	}
	if err := emit("$HANDSEED", codepair.NewString(5, strconv.FormatUint(uint64(h.HandleSeed), 16))); err != nil {
		return err
	}
	if err := emit("$MEASUREMENT", codepair.NewShort(70, h.Measurement)); err != nil {
		return err
	}
	if err := emit("$DIMSCALE", codepair.NewDouble(40, h.DimScale)); err != nil {
		return err
	}
	if err := emit("$DIMASZ", codepair.NewDouble(40, h.DimASZ)); err != nil {
		return err
	}
	if err := emit("$LUNITS", codepair.NewShort(70, h.LinearUnits)); err != nil {
		return err
	}
	if err := emit("$LUPREC", codepair.NewShort(70, h.LinearUnitsPrecision)); err != nil {
		return err
	}

	names := make([]string, 0, len(h.Extra))
	for name := range h.Extra {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := emit(name, h.Extra[name]...); err != nil {
			return err
		}
	}
	return nil
}

func point3Pairs(pt [3]float64) []codepair.Pair {
	return []codepair.Pair{
		codepair.NewDouble(10, pt[0]),
		codepair.NewDouble(20, pt[1]),
		codepair.NewDouble(30, pt[2]),
	}
}

func point2Pairs(pt [2]float64) []codepair.Pair {
	return []codepair.Pair{
		codepair.NewDouble(10, pt[0]),
		codepair.NewDouble(20, pt[1]),
	}
}
