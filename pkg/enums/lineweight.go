package enums

// LineWeight is a line thickness in hundredths of a millimeter, or one of
// the three sentinels below. The documented set of concrete weights is
// closed (AutoCAD only ever writes one of ~24 values); anything else read
// from a file falls back to ByLayer, the documented default, rather than
// failing the read.
type LineWeight int16

const (
	LineWeightByLayer   LineWeight = -1
	LineWeightByBlock   LineWeight = -2
	LineWeightByDefault LineWeight = -3
)

var knownLineWeights = map[int16]bool{
	0: true, 5: true, 9: true, 13: true, 15: true, 18: true, 20: true,
	25: true, 30: true, 35: true, 40: true, 50: true, 53: true, 60: true,
	70: true, 80: true, 90: true, 100: true, 106: true, 120: true,
	140: true, 158: true, 200: true, 211: true,
}

// FromWireLineWeight converts a raw group-370 value, falling back to
// LineWeightByLayer for any value outside the documented closed set or
// sentinel range.
func FromWireLineWeight(raw int16) LineWeight {
	switch LineWeight(raw) {
	case LineWeightByLayer, LineWeightByBlock, LineWeightByDefault:
		return LineWeight(raw)
	}
	if knownLineWeights[raw] {
		return LineWeight(raw)
	}
	return LineWeightByLayer
}

// ToWire is total.
func (w LineWeight) ToWire() int16 { return int16(w) }
