// Package enums holds the drawing's typed enum conversions: version
// ordering plus a representative set of the format's enums (color,
// lineweight, units, ...), each of which is total on ToWire and falls back to a documented default on
// FromWire for any value a newer AutoCAD release might have introduced.
// This fallback-on-unknown behavior is the library's compatibility
// strategy and must never be silently dropped.
package enums

import "fmt"

// Version is the drawing format version, comparable and totally ordered:
// R10 < R11 < R12 < R13 < R14 < R2000 < R2004 < R2007 < R2010 < R2013 < R2018.
type Version int

const (
	R10 Version = iota
	R11
	R12
	R13
	R14
	R2000
	R2004
	R2007
	R2010
	R2013
	R2018
)

// DefaultVersion is used when a drawing is constructed empty.
const DefaultVersion = R2013

var versionNames = map[Version]string{
	R10: "R10", R11: "R11", R12: "R12", R13: "R13", R14: "R14",
	R2000: "R2000", R2004: "R2004", R2007: "R2007", R2010: "R2010",
	R2013: "R2013", R2018: "R2018",
}

// acadverByVersion is the canonical $ACADVER wire string this library
// writes for a given version. R11 and R12 share "AC1009" on the real wire
// format; we write R12's form for both since that's what every extant R12
// writer emits.
var acadverByVersion = map[Version]string{
	R10: "AC1006", R11: "AC1009", R12: "AC1009", R13: "AC1012", R14: "AC1014",
	R2000: "AC1015", R2004: "AC1018", R2007: "AC1021", R2010: "AC1024",
	R2013: "AC1027", R2018: "AC1032",
}

// acadverToVersion maps $ACADVER strings back to a Version. "AC1009" could
// be R11 or R12; we resolve it to R12, the more common of the two and the
// one this library writes.
var acadverToVersion = map[string]Version{
	"AC1006": R10, "AC1009": R12, "AC1012": R13, "AC1014": R14,
	"AC1015": R2000, "AC1018": R2004, "AC1021": R2007, "AC1024": R2010,
	"AC1027": R2013, "AC1032": R2018,
}

func (v Version) String() string {
	if s, ok := versionNames[v]; ok {
		return s
	}
	return fmt.Sprintf("Version(%d)", int(v))
}

// ACADVER returns the canonical $ACADVER wire string for v.
func (v Version) ACADVER() string {
	if s, ok := acadverByVersion[v]; ok {
		return s
	}
	return acadverByVersion[DefaultVersion]
}

// VersionFromACADVER parses a $ACADVER wire string. Unrecognized strings
// fall back to DefaultVersion, per the library's general policy of graceful
// recovery on unknown tokens; ok reports whether the string was known.
func VersionFromACADVER(s string) (Version, bool) {
	if v, ok := acadverToVersion[s]; ok {
		return v, true
	}
	return DefaultVersion, false
}

// AtLeast reports whether v is equal to or newer than other.
func (v Version) AtLeast(other Version) bool { return v >= other }

// Before reports whether v predates other.
func (v Version) Before(other Version) bool { return v < other }
