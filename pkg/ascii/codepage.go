// Package ascii implements the two-line-per-pair ASCII DXF encoding:
// a decimal code line followed by a value line, with version-gated code
// page transcoding and \U+XXXX escape handling.
package ascii

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// CodePage resolves a $DWGCODEPAGE label to a golang.org/x/text encoding.
// Used only for versions before R2007; from R2007 on, files are UTF-8 and
// no CodePage is consulted (see pkg/enums.Version, pkg/drawing).
type CodePage struct {
	Label    string
	Encoding encoding.Encoding
}

// DefaultCodePage is the documented fallback for any $DWGCODEPAGE label
// this library doesn't recognize - Windows-1252, the code page every
// English-locale AutoCAD release before R2007 actually wrote.
var DefaultCodePage = CodePage{Label: "ANSI_1252", Encoding: charmap.Windows1252}

var codePagesByLabel = map[string]CodePage{
	"ANSI_1250": {"ANSI_1250", charmap.Windows1250},
	"ANSI_1251": {"ANSI_1251", charmap.Windows1251},
	"ANSI_1252": {"ANSI_1252", charmap.Windows1252},
	"ANSI_1253": {"ANSI_1253", charmap.Windows1253},
	"ANSI_1254": {"ANSI_1254", charmap.Windows1254},
	"ANSI_1255": {"ANSI_1255", charmap.Windows1255},
	"ANSI_1256": {"ANSI_1256", charmap.Windows1256},
	"ANSI_1257": {"ANSI_1257", charmap.Windows1257},
	"ANSI_1258": {"ANSI_1258", charmap.Windows1258},
	"ANSI_874":  {"ANSI_874", charmap.Windows874},
	"ANSI_28591": {"ANSI_28591", charmap.ISO8859_1},
	"ANSI_28592": {"ANSI_28592", charmap.ISO8859_2},
}

// LookupCodePage resolves label to a CodePage, falling back to
// DefaultCodePage for anything undocumented - the same fallback-on-unknown
// posture as the enum tables in pkg/enums. ok reports whether label was
// recognized.
func LookupCodePage(label string) (CodePage, bool) {
	if cp, ok := codePagesByLabel[label]; ok {
		return cp, true
	}
	return DefaultCodePage, false
}
