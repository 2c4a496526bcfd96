package ascii

import (
	"strconv"
	"strings"

	"github.com/drawxchange/dxf/pkg/enums"
)

// SniffHeaderEncoding resolves the version and code page a full decode of
// data needs, by scanning the HEADER section's own $ACADVER and
// $DWGCODEPAGE pairs with a pure-ASCII pass, before any real lexing begins.
//
// This sidesteps the chicken-and-egg problem of needing the code page to
// decode strings when the code page itself arrives as a string: HEADER is
// always the first section, and by convention every AutoCAD writer emits
// both variables as plain ASCII regardless of the drawing's own code page,
// so a naive line split (no transcoding, no escape handling) is always
// enough to find them. The orchestrator in pkg/drawing calls this once,
// then constructs the real Reader with the resolved pair.
//
// Missing or unrecognized variables fall back to DefaultVersion and
// DefaultCodePage, matching this library's general fallback-on-unknown
// posture.
func SniffHeaderEncoding(data []byte) (enums.Version, CodePage) {
	lines, _ := splitLines(data)

	version := enums.DefaultVersion
	cp := DefaultCodePage

	// Walk pair by pair (code line, value line). $ACADVER/$DWGCODEPAGE are
	// themselves code-9 "variable name" pairs; the variable's actual value
	// follows in the next pair regardless of what code it carries (1 for
	// $ACADVER, 3 for $DWGCODEPAGE), so we just peek one pair ahead.
	i := 0
	for i+1 < len(lines) {
		code, err := strconv.Atoi(strings.TrimSpace(string(lines[i])))
		if err != nil {
			break
		}
		value := strings.TrimSpace(string(lines[i+1]))

		if code == 0 && value == "ENDSEC" {
			break
		}

		if code == 9 && (value == "$ACADVER" || value == "$DWGCODEPAGE") && i+3 < len(lines) {
			nextValue := strings.TrimSpace(string(lines[i+3]))
			if value == "$ACADVER" {
				if v, ok := enums.VersionFromACADVER(nextValue); ok {
					version = v
				}
			} else {
				if found, ok := LookupCodePage(nextValue); ok {
					cp = found
				}
			}
		}

		i += 2
	}

	return version, cp
}
