// Package binary implements the binary DXF code-pair encoding: a
// common sentinel followed by one of two wire layouts depending on target
// version - a variable-width single-byte/0xFF-extended code scheme used by
// R10 through R12, and a fixed int16 code scheme used from R13 on.
package binary

// Sentinel is the fixed byte sequence that opens every binary DXF file,
// regardless of version. A reader uses it to distinguish a binary file from
// an ASCII one before deciding which package to hand the rest of the
// stream to (see pkg/drawing's autodetection).
var Sentinel = []byte("AutoCAD Binary DXF\r\n\x1a\x00")

// HasSentinel reports whether data begins with the binary DXF sentinel.
func HasSentinel(data []byte) bool {
	if len(data) < len(Sentinel) {
		return false
	}
	for i, b := range Sentinel {
		if data[i] != b {
			return false
		}
	}
	return true
}
