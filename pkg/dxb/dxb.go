// Package dxb implements the DXB exchange format: a much smaller,
// opcode-tagged binary sibling of DXF carrying a representative entity
// subset, no header/tables/blocks sections, and its own sentinel. Unlike
// pkg/codepair's (code, value) pairs, a DXB stream is a flat sequence of
// one-byte item-type tags each followed by a fixed, type-specific payload -
// closer to a packed binary log than a tagged record format.
package dxb

// Sentinel is the 19-byte signature every DXB stream opens with, mirroring
// pkg/binary's DXF sentinel in shape (fixed ASCII banner, CTRL-Z, NUL) but
// naming DXB instead of AutoCAD's other two binary variants.
var Sentinel = []byte("AutoCAD DXB 1.0\r\n\x1a\x00")

// HasSentinel reports whether data begins with the DXB sentinel.
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

// itemType tags each record in the body. Real AutoCAD assigns these byte
// values from an undocumented internal table (see DESIGN.md): the values
// below are this package's own internally-consistent assignment, good for
// a reader/writer pair that only needs to parse its own output, not for
// interop with an AutoCAD-written DXB file.
type itemType byte

const (
	itemLine            itemType = 1
	itemPoint           itemType = 2
	itemCircle          itemType = 3
	itemArc             itemType = 4
	itemFace            itemType = 5
	itemSolid           itemType = 6
	itemTrace           itemType = 7
	itemPolyline        itemType = 8
	itemVertex          itemType = 9
	itemSeqend          itemType = 10
	itemLine3D          itemType = 11
	itemLineExtension   itemType = 12
	itemLineExtension3D itemType = 13
	itemTraceExtension  itemType = 14
	itemNewColor        itemType = 15
	itemNewLayer        itemType = 16
	itemScaleFactor     itemType = 17
	itemBlockBase       itemType = 18
	itemBulge           itemType = 19
	itemNumberMode      itemType = 20
	itemWidth           itemType = 21
	itemEOF             itemType = 0
)
