package table

import (
	"strconv"

	"github.com/drawxchange/dxf/pkg/codepair"
)

func parseHex(s string) (uint64, bool) {
	v, err := strconv.ParseUint(s, 16, 64)
	return v, err == nil
}

func formatHex(v uint64) string { return strconv.FormatUint(v, 16) }

// unknownEntry is the fallback for a table-entry type name not in the
// registry; every non-common pair is preserved in RawPairs verbatim.
type unknownEntry struct {
	Common
	typeName string
}

func newUnknownEntry(typeName string) Entry { return &unknownEntry{typeName: typeName} }

func (e *unknownEntry) TypeName() string { return e.typeName }
func (e *unknownEntry) Base() *Common    { return &e.Common }

func (e *unknownEntry) ApplyPair(p codepair.Pair) (bool, error) { return false, nil }
func (e *unknownEntry) WritePairs(w codepair.Writer) error      { return nil }
