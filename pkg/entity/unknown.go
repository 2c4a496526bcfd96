package entity

import (
	"github.com/drawxchange/dxf/pkg/codepair"
	"github.com/drawxchange/dxf/pkg/enums"
)

// UnknownEntity is the fallback for any (0, typeName) not in the registry.
// Its ApplyPair claims nothing, so every pair the common record does not
// claim is kept in RawPairs verbatim and the entity is written back rather
// than dropped. The output is not byte-for-byte: common-record fields are
// re-emitted from the Record in WriteCommonPairs' order (the handle in
// lowercase hex), and subclass markers (code 100) are not kept.
type UnknownEntity struct {
	Record
	typeName string
}

func newUnknown(typeName string) Entity {
	return &UnknownEntity{Record: newRecord(), typeName: typeName}
}

func (e *UnknownEntity) TypeName() string          { return e.typeName }
func (e *UnknownEntity) MinVersion() enums.Version  { return enums.R10 }
func (e *UnknownEntity) MaxVersion() enums.Version  { return enums.R2018 }
func (e *UnknownEntity) Base() *Record              { return &e.Record }

func (e *UnknownEntity) ApplyPair(p codepair.Pair) (bool, error) { return false, nil }

func (e *UnknownEntity) WritePairs(w codepair.Writer, target enums.Version) error { return nil }
