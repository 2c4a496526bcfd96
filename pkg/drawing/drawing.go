// Package drawing implements the drawing orchestrator: the root
// aggregate every other package's output feeds into, the section state
// machine that drives read and write, handle assignment, pointer fixup,
// and the thumbnail's section-level framing. This is the one package that
// knows about all of HEADER/CLASSES/TABLES/BLOCKS/ENTITIES/OBJECTS/
// THUMBNAILIMAGE at once; everything upstream only knows its own section.
package drawing

import (
	"github.com/drawxchange/dxf/pkg/block"
	"github.com/drawxchange/dxf/pkg/class"
	"github.com/drawxchange/dxf/pkg/entity"
	"github.com/drawxchange/dxf/pkg/header"
	"github.com/drawxchange/dxf/pkg/table"
)

// Drawing is the root aggregate: a Header, ordered Classes/Tables,
// Blocks, model-space Entities, non-graphical Objects, and an optional
// Thumbnail bitmap.
type Drawing struct {
	Header    *header.Header
	Classes   []class.Class
	Tables    []*table.Table
	Blocks    []*block.Block
	Entities  []entity.Entity
	Objects   []entity.Entity
	Thumbnail []byte
}

// New returns an empty Drawing with library defaults (DefaultVersion,
// layer "0", etc., via header.New) and no tables, blocks, entities, or
// objects. Call Normalize to populate the required table entries.
func New() *Drawing {
	return &Drawing{Header: header.New()}
}

// Clear empties the tables, blocks, entities, and objects collections
// while preserving the header. A
// subsequent Normalize recreates the required table entries.
func (d *Drawing) Clear() {
	d.Classes = nil
	d.Tables = nil
	d.Blocks = nil
	d.Entities = nil
	d.Objects = nil
	d.Thumbnail = nil
}

// requiredEntries names the symbol-table records Normalize inserts when
// missing: layer "0", the three standard linetypes, the "STANDARD" text
// style, a default "*Active" viewport, and the "ACAD" application id.
var requiredEntries = map[string][]string{
	"LAYER":    {"0"},
	"LTYPE":    {"BYLAYER", "BYBLOCK", "CONTINUOUS"},
	"STYLE":    {"STANDARD"},
	"VPORT":    {"*Active"},
	"APPID":    {"ACAD"},
}

// tableOrder is the canonical order Normalize creates missing TABLE blocks
// in, matching the order real AutoCAD-written files use.
var tableOrder = []string{"VPORT", "LTYPE", "LAYER", "STYLE", "VIEW", "UCS", "APPID", "DIMSTYLE", "BLOCK_RECORD"}

// Normalize is idempotent: it adds any table named in tableOrder that is
// missing entirely, then adds any entry named in
// requiredEntries that table doesn't already have (matched by Name,
// case-sensitively, as the format does). Calling Normalize on an
// already-normalized drawing is a no-op.
func (d *Drawing) Normalize() {
	for _, name := range tableOrder {
		t := d.tableByName(name)
		if t == nil {
			t = &table.Table{Name: name}
			d.Tables = append(d.Tables, t)
		}
		for _, want := range requiredEntries[name] {
			if tableHasEntry(t, want) {
				continue
			}
			t.Entries = append(t.Entries, newDefaultEntry(name, want))
		}
	}
}

func (d *Drawing) tableByName(name string) *table.Table {
	for _, t := range d.Tables {
		if t.Name == name {
			return t
		}
	}
	return nil
}

func tableHasEntry(t *table.Table, name string) bool {
	for _, e := range t.Entries {
		if e.Base().Name == name {
			return true
		}
	}
	return false
}

func newDefaultEntry(tableName, entryName string) table.Entry {
	var e table.Entry
	switch tableName {
	case "LAYER":
		e = &table.Layer{Plotting: true}
	case "LTYPE":
		e = &table.LType{}
	case "STYLE":
		e = &table.Style{WidthFactor: 1}
	case "VPORT":
		e = &table.VPort{Height: 1}
	case "APPID":
		e = &table.AppID{}
	default:
		e = &table.AppID{} // generic handle/name-only record for tables with no typed variant here
	}
	e.Base().Name = entryName
	return e
}
