package drawing

import (
	"io"

	"github.com/drawxchange/dxf/pkg/block"
	"github.com/drawxchange/dxf/pkg/diag"
	"github.com/drawxchange/dxf/pkg/dxb"
)

// SaveDXB writes the drawing's representative entity subset to stream as
// DXB. A drawing with no top-level entities and exactly one block
// writes as a BLOCKBASE-prefixed stream of that block's entities;
// anything else writes d.Entities directly with no block base point.
func (d *Drawing) SaveDXB(stream io.Writer) error {
	d.AssignHandles()
	if len(d.Entities) == 0 && len(d.Blocks) == 1 {
		b := d.Blocks[0]
		base := [2]float64{b.BasePoint[0], b.BasePoint[1]}
		return dxb.Write(stream, b.Entities, &base)
	}
	return dxb.Write(stream, d.Entities, nil)
}

// LoadDXB reads a DXB stream into a new Drawing, the symmetric counterpart
// to SaveDXB.
func LoadDXB(stream io.Reader) (*Drawing, error) {
	entities, blockBase, err := dxb.Read(stream)
	if err != nil {
		return nil, err
	}
	d := New()
	if blockBase != nil {
		d.Blocks = append(d.Blocks, &block.Block{
			BasePoint: [3]float64{blockBase[0], blockBase[1], 0},
			Entities:  entities,
		})
	} else {
		d.Entities = entities
	}
	d.BuildIndex(diag.Noop{})
	return d, nil
}
