package drawing

import (
	"io"

	"github.com/drawxchange/dxf/pkg/ascii"
	bin "github.com/drawxchange/dxf/pkg/binary"
	"github.com/drawxchange/dxf/pkg/block"
	"github.com/drawxchange/dxf/pkg/class"
	"github.com/drawxchange/dxf/pkg/codepair"
	"github.com/drawxchange/dxf/pkg/entity"
	"github.com/drawxchange/dxf/pkg/enums"
	"github.com/drawxchange/dxf/pkg/header"
	"github.com/drawxchange/dxf/pkg/table"
	"github.com/drawxchange/dxf/pkg/thumbnail"
)

// Save writes the drawing to stream as ASCII DXF at d.Header.Version,
// assigning handles to any record that still has none before emitting a
// single byte.
func (d *Drawing) Save(stream io.Writer) error {
	d.AssignHandles()
	cp, _ := ascii.LookupCodePage(d.Header.CodePage)
	w := ascii.NewWriter(stream, d.Header.Version, cp)
	if err := writeSections(w, d, d.Header.Version); err != nil {
		return err
	}
	return w.Flush()
}

// SaveBinary writes the drawing to stream as binary DXF at d.Header.Version
// (pre-R13 or post-R13 framing chosen automatically by pkg/binary).
func (d *Drawing) SaveBinary(stream io.Writer) error {
	d.AssignHandles()
	cp, _ := ascii.LookupCodePage(d.Header.CodePage)
	w, err := bin.NewWriter(stream, d.Header.Version, cp)
	if err != nil {
		return err
	}
	return writeSections(w, d, d.Header.Version)
}

// SaveAt writes the drawing as ASCII DXF at target instead of
// d.Header.Version, dropping entities/fields whose MinVersion exceeds
// target and re-parenting anything that orphans as a result to model
// space. d.Header.Version itself is left unchanged; only the written
// bytes target a different version.
func (d *Drawing) SaveAt(stream io.Writer, target enums.Version) error {
	d.AssignHandles()
	d.reparentOrphans(target)
	cp, _ := ascii.LookupCodePage(d.Header.CodePage)
	w := ascii.NewWriter(stream, target, cp)
	if err := writeSections(w, d, target); err != nil {
		return err
	}
	return w.Flush()
}

// reparentOrphans re-owns any entity whose Owner handle points at a record
// target's MinVersion filter is about to drop from the write, setting Owner
// back to 0 (model space) rather than leaving a handle that will never
// appear in the written file. Table entries and blocks themselves carry
// no MinVersion in this library, so only entity/object
// owners can dangle this way; the surviving set is built from the same
// MinVersion test writeSections applies.
func (d *Drawing) reparentOrphans(target enums.Version) {
	surviving := map[codepair.Handle]bool{}
	for _, t := range d.Tables {
		surviving[t.Handle] = true
		for _, e := range t.Entries {
			surviving[e.Base().Handle] = true
		}
	}
	for _, b := range d.Blocks {
		surviving[b.Handle] = true
		for _, e := range b.Entities {
			if e.MinVersion() > target {
				continue
			}
			surviving[e.Base().Handle] = true
		}
	}
	for _, e := range d.Entities {
		if e.MinVersion() > target {
			continue
		}
		surviving[e.Base().Handle] = true
	}
	for _, o := range d.Objects {
		if o.MinVersion() > target {
			continue
		}
		surviving[o.Base().Handle] = true
	}

	reparent := func(e entity.Entity) {
		rec := e.Base()
		if rec.Owner != 0 && !surviving[rec.Owner] {
			rec.Owner = 0
		}
	}
	for _, b := range d.Blocks {
		for _, e := range b.Entities {
			reparent(e)
		}
	}
	for _, e := range d.Entities {
		reparent(e)
	}
	for _, o := range d.Objects {
		reparent(o)
	}
}

func writeSections(w codepair.Writer, d *Drawing, target enums.Version) error {
	if err := w.Emit(codepair.NewString(0, "SECTION")); err != nil {
		return err
	}
	if err := w.Emit(codepair.NewString(2, "HEADER")); err != nil {
		return err
	}
	if err := header.Write(w, d.Header, target); err != nil {
		return err
	}
	if err := w.Emit(codepair.NewString(0, "ENDSEC")); err != nil {
		return err
	}

	if target.AtLeast(enums.R13) {
		if err := writeSection(w, "CLASSES", func() error { return class.WriteSection(w, d.Classes) }); err != nil {
			return err
		}
	}

	if err := writeSection(w, "TABLES", func() error { return table.WriteSection(w, d.Tables) }); err != nil {
		return err
	}
	if err := writeSection(w, "BLOCKS", func() error { return block.WriteSection(w, d.Blocks, target) }); err != nil {
		return err
	}
	if err := writeSection(w, "ENTITIES", func() error { return entity.WriteSection(w, d.Entities, target) }); err != nil {
		return err
	}

	if target.AtLeast(enums.R13) {
		if err := writeSection(w, "OBJECTS", func() error { return entity.WriteSection(w, d.Objects, target) }); err != nil {
			return err
		}
		if len(d.Thumbnail) > 0 {
			if err := writeSection(w, "THUMBNAILIMAGE", func() error { return thumbnail.Write(w, d.Thumbnail) }); err != nil {
				return err
			}
		}
	}

	return w.Emit(codepair.NewString(0, "EOF"))
}

func writeSection(w codepair.Writer, name string, body func() error) error {
	if err := w.Emit(codepair.NewString(0, "SECTION")); err != nil {
		return err
	}
	if err := w.Emit(codepair.NewString(2, name)); err != nil {
		return err
	}
	return body()
}
