package drawing

import (
	"github.com/drawxchange/dxf/pkg/block"
	"github.com/drawxchange/dxf/pkg/codepair"
	"github.com/drawxchange/dxf/pkg/diag"
	"github.com/drawxchange/dxf/pkg/entity"
	"github.com/drawxchange/dxf/pkg/table"
)

// handleOwner is anything with a handle and an owner handle. The wrapper
// types below adapt table.Table, table.Common, block.Block, and
// entity.Record to it, which lets AssignHandles walk all four collections
// uniformly without a type switch per record kind.
type handleOwner interface {
	getHandle() codepair.Handle
	setHandle(codepair.Handle)
	getOwner() codepair.Handle
	setOwner(codepair.Handle)
}

// AssignHandles walks the drawing in a deterministic order - tables,
// blocks, entities, objects - assigning header.HandleSeed (and
// incrementing it) to every record whose handle is still 0, then rewrites
// owner handles for records whose structural parent is known (a table
// entry's table, a block's contained entities, an INSERT's attributes and
// SEQEND, a POLYLINE's vertices and SEQEND) so a freshly-assigned parent
// handle reaches its children even when the caller never set Owner by
// hand. This is a single walk: every parent is assigned its handle before
// its children are visited, so a child whose Owner is still 0 picks up the
// parent's new handle in the same walk.
func (d *Drawing) AssignHandles() {
	next := uint64(d.Header.HandleSeed)
	if next == 0 {
		next = 1
	}
	assign := func(ho handleOwner) {
		if ho.getHandle() == 0 {
			ho.setHandle(codepair.Handle(next))
			next++
		}
	}

	for _, t := range d.Tables {
		tw := tableWrapper{t}
		assign(tw)
		for _, e := range t.Entries {
			ew := commonWrapper{e.Base()}
			assign(ew)
			if ew.getOwner() == 0 {
				ew.setOwner(tw.getHandle())
			}
		}
	}

	for _, b := range d.Blocks {
		bw := blockWrapper{b}
		assign(bw)
		for _, e := range b.Entities {
			assignEntity(e, bw.getHandle(), assign)
		}
	}

	for _, e := range d.Entities {
		assignEntity(e, 0, assign)
	}

	for _, o := range d.Objects {
		assignEntity(o, 0, assign)
	}

	d.Header.HandleSeed = codepair.Handle(next)
}

// assignEntity assigns e's own handle (and owner, if owner is the known
// parent handle and not already set), then recurses into the two
// successor-attachment shapes the entity readers produce: INSERT's
// attributes/SEQEND and POLYLINE's vertices/SEQEND.
func assignEntity(e entity.Entity, parent codepair.Handle, assign func(handleOwner)) {
	rw := recordWrapper{e.Base()}
	assign(rw)
	if parent != 0 && rw.getOwner() == 0 {
		rw.setOwner(parent)
	}

	switch v := e.(type) {
	case *entity.Insert:
		for _, a := range v.Attributes {
			arw := recordWrapper{a.Base()}
			assign(arw)
			if arw.getOwner() == 0 {
				arw.setOwner(rw.getHandle())
			}
		}
		if v.SeqEnd != nil {
			srw := recordWrapper{v.SeqEnd.Base()}
			assign(srw)
			if srw.getOwner() == 0 {
				srw.setOwner(rw.getHandle())
			}
		}
	case *entity.Polyline:
		for _, vt := range v.Vertices {
			vrw := recordWrapper{vt.Base()}
			assign(vrw)
			if vrw.getOwner() == 0 {
				vrw.setOwner(rw.getHandle())
			}
		}
		if v.SeqEnd != nil {
			srw := recordWrapper{v.SeqEnd.Base()}
			assign(srw)
			if srw.getOwner() == 0 {
				srw.setOwner(rw.getHandle())
			}
		}
	}
}

type recordWrapper struct{ r *entity.Record }

func (w recordWrapper) getHandle() codepair.Handle     { return w.r.Handle }
func (w recordWrapper) setHandle(h codepair.Handle)    { w.r.Handle = h }
func (w recordWrapper) getOwner() codepair.Handle      { return w.r.Owner }
func (w recordWrapper) setOwner(h codepair.Handle)     { w.r.Owner = h }

type commonWrapper struct{ c *table.Common }

func (w commonWrapper) getHandle() codepair.Handle  { return w.c.Handle }
func (w commonWrapper) setHandle(h codepair.Handle) { w.c.Handle = h }
func (w commonWrapper) getOwner() codepair.Handle   { return w.c.Owner }
func (w commonWrapper) setOwner(h codepair.Handle)  { w.c.Owner = h }

type tableWrapper struct{ t *table.Table }

func (w tableWrapper) getHandle() codepair.Handle  { return w.t.Handle }
func (w tableWrapper) setHandle(h codepair.Handle) { w.t.Handle = h }
func (w tableWrapper) getOwner() codepair.Handle   { return w.t.Owner }
func (w tableWrapper) setOwner(h codepair.Handle)  { w.t.Owner = h }

type blockWrapper struct{ b *block.Block }

func (w blockWrapper) getHandle() codepair.Handle  { return w.b.Handle }
func (w blockWrapper) setHandle(h codepair.Handle) { w.b.Handle = h }
func (w blockWrapper) getOwner() codepair.Handle   { return w.b.Owner }
func (w blockWrapper) setOwner(h codepair.Handle)  { w.b.Owner = h }

// Index maps every handle encountered anywhere in the drawing to the
// record that carries it, built once after a full read. Records are
// stored as interface{} since table entries, blocks,
// and entities/objects share no common Go type beyond handleOwner, which
// callers resolving a pointer don't need - they want the concrete record.
type Index map[codepair.Handle]interface{}

// BuildIndex walks the same four collections AssignHandles does and
// returns a handle->record map, then (via sink) warns about any owner
// handle that doesn't resolve against it - a dangling pointer, tolerated
// rather than an error.
func (d *Drawing) BuildIndex(sink diag.Sink) Index {
	if sink == nil {
		sink = diag.Noop{}
	}
	idx := Index{}

	for _, t := range d.Tables {
		if t.Handle != 0 {
			idx[t.Handle] = t
		}
		for _, e := range t.Entries {
			if h := e.Base().Handle; h != 0 {
				idx[h] = e
			}
		}
	}
	for _, b := range d.Blocks {
		if b.Handle != 0 {
			idx[b.Handle] = b
		}
		for _, e := range b.Entities {
			indexEntity(idx, e)
		}
	}
	for _, e := range d.Entities {
		indexEntity(idx, e)
	}
	for _, o := range d.Objects {
		indexEntity(idx, o)
	}

	d.checkDangling(idx, sink)
	return idx
}

func indexEntity(idx Index, e entity.Entity) {
	rec := e.Base()
	if rec.Handle != 0 {
		idx[rec.Handle] = e
	}
	switch v := e.(type) {
	case *entity.Insert:
		for _, a := range v.Attributes {
			indexEntity(idx, a)
		}
		if v.SeqEnd != nil {
			indexEntity(idx, v.SeqEnd)
		}
	case *entity.Polyline:
		for _, vt := range v.Vertices {
			indexEntity(idx, vt)
		}
		if v.SeqEnd != nil {
			indexEntity(idx, v.SeqEnd)
		}
	}
}

func (d *Drawing) checkDangling(idx Index, sink diag.Sink) {
	warnIfDangling := func(h codepair.Handle) {
		if h == 0 {
			return
		}
		if _, ok := idx[h]; !ok {
			sink.Warn(diag.CodeDanglingHandle, "handle does not resolve to any record in this drawing", map[string]interface{}{"handle": uint64(h)})
		}
	}
	for _, t := range d.Tables {
		for _, e := range t.Entries {
			warnIfDangling(e.Base().Owner)
		}
	}
	for _, b := range d.Blocks {
		warnIfDangling(b.Owner)
		for _, e := range b.Entities {
			warnIfDangling(e.Base().Owner)
		}
	}
	for _, e := range d.Entities {
		warnIfDangling(e.Base().Owner)
	}
	for _, o := range d.Objects {
		warnIfDangling(o.Base().Owner)
	}
}

// Resolve looks up h in idx, the shape OwnerOf and any future typed
// accessor (boundary-path source objects, reactor lists, ...) build on.
func (idx Index) Resolve(h codepair.Handle) (interface{}, bool) {
	v, ok := idx[h]
	return v, ok
}

// OwnerOf resolves e's owner handle against idx.
func OwnerOf(idx Index, e entity.Entity) (interface{}, bool) {
	return idx.Resolve(e.Base().Owner)
}
