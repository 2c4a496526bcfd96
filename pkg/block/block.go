// Package block implements the BLOCKS section: BLOCK/ENDBLK fences
// around a run of entities, each block owning its contained entities via
// handle (the entity's Owner points at the block's own handle).
package block

import (
	"io"
	"strconv"

	"github.com/drawxchange/dxf/pkg/codepair"
	"github.com/drawxchange/dxf/pkg/diag"
	"github.com/drawxchange/dxf/pkg/entity"
	"github.com/drawxchange/dxf/pkg/enums"
)

// Block is one BLOCK...ENDBLK definition.
type Block struct {
	Handle         codepair.Handle
	Owner          codepair.Handle
	Name           string
	Flags          int16
	BasePoint      [3]float64
	Entities       []entity.Entity
	EndBlockHandle codepair.Handle
}

// ReadOne reads one block's body, given its already-consumed (0,"BLOCK")
// pair, stopping at (and consuming) "ENDBLK".
func ReadOne(r codepair.Reader, sink diag.Sink) (*Block, error) {
	if sink == nil {
		sink = diag.Noop{}
	}
	b := &Block{}
	for {
		p, err := r.Peek()
		if err == io.EOF {
			return b, nil
		}
		if err != nil {
			return nil, err
		}
		if p.Code == 0 {
			// First contained entity, or ENDBLK for an empty block;
			// either way the header run is over and ReadUntil takes it
			// from here.
			break
		}
		r.Next()
		switch p.Code {
		case 5:
			if s, err := p.Str(); err == nil {
				if v, err := strconv.ParseUint(s, 16, 64); err == nil {
					b.Handle = codepair.Handle(v)
				}
			}
		case 330:
			b.Owner, _ = p.HandleValue()
		case 2, 3:
			b.Name, _ = p.Str()
		case 70:
			b.Flags, _ = p.Short()
		case 10:
			v, _ := p.Double()
			b.BasePoint[0] = v
		case 20:
			v, _ := p.Double()
			b.BasePoint[1] = v
		case 30:
			v, _ := p.Double()
			b.BasePoint[2] = v
		}
	}

	entities, err := entity.ReadUntil(r, sink, "ENDBLK")
	if err != nil {
		return nil, err
	}
	b.Entities = entities

	// Consume ENDBLK's own (usually empty) common-pair run up to the next
	// (0, ...) boundary, keeping its handle if present.
	for {
		p, err := r.Peek()
		if err != nil || p.Code == 0 {
			break
		}
		r.Next()
		if p.Code == 5 {
			if s, err := p.Str(); err == nil {
				if v, err := strconv.ParseUint(s, 16, 64); err == nil {
					b.EndBlockHandle = codepair.Handle(v)
				}
			}
		}
	}
	return b, nil
}

// WriteOne emits one block: "(0,BLOCK)", its header fields, its entities,
// then "(0,ENDBLK)".
func WriteOne(w codepair.Writer, b *Block, target enums.Version) error {
	if err := w.Emit(codepair.NewString(0, "BLOCK")); err != nil {
		return err
	}
	if b.Handle != 0 {
		if err := w.Emit(codepair.NewString(5, strconv.FormatUint(uint64(b.Handle), 16))); err != nil {
			return err
		}
	}
	if b.Owner != 0 {
		if err := w.Emit(codepair.NewHandle(330, b.Owner)); err != nil {
			return err
		}
	}
	if err := w.Emit(codepair.NewString(2, b.Name)); err != nil {
		return err
	}
	if err := w.Emit(codepair.NewShort(70, b.Flags)); err != nil {
		return err
	}
	if err := w.Emit(codepair.NewDouble(10, b.BasePoint[0])); err != nil {
		return err
	}
	if err := w.Emit(codepair.NewDouble(20, b.BasePoint[1])); err != nil {
		return err
	}
	if err := w.Emit(codepair.NewDouble(30, b.BasePoint[2])); err != nil {
		return err
	}
	if err := w.Emit(codepair.NewString(3, b.Name)); err != nil {
		return err
	}
	if err := entity.WriteEntities(w, b.Entities, target); err != nil {
		return err
	}
	if err := w.Emit(codepair.NewString(0, "ENDBLK")); err != nil {
		return err
	}
	if b.EndBlockHandle != 0 {
		if err := w.Emit(codepair.NewString(5, strconv.FormatUint(uint64(b.EndBlockHandle), 16))); err != nil {
			return err
		}
	}
	return nil
}

// ReadSection reads the BLOCKS section body: a run of BLOCK definitions up
// to (and consuming) "(0,ENDSEC)", tolerating a missing terminator at EOF.
func ReadSection(r codepair.Reader, sink diag.Sink) ([]*Block, error) {
	if sink == nil {
		sink = diag.Noop{}
	}
	var out []*Block
	for {
		p, err := r.Next()
		if err == io.EOF {
			sink.Warn(diag.CodeMissingEndsec, "blocks section ended without ENDSEC", nil)
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if p.Code != 0 {
			continue
		}
		name, _ := p.Str()
		switch name {
		case "ENDSEC":
			return out, nil
		case "BLOCK":
			b, err := ReadOne(r, sink)
			if err != nil {
				return nil, err
			}
			out = append(out, b)
		case "EOF", "SECTION":
			r.Unget(p)
			sink.Warn(diag.CodeMissingEndsec, "blocks section ended without ENDSEC", map[string]interface{}{"found": name})
			return out, nil
		}
	}
}

// WriteSection emits every block followed by "(0,ENDSEC)".
func WriteSection(w codepair.Writer, blocks []*Block, target enums.Version) error {
	for _, b := range blocks {
		if err := WriteOne(w, b, target); err != nil {
			return err
		}
	}
	return w.Emit(codepair.NewString(0, "ENDSEC"))
}
