package dxb

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/drawxchange/dxf/pkg/entity"
	"github.com/drawxchange/dxf/pkg/enums"
)

// Write encodes entities (and, if blockBase is non-nil, a leading BLOCKBASE
// record) as a DXB stream, grouping consecutive same-layer entities under a
// NEWLAYER record and emitting a NEWCOLOR record only when an entity's
// color differs from the last one written. Number mode is always forced
// to float.
func Write(w io.Writer, entities []entity.Entity, blockBase *[2]float64) error {
	wr := &writer{w: w}
	return wr.write(entities, blockBase)
}

type writer struct {
	w io.Writer
}

func (wr *writer) write(entities []entity.Entity, blockBase *[2]float64) error {
	if _, err := wr.w.Write(Sentinel); err != nil {
		return err
	}

	// NUMBERMODE must precede every ordinate in the stream, BLOCKBASE's
	// included, or a reader still in its default integer mode would decode
	// the base point as int16s.
	if err := wr.writeItemType(itemNumberMode); err != nil {
		return err
	}
	if err := wr.writeI16(1); err != nil {
		return err
	}

	if blockBase != nil {
		if err := wr.writeItemType(itemBlockBase); err != nil {
			return err
		}
		if err := wr.writeF32(blockBase[0]); err != nil {
			return err
		}
		if err := wr.writeF32(blockBase[1]); err != nil {
			return err
		}
	}

	lastColor := int16(enums.ColorByLayer)
	if err := wr.writeItemType(itemNewColor); err != nil {
		return err
	}
	if err := wr.writeI16(lastColor); err != nil {
		return err
	}

	var currentLayer string
	first := true
	for _, e := range entities {
		rec := e.Base()
		if first || rec.Layer != currentLayer {
			currentLayer = rec.Layer
			if err := wr.writeItemType(itemNewLayer); err != nil {
				return err
			}
			if err := wr.writeNullTerminatedString(currentLayer); err != nil {
				return err
			}
			first = false
		}
		c := rec.Color.ToWire()
		if c != lastColor {
			lastColor = c
			if err := wr.writeItemType(itemNewColor); err != nil {
				return err
			}
			if err := wr.writeI16(lastColor); err != nil {
				return err
			}
		}
		if err := wr.writeEntity(e); err != nil {
			return err
		}
	}

	return wr.writeItemType(itemEOF)
}

func (wr *writer) writeEntity(e entity.Entity) error {
	switch v := e.(type) {
	case *entity.Arc:
		return wr.writeArc(v)
	case *entity.Circle:
		return wr.writeCircle(v)
	case *entity.Face3D:
		return wr.writeFace(v)
	case *entity.Line:
		return wr.writeLine(v)
	case *entity.Point:
		return wr.writePoint(v)
	case *entity.Polyline:
		return wr.writePolyline(v)
	case *entity.Solid:
		return wr.writeQuad(v)
	default:
		return nil // entities outside DXB's representative subset are dropped silently
	}
}

func (wr *writer) writeArc(e *entity.Arc) error {
	if err := wr.writeItemType(itemArc); err != nil {
		return err
	}
	return wr.writeN(e.Center[0], e.Center[1], e.Radius, e.StartAngle, e.EndAngle)
}

func (wr *writer) writeCircle(e *entity.Circle) error {
	if err := wr.writeItemType(itemCircle); err != nil {
		return err
	}
	return wr.writeN(e.Center[0], e.Center[1], e.Radius)
}

func (wr *writer) writeFace(e *entity.Face3D) error {
	if err := wr.writeItemType(itemFace); err != nil {
		return err
	}
	for _, c := range e.Corners {
		if err := wr.writeN(c[0], c[1], c[2]); err != nil {
			return err
		}
	}
	return nil
}

func (wr *writer) writeLine(e *entity.Line) error {
	if err := wr.writeItemType(itemLine); err != nil {
		return err
	}
	return wr.writeN(e.Start[0], e.Start[1], e.Start[2], e.End[0], e.End[1], e.End[2])
}

func (wr *writer) writePoint(e *entity.Point) error {
	if err := wr.writeItemType(itemPoint); err != nil {
		return err
	}
	return wr.writeN(e.Position[0], e.Position[1])
}

func (wr *writer) writePolyline(e *entity.Polyline) error {
	if err := wr.writeItemType(itemPolyline); err != nil {
		return err
	}
	closed := int16(0)
	if e.Flags&1 != 0 {
		closed = 1
	}
	if err := wr.writeI16(closed); err != nil {
		return err
	}
	for _, v := range e.Vertices {
		if err := wr.writeVertex(v); err != nil {
			return err
		}
	}
	return wr.writeSeqend()
}

func (wr *writer) writeVertex(e *entity.Vertex) error {
	if err := wr.writeItemType(itemVertex); err != nil {
		return err
	}
	if err := wr.writeN(e.Location[0], e.Location[1]); err != nil {
		return err
	}
	if e.Bulge != 0 {
		if err := wr.writeItemType(itemBulge); err != nil {
			return err
		}
		return wr.writeF32(e.Bulge)
	}
	return nil
}

func (wr *writer) writeSeqend() error {
	return wr.writeItemType(itemSeqend)
}

func (wr *writer) writeQuad(e *entity.Solid) error {
	if err := wr.writeItemType(itemSolid); err != nil {
		return err
	}
	for _, c := range e.Corners {
		if err := wr.writeN(c[0], c[1]); err != nil {
			return err
		}
	}
	return nil
}

func (wr *writer) writeN(values ...float64) error {
	for _, v := range values {
		if err := wr.writeF32(v); err != nil {
			return err
		}
	}
	return nil
}

func (wr *writer) writeItemType(t itemType) error {
	_, err := wr.w.Write([]byte{byte(t)})
	return err
}

func (wr *writer) writeI16(v int16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], uint16(v))
	_, err := wr.w.Write(buf[:])
	return err
}

func (wr *writer) writeF32(v float64) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(float32(v)))
	_, err := wr.w.Write(buf[:])
	return err
}

func (wr *writer) writeNullTerminatedString(s string) error {
	if _, err := wr.w.Write([]byte(s)); err != nil {
		return err
	}
	_, err := wr.w.Write([]byte{0})
	return err
}
