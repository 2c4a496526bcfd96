package dxb

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"github.com/drawxchange/dxf/pkg/codepair"
	"github.com/drawxchange/dxf/pkg/entity"
	"github.com/drawxchange/dxf/pkg/enums"
)

// Read decodes a DXB stream into its entity list and, if the stream opens
// with a BLOCKBASE record, that block's base point.
func Read(r io.Reader) ([]entity.Entity, *[2]float64, error) {
	rd := &reader{r: bufio.NewReader(r)}
	return rd.read()
}

// reader carries the running state a DXB stream threads across records:
// integer-vs-float number mode, the current layer/color (set once and
// implicitly shared by every entity until the next NEWLAYER/NEWCOLOR), and
// a scale factor applied to every integer-mode ordinate.
type reader struct {
	r             *bufio.Reader
	isIntegerMode bool
	layerName     string
	scaleFactor   float64
	currentColor  enums.Color
	lastLinePoint [3]float64
	lastTraceP3   [2]float64
	lastTraceP4   [2]float64
}

func (rd *reader) read() ([]entity.Entity, *[2]float64, error) {
	sentinel := make([]byte, len(Sentinel))
	if _, err := io.ReadFull(rd.r, sentinel); err != nil {
		return nil, nil, codepair.IOError{Err: err}
	}
	for i, b := range Sentinel {
		if sentinel[i] != b {
			return nil, nil, codepair.InvalidEncoding{Detail: "bad DXB sentinel"}
		}
	}

	rd.isIntegerMode = true
	rd.layerName = "0"
	rd.scaleFactor = 1
	rd.currentColor = enums.ColorByLayer

	var blockBase *[2]float64
	var raw []entity.Entity

	for {
		b, err := rd.readU8()
		if err != nil {
			return nil, nil, err
		}
		switch itemType(b) {
		case itemEOF:
			return collectPolylines(raw), blockBase, nil
		case itemArc:
			e, err := rd.readArc()
			if err != nil {
				return nil, nil, err
			}
			raw = append(raw, e)
		case itemCircle:
			e, err := rd.readCircle()
			if err != nil {
				return nil, nil, err
			}
			raw = append(raw, e)
		case itemFace:
			e, err := rd.readFace()
			if err != nil {
				return nil, nil, err
			}
			raw = append(raw, e)
		case itemLine, itemLine3D:
			e, err := rd.readLine()
			if err != nil {
				return nil, nil, err
			}
			raw = append(raw, e)
		case itemLineExtension:
			e, err := rd.readLineExtension(false)
			if err != nil {
				return nil, nil, err
			}
			raw = append(raw, e)
		case itemLineExtension3D:
			e, err := rd.readLineExtension(true)
			if err != nil {
				return nil, nil, err
			}
			raw = append(raw, e)
		case itemPoint:
			e, err := rd.readPoint()
			if err != nil {
				return nil, nil, err
			}
			raw = append(raw, e)
		case itemPolyline:
			e, err := rd.readPolyline()
			if err != nil {
				return nil, nil, err
			}
			raw = append(raw, e)
		case itemSeqend:
			raw = append(raw, rd.wrapped(&entity.SeqEnd{Record: entity.Record{LineWeight: enums.LineWeightByLayer}}))
		case itemSolid:
			e, err := rd.readQuad()
			if err != nil {
				return nil, nil, err
			}
			raw = append(raw, e)
		case itemTrace:
			e, err := rd.readQuad()
			if err != nil {
				return nil, nil, err
			}
			rd.rememberTrace(e.(*entity.Solid))
			raw = append(raw, e)
		case itemTraceExtension:
			e, err := rd.readTraceExtension()
			if err != nil {
				return nil, nil, err
			}
			rd.rememberTrace(e.(*entity.Solid))
			raw = append(raw, e)
		case itemVertex:
			e, err := rd.readVertex()
			if err != nil {
				return nil, nil, err
			}
			raw = append(raw, e)
		case itemNewColor:
			w, err := rd.readW()
			if err != nil {
				return nil, nil, err
			}
			rd.currentColor = enums.FromWireColor(int16(w))
		case itemNewLayer:
			s, err := rd.readNullTerminatedString()
			if err != nil {
				return nil, nil, err
			}
			rd.layerName = s
		case itemScaleFactor:
			f, err := rd.readF()
			if err != nil {
				return nil, nil, err
			}
			rd.scaleFactor = f
		case itemBlockBase:
			x, err := rd.readN()
			if err != nil {
				return nil, nil, err
			}
			y, err := rd.readN()
			if err != nil {
				return nil, nil, err
			}
			if blockBase != nil || len(raw) != 0 {
				return nil, nil, codepair.InvalidEncoding{Detail: "BLOCKBASE must be the stream's first record"}
			}
			blockBase = &[2]float64{x, y}
		case itemBulge:
			v, err := rd.readU()
			if err != nil {
				return nil, nil, err
			}
			vt, ok := lastVertex(raw)
			if !ok {
				return nil, nil, codepair.InvalidEncoding{Detail: "BULGE with no preceding VERTEX"}
			}
			vt.Bulge = v
		case itemWidth:
			if _, err := rd.readN(); err != nil {
				return nil, nil, err
			}
			if _, err := rd.readN(); err != nil {
				return nil, nil, err
			}
			if _, ok := lastVertex(raw); !ok {
				return nil, nil, codepair.InvalidEncoding{Detail: "WIDTH with no preceding VERTEX"}
			}
		case itemNumberMode:
			w, err := rd.readW()
			if err != nil {
				return nil, nil, err
			}
			rd.isIntegerMode = w == 0
		default:
			return nil, nil, codepair.InvalidEncoding{Detail: "unknown DXB item type"}
		}
	}
}

func lastVertex(raw []entity.Entity) (*entity.Vertex, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	v, ok := raw[len(raw)-1].(*entity.Vertex)
	return v, ok
}

// collectPolylines groups the flat POLYLINE/VERTEX.../SEQEND run DXB emits
// into a single *entity.Polyline, the shape pkg/entity's ReadSection
// produces for ASCII/binary DXF, so a DXB-loaded drawing's entity list
// has the same structure regardless of source encoding.
func collectPolylines(raw []entity.Entity) []entity.Entity {
	var out []entity.Entity
	for i := 0; i < len(raw); i++ {
		poly, ok := raw[i].(*entity.Polyline)
		if !ok {
			out = append(out, raw[i])
			continue
		}
		i++
		for i < len(raw) {
			if v, ok := raw[i].(*entity.Vertex); ok {
				poly.Vertices = append(poly.Vertices, v)
				i++
				continue
			}
			break
		}
		if i < len(raw) {
			if s, ok := raw[i].(*entity.SeqEnd); ok {
				poly.SeqEnd = s
			} else {
				i--
			}
		}
		out = append(out, poly)
	}
	return out
}

func (rd *reader) wrapped(e entity.Entity) entity.Entity {
	rec := e.Base()
	rec.Layer = rd.layerName
	rec.Color = rd.currentColor
	return e
}

func (rd *reader) readArc() (entity.Entity, error) {
	cx, err := rd.readN()
	if err != nil {
		return nil, err
	}
	cy, err := rd.readN()
	if err != nil {
		return nil, err
	}
	radius, err := rd.readN()
	if err != nil {
		return nil, err
	}
	start, err := rd.readA()
	if err != nil {
		return nil, err
	}
	end, err := rd.readA()
	if err != nil {
		return nil, err
	}
	return rd.wrapped(&entity.Arc{
		Record:     entity.Record{LineWeight: enums.LineWeightByLayer},
		Center:     [3]float64{cx, cy, 0},
		Radius:     radius,
		StartAngle: start,
		EndAngle:   end,
		Normal:     [3]float64{0, 0, 1},
	}), nil
}

func (rd *reader) readCircle() (entity.Entity, error) {
	cx, err := rd.readN()
	if err != nil {
		return nil, err
	}
	cy, err := rd.readN()
	if err != nil {
		return nil, err
	}
	radius, err := rd.readN()
	if err != nil {
		return nil, err
	}
	return rd.wrapped(&entity.Circle{
		Record: entity.Record{LineWeight: enums.LineWeightByLayer},
		Center: [3]float64{cx, cy, 0},
		Radius: radius,
		Normal: [3]float64{0, 0, 1},
	}), nil
}

func (rd *reader) readFace() (entity.Entity, error) {
	var corners [4][3]float64
	for i := range corners {
		x, err := rd.readN()
		if err != nil {
			return nil, err
		}
		y, err := rd.readN()
		if err != nil {
			return nil, err
		}
		z, err := rd.readN()
		if err != nil {
			return nil, err
		}
		corners[i] = [3]float64{x, y, z}
	}
	return rd.wrapped(&entity.Face3D{
		Record:  entity.Record{LineWeight: enums.LineWeightByLayer},
		Corners: corners,
	}), nil
}

func (rd *reader) readLine() (entity.Entity, error) {
	x1, err := rd.readN()
	if err != nil {
		return nil, err
	}
	y1, err := rd.readN()
	if err != nil {
		return nil, err
	}
	z1, err := rd.readN()
	if err != nil {
		return nil, err
	}
	x2, err := rd.readN()
	if err != nil {
		return nil, err
	}
	y2, err := rd.readN()
	if err != nil {
		return nil, err
	}
	z2, err := rd.readN()
	if err != nil {
		return nil, err
	}
	rd.lastLinePoint = [3]float64{x2, y2, z2}
	return rd.wrapped(&entity.Line{
		Record: entity.Record{LineWeight: enums.LineWeightByLayer},
		Start:  [3]float64{x1, y1, z1},
		End:    [3]float64{x2, y2, z2},
		Normal: [3]float64{0, 0, 1},
	}), nil
}

func (rd *reader) readLineExtension(threeD bool) (entity.Entity, error) {
	x, err := rd.readN()
	if err != nil {
		return nil, err
	}
	y, err := rd.readN()
	if err != nil {
		return nil, err
	}
	z := 0.0
	if threeD {
		z, err = rd.readN()
		if err != nil {
			return nil, err
		}
	}
	to := [3]float64{x, y, z}
	from := rd.lastLinePoint
	rd.lastLinePoint = to
	return rd.wrapped(&entity.Line{
		Record: entity.Record{LineWeight: enums.LineWeightByLayer},
		Start:  from,
		End:    to,
		Normal: [3]float64{0, 0, 1},
	}), nil
}

func (rd *reader) readPoint() (entity.Entity, error) {
	x, err := rd.readN()
	if err != nil {
		return nil, err
	}
	y, err := rd.readN()
	if err != nil {
		return nil, err
	}
	return rd.wrapped(&entity.Point{
		Record:   entity.Record{LineWeight: enums.LineWeightByLayer},
		Position: [3]float64{x, y, 0},
		Normal:   [3]float64{0, 0, 1},
	}), nil
}

func (rd *reader) readPolyline() (entity.Entity, error) {
	w, err := rd.readW()
	if err != nil {
		return nil, err
	}
	var flags int16
	if w != 0 {
		flags = 1 // closed (DXF POLYLINE flag bit 0)
	}
	return rd.wrapped(&entity.Polyline{
		Record: entity.Record{LineWeight: enums.LineWeightByLayer},
		Flags:  flags,
		Normal: [3]float64{0, 0, 1},
	}), nil
}

func (rd *reader) readVertex() (entity.Entity, error) {
	x, err := rd.readN()
	if err != nil {
		return nil, err
	}
	y, err := rd.readN()
	if err != nil {
		return nil, err
	}
	return rd.wrapped(&entity.Vertex{
		Record:   entity.Record{LineWeight: enums.LineWeightByLayer},
		Location: [3]float64{x, y, 0},
	}), nil
}

// readQuad reads the four-corner shape SOLID and TRACE share (AutoCAD's
// real TRACE is a SOLID with a different entity name only) - this
// package's entity set folds both into Solid rather than carrying a
// separate Trace type for a struct that would be identical (see
// DESIGN.md).
func (rd *reader) readQuad() (entity.Entity, error) {
	var corners [4][2]float64
	for i := range corners {
		x, err := rd.readN()
		if err != nil {
			return nil, err
		}
		y, err := rd.readN()
		if err != nil {
			return nil, err
		}
		corners[i] = [2]float64{x, y}
	}
	return rd.wrapped(&entity.Solid{
		Record:  entity.Record{LineWeight: enums.LineWeightByLayer},
		Corners: corners,
		Normal:  [3]float64{0, 0, 1},
	}), nil
}

// readTraceExtension reads only the new third/fourth corner and reuses the
// previous TRACE's third/fourth corner as this one's first/second, forming
// a connected strip of traces.
func (rd *reader) readTraceExtension() (entity.Entity, error) {
	x3, err := rd.readN()
	if err != nil {
		return nil, err
	}
	y3, err := rd.readN()
	if err != nil {
		return nil, err
	}
	x4, err := rd.readN()
	if err != nil {
		return nil, err
	}
	y4, err := rd.readN()
	if err != nil {
		return nil, err
	}
	corners := [4][2]float64{
		rd.lastTraceP3, rd.lastTraceP4,
		{x3, y3}, {x4, y4},
	}
	return rd.wrapped(&entity.Solid{
		Record:  entity.Record{LineWeight: enums.LineWeightByLayer},
		Corners: corners,
		Normal:  [3]float64{0, 0, 1},
	}), nil
}

func (rd *reader) rememberTrace(s *entity.Solid) {
	rd.lastTraceP3 = s.Corners[2]
	rd.lastTraceP4 = s.Corners[3]
}

func (rd *reader) readU8() (byte, error) {
	b, err := rd.r.ReadByte()
	if err != nil {
		return 0, codepair.IOError{Err: err}
	}
	return b, nil
}

func (rd *reader) readI16() (int16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(rd.r, buf[:]); err != nil {
		return 0, codepair.IOError{Err: err}
	}
	return int16(binary.LittleEndian.Uint16(buf[:])), nil
}

func (rd *reader) readI32() (int32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(rd.r, buf[:]); err != nil {
		return 0, codepair.IOError{Err: err}
	}
	return int32(binary.LittleEndian.Uint32(buf[:])), nil
}

func (rd *reader) readF32() (float32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(rd.r, buf[:]); err != nil {
		return 0, codepair.IOError{Err: err}
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[:])), nil
}

func (rd *reader) readF64() (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(rd.r, buf[:]); err != nil {
		return 0, codepair.IOError{Err: err}
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(buf[:])), nil
}

func (rd *reader) readNullTerminatedString() (string, error) {
	var sb []byte
	for {
		b, err := rd.readU8()
		if err != nil {
			return "", err
		}
		if b == 0 {
			return string(sb), nil
		}
		sb = append(sb, b)
	}
}

// readN reads a single ordinate: a scaled int16 in integer mode, a raw
// float32 otherwise.
func (rd *reader) readN() (float64, error) {
	if rd.isIntegerMode {
		v, err := rd.readI16()
		if err != nil {
			return 0, err
		}
		return float64(v) * rd.scaleFactor, nil
	}
	v, err := rd.readF32()
	if err != nil {
		return 0, err
	}
	return float64(v), nil
}

// readA reads an angle in degrees: a fixed-point int32 scaled to
// millionths of a degree in integer mode, a raw float32 otherwise.
func (rd *reader) readA() (float64, error) {
	if rd.isIntegerMode {
		v, err := rd.readI32()
		if err != nil {
			return 0, err
		}
		return float64(v) * rd.scaleFactor / 1_000_000.0, nil
	}
	v, err := rd.readF32()
	if err != nil {
		return 0, err
	}
	return float64(v), nil
}

// readF reads a raw double, used only by SCALEFACTOR.
func (rd *reader) readF() (float64, error) {
	return rd.readF64()
}

// readU reads a bulge-style fixed-point value: an int32 scaled by 65536 and
// scaleFactor in integer mode, a raw float32 otherwise.
func (rd *reader) readU() (float64, error) {
	if rd.isIntegerMode {
		v, err := rd.readI32()
		if err != nil {
			return 0, err
		}
		return float64(v) * 65536.0 * rd.scaleFactor, nil
	}
	v, err := rd.readF32()
	if err != nil {
		return 0, err
	}
	return float64(v), nil
}

// readW reads a signed word scaled by scaleFactor, used by NUMBERMODE,
// NEWCOLOR, and the POLYLINE closed flag.
func (rd *reader) readW() (int32, error) {
	v, err := rd.readI16()
	if err != nil {
		return 0, err
	}
	return int32(float64(v) * rd.scaleFactor), nil
}
