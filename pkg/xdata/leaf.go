package xdata

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/drawxchange/dxf/pkg/codepair"
)

// LeafKind identifies which of the documented XDATA leaf shapes a Leaf
// carries. The underlying code-pair stream hands every code >= 1000
// back as a plain string pair (codepair.ClassOf has no special range for
// XDATA); this package does the further typed decoding those codes imply.
type LeafKind int

const (
	LeafString LeafKind = iota
	LeafControlGroup
	LeafLayerName
	LeafBinaryChunk
	LeafHandle
	LeafPoint3D
	LeafWorldPosition
	LeafDisplacement
	LeafDirection
	LeafReal
	LeafDistance
	LeafScale
	LeafShort
	LeafLong
)

// Leaf is one typed XDATA entry.
type Leaf struct {
	Code   int
	Kind   LeafKind
	Str    string
	Point  [3]float64
	Real   float64
	Short  int16
	Long   int32
	Handle codepair.Handle
	Binary []byte
}

// Block is one application's XDATA bucket, introduced by (1001, app-name).
type Block struct {
	AppName string
	Leaves  []Leaf
}

// ReadBlock reads leaves following opening (the already-consumed
// (1001, app-name) pair) until the next peeked pair has code < 1000, which
// the caller (the entity/object field dispatcher) then handles itself.
func ReadBlock(r codepair.Reader, opening codepair.Pair) (Block, error) {
	appName, err := opening.Str()
	if err != nil {
		return Block{}, err
	}
	b := Block{AppName: appName}
	for {
		p, err := r.Peek()
		if err == io.EOF {
			return b, nil
		}
		if err != nil {
			return Block{}, err
		}
		if p.Code < 1000 {
			return b, nil
		}
		r.Next()
		leaf, err := decodeLeaf(p)
		if err != nil {
			return Block{}, err
		}
		b.Leaves = append(b.Leaves, leaf)
	}
}

func decodeLeaf(p codepair.Pair) (Leaf, error) {
	raw, err := p.Str()
	if err != nil {
		return Leaf{}, err
	}
	switch p.Code {
	case 1002:
		return Leaf{Code: p.Code, Kind: LeafControlGroup, Str: raw}, nil
	case 1003:
		return Leaf{Code: p.Code, Kind: LeafLayerName, Str: raw}, nil
	case 1004:
		bin, err := hex.DecodeString(strings.TrimSpace(raw))
		if err != nil {
			return Leaf{}, codepair.MalformedPair{Code: p.Code, Excerpt: raw}
		}
		return Leaf{Code: p.Code, Kind: LeafBinaryChunk, Binary: bin}, nil
	case 1005:
		h, err := strconv.ParseUint(strings.TrimSpace(raw), 16, 64)
		if err != nil {
			return Leaf{}, codepair.MalformedPair{Code: p.Code, Excerpt: raw}
		}
		return Leaf{Code: p.Code, Kind: LeafHandle, Handle: codepair.Handle(h)}, nil
	case 1010, 1011, 1012, 1013:
		pt, err := parsePoint(raw)
		if err != nil {
			return Leaf{}, codepair.MalformedPair{Code: p.Code, Excerpt: raw}
		}
		kind := map[int]LeafKind{1010: LeafPoint3D, 1011: LeafWorldPosition, 1012: LeafDisplacement, 1013: LeafDirection}[p.Code]
		return Leaf{Code: p.Code, Kind: kind, Point: pt}, nil
	case 1040, 1041, 1042:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return Leaf{}, codepair.MalformedPair{Code: p.Code, Excerpt: raw}
		}
		kind := map[int]LeafKind{1040: LeafReal, 1041: LeafDistance, 1042: LeafScale}[p.Code]
		return Leaf{Code: p.Code, Kind: kind, Real: f}, nil
	case 1070:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 16)
		if err != nil {
			return Leaf{}, codepair.MalformedPair{Code: p.Code, Excerpt: raw}
		}
		return Leaf{Code: p.Code, Kind: LeafShort, Short: int16(n)}, nil
	case 1071:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
		if err != nil {
			return Leaf{}, codepair.MalformedPair{Code: p.Code, Excerpt: raw}
		}
		return Leaf{Code: p.Code, Kind: LeafLong, Long: int32(n)}, nil
	default: // 1000 and anything undocumented: preserved verbatim as text
		return Leaf{Code: p.Code, Kind: LeafString, Str: raw}, nil
	}
}

func parsePoint(s string) ([3]float64, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return [3]float64{}, fmt.Errorf("xdata: expected 3 point components, got %d", len(fields))
	}
	var pt [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return [3]float64{}, err
		}
		pt[i] = v
	}
	return pt, nil
}

// WriteBlock emits b as (1001, app-name) followed by its leaves.
func WriteBlock(w codepair.Writer, b Block) error {
	if err := w.Emit(codepair.NewString(1001, b.AppName)); err != nil {
		return err
	}
	for _, leaf := range b.Leaves {
		if err := writeLeaf(w, leaf); err != nil {
			return err
		}
	}
	return nil
}

func writeLeaf(w codepair.Writer, leaf Leaf) error {
	switch leaf.Kind {
	case LeafControlGroup, LeafLayerName, LeafString:
		return w.Emit(codepair.NewString(leaf.Code, leaf.Str))
	case LeafBinaryChunk:
		return w.Emit(codepair.NewString(leaf.Code, hex.EncodeToString(leaf.Binary)))
	case LeafHandle:
		return w.Emit(codepair.NewString(leaf.Code, strconv.FormatUint(uint64(leaf.Handle), 16)))
	case LeafPoint3D, LeafWorldPosition, LeafDisplacement, LeafDirection:
		s := fmt.Sprintf("%g %g %g", leaf.Point[0], leaf.Point[1], leaf.Point[2])
		return w.Emit(codepair.NewString(leaf.Code, s))
	case LeafReal, LeafDistance, LeafScale:
		return w.Emit(codepair.NewString(leaf.Code, strconv.FormatFloat(leaf.Real, 'g', -1, 64)))
	case LeafShort:
		return w.Emit(codepair.NewString(leaf.Code, strconv.FormatInt(int64(leaf.Short), 10)))
	case LeafLong:
		return w.Emit(codepair.NewString(leaf.Code, strconv.FormatInt(int64(leaf.Long), 10)))
	default:
		return w.Emit(codepair.NewString(leaf.Code, leaf.Str))
	}
}
