package xdata

import (
	"testing"

	"github.com/drawxchange/dxf/pkg/codepair"
)

type fakeReader struct {
	pairs []codepair.Pair
	idx   int
	pend  *codepair.Pair
}

func (f *fakeReader) Next() (codepair.Pair, error) {
	if f.pend != nil {
		p := *f.pend
		f.pend = nil
		return p, nil
	}
	if f.idx >= len(f.pairs) {
		return codepair.Pair{}, errEOF
	}
	p := f.pairs[f.idx]
	f.idx++
	return p, nil
}

func (f *fakeReader) Peek() (codepair.Pair, error) {
	if f.pend != nil {
		return *f.pend, nil
	}
	p, err := f.Next()
	if err != nil {
		return codepair.Pair{}, err
	}
	f.pend = &p
	return p, nil
}

func (f *fakeReader) Unget(p codepair.Pair) { f.pend = &p }
func (f *fakeReader) Offset() int64         { return int64(f.idx) }

var errEOF = &eofError{}

type eofError struct{}

func (*eofError) Error() string { return "EOF" }

func TestExtensionDataDepthExceeded(t *testing.T) {
	// 17 nested opens with no matching closes: depth must fail exactly at 17.
	var pairs []codepair.Pair
	for i := 0; i < 16; i++ {
		pairs = append(pairs, codepair.NewString(102, "{NEST"))
	}
	opening := codepair.NewString(102, "{ROOT")
	r := &fakeReader{pairs: pairs}

	_, err := ReadGroup(r, opening)
	if err == nil {
		t.Fatal("expected ExtensionDataTooDeep")
	}
	if _, ok := err.(codepair.ExtensionDataTooDeep); !ok {
		t.Fatalf("expected ExtensionDataTooDeep, got %T: %v", err, err)
	}
}

func TestExtensionDataRoundTripShallow(t *testing.T) {
	pairs := []codepair.Pair{
		codepair.NewString(1, "hello"),
		codepair.NewString(102, "}"),
	}
	r := &fakeReader{pairs: pairs}
	g, err := ReadGroup(r, codepair.NewString(102, "{MYAPP"))
	if err != nil {
		t.Fatalf("ReadGroup: %v", err)
	}
	if g.Name != "MYAPP" || len(g.Pairs) != 1 {
		t.Fatalf("got %+v", g)
	}
}

func TestDecodeLeafPoint(t *testing.T) {
	leaf, err := decodeLeaf(codepair.NewString(1010, "1.0 2.0 3.0"))
	if err != nil {
		t.Fatalf("decodeLeaf: %v", err)
	}
	if leaf.Kind != LeafPoint3D || leaf.Point != [3]float64{1, 2, 3} {
		t.Fatalf("got %+v", leaf)
	}
}

func TestDecodeLeafHandle(t *testing.T) {
	leaf, err := decodeLeaf(codepair.NewString(1005, "2A"))
	if err != nil {
		t.Fatalf("decodeLeaf: %v", err)
	}
	if leaf.Kind != LeafHandle || leaf.Handle != 0x2A {
		t.Fatalf("got %+v", leaf)
	}
}
