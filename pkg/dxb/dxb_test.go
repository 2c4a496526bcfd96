package dxb

import (
	"bytes"
	"testing"

	"github.com/drawxchange/dxf/pkg/entity"
	"github.com/drawxchange/dxf/pkg/enums"
)

func TestRoundTripMixedEntities(t *testing.T) {
	line := &entity.Line{
		Record: entity.Record{Layer: "0", Color: enums.ColorByLayer},
		Start:  [3]float64{0, 0, 0},
		End:    [3]float64{10, 10, 0},
	}
	circle := &entity.Circle{
		Record: entity.Record{Layer: "WALLS", Color: enums.Color(3)},
		Center: [3]float64{1, 2, 0},
		Radius: 5,
	}
	poly := &entity.Polyline{
		Record: entity.Record{Layer: "WALLS", Color: enums.Color(3)},
		Vertices: []*entity.Vertex{
			{Record: entity.Record{Layer: "WALLS"}, Location: [3]float64{0, 0, 0}},
			{Record: entity.Record{Layer: "WALLS"}, Location: [3]float64{1, 1, 0}},
		},
		SeqEnd: &entity.SeqEnd{},
	}
	entities := []entity.Entity{line, circle, poly}

	var buf bytes.Buffer
	if err := Write(&buf, entities, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, blockBase, err := Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if blockBase != nil {
		t.Fatalf("expected no block base, got %v", blockBase)
	}
	if len(got) != 3 {
		t.Fatalf("got %d entities, want 3", len(got))
	}

	gotLine, ok := got[0].(*entity.Line)
	if !ok {
		t.Fatalf("got[0] = %T, want *entity.Line", got[0])
	}
	if gotLine.Start != line.Start || gotLine.End != line.End {
		t.Errorf("line mismatch: got %+v, want %+v", gotLine, line)
	}

	gotCircle, ok := got[1].(*entity.Circle)
	if !ok {
		t.Fatalf("got[1] = %T, want *entity.Circle", got[1])
	}
	if gotCircle.Center[0] != circle.Center[0] || gotCircle.Center[1] != circle.Center[1] || gotCircle.Radius != circle.Radius {
		t.Errorf("circle mismatch: got %+v, want %+v", gotCircle, circle)
	}
	if gotCircle.Layer != "WALLS" || gotCircle.Color != enums.Color(3) {
		t.Errorf("circle layer/color not preserved: layer=%q color=%v", gotCircle.Layer, gotCircle.Color)
	}

	gotPoly, ok := got[2].(*entity.Polyline)
	if !ok {
		t.Fatalf("got[2] = %T, want *entity.Polyline", got[2])
	}
	if len(gotPoly.Vertices) != 2 {
		t.Fatalf("got %d vertices, want 2", len(gotPoly.Vertices))
	}
	if gotPoly.SeqEnd == nil {
		t.Error("expected SeqEnd to be reattached after collecting the polyline run")
	}
}

func TestRoundTripBlockBase(t *testing.T) {
	point := &entity.Point{
		Record:   entity.Record{Layer: "0"},
		Position: [3]float64{3, 4, 0},
	}
	base := [2]float64{100, 200}

	var buf bytes.Buffer
	if err := Write(&buf, []entity.Entity{point}, &base); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, blockBase, err := Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if blockBase == nil {
		t.Fatal("expected a block base point")
	}
	if *blockBase != base {
		t.Errorf("block base = %v, want %v", *blockBase, base)
	}
	if len(got) != 1 {
		t.Fatalf("got %d entities, want 1", len(got))
	}
	if _, ok := got[0].(*entity.Point); !ok {
		t.Fatalf("got %T, want *entity.Point", got[0])
	}
}

func TestBadSentinelRejected(t *testing.T) {
	_, _, err := Read(bytes.NewReader([]byte("not a dxb stream at all, much too short")))
	if err == nil {
		t.Fatal("expected an error for a bad sentinel")
	}
}
