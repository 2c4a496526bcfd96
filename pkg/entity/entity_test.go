package entity

import (
	"bytes"
	"testing"

	"github.com/drawxchange/dxf/pkg/ascii"
	"github.com/drawxchange/dxf/pkg/enums"
)

func readSection(t *testing.T, src string) []Entity {
	t.Helper()
	r := ascii.NewReader([]byte(src), enums.R2013, ascii.DefaultCodePage)
	entities, err := ReadSection(r, nil)
	if err != nil {
		t.Fatalf("ReadSection: %v", err)
	}
	return entities
}

func TestLineRoundTrip(t *testing.T) {
	src := "0\r\nLINE\r\n5\r\n1A\r\n8\r\nMyLayer\r\n10\r\n1.0\r\n20\r\n2.0\r\n30\r\n0.0\r\n" +
		"11\r\n4.0\r\n21\r\n5.0\r\n31\r\n0.0\r\n0\r\nENDSEC\r\n"

	entities := readSection(t, src)
	if len(entities) != 1 {
		t.Fatalf("got %d entities, want 1", len(entities))
	}
	line, ok := entities[0].(*Line)
	if !ok {
		t.Fatalf("got %T, want *Line", entities[0])
	}
	if line.Handle != 0x1A || line.Layer != "MyLayer" {
		t.Errorf("handle/layer = %#x/%q", line.Handle, line.Layer)
	}
	if line.Start != [3]float64{1, 2, 0} || line.End != [3]float64{4, 5, 0} {
		t.Errorf("Start/End = %v/%v", line.Start, line.End)
	}

	var buf bytes.Buffer
	w := ascii.NewWriter(&buf, enums.R2013, ascii.DefaultCodePage)
	if err := WriteSection(w, entities, enums.R2013); err != nil {
		t.Fatalf("WriteSection: %v", err)
	}
	w.Flush()

	again := readSection(t, buf.String())
	if len(again) != 1 {
		t.Fatalf("re-read got %d entities, want 1", len(again))
	}
	line2 := again[0].(*Line)
	if line2.Start != line.Start || line2.Handle != line.Handle {
		t.Errorf("round trip mismatch: %+v vs %+v", line2, line)
	}
}

func TestInsertAttachesAttributesAndSeqEnd(t *testing.T) {
	src := "0\r\nINSERT\r\n2\r\nMYBLOCK\r\n10\r\n0.0\r\n20\r\n0.0\r\n30\r\n0.0\r\n66\r\n1\r\n" +
		"0\r\nATTRIB\r\n1\r\nvalue-a\r\n2\r\nTAGA\r\n" +
		"0\r\nATTRIB\r\n1\r\nvalue-b\r\n2\r\nTAGB\r\n" +
		"0\r\nSEQEND\r\n" +
		"0\r\nENDSEC\r\n"

	entities := readSection(t, src)
	if len(entities) != 1 {
		t.Fatalf("got %d top-level entities, want 1 (attributes/seqend attach, not flatten)", len(entities))
	}
	ins, ok := entities[0].(*Insert)
	if !ok {
		t.Fatalf("got %T, want *Insert", entities[0])
	}
	if len(ins.Attributes) != 2 {
		t.Fatalf("got %d attributes, want 2", len(ins.Attributes))
	}
	if ins.Attributes[0].Tag != "TAGA" || ins.Attributes[1].Tag != "TAGB" {
		t.Errorf("attribute order/tags wrong: %+v", ins.Attributes)
	}
	if ins.SeqEnd == nil {
		t.Fatal("expected SeqEnd to be attached")
	}

	var buf bytes.Buffer
	w := ascii.NewWriter(&buf, enums.R2013, ascii.DefaultCodePage)
	if err := WriteSection(w, entities, enums.R2013); err != nil {
		t.Fatalf("WriteSection: %v", err)
	}
	w.Flush()

	again := readSection(t, buf.String())
	ins2 := again[0].(*Insert)
	if len(ins2.Attributes) != 2 || ins2.SeqEnd == nil {
		t.Errorf("round trip dropped attributes/seqend: %+v", ins2)
	}
}

func TestPolylineAttachesVerticesAndSeqEnd(t *testing.T) {
	src := "0\r\nPOLYLINE\r\n70\r\n1\r\n" +
		"0\r\nVERTEX\r\n10\r\n0.0\r\n20\r\n0.0\r\n30\r\n0.0\r\n" +
		"0\r\nVERTEX\r\n10\r\n1.0\r\n20\r\n1.0\r\n30\r\n0.0\r\n" +
		"0\r\nSEQEND\r\n" +
		"0\r\nENDSEC\r\n"

	entities := readSection(t, src)
	if len(entities) != 1 {
		t.Fatalf("got %d top-level entities, want 1", len(entities))
	}
	pl, ok := entities[0].(*Polyline)
	if !ok {
		t.Fatalf("got %T, want *Polyline", entities[0])
	}
	if len(pl.Vertices) != 2 {
		t.Fatalf("got %d vertices, want 2", len(pl.Vertices))
	}
	if pl.SeqEnd == nil {
		t.Fatal("expected SeqEnd to be attached")
	}
}

func TestUnknownEntityTypePreservesRawPairsAndResyncs(t *testing.T) {
	src := "0\r\nZZZZZ\r\n62\r\n7\r\n0\r\nLINE\r\n10\r\n0.0\r\n20\r\n0.0\r\n30\r\n0.0\r\n0\r\nENDSEC\r\n"

	entities := readSection(t, src)
	if len(entities) != 2 {
		t.Fatalf("got %d entities, want 2 (one unknown, one LINE)", len(entities))
	}
	unk, ok := entities[0].(*UnknownEntity)
	if !ok {
		t.Fatalf("got %T, want *UnknownEntity", entities[0])
	}
	if unk.TypeName() != "ZZZZZ" {
		t.Errorf("TypeName = %q", unk.TypeName())
	}
	// 62 is a common-record field (Color), claimed before it ever reaches
	// RawPairs, so the unknown entity is expected to preserve it as Color,
	// not as a raw pair.
	if unk.Color.ToWire() != 7 {
		t.Errorf("Color = %v, want wire 7", unk.Color)
	}
	if _, ok := entities[1].(*Line); !ok {
		t.Fatalf("got %T, want *Line following the unknown entity", entities[1])
	}
}

func TestMTextContinuationChunking(t *testing.T) {
	long := ""
	for i := 0; i < 260; i++ {
		long += "x"
	}
	mt := &MText{Record: newRecord(), Value: long}

	var buf bytes.Buffer
	w := ascii.NewWriter(&buf, enums.R2013, ascii.DefaultCodePage)
	if err := WriteOne(w, mt, enums.R2013); err != nil {
		t.Fatalf("WriteOne: %v", err)
	}
	w.Flush()

	entities := readSection(t, buf.String()+"0\r\nENDSEC\r\n")
	if len(entities) != 1 {
		t.Fatalf("got %d entities, want 1", len(entities))
	}
	got := entities[0].(*MText)
	if got.Value != long {
		t.Errorf("chunked value mismatch: got %d runes, want %d", len(got.Value), len(long))
	}
}

func TestVersionGatedDropOnWrite(t *testing.T) {
	entities := []Entity{
		&Ellipse{Record: newRecord()}, // MinVersion R13
	}
	var buf bytes.Buffer
	w := ascii.NewWriter(&buf, enums.R10, ascii.DefaultCodePage)
	if err := WriteSection(w, entities, enums.R10); err != nil {
		t.Fatalf("WriteSection: %v", err)
	}
	w.Flush()

	again := readSection(t, buf.String())
	if len(again) != 0 {
		t.Errorf("expected ellipse to be dropped writing to R10, got %d entities", len(again))
	}
}

func TestRawPairsPreservedOnPartiallyUnderstoodEntity(t *testing.T) {
	src := "0\r\nLINE\r\n10\r\n0.0\r\n20\r\n0.0\r\n30\r\n0.0\r\n999\r\nfuture-field\r\n0\r\nENDSEC\r\n"
	entities := readSection(t, src)
	line := entities[0].(*Line)
	if len(line.RawPairs) != 1 {
		t.Fatalf("got %d raw pairs, want 1", len(line.RawPairs))
	}
	if line.RawPairs[0].Code != 999 {
		t.Errorf("raw pair code = %d, want 999", line.RawPairs[0].Code)
	}
}

func TestExtensionDataAndXDataRoundTrip(t *testing.T) {
	src := "0\r\nLINE\r\n" +
		"102\r\n{ACAD_REACTORS\r\n330\r\nDEAD\r\n102\r\n}\r\n" +
		"10\r\n0.0\r\n20\r\n0.0\r\n30\r\n0.0\r\n11\r\n1.0\r\n21\r\n0.0\r\n31\r\n0.0\r\n" +
		"1001\r\nMYAPP\r\n1000\r\npayload\r\n1070\r\n42\r\n" +
		"0\r\nENDSEC\r\n"

	entities := readSection(t, src)
	if len(entities) != 1 {
		t.Fatalf("got %d entities, want 1", len(entities))
	}
	line := entities[0].(*Line)
	if len(line.ExtData) != 1 || line.ExtData[0].Name != "ACAD_REACTORS" {
		t.Fatalf("ExtData = %+v", line.ExtData)
	}
	if len(line.XData) != 1 || line.XData[0].AppName != "MYAPP" {
		t.Fatalf("XData = %+v", line.XData)
	}
	if len(line.XData[0].Leaves) != 2 {
		t.Fatalf("got %d leaves, want 2", len(line.XData[0].Leaves))
	}
	if line.XData[0].Leaves[1].Short != 42 {
		t.Errorf("leaf short = %d, want 42", line.XData[0].Leaves[1].Short)
	}

	var buf bytes.Buffer
	w := ascii.NewWriter(&buf, enums.R2013, ascii.DefaultCodePage)
	if err := WriteSection(w, entities, enums.R2013); err != nil {
		t.Fatalf("WriteSection: %v", err)
	}
	w.Flush()

	again := readSection(t, buf.String())
	line2 := again[0].(*Line)
	if len(line2.ExtData) != 1 || len(line2.XData) != 1 {
		t.Fatalf("round trip dropped trailing data: ext=%d xdata=%d", len(line2.ExtData), len(line2.XData))
	}
	if line2.XData[0].Leaves[1].Short != 42 {
		t.Errorf("round trip leaf short = %d, want 42", line2.XData[0].Leaves[1].Short)
	}
}
