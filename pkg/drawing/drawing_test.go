package drawing

import (
	"bytes"
	"testing"

	"github.com/drawxchange/dxf/pkg/entity"
	"github.com/drawxchange/dxf/pkg/enums"
)

func newSample() *Drawing {
	d := New()
	d.Normalize()
	d.Entities = append(d.Entities, &entity.Line{
		Record: entity.Record{Layer: "0"},
		Start:  [3]float64{0, 0, 0},
		End:    [3]float64{1, 1, 0},
		Normal: [3]float64{0, 0, 1},
	})
	return d
}

func TestASCIIRoundTrip(t *testing.T) {
	d := newSample()

	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	again, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(again.Entities) != 1 {
		t.Fatalf("got %d entities, want 1", len(again.Entities))
	}
	line, ok := again.Entities[0].(*entity.Line)
	if !ok {
		t.Fatalf("got %T, want *entity.Line", again.Entities[0])
	}
	if line.Start != [3]float64{0, 0, 0} || line.End != [3]float64{1, 1, 0} {
		t.Errorf("round trip mismatch: %+v", line)
	}
}

func TestCrossFormatEquivalence(t *testing.T) {
	d := newSample()

	var asciiBuf, binBuf bytes.Buffer
	if err := d.Save(&asciiBuf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := d.SaveBinary(&binBuf); err != nil {
		t.Fatalf("SaveBinary: %v", err)
	}

	fromASCII, err := Load(&asciiBuf)
	if err != nil {
		t.Fatalf("Load (ascii): %v", err)
	}
	fromBinary, err := Load(&binBuf)
	if err != nil {
		t.Fatalf("Load (binary): %v", err)
	}

	lineA := fromASCII.Entities[0].(*entity.Line)
	lineB := fromBinary.Entities[0].(*entity.Line)
	if lineA.Start != lineB.Start || lineA.End != lineB.End {
		t.Errorf("ascii/binary mismatch: %+v vs %+v", lineA, lineB)
	}
	if len(fromASCII.Tables) != len(fromBinary.Tables) {
		t.Errorf("table count mismatch: %d vs %d", len(fromASCII.Tables), len(fromBinary.Tables))
	}
}

func TestVersionDowngradeSafety(t *testing.T) {
	d := New()
	d.Normalize()
	d.Entities = append(d.Entities,
		&entity.Line{Record: entity.Record{Layer: "0"}},
		&entity.Ellipse{Record: entity.Record{Layer: "0"}}, // MinVersion R13
	)

	var buf bytes.Buffer
	if err := d.SaveAt(&buf, enums.R10); err != nil {
		t.Fatalf("SaveAt: %v", err)
	}

	again, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(again.Entities) != 1 {
		t.Fatalf("got %d entities at R10, want 1 (ellipse dropped)", len(again.Entities))
	}
	if _, ok := again.Entities[0].(*entity.Line); !ok {
		t.Fatalf("got %T, want *entity.Line", again.Entities[0])
	}
}

func TestHandleUniquenessAfterSave(t *testing.T) {
	d := newSample()
	d.Entities = append(d.Entities, &entity.Circle{Record: entity.Record{Layer: "0"}, Radius: 1})

	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	seen := map[uint64]bool{}
	for _, e := range d.Entities {
		h := uint64(e.Base().Handle)
		if h == 0 {
			t.Errorf("entity has zero handle after save: %+v", e)
		}
		if seen[h] {
			t.Errorf("duplicate handle %d", h)
		}
		seen[h] = true
	}
	if d.Header.HandleSeed == 0 {
		t.Error("expected HandleSeed to advance past 0 after assignment")
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	d := New()
	d.Normalize()
	firstCount := len(d.Tables)
	d.Normalize()
	if len(d.Tables) != firstCount {
		t.Fatalf("Normalize grew table count on second call: %d vs %d", len(d.Tables), firstCount)
	}
	for _, name := range tableOrder {
		if d.tableByName(name) == nil {
			t.Errorf("missing table %q after Normalize", name)
		}
	}
	if !tableHasEntry(d.tableByName("LAYER"), "0") {
		t.Error("expected layer \"0\" after Normalize")
	}
}

func TestCompressedRoundTrip(t *testing.T) {
	d := newSample()

	var buf bytes.Buffer
	if err := d.SaveCompressed(&buf); err != nil {
		t.Fatalf("SaveCompressed: %v", err)
	}

	again, err := LoadCompressed(&buf)
	if err != nil {
		t.Fatalf("LoadCompressed: %v", err)
	}
	if len(again.Entities) != 1 {
		t.Fatalf("got %d entities, want 1", len(again.Entities))
	}
}

func TestDXBRoundTrip(t *testing.T) {
	d := New()
	d.Entities = append(d.Entities, &entity.Line{
		Record: entity.Record{Layer: "0"},
		Start:  [3]float64{0, 0, 0},
		End:    [3]float64{5, 5, 0},
	})

	var buf bytes.Buffer
	if err := d.SaveDXB(&buf); err != nil {
		t.Fatalf("SaveDXB: %v", err)
	}

	again, err := LoadDXB(&buf)
	if err != nil {
		t.Fatalf("LoadDXB: %v", err)
	}
	if len(again.Entities) != 1 {
		t.Fatalf("got %d entities, want 1", len(again.Entities))
	}
	line, ok := again.Entities[0].(*entity.Line)
	if !ok {
		t.Fatalf("got %T, want *entity.Line", again.Entities[0])
	}
	if line.End != [3]float64{5, 5, 0} {
		t.Errorf("line.End = %v, want {5 5 0}", line.End)
	}
}
