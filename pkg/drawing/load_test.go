package drawing

import (
	"bytes"
	"strings"
	"testing"

	"github.com/drawxchange/dxf/pkg/entity"
)

func pairsToASCII(lines ...string) []byte {
	return []byte(strings.Join(lines, "\r\n") + "\r\n")
}

func TestLoadMinimalASCII(t *testing.T) {
	// The smallest well-formed drawing: one ENTITIES section holding one
	// LINE from the origin to (1,0,0), no header at all.
	src := pairsToASCII(
		"0", "SECTION",
		"2", "ENTITIES",
		"0", "LINE",
		"10", "0.0",
		"20", "0.0",
		"11", "1.0",
		"21", "0.0",
		"0", "ENDSEC",
		"0", "EOF",
	)

	d, err := Load(bytes.NewReader(src))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(d.Entities) != 1 {
		t.Fatalf("got %d entities, want 1", len(d.Entities))
	}
	line, ok := d.Entities[0].(*entity.Line)
	if !ok {
		t.Fatalf("got %T, want *entity.Line", d.Entities[0])
	}
	if line.Start != [3]float64{0, 0, 0} || line.End != [3]float64{1, 0, 0} {
		t.Errorf("Start/End = %v/%v", line.Start, line.End)
	}

	// Re-saving yields an equivalent structure.
	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	again, err := Load(&buf)
	if err != nil {
		t.Fatalf("re-Load: %v", err)
	}
	line2 := again.Entities[0].(*entity.Line)
	if line2.Start != line.Start || line2.End != line.End {
		t.Errorf("round trip mismatch: %+v vs %+v", line2, line)
	}
}

func TestLoadUnknownEntityReemitsVerbatim(t *testing.T) {
	src := pairsToASCII(
		"0", "SECTION",
		"2", "ENTITIES",
		"0", "ZZZZZ",
		"999", "opaque",
		"0", "LINE",
		"10", "0.0",
		"20", "0.0",
		"11", "0.0",
		"21", "0.0",
		"0", "ENDSEC",
		"0", "EOF",
	)

	d, err := Load(bytes.NewReader(src))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(d.Entities) != 2 {
		t.Fatalf("got %d entities, want 2", len(d.Entities))
	}
	if d.Entities[0].TypeName() != "ZZZZZ" {
		t.Fatalf("first entity type = %q", d.Entities[0].TypeName())
	}

	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "ZZZZZ") {
		t.Error("unknown entity type dropped from output")
	}
	if !strings.Contains(out, "opaque") {
		t.Error("unknown entity's raw pair dropped from output")
	}
}

func TestLoadAutodetectsBinary(t *testing.T) {
	d := newSample()

	var binBuf bytes.Buffer
	if err := d.SaveBinary(&binBuf); err != nil {
		t.Fatalf("SaveBinary: %v", err)
	}

	again, err := Load(bytes.NewReader(binBuf.Bytes()))
	if err != nil {
		t.Fatalf("Load (binary autodetect): %v", err)
	}
	if len(again.Entities) != 1 {
		t.Fatalf("got %d entities, want 1", len(again.Entities))
	}
}

func TestLoadEmptyStream(t *testing.T) {
	d, err := Load(bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("Load of empty stream: %v", err)
	}
	if len(d.Entities) != 0 || len(d.Tables) != 0 {
		t.Fatalf("empty stream should load an empty drawing, got %+v", d)
	}
}

func TestOwnerOfResolvesAfterLoad(t *testing.T) {
	d := newSample()
	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	again, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	idx := again.BuildIndex(nil)
	for _, tbl := range again.Tables {
		for _, e := range tbl.Entries {
			owner := e.Base().Owner
			if owner == 0 {
				continue
			}
			if _, ok := idx.Resolve(owner); !ok {
				t.Errorf("table entry %q has unresolvable owner %#x", e.Base().Name, uint64(owner))
			}
		}
	}
}
