package table

import (
	"bytes"
	"testing"

	"github.com/drawxchange/dxf/pkg/ascii"
	"github.com/drawxchange/dxf/pkg/enums"
)

func TestTablesSectionRoundTrip(t *testing.T) {
	src := "0\r\nTABLE\r\n2\r\nLAYER\r\n70\r\n2\r\n" +
		"0\r\nLAYER\r\n2\r\n0\r\n62\r\n7\r\n6\r\nCONTINUOUS\r\n" +
		"0\r\nLAYER\r\n2\r\nWalls\r\n62\r\n3\r\n6\r\nDASHED\r\n" +
		"0\r\nENDTAB\r\n" +
		"0\r\nTABLE\r\n2\r\nAPPID\r\n70\r\n0\r\n" +
		"0\r\nAPPID\r\n2\r\nACAD\r\n" +
		"0\r\nENDTAB\r\n" +
		"0\r\nENDSEC\r\n"

	r := ascii.NewReader([]byte(src), enums.R2013, ascii.DefaultCodePage)
	tables, err := ReadSection(r, nil)
	if err != nil {
		t.Fatalf("ReadSection: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("got %d tables, want 2", len(tables))
	}
	if tables[0].Name != "LAYER" || len(tables[0].Entries) != 2 {
		t.Fatalf("layer table: %+v", tables[0])
	}
	walls := tables[0].Entries[1].(*Layer)
	if walls.Name != "Walls" || walls.LineType != "DASHED" {
		t.Errorf("second layer entry: %+v", walls)
	}

	var buf bytes.Buffer
	w := ascii.NewWriter(&buf, enums.R2013, ascii.DefaultCodePage)
	if err := WriteSection(w, tables); err != nil {
		t.Fatalf("WriteSection: %v", err)
	}
	w.Flush()

	r2 := ascii.NewReader(buf.Bytes(), enums.R2013, ascii.DefaultCodePage)
	again, err := ReadSection(r2, nil)
	if err != nil {
		t.Fatalf("re-ReadSection: %v", err)
	}
	if len(again) != 2 || len(again[0].Entries) != 2 {
		t.Fatalf("round trip mismatch: %+v", again)
	}
}

func TestUnknownTableEntryPreservesRawPairs(t *testing.T) {
	src := "0\r\nTABLE\r\n2\r\nZZZKIND\r\n70\r\n1\r\n" +
		"0\r\nZZZKIND\r\n2\r\nOne\r\n999\r\ncustom\r\n" +
		"0\r\nENDTAB\r\n0\r\nENDSEC\r\n"
	r := ascii.NewReader([]byte(src), enums.R2013, ascii.DefaultCodePage)
	tables, err := ReadSection(r, nil)
	if err != nil {
		t.Fatalf("ReadSection: %v", err)
	}
	entry := tables[0].Entries[0].(*unknownEntry)
	if entry.Name != "One" {
		t.Errorf("Name = %q", entry.Name)
	}
	if len(entry.RawPairs) != 1 || entry.RawPairs[0].Code != 999 {
		t.Errorf("RawPairs = %v", entry.RawPairs)
	}
}
