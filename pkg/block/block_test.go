package block

import (
	"bytes"
	"testing"

	"github.com/drawxchange/dxf/pkg/ascii"
	"github.com/drawxchange/dxf/pkg/enums"
)

func TestBlockRoundTripWithOwnedEntity(t *testing.T) {
	src := "0\r\nBLOCK\r\n5\r\n2A\r\n2\r\nMYBLOCK\r\n70\r\n0\r\n10\r\n0.0\r\n20\r\n0.0\r\n30\r\n0.0\r\n3\r\nMYBLOCK\r\n" +
		"0\r\nLINE\r\n330\r\n2A\r\n10\r\n0.0\r\n20\r\n0.0\r\n30\r\n0.0\r\n11\r\n1.0\r\n21\r\n1.0\r\n31\r\n0.0\r\n" +
		"0\r\nENDBLK\r\n" +
		"0\r\nENDSEC\r\n"

	r := ascii.NewReader([]byte(src), enums.R2013, ascii.DefaultCodePage)
	blocks, err := ReadSection(r, nil)
	if err != nil {
		t.Fatalf("ReadSection: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	b := blocks[0]
	if b.Name != "MYBLOCK" || b.Handle != 0x2A {
		t.Errorf("block header: %+v", b)
	}
	if len(b.Entities) != 1 {
		t.Fatalf("got %d owned entities, want 1", len(b.Entities))
	}
	if b.Entities[0].Base().Owner != 0x2A {
		t.Errorf("owned entity's Owner = %#x, want 0x2A", b.Entities[0].Base().Owner)
	}

	var buf bytes.Buffer
	w := ascii.NewWriter(&buf, enums.R2013, ascii.DefaultCodePage)
	if err := WriteSection(w, blocks, enums.R2013); err != nil {
		t.Fatalf("WriteSection: %v", err)
	}
	w.Flush()

	r2 := ascii.NewReader(buf.Bytes(), enums.R2013, ascii.DefaultCodePage)
	again, err := ReadSection(r2, nil)
	if err != nil {
		t.Fatalf("re-ReadSection: %v", err)
	}
	if len(again) != 1 || len(again[0].Entities) != 1 {
		t.Fatalf("round trip mismatch: %+v", again)
	}
}
