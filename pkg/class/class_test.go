package class

import (
	"bytes"
	"testing"

	"github.com/drawxchange/dxf/pkg/ascii"
	"github.com/drawxchange/dxf/pkg/enums"
)

func TestSectionRoundTrip(t *testing.T) {
	classes := []Class{
		{
			DXFName:       "WIPEOUT",
			CppClassName:  "AcDbWipeout",
			ApplicationID: "WipeOut|AutoCAD Express Tool",
			ProxyFlags:    127,
			IsEntity:      true,
		},
		{
			DXFName:      "DICTIONARYVAR",
			CppClassName: "AcDbDictionaryVar",
			WasProxy:     false,
		},
	}

	var buf bytes.Buffer
	w := ascii.NewWriter(&buf, enums.R2013, ascii.DefaultCodePage)
	if err := WriteSection(w, classes); err != nil {
		t.Fatalf("WriteSection: %v", err)
	}
	w.Flush()

	r := ascii.NewReader(buf.Bytes(), enums.R2013, ascii.DefaultCodePage)
	got, err := ReadSection(r, nil)
	if err != nil {
		t.Fatalf("ReadSection: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d classes, want 2", len(got))
	}
	if got[0] != classes[0] || got[1] != classes[1] {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, classes)
	}
}

func TestMissingEndsecTolerated(t *testing.T) {
	src := "0\r\nCLASS\r\n1\r\nWIPEOUT\r\n2\r\nAcDbWipeout\r\n0\r\nEOF\r\n"
	r := ascii.NewReader([]byte(src), enums.R2013, ascii.DefaultCodePage)

	var warned bool
	sink := warnFunc(func(code, detail string, fields map[string]interface{}) {
		if code == "missing_endsec" {
			warned = true
		}
	})

	got, err := ReadSection(r, sink)
	if err != nil {
		t.Fatalf("ReadSection: %v", err)
	}
	if len(got) != 1 || got[0].DXFName != "WIPEOUT" {
		t.Fatalf("got %+v", got)
	}
	if !warned {
		t.Error("expected a missing_endsec warning")
	}
}

type warnFunc func(code, detail string, fields map[string]interface{})

func (f warnFunc) Warn(code, detail string, fields map[string]interface{}) { f(code, detail, fields) }
