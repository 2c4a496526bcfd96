package header

import (
	"bytes"
	"testing"

	"github.com/drawxchange/dxf/pkg/ascii"
	"github.com/drawxchange/dxf/pkg/enums"
)

func TestReadWriteRoundTrip(t *testing.T) {
	src := "9\r\n$ACADVER\r\n1\r\nAC1027\r\n" +
		"9\r\n$CLAYER\r\n8\r\nMyLayer\r\n" +
		"9\r\n$INSBASE\r\n10\r\n1.0\r\n20\r\n2.0\r\n30\r\n3.0\r\n" +
		"9\r\n$UNKNOWNVAR\r\n1\r\nsomevalue\r\n" +
		"0\r\nENDSEC\r\n"

	r := ascii.NewReader([]byte(src), enums.R2013, ascii.DefaultCodePage)
	h, err := Read(r, nil)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if h.Version != enums.R2013 {
		t.Errorf("Version = %v, want R2013", h.Version)
	}
	if h.CurrentLayer != "MyLayer" {
		t.Errorf("CurrentLayer = %q", h.CurrentLayer)
	}
	if h.InsBase != [3]float64{1.0, 2.0, 3.0} {
		t.Errorf("InsBase = %v", h.InsBase)
	}
	if _, ok := h.Extra["$UNKNOWNVAR"]; !ok {
		t.Error("expected $UNKNOWNVAR to be preserved in Extra")
	}

	var buf bytes.Buffer
	w := ascii.NewWriter(&buf, enums.R2013, ascii.DefaultCodePage)
	if err := Write(w, h, enums.R2013); err != nil {
		t.Fatalf("Write: %v", err)
	}
	w.Flush()

	r2 := ascii.NewReader(buf.Bytes(), enums.R2013, ascii.DefaultCodePage)
	h2, err := Read(r2, nil)
	if err != nil {
		t.Fatalf("re-Read: %v", err)
	}
	if h2.CurrentLayer != "MyLayer" || h2.InsBase != h.InsBase {
		t.Errorf("round trip mismatch: %+v vs %+v", h2, h)
	}
}

func TestDuplicateVariableWarns(t *testing.T) {
	src := "9\r\n$CLAYER\r\n8\r\nFirst\r\n9\r\n$CLAYER\r\n8\r\nSecond\r\n0\r\nENDSEC\r\n"
	r := ascii.NewReader([]byte(src), enums.R2013, ascii.DefaultCodePage)

	var warned bool
	sink := warnFunc(func(code, detail string, fields map[string]interface{}) {
		if code == "duplicate_header_var" {
			warned = true
		}
	})

	h, err := Read(r, sink)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !warned {
		t.Error("expected a duplicate_header_var warning")
	}
	if h.CurrentLayer != "Second" {
		t.Errorf("last-write-wins: got %q, want Second", h.CurrentLayer)
	}
}

type warnFunc func(code, detail string, fields map[string]interface{})

func (f warnFunc) Warn(code, detail string, fields map[string]interface{}) { f(code, detail, fields) }
