package binary

import (
	"bytes"
	"io"
	"testing"

	"github.com/drawxchange/dxf/pkg/ascii"
	"github.com/drawxchange/dxf/pkg/codepair"
	"github.com/drawxchange/dxf/pkg/enums"
)

func readAll(t *testing.T, r *Reader) []codepair.Pair {
	t.Helper()
	var out []codepair.Pair
	for {
		p, err := r.Next()
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("Next(): %v", err)
		}
		out = append(out, p)
	}
}

func TestRoundTripPostR13(t *testing.T) {
	pairs := []codepair.Pair{
		codepair.NewString(0, "SECTION"),
		codepair.NewString(2, "ENTITIES"),
		codepair.NewString(0, "LINE"),
		codepair.NewHandle(330, 0x4D),
		codepair.NewDouble(10, 1.25),
		codepair.NewShort(70, 3),
		codepair.NewBool(290, true),
		codepair.NewBinary(310, []byte{0xDE, 0xAD, 0xBE, 0xEF}),
		codepair.NewString(0, "ENDSEC"),
	}

	var buf bytes.Buffer
	w, err := NewWriter(&buf, enums.R2013, ascii.DefaultCodePage)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	for _, p := range pairs {
		if err := w.Emit(p); err != nil {
			t.Fatalf("Emit(%v): %v", p, err)
		}
	}

	if !HasSentinel(buf.Bytes()) {
		t.Fatal("expected sentinel at start of output")
	}

	r, err := NewReader(buf.Bytes(), enums.R2013, ascii.DefaultCodePage)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	got := readAll(t, r)
	if len(got) != len(pairs) {
		t.Fatalf("got %d pairs, want %d", len(got), len(pairs))
	}
	for i := range pairs {
		if got[i].Code != pairs[i].Code || got[i].Kind != pairs[i].Kind {
			t.Errorf("pair %d: got %v, want %v", i, got[i], pairs[i])
		}
	}
	h, _ := got[3].HandleValue()
	if h != 0x4D {
		t.Errorf("handle = %x, want 4d", h)
	}
	b, _ := got[7].Binary()
	if !bytes.Equal(b, []byte{0xDE, 0xAD, 0xBE, 0xEF}) {
		t.Errorf("binary value = %x", b)
	}
}

func TestRoundTripLegacyVariableWidthCode(t *testing.T) {
	pairs := []codepair.Pair{
		codepair.NewString(0, "SECTION"),
		codepair.NewDouble(10, 3.0),
		codepair.NewString(0, "ENDSEC"),
	}

	var buf bytes.Buffer
	w, err := NewWriter(&buf, enums.R12, ascii.DefaultCodePage)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	for _, p := range pairs {
		if err := w.Emit(p); err != nil {
			t.Fatalf("Emit: %v", err)
		}
	}

	r, err := NewReader(buf.Bytes(), enums.R12, ascii.DefaultCodePage)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	got := readAll(t, r)
	if len(got) != len(pairs) {
		t.Fatalf("got %d pairs, want %d", len(got), len(pairs))
	}
}

func TestSentinelDetectionRejectsNonBinary(t *testing.T) {
	if HasSentinel([]byte("0\r\nSECTION\r\n")) {
		t.Fatal("ASCII content should not report a binary sentinel")
	}
	if _, err := NewReader([]byte("not binary at all"), enums.R2013, ascii.DefaultCodePage); err == nil {
		t.Fatal("expected an error for missing sentinel")
	}
}
