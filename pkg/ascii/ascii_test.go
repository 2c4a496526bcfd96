package ascii

import (
	"bytes"
	"io"
	"testing"

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

func TestRoundTripMinimalLine(t *testing.T) {
	pairs := []codepair.Pair{
		codepair.NewString(0, "SECTION"),
		codepair.NewString(2, "ENTITIES"),
		codepair.NewString(0, "LINE"),
		codepair.NewString(5, "2A"),
		codepair.NewDouble(10, 0.0),
		codepair.NewDouble(20, 0.0),
		codepair.NewDouble(11, 1.5),
		codepair.NewDouble(21, 1.5),
		codepair.NewString(0, "ENDSEC"),
	}

	var buf bytes.Buffer
	w := NewWriter(&buf, enums.R2013, DefaultCodePage)
	for _, p := range pairs {
		if err := w.Emit(p); err != nil {
			t.Fatalf("Emit(%v): %v", p, err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush(): %v", err)
	}

	r := NewReader(buf.Bytes(), enums.R2013, DefaultCodePage)
	got := readAll(t, r)
	if len(got) != len(pairs) {
		t.Fatalf("got %d pairs, want %d", len(got), len(pairs))
	}
	for i := range pairs {
		if got[i].Code != pairs[i].Code || got[i].Kind != pairs[i].Kind {
			t.Errorf("pair %d: got %v, want %v", i, got[i], pairs[i])
		}
	}
}

func TestEscapeRoundTripPreR2007(t *testing.T) {
	// U+00C4 (Latin Capital Letter A with Diaeresis) is representable
	// directly in Windows-1252, but pre-R2007 output still escapes it.
	value := "straße Ä"
	p := codepair.NewString(1, value)

	var buf bytes.Buffer
	w := NewWriter(&buf, enums.R14, DefaultCodePage)
	if err := w.Emit(p); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	w.Flush()

	if !bytes.Contains(buf.Bytes(), []byte(`\U+00C4`)) {
		t.Fatalf("expected escaped form in pre-R2007 output, got %q", buf.String())
	}

	r := NewReader(buf.Bytes(), enums.R14, DefaultCodePage)
	got, err := r.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	s, _ := got.Str()
	if s != value {
		t.Fatalf("round trip = %q, want %q", s, value)
	}
}

func TestEscapeRoundTripR2007PassesThroughUTF8(t *testing.T) {
	value := "café"
	p := codepair.NewString(1, value)

	var buf bytes.Buffer
	w := NewWriter(&buf, enums.R2007, DefaultCodePage)
	w.Emit(p)
	w.Flush()

	if bytes.Contains(buf.Bytes(), []byte(`\U+`)) {
		t.Fatalf("R2007+ output should not escape, got %q", buf.String())
	}

	r := NewReader(buf.Bytes(), enums.R2007, DefaultCodePage)
	got, _ := r.Next()
	s, _ := got.Str()
	if s != value {
		t.Fatalf("round trip = %q, want %q", s, value)
	}
}

func TestSniffHeaderEncoding(t *testing.T) {
	data := []byte("0\r\nSECTION\r\n2\r\nHEADER\r\n9\r\n$ACADVER\r\n1\r\nAC1021\r\n9\r\n$DWGCODEPAGE\r\n3\r\nANSI_1252\r\n0\r\nENDSEC\r\n")
	version, cp := SniffHeaderEncoding(data)
	if version != enums.R2007 {
		t.Fatalf("version = %v, want R2007", version)
	}
	if cp.Label != "ANSI_1252" {
		t.Fatalf("codepage = %v, want ANSI_1252", cp.Label)
	}
}

func TestSniffHeaderEncodingFallsBackWhenAbsent(t *testing.T) {
	data := []byte("0\r\nSECTION\r\n2\r\nHEADER\r\n0\r\nENDSEC\r\n")
	version, cp := SniffHeaderEncoding(data)
	if version != enums.DefaultVersion {
		t.Fatalf("version = %v, want default %v", version, enums.DefaultVersion)
	}
	if cp.Label != DefaultCodePage.Label {
		t.Fatalf("codepage = %v, want default", cp.Label)
	}
}

func TestParseTolerantDoubleCommaRadix(t *testing.T) {
	f, err := parseTolerantDouble("3,14")
	if err != nil {
		t.Fatalf("parseTolerantDouble: %v", err)
	}
	if f != 3.14 {
		t.Fatalf("got %v, want 3.14", f)
	}
}

func TestParseTolerantDoubleFortranExponent(t *testing.T) {
	f, err := parseTolerantDouble("1.0+002")
	if err != nil {
		t.Fatalf("parseTolerantDouble: %v", err)
	}
	if f != 1.0e+002 {
		t.Fatalf("got %v, want 100", f)
	}
}

func TestMalformedDoubleProducesMalformedPair(t *testing.T) {
	data := []byte("10\r\nnot-a-number\r\n")
	r := NewReader(data, enums.R2013, DefaultCodePage)
	_, err := r.Next()
	if err == nil {
		t.Fatal("expected an error")
	}
	var mp codepair.MalformedPair
	if !asMalformedPair(err, &mp) {
		t.Fatalf("expected MalformedPair, got %T: %v", err, err)
	}
}

func asMalformedPair(err error, out *codepair.MalformedPair) bool {
	mp, ok := err.(codepair.MalformedPair)
	if ok {
		*out = mp
	}
	return ok
}
