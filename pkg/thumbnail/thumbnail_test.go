package thumbnail

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/drawxchange/dxf/pkg/ascii"
	"github.com/drawxchange/dxf/pkg/enums"
)

// minimalDIB builds the smallest bitmap validate accepts: a 40-byte
// BITMAPINFOHEADER followed by a little pixel data.
func minimalDIB(extra int) []byte {
	data := make([]byte, dibHeaderSize+extra)
	binary.LittleEndian.PutUint32(data[:4], dibHeaderSize)
	for i := dibHeaderSize; i < len(data); i++ {
		data[i] = byte(i)
	}
	return data
}

func TestRoundTrip(t *testing.T) {
	dib := minimalDIB(300)

	var buf bytes.Buffer
	w := ascii.NewWriter(&buf, enums.R2013, ascii.DefaultCodePage)
	if err := Write(w, dib); err != nil {
		t.Fatalf("Write: %v", err)
	}
	w.Flush()

	r := ascii.NewReader(buf.Bytes(), enums.R2013, ascii.DefaultCodePage)
	got, err := Read(r, nil)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, dib) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", len(got), len(dib))
	}
}

func TestCorruptThumbnailDroppedWithWarning(t *testing.T) {
	// A declared length that doesn't match the chunked bytes must drop the
	// thumbnail without failing the read.
	dib := minimalDIB(10)

	var buf bytes.Buffer
	w := ascii.NewWriter(&buf, enums.R2013, ascii.DefaultCodePage)
	if err := Write(w, dib); err != nil {
		t.Fatalf("Write: %v", err)
	}
	w.Flush()

	// Corrupt the declared byte count (first value line after "90").
	mangled := bytes.Replace(buf.Bytes(), []byte("\r\n50\r\n"), []byte("\r\n51\r\n"), 1)

	var warned bool
	sink := warnFunc(func(code, detail string, fields map[string]interface{}) {
		if code == "invalid_thumbnail" {
			warned = true
		}
	})

	r := ascii.NewReader(mangled, enums.R2013, ascii.DefaultCodePage)
	got, err := Read(r, sink)
	if err != nil {
		t.Fatalf("Read should not fail on a corrupt thumbnail: %v", err)
	}
	if got != nil {
		t.Fatalf("corrupt thumbnail should be dropped, got %d bytes", len(got))
	}
	if !warned {
		t.Error("expected an invalid_thumbnail warning")
	}
}

func TestShortThumbnailDropped(t *testing.T) {
	var buf bytes.Buffer
	w := ascii.NewWriter(&buf, enums.R2013, ascii.DefaultCodePage)
	if err := Write(w, []byte{1, 2, 3}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	w.Flush()

	r := ascii.NewReader(buf.Bytes(), enums.R2013, ascii.DefaultCodePage)
	got, err := Read(r, nil)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != nil {
		t.Fatalf("3-byte thumbnail should be dropped, got %v", got)
	}
}

type warnFunc func(code, detail string, fields map[string]interface{})

func (f warnFunc) Warn(code, detail string, fields map[string]interface{}) { f(code, detail, fields) }
