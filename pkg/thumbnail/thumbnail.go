// Package thumbnail implements the optional THUMBNAILIMAGE section: a
// preview bitmap stored as its raw device-independent bitmap (DIB) bytes -
// no BITMAPFILEHEADER, just the BITMAPINFOHEADER onward, chunked across
// binary code-pairs the way the real format does for any large binary blob.
package thumbnail

import (
	"encoding/binary"
	"io"

	"github.com/drawxchange/dxf/pkg/codepair"
	"github.com/drawxchange/dxf/pkg/diag"
)

// chunkSize mirrors the real format's convention of splitting binary data
// into records no longer than 127 bytes.
const chunkSize = 127

// dibHeaderSize is the BITMAPINFOHEADER length this library expects; a
// thumbnail whose declared header size doesn't match this, or that is
// shorter than it, is treated as corrupt.
const dibHeaderSize = 40

// Read parses the THUMBNAILIMAGE section body, given its already-consumed
// "(0,SECTION)(2,THUMBNAILIMAGE)" pairs, stopping at (and consuming)
// "(0,ENDSEC)". A malformed bitmap is dropped rather than failing the
// whole read: Read returns (nil, nil) and warns via sink.
func Read(r codepair.Reader, sink diag.Sink) ([]byte, error) {
	if sink == nil {
		sink = diag.Noop{}
	}
	var declaredLen int32
	var data []byte
	for {
		p, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch p.Code {
		case 90:
			declaredLen, _ = p.Int()
		case 310:
			chunk, _ := p.Binary()
			data = append(data, chunk...)
		case 0:
			name, _ := p.Str()
			if name == "ENDSEC" {
				return validate(data, declaredLen, sink), nil
			}
			r.Unget(p)
			return validate(data, declaredLen, sink), nil
		}
	}
	return validate(data, declaredLen, sink), nil
}

func validate(data []byte, declaredLen int32, sink diag.Sink) []byte {
	if len(data) == 0 {
		return nil
	}
	if declaredLen > 0 && int(declaredLen) != len(data) {
		sink.Warn(diag.CodeInvalidThumbnail, "thumbnail byte count mismatch", map[string]interface{}{
			"declared": declaredLen, "actual": len(data),
		})
		return nil
	}
	if len(data) < dibHeaderSize {
		sink.Warn(diag.CodeInvalidThumbnail, "thumbnail shorter than a BITMAPINFOHEADER", map[string]interface{}{"length": len(data)})
		return nil
	}
	if hdr := binary.LittleEndian.Uint32(data[:4]); hdr != dibHeaderSize {
		sink.Warn(diag.CodeInvalidThumbnail, "thumbnail DIB header size unrecognized", map[string]interface{}{"header_size": hdr})
		return nil
	}
	return data
}

// Write emits the THUMBNAILIMAGE section body: the byte count, the bitmap
// chunked into binary pairs, then "(0,ENDSEC)". Write does not check for
// empty data: a nil/empty slice still yields "(90,0)" and "(0,ENDSEC)".
// The drawing writer in pkg/drawing skips the whole section, header
// included, when the drawing has no thumbnail.
func Write(w codepair.Writer, data []byte) error {
	if err := w.Emit(codepair.NewInt(90, int32(len(data)))); err != nil {
		return err
	}
	for i := 0; i < len(data); i += chunkSize {
		end := i + chunkSize
		if end > len(data) {
			end = len(data)
		}
		if err := w.Emit(codepair.NewBinary(310, data[i:end])); err != nil {
			return err
		}
	}
	return w.Emit(codepair.NewString(0, "ENDSEC"))
}
