package binary

import (
	"encoding/binary"
	"io"
	"math"
	"strconv"

	"github.com/drawxchange/dxf/pkg/ascii"
	"github.com/drawxchange/dxf/pkg/codepair"
	"github.com/drawxchange/dxf/pkg/enums"
)

// Writer emits the binary DXF encoding matching Reader's layout choice for
// the given version: variable-width codes and hex-text handles before R13,
// fixed int16 codes and 8-byte handles from R13 on.
type Writer struct {
	out io.Writer

	legacyCodes   bool
	legacyHandles bool
	useUTF8       bool
	codepage      ascii.CodePage

	err error
}

// NewWriter builds a binary Writer targeting version and writes Sentinel
// immediately.
func NewWriter(w io.Writer, version enums.Version, cp ascii.CodePage) (*Writer, error) {
	bw := &Writer{
		out:           w,
		legacyCodes:   version.Before(enums.R13),
		legacyHandles: version.Before(enums.R13),
		useUTF8:       version.AtLeast(enums.R2007),
		codepage:      cp,
	}
	if _, err := w.Write(Sentinel); err != nil {
		return nil, codepair.IOError{Err: err}
	}
	return bw, nil
}

func (w *Writer) Emit(p codepair.Pair) error {
	if err := codepair.CheckKind(p, 0); err != nil {
		return err
	}
	if err := w.writeCode(p.Code); err != nil {
		return err
	}
	return w.writeValue(p)
}

func (w *Writer) writeCode(code int) error {
	if !w.legacyCodes {
		return w.writeInt16(int16(code))
	}
	if code >= 0 && code <= 0xFE {
		return w.write([]byte{byte(code)})
	}
	if err := w.write([]byte{0xFF}); err != nil {
		return err
	}
	return w.writeInt16(int16(code))
}

func (w *Writer) writeValue(p codepair.Pair) error {
	switch p.Kind {
	case codepair.KindBool:
		v, _ := p.Bool()
		if v {
			return w.write([]byte{1})
		}
		return w.write([]byte{0})
	case codepair.KindShort:
		v, _ := p.Short()
		return w.writeInt16(v)
	case codepair.KindInt:
		v, _ := p.Int()
		return w.writeInt32(v)
	case codepair.KindLong:
		v, _ := p.Long()
		return w.writeInt32(int32(v))
	case codepair.KindDouble:
		v, _ := p.Double()
		return w.writeFloat64(v)
	case codepair.KindBinary:
		v, _ := p.Binary()
		if len(v) > 0xFF {
			v = v[:0xFF]
		}
		if err := w.write([]byte{byte(len(v))}); err != nil {
			return err
		}
		return w.write(v)
	case codepair.KindHandle:
		v, _ := p.HandleValue()
		if w.legacyHandles {
			return w.writeCBytes([]byte(strconv.FormatUint(uint64(v), 16)))
		}
		return w.writeUint64(uint64(v))
	default: // KindString, including handle-as-string codes
		v, _ := p.Str()
		return w.writeEncodedString(v)
	}
}

func (w *Writer) writeEncodedString(s string) error {
	if w.useUTF8 {
		return w.writeCBytes([]byte(s))
	}
	escaped := ascii.EscapeNonASCII(s)
	if w.codepage.Encoding == nil {
		return w.writeCBytes([]byte(escaped))
	}
	encoded, err := w.codepage.Encoding.NewEncoder().String(escaped)
	if err != nil {
		return codepair.InvalidEncoding{Detail: err.Error()}
	}
	return w.writeCBytes([]byte(encoded))
}

func (w *Writer) writeCBytes(b []byte) error {
	if err := w.write(b); err != nil {
		return err
	}
	return w.write([]byte{0})
}

func (w *Writer) writeInt16(v int16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], uint16(v))
	return w.write(b[:])
}

func (w *Writer) writeInt32(v int32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	return w.write(b[:])
}

func (w *Writer) writeUint64(v uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return w.write(b[:])
}

func (w *Writer) writeFloat64(v float64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	return w.write(b[:])
}

func (w *Writer) write(b []byte) error {
	if _, err := w.out.Write(b); err != nil {
		return codepair.IOError{Err: err}
	}
	return nil
}

func (w *Writer) Flush() error { return nil }
