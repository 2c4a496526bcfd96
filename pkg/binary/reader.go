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

// Reader lexes a binary DXF byte buffer into codepair.Pair values. The
// wire layout it expects depends on version: R10-R12 use a variable-width
// code (one byte, or 0xFF followed by a little-endian int16 for codes that
// don't fit in a byte) and encode handles as NUL-terminated hex text; R13
// and later always use a little-endian int16 code and an 8-byte
// little-endian handle.
type Reader struct {
	data []byte
	pos  int

	legacyCodes   bool
	legacyHandles bool
	useUTF8       bool
	codepage      ascii.CodePage

	buf *codepair.Buffered
}

// NewReader builds a binary Reader over data, which must begin with
// Sentinel (callers detect this up front via HasSentinel).
func NewReader(data []byte, version enums.Version, cp ascii.CodePage) (*Reader, error) {
	if !HasSentinel(data) {
		return nil, codepair.InvalidEncoding{Offset: 0, Detail: "missing binary DXF sentinel"}
	}
	r := &Reader{
		data:          data,
		pos:           len(Sentinel),
		legacyCodes:   version.Before(enums.R13),
		legacyHandles: version.Before(enums.R13),
		useUTF8:       version.AtLeast(enums.R2007),
		codepage:      cp,
	}
	r.buf = codepair.NewBuffered(r.fetch, r.offset)
	return r, nil
}

func (r *Reader) Next() (codepair.Pair, error) { return r.buf.Next() }
func (r *Reader) Peek() (codepair.Pair, error) { return r.buf.Peek() }
func (r *Reader) Unget(p codepair.Pair)        { r.buf.Unget(p) }
func (r *Reader) Offset() int64                { return r.buf.Offset() }

func (r *Reader) offset() int64 { return int64(r.pos) }

func (r *Reader) fetch() (codepair.Pair, error) {
	if r.pos >= len(r.data) {
		return codepair.Pair{}, io.EOF
	}
	start := int64(r.pos)

	code, err := r.readCode()
	if err != nil {
		return codepair.Pair{}, err
	}

	kind := codepair.ClassOf(code)
	switch kind {
	case codepair.KindBool:
		b, err := r.readByte(start)
		if err != nil {
			return codepair.Pair{}, err
		}
		return codepair.NewBool(code, b != 0), nil
	case codepair.KindShort:
		v, err := r.readInt16(start)
		if err != nil {
			return codepair.Pair{}, err
		}
		return codepair.NewShort(code, v), nil
	case codepair.KindInt:
		v, err := r.readInt32(start)
		if err != nil {
			return codepair.Pair{}, err
		}
		return codepair.NewInt(code, v), nil
	case codepair.KindLong:
		v, err := r.readInt32(start)
		if err != nil {
			return codepair.Pair{}, err
		}
		return codepair.NewLong(code, int64(v)), nil
	case codepair.KindDouble:
		v, err := r.readFloat64(start)
		if err != nil {
			return codepair.Pair{}, err
		}
		return codepair.NewDouble(code, v), nil
	case codepair.KindBinary:
		n, err := r.readByte(start)
		if err != nil {
			return codepair.Pair{}, err
		}
		b, err := r.readBytes(int(n), start)
		if err != nil {
			return codepair.Pair{}, err
		}
		return codepair.NewBinary(code, b), nil
	case codepair.KindHandle:
		if r.legacyHandles {
			raw, err := r.readCBytes(start)
			if err != nil {
				return codepair.Pair{}, err
			}
			v, err := strconv.ParseUint(string(raw), 16, 64)
			if err != nil {
				return codepair.Pair{}, codepair.MalformedPair{Offset: start, Code: code, Excerpt: string(raw)}
			}
			return codepair.NewHandle(code, codepair.Handle(v)), nil
		}
		v, err := r.readUint64(start)
		if err != nil {
			return codepair.Pair{}, err
		}
		return codepair.NewHandle(code, codepair.Handle(v)), nil
	default: // KindString, including handle-as-string codes
		raw, err := r.readCBytes(start)
		if err != nil {
			return codepair.Pair{}, err
		}
		decoded, err := r.decodeString(raw)
		if err != nil {
			return codepair.Pair{}, codepair.InvalidEncoding{Offset: start, Detail: err.Error()}
		}
		return codepair.NewString(code, ascii.UnescapeUnicode(decoded)), nil
	}
}

func (r *Reader) decodeString(raw []byte) (string, error) {
	if r.useUTF8 || r.codepage.Encoding == nil {
		return string(raw), nil
	}
	decoded, err := r.codepage.Encoding.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

func (r *Reader) readCode() (int, error) {
	start := int64(r.pos)
	if !r.legacyCodes {
		v, err := r.readInt16(start)
		return int(v), err
	}
	b, err := r.readByte(start)
	if err != nil {
		return 0, err
	}
	if b == 0xFF {
		v, err := r.readInt16(start)
		return int(v), err
	}
	return int(b), nil
}

func (r *Reader) need(n int, start int64) error {
	if r.pos+n > len(r.data) {
		return codepair.UnexpectedEOF{Offset: start, Context: "truncated binary value"}
	}
	return nil
}

func (r *Reader) readByte(start int64) (byte, error) {
	if err := r.need(1, start); err != nil {
		return 0, err
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *Reader) readInt16(start int64) (int16, error) {
	if err := r.need(2, start); err != nil {
		return 0, err
	}
	v := int16(binary.LittleEndian.Uint16(r.data[r.pos:]))
	r.pos += 2
	return v, nil
}

func (r *Reader) readInt32(start int64) (int32, error) {
	if err := r.need(4, start); err != nil {
		return 0, err
	}
	v := int32(binary.LittleEndian.Uint32(r.data[r.pos:]))
	r.pos += 4
	return v, nil
}

func (r *Reader) readUint64(start int64) (uint64, error) {
	if err := r.need(8, start); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return v, nil
}

func (r *Reader) readFloat64(start int64) (float64, error) {
	if err := r.need(8, start); err != nil {
		return 0, err
	}
	v := math.Float64frombits(binary.LittleEndian.Uint64(r.data[r.pos:]))
	r.pos += 8
	return v, nil
}

func (r *Reader) readBytes(n int, start int64) ([]byte, error) {
	if err := r.need(n, start); err != nil {
		return nil, err
	}
	b := make([]byte, n)
	copy(b, r.data[r.pos:r.pos+n])
	r.pos += n
	return b, nil
}

// readCBytes reads a NUL-terminated byte string, leaving the terminator
// consumed but not included in the result.
func (r *Reader) readCBytes(start int64) ([]byte, error) {
	i := r.pos
	for i < len(r.data) && r.data[i] != 0 {
		i++
	}
	if i >= len(r.data) {
		return nil, codepair.UnexpectedEOF{Offset: start, Context: "unterminated string"}
	}
	b := make([]byte, i-r.pos)
	copy(b, r.data[r.pos:i])
	r.pos = i + 1
	return b, nil
}
