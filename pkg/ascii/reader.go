package ascii

import (
	"encoding/hex"
	"io"
	"strconv"
	"strings"

	"github.com/drawxchange/dxf/pkg/codepair"
	"github.com/drawxchange/dxf/pkg/enums"
)

// Reader lexes the two-line-per-pair ASCII encoding into codepair.Pair
// values. Construct with the version and code page already resolved - see
// SniffHeaderEncoding for how the drawing orchestrator resolves them from
// the stream's own $ACADVER/$DWGCODEPAGE header pairs before committing to
// a full decode.
type Reader struct {
	lines   [][]byte
	offsets []int64
	idx     int

	useUTF8  bool
	codepage CodePage

	buf *codepair.Buffered
}

// NewReader builds an ASCII Reader over the full in-memory buffer.
func NewReader(data []byte, version enums.Version, cp CodePage) *Reader {
	lines, offsets := splitLines(data)
	r := &Reader{
		lines:    lines,
		offsets:  offsets,
		useUTF8:  version.AtLeast(enums.R2007),
		codepage: cp,
	}
	r.buf = codepair.NewBuffered(r.fetch, r.currentOffset)
	return r
}

func (r *Reader) Next() (codepair.Pair, error) { return r.buf.Next() }
func (r *Reader) Peek() (codepair.Pair, error) { return r.buf.Peek() }
func (r *Reader) Unget(p codepair.Pair)        { r.buf.Unget(p) }
func (r *Reader) Offset() int64                { return r.buf.Offset() }

func (r *Reader) currentOffset() int64 {
	// idx has already been advanced past the pair just consumed; report
	// the offset of its code line.
	i := r.idx - 2
	if i < 0 || i >= len(r.offsets) {
		if len(r.offsets) > 0 {
			return r.offsets[len(r.offsets)-1]
		}
		return 0
	}
	return r.offsets[i]
}

func (r *Reader) fetch() (codepair.Pair, error) {
	if r.idx >= len(r.lines) {
		return codepair.Pair{}, io.EOF
	}
	codeOffset := r.offsets[r.idx]
	codeLine := strings.TrimSpace(string(r.lines[r.idx]))
	code, err := strconv.Atoi(codeLine)
	if err != nil {
		return codepair.Pair{}, codepair.MalformedPair{Offset: codeOffset, Code: -1, Excerpt: codeLine}
	}
	r.idx++

	if r.idx >= len(r.lines) {
		return codepair.Pair{}, codepair.UnexpectedEOF{Offset: codeOffset, Context: "missing value line"}
	}
	valueLine := r.lines[r.idx]
	r.idx++

	kind := codepair.ClassOf(code)
	switch kind {
	case codepair.KindBool:
		v := strings.TrimSpace(string(valueLine))
		switch v {
		case "0":
			return codepair.NewBool(code, false), nil
		case "1":
			return codepair.NewBool(code, true), nil
		default:
			return codepair.Pair{}, codepair.MalformedPair{Offset: codeOffset, Code: code, Excerpt: v}
		}
	case codepair.KindShort:
		v := strings.TrimSpace(string(valueLine))
		n, err := strconv.ParseInt(v, 10, 16)
		if err != nil {
			return codepair.Pair{}, codepair.MalformedPair{Offset: codeOffset, Code: code, Excerpt: v}
		}
		return codepair.NewShort(code, int16(n)), nil
	case codepair.KindInt:
		v := strings.TrimSpace(string(valueLine))
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return codepair.Pair{}, codepair.MalformedPair{Offset: codeOffset, Code: code, Excerpt: v}
		}
		return codepair.NewInt(code, int32(n)), nil
	case codepair.KindLong:
		v := strings.TrimSpace(string(valueLine))
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return codepair.Pair{}, codepair.MalformedPair{Offset: codeOffset, Code: code, Excerpt: v}
		}
		return codepair.NewLong(code, n), nil
	case codepair.KindDouble:
		v := strings.TrimSpace(string(valueLine))
		f, err := parseTolerantDouble(v)
		if err != nil {
			return codepair.Pair{}, codepair.MalformedPair{Offset: codeOffset, Code: code, Excerpt: v}
		}
		return codepair.NewDouble(code, f), nil
	case codepair.KindBinary:
		v := strings.TrimSpace(string(valueLine))
		b, err := hex.DecodeString(v)
		if err != nil {
			return codepair.Pair{}, codepair.MalformedPair{Offset: codeOffset, Code: code, Excerpt: v}
		}
		return codepair.NewBinary(code, b), nil
	case codepair.KindHandle:
		v := strings.TrimSpace(string(valueLine))
		n, err := strconv.ParseUint(v, 16, 64)
		if err != nil {
			return codepair.Pair{}, codepair.MalformedPair{Offset: codeOffset, Code: code, Excerpt: v}
		}
		return codepair.NewHandle(code, codepair.Handle(n)), nil
	default: // KindString, including handle-as-string codes 320-329
		decoded, err := r.decodeString(valueLine)
		if err != nil {
			return codepair.Pair{}, codepair.InvalidEncoding{Offset: codeOffset, Detail: err.Error()}
		}
		return codepair.NewString(code, UnescapeUnicode(decoded)), nil
	}
}

// decodeString transcodes a value line's bytes through the resolved code
// page, or passes them through directly when the version is R2007+ (files
// are UTF-8 from then on).
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

// splitLines splits data on '\n', trimming one trailing '\r' per line, and
// records each line's starting byte offset for error reporting.
func splitLines(data []byte) ([][]byte, []int64) {
	var lines [][]byte
	var offsets []int64
	start := 0
	for i := 0; i < len(data); i++ {
		if data[i] == '\n' {
			lines = append(lines, trimCR(data[start:i]))
			offsets = append(offsets, int64(start))
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, trimCR(data[start:]))
		offsets = append(offsets, int64(start))
	}
	return lines, offsets
}

func trimCR(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\r' {
		return b[:len(b)-1]
	}
	return b
}
