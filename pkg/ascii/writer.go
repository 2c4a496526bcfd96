package ascii

import (
	"bufio"
	"encoding/hex"
	"io"
	"strconv"

	"github.com/drawxchange/dxf/pkg/codepair"
	"github.com/drawxchange/dxf/pkg/enums"
)

// Writer emits the two-line-per-pair ASCII encoding. Lines are terminated
// CRLF, matching every real AutoCAD-written ASCII DXF file regardless of
// host platform.
type Writer struct {
	out      *bufio.Writer
	useUTF8  bool
	codepage CodePage
}

// NewWriter builds an ASCII Writer targeting version, transcoding strings
// through cp when version predates R2007.
func NewWriter(w io.Writer, version enums.Version, cp CodePage) *Writer {
	return &Writer{
		out:      bufio.NewWriter(w),
		useUTF8:  version.AtLeast(enums.R2007),
		codepage: cp,
	}
}

func (w *Writer) Emit(p codepair.Pair) error {
	if err := codepair.CheckKind(p, 0); err != nil {
		return err
	}

	if _, err := w.out.WriteString(strconv.Itoa(p.Code)); err != nil {
		return codepair.IOError{Err: err}
	}
	if err := w.writeCRLF(); err != nil {
		return err
	}

	if err := w.writeValue(p); err != nil {
		return err
	}
	return w.writeCRLF()
}

func (w *Writer) writeValue(p codepair.Pair) error {
	switch p.Kind {
	case codepair.KindBool:
		v, _ := p.Bool()
		if v {
			return w.writeString("1")
		}
		return w.writeString("0")
	case codepair.KindShort:
		v, _ := p.Short()
		return w.writeString(strconv.FormatInt(int64(v), 10))
	case codepair.KindInt:
		v, _ := p.Int()
		return w.writeString(strconv.FormatInt(int64(v), 10))
	case codepair.KindLong:
		v, _ := p.Long()
		return w.writeString(strconv.FormatInt(v, 10))
	case codepair.KindDouble:
		v, _ := p.Double()
		return w.writeString(strconv.FormatFloat(v, 'f', -1, 64))
	case codepair.KindBinary:
		v, _ := p.Binary()
		return w.writeString(hex.EncodeToString(v))
	case codepair.KindHandle:
		v, _ := p.HandleValue()
		return w.writeString(strconv.FormatUint(uint64(v), 16))
	default: // KindString, including handle-as-string codes
		v, _ := p.Str()
		return w.writeEncodedString(v)
	}
}

// writeEncodedString applies the version's escape/transcode policy:
// pre-R2007 targets always escape non-ASCII runes with \U+XXXX, even
// when the active code page could represent the character directly, and
// then transcode the (now pure-ASCII) text through the code page - a no-op
// in practice, but it keeps the path honest if a caller's string contains
// bytes the code page can't encode for some other reason. R2007+ targets
// write UTF-8 straight through.
func (w *Writer) writeEncodedString(s string) error {
	if w.useUTF8 {
		return w.writeString(s)
	}
	escaped := EscapeNonASCII(s)
	if w.codepage.Encoding == nil {
		return w.writeString(escaped)
	}
	encoded, err := w.codepage.Encoding.NewEncoder().String(escaped)
	if err != nil {
		return codepair.InvalidEncoding{Detail: err.Error()}
	}
	return w.writeString(encoded)
}

func (w *Writer) writeString(s string) error {
	if _, err := w.out.WriteString(s); err != nil {
		return codepair.IOError{Err: err}
	}
	return nil
}

func (w *Writer) writeCRLF() error {
	if _, err := w.out.WriteString("\r\n"); err != nil {
		return codepair.IOError{Err: err}
	}
	return nil
}

func (w *Writer) Flush() error {
	if err := w.out.Flush(); err != nil {
		return codepair.IOError{Err: err}
	}
	return nil
}
