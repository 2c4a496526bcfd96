package drawing

import (
	"io"

	"github.com/drawxchange/dxf/pkg/ascii"
	bin "github.com/drawxchange/dxf/pkg/binary"
	"github.com/drawxchange/dxf/pkg/block"
	"github.com/drawxchange/dxf/pkg/class"
	"github.com/drawxchange/dxf/pkg/codepair"
	"github.com/drawxchange/dxf/pkg/diag"
	"github.com/drawxchange/dxf/pkg/entity"
	"github.com/drawxchange/dxf/pkg/enums"
	"github.com/drawxchange/dxf/pkg/header"
	"github.com/drawxchange/dxf/pkg/table"
	"github.com/drawxchange/dxf/pkg/thumbnail"
)

// Load reads a complete Drawing from stream, autodetecting ASCII vs binary
// by the binary sentinel and resolving the version/code page from the
// stream's own header before the real decode, the way
// pkg/ascii.SniffHeaderEncoding does for ASCII. Recovered conditions are
// silently discarded; use LoadWithSink for visibility into them.
func Load(stream io.Reader) (*Drawing, error) {
	return load(stream, nil, nil)
}

// LoadWithEncoding reads stream as ASCII, overriding code-page detection
// with cp. Binary streams ignore cp - their strings are framed by NUL
// termination, not a declared code page negotiated up front - and fall
// back to the normal autodetected code page.
func LoadWithEncoding(stream io.Reader, cp ascii.CodePage) (*Drawing, error) {
	return load(stream, &cp, nil)
}

// LoadWithSink is Load with an explicit diagnostics sink.
func LoadWithSink(stream io.Reader, sink diag.Sink) (*Drawing, error) {
	return load(stream, nil, sink)
}

func load(stream io.Reader, forcedCP *ascii.CodePage, sink diag.Sink) (*Drawing, error) {
	if sink == nil {
		sink = diag.Noop{}
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, codepair.IOError{Err: err}
	}

	if bin.HasSentinel(data) {
		version, cp := sniffBinaryEncoding(data)
		r, err := bin.NewReader(data, version, cp)
		if err != nil {
			return nil, err
		}
		return readAll(r, sink)
	}

	version, cp := ascii.SniffHeaderEncoding(data)
	if forcedCP != nil {
		cp = *forcedCP
	}
	r := ascii.NewReader(data, version, cp)
	return readAll(r, sink)
}

// sniffBinaryEncoding resolves the version/code-page pair a full binary
// decode needs. Pre-R13 and post-R13 binary share one sentinel but
// use structurally different code widths (variable-width-with-0xFF-escape
// vs fixed int16), so which one to use for the real decode can't be read
// off the sentinel alone. This tries the post-R13 (modern) layout first,
// since it is the common case for any file a modern writer produced; a
// legacy (pre-R13) file read under the modern layout pairs each one-byte
// code with the first byte of the value after it, so no (9, "$ACADVER")
// pair is recognized and the probe reports failure. The legacy layout is
// then tried the same way, which mirrors SniffHeaderEncoding's
// "pre-scan, then commit" shape for ASCII.
func sniffBinaryEncoding(data []byte) (enums.Version, ascii.CodePage) {
	if v, cp, ok := trySniffBinary(data, enums.DefaultVersion); ok {
		return v, cp
	}
	if v, cp, ok := trySniffBinary(data, enums.R12); ok {
		return v, cp
	}
	return enums.DefaultVersion, ascii.DefaultCodePage
}

func trySniffBinary(data []byte, probeVersion enums.Version) (enums.Version, ascii.CodePage, bool) {
	r, err := bin.NewReader(data, probeVersion, ascii.DefaultCodePage)
	if err != nil {
		return 0, ascii.CodePage{}, false
	}
	version := enums.DefaultVersion
	cp := ascii.DefaultCodePage
	found := false
	for i := 0; i < 512; i++ {
		p, err := r.Next()
		if err != nil {
			break
		}
		if p.Code == 0 {
			if s, _ := p.Str(); s == "ENDSEC" {
				break
			}
		}
		if p.Code == 9 {
			name, _ := p.Str()
			if name != "$ACADVER" && name != "$DWGCODEPAGE" {
				continue
			}
			valuePair, err := r.Next()
			if err != nil {
				break
			}
			value, err := valuePair.Str()
			if err != nil {
				return 0, ascii.CodePage{}, false
			}
			if name == "$ACADVER" {
				v, ok := enums.VersionFromACADVER(value)
				if !ok {
					return 0, ascii.CodePage{}, false
				}
				version = v
				found = true
			} else if found2, ok := ascii.LookupCodePage(value); ok {
				cp = found2
			}
		}
	}
	return version, cp, found
}

func readAll(r codepair.Reader, sink diag.Sink) (*Drawing, error) {
	d := &Drawing{Header: header.New()}

	p, err := r.Next()
	if err == io.EOF {
		return d, nil
	}
	if err != nil {
		return nil, err
	}
	if err := expectStructural(p, "SECTION"); err != nil {
		return nil, err
	}

	for {
		name, err := readSectionName(r)
		if err != nil {
			return nil, err
		}

		switch name {
		case "HEADER":
			h, err := header.Read(r, sink)
			if err != nil {
				return nil, err
			}
			d.Header = h
		case "CLASSES":
			classes, err := class.ReadSection(r, sink)
			if err != nil {
				return nil, err
			}
			d.Classes = classes
		case "TABLES":
			tables, err := table.ReadSection(r, sink)
			if err != nil {
				return nil, err
			}
			d.Tables = tables
		case "BLOCKS":
			blocks, err := block.ReadSection(r, sink)
			if err != nil {
				return nil, err
			}
			d.Blocks = blocks
		case "ENTITIES":
			entities, err := entity.ReadSection(r, sink)
			if err != nil {
				return nil, err
			}
			d.Entities = entities
		case "OBJECTS":
			objects, err := entity.ReadSection(r, sink)
			if err != nil {
				return nil, err
			}
			d.Objects = objects
		case "THUMBNAILIMAGE":
			data, err := thumbnail.Read(r, sink)
			if err != nil {
				return nil, err
			}
			d.Thumbnail = data
		default:
			if _, err := entity.ReadUntil(r, sink, "ENDSEC"); err != nil {
				return nil, err
			}
		}

		p, err := r.Next()
		if err == io.EOF {
			d.BuildIndex(sink)
			return d, nil
		}
		if err != nil {
			return nil, err
		}
		if p.Code == 0 {
			s, _ := p.Str()
			if s == "EOF" {
				d.BuildIndex(sink)
				return d, nil
			}
			if s != "SECTION" {
				return nil, codepair.InvalidEncoding{Offset: r.Offset(), Detail: "expected SECTION or EOF, got " + s}
			}
			continue
		}
		return nil, codepair.MalformedPair{Offset: r.Offset(), Code: p.Code, Excerpt: "expected (0, SECTION|EOF)"}
	}
}

// readSectionName consumes the (2, name) pair that follows (0,"SECTION").
func readSectionName(r codepair.Reader) (string, error) {
	p, err := r.Next()
	if err != nil {
		return "", err
	}
	if p.Code != 2 {
		return "", codepair.MalformedPair{Offset: r.Offset(), Code: p.Code, Excerpt: "expected (2, section-name)"}
	}
	return p.Str()
}

func expectStructural(p codepair.Pair, want string) error {
	if p.Code != 0 {
		return codepair.MalformedPair{Offset: 0, Code: p.Code, Excerpt: "expected (0, " + want + ")"}
	}
	s, err := p.Str()
	if err != nil {
		return err
	}
	if s != want {
		return codepair.InvalidEncoding{Detail: "expected " + want + ", got " + s}
	}
	return nil
}
