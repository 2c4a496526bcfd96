// Package table implements the TABLES section: a TABLE `(2, name)`
// header dispatch over a fixed set of record kinds, each satisfying the
// same ApplyPair/WritePairs contract as pkg/entity's variants, sized down
// since table records have no graphics fields or trailing XDATA.
package table

import (
	"io"

	"github.com/drawxchange/dxf/pkg/codepair"
	"github.com/drawxchange/dxf/pkg/diag"
)

// Entry is the runtime contract a table record variant satisfies.
type Entry interface {
	TypeName() string
	Base() *Common
	ApplyPair(p codepair.Pair) (bool, error)
	WritePairs(w codepair.Writer) error
}

// Common is the handle/owner/name/flags every table record shares.
type Common struct {
	Handle   codepair.Handle
	Owner    codepair.Handle
	Name     string
	Flags    int16
	RawPairs []codepair.Pair
}

func (c *Common) applyCommon(p codepair.Pair) bool {
	switch p.Code {
	case 5:
		// table records use the same string-form handle as entities.
		if s, err := p.Str(); err == nil {
			if v, ok := parseHex(s); ok {
				c.Handle = codepair.Handle(v)
			}
		}
		return true
	case 330:
		h, err := p.HandleValue()
		if err != nil {
			return false
		}
		c.Owner = h
		return true
	case 2:
		s, _ := p.Str()
		c.Name = s
		return true
	case 70:
		v, _ := p.Short()
		c.Flags = v
		return true
	case 100:
		return true
	default:
		return false
	}
}

func (c *Common) writeCommon(w codepair.Writer) error {
	if c.Handle != 0 {
		if err := w.Emit(codepair.NewString(5, formatHex(uint64(c.Handle)))); err != nil {
			return err
		}
	}
	if c.Owner != 0 {
		if err := w.Emit(codepair.NewHandle(330, c.Owner)); err != nil {
			return err
		}
	}
	if err := w.Emit(codepair.NewString(2, c.Name)); err != nil {
		return err
	}
	return w.Emit(codepair.NewShort(70, c.Flags))
}

var registry = map[string]func() Entry{}

func register(typeName string, factory func() Entry) { registry[typeName] = factory }

// Table is one named TABLE ... ENDTAB block (LAYER, LTYPE, STYLE, ...).
type Table struct {
	Name       string
	MaxEntries int16
	Handle     codepair.Handle
	Owner      codepair.Handle
	Entries    []Entry
}

// ReadOne reads the body of one table record, given its already-consumed
// (0, typeName) pair. Unrecognized codes fall into the common record's
// RawPairs bucket, mirroring pkg/entity's dispatch.
func ReadOne(r codepair.Reader, typeName string) (Entry, error) {
	factory, ok := registry[typeName]
	var e Entry
	if ok {
		e = factory()
	} else {
		e = newUnknownEntry(typeName)
	}
	c := e.Base()
	for {
		p, err := r.Peek()
		if err == io.EOF {
			return e, nil
		}
		if err != nil {
			return nil, err
		}
		if p.Code == 0 {
			return e, nil
		}
		r.Next()
		if c.applyCommon(p) {
			continue
		}
		accepted, err := e.ApplyPair(p)
		if err != nil {
			return nil, err
		}
		if !accepted {
			c.RawPairs = append(c.RawPairs, p)
		}
	}
}

// WriteOne emits one table record: (0, typename), common fields, variant
// fields, then preserved raw pairs.
func WriteOne(w codepair.Writer, e Entry) error {
	if err := w.Emit(codepair.NewString(0, e.TypeName())); err != nil {
		return err
	}
	c := e.Base()
	if err := c.writeCommon(w); err != nil {
		return err
	}
	if err := e.WritePairs(w); err != nil {
		return err
	}
	for _, p := range c.RawPairs {
		if err := w.Emit(p); err != nil {
			return err
		}
	}
	return nil
}

// ReadTable reads one TABLE block's body, given its already-consumed
// (0,"TABLE") pair, stopping at (and consuming) (0,"ENDTAB").
func ReadTable(r codepair.Reader, sink diag.Sink) (*Table, error) {
	if sink == nil {
		sink = diag.Noop{}
	}
	t := &Table{}
	for {
		p, err := r.Next()
		if err == io.EOF {
			sink.Warn(diag.CodeMissingEndsec, "table ended without ENDTAB", nil)
			return t, nil
		}
		if err != nil {
			return nil, err
		}
		switch p.Code {
		case 2:
			t.Name, _ = p.Str()
		case 5:
			if s, err := p.Str(); err == nil {
				if v, ok := parseHex(s); ok {
					t.Handle = codepair.Handle(v)
				}
			}
		case 330:
			t.Owner, _ = p.HandleValue()
		case 70:
			t.MaxEntries, _ = p.Short()
		case 0:
			name, _ := p.Str()
			if name == "ENDTAB" {
				return t, nil
			}
			e, err := ReadOne(r, name)
			if err != nil {
				return nil, err
			}
			t.Entries = append(t.Entries, e)
		}
	}
}

// WriteTable emits a TABLE block's body: the table header, each entry, then
// (0,"ENDTAB").
func WriteTable(w codepair.Writer, t *Table) error {
	if err := w.Emit(codepair.NewString(2, t.Name)); err != nil {
		return err
	}
	if t.Handle != 0 {
		if err := w.Emit(codepair.NewString(5, formatHex(uint64(t.Handle)))); err != nil {
			return err
		}
	}
	if t.Owner != 0 {
		if err := w.Emit(codepair.NewHandle(330, t.Owner)); err != nil {
			return err
		}
	}
	if err := w.Emit(codepair.NewShort(70, int16(len(t.Entries)))); err != nil {
		return err
	}
	for _, e := range t.Entries {
		if err := WriteOne(w, e); err != nil {
			return err
		}
	}
	return w.Emit(codepair.NewString(0, "ENDTAB"))
}

// ReadSection reads the body of the TABLES section, a run of TABLE blocks
// terminated by (0,"ENDSEC"); tolerates a missing terminator at EOF.
func ReadSection(r codepair.Reader, sink diag.Sink) ([]*Table, error) {
	if sink == nil {
		sink = diag.Noop{}
	}
	var out []*Table
	for {
		p, err := r.Next()
		if err == io.EOF {
			sink.Warn(diag.CodeMissingEndsec, "tables section ended without ENDSEC", nil)
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if p.Code != 0 {
			continue
		}
		name, _ := p.Str()
		switch name {
		case "ENDSEC":
			return out, nil
		case "TABLE":
			t, err := ReadTable(r, sink)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		case "EOF", "SECTION":
			r.Unget(p)
			sink.Warn(diag.CodeMissingEndsec, "tables section ended without ENDSEC", map[string]interface{}{"found": name})
			return out, nil
		}
	}
}

// WriteSection emits every table followed by (0,"ENDSEC").
func WriteSection(w codepair.Writer, tables []*Table) error {
	for _, t := range tables {
		if err := w.Emit(codepair.NewString(0, "TABLE")); err != nil {
			return err
		}
		if err := WriteTable(w, t); err != nil {
			return err
		}
	}
	return w.Emit(codepair.NewString(0, "ENDSEC"))
}
