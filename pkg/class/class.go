// Package class implements the CLASSES section: a flat list of class
// records describing non-fixed (custom/proxy) object types a drawing may
// reference, read and written verbatim since this library never needs to
// instantiate them itself.
package class

import (
	"io"

	"github.com/drawxchange/dxf/pkg/codepair"
	"github.com/drawxchange/dxf/pkg/diag"
)

// Class describes one custom or proxy class a drawing's objects may use.
type Class struct {
	DXFName       string
	CppClassName  string
	ApplicationID string
	ProxyFlags    int32
	InstanceCount int32
	WasProxy      bool
	IsEntity      bool
}

func readOne(r codepair.Reader) (Class, error) {
	var c Class
	for {
		p, err := r.Peek()
		if err == io.EOF {
			return c, nil
		}
		if err != nil {
			return c, err
		}
		if p.Code == 0 {
			return c, nil
		}
		r.Next()
		switch p.Code {
		case 1:
			c.DXFName, _ = p.Str()
		case 2:
			c.CppClassName, _ = p.Str()
		case 3:
			c.ApplicationID, _ = p.Str()
		case 90:
			c.ProxyFlags, _ = p.Int()
		case 91:
			c.InstanceCount, _ = p.Int()
		case 280:
			v, _ := p.Short()
			c.WasProxy = v != 0
		case 281:
			v, _ := p.Short()
			c.IsEntity = v != 0
		}
	}
}

func writeOne(w codepair.Writer, c Class) error {
	if err := w.Emit(codepair.NewString(0, "CLASS")); err != nil {
		return err
	}
	var wasProxy, isEntity int16
	if c.WasProxy {
		wasProxy = 1
	}
	if c.IsEntity {
		isEntity = 1
	}
	pairs := []codepair.Pair{
		codepair.NewString(1, c.DXFName),
		codepair.NewString(2, c.CppClassName),
		codepair.NewString(3, c.ApplicationID),
		codepair.NewInt(90, c.ProxyFlags),
		codepair.NewInt(91, c.InstanceCount),
		codepair.NewShort(280, wasProxy),
		codepair.NewShort(281, isEntity),
	}
	for _, p := range pairs {
		if err := w.Emit(p); err != nil {
			return err
		}
	}
	return nil
}

// ReadSection reads the CLASSES section body: a run of CLASS records up to
// (and consuming) "(0,ENDSEC)", tolerating a missing terminator at EOF.
func ReadSection(r codepair.Reader, sink diag.Sink) ([]Class, error) {
	if sink == nil {
		sink = diag.Noop{}
	}
	var out []Class
	for {
		p, err := r.Next()
		if err == io.EOF {
			sink.Warn(diag.CodeMissingEndsec, "classes section ended without ENDSEC", nil)
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
		case "CLASS":
			c, err := readOne(r)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		case "EOF", "SECTION":
			r.Unget(p)
			sink.Warn(diag.CodeMissingEndsec, "classes section ended without ENDSEC", map[string]interface{}{"found": name})
			return out, nil
		}
	}
}

// WriteSection emits every class followed by "(0,ENDSEC)".
func WriteSection(w codepair.Writer, classes []Class) error {
	for _, c := range classes {
		if err := writeOne(w, c); err != nil {
			return err
		}
	}
	return w.Emit(codepair.NewString(0, "ENDSEC"))
}
