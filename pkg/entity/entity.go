package entity

import (
	"io"

	"github.com/drawxchange/dxf/pkg/codepair"
	"github.com/drawxchange/dxf/pkg/diag"
	"github.com/drawxchange/dxf/pkg/enums"
	"github.com/drawxchange/dxf/pkg/xdata"
)

// Entity is the runtime contract every variant satisfies:
// TypeName/MinVersion/MaxVersion/BaseFields/WritePairs/ApplyPair.
// BaseFields is exposed as Base() returning the embedded common record
// directly, since Go favors composition over a defaults-struct copy.
type Entity interface {
	TypeName() string
	MinVersion() enums.Version
	MaxVersion() enums.Version
	Base() *Record

	// ApplyPair offers p to the variant's own field table. It reports
	// whether the pair was accepted; a rejected pair falls through to the
	// record's raw-pair bucket.
	ApplyPair(p codepair.Pair) (bool, error)

	// WritePairs emits the variant's own fields (not the common record or
	// trailing data, which the caller handles uniformly).
	WritePairs(w codepair.Writer, target enums.Version) error
}

var registry = map[string]func() Entity{}

func register(typeName string, factory func() Entity) { registry[typeName] = factory }

// ReadOne reads one entity body, given its already-consumed (0, typeName)
// pair. It stops at (without consuming) the next code-0 pair.
func ReadOne(r codepair.Reader, typeName string, sink diag.Sink) (Entity, error) {
	if sink == nil {
		sink = diag.Noop{}
	}
	factory, ok := registry[typeName]
	var e Entity
	if ok {
		e = factory()
	} else {
		sink.Warn(diag.CodeUnknownEntityType, "unrecognized entity type", map[string]interface{}{"type": typeName})
		e = newUnknown(typeName)
	}
	rec := e.Base()

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

		switch {
		case p.Code == 102:
			g, err := xdata.ReadGroup(r, p)
			if err != nil {
				return nil, err
			}
			rec.ExtData = append(rec.ExtData, g)
		case p.Code == 1001:
			b, err := xdata.ReadBlock(r, p)
			if err != nil {
				return nil, err
			}
			rec.XData = append(rec.XData, b)
		case p.Code == 5 || p.Code == 330:
			rec.ApplyCommonPair(p)
		default:
			// The variant's own field table gets first claim, so a
			// variant reusing a common code (MLINESTYLE's per-element 62
			// and 6) still sees it; the common record picks up whatever
			// the variant rejects.
			accepted, err := e.ApplyPair(p)
			if err != nil {
				return nil, err
			}
			if !accepted && !rec.ApplyCommonPair(p) {
				rec.RawPairs = append(rec.RawPairs, p)
			}
		}
	}
}

// WriteOne emits one entity: (0, typename), common record fields, the
// variant's own fields, preserved raw pairs, then trailing ext/XDATA.
func WriteOne(w codepair.Writer, e Entity, target enums.Version) error {
	if err := w.Emit(codepair.NewString(0, e.TypeName())); err != nil {
		return err
	}
	rec := e.Base()
	if err := rec.WriteCommonPairs(w); err != nil {
		return err
	}
	if err := e.WritePairs(w, target); err != nil {
		return err
	}
	for _, p := range rec.RawPairs {
		if err := w.Emit(p); err != nil {
			return err
		}
	}
	return rec.WriteTrailingData(w)
}

// ReadSection reads the body of the ENTITIES section: a run of entities up
// to (and consuming) the next (0,"ENDSEC") pair. It attaches INSERT's
// trailing ATTRIB run + SEQEND and POLYLINE's trailing VERTEX run +
// SEQEND, and tolerates a missing ENDSEC by stopping at EOF or the next
// SECTION.
func ReadSection(r codepair.Reader, sink diag.Sink) ([]Entity, error) {
	return ReadUntil(r, sink, "ENDSEC")
}

// ReadUntil reads a run of entities up to (and consuming) the first (0, ...)
// pair whose value matches one of terminators - the shape both the
// ENTITIES section (terminator "ENDSEC") and a BLOCKS-section block's body
// (terminator "ENDBLK", see pkg/block) share. It tolerates a missing
// terminator by stopping at EOF or the next SECTION/EOF marker.
func ReadUntil(r codepair.Reader, sink diag.Sink, terminators ...string) ([]Entity, error) {
	if sink == nil {
		sink = diag.Noop{}
	}
	isTerminator := func(name string) bool {
		for _, t := range terminators {
			if name == t {
				return true
			}
		}
		return false
	}
	var out []Entity
	for {
		p, err := r.Next()
		if err == io.EOF {
			sink.Warn(diag.CodeMissingEndsec, "entity run ended without its terminator", nil)
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if p.Code != 0 {
			continue
		}
		name, _ := p.Str()
		if isTerminator(name) {
			return out, nil
		}
		if name == "EOF" || name == "SECTION" {
			r.Unget(p)
			sink.Warn(diag.CodeMissingEndsec, "entity run ended without its terminator", map[string]interface{}{"found": name})
			return out, nil
		}

		e, err := ReadOne(r, name, sink)
		if err != nil {
			return nil, err
		}
		out = append(out, e)

		if err := attachSuccessors(r, e, sink); err != nil {
			return nil, err
		}
	}
}

func attachSuccessors(r codepair.Reader, e Entity, sink diag.Sink) error {
	switch v := e.(type) {
	case *Insert:
		for {
			p, err := r.Peek()
			if err != nil || p.Code != 0 {
				return nil
			}
			name, _ := p.Str()
			switch name {
			case "ATTRIB":
				r.Next()
				a, err := ReadOne(r, name, sink)
				if err != nil {
					return err
				}
				v.Attributes = append(v.Attributes, a.(*Attrib))
			case "SEQEND":
				r.Next()
				se, err := ReadOne(r, name, sink)
				if err != nil {
					return err
				}
				v.SeqEnd = se.(*SeqEnd)
				return nil
			default:
				return nil
			}
		}
	case *Polyline:
		for {
			p, err := r.Peek()
			if err != nil || p.Code != 0 {
				return nil
			}
			name, _ := p.Str()
			switch name {
			case "VERTEX":
				r.Next()
				vt, err := ReadOne(r, name, sink)
				if err != nil {
					return err
				}
				v.Vertices = append(v.Vertices, vt.(*Vertex))
			case "SEQEND":
				r.Next()
				se, err := ReadOne(r, name, sink)
				if err != nil {
					return err
				}
				v.SeqEnd = se.(*SeqEnd)
				return nil
			default:
				return nil
			}
		}
	}
	return nil
}

// WriteSection emits entities followed by (0,"ENDSEC"), attaching each
// INSERT's attributes/SEQEND and each POLYLINE's vertices/SEQEND inline.
// Entities whose MinVersion exceeds target are dropped; the caller
// (pkg/drawing) is responsible for re-parenting anything that orphans as
// a result.
func WriteSection(w codepair.Writer, entities []Entity, target enums.Version) error {
	if err := WriteEntities(w, entities, target); err != nil {
		return err
	}
	return w.Emit(codepair.NewString(0, "ENDSEC"))
}

// WriteEntities emits entities (with INSERT/POLYLINE successor attachment
// and version gating) without a trailing terminator pair, so pkg/block can
// follow it with "ENDBLK" instead of "ENDSEC".
func WriteEntities(w codepair.Writer, entities []Entity, target enums.Version) error {
	for _, e := range entities {
		if e.MinVersion() > target {
			continue
		}
		if err := WriteOne(w, e, target); err != nil {
			return err
		}
		switch v := e.(type) {
		case *Insert:
			for _, a := range v.Attributes {
				if err := WriteOne(w, a, target); err != nil {
					return err
				}
			}
			if v.SeqEnd != nil {
				if err := WriteOne(w, v.SeqEnd, target); err != nil {
					return err
				}
			}
		case *Polyline:
			for _, vt := range v.Vertices {
				if err := WriteOne(w, vt, target); err != nil {
					return err
				}
			}
			if v.SeqEnd != nil {
				if err := WriteOne(w, v.SeqEnd, target); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
