// Package xdata implements extension data (code 102 groups) and XDATA
// (code 1001+ application-scoped trailing buckets). Both are read
// from and written to an already-lexed codepair.Reader/Writer; this package
// does not know about ASCII vs binary encoding.
package xdata

import (
	"github.com/drawxchange/dxf/pkg/codepair"
)

// maxDepth bounds group nesting: extension-data groups nested more than
// 16 deep fail with ExtensionDataTooDeep.
const maxDepth = 16

// Group is one extension-data group: the name following the opening
// "{<name>" marker, and the ordered pairs (including nested groups,
// flattened with their own opening/closing markers preserved) between it
// and the matching "}".
type Group struct {
	Name  string
	Pairs []codepair.Pair
}

// ReadGroup reads one extension-data group starting at the opening
// (102, "{name") pair, which the caller has already consumed and passed in
// as opening. It reads through the matching (102, "}"), tracking nesting
// depth for groups-within-groups.
func ReadGroup(r codepair.Reader, opening codepair.Pair) (Group, error) {
	name, err := opening.Str()
	if err != nil {
		return Group{}, err
	}
	name = trimGroupOpen(name)

	g := Group{Name: name}
	depth := 1
	for {
		p, err := r.Next()
		if err != nil {
			return Group{}, err
		}
		if p.Code == 102 {
			s, _ := p.Str()
			if s == "}" {
				depth--
				if depth == 0 {
					return g, nil
				}
				g.Pairs = append(g.Pairs, p)
				continue
			}
			depth++
			if depth > maxDepth {
				return Group{}, codepair.ExtensionDataTooDeep{Offset: r.Offset()}
			}
			g.Pairs = append(g.Pairs, p)
			continue
		}
		g.Pairs = append(g.Pairs, p)
	}
}

func trimGroupOpen(s string) string {
	if len(s) > 0 && s[0] == '{' {
		return s[1:]
	}
	return s
}

// WriteGroup emits g's opening/closing markers and its interior pairs
// verbatim.
func WriteGroup(w codepair.Writer, g Group) error {
	if err := w.Emit(codepair.NewString(102, "{"+g.Name)); err != nil {
		return err
	}
	for _, p := range g.Pairs {
		if err := w.Emit(p); err != nil {
			return err
		}
	}
	return w.Emit(codepair.NewString(102, "}"))
}
