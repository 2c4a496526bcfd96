// Package header implements the drawing's named global variable record:
// the "$NAME" state-loop parser, last-write-wins + warning on duplicates,
// unknown-slot draining, and the canonical-form writer.
package header

import (
	_ "embed"

	"github.com/BurntSushi/toml"

	"github.com/drawxchange/dxf/pkg/enums"
)

//go:embed vars.toml
var varsTOML []byte

// descriptor is one registry entry, decoded from vars.toml.
type descriptor struct {
	Name       string `toml:"name"`
	Codes      []int  `toml:"codes"`
	Kind       string `toml:"kind"`
	MinVersion string `toml:"min_version"`
}

type registryFile struct {
	Variable []descriptor `toml:"variable"`
}

var registry map[string]descriptor

func init() {
	var f registryFile
	if _, err := toml.Decode(string(varsTOML), &f); err != nil {
		panic("header: malformed embedded vars.toml: " + err.Error())
	}
	registry = make(map[string]descriptor, len(f.Variable))
	for _, d := range f.Variable {
		registry[d.Name] = d
	}
}

// minVersion returns the minimum version the named variable is written at,
// falling back to R10 (always written) for names outside the registry -
// i.e. every variable captured in Header.Extra, which carries its own
// version fidelity via the raw pairs it preserves.
func minVersion(name string) enums.Version {
	d, ok := registry[name]
	if !ok {
		return enums.R10
	}
	if v, ok := enums.VersionFromACADVER(acadverFor(d.MinVersion)); ok {
		return v
	}
	return enums.R10
}

// acadverFor maps a registry's human version label (e.g. "R2013") back to
// a canonical $ACADVER string so it can be run through
// enums.VersionFromACADVER - avoids a second parallel name->Version table.
func acadverFor(label string) string {
	for v := enums.R10; v <= enums.R2018; v++ {
		if v.String() == label {
			return v.ACADVER()
		}
	}
	return enums.R10.ACADVER()
}
