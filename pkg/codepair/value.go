// Package codepair defines the tagged (code, value) primitive that every
// DXF encoding (ASCII, pre-R13 binary, post-R13 binary) lexes into and
// emits from. DXB (pkg/dxb) is opcode-tagged and does not use it.
package codepair

import "fmt"

// Kind identifies which of the eight wire value variants a Pair carries.
type Kind uint8

const (
	KindBool Kind = iota
	KindShort
	KindInt
	KindLong
	KindDouble
	KindString
	KindBinary
	KindHandle
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindShort:
		return "short"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindBinary:
		return "binary"
	case KindHandle:
		return "handle"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Handle is an opaque drawing-unique identifier. Zero means "none".
type Handle uint64

// Pair is one lexed/emitted code-pair: a small integer code and exactly one
// of the eight typed values. Structural boundary pairs ("(0, SECTION)" and
// friends) are ordinary Pairs with Kind == KindString; callers distinguish
// them by code and string value, not by a separate Kind.
type Pair struct {
	Code  int
	Kind  Kind
	raw   interface{}
}

func NewBool(code int, v bool) Pair     { return Pair{Code: code, Kind: KindBool, raw: v} }
func NewShort(code int, v int16) Pair   { return Pair{Code: code, Kind: KindShort, raw: v} }
func NewInt(code int, v int32) Pair     { return Pair{Code: code, Kind: KindInt, raw: v} }
func NewLong(code int, v int64) Pair    { return Pair{Code: code, Kind: KindLong, raw: v} }
func NewDouble(code int, v float64) Pair{ return Pair{Code: code, Kind: KindDouble, raw: v} }
func NewString(code int, v string) Pair { return Pair{Code: code, Kind: KindString, raw: v} }
func NewHandle(code int, v Handle) Pair { return Pair{Code: code, Kind: KindHandle, raw: v} }

// NewBinary copies b so the Pair owns its bytes.
func NewBinary(code int, b []byte) Pair {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Pair{Code: code, Kind: KindBinary, raw: cp}
}

// Bool returns the pair's value as a bool, or WrongValueType if Kind != KindBool.
func (p Pair) Bool() (bool, error) {
	if p.Kind != KindBool {
		return false, WrongValueType{Expected: KindBool, Actual: p.Kind}
	}
	return p.raw.(bool), nil
}

func (p Pair) Short() (int16, error) {
	if p.Kind != KindShort {
		return 0, WrongValueType{Expected: KindShort, Actual: p.Kind}
	}
	return p.raw.(int16), nil
}

func (p Pair) Int() (int32, error) {
	if p.Kind != KindInt {
		return 0, WrongValueType{Expected: KindInt, Actual: p.Kind}
	}
	return p.raw.(int32), nil
}

func (p Pair) Long() (int64, error) {
	if p.Kind != KindLong {
		return 0, WrongValueType{Expected: KindLong, Actual: p.Kind}
	}
	return p.raw.(int64), nil
}

func (p Pair) Double() (float64, error) {
	if p.Kind != KindDouble {
		return 0, WrongValueType{Expected: KindDouble, Actual: p.Kind}
	}
	return p.raw.(float64), nil
}

func (p Pair) Str() (string, error) {
	if p.Kind != KindString {
		return "", WrongValueType{Expected: KindString, Actual: p.Kind}
	}
	return p.raw.(string), nil
}

func (p Pair) Binary() ([]byte, error) {
	if p.Kind != KindBinary {
		return nil, WrongValueType{Expected: KindBinary, Actual: p.Kind}
	}
	b := p.raw.([]byte)
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp, nil
}

func (p Pair) HandleValue() (Handle, error) {
	if p.Kind != KindHandle {
		return 0, WrongValueType{Expected: KindHandle, Actual: p.Kind}
	}
	return p.raw.(Handle), nil
}

// IsStructural reports whether this is code 0, the marker used for
// SECTION/ENDSEC/EOF/entity-or-record-type boundaries.
func (p Pair) IsStructural() bool {
	return p.Code == 0
}

// StructuralValue returns the boundary string for a code-0 pair (e.g.
// "SECTION", "ENDSEC", "EOF", or an entity/record type name). It is a
// convenience over Str() for the common case.
func (p Pair) StructuralValue() (string, error) {
	if !p.IsStructural() {
		return "", fmt.Errorf("codepair: code %d is not a structural pair", p.Code)
	}
	return p.Str()
}

func (p Pair) String() string {
	switch p.Kind {
	case KindBool:
		v, _ := p.Bool()
		return fmt.Sprintf("(%d, %v)", p.Code, v)
	case KindShort:
		v, _ := p.Short()
		return fmt.Sprintf("(%d, %d)", p.Code, v)
	case KindInt:
		v, _ := p.Int()
		return fmt.Sprintf("(%d, %d)", p.Code, v)
	case KindLong:
		v, _ := p.Long()
		return fmt.Sprintf("(%d, %d)", p.Code, v)
	case KindDouble:
		v, _ := p.Double()
		return fmt.Sprintf("(%d, %g)", p.Code, v)
	case KindString:
		v, _ := p.Str()
		return fmt.Sprintf("(%d, %q)", p.Code, v)
	case KindBinary:
		v, _ := p.Binary()
		return fmt.Sprintf("(%d, %d bytes)", p.Code, len(v))
	case KindHandle:
		v, _ := p.HandleValue()
		return fmt.Sprintf("(%d, #%X)", p.Code, uint64(v))
	default:
		return fmt.Sprintf("(%d, ?)", p.Code)
	}
}
