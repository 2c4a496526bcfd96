package codepair

// Reader is the lexer side of the code-pair stream abstraction, shared by
// the ASCII, pre-R13 binary, and post-R13 binary encodings (pkg/ascii,
// pkg/binary). It supports exactly one pair of push-back, which is all the
// header parser's "$NAME" slot loop and the entity parser's next-(0, ...)
// boundary detection ever need.
type Reader interface {
	// Next returns the next pair, or io.EOF once the stream is exhausted.
	Next() (Pair, error)

	// Peek returns the next pair without consuming it. Calling Peek twice
	// in a row returns the same pair.
	Peek() (Pair, error)

	// Unget pushes a single pair back onto the stream, to be returned by
	// the next Next() or Peek() call. Ungetting more than one pair without
	// an intervening Next() panics; callers (header/entity parsers) never
	// need more than one.
	Unget(Pair)

	// Offset returns the byte offset of the most recently produced pair,
	// for inclusion in fatal error values.
	Offset() int64
}

// Writer is the emitter side of the code-pair stream abstraction.
type Writer interface {
	// Emit writes a pair. Implementations validate the pair's Kind against
	// ClassOf(pair.Code) and return MalformedPair on mismatch.
	Emit(Pair) error

	// Flush ensures any buffered output has reached the underlying stream.
	Flush() error
}

// CheckKind validates that p's Kind matches what ClassOf(p.Code) expects,
// returning MalformedPair if not. Handle-as-string codes (320-329) accept
// either KindString or KindHandle, since callers may reasonably construct
// either.
func CheckKind(p Pair, offset int64) error {
	want := ClassOf(p.Code)
	if p.Kind == want {
		return nil
	}
	if IsHandleAsString(p.Code) && (p.Kind == KindString || p.Kind == KindHandle) {
		return nil
	}
	return MalformedPair{Offset: offset, Code: p.Code, Excerpt: p.Kind.String() + " != " + want.String()}
}
