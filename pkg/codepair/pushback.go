package codepair

// Buffered adds one-pair push-back and offset tracking on top of a raw
// per-encoding decode function, so the ASCII and binary lexers (pkg/ascii,
// pkg/binary) only need to implement "decode the next pair" and "how many
// bytes have been consumed so far".
type Buffered struct {
	fetch func() (Pair, error)
	off   func() int64

	pend       *Pair
	pendOffset int64
	lastOffset int64
}

// NewBuffered wraps fetch (decode and return the next pair, advancing the
// underlying source) and off (current byte offset of the underlying source)
// into a full Reader.
func NewBuffered(fetch func() (Pair, error), off func() int64) *Buffered {
	return &Buffered{fetch: fetch, off: off}
}

func (b *Buffered) Next() (Pair, error) {
	if b.pend != nil {
		p := *b.pend
		b.pend = nil
		b.lastOffset = b.pendOffset
		return p, nil
	}
	p, err := b.fetch()
	if err != nil {
		return Pair{}, err
	}
	b.lastOffset = b.off()
	return p, nil
}

func (b *Buffered) Peek() (Pair, error) {
	if b.pend != nil {
		return *b.pend, nil
	}
	p, err := b.fetch()
	if err != nil {
		return Pair{}, err
	}
	b.pend = &p
	b.pendOffset = b.off()
	return p, nil
}

func (b *Buffered) Unget(p Pair) {
	if b.pend != nil {
		panic("codepair: Unget called with a pair already pending")
	}
	cp := p
	b.pend = &cp
	b.pendOffset = b.lastOffset
}

func (b *Buffered) Offset() int64 { return b.lastOffset }
