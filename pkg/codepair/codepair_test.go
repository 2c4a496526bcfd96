package codepair

import (
	"errors"
	"testing"
)

func TestClassOfCoversDocumentedSplits(t *testing.T) {
	cases := []struct {
		code int
		want Kind
	}{
		{0, KindString},
		{8, KindString},
		{10, KindDouble},
		{62, KindShort},
		{90, KindInt},
		{102, KindString},
		{160, KindLong},
		{170, KindShort},
		{210, KindDouble},
		{270, KindShort},
		{290, KindBool},
		{299, KindBool},
		{310, KindBinary},
		{319, KindBinary},
		{320, KindString},
		{329, KindString},
		{330, KindHandle},
		{369, KindHandle},
		{999, KindString},
	}
	for _, c := range cases {
		if got := ClassOf(c.code); got != c.want {
			t.Errorf("ClassOf(%d) = %v, want %v", c.code, got, c.want)
		}
	}
}

func TestIsHandleAsString(t *testing.T) {
	if !IsHandleAsString(325) {
		t.Fatal("325 should be handle-as-string")
	}
	if IsHandleAsString(330) {
		t.Fatal("330 is a native handle, not handle-as-string")
	}
}

func TestPairAccessorsWrongType(t *testing.T) {
	p := NewShort(70, 5)
	if _, err := p.Double(); err == nil {
		t.Fatal("expected WrongValueType error")
	} else {
		var wvt WrongValueType
		if !errors.As(err, &wvt) {
			t.Fatalf("expected WrongValueType, got %T", err)
		}
	}
}

func TestBufferedPushback(t *testing.T) {
	pairs := []Pair{NewShort(70, 1), NewShort(70, 2), NewShort(70, 3)}
	i := 0
	b := NewBuffered(func() (Pair, error) {
		if i >= len(pairs) {
			return Pair{}, errEOFSentinel
		}
		p := pairs[i]
		i++
		return p, nil
	}, func() int64 { return int64(i) })

	p1, err := b.Next()
	if err != nil || mustShort(t, p1) != 1 {
		t.Fatalf("first Next() = %v, %v", p1, err)
	}
	p2, err := b.Peek()
	if err != nil || mustShort(t, p2) != 2 {
		t.Fatalf("Peek() = %v, %v", p2, err)
	}
	p3, err := b.Peek()
	if err != nil || mustShort(t, p3) != 2 {
		t.Fatalf("second Peek() should be idempotent, got %v, %v", p3, err)
	}
	p4, err := b.Next()
	if err != nil || mustShort(t, p4) != 2 {
		t.Fatalf("Next() after Peek() = %v, %v", p4, err)
	}
	b.Unget(p4)
	p5, err := b.Next()
	if err != nil || mustShort(t, p5) != 2 {
		t.Fatalf("Next() after Unget() = %v, %v", p5, err)
	}
	p6, err := b.Next()
	if err != nil || mustShort(t, p6) != 3 {
		t.Fatalf("final Next() = %v, %v", p6, err)
	}
}

func mustShort(t *testing.T, p Pair) int16 {
	t.Helper()
	v, err := p.Short()
	if err != nil {
		t.Fatalf("Short(): %v", err)
	}
	return v
}

var errEOFSentinel = errors.New("test: exhausted")
