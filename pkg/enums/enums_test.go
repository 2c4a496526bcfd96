package enums

import "testing"

func TestVersionOrderingTotal(t *testing.T) {
	order := []Version{R10, R11, R12, R13, R14, R2000, R2004, R2007, R2010, R2013, R2018}
	for i := 1; i < len(order); i++ {
		if !(order[i-1] < order[i]) {
			t.Fatalf("version ordering broken at index %d: %v >= %v", i, order[i-1], order[i])
		}
	}
}

func TestVersionACADVERRoundTrip(t *testing.T) {
	for _, v := range []Version{R10, R13, R14, R2000, R2004, R2007, R2010, R2013, R2018} {
		s := v.ACADVER()
		got, ok := VersionFromACADVER(s)
		if !ok {
			t.Fatalf("VersionFromACADVER(%q): not recognized", s)
		}
		if got != v {
			t.Fatalf("VersionFromACADVER(%q) = %v, want %v", s, got, v)
		}
	}
}

func TestVersionACADVERUnknownFallsBack(t *testing.T) {
	got, ok := VersionFromACADVER("AC9999")
	if ok {
		t.Fatalf("expected unknown $ACADVER to report ok=false")
	}
	if got != DefaultVersion {
		t.Fatalf("unknown $ACADVER fallback = %v, want %v", got, DefaultVersion)
	}
}

func TestLineWeightFallback(t *testing.T) {
	if got := FromWireLineWeight(12345); got != LineWeightByLayer {
		t.Fatalf("unknown lineweight fallback = %v, want ByLayer", got)
	}
	if got := FromWireLineWeight(30); got != LineWeight(30) {
		t.Fatalf("known lineweight 30 = %v, want 30", got)
	}
	if got := FromWireLineWeight(-2); got != LineWeightByBlock {
		t.Fatalf("sentinel -2 = %v, want ByBlock", got)
	}
}

func TestUnitsFallback(t *testing.T) {
	if got := FromWireUnits(999); got != UnitsUnitless {
		t.Fatalf("unknown units fallback = %v, want Unitless", got)
	}
	if got := FromWireUnits(int16(UnitsMeters)); got != UnitsMeters {
		t.Fatalf("known units = %v, want Meters", got)
	}
}

func TestPointFormatFallback(t *testing.T) {
	if got := FromWirePointFormat(123); got != PointFormatDot {
		t.Fatalf("unknown point format fallback = %v, want Dot", got)
	}
}

func TestAttachmentPointFallback(t *testing.T) {
	if got := FromWireAttachmentPoint(0); got != AttachmentTopLeft {
		t.Fatalf("below-range attachment point fallback = %v, want TopLeft", got)
	}
	if got := FromWireAttachmentPoint(42); got != AttachmentTopLeft {
		t.Fatalf("above-range attachment point fallback = %v, want TopLeft", got)
	}
}

func TestHorizontalJustificationFallback(t *testing.T) {
	if got := FromWireHorizontalJustification(99); got != HJustifyLeft {
		t.Fatalf("unknown horizontal justification fallback = %v, want Left", got)
	}
}

func TestPlotStyleFallback(t *testing.T) {
	if got := FromWirePlotStyleType(77); got != PlotStyleByLayer {
		t.Fatalf("unknown plot style fallback = %v, want ByLayer", got)
	}
}

func TestTrueColorRGBRoundTrip(t *testing.T) {
	c := NewTrueColor(0x12, 0x34, 0x56)
	r, g, b := c.RGB()
	if r != 0x12 || g != 0x34 || b != 0x56 {
		t.Fatalf("RGB() = %02x %02x %02x, want 12 34 56", r, g, b)
	}
}
