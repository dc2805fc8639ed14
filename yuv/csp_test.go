package yuv

import (
	"errors"
	"testing"
)

func TestParseMatrix(t *testing.T) {
	for m, name := range matrixNames {
		got, err := ParseMatrix(name)
		if err != nil {
			t.Fatalf("ParseMatrix(%q): %v", name, err)
		}
		if got != m {
			t.Errorf("ParseMatrix(%q) = %v, want %v", name, got, m)
		}
		if m.String() != name {
			t.Errorf("String() = %q, want %q", m.String(), name)
		}
	}
	if _, err := ParseMatrix("sRGB"); !errors.Is(err, ErrUnsupportedColorMetadata) {
		t.Errorf("ParseMatrix(sRGB): err = %v", err)
	}
}

func TestSupported(t *testing.T) {
	supported := map[MatrixCoefficients]bool{
		MatrixIdentity: true, MatrixBT709: true, MatrixFCC: true, MatrixBT470BG: true,
		MatrixBT601: true, MatrixSMPTE240: true, MatrixYCgCo: true, MatrixBT2020NCL: true,
	}
	for m := MatrixCoefficients(0); m < 20; m++ {
		if got := m.Supported(); got != supported[m] {
			t.Errorf("%v.Supported() = %v, want %v", m, got, supported[m])
		}
	}
}

func TestChromaSize(t *testing.T) {
	tests := []struct {
		cs     ChromaSampling
		w, h   int
		cw, ch int
	}{
		{Cs420, 4, 4, 2, 2},
		{Cs420, 5, 3, 3, 2},
		{Cs422, 5, 3, 3, 3},
		{Cs444, 5, 3, 5, 3},
		{Monochrome, 5, 3, 0, 0},
	}
	for _, tt := range tests {
		cw, ch := tt.cs.ChromaSize(tt.w, tt.h)
		if cw != tt.cw || ch != tt.ch {
			t.Errorf("%v.ChromaSize(%d, %d) = %dx%d, want %dx%d", tt.cs, tt.w, tt.h, cw, ch, tt.cw, tt.ch)
		}
	}
}

func TestStrings(t *testing.T) {
	if RangeFull.String() != "full" || RangeLimited.String() != "limited" {
		t.Errorf("range names = %q, %q", RangeFull, RangeLimited)
	}
	if Cs420.String() != "4:2:0" || Monochrome.String() != "mono" {
		t.Errorf("sampling names = %q, %q", Cs420, Monochrome)
	}
}
