package fixed_test

import (
	"testing"

	"github.com/cocosip/go-zbarscan/fixed"
)

func TestFromIntRoundTrip(t *testing.T) {
	for x := 0; x < 1000; x++ {
		p := fixed.FromInt(x)
		if got := p.Int(); got != x {
			t.Fatalf("FromInt(%d).Int() = %d, want %d", x, got, x)
		}
		if frac := p.Frac(); frac != 0 {
			t.Fatalf("FromInt(%d).Frac() = %d, want 0", x, frac)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ v, lo, hi, want int }{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := fixed.Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestAbs(t *testing.T) {
	if got := fixed.Abs(-7); got != 7 {
		t.Errorf("Abs(-7) = %d, want 7", got)
	}
	if got := fixed.Abs(7); got != 7 {
		t.Errorf("Abs(7) = %d, want 7", got)
	}
	if got := fixed.Abs(0); got != 0 {
		t.Errorf("Abs(0) = %d, want 0", got)
	}
}
