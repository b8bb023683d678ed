package fraction

import (
	"errors"
	"math/big"
	"testing"

	"joeRoute/internal/model"
)

func assertFraction(t *testing.T, got Fraction, num, den int64) {
	t.Helper()
	if got.Numerator.Cmp(big.NewInt(num)) != 0 || got.Denominator.Cmp(big.NewInt(den)) != 0 {
		t.Fatalf("fraction mismatch: got %s, want %d/%d", got, num, den)
	}
}

func TestQuotient(t *testing.T) {
	cases := []struct {
		f    Fraction
		want int64
	}{
		{FromInt64(8, 3), 2},
		{FromInt64(12, 4), 3},
		{FromInt64(16, 5), 3},
		{FromInt64(-8, 3), -2},
	}
	for _, tc := range cases {
		if got := tc.f.Quotient(); got.Int64() != tc.want {
			t.Fatalf("quotient of %s: got %s, want %d", tc.f, got, tc.want)
		}
	}
}

func TestRemainder(t *testing.T) {
	assertFraction(t, FromInt64(8, 3).Remainder(), 2, 3)
	assertFraction(t, FromInt64(12, 4).Remainder(), 0, 4)
	assertFraction(t, FromInt64(16, 5).Remainder(), 1, 5)
	assertFraction(t, FromInt64(-8, 3).Remainder(), -2, 3)
}

func TestInvert(t *testing.T) {
	inv, err := FromInt64(5, 10).Invert()
	if err != nil {
		t.Fatalf("invert: %v", err)
	}
	assertFraction(t, inv, 10, 5)

	if _, err := FromInt64(0, 10).Invert(); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected division by zero, got %v", err)
	}
}

func TestAdd(t *testing.T) {
	assertFraction(t, FromInt64(1, 10).Add(FromInt64(4, 12)), 52, 120)
	assertFraction(t, FromInt64(8, 4).Add(FromInt64(8, 3)), 56, 12)
	assertFraction(t, FromInt64(8, 2).Add(FromInt64(8, 3)), 40, 6)
	assertFraction(t, FromInt64(1, 5).Add(FromInt64(2, 5)), 3, 5)
}

func TestSubtract(t *testing.T) {
	assertFraction(t, FromInt64(1, 10).Subtract(FromInt64(4, 12)), -28, 120)
	assertFraction(t, FromInt64(1, 3).Subtract(FromInt64(4, 3)), -3, 3)
}

func TestMultiply(t *testing.T) {
	assertFraction(t, FromInt64(1, 10).Multiply(FromInt64(4, 12)), 4, 120)
	assertFraction(t, FromInt64(1, 3).Multiply(FromInt64(4, 3)), 4, 9)
	assertFraction(t, FromInt64(5, 12).Multiply(FromInt64(4, 12)), 20, 144)
}

func TestDivide(t *testing.T) {
	got, err := FromInt64(1, 10).Divide(FromInt64(4, 12))
	if err != nil {
		t.Fatalf("divide: %v", err)
	}
	assertFraction(t, got, 12, 40)

	got, err = FromInt64(5, 12).Divide(FromInt64(4, 12))
	if err != nil {
		t.Fatalf("divide: %v", err)
	}
	assertFraction(t, got, 60, 48)

	_, err = FromInt64(1, 10).Divide(FromInt64(0, 3))
	if !errors.Is(err, ErrDivisionByZero) || !errors.Is(err, model.ErrArithmetic) {
		t.Fatalf("expected arithmetic division by zero, got %v", err)
	}
}

func TestComparisons(t *testing.T) {
	if !FromInt64(1, 10).LessThan(FromInt64(4, 12)) {
		t.Fatalf("1/10 should be less than 4/12")
	}
	if FromInt64(4, 12).LessThan(FromInt64(4, 12)) {
		t.Fatalf("less than must be irreflexive")
	}
	if !FromInt64(5, 12).GreaterThan(FromInt64(4, 12)) {
		t.Fatalf("5/12 should be greater than 4/12")
	}
	if !FromInt64(4, 12).EqualTo(FromInt64(1, 3)) {
		t.Fatalf("4/12 should equal 1/3")
	}
	if !FromInt64(1, -2).LessThan(FromInt64(1, 3)) {
		t.Fatalf("1/-2 should be less than 1/3")
	}
}

func TestNewRejectsZeroDenominator(t *testing.T) {
	if _, err := New(big.NewInt(1), big.NewInt(0)); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected division by zero, got %v", err)
	}
}

func TestOperationsDoNotMutate(t *testing.T) {
	a := FromInt64(3, 7)
	b := FromInt64(2, 5)
	_ = a.Add(b)
	_ = a.Multiply(b)
	if _, err := a.Divide(b); err != nil {
		t.Fatalf("divide: %v", err)
	}
	assertFraction(t, a, 3, 7)
	assertFraction(t, b, 2, 5)
}

func TestWideValuesDoNotOverflow(t *testing.T) {
	// uint112 reserves multiplied over several hops exceed any fixed width.
	reserve := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 112), big.NewInt(1))
	f := FromBig(reserve)
	acc := FromInt64(1, 1)
	for i := 0; i < 8; i++ {
		acc = acc.Multiply(f)
	}
	if acc.Numerator.BitLen() < 112*8-1 {
		t.Fatalf("unexpected bit length %d", acc.Numerator.BitLen())
	}
}

func TestToFixed(t *testing.T) {
	if got := FromInt64(1, 3).ToFixed(4); got != "0.3333" {
		t.Fatalf("to fixed mismatch: %s", got)
	}
	if got := FromInt64(56, 12).ToFixed(2); got != "4.67" {
		t.Fatalf("to fixed mismatch: %s", got)
	}
}
