// Package fraction implements exact signed rational arithmetic over
// arbitrary-precision integers. Results are never reduced to lowest terms,
// so numerators and denominators keep the raw magnitudes they were built
// from.
package fraction

import (
	"fmt"
	"math/big"

	"joeRoute/internal/model"
)

// ErrDivisionByZero is returned when an operation would produce a zero
// denominator.
var ErrDivisionByZero = fmt.Errorf("%w: division by zero", model.ErrArithmetic)

// Fraction is Numerator/Denominator. The zero value is not valid; build
// fractions with New or one of the From helpers.
type Fraction struct {
	Numerator   *big.Int
	Denominator *big.Int
}

// New returns num/den. The arguments are copied.
func New(num, den *big.Int) (Fraction, error) {
	if num == nil || den == nil {
		return Fraction{}, fmt.Errorf("%w: nil operand", model.ErrArithmetic)
	}
	if den.Sign() == 0 {
		return Fraction{}, ErrDivisionByZero
	}
	return Fraction{
		Numerator:   new(big.Int).Set(num),
		Denominator: new(big.Int).Set(den),
	}, nil
}

// FromInt64 returns num/den and panics when den is zero. It is meant for
// constants and tests.
func FromInt64(num, den int64) Fraction {
	f, err := New(big.NewInt(num), big.NewInt(den))
	if err != nil {
		panic(err)
	}
	return f
}

// FromBig returns value/1.
func FromBig(value *big.Int) Fraction {
	return Fraction{Numerator: new(big.Int).Set(value), Denominator: big.NewInt(1)}
}

// Quotient is the integer part of the fraction, truncated toward zero.
func (f Fraction) Quotient() *big.Int {
	return new(big.Int).Quo(f.Numerator, f.Denominator)
}

// Remainder returns (num % den)/den, using the truncated remainder.
func (f Fraction) Remainder() Fraction {
	return Fraction{
		Numerator:   new(big.Int).Rem(f.Numerator, f.Denominator),
		Denominator: new(big.Int).Set(f.Denominator),
	}
}

// Invert swaps numerator and denominator.
func (f Fraction) Invert() (Fraction, error) {
	if f.Numerator.Sign() == 0 {
		return Fraction{}, ErrDivisionByZero
	}
	return Fraction{
		Numerator:   new(big.Int).Set(f.Denominator),
		Denominator: new(big.Int).Set(f.Numerator),
	}, nil
}

// Add returns f + other. Equal denominators are kept as is instead of being
// multiplied together.
func (f Fraction) Add(other Fraction) Fraction {
	if f.Denominator.Cmp(other.Denominator) == 0 {
		return Fraction{
			Numerator:   new(big.Int).Add(f.Numerator, other.Numerator),
			Denominator: new(big.Int).Set(f.Denominator),
		}
	}
	ad := new(big.Int).Mul(f.Numerator, other.Denominator)
	cb := new(big.Int).Mul(other.Numerator, f.Denominator)
	return Fraction{
		Numerator:   ad.Add(ad, cb),
		Denominator: new(big.Int).Mul(f.Denominator, other.Denominator),
	}
}

// Subtract returns f - other.
func (f Fraction) Subtract(other Fraction) Fraction {
	if f.Denominator.Cmp(other.Denominator) == 0 {
		return Fraction{
			Numerator:   new(big.Int).Sub(f.Numerator, other.Numerator),
			Denominator: new(big.Int).Set(f.Denominator),
		}
	}
	ad := new(big.Int).Mul(f.Numerator, other.Denominator)
	cb := new(big.Int).Mul(other.Numerator, f.Denominator)
	return Fraction{
		Numerator:   ad.Sub(ad, cb),
		Denominator: new(big.Int).Mul(f.Denominator, other.Denominator),
	}
}

// Multiply returns f * other.
func (f Fraction) Multiply(other Fraction) Fraction {
	return Fraction{
		Numerator:   new(big.Int).Mul(f.Numerator, other.Numerator),
		Denominator: new(big.Int).Mul(f.Denominator, other.Denominator),
	}
}

// Divide returns f / other.
func (f Fraction) Divide(other Fraction) (Fraction, error) {
	if other.Numerator.Sign() == 0 {
		return Fraction{}, ErrDivisionByZero
	}
	return Fraction{
		Numerator:   new(big.Int).Mul(f.Numerator, other.Denominator),
		Denominator: new(big.Int).Mul(f.Denominator, other.Numerator),
	}, nil
}

// LessThan reports whether f < other.
func (f Fraction) LessThan(other Fraction) bool {
	return f.cmp(other) < 0
}

// EqualTo reports whether f and other denote the same rational value, which
// holds for unreduced forms like 1/2 and 2/4.
func (f Fraction) EqualTo(other Fraction) bool {
	return f.cmp(other) == 0
}

// GreaterThan reports whether f > other.
func (f Fraction) GreaterThan(other Fraction) bool {
	return f.cmp(other) > 0
}

// cmp compares a/b with c/d through a·d ? c·b, flipped when b·d is negative.
func (f Fraction) cmp(other Fraction) int {
	ad := new(big.Int).Mul(f.Numerator, other.Denominator)
	cb := new(big.Int).Mul(other.Numerator, f.Denominator)
	c := ad.Cmp(cb)
	if f.Denominator.Sign()*other.Denominator.Sign() < 0 {
		return -c
	}
	return c
}

// Rat converts f to a big.Rat. The result is reduced.
func (f Fraction) Rat() *big.Rat {
	return new(big.Rat).SetFrac(f.Numerator, f.Denominator)
}

// ToFixed renders f with the given number of digits after the decimal
// point, rounding half away from zero.
func (f Fraction) ToFixed(decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return f.Rat().FloatString(decimals)
}

func (f Fraction) String() string {
	if f.Numerator == nil || f.Denominator == nil {
		return "<nil>"
	}
	return f.Numerator.String() + "/" + f.Denominator.String()
}
