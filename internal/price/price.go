// Package price composes pool reserve ratios into exchange rates.
package price

import (
	"fmt"
	"math/big"

	"joeRoute/internal/fraction"
	"joeRoute/internal/model"
)

// Price is the amount of Quote one unit of Base buys. Rate is expressed in
// raw token units; Adjusted corrects it for token decimals.
type Price struct {
	Base  model.Token
	Quote model.Token
	Rate  fraction.Fraction
}

// Hops is an ordered chain of pairs together with the token path it walks.
type Hops interface {
	Pairs() []model.Pair
	Path() []model.Token
}

// FromPair returns the mid price of pair with base as the base currency.
// Base reserve is the denominator, quote reserve the numerator.
func FromPair(pair model.Pair, base model.Token) (Price, error) {
	if !pair.InvolvesToken(base) {
		return Price{}, fmt.Errorf("%w: token %s not in pair %s", model.ErrInvariantViolation, base.Address.Hex(), pair.Address.Hex())
	}
	quoteReserve, baseReserve := pair.Reserve1, pair.Reserve0
	baseToken, quoteToken := pair.Token0, pair.Token1
	if !base.Equal(pair.Token0) {
		quoteReserve, baseReserve = pair.Reserve0, pair.Reserve1
		baseToken, quoteToken = pair.Token1, pair.Token0
	}
	if baseReserve == nil || quoteReserve == nil {
		return Price{}, fmt.Errorf("%w: pair %s has no reserves", model.ErrArithmetic, pair.Address.Hex())
	}

	rate, err := fraction.New(quoteReserve, baseReserve)
	if err != nil {
		return Price{}, fmt.Errorf("pair %s mid price: %w", pair.Address.Hex(), err)
	}
	return Price{Base: baseToken, Quote: quoteToken, Rate: rate}, nil
}

// Multiply chains p with other, giving the price of p.Base in other.Quote.
func (p Price) Multiply(other Price) (Price, error) {
	if !p.Quote.Equal(other.Base) {
		return Price{}, fmt.Errorf("%w: price quote %s does not match next base %s",
			model.ErrInvariantViolation, p.Quote.Address.Hex(), other.Base.Address.Hex())
	}
	return Price{Base: p.Base, Quote: other.Quote, Rate: p.Rate.Multiply(other.Rate)}, nil
}

// Invert returns the price of Quote in Base.
func (p Price) Invert() (Price, error) {
	rate, err := p.Rate.Invert()
	if err != nil {
		return Price{}, err
	}
	return Price{Base: p.Quote, Quote: p.Base, Rate: rate}, nil
}

// Scalar converts a raw rate into whole-token units: 10^base.decimals / 10^quote.decimals.
func (p Price) Scalar() fraction.Fraction {
	return fraction.Fraction{
		Numerator:   pow10(p.Base.Decimals),
		Denominator: pow10(p.Quote.Decimals),
	}
}

// Adjusted is the rate in whole-token units.
func (p Price) Adjusted() fraction.Fraction {
	return p.Rate.Multiply(p.Scalar())
}

// ToFixed renders the decimal-adjusted price.
func (p Price) ToFixed(decimals int) string {
	return p.Adjusted().ToFixed(decimals)
}

func (p Price) String() string {
	return fmt.Sprintf("1 %s = %s %s", p.Base, p.ToFixed(int(p.Quote.Decimals)), p.Quote)
}

func pow10(exp uint8) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil)
}
