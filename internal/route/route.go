// Package route validates chains of pools and prices them.
package route

import (
	"fmt"

	"joeRoute/internal/model"
	"joeRoute/internal/price"
)

// Route is a validated path of pairs leading from Input to Output.
// It is immutable once built.
type Route struct {
	chainID  uint64
	pairs    []model.Pair
	path     []model.Token
	input    model.Token
	output   model.Token
	midPrice price.Price
}

// New validates pairs as one connected path from input to output on chainID
// and computes its mid price.
func New(chainID uint64, pairs []model.Pair, input, output model.Token) (*Route, error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: route needs at least one pair", model.ErrInvariantViolation)
	}
	for i, pair := range pairs {
		if pair.ChainID != chainID {
			return nil, fmt.Errorf("%w: pair %d (%s) on chain %d, route on chain %d",
				model.ErrInvariantViolation, i, pair.Address.Hex(), pair.ChainID, chainID)
		}
	}
	if !pairs[0].InvolvesToken(input) {
		return nil, fmt.Errorf("%w: first pair does not contain input %s", model.ErrInvariantViolation, input.Address.Hex())
	}
	if !pairs[len(pairs)-1].InvolvesToken(output) {
		return nil, fmt.Errorf("%w: last pair does not contain output %s", model.ErrInvariantViolation, output.Address.Hex())
	}

	path := make([]model.Token, 0, len(pairs)+1)
	path = append(path, input)
	for i, pair := range pairs {
		current := path[len(path)-1]
		next, ok := pair.Other(current)
		if !ok {
			return nil, fmt.Errorf("%w: pair %d (%s) does not contain %s",
				model.ErrInvariantViolation, i, pair.Address.Hex(), current.Address.Hex())
		}
		path = append(path, next)
	}
	if last := path[len(path)-1]; !last.Equal(output) {
		return nil, fmt.Errorf("%w: path ends at %s, want output %s",
			model.ErrInvariantViolation, last.Address.Hex(), output.Address.Hex())
	}

	r := &Route{
		chainID: chainID,
		pairs:   append([]model.Pair(nil), pairs...),
		path:    path,
		input:   input,
		output:  output,
	}
	mid, err := price.Compose(r)
	if err != nil {
		return nil, fmt.Errorf("route mid price: %w", err)
	}
	r.midPrice = mid
	return r, nil
}

// Pairs returns a copy of the route's pairs in traversal order.
func (r *Route) Pairs() []model.Pair {
	return append([]model.Pair(nil), r.pairs...)
}

// Path returns a copy of the token path; len(Path()) == len(Pairs())+1.
func (r *Route) Path() []model.Token {
	return append([]model.Token(nil), r.path...)
}

func (r *Route) Input() model.Token {
	return r.input
}

func (r *Route) Output() model.Token {
	return r.output
}

func (r *Route) ChainID() uint64 {
	return r.chainID
}

// MidPrice is the price of Input in Output implied by the pair reserves.
func (r *Route) MidPrice() price.Price {
	return r.midPrice
}
