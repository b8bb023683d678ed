package model

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Liquidity token attributes shared by every Joe V1 pool.
const (
	PairName     = "Joe Liquidity"
	PairSymbol   = "JLP"
	PairDecimals = 18
)

// Pair is a two-asset constant-product pool. Token0 always sorts before
// Token1 and Reserve0/Reserve1 follow the same order.
type Pair struct {
	Address  common.Address `json:"address"`
	Token0   Token          `json:"token0"`
	Token1   Token          `json:"token1"`
	Reserve0 *big.Int       `json:"reserve0"`
	Reserve1 *big.Int       `json:"reserve1"`
	ChainID  uint64         `json:"chain_id"`
	Name     string         `json:"name,omitempty"`
	Symbol   string         `json:"symbol,omitempty"`
	Decimals uint8          `json:"decimals,omitempty"`
}

// NewPair builds a Pair from two tokens in any order. reserveA belongs to
// tokenA and reserveB to tokenB; both move with their token when the pair is
// put into canonical order. Nil reserves are treated as zero.
func NewPair(address common.Address, tokenA Token, reserveA *big.Int, tokenB Token, reserveB *big.Int) (Pair, error) {
	before, err := tokenA.SortsBefore(tokenB)
	if err != nil {
		return Pair{}, fmt.Errorf("new pair: %w", err)
	}
	if !before {
		tokenA, tokenB = tokenB, tokenA
		reserveA, reserveB = reserveB, reserveA
	}
	return Pair{
		Address:  address,
		Token0:   tokenA,
		Token1:   tokenB,
		Reserve0: copyOrZero(reserveA),
		Reserve1: copyOrZero(reserveB),
		ChainID:  tokenA.ChainID,
		Name:     PairName,
		Symbol:   PairSymbol,
		Decimals: PairDecimals,
	}, nil
}

// InvolvesToken reports whether token is one of the pair's two tokens.
func (p Pair) InvolvesToken(token Token) bool {
	return p.Token0.Equal(token) || p.Token1.Equal(token)
}

// Other returns the pair token that is not token.
func (p Pair) Other(token Token) (Token, bool) {
	switch {
	case p.Token0.Equal(token):
		return p.Token1, true
	case p.Token1.Equal(token):
		return p.Token0, true
	default:
		return Token{}, false
	}
}

// ReserveOf returns the reserve held for token.
func (p Pair) ReserveOf(token Token) (*big.Int, error) {
	switch {
	case p.Token0.Equal(token):
		return copyOrZero(p.Reserve0), nil
	case p.Token1.Equal(token):
		return copyOrZero(p.Reserve1), nil
	default:
		return nil, fmt.Errorf("%w: token %s not in pair %s", ErrInvalidInput, token.Address.Hex(), p.Address.Hex())
	}
}

func copyOrZero(value *big.Int) *big.Int {
	if value == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(value)
}
