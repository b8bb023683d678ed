package model

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Token is an ERC20 asset on a specific chain.
type Token struct {
	Address  common.Address `json:"address"`
	Name     string         `json:"name"`
	Symbol   string         `json:"symbol"`
	Decimals uint8          `json:"decimals"`
	ChainID  uint64         `json:"chain_id"`
}

// Equal reports whether t and other identify the same asset. Only the
// address and chain id take part; name, symbol and decimals are descriptive.
func (t Token) Equal(other Token) bool {
	return t.Address == other.Address && t.ChainID == other.ChainID
}

// SortsBefore reports whether t orders before other by ascending address.
// Comparing tokens from different chains, or a token with itself, is an error.
func (t Token) SortsBefore(other Token) (bool, error) {
	if t.ChainID != other.ChainID {
		return false, fmt.Errorf("%w: chain id mismatch %d != %d", ErrInvalidInput, t.ChainID, other.ChainID)
	}
	if t.Address == other.Address {
		return false, fmt.Errorf("%w: identical token address %s", ErrInvalidInput, t.Address.Hex())
	}
	return bytes.Compare(t.Address.Bytes(), other.Address.Bytes()) < 0, nil
}

// SortTokens returns a and b in canonical (ascending address) order.
func SortTokens(a, b Token) (Token, Token, error) {
	before, err := a.SortsBefore(b)
	if err != nil {
		return Token{}, Token{}, err
	}
	if before {
		return a, b, nil
	}
	return b, a, nil
}

func (t Token) String() string {
	if t.Symbol == "" {
		return t.Address.Hex()
	}
	return fmt.Sprintf("%s(%s)", t.Symbol, t.Address.Hex())
}

// FormatAmount renders a raw integer amount in whole token units with the
// token's full decimal precision.
func (t Token) FormatAmount(raw *big.Int) string {
	if raw == nil {
		return "0"
	}
	if t.Decimals == 0 {
		return raw.String()
	}
	abs := new(big.Int).Abs(raw)
	unit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(t.Decimals)), nil)
	text := new(big.Rat).SetFrac(abs, unit).FloatString(int(t.Decimals))
	if raw.Sign() < 0 {
		return "-" + text
	}
	return text
}
