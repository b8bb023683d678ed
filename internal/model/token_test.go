package model

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

const (
	joeAddress   = "0x6e84a6216ea6dacc71ee8e6b0a5b7322eebc0fdd"
	wavaxAddress = "0xb31f66aa3c1e785363f0875a1b74e27b85fd66c7"
	usdcAddress  = "0xb97ef9ef8734c71904d8002f8b6bc66dd9c48a6e"
)

func newToken(address, symbol string, decimals uint8, chainID uint64) Token {
	return Token{
		Address:  common.HexToAddress(address),
		Name:     symbol,
		Symbol:   symbol,
		Decimals: decimals,
		ChainID:  chainID,
	}
}

func TestSortsBefore(t *testing.T) {
	wavax := newToken(wavaxAddress, "WAVAX", 18, 43114)
	joe := newToken(joeAddress, "JOE", 18, 43114)
	usdc := newToken(usdcAddress, "USDC", 6, 43114)

	cases := []struct {
		name string
		a, b Token
		want bool
	}{
		{"wavax after joe", wavax, joe, false},
		{"joe before wavax", joe, wavax, true},
		{"wavax before usdc", wavax, usdc, true},
	}
	for _, tc := range cases {
		got, err := tc.a.SortsBefore(tc.b)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestSortsBeforeAsymmetric(t *testing.T) {
	joe := newToken(joeAddress, "JOE", 18, 43114)
	wavax := newToken(wavaxAddress, "WAVAX", 18, 43114)

	ab, err := joe.SortsBefore(wavax)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ba, err := wavax.SortsBefore(joe)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ab == ba {
		t.Fatalf("sorts_before must be asymmetric")
	}
}

func TestSortsBeforeRejectsInvalidInput(t *testing.T) {
	joe := newToken(joeAddress, "JOE", 18, 43114)
	wavaxMainnet := newToken(wavaxAddress, "WAVAX", 18, 1)

	if _, err := joe.SortsBefore(wavaxMainnet); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for chain mismatch, got %v", err)
	}
	if _, err := joe.SortsBefore(joe); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for identical token, got %v", err)
	}
}

func TestTokenEqualIgnoresMetadata(t *testing.T) {
	a := newToken(joeAddress, "JOE", 18, 43114)
	b := newToken(joeAddress, "", 0, 43114)
	if !a.Equal(b) {
		t.Fatalf("tokens with same address and chain should be equal")
	}
	c := newToken(joeAddress, "JOE", 18, 1)
	if a.Equal(c) {
		t.Fatalf("tokens on different chains should differ")
	}
}

func TestFormatAmount(t *testing.T) {
	usdc := newToken(usdcAddress, "USDC", 6, 43114)
	raw := newToken("0x0000000000000000000000000000000000000001", "RAW", 0, 43114)

	cases := []struct {
		token Token
		value *big.Int
		want  string
	}{
		{usdc, big.NewInt(1_500_000), "1.500000"},
		{usdc, big.NewInt(-42), "-0.000042"},
		{usdc, nil, "0"},
		{raw, big.NewInt(12345), "12345"},
	}
	for _, tc := range cases {
		if got := tc.token.FormatAmount(tc.value); got != tc.want {
			t.Fatalf("%s FormatAmount(%v) = %s, want %s", tc.token.Symbol, tc.value, got, tc.want)
		}
	}
}
