package config

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"joeRoute/internal/model"
)

// ParseAddress converts a hex string into common.Address.
func ParseAddress(input string) (common.Address, error) {
	input = strings.TrimSpace(input)
	if !common.IsHexAddress(input) {
		return common.Address{}, fmt.Errorf("%w: invalid address %q", model.ErrInvalidInput, input)
	}
	return common.HexToAddress(input), nil
}

// ParseAddresses converts string addresses into common.Address, skipping
// blank entries.
func ParseAddresses(inputs []string) ([]common.Address, error) {
	addresses := make([]common.Address, 0, len(inputs))
	for _, input := range inputs {
		if strings.TrimSpace(input) == "" {
			continue
		}
		address, err := ParseAddress(input)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, address)
	}
	return addresses, nil
}

// ParseHash converts a 0x-prefixed 32-byte hex string into common.Hash.
func ParseHash(input string) (common.Hash, error) {
	input = strings.TrimSpace(input)
	data, err := hexutil.Decode(input)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: invalid hash %q", model.ErrInvalidInput, input)
	}
	if len(data) != common.HashLength {
		return common.Hash{}, fmt.Errorf("%w: invalid hash length %d", model.ErrInvalidInput, len(data))
	}
	return common.BytesToHash(data), nil
}
