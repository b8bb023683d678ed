package dex

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"joeRoute/internal/model"
)

// Deployment holds the constants a factory deployment derives pair
// addresses from.
type Deployment struct {
	ChainID      uint64
	Factory      common.Address
	InitCodeHash common.Hash
}

// TraderJoeAvalanche is the Joe V1 factory on Avalanche C-Chain.
var TraderJoeAvalanche = Deployment{
	ChainID:      43114,
	Factory:      common.HexToAddress("0x9ad6c38be94206ca50bb0d90783181662f0cfa10"),
	InitCodeHash: common.HexToHash("0x0bbca9af0511ad1a1da383135cf3a8d2ac620e549ef9f6ae3a4c33c2fed0af91"),
}

// Validate checks that the deployment constants are set.
func (d Deployment) Validate() error {
	if d.ChainID == 0 {
		return fmt.Errorf("%w: deployment chain id is zero", model.ErrInvalidInput)
	}
	if d.Factory == (common.Address{}) {
		return fmt.Errorf("%w: deployment factory is zero", model.ErrInvalidInput)
	}
	if d.InitCodeHash == (common.Hash{}) {
		return fmt.Errorf("%w: deployment init code hash is zero", model.ErrInvalidInput)
	}
	return nil
}

// ComputePairAddress derives the CREATE2 address of the pool for the
// canonically ordered token0/token1:
//
//	keccak256(0xff ++ factory ++ keccak256(token0 ++ token1) ++ initCodeHash)[12:]
func ComputePairAddress(d Deployment, token0, token1 common.Address) common.Address {
	salt := crypto.Keccak256Hash(token0.Bytes(), token1.Bytes())
	return crypto.CreateAddress2(d.Factory, salt, d.InitCodeHash.Bytes())
}
