package dex

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/semaphore"

	"joeRoute/internal/model"
)

// pairKey is a canonically ordered token address pair under one deployment.
type pairKey struct {
	chainID      uint64
	factory      common.Address
	initCodeHash common.Hash
	token0       common.Address
	token1       common.Address
}

func newPairKey(d Deployment, token0, token1 common.Address) pairKey {
	return pairKey{
		chainID:      d.ChainID,
		factory:      d.Factory,
		initCodeHash: d.InitCodeHash,
		token0:       token0,
		token1:       token1,
	}
}

// AddressCache memoizes resolved pair addresses. Entries are written once
// per key and never invalidated. Keys carry the deployment, so one cache may
// back resolvers for several factories.
type AddressCache struct {
	// sem is a weight-one semaphore used as a mutex whose acquisition honours
	// the caller's context.
	sem  *semaphore.Weighted
	data map[pairKey]common.Address
}

func NewAddressCache() *AddressCache {
	return &AddressCache{
		sem:  semaphore.NewWeighted(1),
		data: make(map[pairKey]common.Address),
	}
}

// Get returns the cached address for the key.
func (c *AddressCache) Get(ctx context.Context, key pairKey) (common.Address, bool, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return common.Address{}, false, fmt.Errorf("%w: acquire pair address cache: %v", model.ErrLockFailure, err)
	}
	address, ok := c.data[key]
	c.sem.Release(1)
	return address, ok, nil
}

// Insert stores address under key unless an entry already exists, and
// returns whichever value the cache holds afterwards.
func (c *AddressCache) Insert(ctx context.Context, key pairKey, address common.Address) (common.Address, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return common.Address{}, fmt.Errorf("%w: acquire pair address cache: %v", model.ErrLockFailure, err)
	}
	defer c.sem.Release(1)

	if existing, ok := c.data[key]; ok {
		return existing, nil
	}
	c.data[key] = address
	return address, nil
}

// Len returns the number of cached entries.
func (c *AddressCache) Len(ctx context.Context) (int, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return 0, fmt.Errorf("%w: acquire pair address cache: %v", model.ErrLockFailure, err)
	}
	defer c.sem.Release(1)
	return len(c.data), nil
}
