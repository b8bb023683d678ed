package dex

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"go.uber.org/zap"

	"joeRoute/internal/model"
)

// ResolverMetrics counts address cache lookups.
type ResolverMetrics struct {
	Hits   prometheus.Counter
	Misses prometheus.Counter
}

// NewResolverMetrics creates the cache counters and registers them on reg
// when it is non-nil.
func NewResolverMetrics(reg prometheus.Registerer) (*ResolverMetrics, error) {
	m := &ResolverMetrics{
		Hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pair_address_cache_hits_total",
			Help: "Pair address lookups served from the cache.",
		}),
		Misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pair_address_cache_misses_total",
			Help: "Pair address lookups that required a CREATE2 derivation.",
		}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.Hits, m.Misses} {
			if err := reg.Register(c); err != nil {
				return nil, fmt.Errorf("register resolver metrics: %w", err)
			}
		}
	}
	return m, nil
}

// Totals reads the current hit and miss counts.
func (m *ResolverMetrics) Totals() (hits, misses float64, err error) {
	if hits, err = counterValue(m.Hits); err != nil {
		return 0, 0, err
	}
	if misses, err = counterValue(m.Misses); err != nil {
		return 0, 0, err
	}
	return hits, misses, nil
}

func counterValue(c prometheus.Counter) (float64, error) {
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		return 0, fmt.Errorf("read counter: %w", err)
	}
	return metric.GetCounter().GetValue(), nil
}

// Resolver maps token pairs to their pool address for one deployment.
type Resolver struct {
	deployment Deployment
	cache      *AddressCache
	metrics    *ResolverMetrics
	logger     *zap.Logger
}

// NewResolver builds a Resolver. A nil cache gets a private one; a nil
// metrics value disables counting.
func NewResolver(deployment Deployment, cache *AddressCache, metrics *ResolverMetrics, logger *zap.Logger) (*Resolver, error) {
	if err := deployment.Validate(); err != nil {
		return nil, err
	}
	if cache == nil {
		cache = NewAddressCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		deployment: deployment,
		cache:      cache,
		metrics:    metrics,
		logger:     logger,
	}, nil
}

// Deployment returns the constants the resolver derives addresses from.
func (r *Resolver) Deployment() Deployment {
	return r.deployment
}

// Resolve returns the pool address for tokenA and tokenB in either order.
func (r *Resolver) Resolve(ctx context.Context, tokenA, tokenB model.Token) (common.Address, error) {
	if tokenA.ChainID != r.deployment.ChainID {
		return common.Address{}, fmt.Errorf("%w: token %s on chain %d, deployment on chain %d",
			model.ErrInvalidInput, tokenA.Address.Hex(), tokenA.ChainID, r.deployment.ChainID)
	}
	token0, token1, err := model.SortTokens(tokenA, tokenB)
	if err != nil {
		return common.Address{}, fmt.Errorf("resolve pair address: %w", err)
	}
	key := newPairKey(r.deployment, token0.Address, token1.Address)

	address, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.Error("pair address cache unavailable", zap.Error(err))
		return common.Address{}, err
	}
	if ok {
		r.countHit()
		return address, nil
	}

	r.countMiss()
	computed := ComputePairAddress(r.deployment, key.token0, key.token1)
	address, err = r.cache.Insert(ctx, key, computed)
	if err != nil {
		r.logger.Error("pair address cache unavailable", zap.Error(err))
		return common.Address{}, err
	}

	r.logger.Debug("pair address resolved",
		zap.String("token0", key.token0.Hex()),
		zap.String("token1", key.token1.Hex()),
		zap.String("pair", address.Hex()),
	)
	return address, nil
}

func (r *Resolver) countHit() {
	if r.metrics != nil {
		r.metrics.Hits.Inc()
	}
}

func (r *Resolver) countMiss() {
	if r.metrics != nil {
		r.metrics.Misses.Inc()
	}
}
