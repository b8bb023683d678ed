package dex

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"joeRoute/internal/model"
)

// ContractCaller is the subset of an RPC client the fetcher needs.
type ContractCaller interface {
	ChainID(ctx context.Context) (*big.Int, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// TokenCache caches token metadata by address. Token metadata is immutable
// so entries never expire.
type TokenCache struct {
	mu   sync.RWMutex
	data map[common.Address]model.Token
}

func NewTokenCache() *TokenCache {
	return &TokenCache{data: make(map[common.Address]model.Token)}
}

func (c *TokenCache) Get(address common.Address) (model.Token, bool) {
	c.mu.RLock()
	token, ok := c.data[address]
	c.mu.RUnlock()
	return token, ok
}

func (c *TokenCache) Set(token model.Token) {
	c.mu.Lock()
	c.data[token.Address] = token
	c.mu.Unlock()
}

// FetcherConfig controls RPC retries and reserve caching.
type FetcherConfig struct {
	MaxRetries   int
	RetryBackoff time.Duration
	// ReserveTTL is how long fetched reserves are reused. Zero disables
	// reserve caching.
	ReserveTTL time.Duration
	// Concurrency bounds parallel RPC calls in FetchTokens and FetchPairs.
	Concurrency int
}

type reserves struct {
	reserve0 *big.Int
	reserve1 *big.Int
}

// Fetcher loads Token and Pair records from chain.
type Fetcher struct {
	cfg      FetcherConfig
	caller   ContractCaller
	resolver *Resolver
	tokens   *TokenCache
	reserves *cache.Cache
	logger   *zap.Logger

	chainMu sync.Mutex
	chainID uint64
}

// NewFetcher builds a Fetcher. The resolver's deployment decides which chain
// the caller must be connected to.
func NewFetcher(cfg FetcherConfig, caller ContractCaller, resolver *Resolver, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	var reserveCache *cache.Cache
	if cfg.ReserveTTL > 0 {
		reserveCache = cache.New(cfg.ReserveTTL, 2*cfg.ReserveTTL)
	}
	return &Fetcher{
		cfg:      cfg,
		caller:   caller,
		resolver: resolver,
		tokens:   NewTokenCache(),
		reserves: reserveCache,
		logger:   logger,
	}
}

// ChainID returns the connected chain id, verified against the deployment.
func (f *Fetcher) ChainID(ctx context.Context) (uint64, error) {
	f.chainMu.Lock()
	defer f.chainMu.Unlock()
	if f.chainID != 0 {
		return f.chainID, nil
	}
	if f.caller == nil {
		return 0, fmt.Errorf("contract caller is nil")
	}

	var chainID *big.Int
	err := withRetry(ctx, f.logger, "chain_id", f.cfg.MaxRetries, f.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		chainID, err = f.caller.ChainID(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("get chain id: %w", err)
	}
	if !chainID.IsUint64() {
		return 0, fmt.Errorf("chain id does not fit in uint64: %s", chainID)
	}
	if want := f.resolver.Deployment().ChainID; chainID.Uint64() != want {
		return 0, fmt.Errorf("%w: rpc chain id %s, deployment chain id %d", model.ErrInvalidInput, chainID, want)
	}
	f.chainID = chainID.Uint64()
	return f.chainID, nil
}

// FetchToken loads ERC20 metadata for address. decimals is required; name
// and symbol fall back to the bytes32 ABI and are left empty when neither
// form answers.
func (f *Fetcher) FetchToken(ctx context.Context, address common.Address) (model.Token, error) {
	if token, ok := f.tokens.Get(address); ok {
		return token, nil
	}

	chainID, err := f.ChainID(ctx)
	if err != nil {
		return model.Token{}, err
	}

	stringABI, err := ERC20ABI()
	if err != nil {
		return model.Token{}, fmt.Errorf("parse erc20 string abi: %w", err)
	}
	bytes32ABI, err := ERC20Bytes32ABI()
	if err != nil {
		return model.Token{}, fmt.Errorf("parse erc20 bytes32 abi: %w", err)
	}

	token := model.Token{Address: address, ChainID: chainID}

	values, err := f.call(ctx, address, stringABI, "decimals", nil)
	if err != nil {
		return model.Token{}, fmt.Errorf("token %s: %w", address.Hex(), err)
	}
	decimals, err := asUint8(values[0])
	if err != nil {
		return model.Token{}, fmt.Errorf("token %s decimals: %w", address.Hex(), err)
	}
	token.Decimals = decimals

	token.Symbol = f.callText(ctx, address, stringABI, bytes32ABI, "symbol")
	token.Name = f.callText(ctx, address, stringABI, bytes32ABI, "name")

	f.tokens.Set(token)
	return token, nil
}

// FetchTokens loads metadata for every address, preserving order.
func (f *Fetcher) FetchTokens(ctx context.Context, addresses []common.Address) ([]model.Token, error) {
	tokens := make([]model.Token, len(addresses))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(f.cfg.Concurrency)
	for i, address := range addresses {
		i, address := i, address
		eg.Go(func() error {
			token, err := f.FetchToken(egCtx, address)
			if err != nil {
				return err
			}
			tokens[i] = token
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return tokens, nil
}

// FetchPair resolves the pool for tokenA/tokenB and loads its latest
// reserves.
func (f *Fetcher) FetchPair(ctx context.Context, tokenA, tokenB model.Token) (model.Pair, error) {
	return f.fetchPair(ctx, tokenA, tokenB, nil)
}

// FetchPairAt is FetchPair with reserves read at blockNumber.
func (f *Fetcher) FetchPairAt(ctx context.Context, tokenA, tokenB model.Token, blockNumber uint64) (model.Pair, error) {
	return f.fetchPair(ctx, tokenA, tokenB, new(big.Int).SetUint64(blockNumber))
}

func (f *Fetcher) fetchPair(ctx context.Context, tokenA, tokenB model.Token, blockNumber *big.Int) (model.Pair, error) {
	token0, token1, err := model.SortTokens(tokenA, tokenB)
	if err != nil {
		return model.Pair{}, fmt.Errorf("fetch pair: %w", err)
	}
	address, err := f.resolver.Resolve(ctx, token0, token1)
	if err != nil {
		return model.Pair{}, fmt.Errorf("fetch pair: %w", err)
	}

	res, err := f.fetchReserves(ctx, address, blockNumber)
	if err != nil {
		return model.Pair{}, fmt.Errorf("pair %s reserves: %w", address.Hex(), err)
	}

	return model.NewPair(address, token0, res.reserve0, token1, res.reserve1)
}

// FetchPairs loads the pair between each consecutive pair of tokens in
// path. The result has len(path)-1 entries in path order.
func (f *Fetcher) FetchPairs(ctx context.Context, path []model.Token) ([]model.Pair, error) {
	return f.fetchPairs(ctx, path, nil)
}

// FetchPairsAt is FetchPairs with every pair's reserves read at blockNumber,
// so the whole path reflects one chain state.
func (f *Fetcher) FetchPairsAt(ctx context.Context, path []model.Token, blockNumber uint64) ([]model.Pair, error) {
	return f.fetchPairs(ctx, path, new(big.Int).SetUint64(blockNumber))
}

func (f *Fetcher) fetchPairs(ctx context.Context, path []model.Token, blockNumber *big.Int) ([]model.Pair, error) {
	if len(path) < 2 {
		return nil, fmt.Errorf("%w: path needs at least two tokens, got %d", model.ErrInvalidInput, len(path))
	}
	pairs := make([]model.Pair, len(path)-1)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(f.cfg.Concurrency)
	for i := 0; i < len(path)-1; i++ {
		i := i
		eg.Go(func() error {
			pair, err := f.fetchPair(egCtx, path[i], path[i+1], blockNumber)
			if err != nil {
				return err
			}
			pairs[i] = pair
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return pairs, nil
}

// fetchReserves reads getReserves at blockNumber, or at latest when nil.
func (f *Fetcher) fetchReserves(ctx context.Context, pair common.Address, blockNumber *big.Int) (reserves, error) {
	key := pair.Hex() + "@latest"
	if blockNumber != nil {
		key = pair.Hex() + "@" + blockNumber.String()
	}
	if f.reserves != nil {
		if cached, ok := f.reserves.Get(key); ok {
			res := cached.(reserves)
			return reserves{
				reserve0: new(big.Int).Set(res.reserve0),
				reserve1: new(big.Int).Set(res.reserve1),
			}, nil
		}
	}

	parsed, err := PairABI()
	if err != nil {
		return reserves{}, fmt.Errorf("parse pair abi: %w", err)
	}
	values, err := f.call(ctx, pair, parsed, "getReserves", blockNumber)
	if err != nil {
		return reserves{}, err
	}
	if len(values) < 2 {
		return reserves{}, fmt.Errorf("getReserves return size %d", len(values))
	}
	reserve0, err := asBigInt(values[0])
	if err != nil {
		return reserves{}, fmt.Errorf("reserve0: %w", err)
	}
	reserve1, err := asBigInt(values[1])
	if err != nil {
		return reserves{}, fmt.Errorf("reserve1: %w", err)
	}

	res := reserves{reserve0: reserve0, reserve1: reserve1}
	if f.reserves != nil {
		f.reserves.SetDefault(key, reserves{
			reserve0: new(big.Int).Set(reserve0),
			reserve1: new(big.Int).Set(reserve1),
		})
	}
	f.logger.Debug("pair reserves fetched",
		zap.String("pair", pair.Hex()),
		zap.String("block", blockLabel(blockNumber)),
		zap.String("reserve0", reserve0.String()),
		zap.String("reserve1", reserve1.String()),
	)
	return res, nil
}

func (f *Fetcher) call(ctx context.Context, to common.Address, parsed abi.ABI, method string, blockNumber *big.Int) ([]interface{}, error) {
	if f.caller == nil {
		return nil, fmt.Errorf("contract caller is nil")
	}
	data, err := parsed.Pack(method)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	msg := ethereum.CallMsg{To: &to, Data: data}

	var resp []byte
	err = withRetry(ctx, f.logger, method, f.cfg.MaxRetries, f.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		resp, err = f.caller.CallContract(ctx, msg, blockNumber)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	values, err := parsed.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("unpack %s: empty result", method)
	}
	return values, nil
}

// callText reads a string-valued method, trying the string ABI first and
// the bytes32 ABI second.
func (f *Fetcher) callText(ctx context.Context, token common.Address, stringABI, bytes32ABI abi.ABI, method string) string {
	if values, err := f.call(ctx, token, stringABI, method, nil); err == nil {
		if text, ok := values[0].(string); ok {
			return text
		}
	}
	values, err := f.call(ctx, token, bytes32ABI, method, nil)
	if err != nil {
		f.logger.Debug("token text call failed", zap.String("token", token.Hex()), zap.String("method", method), zap.Error(err))
		return ""
	}
	text, _ := bytes32ToString(values[0])
	return text
}

func blockLabel(blockNumber *big.Int) string {
	if blockNumber == nil {
		return "latest"
	}
	return blockNumber.String()
}

func bytes32ToString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case [32]byte:
		return string(bytes.TrimRight(v[:], "\x00")), true
	case []byte:
		return string(bytes.TrimRight(v, "\x00")), true
	default:
		return "", false
	}
}

func asBigInt(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		return new(big.Int).Set(v), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	default:
		return nil, fmt.Errorf("unsupported int type %T", value)
	}
}

func asUint8(value interface{}) (uint8, error) {
	switch v := value.(type) {
	case uint8:
		return v, nil
	case *big.Int:
		if !v.IsUint64() || v.Uint64() > 255 {
			return 0, fmt.Errorf("uint8 overflow: %s", v)
		}
		return uint8(v.Uint64()), nil
	default:
		return 0, fmt.Errorf("unsupported uint8 type %T", value)
	}
}
