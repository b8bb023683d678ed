package postgres

import (
	"context"
	"fmt"
	"math/big"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"joeRoute/internal/model"
)

// Schema creates the tables written by Store.
const Schema = `
CREATE TABLE IF NOT EXISTS pairs (
	chain_id      BIGINT  NOT NULL,
	pair_address  TEXT    NOT NULL,
	token0        TEXT    NOT NULL,
	token1        TEXT    NOT NULL,
	symbol0       TEXT    NOT NULL DEFAULT '',
	symbol1       TEXT    NOT NULL DEFAULT '',
	decimals0     INTEGER NOT NULL,
	decimals1     INTEGER NOT NULL,
	reserve0      NUMERIC NOT NULL,
	reserve1      NUMERIC NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (chain_id, pair_address)
);

CREATE TABLE IF NOT EXISTS route_quotes (
	id            BIGSERIAL PRIMARY KEY,
	chain_id      BIGINT  NOT NULL,
	block_number  BIGINT  NOT NULL,
	input_token   TEXT    NOT NULL,
	output_token  TEXT    NOT NULL,
	path          TEXT[]  NOT NULL,
	pairs         TEXT[]  NOT NULL,
	numerator     NUMERIC NOT NULL,
	denominator   NUMERIC NOT NULL,
	mid_price     TEXT    NOT NULL,
	quoted_at     TIMESTAMPTZ NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Store provides Postgres persistence for pairs and route quotes.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%w: pg dsn is required", model.ErrInvalidInput)
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates missing tables.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, Schema)
	return err
}

// UpsertPairs inserts or refreshes pair metadata and reserves.
func (s *Store) UpsertPairs(ctx context.Context, pairs []model.Pair) error {
	if len(pairs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, pair := range pairs {
		batch.Queue(`
			INSERT INTO pairs (
				chain_id, pair_address, token0, token1, symbol0, symbol1,
				decimals0, decimals1, reserve0, reserve1, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
			ON CONFLICT (chain_id, pair_address)
			DO UPDATE SET
				reserve0 = EXCLUDED.reserve0,
				reserve1 = EXCLUDED.reserve1,
				symbol0 = EXCLUDED.symbol0,
				symbol1 = EXCLUDED.symbol1,
				updated_at = now()
		`, pairArgs(pair)...)
	}
	return execBatch(ctx, s.pool, batch, len(pairs))
}

// InsertQuotes appends route quotes.
func (s *Store) InsertQuotes(ctx context.Context, quotes []model.Quote) error {
	if len(quotes) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, q := range quotes {
		batch.Queue(`
			INSERT INTO route_quotes (
				chain_id, block_number, input_token, output_token, path, pairs,
				numerator, denominator, mid_price, quoted_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8::numeric, $9, $10::timestamptz)
		`, quoteArgs(q)...)
	}
	return execBatch(ctx, s.pool, batch, len(quotes))
}

func pairArgs(pair model.Pair) []any {
	return []any{
		int64(pair.ChainID),
		pair.Address.Hex(),
		pair.Token0.Address.Hex(),
		pair.Token1.Address.Hex(),
		pair.Token0.Symbol,
		pair.Token1.Symbol,
		int32(pair.Token0.Decimals),
		int32(pair.Token1.Decimals),
		decimalString(pair.Reserve0),
		decimalString(pair.Reserve1),
	}
}

func quoteArgs(q model.Quote) []any {
	return []any{
		int64(q.ChainID),
		int64(q.BlockNumber),
		q.Input,
		q.Output,
		q.Path,
		q.Pairs,
		q.Numerator,
		q.Denominator,
		q.MidPrice,
		q.QuotedAt,
	}
}

func execBatch(ctx context.Context, pool *pgxpool.Pool, batch *pgx.Batch, n int) error {
	br := pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < n; i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch statement %d: %w", i, err)
		}
	}
	return nil
}

func decimalString(value *big.Int) string {
	if value == nil {
		return "0"
	}
	return value.String()
}
