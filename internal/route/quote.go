package route

import (
	"time"

	"joeRoute/internal/model"
)

// Quote snapshots the route mid price for storage. decimals is the display
// precision of the decimal-adjusted MidPrice field.
func (r *Route) Quote(blockNumber uint64, decimals int, quotedAt time.Time) model.Quote {
	path := make([]string, 0, len(r.path))
	for _, token := range r.path {
		path = append(path, token.Address.Hex())
	}
	pairs := make([]string, 0, len(r.pairs))
	for _, pair := range r.pairs {
		pairs = append(pairs, pair.Address.Hex())
	}

	return model.Quote{
		ChainID:     r.chainID,
		BlockNumber: blockNumber,
		Input:       r.input.Address.Hex(),
		Output:      r.output.Address.Hex(),
		Path:        path,
		Pairs:       pairs,
		Numerator:   r.midPrice.Rate.Numerator.String(),
		Denominator: r.midPrice.Rate.Denominator.String(),
		MidPrice:    r.midPrice.ToFixed(decimals),
		QuotedAt:    quotedAt.UTC().Format(time.RFC3339Nano),
	}
}
