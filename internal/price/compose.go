package price

import (
	"fmt"

	"joeRoute/internal/model"
)

// Compose folds the per-hop mid prices of hops from left to right into the
// price of the first path token in the last path token.
func Compose(hops Hops) (Price, error) {
	pairs := hops.Pairs()
	path := hops.Path()
	if len(pairs) == 0 {
		return Price{}, fmt.Errorf("%w: no pairs to compose", model.ErrInvariantViolation)
	}
	if len(path) != len(pairs)+1 {
		return Price{}, fmt.Errorf("%w: path has %d tokens for %d pairs", model.ErrInvariantViolation, len(path), len(pairs))
	}

	var composed Price
	for i, pair := range pairs {
		hop, err := FromPair(pair, path[i])
		if err != nil {
			return Price{}, fmt.Errorf("hop %d: %w", i, err)
		}
		if i == 0 {
			composed = hop
			continue
		}
		composed, err = composed.Multiply(hop)
		if err != nil {
			return Price{}, fmt.Errorf("hop %d: %w", i, err)
		}
	}

	input, output := path[0], path[len(path)-1]
	if !composed.Base.Equal(input) || !composed.Quote.Equal(output) {
		return Price{}, fmt.Errorf("%w: composed price %s/%s does not span %s/%s", model.ErrInvariantViolation,
			composed.Base.Address.Hex(), composed.Quote.Address.Hex(), input.Address.Hex(), output.Address.Hex())
	}
	return composed, nil
}
