package model

// Quote is the stored representation of a composed route mid price.
// Amount fields are decimal strings so they survive JSON and numeric
// columns without precision loss.
type Quote struct {
	ChainID     uint64   `json:"chain_id"`
	BlockNumber uint64   `json:"block_number"`
	Input       string   `json:"input"`
	Output      string   `json:"output"`
	Path        []string `json:"path"`
	Pairs       []string `json:"pairs"`
	Numerator   string   `json:"numerator"`
	Denominator string   `json:"denominator"`
	MidPrice    string   `json:"mid_price"`
	QuotedAt    string   `json:"quoted_at"`
}
