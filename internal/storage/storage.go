package storage

import "joeRoute/internal/model"

// Storage defines a sink for route quotes.
type Storage interface {
	PutQuoteBatch(quotes []model.Quote) error
}
