package querier

import (
	"context"

	"github.com/darkclainer/camtrans/pkg/lexicon"
)

//go:generate go run github.com/vektra/mockery/cmd/mockery -name Querier -output ../mocks/

// Querier is a lexicon source owning resources that must be released.
type Querier interface {
	Lookup(ctx context.Context, lemma string) ([]lexicon.Candidate, error)
	Close(ctx context.Context) error
}
