package querier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v2"
	"go.uber.org/zap"

	"github.com/darkclainer/camtrans/pkg/lexicon"
)

// Cached answers lookups from storage and asks the wrapped querier only for
// lemmas it has never seen. Failed lookups are not cached.
type Cached struct {
	querier Querier
	storage *Storage
	logger  *zap.Logger
}

func NewCached(querier Querier, storage *Storage, logger *zap.Logger) *Cached {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cached{
		querier: querier,
		storage: storage,
		logger:  logger,
	}
}

func (c *Cached) Lookup(ctx context.Context, lemma string) ([]lexicon.Candidate, error) {
	lemma = strings.ToLower(lemma)
	cached, err := c.storage.GetCandidates(lemma)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, badger.ErrKeyNotFound) {
		return nil, err
	}
	candidates, err := c.querier.Lookup(ctx, lemma)
	if err != nil {
		return nil, err
	}
	if err := c.storage.PutCandidates(lemma, candidates); err != nil {
		c.logger.Warn("Can not cache candidates", zap.String("lemma", lemma), zap.Error(err))
	}
	return candidates, nil
}

// Suggest delegates to the wrapped querier if it can suggest lemmas.
func (c *Cached) Suggest(lemma string, limit int) []string {
	if s, ok := c.querier.(lexicon.Suggester); ok {
		return s.Suggest(lemma, limit)
	}
	return nil
}

func (c *Cached) Close(ctx context.Context) error {
	var errs []error
	if closeErr := c.querier.Close(ctx); closeErr != nil {
		errs = append(errs, fmt.Errorf("querier close failed: %w", closeErr))
	}
	if closeErr := c.storage.Close(); closeErr != nil {
		errs = append(errs, fmt.Errorf("storage close failed: %w", closeErr))
	}
	if len(errs) != 0 {
		var strErrs []string
		for _, e := range errs {
			strErrs = append(strErrs, e.Error())
		}
		summary := strings.Join(strErrs, " AND ")
		return fmt.Errorf("while closing next errors happend: %s", summary)
	}
	return nil
}
