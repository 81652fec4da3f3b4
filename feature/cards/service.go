package cards

import (
	"context"
	"fmt"
	"strings"

	"card-catalog/core/cache"
	"card-catalog/feature/cards/models"
	"card-catalog/feature/cards/providers"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ProviderLookup resolves the provider serving a game.
type ProviderLookup interface {
	Provider(game models.Game) (providers.Provider, bool)
}

// Indexer receives every freshly fetched batch of cards.
type Indexer interface {
	IndexCards(ctx context.Context, cards []models.Card) error
}

// Service answers card queries from the cache, falling back to the providers and,
// when they fail, to whatever stale data the cache still holds.
type Service struct {
	providers ProviderLookup
	store     *cache.Store[models.Card]
	logger    *zap.Logger
	indexer   Indexer
	group     singleflight.Group
}

// Option configures a Service.
type Option func(*Service)

// WithIndexer feeds fresh fetches to ix.
func WithIndexer(ix Indexer) Option {
	return func(s *Service) { s.indexer = ix }
}

// NewService creates the card service.
func NewService(lookup ProviderLookup, store *cache.Store[models.Card], logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		providers: lookup,
		store:     store,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SearchCards returns the cards matching query in provider order.
// limit defaults to DefaultLimit and is capped at MaxLimit.
func (s *Service) SearchCards(ctx context.Context, game models.Game, query string, limit, offset int) ([]models.Card, error) {
	p, err := s.provider(game)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", ErrInvalidRequest)
	}
	if offset < 0 {
		return nil, fmt.Errorf("%w: negative offset %d", ErrInvalidRequest, offset)
	}
	limit = clampLimit(limit)

	key := cache.SearchKey(string(game), query, limit, offset)
	return s.resolve(ctx, key, p.Name(), func(ctx context.Context) ([]models.Card, error) {
		return p.Search(ctx, query, limit, offset)
	})
}

// GetCardByID returns one card. A card the catalog does not know is ErrNotFound and is
// remembered in the cache like any other answer.
func (s *Service) GetCardByID(ctx context.Context, game models.Game, id string) (*models.Card, error) {
	p, err := s.provider(game)
	if err != nil {
		return nil, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrInvalidRequest)
	}

	key := cache.EntityKey(string(game), id)
	cards, err := s.resolve(ctx, key, p.Name(), func(ctx context.Context) ([]models.Card, error) {
		card, err := p.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if card == nil {
			return []models.Card{}, nil
		}
		return []models.Card{*card}, nil
	})
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, game, id)
	}
	return &cards[0], nil
}

// ClearCache removes every cached payload.
func (s *Service) ClearCache(ctx context.Context) (int, error) {
	return s.store.Clear(ctx)
}

func (s *Service) provider(game models.Game) (providers.Provider, error) {
	p, ok := s.providers.Provider(game)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedGame, game)
	}
	return p, nil
}

func (s *Service) resolve(ctx context.Context, key, source string, fetch func(ctx context.Context) ([]models.Card, error)) ([]models.Card, error) {
	l := s.logger.With(zap.String("key", key), zap.String("provider", source))

	if p, ok := s.store.Read(ctx, key); ok && s.store.IsFresh(p) {
		l.Debug("Card cache hit", zap.Int("count", len(p.Data)))
		return p.Data, nil
	}
	l.Debug("Card cache miss")

	// The fetch outlives any one caller: a caller that gives up leaves it running for
	// the others. Attempts stay bounded by the executor's attempt timeout.
	ch := s.group.DoChan(key, func() (any, error) {
		fctx := context.WithoutCancel(ctx)
		cards, err := fetch(fctx)
		if err != nil {
			return nil, err
		}
		// Write failures are logged by the store and never fail the request.
		_ = s.store.Write(fctx, key, cards, source)
		s.index(fctx, l, cards)
		return cards, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		l.Debug("Caller left shared card fetch", zap.Error(ctx.Err()))
		return nil, ctx.Err()
	}

	err := res.Err
	if err == nil {
		cards := res.Val.([]models.Card)
		if res.Shared {
			cards = append([]models.Card(nil), cards...)
		}
		return cards, nil
	}

	if p, ok := s.store.Read(ctx, key); ok {
		l.Warn("Serving stale card data",
			zap.Duration("age", s.store.Age(p)),
			zap.Int("count", len(p.Data)),
			zap.Int("upstream_status", providers.StatusOf(err)),
			zap.Error(err))
		return p.Data, nil
	}
	l.Error("Card data unavailable", zap.Int("upstream_status", providers.StatusOf(err)), zap.Error(err))
	return nil, fmt.Errorf("%w: %w", ErrNoDataAvailable, err)
}

func (s *Service) index(ctx context.Context, l *zap.Logger, cards []models.Card) {
	if s.indexer == nil || len(cards) == 0 {
		return
	}
	if err := s.indexer.IndexCards(ctx, cards); err != nil {
		l.Warn("Indexing fetched cards failed", zap.Error(err))
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
