package providers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"card-catalog/core/resilience"
	"card-catalog/feature/cards/models"

	"go.uber.org/zap"
)

// Provider is one upstream card catalog.
type Provider interface {
	// Name identifies the provider in logs, breaker keys and cached payload sources.
	Name() string
	// Search returns matching cards in provider order.
	Search(ctx context.Context, query string, limit, offset int) ([]models.Card, error)
	// GetByID returns the card or nil when the catalog has no such card.
	GetByID(ctx context.Context, id string) (*models.Card, error)
}

// Options are shared by every adapter constructor.
type Options struct {
	BaseURL    string
	APIKey     string
	UserAgent  string
	HTTPClient *http.Client
	Executor   *resilience.Executor
	Logger     *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if o.Executor == nil {
		o.Executor = resilience.New(o.Logger)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Registry maps games to the provider serving them.
type Registry struct {
	providers map[models.Game]Provider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[models.Game]Provider)}
}

// NewDefaultRegistry wires every supported game to its catalog.
func NewDefaultRegistry(cfg Config, exec *resilience.Executor, logger *zap.Logger) (*Registry, error) {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 15
	}
	client := &http.Client{Timeout: time.Duration(timeout) * time.Second}
	base := Options{UserAgent: cfg.UserAgent, HTTPClient: client, Executor: exec, Logger: logger}

	r := NewRegistry()

	ygo := base
	ygo.BaseURL = cfg.YGOBaseURL
	r.Register(models.GameYuGiOh, NewYGO(ygo))

	pokemon := base
	pokemon.BaseURL = cfg.PokemonBaseURL
	pokemon.APIKey = cfg.PokemonAPIKey
	r.Register(models.GamePokemon, NewPokemon(pokemon))

	scryfall := base
	scryfall.BaseURL = cfg.ScryfallBaseURL
	r.Register(models.GameMagic, NewScryfall(scryfall))

	apitcg := base
	apitcg.BaseURL = cfg.APITCGBaseURL
	apitcg.APIKey = cfg.APITCGAPIKey
	for _, game := range APITCGGames() {
		p, err := NewAPITCG(apitcg, game)
		if err != nil {
			return nil, err
		}
		r.Register(game, p)
	}
	return r, nil
}

// Register binds game to p, replacing any previous provider.
func (r *Registry) Register(game models.Game, p Provider) {
	r.providers[game] = p
}

// Provider returns the provider for game.
func (r *Registry) Provider(game models.Game) (Provider, bool) {
	p, ok := r.providers[game]
	return p, ok
}

// Games lists the supported games sorted by name.
func (r *Registry) Games() []models.Game {
	out := make([]models.Game, 0, len(r.providers))
	for g := range r.providers {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
