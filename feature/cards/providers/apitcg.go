package providers

import (
	"context"
	"fmt"
	"net/url"

	"card-catalog/feature/cards/models"

	"go.uber.org/zap"
)

const ProviderAPITCG = "apitcg"

var apitcgSlugs = map[models.Game]string{
	models.GameOnePiece:         "one-piece",
	models.GameDragonBallFusion: "dragon-ball-fusion",
	models.GameDigimon:          "digimon",
	models.GameUnionArena:       "union-arena",
	models.GameGundam:           "gundam",
	models.GameStarWars:         "star-wars-unlimited",
	models.GameRiftbound:        "riftbound",
}

// APITCGGames lists the games served by the multi-game catalog.
func APITCGGames() []models.Game {
	out := make([]models.Game, 0, len(apitcgSlugs))
	for _, g := range models.Games() {
		if _, ok := apitcgSlugs[g]; ok {
			out = append(out, g)
		}
	}
	return out
}

// APITCG queries one game of the multi-game catalog. The catalog returns full result
// sets; limit and offset are applied after the fetch.
type APITCG struct {
	req    *requester
	logger *zap.Logger
	game   models.Game
	slug   string
}

func NewAPITCG(opts Options, game models.Game) (*APITCG, error) {
	slug, ok := apitcgSlugs[game]
	if !ok {
		return nil, fmt.Errorf("apitcg does not serve game %q", game)
	}
	opts = opts.withDefaults()
	return &APITCG{
		req:    newRequester(ProviderAPITCG, opts, "x-api-key"),
		logger: opts.Logger,
		game:   game,
		slug:   slug,
	}, nil
}

func (p *APITCG) Name() string { return ProviderAPITCG }

func (p *APITCG) Search(ctx context.Context, query string, limit, offset int) ([]models.Card, error) {
	q := url.Values{}
	q.Set("name", query)

	cards, err := p.fetch(ctx, p.slug+".search", q)
	if err != nil {
		return nil, err
	}
	return window(cards, limit, offset), nil
}

func (p *APITCG) GetByID(ctx context.Context, id string) (*models.Card, error) {
	q := url.Values{}
	q.Set("id", id)

	cards, err := p.fetch(ctx, p.slug+".get", q)
	if err != nil || len(cards) == 0 {
		return nil, err
	}
	return &cards[0], nil
}

func (p *APITCG) fetch(ctx context.Context, operation string, q url.Values) ([]models.Card, error) {
	var resp listResponse
	if _, err := p.req.getJSON(ctx, operation, "/"+p.slug+"/cards", q, &resp); err != nil {
		return nil, err
	}
	return normalizeAll(p.logger, ProviderAPITCG, resp.Data, p.normalize), nil
}

func (p *APITCG) normalize(raw map[string]any) models.Card {
	c := models.Card{
		ID:     firstString(raw, "id", "code"),
		Name:   str(raw, "name"),
		Game:   p.game,
		Rarity: str(raw, "rarity"),
		Extra:  extras(raw),
	}
	switch set := raw["set"].(type) {
	case string:
		c.Set = set
	case map[string]any:
		c.Set = str(set, "name")
	}
	c.Image = firstString(object(raw, "images"), "large", "small")
	return c
}
