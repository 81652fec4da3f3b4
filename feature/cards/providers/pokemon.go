package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"card-catalog/core/utils"
	"card-catalog/feature/cards/models"

	"go.uber.org/zap"
)

const ProviderPokemon = "pokemontcg"

// Pokemon queries the Pokémon TCG API.
type Pokemon struct {
	req    *requester
	logger *zap.Logger
}

func NewPokemon(opts Options) *Pokemon {
	opts = opts.withDefaults()
	return &Pokemon{req: newRequester(ProviderPokemon, opts, "X-Api-Key"), logger: opts.Logger}
}

func (p *Pokemon) Name() string { return ProviderPokemon }

// Search issues a name prefix query (name:<query>*), paging by limit.
func (p *Pokemon) Search(ctx context.Context, query string, limit, offset int) ([]models.Card, error) {
	q := url.Values{}
	q.Set("q", nameQuery(query))
	q.Set("pageSize", strconv.Itoa(limit))
	q.Set("page", strconv.Itoa(page(limit, offset)))

	var resp listResponse
	if _, err := p.req.getJSON(ctx, "search", "/cards", q, &resp); err != nil {
		return nil, err
	}
	return normalizeAll(p.logger, ProviderPokemon, resp.Data, normalizePokemon), nil
}

func (p *Pokemon) GetByID(ctx context.Context, id string) (*models.Card, error) {
	var resp objectResponse
	found, err := p.req.getJSON(ctx, "get", "/cards/"+url.PathEscape(id), nil, &resp, http.StatusNotFound)
	if err != nil || !found || resp.Data == nil {
		return nil, err
	}
	c := normalizePokemon(resp.Data)
	if !c.Valid() {
		return nil, nil
	}
	return &c, nil
}

func nameQuery(query string) string {
	query = strings.TrimSpace(query)
	if strings.ContainsAny(query, " \t") {
		return fmt.Sprintf(`name:"%s*"`, strings.ReplaceAll(query, `"`, ""))
	}
	return "name:" + query + "*"
}

// tcgplayerVariants is the preference order of printings for the market price.
var tcgplayerVariants = []string{"normal", "holofoil", "reverseHolofoil", "1stEditionHolofoil", "1stEditionNormal", "unlimitedHolofoil"}

func normalizePokemon(raw map[string]any) models.Card {
	c := models.Card{
		ID:     str(raw, "id"),
		Name:   str(raw, "name"),
		Game:   models.GamePokemon,
		Rarity: str(raw, "rarity"),
		Set:    str(object(raw, "set"), "name"),
		Extra:  extras(raw),
	}
	c.Image = firstString(object(raw, "images"), "large", "small")
	c.Price = tcgplayerMarket(object(object(raw, "tcgplayer"), "prices"))
	return c
}

func tcgplayerMarket(prices map[string]any) float64 {
	if prices == nil {
		return 0
	}
	seen := make(map[string]bool, len(tcgplayerVariants))
	for _, v := range tcgplayerVariants {
		seen[v] = true
		if m := utils.ToFloat(object(prices, v)["market"]); m > 0 {
			return m
		}
	}
	for _, v := range sortedKeys(prices) {
		if seen[v] {
			continue
		}
		if m := utils.ToFloat(object(prices, v)["market"]); m > 0 {
			return m
		}
	}
	return 0
}
