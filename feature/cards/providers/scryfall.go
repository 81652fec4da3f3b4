package providers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"card-catalog/core/utils"
	"card-catalog/feature/cards/models"

	"go.uber.org/zap"
)

const ProviderScryfall = "scryfall"

// Scryfall queries the Scryfall Magic catalog.
type Scryfall struct {
	req    *requester
	logger *zap.Logger
}

func NewScryfall(opts Options) *Scryfall {
	opts = opts.withDefaults()
	return &Scryfall{req: newRequester(ProviderScryfall, opts, ""), logger: opts.Logger}
}

func (p *Scryfall) Name() string { return ProviderScryfall }

// scryfallPageSize is the fixed number of cards on a Scryfall search page.
const scryfallPageSize = 175

type scryfallList struct {
	Data    []map[string]any `json:"data"`
	HasMore bool             `json:"has_more"`
}

// Search uses Scryfall's full-text syntax sorted by name. Scryfall answers 404 when nothing
// matches, which is an empty result. Pages are fixed-size, so the page holding offset is
// fetched first and the following page only when the window runs past it.
func (p *Scryfall) Search(ctx context.Context, query string, limit, offset int) ([]models.Card, error) {
	if offset < 0 {
		offset = 0
	}
	pageNum := page(scryfallPageSize, offset)
	skip := offset % scryfallPageSize

	var raw []map[string]any
	for {
		resp, found, err := p.searchPage(ctx, query, pageNum)
		if err != nil {
			return nil, err
		}
		if !found {
			break
		}
		raw = append(raw, resp.Data...)
		if !resp.HasMore || limit <= 0 || len(raw) >= skip+limit {
			break
		}
		pageNum++
	}
	if skip >= len(raw) {
		return []models.Card{}, nil
	}

	cards := normalizeAll(p.logger, ProviderScryfall, raw[skip:], normalizeScryfall)
	return window(cards, limit, 0), nil
}

func (p *Scryfall) searchPage(ctx context.Context, query string, pageNum int) (scryfallList, bool, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("unique", "cards")
	q.Set("order", "name")
	q.Set("dir", "auto")
	q.Set("page", strconv.Itoa(pageNum))

	var resp scryfallList
	found, err := p.req.getJSON(ctx, "search", "/cards/search", q, &resp, http.StatusNotFound)
	return resp, found, err
}

func (p *Scryfall) GetByID(ctx context.Context, id string) (*models.Card, error) {
	var raw map[string]any
	found, err := p.req.getJSON(ctx, "get", "/cards/"+url.PathEscape(id), nil, &raw, http.StatusNotFound)
	if err != nil || !found {
		return nil, err
	}
	c := normalizeScryfall(raw)
	if !c.Valid() {
		return nil, nil
	}
	return &c, nil
}

func normalizeScryfall(raw map[string]any) models.Card {
	c := models.Card{
		ID:     str(raw, "id"),
		Name:   str(raw, "name"),
		Game:   models.GameMagic,
		Rarity: str(raw, "rarity"),
		Set:    firstString(raw, "set_name", "set"),
		Extra:  extras(raw),
	}
	uris := object(raw, "image_uris")
	if uris == nil {
		// Double-faced cards carry images per face.
		uris = object(firstObject(raw, "card_faces"), "image_uris")
	}
	c.Image = firstString(uris, "large", "normal", "small")
	c.Price = utils.ToFloat(object(raw, "prices")["usd"])
	return c
}
