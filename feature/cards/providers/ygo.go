package providers

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strconv"

	"card-catalog/core/utils"
	"card-catalog/feature/cards/models"

	"go.uber.org/zap"
)

const ProviderYGO = "ygoprodeck"

// YGO queries the YGOPRODeck card database.
type YGO struct {
	req    *requester
	logger *zap.Logger
}

func NewYGO(opts Options) *YGO {
	opts = opts.withDefaults()
	req := newRequester(ProviderYGO, opts, "")
	req.absentBody = ygoNoMatch
	return &YGO{req: req, logger: opts.Logger}
}

// ygoNoMatch recognises the 400 YGOPRODeck sends when no card matches. Other 400s stay errors.
func ygoNoMatch(status int, body []byte) bool {
	return status == http.StatusBadRequest && bytes.Contains(bytes.ToLower(body), []byte("no card matching"))
}

func (p *YGO) Name() string { return ProviderYGO }

// Search runs a fuzzy name query. A response without data, or a no-match 400, yields no cards.
func (p *YGO) Search(ctx context.Context, query string, limit, offset int) ([]models.Card, error) {
	q := url.Values{}
	q.Set("fname", query)
	q.Set("num", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var resp listResponse
	if _, err := p.req.getJSON(ctx, "search", "/cardinfo.php", q, &resp); err != nil {
		return nil, err
	}
	return normalizeAll(p.logger, ProviderYGO, resp.Data, normalizeYGO), nil
}

func (p *YGO) GetByID(ctx context.Context, id string) (*models.Card, error) {
	q := url.Values{}
	q.Set("id", id)

	var resp listResponse
	if _, err := p.req.getJSON(ctx, "get", "/cardinfo.php", q, &resp); err != nil {
		return nil, err
	}
	cards := normalizeAll(p.logger, ProviderYGO, resp.Data, normalizeYGO)
	if len(cards) == 0 {
		return nil, nil
	}
	return &cards[0], nil
}

func normalizeYGO(raw map[string]any) models.Card {
	c := models.Card{
		ID:    str(raw, "id"),
		Name:  str(raw, "name"),
		Game:  models.GameYuGiOh,
		Extra: extras(raw),
	}
	if img := firstObject(raw, "card_images"); img != nil {
		c.Image = firstString(img, "image_url", "image_url_small")
	}
	if set := firstObject(raw, "card_sets"); set != nil {
		c.Rarity = str(set, "set_rarity")
		c.Set = str(set, "set_name")
	}
	if prices := firstObject(raw, "card_prices"); prices != nil {
		c.Price = utils.ToFloat(prices["tcgplayer_price"])
	}
	return c
}
