package providers

import (
	"sort"

	"card-catalog/core/utils"
	"card-catalog/feature/cards/models"

	"go.uber.org/zap"
)

// listResponse is the {"data": [...]} envelope shared by most catalogs.
type listResponse struct {
	Data []map[string]any `json:"data"`
}

type objectResponse struct {
	Data map[string]any `json:"data"`
}

type normalizer func(raw map[string]any) models.Card

// normalizeAll converts raw records in order, dropping records without an id or name.
func normalizeAll(logger *zap.Logger, provider string, raw []map[string]any, fn normalizer) []models.Card {
	out := make([]models.Card, 0, len(raw))
	for _, r := range raw {
		c := fn(r)
		if !c.Valid() {
			logger.Debug("Dropping card without id or name",
				zap.String("provider", provider), zap.String("id", c.ID), zap.String("name", c.Name))
			continue
		}
		out = append(out, c)
	}
	return out
}

// extras copies every original provider field.
func extras(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	return out
}

// object returns raw[key] as a JSON object.
func object(raw map[string]any, key string) map[string]any {
	m, _ := raw[key].(map[string]any)
	return m
}

// firstObject returns the first element of the array raw[key] as a JSON object.
func firstObject(raw map[string]any, key string) map[string]any {
	list, _ := raw[key].([]any)
	if len(list) == 0 {
		return nil
	}
	m, _ := list[0].(map[string]any)
	return m
}

func str(raw map[string]any, key string) string {
	if raw == nil {
		return ""
	}
	return utils.ToString(raw[key])
}

// firstString returns the first non-empty value among keys.
func firstString(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		if v := str(raw, k); v != "" {
			return v
		}
	}
	return ""
}

// sortedKeys gives map iteration a stable order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// page converts an offset into a 1-based page of the given size.
func page(limit, offset int) int {
	if limit <= 0 {
		return 1
	}
	return offset/limit + 1
}

// window applies limit and offset to a full result set.
func window(cards []models.Card, limit, offset int) []models.Card {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(cards) {
		return []models.Card{}
	}
	end := len(cards)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return cards[offset:end]
}
