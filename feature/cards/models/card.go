package models

import (
	"encoding/json"
	"fmt"
)

// Card is the normalized record produced by every provider adapter.
// ID, Name and Game are always set; the rest is best effort.
type Card struct {
	ID     string
	Name   string
	Game   Game
	Image  string
	Price  float64
	Rarity string
	Set    string
	// Extra holds every original provider field. On serialization it is merged under the
	// typed fields, which win on conflict.
	Extra map[string]any
}

var typedKeys = map[string]struct{}{
	"id": {}, "name": {}, "game": {}, "image": {}, "price": {}, "rarity": {}, "set": {},
}

// Valid reports whether the required fields are present.
func (c Card) Valid() bool {
	return c.ID != "" && c.Name != "" && c.Game != ""
}

// MarshalJSON flattens Extra and the typed fields into one object.
func (c Card) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Extra)+len(typedKeys))
	for k, v := range c.Extra {
		out[k] = v
	}
	out["id"] = c.ID
	out["name"] = c.Name
	out["game"] = c.Game
	out["price"] = c.Price
	if c.Image != "" {
		out["image"] = c.Image
	} else {
		delete(out, "image")
	}
	if c.Rarity != "" {
		out["rarity"] = c.Rarity
	} else {
		delete(out, "rarity")
	}
	if c.Set != "" {
		out["set"] = c.Set
	} else {
		delete(out, "set")
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores the typed fields and collects everything else into Extra.
func (c *Card) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var typed struct {
		ID     string  `json:"id"`
		Name   string  `json:"name"`
		Game   Game    `json:"game"`
		Image  string  `json:"image"`
		Price  float64 `json:"price"`
		Rarity string  `json:"rarity"`
		Set    string  `json:"set"`
	}
	if err := json.Unmarshal(data, &typed); err != nil {
		return fmt.Errorf("decode card: %w", err)
	}

	*c = Card{
		ID:     typed.ID,
		Name:   typed.Name,
		Game:   typed.Game,
		Image:  typed.Image,
		Price:  typed.Price,
		Rarity: typed.Rarity,
		Set:    typed.Set,
	}
	for k, v := range raw {
		if _, ok := typedKeys[k]; ok {
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return fmt.Errorf("decode card field %s: %w", k, err)
		}
		if c.Extra == nil {
			c.Extra = make(map[string]any)
		}
		c.Extra[k] = val
	}
	return nil
}
