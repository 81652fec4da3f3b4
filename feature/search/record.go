package search

import (
	"encoding/json"
	"strings"
	"time"

	"card-catalog/feature/cards/models"
)

// TableName is the index table.
const TableName = "indexed_cards"

// IndexedCard is one row of the index. card_condition avoids the reserved word condition.
type IndexedCard struct {
	ID        uint      `gorm:"column:id;primaryKey"`
	Game      string    `gorm:"column:game;size:32;uniqueIndex:idx_indexed_cards_game_card"`
	CardID    string    `gorm:"column:card_id;size:191;uniqueIndex:idx_indexed_cards_game_card"`
	Name      string    `gorm:"column:name;size:255"`
	NameLower string    `gorm:"column:name_lower;size:255;index"`
	Image     string    `gorm:"column:image;size:1024"`
	Price     float64   `gorm:"column:price;index"`
	Rarity    string    `gorm:"column:rarity;size:64;index"`
	SetName   string    `gorm:"column:set_name;size:255;index"`
	Condition string    `gorm:"column:card_condition;size:32"`
	Extra     string    `gorm:"column:extra;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;index"`
}

// TableName overrides the table name.
func (IndexedCard) TableName() string {
	return TableName
}

// ExpectedColumns are the columns the health check requires.
var ExpectedColumns = []string{
	"id", "game", "card_id", "name", "name_lower", "image", "price",
	"rarity", "set_name", "card_condition", "extra", "created_at", "updated_at",
}

func newIndexedCard(c models.Card, now time.Time) IndexedCard {
	row := IndexedCard{
		Game:      string(c.Game),
		CardID:    c.ID,
		Name:      c.Name,
		NameLower: strings.ToLower(c.Name),
		Image:     c.Image,
		Price:     c.Price,
		Rarity:    c.Rarity,
		SetName:   c.Set,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if cond, ok := c.Extra["condition"].(string); ok {
		row.Condition = cond
	}
	if len(c.Extra) > 0 {
		if b, err := json.Marshal(c.Extra); err == nil {
			row.Extra = string(b)
		}
	}
	return row
}

func (r IndexedCard) card() models.Card {
	c := models.Card{
		ID:     r.CardID,
		Name:   r.Name,
		Game:   models.Game(r.Game),
		Image:  r.Image,
		Price:  r.Price,
		Rarity: r.Rarity,
		Set:    r.SetName,
	}
	if r.Extra != "" {
		_ = json.Unmarshal([]byte(r.Extra), &c.Extra)
	}
	return c
}

// priceBucketExpr assigns each row to its price facet bucket.
const priceBucketExpr = "CASE WHEN price < 1 THEN '0-1' WHEN price < 5 THEN '1-5' " +
	"WHEN price < 20 THEN '5-20' WHEN price < 100 THEN '20-100' ELSE '100+' END"
