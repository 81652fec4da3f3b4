package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"card-catalog/feature/cards/models"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCard(w io.Writer, c models.Card) {
	fmt.Fprintf(w, "%-20s %-40s %8.2f  %-16s %s\n", c.ID, c.Name, c.Price, c.Rarity, c.Set)
}
