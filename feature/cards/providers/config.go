package providers

// Config holds the upstream catalog settings.
type Config struct {
	// YGOBaseURL is the YGOPRODeck API root.
	YGOBaseURL string `mapstructure:"ygo_base_url" default:"https://db.ygoprodeck.com/api/v7"`
	// PokemonBaseURL is the Pokémon TCG API root.
	PokemonBaseURL string `mapstructure:"pokemon_base_url" default:"https://api.pokemontcg.io/v2"`
	// PokemonAPIKey is sent as X-Api-Key when set.
	PokemonAPIKey string `mapstructure:"pokemon_api_key" default:""`
	// ScryfallBaseURL is the Scryfall API root.
	ScryfallBaseURL string `mapstructure:"scryfall_base_url" default:"https://api.scryfall.com"`
	// APITCGBaseURL is the multi-game catalog root; the game slug is appended.
	APITCGBaseURL string `mapstructure:"apitcg_base_url" default:"https://apitcg.com/api"`
	// APITCGAPIKey is sent as x-api-key when set.
	APITCGAPIKey string `mapstructure:"apitcg_api_key" default:""`
	// TimeoutSeconds bounds every upstream HTTP request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"15"`
	// UserAgent identifies this service to the catalogs.
	UserAgent string `mapstructure:"user_agent" default:"card-catalog/1.0"`
}
