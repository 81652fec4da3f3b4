package search

// Config holds configuration for the search index.
type Config struct {
	// Enabled builds the index on the configured database and feeds it from card fetches.
	Enabled bool `mapstructure:"enabled" default:"true"`
}
