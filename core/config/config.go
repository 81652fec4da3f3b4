package config

import (
	"path/filepath"
	"reflect"
	"strings"

	"card-catalog/core/cache"
	"card-catalog/core/database"
	"card-catalog/core/logger"
	"card-catalog/core/resilience"
	"card-catalog/core/server"
	"card-catalog/core/storage"
	"card-catalog/feature/cards/providers"
	"card-catalog/feature/search"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Each section is owned by the package that consumes it.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage holding the cache.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the search index database.
	Database database.Config `mapstructure:"database"`
	// Cache holds configuration for the card payload cache.
	Cache cache.Config `mapstructure:"cache"`
	// Resilience holds retry and circuit breaker settings.
	Resilience resilience.Config `mapstructure:"resilience"`
	// Providers holds the upstream catalog endpoints and keys.
	Providers providers.Config `mapstructure:"providers"`
	// Search holds configuration for the search index.
	Search search.Config `mapstructure:"search"`
}

// LoadConfig loads configuration from environment variables and the .env file in path.
func LoadConfig(path string) (*Config, error) {
	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(filepath.Join(path, ".env"))

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. CACHE_TTL -> cache.ttl)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
