// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/streamhub/core/config"
//
//	type HubConfig struct {
//		InitialValue int           `env:"HUB_INITIAL_VALUE" envDefault:"0"`
//		ClearAfter   time.Duration `env:"DEEPLINK_CLEAR_AFTER" envDefault:"1s"`
//	}
//
//	func main() {
//		var hub HubConfig
//
//		// Load with error handling
//		if err := config.Load(&hub); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&hub)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	var cfg1 HubConfig
//	config.Load(&cfg1) // Loads from environment
//
//	var cfg2 HubConfig
//	config.Load(&cfg2) // Returns cached value, cfg1 == cfg2
//
// Reset clears the cache; tests use it between cases.
//
// Different types are cached independently:
//
//	type ServerConfig struct {
//		Port int `env:"PORT" envDefault:"8080"`
//	}
//
//	type LogConfig struct {
//		Env string `env:"APP_ENV" envDefault:"development"`
//	}
//
//	// Each type has its own cache entry
//	config.MustLoad(&ServerConfig{})
//	config.MustLoad(&LogConfig{})
package config
