package main

import (
	"time"

	"github.com/dmitrymomot/streamhub/core/server"
)

// Config is loaded from the environment and an optional .env file.
type Config struct {
	AppName string `env:"APP_NAME" envDefault:"streamhub"`
	Env     string `env:"APP_ENV" envDefault:"development"`

	InitialValue int `env:"MODEL_INITIAL_VALUE" envDefault:"0"`

	DeepLinkClearAfter time.Duration `env:"DEEPLINK_CLEAR_AFTER" envDefault:"1s"`
	// Handled at startup before the holder is ready, like a link that launched the app.
	LaunchDeepLink string `env:"DEEPLINK_LAUNCH_URL"`

	SSEKeepAlive time.Duration `env:"SSE_KEEP_ALIVE" envDefault:"30s"`

	Server server.Config
}
