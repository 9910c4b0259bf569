// Package logger builds *slog.Logger instances and provides attribute helpers
// for the events this service logs: hub subscriptions, stream readers and HTTP
// requests.
//
// # Basic Usage
//
//	log := logger.New(
//		logger.WithDevelopment("streamhub"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log.Info("server starting", logger.Component("server"))
//
// Production setups switch to JSON:
//
//	log := logger.New(logger.WithProduction("streamhub"))
//
// ForEnv chooses between the two from an environment name such as the
// APP_ENV config value.
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for nil or empty input, which slog skips:
//
//	log.Error("set model failed", logger.Error(err), logger.Component("httpapi"))
//	log.Debug("subscription opened",
//		logger.SubscriptionID(id.String()),
//		logger.Subscribers(hub.Len()),
//	)
//
// Components that accept a logger default to a discard handler; NewNop returns
// the same thing for tests.
package logger
