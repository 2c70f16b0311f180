// Package logger builds *slog.Logger values for the portfolio service and
// keeps attribute naming consistent across packages.
//
// New creates a logger from functional options. WithEnvironment picks the
// defaults for an environment: text output at debug level in development,
// JSON at info level in staging and production. The handler is wrapped in a
// LogHandlerDecorator that appends attributes pulled from context.Context by
// registered ContextExtractor functions on every record.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "portfolio"),
//	    logger.WithContextExtractors(environment.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.WarnContext(ctx, "card not found", logger.Component("card"), logger.CardID(id))
//
// Attribute helpers (Error, Component, CardID, NotificationKind, Outcome and
// friends) return an empty slog.Attr for nil or empty input; slog drops
// empty attributes so call sites need no guards.
package logger
