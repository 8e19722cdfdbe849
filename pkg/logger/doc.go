// Package logger builds the desk's *slog.Logger.
//
// Production runs emit JSON at INFO, development runs emit text at DEBUG.
// Request-scoped values (request id) are injected from the context by
// extractors registered with WithContextExtractors, so handlers can log with
// InfoContext and get the correlation fields for free.
//
//	log := logger.New(
//		logger.WithEnvironment(os.Getenv("APP_ENV"), "deskd"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "introduction sent", logger.StudentID(id), logger.Sender(from))
//
// The attribute helpers in attr.go return an empty slog.Attr for empty input,
// which slog drops, so call sites never need nil checks.
package logger
