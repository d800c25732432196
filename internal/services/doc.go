// Package services implements the business logic layer of the dashboard.
// It sits between the HTTP handlers and the production package, so handlers
// never read the workbook themselves.
//
// ProductionService holds the transformed dataset. The first caller triggers
// the load, concurrent first callers wait on the same load through
// singleflight, and only a successful result is kept. Domain errors are
// translated into application errors from internal/errors so handlers can
// map them to HTTP status codes.
//
// HealthService reports liveness, readiness and version information. Its
// readiness check reflects the state of the dataset load.
//
// Services receive their *slog.Logger, tracer and metrics by injection:
//
//	svc := services.NewProductionService(loader, cfg.Dataset.Path, renderer,
//		metrics, providers.Tracer, logger)
//	ds, err := svc.Dataset(ctx)
package services
