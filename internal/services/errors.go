package services

import (
	"context"
	"errors"

	"volvedash/internal/charts"
	apperrors "volvedash/internal/errors"
	"volvedash/internal/production"
)

// translateError maps domain errors to application errors. The domain error
// stays reachable through errors.Is and errors.As.
func translateError(err error, source string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	var schemaErr *production.SchemaError
	switch {
	case errors.Is(err, production.ErrDatasetNotFound):
		return apperrors.DatasetNotFound(source, err)

	case errors.As(err, &schemaErr):
		return apperrors.SchemaMismatch(schemaErr.Error(), schemaErr.Missing, schemaErr.Conflicting, err)

	case errors.Is(err, production.ErrDatasetUnreadable):
		return apperrors.DatasetUnreadable(source, err)

	case errors.Is(err, production.ErrUnknownColumn):
		return apperrors.NewAppValidationError(err.Error(), err)

	case errors.Is(err, charts.ErrUnknownChart):
		return apperrors.UnknownChart(err)

	case errors.Is(err, charts.ErrUnsupportedFormat):
		return apperrors.NewUnsupportedError(err.Error(), err)
	}

	return err
}
