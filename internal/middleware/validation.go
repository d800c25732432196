package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	apierrors "volvedash/internal/errors"
)

// ViewQuery is the query string understood by the dashboard and the paginated
// data endpoints.
type ViewQuery struct {
	Menu    string `query:"menu" validate:"omitempty,oneof=Home Data Plots"`
	Page    int    `query:"page" validate:"gte=1,lte=1000000"`
	Size    int    `query:"size" validate:"gte=1,ltefield=MaxSize"`
	MaxSize int    `query:"-"`
}

// QueryValidator parses and validates query parameters using struct tags
type QueryValidator struct {
	validator   *validator.Validate
	defaultSize int
	maxSize     int
	logger      *slog.Logger
}

// NewQueryValidator creates a validator for page/size limits taken from config
func NewQueryValidator(defaultSize, maxSize int, logger *slog.Logger) *QueryValidator {
	v := validator.New()

	// Use query tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &QueryValidator{
		validator:   v,
		defaultSize: defaultSize,
		maxSize:     maxSize,
		logger:      logger.With(slog.String("component", "query_validator")),
	}
}

// ParseViewQuery reads menu, page and size from the request. Missing values
// fall back to Home, page 1 and the configured page size.
func (q *QueryValidator) ParseViewQuery(r *http.Request) (ViewQuery, error) {
	values := r.URL.Query()
	query := ViewQuery{
		Menu:    values.Get("menu"),
		Page:    1,
		Size:    q.defaultSize,
		MaxSize: q.maxSize,
	}

	var fieldErrors []apierrors.ValidationError
	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			fieldErrors = append(fieldErrors, apierrors.ValidationError{Field: "page", Message: "page must be a valid integer"})
		} else {
			query.Page = page
		}
	}
	if raw := values.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			fieldErrors = append(fieldErrors, apierrors.ValidationError{Field: "size", Message: "size must be a valid integer"})
		} else {
			query.Size = size
		}
	}
	if len(fieldErrors) > 0 {
		return query, apierrors.NewValidationErrors(fieldErrors)
	}

	if err := q.ValidateStruct(query); err != nil {
		q.logger.DebugContext(r.Context(), "query validation failed",
			slog.String("query", r.URL.RawQuery),
			slog.String("error", err.Error()),
		)
		return query, err
	}
	return query, nil
}

// ValidateStruct validates a struct and converts failures into a 400 API error
func (q *QueryValidator) ValidateStruct(v interface{}) error {
	err := q.validator.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return apierrors.ErrInvalidRequest
	}

	details := make([]apierrors.ValidationError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		details = append(details, apierrors.ValidationError{
			Field:   fe.Field(),
			Message: q.formatValidationError(fe),
		})
	}
	return apierrors.NewValidationErrors(details)
}

// formatValidationError formats validation error messages
func (q *QueryValidator) formatValidationError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "gte", "min":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte", "max":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "ltefield":
		return fmt.Sprintf("%s must be at most %d", field, q.maxSize)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}
