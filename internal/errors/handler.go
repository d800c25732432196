package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"volvedash/internal/infrastructure"
)

// Common error types following RFC 7807
const (
	TypeValidation  = "/errors/validation"
	TypeNotFound    = "/errors/not-found"
	TypeRateLimit   = "/errors/rate-limit"
	TypeInternal    = "/errors/internal"
	TypeServiceDown = "/errors/service-unavailable"
	TypeTimeout     = "/errors/timeout"
	TypeMethod      = "/errors/method-not-allowed"
)

// Domain-specific error types
const (
	TypeDatasetNotFound   = "/errors/dataset/not-found"
	TypeSchemaMismatch    = "/errors/dataset/schema-mismatch"
	TypeDatasetUnreadable = "/errors/dataset/unreadable"
	TypeUnknownChart      = "/errors/chart/unknown"
	TypeUnsupportedFormat = "/errors/chart/unsupported-format"
)

// Classification is the HTTP-facing shape of an error
type Classification struct {
	Status int
	Type   string
	Title  string
}

// Classify maps an error to a status code, problem type and title.
func Classify(err error) Classification {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return Classification{http.StatusGatewayTimeout, TypeTimeout, "Request Timeout"}
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return Classification{apiErr.StatusCode, apiErrorType(apiErr.ErrorCode), http.StatusText(apiErr.StatusCode)}
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return classifyAppError(appErr)
	}

	return Classification{http.StatusInternalServerError, TypeInternal, "Internal Server Error"}
}

func classifyAppError(appErr *AppError) Classification {
	switch appErr.Type {
	case ErrTypeNotFound:
		switch appErr.Resource() {
		case ResourceDataset:
			return Classification{http.StatusNotFound, TypeDatasetNotFound, "Dataset Not Found"}
		case ResourceChart:
			return Classification{http.StatusNotFound, TypeUnknownChart, "Unknown Chart"}
		}
		return Classification{http.StatusNotFound, TypeNotFound, "Resource Not Found"}
	case ErrTypeSchema:
		return Classification{http.StatusUnprocessableEntity, TypeSchemaMismatch, "Dataset Schema Mismatch"}
	case ErrTypeParsing:
		return Classification{http.StatusUnprocessableEntity, TypeDatasetUnreadable, "Dataset Unreadable"}
	case ErrTypeValidation:
		return Classification{http.StatusBadRequest, TypeValidation, "Validation Failed"}
	case ErrTypeUnsupported:
		return Classification{http.StatusBadRequest, TypeUnsupportedFormat, "Unsupported Format"}
	}
	return Classification{http.StatusInternalServerError, TypeInternal, "Internal Server Error"}
}

func apiErrorType(code string) string {
	switch code {
	case CodeValidationFailed, CodeInvalidRequest:
		return TypeValidation
	case CodeRateLimitExceeded:
		return TypeRateLimit
	case CodeServiceUnavailable:
		return TypeServiceDown
	}
	return TypeInternal
}

// ErrorHandler provides centralized error handling
type ErrorHandler struct {
	logger       *slog.Logger
	includeStack bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger, includeStack bool) *ErrorHandler {
	return &ErrorHandler{
		logger:       logger.With(slog.String("component", "error_handler")),
		includeStack: includeStack,
	}
}

// HandleError converts any error to RFC 7807 format and responds
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	reqID := requestID(r)

	problem := h.ErrorToProblem(err, r)
	problem.WithExtension("trace_id", reqID)

	level := slog.LevelWarn
	if problem.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(r.Context(), level, "request failed",
		slog.String("error", err.Error()),
		slog.Int("status", problem.Status),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("remote_addr", r.RemoteAddr),
	)

	// Add stack trace in development
	if h.includeStack {
		problem.WithExtension("stack", getStackTrace())
	}

	render.Render(w, r, problem)
}

// ErrorToProblem converts an error to RFC 7807 Problem Details
func (h *ErrorHandler) ErrorToProblem(err error, r *http.Request) *ProblemDetails {
	var apiErr *APIError
	if errors.As(err, &apiErr) && !isContextError(err) {
		return h.apiErrorToProblem(apiErr, r)
	}

	c := Classify(err)
	detail := err.Error()
	switch c.Type {
	case TypeTimeout:
		detail = "The request took too long to process and was cancelled"
	case TypeInternal:
		detail = "An unexpected error occurred while processing your request"
	}

	problem := NewProblemDetails(c.Status, c.Type, c.Title, detail, r.URL.Path)

	var appErr *AppError
	if errors.As(err, &appErr) {
		problem.Detail = appErr.Message
		for k, v := range appErr.Context {
			if k == ContextResource {
				continue
			}
			problem.WithExtension(k, v)
		}
	}
	return problem
}

func isContextError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

// apiErrorToProblem converts APIError to ProblemDetails
func (h *ErrorHandler) apiErrorToProblem(apiErr *APIError, r *http.Request) *ProblemDetails {
	problem := NewProblemDetails(
		apiErr.StatusCode,
		apiErrorType(apiErr.ErrorCode),
		http.StatusText(apiErr.StatusCode),
		apiErr.Message,
		r.URL.Path,
	).WithExtension("error_code", apiErr.ErrorCode)

	if apiErr.Details != nil {
		problem.WithExtension("details", apiErr.Details)
	}

	return problem
}

// HandlePanic recovers from panics and returns RFC 7807 error
func (h *ErrorHandler) HandlePanic(w http.ResponseWriter, r *http.Request, recovered interface{}) {
	reqID := requestID(r)

	h.logger.ErrorContext(r.Context(), "panic recovered",
		slog.Any("panic", recovered),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("stack", string(debug.Stack())),
	)

	problem := NewProblemDetails(
		http.StatusInternalServerError,
		TypeInternal,
		"Internal Server Error",
		"An unexpected error occurred",
		r.URL.Path,
	).WithExtension("trace_id", reqID)

	if h.includeStack {
		problem.WithExtension("panic", fmt.Sprintf("%v", recovered))
		problem.WithExtension("stack", getStackTrace())
	}

	render.Render(w, r, problem)
}

// NotFound returns a standard 404 error
func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	problem := NewProblemDetails(
		http.StatusNotFound,
		TypeNotFound,
		"Not Found",
		"The requested resource was not found",
		r.URL.Path,
	).WithExtension("trace_id", requestID(r))

	render.Render(w, r, problem)
}

// MethodNotAllowed returns a standard 405 error
func (h *ErrorHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	problem := NewProblemDetails(
		http.StatusMethodNotAllowed,
		TypeMethod,
		"Method Not Allowed",
		fmt.Sprintf("Method %s is not allowed for this endpoint", r.Method),
		r.URL.Path,
	).WithExtension("trace_id", requestID(r))

	render.Render(w, r, problem)
}

// Recoverer returns a middleware that turns panics into problem responses
func (h *ErrorHandler) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				h.HandlePanic(w, r, rec)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func requestID(r *http.Request) string {
	if id := infrastructure.GetTraceID(r.Context()); id != "" {
		return id
	}
	return middleware.GetReqID(r.Context())
}

// getStackTrace returns the current stack trace
func getStackTrace() string {
	buf := make([]byte, 1024*8)
	n := runtime.Stack(buf, false)
	return strings.TrimSpace(string(buf[:n]))
}
