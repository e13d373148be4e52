package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"seller-report/internal/services"
)

type ErrorCode string

const (
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeTooLarge       ErrorCode = "PAYLOAD_TOO_LARGE"
	CodeRateLimit      ErrorCode = "RATE_LIMIT_EXCEEDED"
	CodeServiceUnavail ErrorCode = "SERVICE_UNAVAILABLE"
)

var statusByCode = map[ErrorCode]int{
	CodeValidation:     http.StatusBadRequest,
	CodeBadRequest:     http.StatusBadRequest,
	CodeNotFound:       http.StatusNotFound,
	CodeTooLarge:       http.StatusRequestEntityTooLarge,
	CodeRateLimit:      http.StatusTooManyRequests,
	CodeServiceUnavail: http.StatusServiceUnavailable,
}

// ErrMalformedBody marks a request body that could not be decoded.
var ErrMalformedBody = stderrors.New("malformed request body")

// AppError is the client-facing shape of every failed request.
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id,omitempty"`
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithDetails attaches a client-facing explanation to the error.
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// Wrap builds an AppError for code around cause, which may be nil.
func Wrap(cause error, code ErrorCode, message string) *AppError {
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: status,
		Cause:      cause,
		Timestamp:  time.Now().UTC(),
	}
}

func New(code ErrorCode, message string) *AppError {
	return Wrap(nil, code, message)
}

func NotFound(message string) *AppError           { return New(CodeNotFound, message) }
func BadRequest(message string) *AppError         { return New(CodeBadRequest, message) }
func RateLimit(message string) *AppError          { return New(CodeRateLimit, message) }
func ServiceUnavailable(message string) *AppError { return New(CodeServiceUnavail, message) }

// FromError classifies err for the client. AppErrors anywhere in the chain
// pass through; oversized bodies, malformed bodies, failed dataset
// validation and rejected report input get their own codes; anything else
// is internal.
func FromError(err error) *AppError {
	var (
		appErr   *AppError
		tooLarge *http.MaxBytesError
		invalid  *services.InvalidInputError
		fields   validator.ValidationErrors
	)

	switch {
	case err == nil:
		return nil
	case stderrors.As(err, &appErr):
		return appErr
	case stderrors.As(err, &tooLarge):
		return Wrap(err, CodeTooLarge, "dataset exceeds the request size limit").
			WithDetails(fmt.Sprintf("limit is %d bytes", tooLarge.Limit))
	case stderrors.Is(err, ErrMalformedBody):
		return Wrap(err, CodeBadRequest, "request body is not a valid dataset")
	case stderrors.As(err, &fields):
		return Wrap(err, CodeValidation, "dataset failed validation").
			WithDetails(describeFields(fields))
	case stderrors.As(err, &invalid):
		return Wrap(err, CodeValidation, "invalid dataset").WithDetails(invalid.Error())
	case stderrors.Is(err, services.ErrInvalidInput):
		return Wrap(err, CodeValidation, "invalid dataset")
	default:
		return Wrap(err, CodeInternal, "an unexpected error occurred")
	}
}

func describeFields(fields validator.ValidationErrors) string {
	msgs := make([]string, 0, len(fields))
	for _, fe := range fields {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "min":
			msgs = append(msgs, fe.Field()+" must contain at least "+fe.Param()+" entries")
		default:
			msgs = append(msgs, fe.Field()+" failed "+fe.Tag())
		}
	}
	return strings.Join(msgs, "; ")
}

type ErrorResponse struct {
	Error   *AppError `json:"error"`
	Success bool      `json:"success"`
}

type SuccessResponse struct {
	Data    any  `json:"data"`
	Success bool `json:"success"`
}

// WriteError classifies err, writes the JSON envelope and logs the failure;
// client errors are logged at warn.
func WriteError(w http.ResponseWriter, logger *slog.Logger, err error, requestID string) {
	appErr := FromError(err)
	appErr.RequestID = requestID

	if encodeErr := writeJSON(w, appErr.StatusCode, ErrorResponse{Error: appErr}); encodeErr != nil {
		logger.Error("failed to encode error response",
			"encode_error", encodeErr,
			"original_error", err,
			"request_id", requestID,
		)
		return
	}

	level := slog.LevelWarn
	if appErr.StatusCode >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.Log(context.Background(), level, "request failed",
		"error_code", appErr.Code,
		"error_message", appErr.Message,
		"status_code", appErr.StatusCode,
		"request_id", requestID,
		"cause", appErr.Cause,
	)
}

func WriteSuccess(w http.ResponseWriter, data any) {
	_ = writeJSON(w, http.StatusOK, SuccessResponse{Data: data, Success: true})
}

func WriteSuccessWithHeaders(w http.ResponseWriter, data any, headers map[string]string) {
	for key, value := range headers {
		w.Header().Set(key, value)
	}
	WriteSuccess(w, data)
}

func writeJSON(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}
