package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fintave/bankaccount-backend/internal/domain"
	"github.com/fintave/bankaccount-backend/internal/logger"
)

// Response is the envelope every endpoint answers with.
type Response[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *T       `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func successResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

func errorResponse[T any](message string, errs ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Errors:  errs,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response body", err, nil)
	}
}

// writeError maps domain errors onto HTTP statuses and writes the envelope.
func writeError[T any](w http.ResponseWriter, r *http.Request, err error, start time.Time) {
	status := http.StatusInternalServerError
	message := "internal server error"
	var details []string

	var accountNotFound *domain.AccountNotFoundError
	var customerNotFound *domain.CustomerNotFoundError
	var operationNotFound *domain.OperationNotFoundError
	var insufficient *domain.InsufficientBalanceError
	var validation *domain.ValidationError

	switch {
	case errors.As(err, &accountNotFound),
		errors.As(err, &customerNotFound),
		errors.As(err, &operationNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.As(err, &insufficient):
		status = http.StatusUnprocessableEntity
		message = err.Error()
	case errors.As(err, &validation):
		status = http.StatusBadRequest
		message = "validation failed"
		for _, v := range validation.Violations {
			details = append(details, v.Attribute+": "+v.Cause)
		}
	case errors.Is(err, domain.ErrSameAccount),
		errors.Is(err, domain.ErrUnsupportedOperation):
		status = http.StatusBadRequest
		message = err.Error()
	}

	logError(r, err, logger.Fields{"status": status})
	response := errorResponse[T](message, details...)
	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

func logRequest(r *http.Request, payload any) {
	logger.Info("http request", logger.Fields{
		"method":  r.Method,
		"path":    r.URL.Path,
		"query":   r.URL.RawQuery,
		"payload": payload,
	})
}

func logResponse(r *http.Request, status int, payload any, start time.Time) {
	logger.Info("http response", logger.Fields{
		"method":     r.Method,
		"path":       r.URL.Path,
		"status":     status,
		"durationMs": time.Since(start).Milliseconds(),
		"response":   payload,
	})
}

func logError(r *http.Request, err error, extra logger.Fields) {
	fields := logger.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"query":  r.URL.RawQuery,
	}
	for k, v := range extra {
		fields[k] = v
	}
	logger.Error("http handler error", err, fields)
}
