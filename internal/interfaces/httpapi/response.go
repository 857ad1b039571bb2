package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/court-sense/internal/domain/session"
	"github.com/riskibarqy/court-sense/internal/platform/resilience"
	"github.com/riskibarqy/court-sense/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "court-sense"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

var internalError = mappedError{http.StatusInternalServerError, "internalError", "INTERNAL"}

// errorRules is checked in order. Specific session errors come before the generic
// conflict sentinel that wraps them.
var errorRules = []struct {
	targets []error
	mapped  mappedError
}{
	{[]error{usecase.ErrInvalidInput}, mappedError{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
	{[]error{usecase.ErrNotFound}, mappedError{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{[]error{session.ErrLineupFull}, mappedError{http.StatusConflict, "lineupFull", "FAILED_PRECONDITION"}},
	{[]error{session.ErrNoFreeThrows}, mappedError{http.StatusConflict, "freeThrowRequired", "FAILED_PRECONDITION"}},
	{[]error{usecase.ErrConflict}, mappedError{http.StatusConflict, "conflict", "FAILED_PRECONDITION"}},
	{
		[]error{resilience.ErrCircuitOpen, usecase.ErrDependencyUnavailable},
		mappedError{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"},
	},
}

func mapError(err error) mappedError {
	for _, rule := range errorRules {
		for _, target := range rule.targets {
			if errors.Is(err, target) {
				return rule.mapped
			}
		}
	}
	return internalError
}

func errorEnvelope(m mappedError, message string) googleResponseEnvelope {
	return googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    m.HTTPStatus,
			Message: message,
			Status:  m.Status,
			Errors:  []googleErrorItem{{Domain: errorDomain, Reason: m.Reason, Message: message}},
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	_, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(w, status, googleResponseEnvelope{APIVersion: googleAPIVersion, Data: data})
}

// writeError maps err onto the envelope. Unmapped errors are reported without their text.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	_, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(err)
	message := err.Error()
	if mapped == internalError {
		message = "internal server error"
	}
	writeJSON(w, mapped.HTTPStatus, errorEnvelope(mapped, message))
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	_, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeJSON(w, internalError.HTTPStatus, errorEnvelope(internalError, "internal server error"))
}
