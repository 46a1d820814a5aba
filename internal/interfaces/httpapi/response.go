package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/tournament-dashboard/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "tournament-dashboard"
	internalMessage  = "internal server error"
)

// googleResponseEnvelope follows the Google JSON style guide: exactly one of
// data or error is set.
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

type errorClass struct {
	target error
	code   int
	reason string
	status string
}

// errorClasses is matched in order; anything unmatched is internal.
var errorClasses = []errorClass{
	{target: usecase.ErrInvalidInput, code: http.StatusBadRequest, reason: "invalidInput", status: "INVALID_ARGUMENT"},
	{target: usecase.ErrNotFound, code: http.StatusNotFound, reason: "notFound", status: "NOT_FOUND"},
	{target: usecase.ErrUnauthorized, code: http.StatusUnauthorized, reason: "unauthorized", status: "UNAUTHENTICATED"},
	{target: usecase.ErrDependencyUnavailable, code: http.StatusServiceUnavailable, reason: "dependencyUnavailable", status: "UNAVAILABLE"},
}

var internalClass = errorClass{code: http.StatusInternalServerError, reason: "internalError", status: "INTERNAL"}

func classify(err error) errorClass {
	for _, class := range errorClasses {
		if errors.Is(err, class.target) {
			return class
		}
	}
	return internalClass
}

// writeJSON encodes into a pooled buffer first so a failed encode never
// leaves a half-written body behind a 2xx status.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	w.Header().Set("Content-Type", "application/json")
	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		trace.SpanFromContext(ctx).RecordError(err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"apiVersion":"` + googleAPIVersion + `","error":{"code":500,"message":"` + internalMessage + `","status":"INTERNAL"}}`))
		return
	}

	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, googleResponseEnvelope{APIVersion: googleAPIVersion, Data: data})
}

// writeError maps err onto the envelope. Messages of unclassified errors
// are replaced so driver or network details never reach the client.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	class := classify(err)
	message := err.Error()
	if class.code == http.StatusInternalServerError {
		span := trace.SpanFromContext(ctx)
		span.RecordError(err)
		span.SetStatus(codes.Error, class.status)
		message = internalMessage
	}

	writeJSON(ctx, w, class.code, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    class.code,
			Message: message,
			Status:  class.status,
			Errors:  []googleErrorItem{{Domain: errorDomain, Reason: class.reason, Message: message}},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeError(ctx, w, errors.New(internalMessage))
}
