package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domainErrors "github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/errors"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/infrastructure/auth"
)

type contextKey string

const (
	contextKeyRequestID contextKey = "request_id"
	contextKeyClaims    contextKey = "claims"
	contextKeyRoute     contextKey = "route"
)

// maxJSONBody caps JSON request bodies
const maxJSONBody = 1 << 20

// ResponseEnvelope wraps all API responses
type ResponseEnvelope struct {
	Success bool           `json:"success"`
	Data    interface{}    `json:"data,omitempty"`
	Error   *ErrorResponse `json:"error,omitempty"`
	Meta    ResponseMeta   `json:"meta"`
}

// ResponseMeta contains response metadata
type ResponseMeta struct {
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// ErrorResponse provides detailed error information
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// baseHandler holds what every handler needs to decode requests and write envelopes
type baseHandler struct {
	logger   *zap.Logger
	validate *validator.Validate
	version  string
}

func newBaseHandler(logger *zap.Logger, version string) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return baseHandler{logger: logger, validate: v, version: version}
}

func (h *baseHandler) meta(r *http.Request) ResponseMeta {
	return ResponseMeta{
		RequestID: RequestIDFromContext(r.Context()),
		Timestamp: time.Now().UTC(),
		Version:   h.version,
	}
}

func (h *baseHandler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	writeEnvelope(w, status, ResponseEnvelope{Success: true, Data: data, Meta: h.meta(r)})
}

// writeError maps err to its status code. Anything that is not an AppError is a 500
// whose message is not exposed.
func (h *baseHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	resp := &ErrorResponse{Code: "INTERNAL_ERROR", Message: "internal server error"}

	var appErr *domainErrors.AppError
	if errors.As(err, &appErr) {
		status = appErr.StatusCode
		resp.Code = appErr.Code
		resp.Details = appErr.Details
		if status < http.StatusInternalServerError {
			resp.Message = appErr.Message
		}
	}

	fields := []zap.Field{
		zap.String("request_id", RequestIDFromContext(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields...)
	} else {
		h.logger.Debug("request rejected", fields...)
	}

	writeEnvelope(w, status, ResponseEnvelope{Error: resp, Meta: h.meta(r)})
}

// decodeJSON reads a JSON body into dst and runs struct validation on it.
func (h *baseHandler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domainErrors.NewValidationError(domainErrors.CodeInvalidPayload, "request body is empty")
		}
		return domainErrors.NewValidationError(domainErrors.CodeInvalidPayload,
			fmt.Sprintf("malformed request body: %v", err)).WithCause(err)
	}

	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]interface{}, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
			return domainErrors.NewValidationError(domainErrors.CodeInvalidPayload, "request validation failed").
				WithDetails(map[string]interface{}{"fields": fields}).
				WithCause(err)
		}
		return domainErrors.NewValidationError(domainErrors.CodeInvalidPayload, err.Error())
	}
	return nil
}

func writeEnvelope(w http.ResponseWriter, status int, env ResponseEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// writeProblem writes an error envelope outside of a handler, from middleware.
func writeProblem(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeEnvelope(w, status, ResponseEnvelope{
		Error: &ErrorResponse{Code: code, Message: message},
		Meta: ResponseMeta{
			RequestID: RequestIDFromContext(r.Context()),
			Timestamp: time.Now().UTC(),
		},
	})
}

// RequestIDFromContext returns the id assigned by RequestIDMiddleware.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyRequestID).(string)
	return id
}

// ClaimsFromContext returns the authenticated caller, if any.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(contextKeyClaims).(*auth.Claims)
	return claims
}
