package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	domainErrors "github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/errors"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/returns"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/service/analytics"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/service/disposition"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/service/ingest"
)

// defaultOrderLimit is the page size when the limit parameter is absent
const defaultOrderLimit = 50

// OrderReader is the read side of the order listing endpoints
type OrderReader interface {
	GetOrder(ctx context.Context, orderID string) (*returns.Transaction, error)
	ListOrders(ctx context.Context, f returns.OrderFilter) ([]*returns.Transaction, error)
}

// Pinger reports dependency health
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers serves the dashboard API
type Handlers struct {
	baseHandler
	orders         OrderReader
	analytics      analytics.Service
	disposition    disposition.Service
	ingest         ingest.Service
	db             Pinger
	maxUploadBytes int64
}

type statusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

type verificationRequest struct {
	AgentName        string `json:"agent_name" validate:"required,max=100"`
	ItemMatchesOrder *bool  `json:"item_matches_order" validate:"required"`
	TagAttached      bool   `json:"tag_attached"`
	PackagingIntact  bool   `json:"packaging_intact"`
	ItemCondition    string `json:"item_condition" validate:"required"`
	AgentNotes       string `json:"agent_notes" validate:"max=2000"`
	PhotoURL         string `json:"photo_url" validate:"omitempty,max=2048"`
}

func (v verificationRequest) input() returns.VerificationInput {
	return returns.VerificationInput{
		AgentName:        v.AgentName,
		ItemMatchesOrder: *v.ItemMatchesOrder,
		TagAttached:      v.TagAttached,
		PackagingIntact:  v.PackagingIntact,
		ItemCondition:    returns.ItemCondition(v.ItemCondition),
		AgentNotes:       v.AgentNotes,
		PhotoURL:         v.PhotoURL,
	}
}

type verificationResponse struct {
	Verification *returns.FieldVerification `json:"verification"`
	Status       returns.Status             `json:"status"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	if h.db != nil {
		resp.Database = "ok"
		if err := h.db.Ping(r.Context()); err != nil {
			h.logger.Warn("health check failed", zap.Error(err))
			resp.Status = "degraded"
			resp.Database = "unreachable"
			h.writeJSON(w, r, http.StatusServiceUnavailable, resp)
			return
		}
	}
	h.writeJSON(w, r, http.StatusOK, resp)
}

func (h *Handlers) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analytics.Stats(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, stats)
}

func (h *Handlers) handleCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.analytics.Categories(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, cats)
}

func (h *Handlers) handleCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.analytics.Cities(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, cities)
}

func (h *Handlers) handleTrends(w http.ResponseWriter, r *http.Request) {
	trends, err := h.analytics.Trends(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, trends)
}

func (h *Handlers) handleListOrders(w http.ResponseWriter, r *http.Request) {
	f, err := parseOrderFilter(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	orders, err := h.orders.ListOrders(r.Context(), f)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, orders)
}

func parseOrderFilter(r *http.Request) (returns.OrderFilter, error) {
	q := r.URL.Query()
	f := returns.OrderFilter{
		Category: strings.TrimSpace(q.Get("category")),
		Search:   strings.TrimSpace(q.Get("search")),
		Limit:    defaultOrderLimit,
	}

	if raw := q.Get("flagged_only"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return f, invalidParam("flagged_only", raw)
		}
		f.FlaggedOnly = v
	}
	if raw := q.Get("min_score"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 || v > 100 {
			return f, invalidParam("min_score", raw)
		}
		f.MinScore = v
	}
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > returns.DefaultListLimit {
			return f, invalidParam("limit", raw)
		}
		f.Limit = v
	}
	if raw := q.Get("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return f, invalidParam("offset", raw)
		}
		f.Offset = v
	}
	return f, nil
}

func invalidParam(name, value string) error {
	return domainErrors.NewValidationError(domainErrors.CodeInvalidPayload, "invalid "+name+" parameter").
		WithDetails(map[string]interface{}{"parameter": name, "value": value})
}

func (h *Handlers) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetOrder(r.Context(), r.PathValue("order_id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, order)
}

func (h *Handlers) handleFraudSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analytics.FraudSummary(r.Context(), r.PathValue("order_id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, summary)
}

func (h *Handlers) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusUpdateRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	status, err := returns.ParseStatus(req.Status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	orderID := r.PathValue("order_id")
	order, err := h.disposition.ApplyManualStatus(r.Context(), orderID, status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if claims := ClaimsFromContext(r.Context()); claims != nil {
		h.logger.Info("order status changed",
			zap.String("order_id", orderID),
			zap.String("status", string(order.Status)),
			zap.String("by", claims.Subject),
		)
	}
	h.writeJSON(w, r, http.StatusOK, order)
}

func (h *Handlers) handleSubmitVerification(w http.ResponseWriter, r *http.Request) {
	var req verificationRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	v, status, err := h.disposition.SubmitVerification(r.Context(), r.PathValue("order_id"), req.input())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusCreated, verificationResponse{Verification: v, Status: status})
}

func (h *Handlers) handleGetVerification(w http.ResponseWriter, r *http.Request) {
	v, err := h.disposition.GetVerification(r.Context(), r.PathValue("order_id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, v)
}

func (h *Handlers) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, r, domainErrors.NewValidationError(domainErrors.CodeInvalidPayload,
				"upload exceeds "+strconv.FormatInt(h.maxUploadBytes, 10)+" bytes").WithCause(err))
			return
		}
		h.writeError(w, r, domainErrors.NewValidationError(domainErrors.CodeInvalidPayload,
			"expected a multipart form with a file field").WithCause(err))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, r, domainErrors.NewValidationError(domainErrors.CodeInvalidPayload,
			"missing file field").WithCause(err))
		return
	}
	defer file.Close()

	h.logger.Info("csv upload received",
		zap.String("filename", header.Filename),
		zap.Int64("size", header.Size),
		zap.String("request_id", RequestIDFromContext(r.Context())),
	)

	result, err := h.ingest.IngestCSV(r.Context(), file)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, result)
}
