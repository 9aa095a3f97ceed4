package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	eventsws "github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/api/websocket"
	domainErrors "github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/errors"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/returns"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/infrastructure/auth"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/infrastructure/cache"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/infrastructure/config"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/metrics"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/service/analytics"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/service/disposition"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/service/fraud"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/service/ingest"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/testutil/memstore"
)

const testSecret = "test-secret-that-is-at-least-32-bytes-long"

type testAPI struct {
	handler http.Handler
	store   *memstore.Store
	tokens  *auth.TokenService
	metrics *metrics.Registry
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *ErrorResponse  `json:"error"`
	Meta    ResponseMeta    `json:"meta"`
}

func newTestAPI(t *testing.T, mutate ...func(*config.Config)) *testAPI {
	t.Helper()
	cfg := config.Defaults()
	cfg.Auth.JWTSecret = testSecret
	cfg.RateLimit.RequestsPerSecond = 0
	for _, m := range mutate {
		m(cfg)
	}

	logger := zaptest.NewLogger(t)
	store := memstore.New()
	locker := cache.NewLocalLocker()
	reg := metrics.NewRegistry()

	tokens, err := auth.NewTokenService([]byte(testSecret), cfg.Auth.Issuer, time.Hour)
	require.NoError(t, err)

	scorer := fraud.NewService(fraud.DefaultConfig(), logger)
	ingestSvc := ingest.NewService(scorer, store, locker, logger)
	_, err = ingestSvc.Ingest(context.Background(), ingest.GenerateDemo(40, 3))
	require.NoError(t, err)

	handler, err := NewRouter(cfg, Dependencies{
		Orders:         store,
		Analytics:      analytics.NewService(store, logger),
		Disposition:    disposition.NewService(store, locker, nil, nil, logger),
		Ingest:         ingestSvc,
		Tokens:         tokens,
		Metrics:        reg,
		MetricsHandler: reg.Handler(),
	}, logger)
	require.NoError(t, err)

	return &testAPI{handler: handler, store: store, tokens: tokens, metrics: reg}
}

func (a *testAPI) token(t *testing.T, role auth.Role) string {
	t.Helper()
	tok, err := a.tokens.GenerateToken("user-"+string(role), "Test "+string(role), role)
	require.NoError(t, err)
	return tok
}

func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

// firstOrder returns a stored unlocked order
func (a *testAPI) firstOrder(t *testing.T, skip ...string) *returns.Transaction {
	t.Helper()
	orders, err := a.store.ListOrders(context.Background(), returns.OrderFilter{})
	require.NoError(t, err)
next:
	for _, o := range orders {
		for _, s := range skip {
			if o.OrderID == s {
				continue next
			}
		}
		if !o.IsLocked {
			return o
		}
	}
	t.Fatal("no unlocked order in store")
	return nil
}

func TestRouter_Health(t *testing.T) {
	api := newTestAPI(t)

	rec, env := api.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestRouter_Authentication(t *testing.T) {
	api := newTestAPI(t)

	t.Run("missing token", func(t *testing.T) {
		rec, env := api.do(t, http.MethodGet, "/api/stats", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
		require.NotNil(t, env.Error)
		assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec, _ := api.do(t, http.MethodGet, "/api/stats", "not-a-jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("agent may not change status", func(t *testing.T) {
		order := api.firstOrder(t)
		rec, env := api.do(t, http.MethodPatch, "/api/orders/"+order.OrderID+"/status",
			api.token(t, auth.RoleAgent), map[string]string{"status": "Cleared"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "FORBIDDEN", env.Error.Code)
	})

	t.Run("analyst may not submit verification", func(t *testing.T) {
		order := api.firstOrder(t)
		rec, _ := api.do(t, http.MethodPost, "/api/orders/"+order.OrderID+"/verification",
			api.token(t, auth.RoleAnalyst), map[string]interface{}{
				"agent_name": "A", "item_matches_order": true, "item_condition": "Good",
			})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("disabled auth admits anonymous callers", func(t *testing.T) {
		open := newTestAPI(t, func(c *config.Config) { c.Auth.Enabled = false })
		rec, _ := open.do(t, http.MethodGet, "/api/stats", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRouter_Analytics(t *testing.T) {
	api := newTestAPI(t)
	tok := api.token(t, auth.RoleAnalyst)

	rec, env := api.do(t, http.MethodGet, "/api/stats", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats analytics.Stats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 40, stats.TotalReturns)

	rec, env = api.do(t, http.MethodGet, "/api/categories", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cats []analytics.CategoryStats
	require.NoError(t, json.Unmarshal(env.Data, &cats))
	assert.NotEmpty(t, cats)

	rec, env = api.do(t, http.MethodGet, "/api/cities", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cities []analytics.CityStats
	require.NoError(t, json.Unmarshal(env.Data, &cities))
	assert.NotEmpty(t, cities)

	order := api.firstOrder(t)
	rec, env = api.do(t, http.MethodGet, "/api/fraud-summary/"+order.OrderID, tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary analytics.FraudSummary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Contains(t, summary.Summary, order.OrderID)

	rec, env = api.do(t, http.MethodGet, "/api/trends", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var trends []analytics.TrendPoint
	require.NoError(t, json.Unmarshal(env.Data, &trends))
	require.NotEmpty(t, trends)
	assert.LessOrEqual(t, len(trends), analytics.TrendWeeks)
	total := 0
	for i, p := range trends {
		total += p.TotalReturns
		assert.LessOrEqual(t, p.Flagged, p.TotalReturns)
		if i > 0 {
			assert.Less(t, trends[i-1].WeekStart, p.WeekStart)
		}
	}
	assert.LessOrEqual(t, total, 40)
}

func TestRouter_Orders(t *testing.T) {
	api := newTestAPI(t)
	tok := api.token(t, auth.RoleAgent)

	t.Run("list defaults", func(t *testing.T) {
		rec, env := api.do(t, http.MethodGet, "/api/orders", tok, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var orders []returns.Transaction
		require.NoError(t, json.Unmarshal(env.Data, &orders))
		assert.Len(t, orders, 40)
		for i := 1; i < len(orders); i++ {
			assert.GreaterOrEqual(t, orders[i-1].RiskScore, orders[i].RiskScore)
		}
	})

	t.Run("flagged with limit", func(t *testing.T) {
		rec, env := api.do(t, http.MethodGet, "/api/orders?flagged_only=true&limit=3", tok, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var orders []returns.Transaction
		require.NoError(t, json.Unmarshal(env.Data, &orders))
		assert.LessOrEqual(t, len(orders), 3)
		for _, o := range orders {
			assert.True(t, o.IsFraud)
		}
	})

	t.Run("offset pages through the list", func(t *testing.T) {
		_, env := api.do(t, http.MethodGet, "/api/orders", tok, nil)
		var all []returns.Transaction
		require.NoError(t, json.Unmarshal(env.Data, &all))

		rec, env := api.do(t, http.MethodGet, "/api/orders?offset=10&limit=5", tok, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var page []returns.Transaction
		require.NoError(t, json.Unmarshal(env.Data, &page))
		require.Len(t, page, 5)
		for i, o := range page {
			assert.Equal(t, all[10+i].OrderID, o.OrderID)
		}

		rec, env = api.do(t, http.MethodGet, "/api/orders?offset=100", tok, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.Unmarshal(env.Data, &page))
		assert.Empty(t, page)
	})

	t.Run("negative offset", func(t *testing.T) {
		api := newTestAPI(t, func(c *config.Config) { c.Server.ValidateContract = false })
		rec, env := api.do(t, http.MethodGet, "/api/orders?offset=-1", tok, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, domainErrors.CodeInvalidPayload, env.Error.Code)
	})

	t.Run("min score out of range", func(t *testing.T) {
		rec, env := api.do(t, http.MethodGet, "/api/orders?min_score=500", tok, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, domainErrors.CodeInvalidPayload, env.Error.Code)
	})

	t.Run("get one", func(t *testing.T) {
		order := api.firstOrder(t)
		rec, env := api.do(t, http.MethodGet, "/api/orders/"+order.OrderID, tok, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var got returns.Transaction
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, order.OrderID, got.OrderID)
	})

	t.Run("unknown order", func(t *testing.T) {
		rec, env := api.do(t, http.MethodGet, "/api/orders/NOPE", tok, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "RESOURCE_NOT_FOUND", env.Error.Code)
	})
}

func TestRouter_ManualStatusLocksOrder(t *testing.T) {
	api := newTestAPI(t)
	tok := api.token(t, auth.RoleAnalyst)
	order := api.firstOrder(t)
	path := "/api/orders/" + order.OrderID + "/status"

	rec, env := api.do(t, http.MethodPatch, path, tok, map[string]string{"status": "Flagged"})
	require.Equal(t, http.StatusOK, rec.Code)
	var got returns.Transaction
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, returns.StatusFlagged, got.Status)
	assert.False(t, got.IsLocked)

	rec, env = api.do(t, http.MethodPatch, path, tok, map[string]string{"status": "Escalated"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, returns.StatusEscalated, got.Status)
	assert.True(t, got.IsLocked)

	rec, env = api.do(t, http.MethodPatch, path, tok, map[string]string{"status": "Cleared"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, domainErrors.CodeOrderLocked, env.Error.Code)

	stored, err := api.store.GetOrder(context.Background(), order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, returns.StatusEscalated, stored.Status)
}

func TestRouter_InvalidStatus(t *testing.T) {
	t.Run("rejected by contract", func(t *testing.T) {
		api := newTestAPI(t)
		order := api.firstOrder(t)
		rec, env := api.do(t, http.MethodPatch, "/api/orders/"+order.OrderID+"/status",
			api.token(t, auth.RoleAnalyst), map[string]string{"status": "Approved"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, domainErrors.CodeInvalidPayload, env.Error.Code)
		assert.Contains(t, env.Error.Details, "violation")
	})

	t.Run("rejected by domain without contract", func(t *testing.T) {
		api := newTestAPI(t, func(c *config.Config) { c.Server.ValidateContract = false })
		order := api.firstOrder(t)
		rec, env := api.do(t, http.MethodPatch, "/api/orders/"+order.OrderID+"/status",
			api.token(t, auth.RoleAnalyst), map[string]string{"status": "Approved"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, domainErrors.CodeInvalidStatus, env.Error.Code)
	})

	t.Run("missing field", func(t *testing.T) {
		api := newTestAPI(t, func(c *config.Config) { c.Server.ValidateContract = false })
		order := api.firstOrder(t)
		rec, env := api.do(t, http.MethodPatch, "/api/orders/"+order.OrderID+"/status",
			api.token(t, auth.RoleAnalyst), map[string]string{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, domainErrors.CodeInvalidPayload, env.Error.Code)
	})
}

func TestRouter_Verification(t *testing.T) {
	api := newTestAPI(t)
	tok := api.token(t, auth.RoleAgent)
	order := api.firstOrder(t)
	path := "/api/orders/" + order.OrderID + "/verification"

	payload := map[string]interface{}{
		"agent_name":         "Ravi",
		"item_matches_order": false,
		"tag_attached":       true,
		"packaging_intact":   true,
		"item_condition":     "Good",
	}

	rec, env := api.do(t, http.MethodPost, path, tok, payload)
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp verificationResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, returns.VerificationFailed, resp.Verification.VerificationResult)
	assert.Equal(t, returns.StatusEscalated, resp.Status)

	rec, env = api.do(t, http.MethodPost, path, tok, payload)
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, domainErrors.CodeVerificationExists, env.Error.Code)
	assert.Equal(t, 1, api.store.VerificationCount())
}

func TestRouter_GetVerification(t *testing.T) {
	api := newTestAPI(t)
	order := api.firstOrder(t)
	path := "/api/orders/" + order.OrderID + "/verification"
	reader := api.token(t, auth.RoleAnalyst)

	rec, env := api.do(t, http.MethodGet, path, reader, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)

	rec, _ = api.do(t, http.MethodPost, path, api.token(t, auth.RoleAgent), map[string]interface{}{
		"agent_name":         "Meera",
		"item_matches_order": true,
		"tag_attached":       true,
		"packaging_intact":   true,
		"item_condition":     "Like New",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = api.do(t, http.MethodGet, path, reader, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got returns.FieldVerification
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, order.OrderID, got.OrderID)
	assert.Equal(t, "Meera", got.AgentName)
	assert.Equal(t, returns.VerificationPassed, got.VerificationResult)

	rec, env = api.do(t, http.MethodGet, "/api/orders/NOPE/verification", reader, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "RESOURCE_NOT_FOUND", env.Error.Code)
}

func TestRouter_VerificationRequiresItemMatch(t *testing.T) {
	api := newTestAPI(t, func(c *config.Config) { c.Server.ValidateContract = false })
	order := api.firstOrder(t)

	rec, env := api.do(t, http.MethodPost, "/api/orders/"+order.OrderID+"/verification",
		api.token(t, auth.RoleAgent), map[string]interface{}{
			"agent_name":     "Ravi",
			"item_condition": "Good",
		})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	fields, ok := env.Error.Details["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "required", fields["item_matches_order"])
}

func TestRouter_Upload(t *testing.T) {
	api := newTestAPI(t)
	tok := api.token(t, auth.RoleAnalyst)

	upload := func(t *testing.T, field, content string) (*httptest.ResponseRecorder, envelope) {
		t.Helper()
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile(field, "returns.csv")
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		api.handler.ServeHTTP(rec, req)

		var env envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		return rec, env
	}

	t.Run("stores new rows", func(t *testing.T) {
		csv := "order_id,customer_id,customer_name,order_value,return_count,return_day_gap,category,return_reason,city\n" +
			"UP1,C1,Asha,1200,1,10,Clothing,Size issue,Pune\n" +
			"UP2,C2,Vikram,9000,6,0,Electronics,Defective,Delhi\n"
		rec, env := upload(t, "file", csv)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var res ingest.Result
		require.NoError(t, json.Unmarshal(env.Data, &res))
		assert.Equal(t, 2, res.Added)
		assert.Equal(t, 2, res.Total)
		assert.Equal(t, "Uploaded 2 new transactions", res.Message)
		assert.Equal(t, 42, api.store.Len())
	})

	t.Run("missing columns", func(t *testing.T) {
		rec, env := upload(t, "file", "order_id,customer_id\nX,Y\n")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, domainErrors.CodeMissingColumns, env.Error.Code)
	})

	t.Run("wrong field name", func(t *testing.T) {
		rec, _ := upload(t, "attachment", "order_id\n")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouter_NotFoundAndMetrics(t *testing.T) {
	api := newTestAPI(t)

	rec, env := api.do(t, http.MethodGet, "/api/nothing-here", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ROUTE_NOT_FOUND", env.Error.Code)

	api.do(t, http.MethodGet, "/health", "", nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	mrec := httptest.NewRecorder()
	api.handler.ServeHTTP(mrec, req)
	require.Equal(t, http.StatusOK, mrec.Code)

	body := mrec.Body.String()
	assert.Contains(t, body, `route="GET /health"`)
	assert.Contains(t, body, `route="unmatched"`)
}

func TestNewRouter_RequiresServices(t *testing.T) {
	_, err := NewRouter(config.Defaults(), Dependencies{}, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestRouter_EventStream(t *testing.T) {
	cfg := config.Defaults()
	cfg.Auth.JWTSecret = testSecret
	logger := zaptest.NewLogger(t)

	store := memstore.New()
	locker := cache.NewLocalLocker()
	hub := eventsws.NewHub(logger, []string{"*"})
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	tokens, err := auth.NewTokenService([]byte(testSecret), cfg.Auth.Issuer, time.Hour)
	require.NoError(t, err)

	scorer := fraud.NewService(fraud.DefaultConfig(), logger)
	ingestSvc := ingest.NewService(scorer, store, locker, logger, ingest.WithPublisher(hub))

	handler, err := NewRouter(cfg, Dependencies{
		Orders:      store,
		Analytics:   analytics.NewService(store, logger),
		Disposition: disposition.NewService(store, locker, hub, nil, logger),
		Ingest:      ingestSvc,
		Tokens:      tokens,
		Events:      hub,
	}, logger)
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	tok, err := tokens.GenerateToken("agent-1", "Agent", auth.RoleAgent)
	require.NoError(t, err)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?token="+tok, nil)
	require.NoError(t, err)
	defer conn.Close()

	var ev eventsws.Event
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, eventsws.EventConnected, ev.Type)

	_, err = ingestSvc.Ingest(context.Background(), ingest.GenerateDemo(5, 1))
	require.NoError(t, err)

	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, returns.EventScoringCompleted, ev.Type)
}
