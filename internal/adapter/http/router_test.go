package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/iho/storeledger/internal/adapter/http/dto"
	"github.com/iho/storeledger/internal/adapter/http/handler"
	apimiddleware "github.com/iho/storeledger/internal/adapter/http/middleware"
	"github.com/iho/storeledger/internal/usecase"
	"github.com/iho/storeledger/internal/usecase/mocks"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig(t))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(t, func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotentTransferRunsOnce(t *testing.T) {
	router := NewRouter(newRouterConfig(t, func(cfg *RouterConfig) {
		cfg.IdempotencyStore = mocks.NewFakeIdempotencyStore()
	}))

	till := createAccount(t, router, `{"name":"Till","type":"cash"}`)
	bank := createAccount(t, router, `{"name":"Bank","type":"bank"}`)
	do(t, router, http.MethodPost, "/api/v1/entries/incomes",
		`{"account_id":"`+till+`","amount":"1000","description":"Opening float"}`, http.StatusCreated)

	body := `{"from_account_id":"` + till + `","to_account_id":"` + bank + `","amount":"300"}`
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", strings.NewReader(body))
		req.Header.Set(apimiddleware.IdempotencyKeyHeader, "deposit-1")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("attempt %d: expected 201, got %d: %s", i, rec.Code, rec.Body.String())
		}
	}

	var acc dto.AccountResponse
	decode(t, do(t, router, http.MethodGet, "/api/v1/accounts/"+till, "", http.StatusOK), &acc)
	if acc.Balance != "700.00" {
		t.Fatalf("expected a single transfer to leave 700.00, got %s", acc.Balance)
	}
}

func TestNewRouter_LedgerFlow(t *testing.T) {
	router := NewRouter(newRouterConfig(t))

	till := createAccount(t, router, `{"name":"Till","type":"cash"}`)
	bank := createAccount(t, router, `{"name":"Bank","type":"bank"}`)

	do(t, router, http.MethodPost, "/api/v1/entries/incomes",
		`{"account_id":"`+till+`","amount":"1000","description":"Sales","category":"sales"}`, http.StatusCreated)
	do(t, router, http.MethodPost, "/api/v1/transfers",
		`{"from_account_id":"`+till+`","to_account_id":"`+bank+`","amount":"200"}`, http.StatusCreated)
	do(t, router, http.MethodPost, "/api/v1/transfers",
		`{"from_account_id":"`+till+`","to_account_id":"`+bank+`","amount":"5000"}`, http.StatusUnprocessableEntity)
	do(t, router, http.MethodPost, "/api/v1/entries/expenses",
		`{"account_id":"`+till+`","amount":"0","description":"Nothing"}`, http.StatusBadRequest)

	var tillResp, bankResp dto.AccountResponse
	decode(t, do(t, router, http.MethodGet, "/api/v1/accounts/"+till, "", http.StatusOK), &tillResp)
	decode(t, do(t, router, http.MethodGet, "/api/v1/accounts/"+bank, "", http.StatusOK), &bankResp)
	if tillResp.Balance != "800.00" || bankResp.Balance != "200.00" {
		t.Fatalf("unexpected balances till=%s bank=%s", tillResp.Balance, bankResp.Balance)
	}

	var history dto.ListTransfersResponse
	decode(t, do(t, router, http.MethodGet, "/api/v1/transfers?limit=10", "", http.StatusOK), &history)
	if history.Total != 1 || history.Transfers[0].Status != "completed" {
		t.Fatalf("unexpected transfer history %+v", history)
	}

	var recon dto.ReconciliationReportResponse
	decode(t, do(t, router, http.MethodGet, "/api/v1/ledger/reconciliation", "", http.StatusOK), &recon)
	if !recon.LedgerConsistent || recon.TransferPairs != 1 {
		t.Fatalf("expected consistent ledger with one transfer pair, got %+v", recon)
	}

	do(t, router, http.MethodGet, "/api/v1/reports/trial-balance", "", http.StatusOK)
	do(t, router, http.MethodGet, "/api/v1/reports/cash-flow?from=2000-01-01", "", http.StatusOK)
	do(t, router, http.MethodGet, "/api/v1/entries/missing", "", http.StatusNotFound)
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig(t, func(cfg *RouterConfig) {
		cfg.MetricsHandler = http.NotFoundHandler()
	}))

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"GET /metrics",
		"POST /api/v1/accounts/",
		"GET /api/v1/accounts/",
		"GET /api/v1/accounts/{id}",
		"PATCH /api/v1/accounts/{id}",
		"DELETE /api/v1/accounts/{id}",
		"GET /api/v1/accounts/{id}/entries",
		"GET /api/v1/accounts/{id}/reconciliation",
		"GET /api/v1/entries/",
		"POST /api/v1/entries/expenses",
		"POST /api/v1/entries/incomes",
		"GET /api/v1/entries/{id}",
		"PATCH /api/v1/entries/{id}",
		"DELETE /api/v1/entries/{id}",
		"POST /api/v1/transfers/",
		"GET /api/v1/transfers/",
		"GET /api/v1/transfers/{id}",
		"GET /api/v1/reports/trial-balance",
		"GET /api/v1/reports/balance-sheet",
		"GET /api/v1/reports/cash-flow",
		"GET /api/v1/reports/payment-accounts",
		"GET /api/v1/reports/monthly",
		"GET /api/v1/ledger/reconciliation",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(t *testing.T, opts ...func(*RouterConfig)) RouterConfig {
	t.Helper()

	l := mocks.NewLedger()
	rc := usecase.NewReportCache(mocks.NewFakeCache(), time.Minute)

	cfg := RouterConfig{
		AccountHandler:  handler.NewAccountHandler(usecase.NewAccountUseCase(l.Accounts, l.IDs, rc, nil)),
		EntryHandler:    handler.NewEntryHandler(usecase.NewEntryUseCase(l.TxManager, l.Accounts, l.Entries, l.IDs, nil, rc, nil)),
		TransferHandler: handler.NewTransferHandler(usecase.NewTransferUseCase(l.TxManager, l.Accounts, l.Transfers, l.Entries, l.IDs, nil, rc, nil)),
		ReportHandler:   handler.NewReportHandler(usecase.NewReportUseCase(l.Accounts, l.Entries, rc, nil)),
		LedgerHandler:   handler.NewLedgerHandler(usecase.NewReconciliationUseCase(l.Accounts, l.Entries, l.Transfers, nil)),
		HealthHandler: handler.NewHealthHandler(handler.PingerFunc(func(context.Context) error {
			return nil
		}), nil),
		Logger:      zerolog.Nop(),
		HTTPMetrics: apimiddleware.NewHTTPMetrics(prometheus.NewRegistry()),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func do(t *testing.T, router http.Handler, method, path, body string, expected int) []byte {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != expected {
		t.Fatalf("%s %s: expected %d, got %d: %s", method, path, expected, rec.Code, rec.Body.String())
	}
	return rec.Body.Bytes()
}

func decode(t *testing.T, data []byte, dst any) {
	t.Helper()
	if err := json.Unmarshal(data, dst); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
}

func createAccount(t *testing.T, router http.Handler, body string) string {
	t.Helper()

	var acc dto.AccountResponse
	decode(t, do(t, router, http.MethodPost, "/api/v1/accounts", body, http.StatusCreated), &acc)
	return acc.ID
}
