package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/ledger-backend/internal/data/aggregates"
	"github.com/yungbote/ledger-backend/internal/data/repos"
	"github.com/yungbote/ledger-backend/internal/data/repos/testutil"
	"github.com/yungbote/ledger-backend/internal/domain/ledger"
	"github.com/yungbote/ledger-backend/internal/domain/money"
	ledgerhttp "github.com/yungbote/ledger-backend/internal/http"
	httpH "github.com/yungbote/ledger-backend/internal/http/handlers"
	httpMW "github.com/yungbote/ledger-backend/internal/http/middleware"
	"github.com/yungbote/ledger-backend/internal/observability"
	"github.com/yungbote/ledger-backend/internal/services"
)

type world struct {
	db         *gorm.DB
	router     *gin.Engine
	metrics    *observability.Metrics
	client     *ledger.Profile
	contractor *ledger.Profile
	stranger   *ledger.Profile
	contract   *ledger.Contract
	job        *ledger.Job
	paidAt     time.Time
}

func newWorld(t *testing.T) *world {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()

	profiles := repos.NewProfileRepo(db, log)
	contracts := repos.NewContractRepo(db, log)
	jobs := repos.NewJobRepo(db, log)
	entries := repos.NewLedgerEntryRepo(db, log)
	metrics := observability.NewMetrics()

	paidAt := time.Date(2020, 8, 15, 9, 30, 0, 0, time.UTC)
	agg := aggregates.NewLedgerAggregate(aggregates.LedgerAggregateDeps{
		Base:      aggregates.BaseDeps{DB: db, Log: log, Hooks: aggregates.NewObservabilityHooks(metrics), Now: func() time.Time { return paidAt }},
		Profiles:  profiles,
		Contracts: contracts,
		Jobs:      jobs,
		Entries:   entries,
	})
	ledgerSvc := services.NewLedgerService(services.LedgerServiceDeps{
		Log: log, Aggregate: agg, Entries: entries, Metrics: metrics,
		Now: func() time.Time { return paidAt },
	})
	contractSvc := services.NewContractService(log, contracts, jobs)

	router := ledgerhttp.NewRouter(ledgerhttp.RouterConfig{
		Log:               log,
		Metrics:           metrics,
		ProfileMiddleware: httpMW.NewProfileMiddleware(log, services.NewIdentityService(log, profiles, "")),
		JobHandler:        httpH.NewJobHandler(ledgerSvc, contractSvc),
		BalanceHandler:    httpH.NewBalanceHandler(ledgerSvc),
		ContractHandler:   httpH.NewContractHandler(contractSvc),
		AdminHandler:      httpH.NewAdminHandler(services.NewReportService(log, jobs, metrics)),
		HealthHandler:     httpH.NewHealthHandler(db),
	})

	w := &world{db: db, router: router, metrics: metrics, paidAt: paidAt}
	w.client = testutil.SeedClient(t, ctx, db, money.Cents(50000))
	w.contractor = testutil.SeedContractor(t, ctx, db, "Programmer", 0)
	w.stranger = testutil.SeedClient(t, ctx, db, 0)
	w.contract = testutil.SeedContract(t, ctx, db, w.client.ID, w.contractor.ID, ledger.ContractStatusInProgress)
	w.job = testutil.SeedJob(t, ctx, db, w.contract.ID, money.Cents(20000))
	return w
}

func (w *world) do(t *testing.T, method, path string, caller *ledger.Profile, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if caller != nil {
		req.Header.Set(httpMW.HeaderProfileID, fmt.Sprint(caller.ID))
	}
	rec := httptest.NewRecorder()
	w.router.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env.Error.Code
}

func TestPayJobFlow(t *testing.T) {
	w := newWorld(t)
	path := fmt.Sprintf("/jobs/%d/pay", w.job.ID)

	rec := w.do(t, nethttp.MethodPost, path, nil, nil)
	require.Equal(t, nethttp.StatusUnauthorized, rec.Code)

	rec = w.do(t, nethttp.MethodPost, path, w.contractor, nil)
	require.Equal(t, nethttp.StatusForbidden, rec.Code)
	require.Equal(t, "forbidden", errorCode(t, rec))

	rec = w.do(t, nethttp.MethodPost, path, w.client, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	var job struct {
		ID    uint    `json:"id"`
		Paid  bool    `json:"paid"`
		Price float64 `json:"price"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &job))
	require.True(t, job.Paid)
	require.Equal(t, 200.0, job.Price)

	rec = w.do(t, nethttp.MethodPost, path, w.client, nil)
	require.Equal(t, nethttp.StatusConflict, rec.Code)
	require.Equal(t, "already_paid", errorCode(t, rec))

	rec = w.do(t, nethttp.MethodPost, "/jobs/999999/pay", w.client, nil)
	require.Equal(t, nethttp.StatusNotFound, rec.Code)

	rec = w.do(t, nethttp.MethodGet, fmt.Sprintf("/profiles/%d/entries", w.contractor.ID), w.contractor, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	require.Equal(t, "payment_credit", entries[0]["kind"])

	require.Equal(t, 1.0, w.metrics.ApiRequestCount(nethttp.MethodPost, "/jobs/:job_id/pay", "200"))
}

func TestPayJobInsufficientFunds(t *testing.T) {
	w := newWorld(t)
	pricey := testutil.SeedJob(t, context.Background(), w.db, w.contract.ID, money.Cents(90000))

	rec := w.do(t, nethttp.MethodPost, fmt.Sprintf("/jobs/%d/pay", pricey.ID), w.client, nil)
	require.Equal(t, nethttp.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, "insufficient_funds", errorCode(t, rec))
}

func TestDepositFlow(t *testing.T) {
	w := newWorld(t)
	path := fmt.Sprintf("/balances/deposit/%d", w.client.ID)

	// Due is 200.00, so the cap is 50.00.
	rec := w.do(t, nethttp.MethodPost, path, w.client, map[string]any{"amount": "50.01"})
	require.Equal(t, nethttp.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, "deposit_limit_exceeded", errorCode(t, rec))

	rec = w.do(t, nethttp.MethodPost, path, w.client, map[string]any{"value": 50})
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	var profile struct {
		Balance float64 `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	require.Equal(t, 550.0, profile.Balance)

	for _, body := range []map[string]any{{}, {"amount": 0}, {"amount": "-5"}, {"amount": "1.005"}} {
		rec = w.do(t, nethttp.MethodPost, path, w.client, body)
		require.Equal(t, nethttp.StatusBadRequest, rec.Code, "body %v", body)
		require.Equal(t, "invalid_amount", errorCode(t, rec))
	}

	rec = w.do(t, nethttp.MethodPost, fmt.Sprintf("/balances/deposit/%d", w.contractor.ID), w.client, map[string]any{"amount": 1})
	require.Equal(t, nethttp.StatusNotFound, rec.Code)
}

func TestAdminReports(t *testing.T) {
	w := newWorld(t)
	rec := w.do(t, nethttp.MethodGet, "/admin/best-profession?start=2020-08-01&end=2020-08-31", nil, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	require.Equal(t, "null", string(bytes.TrimSpace(rec.Body.Bytes())))

	rec = w.do(t, nethttp.MethodPost, fmt.Sprintf("/jobs/%d/pay", w.job.ID), w.client, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)

	rec = w.do(t, nethttp.MethodGet, "/admin/best-profession?start=2020-08-01&end=2020-08-15", nil, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	var best struct {
		Profession string  `json:"profession"`
		Total      float64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &best))
	require.Equal(t, "Programmer", best.Profession)
	require.Equal(t, 200.0, best.Total)

	rec = w.do(t, nethttp.MethodGet, "/admin/best-clients?start=2020-08-01&end=2020-08-31", nil, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	var clients []struct {
		ID       uint    `json:"id"`
		FullName string  `json:"fullName"`
		Paid     float64 `json:"paid"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &clients))
	require.Len(t, clients, 1)
	require.Equal(t, w.client.ID, clients[0].ID)
	require.Equal(t, 200.0, clients[0].Paid)

	rec = w.do(t, nethttp.MethodGet, "/admin/best-clients?start=2020-08-01&end=2020-08-31&limit=0", nil, nil)
	require.Equal(t, nethttp.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid_limit", errorCode(t, rec))

	rec = w.do(t, nethttp.MethodGet, "/admin/best-clients?start=2020-08-31&end=2020-08-01", nil, nil)
	require.Equal(t, nethttp.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid_range", errorCode(t, rec))
}

func TestContractRoutes(t *testing.T) {
	w := newWorld(t)
	path := fmt.Sprintf("/contracts/%d", w.contract.ID)

	rec := w.do(t, nethttp.MethodGet, path, w.client, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)

	rec = w.do(t, nethttp.MethodGet, path, w.stranger, nil)
	require.Equal(t, nethttp.StatusNotFound, rec.Code)

	rec = w.do(t, nethttp.MethodGet, "/contracts", w.contractor, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)

	rec = w.do(t, nethttp.MethodGet, "/jobs/unpaid", w.client, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
}

func TestHealthAndMetrics(t *testing.T) {
	w := newWorld(t)
	rec := w.do(t, nethttp.MethodGet, "/healthcheck", nil, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	rec = w.do(t, nethttp.MethodGet, "/readyz", nil, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)

	rec = w.do(t, nethttp.MethodGet, "/metrics", nil, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "ledger_api_requests_total")
}
