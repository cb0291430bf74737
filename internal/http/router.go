package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/ledger-backend/internal/http/handlers"
	httpMW "github.com/yungbote/ledger-backend/internal/http/middleware"
	"github.com/yungbote/ledger-backend/internal/observability"
	"github.com/yungbote/ledger-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	TracingEnabled bool
	AllowedOrigins []string
	RequestTimeout time.Duration

	ProfileMiddleware *httpMW.ProfileMiddleware

	JobHandler      *httpH.JobHandler
	BalanceHandler  *httpH.BalanceHandler
	ContractHandler *httpH.ContractHandler
	AdminHandler    *httpH.AdminHandler
	HealthHandler   *httpH.HealthHandler
}

const metricsRoute = "/metrics"

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.AttachRequestContext(cfg.RequestTimeout))
	r.Use(httpMW.Metrics(cfg.Metrics, metricsRoute))
	r.Use(httpMW.RequestLogger(log.With("component", "http")))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}
	if cfg.Metrics != nil {
		r.GET(metricsRoute, gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	// Reports carry no caller.
	if cfg.AdminHandler != nil {
		admin := r.Group("/admin")
		admin.GET("/best-profession", cfg.AdminHandler.BestProfession)
		admin.GET("/best-clients", cfg.AdminHandler.BestClients)
	}

	protected := r.Group("/")
	if cfg.ProfileMiddleware != nil {
		protected.Use(cfg.ProfileMiddleware.RequireProfile())
	}
	{
		if cfg.ContractHandler != nil {
			protected.GET("/contracts/:id", cfg.ContractHandler.GetContract)
			protected.GET("/contracts", cfg.ContractHandler.ListContracts)
		}
		if cfg.JobHandler != nil {
			protected.GET("/jobs/unpaid", cfg.JobHandler.ListUnpaid)
			protected.POST("/jobs/:job_id/pay", cfg.JobHandler.PayJob)
		}
		if cfg.BalanceHandler != nil {
			protected.POST("/balances/deposit/:userId", cfg.BalanceHandler.Deposit)
			protected.GET("/profiles/:id/entries", cfg.BalanceHandler.ListEntries)
		}
	}

	return r
}
