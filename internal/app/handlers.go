package app

import (
	"gorm.io/gorm"

	ledgerhttp "github.com/yungbote/ledger-backend/internal/http"
	httpH "github.com/yungbote/ledger-backend/internal/http/handlers"
	httpMW "github.com/yungbote/ledger-backend/internal/http/middleware"
	"github.com/yungbote/ledger-backend/internal/observability"
	"github.com/yungbote/ledger-backend/internal/platform/logger"
)

type Middleware struct {
	Profile *httpMW.ProfileMiddleware
}

type Handlers struct {
	Health   *httpH.HealthHandler
	Job      *httpH.JobHandler
	Balance  *httpH.BalanceHandler
	Contract *httpH.ContractHandler
	Admin    *httpH.AdminHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(db),
		Job:      httpH.NewJobHandler(s.Ledger, s.Contract),
		Balance:  httpH.NewBalanceHandler(s.Ledger),
		Contract: httpH.NewContractHandler(s.Contract),
		Admin:    httpH.NewAdminHandler(s.Reports),
	}
}

func wireMiddleware(log *logger.Logger, s Services) Middleware {
	return Middleware{Profile: httpMW.NewProfileMiddleware(log, s.Identity)}
}

func routerConfig(log *logger.Logger, cfg Config, metrics *observability.Metrics, h Handlers, mw Middleware) ledgerhttp.RouterConfig {
	return ledgerhttp.RouterConfig{
		Log:               log,
		Metrics:           metrics,
		ServiceName:       cfg.Otel.ServiceName,
		TracingEnabled:    cfg.Otel.Enabled,
		AllowedOrigins:    cfg.AllowedOrigins,
		RequestTimeout:    cfg.RequestTimeout,
		ProfileMiddleware: mw.Profile,
		JobHandler:        h.Job,
		BalanceHandler:    h.Balance,
		ContractHandler:   h.Contract,
		AdminHandler:      h.Admin,
		HealthHandler:     h.Health,
	}
}
