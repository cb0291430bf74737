package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/ledger-backend/internal/clients/redis"
	"github.com/yungbote/ledger-backend/internal/data/aggregates"
	"github.com/yungbote/ledger-backend/internal/observability"
	"github.com/yungbote/ledger-backend/internal/platform/logger"
	"github.com/yungbote/ledger-backend/internal/services"
)

type Services struct {
	Ledger   services.LedgerService
	Reports  services.ReportService
	Contract services.ContractService
	Identity services.IdentityService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, bus redis.LedgerBus, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")
	var hooks aggregates.Hooks
	if metrics != nil {
		hooks = aggregates.NewObservabilityHooks(metrics)
	}
	ledgerAgg := aggregates.NewLedgerAggregate(aggregates.LedgerAggregateDeps{
		Base: aggregates.BaseDeps{
			DB:        db,
			Log:       log,
			Hooks:     hooks,
			TxTimeout: cfg.TxTimeout,
		},
		Profiles:  r.Profile,
		Contracts: r.Contract,
		Jobs:      r.Job,
		Entries:   r.Entry,
	})
	return Services{
		Ledger: services.NewLedgerService(services.LedgerServiceDeps{
			Log:       log,
			Aggregate: ledgerAgg,
			Entries:   r.Entry,
			Bus:       bus,
			Metrics:   metrics,
		}),
		Reports:  services.NewReportService(log, r.Job, metrics),
		Contract: services.NewContractService(log, r.Contract, r.Job),
		Identity: services.NewIdentityService(log, r.Profile, cfg.JWTSecretKey),
	}
}
