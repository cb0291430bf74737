package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/ledger-backend/internal/data/aggregates"
	"github.com/yungbote/ledger-backend/internal/data/repos"
	"github.com/yungbote/ledger-backend/internal/data/repos/testutil"
	"github.com/yungbote/ledger-backend/internal/domain/ledger"
	"github.com/yungbote/ledger-backend/internal/platform/ctxutil"
	"github.com/yungbote/ledger-backend/internal/platform/dbctx"
	"github.com/yungbote/ledger-backend/internal/platform/logger"
)

type testEnv struct {
	db        *gorm.DB
	log       *logger.Logger
	profiles  repos.ProfileRepo
	contracts repos.ContractRepo
	jobs      repos.JobRepo
	entries   repos.LedgerEntryRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	return &testEnv{
		db:        db,
		log:       log,
		profiles:  repos.NewProfileRepo(db, log),
		contracts: repos.NewContractRepo(db, log),
		jobs:      repos.NewJobRepo(db, log),
		entries:   repos.NewLedgerEntryRepo(db, log),
	}
}

func (e *testEnv) ledgerService(bus *recordingBus) LedgerService {
	agg := aggregates.NewLedgerAggregate(aggregates.LedgerAggregateDeps{
		Base:      aggregates.BaseDeps{DB: e.db, Log: e.log},
		Profiles:  e.profiles,
		Contracts: e.contracts,
		Jobs:      e.jobs,
		Entries:   e.entries,
	})
	deps := LedgerServiceDeps{Log: e.log, Aggregate: agg, Entries: e.entries}
	if bus != nil {
		deps.Bus = bus
	}
	return NewLedgerService(deps)
}

func asCaller(id uint) context.Context {
	return ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{ProfileID: id})
}

func dbcOf(ctx context.Context) dbctx.Context { return dbctx.Context{Ctx: ctx} }

type recordingBus struct {
	mu     sync.Mutex
	events []ledger.LedgerEvent
	fail   bool
}

func (b *recordingBus) Publish(_ context.Context, evt ledger.LedgerEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fail {
		return errors.New("redis down")
	}
	b.events = append(b.events, evt)
	return nil
}

func (b *recordingBus) Subscribe(context.Context, func(ledger.LedgerEvent)) error { return nil }
func (b *recordingBus) Client() goredis.UniversalClient                        { return nil }
func (b *recordingBus) Close() error                                           { return nil }

func (b *recordingBus) Events() []ledger.LedgerEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]ledger.LedgerEvent(nil), b.events...)
}
