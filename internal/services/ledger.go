package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/ledger-backend/internal/clients/redis"
	"github.com/yungbote/ledger-backend/internal/data/repos"
	domainagg "github.com/yungbote/ledger-backend/internal/domain/aggregates"
	"github.com/yungbote/ledger-backend/internal/domain/ledger"
	"github.com/yungbote/ledger-backend/internal/domain/money"
	"github.com/yungbote/ledger-backend/internal/observability"
	"github.com/yungbote/ledger-backend/internal/platform/ctxutil"
	"github.com/yungbote/ledger-backend/internal/platform/dbctx"
	"github.com/yungbote/ledger-backend/internal/platform/logger"
)

const (
	DefaultEntriesLimit = 50
	MaxEntriesLimit     = 500
)

type LedgerService interface {
	// PayJob pays jobID on behalf of the caller in ctx.
	PayJob(ctx context.Context, jobID uint) (*ledger.Job, error)
	// Deposit credits profileID; the caller in ctx is journalled.
	Deposit(ctx context.Context, profileID uint, amount money.Amount) (*ledger.Profile, error)
	// ListEntries returns the caller's own journal, newest first. limit 0 means DefaultEntriesLimit.
	ListEntries(ctx context.Context, profileID uint, limit int) ([]*ledger.LedgerEntry, error)
}

type LedgerServiceDeps struct {
	Log       *logger.Logger
	Aggregate domainagg.LedgerAggregate
	Entries   repos.LedgerEntryRepo
	Bus       redis.LedgerBus
	Metrics   *observability.Metrics
	Now       func() time.Time
}

type ledgerService struct {
	log     *logger.Logger
	agg     domainagg.LedgerAggregate
	entries repos.LedgerEntryRepo
	bus     redis.LedgerBus
	metrics *observability.Metrics
	tracer  trace.Tracer
	now     func() time.Time
}

func NewLedgerService(deps LedgerServiceDeps) LedgerService {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	bus := deps.Bus
	if bus == nil {
		bus = redis.NoopBus{}
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &ledgerService{
		log:     log.With("service", "LedgerService"),
		agg:     deps.Aggregate,
		entries: deps.Entries,
		bus:     bus,
		metrics: deps.Metrics,
		tracer:  observability.Tracer(),
		now:     now,
	}
}

func (s *ledgerService) PayJob(ctx context.Context, jobID uint) (*ledger.Job, error) {
	caller := ctxutil.CallerProfileID(ctx)
	ctx, span := s.tracer.Start(ctx, "ledger.PayJob", trace.WithAttributes(
		attribute.Int64("ledger.job_id", int64(jobID)),
		attribute.Int64("ledger.caller_profile_id", int64(caller)),
	))
	defer span.End()

	res, err := s.agg.PayJob(ctx, domainagg.PayJobInput{
		JobID:           jobID,
		CallerProfileID: caller,
		PaidAt:          s.now(),
	})
	if err != nil {
		s.logOutcome("PayJob", err, "job_id", jobID, "caller_profile_id", caller)
		recordSpanError(span, err)
		return nil, err
	}
	span.SetAttributes(
		attribute.String("ledger.transfer_id", res.TransferID.String()),
		attribute.Int64("ledger.amount_minor", res.Job.Price.Minor()),
	)
	s.log.Info("job paid",
		"job_id", res.Job.ID,
		"transfer_id", res.TransferID.String(),
		"client_id", res.Client.ID,
		"contractor_id", res.Contractor.ID,
		"amount", res.Job.Price.String(),
	)

	s.publish(ctx, ledger.LedgerEvent{
		Type:         ledger.EventJobPaid,
		TransferID:   res.TransferID,
		JobID:        res.Job.ID,
		ClientID:     res.Client.ID,
		ContractorID: res.Contractor.ID,
		Amount:       res.Job.Price,
		OccurredAt:   derefTime(res.Job.PaymentDate, s.now()),
	})
	return res.Job, nil
}

func (s *ledgerService) Deposit(ctx context.Context, profileID uint, amount money.Amount) (*ledger.Profile, error) {
	caller := ctxutil.CallerProfileID(ctx)
	ctx, span := s.tracer.Start(ctx, "ledger.Deposit", trace.WithAttributes(
		attribute.Int64("ledger.profile_id", int64(profileID)),
		attribute.Int64("ledger.caller_profile_id", int64(caller)),
		attribute.Int64("ledger.amount_minor", amount.Minor()),
	))
	defer span.End()

	depositedAt := s.now()
	res, err := s.agg.Deposit(ctx, domainagg.DepositInput{
		ProfileID:       profileID,
		CallerProfileID: caller,
		Amount:          amount,
		DepositedAt:     depositedAt,
	})
	if err != nil {
		s.logOutcome("Deposit", err, "profile_id", profileID, "amount", amount.String(), "caller_profile_id", caller)
		recordSpanError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.String("ledger.transfer_id", res.TransferID.String()))
	s.log.Info("balance deposited",
		"profile_id", res.Profile.ID,
		"transfer_id", res.TransferID.String(),
		"amount", amount.String(),
		"due_amount", res.DueAmount.String(),
	)

	s.publish(ctx, ledger.LedgerEvent{
		Type:       ledger.EventBalanceDeposited,
		TransferID: res.TransferID,
		ClientID:   res.Profile.ID,
		Amount:     amount,
		OccurredAt: depositedAt.UTC(),
	})
	return res.Profile, nil
}

func (s *ledgerService) ListEntries(ctx context.Context, profileID uint, limit int) ([]*ledger.LedgerEntry, error) {
	const op = "LedgerService.ListEntries"
	caller := ctxutil.CallerProfileID(ctx)
	if caller == 0 || caller != profileID {
		return nil, domainagg.NewError(domainagg.CodeForbidden, op, "journal is visible to its owner only", nil)
	}
	switch {
	case limit == 0:
		limit = DefaultEntriesLimit
	case limit < 0:
		return nil, domainagg.NewError(domainagg.CodeInvalidLimit, op, "limit must be positive", nil)
	case limit > MaxEntriesLimit:
		limit = MaxEntriesLimit
	}
	rows, err := s.entries.ListByProfile(dbctx.Context{Ctx: ctx}, profileID, limit)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	return rows, nil
}

// publish runs after commit; a failed publish never undoes the transfer.
func (s *ledgerService) publish(ctx context.Context, evt ledger.LedgerEvent) {
	evt.ID = uuid.New()
	status := "published"
	if err := s.bus.Publish(context.WithoutCancel(ctx), evt); err != nil {
		status = "failed"
		s.log.Warn("ledger event publish failed", "type", string(evt.Type), "transfer_id", evt.TransferID.String(), "error", err)
	}
	s.metrics.IncLedgerEvent(string(evt.Type), status)
}

func (s *ledgerService) logOutcome(op string, err error, kv ...interface{}) {
	fields := append(kv, "code", string(domainagg.CodeOf(err)), "error", err)
	if domainagg.IsBusinessOutcome(err) {
		s.log.Info(op+" refused", fields...)
		return
	}
	s.log.Error(op+" failed", fields...)
}

func recordSpanError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.SetAttributes(attribute.String("ledger.error_code", string(domainagg.CodeOf(err))))
	if domainagg.IsBusinessOutcome(err) {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func derefTime(t *time.Time, fallback time.Time) time.Time {
	if t == nil {
		return fallback.UTC()
	}
	return t.UTC()
}
