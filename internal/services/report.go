package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/ledger-backend/internal/data/repos"
	domainagg "github.com/yungbote/ledger-backend/internal/domain/aggregates"
	"github.com/yungbote/ledger-backend/internal/domain/ledger"
	"github.com/yungbote/ledger-backend/internal/observability"
	"github.com/yungbote/ledger-backend/internal/platform/dbctx"
	"github.com/yungbote/ledger-backend/internal/platform/logger"
)

const DefaultBestClientsLimit = 2

// ReportService answers read-only revenue questions over a paid window. Both reports are pure reads.
type ReportService interface {
	// BestProfession returns the profession that earned most in the window, or nil when nothing was paid.
	BestProfession(ctx context.Context, start, end string) (*ledger.ProfessionTotal, error)
	// BestClients returns up to limit clients ranked by amount paid in the window.
	BestClients(ctx context.Context, start, end string, limit int) ([]ledger.ClientTotal, error)
}

type reportService struct {
	log     *logger.Logger
	jobs    repos.JobRepo
	metrics *observability.Metrics
	tracer  trace.Tracer
}

func NewReportService(log *logger.Logger, jobs repos.JobRepo, metrics *observability.Metrics) ReportService {
	if log == nil {
		log = logger.Nop()
	}
	return &reportService{
		log:     log.With("service", "ReportService"),
		jobs:    jobs,
		metrics: metrics,
		tracer:  observability.Tracer(),
	}
}

func (s *reportService) BestProfession(ctx context.Context, start, end string) (out *ledger.ProfessionTotal, err error) {
	const op = "ReportService.BestProfession"
	ctx, span := s.tracer.Start(ctx, "report.BestProfession")
	defer span.End()
	defer s.observe("best_profession", time.Now(), &err)

	w, err := parseWindow(op, start, end)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	span.SetAttributes(windowAttrs(w)...)

	totals, err := s.jobs.SumPaidByProfession(dbctx.Context{Ctx: ctx}, w)
	if err != nil {
		err = domainagg.Wrap(domainagg.CodeInternal, op, err)
		recordSpanError(span, err)
		s.log.Error("best profession query failed", "error", err)
		return nil, err
	}
	ranked := rankProfessions(totals)
	if len(ranked) == 0 {
		return nil, nil
	}
	best := ranked[0]
	span.SetAttributes(attribute.String("report.profession", best.Profession))
	return &best, nil
}

func (s *reportService) BestClients(ctx context.Context, start, end string, limit int) (out []ledger.ClientTotal, err error) {
	const op = "ReportService.BestClients"
	ctx, span := s.tracer.Start(ctx, "report.BestClients", trace.WithAttributes(attribute.Int("report.limit", limit)))
	defer span.End()
	defer s.observe("best_clients", time.Now(), &err)

	if limit <= 0 {
		err = domainagg.NewError(domainagg.CodeInvalidLimit, op, "limit must be a positive integer", nil)
		recordSpanError(span, err)
		return nil, err
	}
	w, err := parseWindow(op, start, end)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	span.SetAttributes(windowAttrs(w)...)

	totals, err := s.jobs.SumPaidByClient(dbctx.Context{Ctx: ctx}, w)
	if err != nil {
		err = domainagg.Wrap(domainagg.CodeInternal, op, err)
		recordSpanError(span, err)
		s.log.Error("best clients query failed", "error", err)
		return nil, err
	}
	return rankClients(totals, limit), nil
}

func (s *reportService) observe(report string, start time.Time, err *error) {
	status := "ok"
	if err != nil && *err != nil {
		status = string(domainagg.CodeOf(*err))
	}
	s.metrics.ObserveReport(report, status, time.Since(start))
}

func parseWindow(op, start, end string) (ledger.Window, error) {
	w, err := ledger.ParseWindow(start, end)
	if err == nil {
		return w, nil
	}
	if errors.Is(err, ledger.ErrWindowReversed) {
		return ledger.Window{}, domainagg.NewError(domainagg.CodeInvalidRange, op, err.Error(), err)
	}
	return ledger.Window{}, domainagg.NewError(domainagg.CodeValidation, op, err.Error(), err)
}

func windowAttrs(w ledger.Window) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("report.start", w.Start.Format(time.RFC3339)),
		attribute.String("report.end", w.End.Format(time.RFC3339)),
	}
}

// rankProfessions orders by total desc, then profession name asc. Zero totals are dropped.
func rankProfessions(totals []ledger.ProfessionTotal) []ledger.ProfessionTotal {
	out := make([]ledger.ProfessionTotal, 0, len(totals))
	for _, t := range totals {
		if t.Total.IsPositive() {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Profession < out[j].Profession
	})
	return out
}

// rankClients orders by paid desc, then profile id asc, and keeps the first limit.
// Clients that paid nothing in the window are not ranked.
func rankClients(totals []ledger.ClientTotal, limit int) []ledger.ClientTotal {
	out := make([]ledger.ClientTotal, 0, len(totals))
	for _, t := range totals {
		if t.TotalPaid.IsPositive() {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalPaid != out[j].TotalPaid {
			return out[i].TotalPaid > out[j].TotalPaid
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
