package services

import (
	"context"
	"fmt"

	"github.com/yungbote/ledger-backend/internal/data/repos"
	domainagg "github.com/yungbote/ledger-backend/internal/domain/aggregates"
	"github.com/yungbote/ledger-backend/internal/domain/ledger"
	"github.com/yungbote/ledger-backend/internal/platform/ctxutil"
	"github.com/yungbote/ledger-backend/internal/platform/dbctx"
	"github.com/yungbote/ledger-backend/internal/platform/logger"
)

// ContractService serves the caller's view of contracts and open work.
type ContractService interface {
	GetContract(ctx context.Context, id uint) (*ledger.Contract, error)
	ListContracts(ctx context.Context) ([]*ledger.Contract, error)
	ListUnpaidJobs(ctx context.Context) ([]*ledger.Job, error)
}

type contractService struct {
	log       *logger.Logger
	contracts repos.ContractRepo
	jobs      repos.JobRepo
}

func NewContractService(log *logger.Logger, contracts repos.ContractRepo, jobs repos.JobRepo) ContractService {
	if log == nil {
		log = logger.Nop()
	}
	return &contractService{
		log:       log.With("service", "ContractService"),
		contracts: contracts,
		jobs:      jobs,
	}
}

func (s *contractService) GetContract(ctx context.Context, id uint) (*ledger.Contract, error) {
	const op = "ContractService.GetContract"
	caller, err := requireCaller(ctx, op)
	if err != nil {
		return nil, err
	}
	c, err := s.contracts.GetByIDForProfile(dbctx.Context{Ctx: ctx}, id, caller)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	// Contracts of other parties read as missing.
	if c == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("contract %d not found", id), nil)
	}
	return c, nil
}

func (s *contractService) ListContracts(ctx context.Context) ([]*ledger.Contract, error) {
	const op = "ContractService.ListContracts"
	caller, err := requireCaller(ctx, op)
	if err != nil {
		return nil, err
	}
	rows, err := s.contracts.ListActiveForProfile(dbctx.Context{Ctx: ctx}, caller)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	return rows, nil
}

func (s *contractService) ListUnpaidJobs(ctx context.Context) ([]*ledger.Job, error) {
	const op = "ContractService.ListUnpaidJobs"
	caller, err := requireCaller(ctx, op)
	if err != nil {
		return nil, err
	}
	rows, err := s.jobs.ListUnpaidForProfile(dbctx.Context{Ctx: ctx}, caller)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	return rows, nil
}

func requireCaller(ctx context.Context, op string) (uint, error) {
	caller := ctxutil.CallerProfileID(ctx)
	if caller == 0 {
		return 0, domainagg.NewError(domainagg.CodeForbidden, op, "caller profile required", nil)
	}
	return caller, nil
}
