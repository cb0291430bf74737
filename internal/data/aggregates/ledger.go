package aggregates

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/yungbote/ledger-backend/internal/data/repos"
	domainagg "github.com/yungbote/ledger-backend/internal/domain/aggregates"
	"github.com/yungbote/ledger-backend/internal/domain/ledger"
	"github.com/yungbote/ledger-backend/internal/domain/money"
	"github.com/yungbote/ledger-backend/internal/platform/dbctx"
	"gorm.io/datatypes"
)

// Deposits may reach DepositShareNum/DepositShareDen of the current due amount.
const (
	DepositShareNum int64 = 1
	DepositShareDen int64 = 4
)

type LedgerAggregateDeps struct {
	Base BaseDeps

	Profiles  repos.ProfileRepo
	Contracts repos.ContractRepo
	Jobs      repos.JobRepo
	Entries   repos.LedgerEntryRepo
}

type ledgerAggregate struct {
	deps LedgerAggregateDeps
}

func NewLedgerAggregate(deps LedgerAggregateDeps) domainagg.LedgerAggregate {
	deps.Base = deps.Base.withDefaults()
	return &ledgerAggregate{deps: deps}
}

func (a *ledgerAggregate) Policy() domainagg.Policy {
	return domainagg.LedgerAggregatePolicy
}

func (a *ledgerAggregate) configured() bool {
	return a.deps.Profiles != nil && a.deps.Contracts != nil && a.deps.Jobs != nil && a.deps.Entries != nil
}

func (a *ledgerAggregate) PayJob(ctx context.Context, in domainagg.PayJobInput) (domainagg.PayJobResult, error) {
	const op = "Ledger.Balance.PayJob"
	var out domainagg.PayJobResult
	if in.JobID == 0 {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing job_id", nil)
	}
	if in.CallerProfileID == 0 {
		return out, domainagg.NewError(domainagg.CodeForbidden, op, "missing caller profile", nil)
	}
	if !a.configured() {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "ledger aggregate repos not configured", nil)
	}

	paidAt := in.PaidAt.UTC()
	if in.PaidAt.IsZero() {
		paidAt = a.deps.Base.Now().UTC()
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		job, err := a.deps.Jobs.LockByID(dbc, in.JobID)
		if err != nil {
			return err
		}
		if job == nil {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("job %d not found", in.JobID), nil)
		}
		contract, err := a.deps.Contracts.GetByID(dbc, job.ContractID)
		if err != nil {
			return err
		}
		if contract == nil {
			return domainagg.NewError(domainagg.CodePreconditionFailed, op, "job has no contract", nil)
		}
		if contract.ClientID != in.CallerProfileID {
			return domainagg.NewError(domainagg.CodeForbidden, op, "only the contract client may pay this job", nil)
		}
		if job.Paid {
			return domainagg.NewError(domainagg.CodeAlreadyPaid, op, fmt.Sprintf("job %d is already paid", job.ID), nil)
		}
		if contract.ClientID == contract.ContractorID {
			return domainagg.NewError(domainagg.CodePreconditionFailed, op, "contract parties must differ", nil)
		}

		locked, err := a.deps.Profiles.LockByIDs(dbc, []uint{contract.ClientID, contract.ContractorID})
		if err != nil {
			return err
		}
		client, contractor := pickProfile(locked, contract.ClientID), pickProfile(locked, contract.ContractorID)
		if client == nil || contractor == nil {
			return domainagg.NewError(domainagg.CodePreconditionFailed, op, "contract parties not found", nil)
		}
		if client.Balance < job.Price {
			return domainagg.NewError(domainagg.CodeInsufficientFunds, op,
				fmt.Sprintf("balance %s is below job price %s", client.Balance, job.Price), nil)
		}

		clientAfter, err := client.Balance.Sub(job.Price)
		if err != nil {
			return InvariantError(err.Error())
		}
		contractorAfter, err := contractor.Balance.Add(job.Price)
		if err != nil {
			return InvariantError(err.Error())
		}

		ok, err := a.deps.Jobs.MarkPaid(dbc, job.ID, paidAt)
		if err != nil {
			return err
		}
		if !ok {
			return domainagg.NewError(domainagg.CodeAlreadyPaid, op, fmt.Sprintf("job %d is already paid", job.ID), nil)
		}
		ok, err = a.deps.Profiles.SetBalance(dbc, client.ID, client.Balance, clientAfter)
		if err != nil {
			return err
		}
		if err := RequireCASSuccess(ok, "client balance changed concurrently"); err != nil {
			return err
		}
		ok, err = a.deps.Profiles.SetBalance(dbc, contractor.ID, contractor.Balance, contractorAfter)
		if err != nil {
			return err
		}
		if err := RequireCASSuccess(ok, "contractor balance changed concurrently"); err != nil {
			return err
		}

		if err := a.verifyBalances(dbc,
			[]money.Amount{client.Balance, contractor.Balance},
			[]uint{client.ID, contractor.ID},
		); err != nil {
			return err
		}

		transferID := uuid.New()
		meta := entryMetadata(map[string]any{
			"caller_profile_id": in.CallerProfileID,
			"contract_id":       contract.ID,
		})
		jobID := job.ID
		entries := []*ledger.LedgerEntry{
			{
				TransferID:    transferID,
				ProfileID:     client.ID,
				JobID:         &jobID,
				Kind:          ledger.EntryKindPaymentDebit,
				Amount:        -job.Price,
				BalanceBefore: client.Balance,
				BalanceAfter:  clientAfter,
				Metadata:      meta,
				CreatedAt:     paidAt,
			},
			{
				TransferID:    transferID,
				ProfileID:     contractor.ID,
				JobID:         &jobID,
				Kind:          ledger.EntryKindPaymentCredit,
				Amount:        job.Price,
				BalanceBefore: contractor.Balance,
				BalanceAfter:  contractorAfter,
				Metadata:      meta,
				CreatedAt:     paidAt,
			},
		}
		if _, err := a.deps.Entries.Create(dbc, entries); err != nil {
			return err
		}

		job.Paid = true
		job.PaymentDate = &paidAt
		job.UpdatedAt = paidAt
		job.Contract = nil
		client.Balance = clientAfter
		contractor.Balance = contractorAfter

		out = domainagg.PayJobResult{
			Job:        job,
			TransferID: transferID,
			Client:     client,
			Contractor: contractor,
		}
		return nil
	})
	if err != nil {
		return domainagg.PayJobResult{}, err
	}
	a.deps.Base.Hooks.ObserveMoney("paid", out.Job.Price)
	return out, nil
}

func (a *ledgerAggregate) Deposit(ctx context.Context, in domainagg.DepositInput) (domainagg.DepositResult, error) {
	const op = "Ledger.Balance.Deposit"
	var out domainagg.DepositResult
	if in.ProfileID == 0 {
		return out, domainagg.NewError(domainagg.CodeNotFound, op, "missing profile id", nil)
	}
	if !in.Amount.IsPositive() {
		return out, domainagg.NewError(domainagg.CodeInvalidAmount, op, "deposit amount must be positive", nil)
	}
	if !a.configured() {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "ledger aggregate repos not configured", nil)
	}

	depositedAt := in.DepositedAt.UTC()
	if in.DepositedAt.IsZero() {
		depositedAt = a.deps.Base.Now().UTC()
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		// The profile lock orders this deposit against any PayJob on the same client,
		// so the due amount below is read after such a payment commits.
		locked, err := a.deps.Profiles.LockByIDs(dbc, []uint{in.ProfileID})
		if err != nil {
			return err
		}
		profile := pickProfile(locked, in.ProfileID)
		if profile == nil || !profile.IsClient() {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("client %d not found", in.ProfileID), nil)
		}

		due, err := a.deps.Jobs.SumUnpaidForClient(dbc, profile.ID)
		if err != nil {
			return err
		}
		limit := money.Share(due, DepositShareNum, DepositShareDen)
		if money.ExceedsShare(in.Amount, due, DepositShareNum, DepositShareDen) {
			return domainagg.NewError(domainagg.CodeDepositLimitExceeded, op,
				fmt.Sprintf("deposit %s exceeds 25%% of due amount %s", in.Amount, due), nil)
		}

		after, err := profile.Balance.Add(in.Amount)
		if err != nil {
			return domainagg.NewError(domainagg.CodeInvalidAmount, op, "deposit overflows balance", err)
		}
		ok, err := a.deps.Profiles.SetBalance(dbc, profile.ID, profile.Balance, after)
		if err != nil {
			return err
		}
		if err := RequireCASSuccess(ok, "balance changed concurrently"); err != nil {
			return err
		}

		transferID := uuid.New()
		entry := &ledger.LedgerEntry{
			TransferID:    transferID,
			ProfileID:     profile.ID,
			Kind:          ledger.EntryKindDeposit,
			Amount:        in.Amount,
			BalanceBefore: profile.Balance,
			BalanceAfter:  after,
			Metadata: entryMetadata(map[string]any{
				"caller_profile_id": in.CallerProfileID,
				"due_amount":        due.Minor(),
			}),
			CreatedAt: depositedAt,
		}
		if _, err := a.deps.Entries.Create(dbc, []*ledger.LedgerEntry{entry}); err != nil {
			return err
		}

		profile.Balance = after
		out = domainagg.DepositResult{
			Profile:    profile,
			TransferID: transferID,
			DueAmount:  due,
			Limit:      limit,
		}
		return nil
	})
	if err != nil {
		return domainagg.DepositResult{}, err
	}
	a.deps.Base.Hooks.ObserveMoney("deposited", in.Amount)
	return out, nil
}

// verifyBalances re-reads the written profiles and checks sign and conservation before commit.
func (a *ledgerAggregate) verifyBalances(dbc dbctx.Context, before []money.Amount, ids []uint) error {
	rows, err := a.deps.Profiles.GetByIDs(dbc, ids)
	if err != nil {
		return err
	}
	if len(rows) != len(ids) {
		return InvariantError("written profiles vanished")
	}
	after := make([]money.Amount, 0, len(rows))
	for _, p := range rows {
		if err := RequireNonNegative(fmt.Sprintf("profile %d", p.ID), p.Balance); err != nil {
			return err
		}
		after = append(after, p.Balance)
	}
	return RequireConserved(before, after)
}

func pickProfile(rows []*ledger.Profile, id uint) *ledger.Profile {
	for _, p := range rows {
		if p != nil && p.ID == id {
			return p
		}
	}
	return nil
}

func entryMetadata(m map[string]any) datatypes.JSON {
	b, err := json.Marshal(m)
	if err != nil {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(b)
}
