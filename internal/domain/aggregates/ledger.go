package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/ledger-backend/internal/domain/ledger"
	"github.com/yungbote/ledger-backend/internal/domain/money"
)

var LedgerAggregatePolicy = Policy{
	Name:             "Ledger.BalanceAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	LockPolicy:       LockPolicyRowForUpdate,
	Notes: "Owns every profile balance mutation. Job payment and deposit lock the job and the " +
		"profiles they touch, write journal entries, and commit as one unit.",
}

// LedgerAggregate owns the balance invariants: money is conserved by transfers, balances never go
// negative, and a job price is deducted at most once.
//
// Failures return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeForbidden, CodeAlreadyPaid, CodeInsufficientFunds,
// CodeInvalidAmount, CodeDepositLimitExceeded, CodeInvariantViolation, CodeRetryable, CodeInternal.
type LedgerAggregate interface {
	Aggregate

	// PayJob moves the job price from the contract client to the contractor and marks the job paid.
	PayJob(ctx context.Context, in PayJobInput) (PayJobResult, error)

	// Deposit credits a client balance, capped at a quarter of what the client currently owes.
	Deposit(ctx context.Context, in DepositInput) (DepositResult, error)
}

type PayJobInput struct {
	JobID           uint
	CallerProfileID uint
	PaidAt          time.Time
}

type PayJobResult struct {
	Job        *ledger.Job
	TransferID uuid.UUID
	Client     *ledger.Profile
	Contractor *ledger.Profile
}

type DepositInput struct {
	ProfileID       uint
	CallerProfileID uint
	Amount          money.Amount
	DepositedAt     time.Time
}

type DepositResult struct {
	Profile    *ledger.Profile
	TransferID uuid.UUID
	DueAmount  money.Amount
	Limit      money.Amount
}
