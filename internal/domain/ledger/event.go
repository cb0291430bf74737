package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/ledger-backend/internal/domain/money"
)

type EventType string

const (
	EventJobPaid          EventType = "job.paid"
	EventBalanceDeposited EventType = "balance.deposited"
)

// LedgerEvent announces a committed balance mutation.
type LedgerEvent struct {
	ID           uuid.UUID    `json:"id"`
	Type         EventType    `json:"type"`
	TransferID   uuid.UUID    `json:"transfer_id"`
	JobID        uint         `json:"job_id,omitempty"`
	ClientID     uint         `json:"client_id"`
	ContractorID uint         `json:"contractor_id,omitempty"`
	Amount       money.Amount `json:"amount"`
	OccurredAt   time.Time    `json:"occurred_at"`
}
