package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/ledger-backend/internal/domain/money"
	"gorm.io/datatypes"
)

type EntryKind string

const (
	EntryKindPaymentDebit  EntryKind = "payment_debit"
	EntryKindPaymentCredit EntryKind = "payment_credit"
	EntryKindDeposit       EntryKind = "deposit"
)

// LedgerEntry journals one balance change. Entries of one transfer share TransferID.
type LedgerEntry struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TransferID    uuid.UUID      `gorm:"type:uuid;not null;index;column:transfer_id" json:"transfer_id"`
	ProfileID     uint           `gorm:"not null;index;column:profile_id" json:"profile_id"`
	JobID         *uint          `gorm:"column:job_id;index" json:"job_id,omitempty"`
	Kind          EntryKind      `gorm:"not null;column:kind" json:"kind"`
	Amount        money.Amount   `gorm:"not null;column:amount" json:"amount"`
	BalanceBefore money.Amount   `gorm:"not null;column:balance_before" json:"balance_before"`
	BalanceAfter  money.Amount   `gorm:"not null;column:balance_after" json:"balance_after"`
	Metadata      datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt     time.Time      `gorm:"not null;index" json:"created_at"`
}

func (LedgerEntry) TableName() string { return "ledger_entries" }
