package ledger

import (
	"time"

	"github.com/yungbote/ledger-backend/internal/domain/money"
)

// Job is a billable unit of work. Paid moves false -> true once, together with PaymentDate.
type Job struct {
	ID          uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	Description string       `gorm:"not null;default:'';column:description" json:"description"`
	Price       money.Amount `gorm:"not null;column:price;check:chk_jobs_price_positive,price > 0" json:"price"`
	Paid        bool         `gorm:"not null;default:false;column:paid;index" json:"paid"`
	PaymentDate *time.Time   `gorm:"column:payment_date;index" json:"payment_date,omitempty"`
	ContractID  uint         `gorm:"not null;column:contract_id;index" json:"contract_id"`

	Contract *Contract `gorm:"foreignKey:ContractID" json:"contract,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Job) TableName() string { return "jobs" }
