package ledger

import (
	"strings"
	"time"

	"github.com/yungbote/ledger-backend/internal/domain/money"
)

type ProfileType string

const (
	ProfileTypeClient     ProfileType = "client"
	ProfileTypeContractor ProfileType = "contractor"
)

func (t ProfileType) Valid() bool {
	return t == ProfileTypeClient || t == ProfileTypeContractor
}

// Profile is an account holding a cash balance. Balance is only written by the ledger aggregate.
type Profile struct {
	ID         uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName  string       `gorm:"not null;column:first_name" json:"first_name"`
	LastName   string       `gorm:"not null;column:last_name" json:"last_name"`
	Profession string       `gorm:"not null;default:'';column:profession;index" json:"profession"`
	Balance    money.Amount `gorm:"not null;default:0;column:balance;check:chk_profiles_balance_non_negative,balance >= 0" json:"balance"`
	Type       ProfileType  `gorm:"not null;column:type;index" json:"type"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

func (p *Profile) FullName() string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (p *Profile) IsClient() bool { return p != nil && p.Type == ProfileTypeClient }
