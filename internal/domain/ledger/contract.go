package ledger

import "time"

type ContractStatus string

const (
	ContractStatusNew        ContractStatus = "new"
	ContractStatusInProgress ContractStatus = "in_progress"
	ContractStatusTerminated ContractStatus = "terminated"
)

// Contract binds one client and one contractor.
type Contract struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Terms        string         `gorm:"not null;default:'';column:terms" json:"terms"`
	Status       ContractStatus `gorm:"not null;column:status;index" json:"status"`
	ClientID     uint           `gorm:"not null;column:client_id;index" json:"client_id"`
	ContractorID uint           `gorm:"not null;column:contractor_id;index" json:"contractor_id"`

	Client     *Profile `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Contractor *Profile `gorm:"foreignKey:ContractorID" json:"contractor,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Contract) TableName() string { return "contracts" }

// HasParty reports whether profileID is the client or the contractor of c.
func (c *Contract) HasParty(profileID uint) bool {
	return c != nil && profileID != 0 && (c.ClientID == profileID || c.ContractorID == profileID)
}
