package ledger

import "github.com/yungbote/ledger-backend/internal/domain/money"

// ProfessionTotal is the paid revenue of one profession inside a window.
type ProfessionTotal struct {
	Profession string       `json:"profession"`
	Total      money.Amount `json:"total"`
}

// ClientTotal is the amount one client paid inside a window.
type ClientTotal struct {
	ID        uint         `json:"id"`
	FullName  string       `json:"fullName"`
	TotalPaid money.Amount `json:"paid"`
}
