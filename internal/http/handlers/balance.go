package handlers

import (
	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/ledger-backend/internal/domain/aggregates"
	"github.com/yungbote/ledger-backend/internal/domain/money"
	"github.com/yungbote/ledger-backend/internal/http/response"
	"github.com/yungbote/ledger-backend/internal/services"
)

type BalanceHandler struct {
	ledger services.LedgerService
}

func NewBalanceHandler(ledger services.LedgerService) *BalanceHandler {
	return &BalanceHandler{ledger: ledger}
}

// depositRequest accepts "amount" or the older "value" key, as a JSON number or string.
type depositRequest struct {
	Amount *money.Amount `json:"amount"`
	Value  *money.Amount `json:"value"`
}

func (r depositRequest) amount() (money.Amount, bool) {
	switch {
	case r.Amount != nil:
		return *r.Amount, true
	case r.Value != nil:
		return *r.Value, true
	default:
		return 0, false
	}
}

// POST /balances/deposit/:userId
func (h *BalanceHandler) Deposit(c *gin.Context) {
	const op = "BalanceHandler.Deposit"
	profileID, err := idParam(c, "userId")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	var req depositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAPIError(c, domainagg.NewError(domainagg.CodeInvalidAmount, op, err.Error(), err))
		return
	}
	amount, ok := req.amount()
	if !ok {
		response.RespondAPIError(c, domainagg.NewError(domainagg.CodeInvalidAmount, op, "amount is required", nil))
		return
	}
	profile, err := h.ledger.Deposit(c.Request.Context(), profileID, amount)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, profile)
}

// GET /profiles/:id/entries
func (h *BalanceHandler) ListEntries(c *gin.Context) {
	profileID, err := idParam(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	limit, err := limitQuery(c, services.DefaultEntriesLimit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	entries, err := h.ledger.ListEntries(c.Request.Context(), profileID, limit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, entries)
}
