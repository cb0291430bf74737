package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/ledger-backend/internal/http/response"
	"github.com/yungbote/ledger-backend/internal/services"
)

type ContractHandler struct {
	contracts services.ContractService
}

func NewContractHandler(contracts services.ContractService) *ContractHandler {
	return &ContractHandler{contracts: contracts}
}

// GET /contracts/:id
func (h *ContractHandler) GetContract(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	contract, err := h.contracts.GetContract(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, contract)
}

// GET /contracts
func (h *ContractHandler) ListContracts(c *gin.Context) {
	contracts, err := h.contracts.ListContracts(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, contracts)
}
