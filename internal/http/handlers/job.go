package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/ledger-backend/internal/http/response"
	"github.com/yungbote/ledger-backend/internal/services"
)

type JobHandler struct {
	ledger    services.LedgerService
	contracts services.ContractService
}

func NewJobHandler(ledger services.LedgerService, contracts services.ContractService) *JobHandler {
	return &JobHandler{ledger: ledger, contracts: contracts}
}

// POST /jobs/:job_id/pay
func (h *JobHandler) PayJob(c *gin.Context) {
	jobID, err := idParam(c, "job_id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	job, err := h.ledger.PayJob(c.Request.Context(), jobID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, job)
}

// GET /jobs/unpaid
func (h *JobHandler) ListUnpaid(c *gin.Context) {
	jobs, err := h.contracts.ListUnpaidJobs(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, jobs)
}
