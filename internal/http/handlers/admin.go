package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/ledger-backend/internal/http/response"
	"github.com/yungbote/ledger-backend/internal/services"
)

type AdminHandler struct {
	reports services.ReportService
}

func NewAdminHandler(reports services.ReportService) *AdminHandler {
	return &AdminHandler{reports: reports}
}

// GET /admin/best-profession?start=&end=
// Responds with null when nothing was paid in the window.
func (h *AdminHandler) BestProfession(c *gin.Context) {
	best, err := h.reports.BestProfession(c.Request.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, best)
}

// GET /admin/best-clients?start=&end=&limit=
func (h *AdminHandler) BestClients(c *gin.Context) {
	limit, err := limitQuery(c, services.DefaultBestClientsLimit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	clients, err := h.reports.BestClients(c.Request.Context(), c.Query("start"), c.Query("end"), limit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, clients)
}
