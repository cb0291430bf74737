package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/ledger-backend/internal/domain/aggregates"
)

// idParam reads a positive integer path parameter. A malformed id reads as a missing entity.
func idParam(c *gin.Context, name string) (uint, error) {
	raw := strings.TrimSpace(c.Param(name))
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, domainagg.NewError(domainagg.CodeNotFound, "http."+name, fmt.Sprintf("invalid %s %q", name, raw), nil)
	}
	return uint(n), nil
}

// limitQuery reads ?limit=. Absent yields def; anything that is not a positive integer is InvalidLimit.
func limitQuery(c *gin.Context, def int) (int, error) {
	raw, ok := c.GetQuery("limit")
	if !ok || strings.TrimSpace(raw) == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, domainagg.NewError(domainagg.CodeInvalidLimit, "http.limit", fmt.Sprintf("invalid limit %q", raw), nil)
	}
	return n, nil
}
