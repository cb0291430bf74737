package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ledger-backend/internal/http/response"
	"github.com/yungbote/ledger-backend/internal/platform/logger"
	"github.com/yungbote/ledger-backend/internal/services"
)

const HeaderProfileID = "profile_id"

type ProfileMiddleware struct {
	log      *logger.Logger
	identity services.IdentityService
}

func NewProfileMiddleware(log *logger.Logger, identity services.IdentityService) *ProfileMiddleware {
	return &ProfileMiddleware{log: log.With("Middleware", "ProfileMiddleware"), identity: identity}
}

// RequireProfile resolves the caller and rejects the request with 401 when it is unknown.
func (pm *ProfileMiddleware) RequireProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, profile, err := pm.identity.Authenticate(c.Request.Context(), c.GetHeader(HeaderProfileID), bearerToken(c))
		if err != nil {
			if errors.Is(err, services.ErrUnauthenticated) {
				response.RespondError(c, http.StatusUnauthorized, "unauthorized", err)
				c.Abort()
				return
			}
			pm.log.Error("resolve caller failed", "error", err)
			response.RespondError(c, http.StatusInternalServerError, "internal", errors.New("internal error"))
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Set("profile", profile)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
