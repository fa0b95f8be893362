package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"freightline/internal/config"
	"freightline/internal/domain/shipment"
	"freightline/pkg/utils"
)

const AdminIDKey = "adminID"

// SessionMiddleware gates the dashboard routes behind the unlock token. This
// keeps casual visitors out of the admin surface; it is not an authentication
// system and the token subject is the shared placeholder admin.
func SessionMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Session token required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := utils.ValidateSessionToken(parts[1], cfg.Session.Secret)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired session")
			c.Abort()
			return
		}

		c.Set(AdminIDKey, claims.AdminID)
		c.Next()
	}
}

// GetAdminID reads the session subject from the context, falling back to the
// placeholder admin when the middleware did not run.
func GetAdminID(c *gin.Context) uuid.UUID {
	if v, exists := c.Get(AdminIDKey); exists {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return shipment.PlaceholderAdminID
}
