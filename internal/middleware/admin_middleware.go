package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shlee-dev/veloura-backend/internal/app/service"
	"github.com/shlee-dev/veloura-backend/internal/errors"
)

type AdminMiddleware struct {
	adminService service.AdminService
	cookieName   string
}

func NewAdminMiddleware(adminService service.AdminService, cookieName string) *AdminMiddleware {
	return &AdminMiddleware{
		adminService: adminService,
		cookieName:   cookieName,
	}
}

// Require checks the admin session cookie against the session store.
// A valid hit slides the session expiry forward.
func (m *AdminMiddleware) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		token, err := c.Cookie(m.cookieName)
		if err != nil || token == "" {
			log.Warn("Admin request without session cookie", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthSessionInvalid, "Admin login required")
			c.Abort()
			return
		}

		if err := m.adminService.Validate(c.Request.Context(), token); err != nil {
			if err == service.ErrAdminSessionInvalid {
				log.Warn("Admin session rejected", map[string]interface{}{
					"path": c.Request.URL.Path,
				})
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthSessionInvalid, "Admin session expired, please log in again")
			} else {
				log.Error("Admin session check failed", err, nil)
				errors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Next()
	}
}
