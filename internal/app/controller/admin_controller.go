package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shlee-dev/veloura-backend/internal/app/service"
	apperrors "github.com/shlee-dev/veloura-backend/internal/errors"
	"github.com/shlee-dev/veloura-backend/internal/middleware"
	"github.com/shlee-dev/veloura-backend/internal/ws"
)

type AdminController struct {
	adminService service.AdminService
	hub          *ws.Hub
	cookieName   string
	secureCookie bool
}

func NewAdminController(adminService service.AdminService, hub *ws.Hub, cookieName string, secureCookie bool) *AdminController {
	return &AdminController{
		adminService: adminService,
		hub:          hub,
		cookieName:   cookieName,
		secureCookie: secureCookie,
	}
}

type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login checks the admin password and sets the session cookie
// POST /api/v1/admin/login
func (ctrl *AdminController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Password is required")
		return
	}

	token, err := ctrl.adminService.Login(c.Request.Context(), req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAdminPassword) {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Wrong password")
			return
		}
		log.Error("Admin login failed", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	maxAge := int(ctrl.adminService.SessionTTL().Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ctrl.cookieName, token, maxAge, "/", "", ctrl.secureCookie, true)

	c.JSON(http.StatusOK, gin.H{"message": "Logged in"})
}

// Logout revokes the session and clears the cookie
// POST /api/v1/admin/logout
func (ctrl *AdminController) Logout(c *gin.Context) {
	token, _ := c.Cookie(ctrl.cookieName)
	if err := ctrl.adminService.Logout(c.Request.Context(), token); err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.SetCookie(ctrl.cookieName, "", -1, "/", "", ctrl.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Session reports whether the caller holds a valid admin session.
// Mounted behind the admin gate, so reaching it means yes.
// GET /api/v1/admin/session
func (ctrl *AdminController) Session(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"authenticated": true})
}

// Events upgrades to a WebSocket and streams the admin live feed
// GET /api/v1/admin/events
func (ctrl *AdminController) Events(c *gin.Context) {
	ctrl.hub.Serve(c.Writer, c.Request)
}
