package controllers

import (
	"errors"

	"storefront/pkg/resp"
	"storefront/services"
	"storefront/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthController struct {
	Svc *services.UserService
}

func NewAuthController(svc *services.UserService) *AuthController {
	return &AuthController{Svc: svc}
}

// POST /auth/register
func (ctl *AuthController) Register(c *gin.Context) {
	var req services.RegisterIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := ctl.Svc.Register(&req)
	if errors.Is(err, services.ErrEmailTaken) {
		resp.BadRequest(c, err.Error())
		return
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, out, "Registered successfully")
}

// POST /auth/login
func (ctl *AuthController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := ctl.Svc.Login(req.Email, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		resp.Unauthorized(c, err.Error())
		return
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out, "Logged in successfully")
}

// GET /auth/me
func (ctl *AuthController) Me(c *gin.Context) {
	user, prefs, err := ctl.Svc.Me(utils.CurrentUserID(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		resp.NotFound(c, "User not found")
		return
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"user": user, "preferences": prefs}, "Profile retrieved successfully")
}

// PATCH /auth/me
func (ctl *AuthController) UpdateMe(c *gin.Context) {
	var req services.UpdateProfileIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, err := ctl.Svc.UpdateProfile(utils.CurrentUserID(c), &req)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		resp.NotFound(c, "User not found")
		return
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, user, "Profile updated successfully")
}

// PATCH /auth/preferences
// Guests can set preferences too; ownership falls back to the session key.
func (ctl *AuthController) UpdatePreferences(c *gin.Context) {
	var req services.PreferencesIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	prefs, err := ctl.Svc.UpdatePreferences(utils.Owner(c), &req)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, prefs, "Preferences updated successfully")
}
