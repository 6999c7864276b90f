package controllers

import (
	"time"

	"storefront/pkg/resp"
	"storefront/services"
	"storefront/utils"

	"github.com/gin-gonic/gin"
)

type UIController struct {
	Svc *services.UIService
}

func NewUIController(svc *services.UIService) *UIController {
	return &UIController{Svc: svc}
}

// GET /notifications
func (ctl *UIController) List(c *gin.Context) {
	resp.OK(c, ctl.Svc.Notifications(utils.Owner(c)), "Notifications retrieved successfully")
}

// POST /notifications
func (ctl *UIController) Show(c *gin.Context) {
	var req struct {
		Type       string `json:"type" binding:"required,oneof=success error warning info"`
		Title      string `json:"title" binding:"required"`
		Message    string `json:"message" binding:"required"`
		DurationMs int64  `json:"duration"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	n := ctl.Svc.ShowNotification(utils.Owner(c), req.Type, req.Title, req.Message,
		time.Duration(req.DurationMs)*time.Millisecond)
	resp.Created(c, n, "Notification created")
}

// DELETE /notifications/:id
func (ctl *UIController) Hide(c *gin.Context) {
	ctl.Svc.HideNotification(utils.Owner(c), c.Param("id"))
	resp.OK(c, gin.H{"id": c.Param("id")}, "Notification dismissed")
}

// DELETE /notifications
func (ctl *UIController) Clear(c *gin.Context) {
	ctl.Svc.ClearNotifications(utils.Owner(c))
	resp.OK(c, gin.H{}, "Notifications cleared")
}

// GET /ui/state
func (ctl *UIController) State(c *gin.Context) {
	owner := utils.Owner(c)
	theme, err := ctl.Svc.Theme(owner)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{
		"notifications": ctl.Svc.Notifications(owner),
		"modals":        ctl.Svc.Modals(owner),
		"loading":       ctl.Svc.Loading(owner),
		"theme":         theme,
	}, "UI state retrieved successfully")
}

// PATCH /ui/modals
func (ctl *UIController) SetModal(c *gin.Context) {
	var req struct {
		Modal string `json:"modal" binding:"required,oneof=cart orderConfirmation userProfile orderDetails"`
		Open  bool   `json:"open"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.Open {
		ctl.Svc.OpenModal(utils.Owner(c), req.Modal)
	} else {
		ctl.Svc.CloseModal(utils.Owner(c), req.Modal)
	}
	resp.OK(c, ctl.Svc.Modals(utils.Owner(c)), "Modal state updated")
}

// PATCH /ui/theme
func (ctl *UIController) SetTheme(c *gin.Context) {
	var req struct {
		Theme string `json:"theme" binding:"required,oneof=light dark system"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ctl.Svc.SetTheme(utils.Owner(c), req.Theme); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"theme": req.Theme}, "Theme updated")
}
