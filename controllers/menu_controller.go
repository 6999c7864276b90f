package controllers

import (
	"net/http"

	"storefront/pkg/resp"
	"storefront/services"

	"github.com/gin-gonic/gin"
)

type MenuController struct {
	Svc *services.MenuService
}

func NewMenuController(svc *services.MenuService) *MenuController {
	return &MenuController{Svc: svc}
}

// GET /menu?category=&search=
// Search takes precedence and always bypasses the cache; a plain category
// request goes through the 5-minute cache window.
func (ctl *MenuController) List(c *gin.Context) {
	category := c.Query("category")
	search := c.Query("search")

	var err error
	if search != "" {
		err = ctl.Svc.SearchItems(c.Request.Context(), search)
	} else {
		err = ctl.Svc.FetchItems(c.Request.Context(), category)
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	view := ctl.Svc.View()
	resp.OK(c, view.FilteredItems, "Menu items retrieved successfully")
}

// GET /menu/state
func (ctl *MenuController) State(c *gin.Context) {
	resp.OK(c, ctl.Svc.View(), "Menu state retrieved successfully")
}

// POST /menu/refresh
func (ctl *MenuController) Refresh(c *gin.Context) {
	if err := ctl.Svc.RefreshMenu(c.Request.Context()); err != nil {
		resp.ServerError(c, err)
		return
	}
	view := ctl.Svc.View()
	resp.OK(c, view.FilteredItems, "Menu refreshed successfully")
}

// PATCH /menu/category
func (ctl *MenuController) SetCategory(c *gin.Context) {
	var body struct {
		Category string `json:"category" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	ctl.Svc.SetCategory(body.Category)
	view := ctl.Svc.View()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    view.FilteredItems,
		"message": "Category updated",
	})
}
