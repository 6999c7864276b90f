package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"storefront/pkg/resp"
	"storefront/services"
	"storefront/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type OrderController struct {
	Svc *services.OrderService
	Log *logrus.Logger
}

func NewOrderController(svc *services.OrderService, log *logrus.Logger) *OrderController {
	return &OrderController{Svc: svc, Log: log}
}

// GET /orders
// Republishes the gateway's order summaries. Failures leave the local
// cache intact and report a 500 envelope.
func (ctl *OrderController) List(c *gin.Context) {
	start := time.Now()
	summaries, _, err := ctl.Svc.List(c.Request.Context(), utils.Owner(c), c.GetHeader("Authorization"))
	if err != nil {
		ctl.Log.WithFields(logrus.Fields{
			"error":        err.Error(),
			"responseTime": time.Since(start).String(),
		}).Error("fetching orders failed")
		resp.Fail(c, http.StatusInternalServerError, "Failed to fetch orders", err.Error())
		return
	}

	ctl.Log.WithFields(logrus.Fields{
		"count":        len(summaries),
		"responseTime": time.Since(start).String(),
	}).Info("orders fetched")
	resp.OK(c, summaries, "Orders fetched successfully")
}

// GET /orders/:orderId
// An upstream 404 is a not-found result, not a fault; other upstream
// failures mirror the gateway's status.
func (ctl *OrderController) Get(c *gin.Context) {
	start := time.Now()
	orderID := c.Param("orderId")

	order, status, err := ctl.Svc.GetByID(c.Request.Context(), utils.Owner(c), c.GetHeader("Authorization"), orderID)
	if errors.Is(err, services.ErrOrderNotFound) {
		resp.NotFound(c, "Order not found")
		return
	}
	if err != nil {
		ctl.Log.WithFields(logrus.Fields{
			"orderId":      orderID,
			"error":        err.Error(),
			"responseTime": time.Since(start).String(),
		}).Error("fetching order details failed")
		if status >= http.StatusBadRequest {
			resp.Fail(c, status, "Failed to fetch order details", err.Error())
			return
		}
		resp.ServerError(c, err)
		return
	}

	ctl.Log.WithFields(logrus.Fields{
		"orderId":      orderID,
		"responseTime": time.Since(start).String(),
	}).Info("order details fetched")
	resp.OK(c, order, "Order details fetched successfully")
}

// GET /orders/local?limit=
// The cached local view, without touching the gateway.
func (ctl *OrderController) LocalHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	resp.OK(c, ctl.Svc.GetRecent(utils.Owner(c), limit), "Order history retrieved successfully")
}

// PATCH /orders/:orderId/cancel
// Local-only optimistic cancel; the gateway record is not touched.
func (ctl *OrderController) Cancel(c *gin.Context) {
	err := ctl.Svc.Cancel(utils.Owner(c), c.Param("orderId"))
	if errors.Is(err, services.ErrOrderNotFound) {
		resp.NotFound(c, "Order not found")
		return
	}
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, gin.H{"orderId": c.Param("orderId")}, "Order cancelled")
}
