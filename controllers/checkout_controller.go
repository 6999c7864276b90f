package controllers

import (
	"net/http"
	"time"

	"storefront/pkg/gateway"
	"storefront/pkg/resp"
	"storefront/services"
	"storefront/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CheckoutController struct {
	Orders *services.OrderService
	Cart   *services.CartService
	UI     *services.UIService
	Log    *logrus.Logger
}

func NewCheckoutController(orders *services.OrderService, cart *services.CartService, ui *services.UIService, log *logrus.Logger) *CheckoutController {
	return &CheckoutController{Orders: orders, Cart: cart, UI: ui, Log: log}
}

// POST /checkout
// Forwards the cart snapshot and payment fields to the gateway once, maps
// the reply into the response envelope, and clears the caller's cart only
// after a confirmed success.
func (ctl *CheckoutController) Checkout(c *gin.Context) {
	start := time.Now()
	owner := utils.Owner(c)

	var req gateway.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if len(req.Items) == 0 || req.TotalAmount <= 0 {
		resp.BadRequest(c, "Invalid checkout data")
		return
	}

	ctl.Log.WithFields(logrus.Fields{
		"itemCount":   len(req.Items),
		"totalAmount": req.TotalAmount,
	}).Info("processing checkout request")

	result, err := ctl.Orders.Checkout(c.Request.Context(), owner, c.GetHeader("Authorization"), &req)
	if err != nil {
		ctl.Log.WithFields(logrus.Fields{
			"error":        err.Error(),
			"responseTime": time.Since(start).String(),
		}).Error("checkout failed")
		resp.ServerError(c, err)
		return
	}

	if result.Order == nil {
		ctl.Log.WithFields(logrus.Fields{
			"status":       result.Status,
			"error":        result.Message,
			"responseTime": time.Since(start).String(),
		}).Error("checkout rejected by gateway")
		ctl.UI.ShowNotification(owner, "error", "Checkout failed", result.Message, 0)
		resp.Fail(c, result.Status, result.Message, result.Raw.Error)
		return
	}

	// Gateway accepted: the cart can go now. A crash between the two
	// leaves a placed order next to a full cart; there is no transactional
	// coupling here.
	if err := ctl.Cart.Clear(owner); err != nil {
		ctl.Log.WithFields(logrus.Fields{"owner": owner, "error": err.Error()}).Warn("cart clear after checkout failed")
	}
	ctl.UI.ShowNotification(owner, "success", "Order placed", "Your order "+result.Order.ID+" was placed successfully", 0)

	ctl.Log.WithFields(logrus.Fields{
		"orderId":      result.Order.ID,
		"responseTime": time.Since(start).String(),
	}).Info("checkout successful")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Raw,
		"message": result.Raw.Message,
	})
}
