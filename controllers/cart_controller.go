package controllers

import (
	"errors"

	"storefront/entity"
	"storefront/pkg/resp"
	"storefront/services"
	"storefront/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	Svc  *services.CartService
	Menu *services.MenuService
}

func NewCartController(svc *services.CartService, menu *services.MenuService) *CartController {
	return &CartController{Svc: svc, Menu: menu}
}

// GET /cart
func (ctl *CartController) Get(c *gin.Context) {
	view, err := ctl.Svc.Get(utils.Owner(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, view, "Cart retrieved successfully")
}

type addToCartIn struct {
	ItemID   string  `json:"itemId" binding:"required"`
	Quantity int     `json:"quantity" binding:"omitempty,min=1"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
}

// POST /cart/items
// The line snapshot comes from the loaded catalog when the item is known;
// otherwise the caller-provided name/price/image are taken as the snapshot.
func (ctl *CartController) Add(c *gin.Context) {
	var req addToCartIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item := entity.CatalogItem{ItemID: req.ItemID, Name: req.Name, Price: req.Price, Image: req.Image}
	if cached := ctl.Menu.GetItemByID(req.ItemID); cached != nil {
		item = *cached
	}

	if err := ctl.Svc.AddItem(utils.Owner(c), item, req.Quantity); err != nil {
		if errors.Is(err, services.ErrNonPositiveQuantity) {
			resp.BadRequest(c, err.Error())
			return
		}
		resp.ServerError(c, err)
		return
	}

	view, err := ctl.Svc.Get(utils.Owner(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, view, "Item added to cart")
}

// PATCH /cart/items/qty
func (ctl *CartController) UpdateQuantity(c *gin.Context) {
	var body struct {
		ItemID   string `json:"itemId" binding:"required"`
		Quantity int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ctl.Svc.UpdateQuantity(utils.Owner(c), body.ItemID, body.Quantity); err != nil {
		resp.ServerError(c, err)
		return
	}
	view, err := ctl.Svc.Get(utils.Owner(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, view, "Quantity updated")
}

// DELETE /cart/items/:itemId
func (ctl *CartController) Remove(c *gin.Context) {
	if err := ctl.Svc.RemoveItem(utils.Owner(c), c.Param("itemId")); err != nil {
		resp.ServerError(c, err)
		return
	}
	view, err := ctl.Svc.Get(utils.Owner(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, view, "Item removed from cart")
}

// PATCH /cart/open
// Drives the cart drawer's open flag: open, close, or toggle.
func (ctl *CartController) SetOpen(c *gin.Context) {
	var body struct {
		Action string `json:"action" binding:"required,oneof=open close toggle"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	owner := utils.Owner(c)
	var err error
	switch body.Action {
	case "open":
		err = ctl.Svc.OpenCart(owner)
	case "close":
		err = ctl.Svc.CloseCart(owner)
	default:
		err = ctl.Svc.ToggleCart(owner)
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	view, err := ctl.Svc.Get(owner)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, view, "Cart visibility updated")
}

// DELETE /cart
func (ctl *CartController) Clear(c *gin.Context) {
	if err := ctl.Svc.Clear(utils.Owner(c)); err != nil {
		resp.ServerError(c, err)
		return
	}
	view, err := ctl.Svc.Get(utils.Owner(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, view, "Cart cleared")
}
