package routes

import (
	"storefront/configs"
	"storefront/controllers"
	"storefront/middlewares"
	"storefront/pkg/gateway"
	"storefront/repository"
	"storefront/services"
	"storefront/ws"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RegisterRoutes builds the whole object graph and mounts it. Everything
// is constructed here and injected; nothing reaches for globals.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, log *logrus.Logger) {
	// Repositories
	catalogRepo := repository.NewCatalogRepository(db)
	stateRepo := repository.NewStateRepository(db)

	// Gateway client
	gw := gateway.NewClient(cfg.GatewayBaseURL, cfg.GatewayTimeout, log)

	// Services
	cartSvc := services.NewCartService(stateRepo)
	menuSvc := services.NewMenuService(catalogRepo, log)
	orderSvc := services.NewOrderService(gw, log)
	userSvc := services.NewUserService(db, stateRepo, cfg.JWTSecret, cfg.JWTTTL, log)
	uiSvc := services.NewUIService(stateRepo)

	// Notification push
	hub := ws.NewNotifyHub(log)
	uiSvc.SetSink(hub)
	go hub.Run()

	// Controllers
	menuCtrl := controllers.NewMenuController(menuSvc)
	cartCtrl := controllers.NewCartController(cartSvc, menuSvc)
	checkoutCtrl := controllers.NewCheckoutController(orderSvc, cartSvc, uiSvc, log)
	orderCtrl := controllers.NewOrderController(orderSvc, log)
	authCtrl := controllers.NewAuthController(userSvc)
	uiCtrl := controllers.NewUIController(uiSvc)
	healthCtrl := controllers.NewHealthController(db, cfg.Environment, cfg.Version)

	r.GET("/health", healthCtrl.Check)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}
	aAuth := a.Group("", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		aAuth.GET("/me", authCtrl.Me)
		aAuth.PATCH("/me", authCtrl.UpdateMe)
	}

	// Everything below works for guests too; identity comes from the
	// bearer token or the X-Session-Id header.
	s := r.Group("/", middlewares.Identify(cfg.JWTSecret))
	{
		s.PATCH("/auth/preferences", authCtrl.UpdatePreferences)

		s.GET("/menu", menuCtrl.List)
		s.GET("/menu/state", menuCtrl.State)
		s.POST("/menu/refresh", menuCtrl.Refresh)
		s.PATCH("/menu/category", menuCtrl.SetCategory)

		s.GET("/cart", cartCtrl.Get)
		s.POST("/cart/items", cartCtrl.Add)
		s.PATCH("/cart/items/qty", cartCtrl.UpdateQuantity)
		s.DELETE("/cart/items/:itemId", cartCtrl.Remove)
		s.PATCH("/cart/open", cartCtrl.SetOpen)
		s.DELETE("/cart", cartCtrl.Clear)

		s.POST("/checkout", checkoutCtrl.Checkout)

		s.GET("/orders", orderCtrl.List)
		s.GET("/orders/local", orderCtrl.LocalHistory)
		s.GET("/orders/:orderId", orderCtrl.Get)
		s.PATCH("/orders/:orderId/cancel", orderCtrl.Cancel)

		s.GET("/notifications", uiCtrl.List)
		s.POST("/notifications", uiCtrl.Show)
		s.DELETE("/notifications/:id", uiCtrl.Hide)
		s.DELETE("/notifications", uiCtrl.Clear)
		s.GET("/ui/state", uiCtrl.State)
		s.PATCH("/ui/modals", uiCtrl.SetModal)
		s.PATCH("/ui/theme", uiCtrl.SetTheme)

		s.GET("/ws/notifications", hub.Serve)
	}
}
