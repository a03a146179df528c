package router

import (
	"net/http"

	"github.com/barrelborn/digital-menu/config"
	"github.com/barrelborn/digital-menu/controllers"
	"github.com/barrelborn/digital-menu/database"
	"github.com/barrelborn/digital-menu/middlewares"
	"github.com/barrelborn/digital-menu/services"
	"github.com/barrelborn/digital-menu/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func SetupRouter(cfg *config.Config, store database.Store) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	if cfg.RateLimitRPS > 0 {
		r.Use(middlewares.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst).RateLimit())
	}

	r.NoRoute(func(c *gin.Context) {
		utils.RespondMessage(c, http.StatusNotFound, "Not found")
	})
	r.NoMethod(func(c *gin.Context) {
		utils.RespondMessage(c, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Services
	resolver := services.NewCategoryResolver(store)
	menuSvc := services.NewMenuService(store, resolver, cfg.RestaurantID)
	cartSvc := services.NewCartService(store)
	customerSvc := services.NewCustomerService(store, cfg.Location)
	authSvc := services.NewAuthService(store, services.AuthConfig{
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
		Secret:   cfg.JWTSecret,
		TTL:      cfg.JWTTTL,
	})

	// Controllers
	menuCtrl := controllers.NewMenuController(menuSvc)
	categoryCtrl := controllers.NewMenuCategoryController(menuSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	customerCtrl := controllers.NewCustomerController(customerSvc)
	userCtrl := controllers.NewUserController(authSvc)

	r.GET("/ping", func(c *gin.Context) {
		if err := store.Ping(c.Request.Context()); err != nil {
			utils.ErrorLogger.WithError(err).Error("store ping failed")
			utils.RespondMessage(c, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	api.GET("/menu-items", menuCtrl.GetMenuItems)
	api.GET("/menu-items/category/:category", menuCtrl.GetMenuItemsByCategory)
	api.GET("/menu-items/by-id/:id", menuCtrl.GetMenuItemByID)
	api.GET("/categories", categoryCtrl.GetAllCategories)

	api.GET("/cart", cartCtrl.GetCart)
	api.POST("/cart", cartCtrl.AddToCart)
	api.DELETE("/cart/:id", cartCtrl.RemoveFromCart)
	api.DELETE("/cart", cartCtrl.ClearCart)

	// Welcome page capture
	api.POST("/customers", customerCtrl.CreateCustomer)

	loginLimiter := middlewares.NewStrictRateLimiter(cfg.LoginRatePerMin)
	api.POST("/login", loginLimiter.RateLimit(), userCtrl.Login)

	// ----------------------------------------------------------------
	//                      ADMIN DASHBOARD
	// ----------------------------------------------------------------
	dashboard := api.Group("")
	dashboard.Use(middlewares.OptionalAdminAuth(cfg.AdminAuthRequired, authSvc))
	dashboard.GET("/customers", customerCtrl.GetAllCustomers)
	dashboard.GET("/customers/export", customerCtrl.ExportCustomers)
	dashboard.POST("/fix-veg-classification", menuCtrl.FixVegClassification)

	// Destructive maintenance always needs a token.
	admin := api.Group("/admin")
	admin.Use(middlewares.AdminAuthMiddleware(authSvc))
	admin.POST("/menu-items", menuCtrl.CreateMenuItem)
	admin.DELETE("/menu-items", menuCtrl.ClearMenuItems)

	return r
}
