package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"maspatas/internal/domain/user"
	"maspatas/internal/handler/api"
	"maspatas/internal/handler/middleware"
	"maspatas/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	saleHandler *api.SaleHandler,
	catalogHandler *api.CatalogHandler,
	inventoryHandler *api.InventoryHandler,
	dashboardHandler *api.DashboardHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, saleHandler, catalogHandler, inventoryHandler, dashboardHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	saleHandler *api.SaleHandler,
	catalogHandler *api.CatalogHandler,
	inventoryHandler *api.InventoryHandler,
	dashboardHandler *api.DashboardHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: authHandler.Refresh},
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
			})

			adminOnly := auth.Group("")
			adminOnly.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleAdmin))
			addRoutes(adminOnly, []route{
				{Method: http.MethodPost, Path: "/register", Handler: authHandler.Register},
			})
		}

		users := apiGroup.Group("/users")
		users.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleAdmin))
		{
			addRoutes(users, []route{
				{Method: http.MethodGet, Path: "", Handler: authHandler.ListUsers},
			})
		}

		sales := apiGroup.Group("/sales")
		sales.Use(authMiddleware.RequireAuth())
		{
			// Reads are open to every authenticated role; writes need seller.
			addRoutes(sales, []route{
				{Method: http.MethodGet, Path: "", Handler: saleHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: saleHandler.Get},
			})

			sellerOnly := sales.Group("")
			sellerOnly.Use(authMiddleware.RequireRoleAtLeast(user.RoleSeller))
			addRoutes(sellerOnly, []route{
				{Method: http.MethodPost, Path: "/sell", Handler: saleHandler.Sell},
				{Method: http.MethodPost, Path: "/:id/pay", Handler: saleHandler.Pay},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: saleHandler.Cancel},
			})
		}

		products := apiGroup.Group("/products")
		products.Use(authMiddleware.RequireAuth())
		{
			addRoutes(products, []route{
				{Method: http.MethodGet, Path: "", Handler: catalogHandler.ListProducts},
				{
					Method: http.MethodPost, Path: "", Handler: catalogHandler.CreateProduct,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleSeller)},
				},
			})
		}

		customers := apiGroup.Group("/customers")
		customers.Use(authMiddleware.RequireAuth())
		{
			addRoutes(customers, []route{
				{Method: http.MethodGet, Path: "", Handler: catalogHandler.ListCustomers},
				{
					Method: http.MethodPost, Path: "", Handler: catalogHandler.CreateCustomer,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleSeller)},
				},
				{
					Method: http.MethodPut, Path: "/:id", Handler: catalogHandler.UpdateCustomer,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleSeller)},
				},
				{
					Method: http.MethodDelete, Path: "/:id", Handler: catalogHandler.DeleteCustomer,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleAdmin)},
				},
			})
		}

		inventory := apiGroup.Group("/inventory")
		inventory.Use(authMiddleware.RequireAuth())
		{
			addRoutes(inventory, []route{
				{Method: http.MethodGet, Path: "/stock", Handler: inventoryHandler.ListStock},
				{Method: http.MethodGet, Path: "/movements", Handler: inventoryHandler.ListMovements},
				{
					Method: http.MethodPost, Path: "/adjust", Handler: inventoryHandler.AdjustStock,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleSeller)},
				},
			})
		}

		dashboard := apiGroup.Group("/dashboard")
		dashboard.Use(authMiddleware.RequireAuth())
		{
			addRoutes(dashboard, []route{
				{Method: http.MethodGet, Path: "/summary", Handler: dashboardHandler.Summary},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
