package components

import (
	"maspatas/internal/handler"
	"maspatas/internal/handler/api"
	"maspatas/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewSaleHandler,
		api.NewCatalogHandler,
		api.NewInventoryHandler,
		api.NewDashboardHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
