package components

import (
	"claimflow/internal/handler"
	"claimflow/internal/handler/api"
	"claimflow/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewClaimHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
