package router

import (
	"go.uber.org/fx"

	"github.com/velomart/storefront/internal/app"
	"github.com/velomart/storefront/internal/server/http/handlers"
)

// Module registers HTTP router construction for the fx runtime.
var Module = fx.Options(
	fx.Provide(func(facade *app.StorefrontFacade) handlers.StorefrontFacade { return facade }),
	fx.Provide(Setup),
)
