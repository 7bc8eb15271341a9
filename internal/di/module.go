package di

import (
	"go.uber.org/fx"

	"github.com/velomart/storefront/internal/adapter/stripe"
	"github.com/velomart/storefront/internal/app"
	"github.com/velomart/storefront/internal/config"
	"github.com/velomart/storefront/internal/logger"
	"github.com/velomart/storefront/internal/pkg/auth"
	"github.com/velomart/storefront/internal/server/http/router"
	"github.com/velomart/storefront/internal/storage/postgres"
	"github.com/velomart/storefront/internal/usecase"
)

// Module assembles the full application graph, allowing tests to append
// overrides.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		stripe.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
