package stripe

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/velomart/storefront/internal/config"
)

// Module exposes the payment processor client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.StripeAPIURL, p.Config.StripeAPIKey, p.Config.StripeWebhookSecret, p.Logger)
}
