package checkout_fx

import (
	"os"
	"strconv"
	"time"

	"go.uber.org/fx"

	"tripdesk/internal/api/controllers"
	"tripdesk/internal/providers"
	"tripdesk/internal/repositories"
	"tripdesk/internal/services"
	mem "tripdesk/pkg/memcache"
)

var Module = fx.Provide(
	provideSessionStore, provideCheckoutService, provideCheckoutController)

func provideSessionStore() mem.SessionStore {
	return mem.NewCheckoutSessions()
}

func provideCheckoutService(
	activities providers.ActivitiesProvider,
	payments providers.PaymentProvider,
	orderRepo repositories.OrderRepository,
	sessions mem.SessionStore,
) services.CheckoutServiceInterface {
	return services.NewCheckoutService(activities, payments, orderRepo, sessions, sessionTTL())
}

func provideCheckoutController(checkoutService services.CheckoutServiceInterface) *controllers.CheckoutController {
	return controllers.NewCheckoutController(checkoutService)
}

func sessionTTL() time.Duration {
	minutes, err := strconv.Atoi(os.Getenv("SESSION_TTL_MINUTES"))
	if err != nil || minutes <= 0 {
		minutes = 60
	}
	return time.Duration(minutes) * time.Minute
}
