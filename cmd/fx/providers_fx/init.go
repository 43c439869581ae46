package providers_fx

import (
	"log"
	"os"

	"go.uber.org/fx"

	"tripdesk/internal/providers"
)

var Module = fx.Provide(
	provideActivitiesProvider, providePaymentProvider)

func provideActivitiesProvider() providers.ActivitiesProvider {
	instance, err := providers.NewActivitiesAPI(os.Getenv("ACTIVITIES_API_URL"))
	if err != nil {
		log.Fatalf("Error initializing activities provider: %v", err)
	}
	return instance
}

func providePaymentProvider() providers.PaymentProvider {
	return providers.NewStripeGateway(os.Getenv("STRIPE_SECRET_KEY"))
}
