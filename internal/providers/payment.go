package providers

import (
	"context"
	"errors"
	"log"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"

	"tripdesk/pkg/utils"
)

// PaymentProvider confirms a payment intent with a collected payment
// method (card or SEPA direct debit).
type PaymentProvider interface {
	Confirm(ctx context.Context, paymentRef, paymentMethodRef string) error
}

type stripeGateway struct{}

func NewStripeGateway(secretKey string) PaymentProvider {
	stripe.Key = secretKey
	return &stripeGateway{}
}

// Confirm runs the intent confirmation. Processor rejections come back as
// PaymentDeclinedError so the processor's message reaches the guest
// verbatim; transport failures stay generic.
func (g *stripeGateway) Confirm(ctx context.Context, paymentRef, paymentMethodRef string) error {
	params := &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(paymentMethodRef),
	}
	params.Context = ctx

	_, err := paymentintent.Confirm(paymentRef, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
			return &utils.PaymentDeclinedError{Message: stripeErr.Msg}
		}
		log.Printf("Payment confirmation failed: %v", err)
		return err
	}
	return nil
}
