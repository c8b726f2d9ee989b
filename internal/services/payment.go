package services

import (
	"context"
	"fmt"
	"log"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
)

// Charger encapsule l'encaissement externe : succès ou échec, rien d'autre.
// Pas de retry — un échec est terminal pour la requête en cours.
type Charger interface {
	Charge(ctx context.Context, amount float64, email string) error
}

// StripeCharger encaisse via un PaymentIntent confirmé immédiatement. Le
// montant vient du total validé de la commande, la devise de la config.
type StripeCharger struct {
	Currency string
}

func (s *StripeCharger) Charge(ctx context.Context, amount float64, email string) error {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(int64(amount * 100)),
		Currency:      stripe.String(s.Currency),
		Confirm:       stripe.Bool(true),
		PaymentMethod: stripe.String("pm_card_visa"),
		ReceiptEmail:  stripe.String(email),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
		Metadata: map[string]string{
			"email": email,
		},
	}
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		log.Println("❌ Erreur Stripe:", err)
		return err
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return fmt.Errorf("paiement non abouti (statut %s)", intent.Status)
	}

	log.Printf("💳 Paiement confirmé : %s (%.2f %s) pour %s", intent.ID, amount, s.Currency, email)
	return nil
}
