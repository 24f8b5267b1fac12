// Package pagamento talks to the payment provider. Handlers and the
// confirmation pipeline only see the Provider interface; the Mercado Pago
// client lives behind it so tests can swap in a fake.
package pagamento

import "context"

// Detalhes is the authoritative state of a payment, fetched from the
// provider by id. Webhook notifications carry only the id; the status must
// always be re-fetched so a spoofed notification cannot confirm anything.
type Detalhes struct {
	Status        string
	Referencia    string
	ModoPagamento string
}

// StatusAprovado is the only provider status that confirms a registration.
const StatusAprovado = "approved"

// Provider creates hosted-checkout links and reports payment state.
type Provider interface {
	// CriarCheckout registers a priced preference with the provider and
	// returns the redirect link the client completes payment on.
	CriarCheckout(ctx context.Context, referencia, titulo string, quantidade int, precoUnitario float64) (string, error)
	// Consultar fetches the payment identified by the webhook notification.
	Consultar(ctx context.Context, pagamentoID int) (*Detalhes, error)
}
