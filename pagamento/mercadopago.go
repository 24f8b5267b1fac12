package pagamento

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

// MercadoPago implements Provider with the official SDK.
type MercadoPago struct {
	prefs     preference.Client
	payments  mppayment.Client
	siteURL   string
	notifyURL string
}

// NewMercadoPago builds the client. siteURL receives the buyer after
// checkout; notifyURL is this API's /webhook endpoint.
func NewMercadoPago(accessToken, siteURL, notifyURL string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercado pago credentials: %w", err)
	}
	return &MercadoPago{
		prefs:     preference.NewClient(cfg),
		payments:  mppayment.NewClient(cfg),
		siteURL:   siteURL,
		notifyURL: notifyURL,
	}, nil
}

func (m *MercadoPago) CriarCheckout(ctx context.Context, referencia, titulo string, quantidade int, precoUnitario float64) (string, error) {
	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:      titulo,
				Quantity:   quantidade,
				UnitPrice:  precoUnitario,
				CurrencyID: "BRL",
			},
		},
		BackURLs: &preference.BackURLsRequest{
			Success: m.siteURL + "/sucesso",
			Failure: m.siteURL + "/falha",
			Pending: m.siteURL + "/pendente",
		},
		AutoReturn:        "approved",
		ExternalReference: referencia,
		NotificationURL:   m.notifyURL,
	}

	pref, err := m.prefs.Create(ctx, req)
	if err != nil {
		return "", err
	}
	return pref.InitPoint, nil
}

func (m *MercadoPago) Consultar(ctx context.Context, pagamentoID int) (*Detalhes, error) {
	p, err := m.payments.Get(ctx, pagamentoID)
	if err != nil {
		return nil, err
	}
	return &Detalhes{
		Status:        p.Status,
		Referencia:    p.ExternalReference,
		ModoPagamento: p.PaymentTypeID,
	}, nil
}
