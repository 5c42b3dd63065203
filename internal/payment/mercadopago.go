package payment

import (
	"context"
	"fmt"
	"strconv"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
)

// MercadoPago collects payments through the Mercado Pago API. The currency
// is fixed by the merchant account, so Charge.Currency and Charge.Phone are
// recorded on our side only.
type MercadoPago struct {
	client mppayment.Client
}

// NewMercadoPago builds a collector from the merchant access token.
func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercado pago config: %w", err)
	}
	return &MercadoPago{client: mppayment.NewClient(cfg)}, nil
}

func (m *MercadoPago) Collect(ctx context.Context, ch Charge) (Receipt, error) {
	resource, err := m.client.Create(ctx, mppayment.Request{
		TransactionAmount: ch.Amount,
		Description:       "storefront order " + ch.Reference,
		ExternalReference: ch.Reference,
		Payer: &mppayment.PayerRequest{
			Email: ch.Email,
		},
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("collect payment: %w", err)
	}

	receipt := Receipt{ID: strconv.Itoa(int(resource.ID))}
	switch resource.Status {
	case "approved":
		receipt.Status = "approved"
	case "in_process", "pending":
		receipt.Status = "pending"
	default:
		return Receipt{}, fmt.Errorf("payment not approved: %s", resource.StatusDetail)
	}
	return receipt, nil
}
