package stripepay

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/Arunkino/MindHaven-Backend/pkg/types"
)

const providerName = "stripe"

// Client платежный провайдер на Stripe PaymentIntents
// Заказ соответствует PaymentIntent, подтверждение - его статусу succeeded
type Client struct {
	api *client.API
	log Logger
}

// NewClient создает клиента Stripe с ключом secretKey
func NewClient(secretKey string, log Logger) *Client {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Client{api: api, log: log}
}

// NewClientWithBackend создает клиента с заданным адресом API (для тестов и прокси)
func NewClientWithBackend(secretKey, url string, log Logger) *Client {
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(url),
		MaxNetworkRetries: stripe.Int64(0),
	})

	api := &client.API{}
	api.Init(secretKey, &stripe.Backends{API: backend, Connect: backend, Uploads: backend})
	return &Client{api: api, log: log}
}

// Name возвращает имя провайдера для сохранения в платеже
func (c *Client) Name() string {
	return providerName
}

// CreateOrder создает PaymentIntent и возвращает его ID
func (c *Client) CreateOrder(ctx context.Context, amount types.Money, currency, receipt string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount.MinorUnits()),
		Currency: stripe.String(strings.ToLower(currency)),
	}
	params.Context = ctx
	if receipt != "" {
		params.AddMetadata("receipt", receipt)
	}

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("%w: create payment intent: %v", ErrProvider, err)
	}

	c.log.Info("Stripe payment intent created: id=%s, amount=%d %s", pi.ID, pi.Amount, pi.Currency)
	return pi.ID, nil
}

// VerifySignature проверяет, что PaymentIntent оплачен
// paymentID, если указан, должен совпадать с последним списанием; signature для Stripe не используется
func (c *Client) VerifySignature(ctx context.Context, orderID, paymentID, _ string) (bool, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := c.api.PaymentIntents.Get(orderID, params)
	if err != nil {
		return false, fmt.Errorf("%w: get payment intent %s: %v", ErrProvider, orderID, err)
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		c.log.Warn("Stripe payment intent id=%s has status=%s", pi.ID, pi.Status)
		return false, nil
	}
	if paymentID != "" && (pi.LatestCharge == nil || pi.LatestCharge.ID != paymentID) {
		return false, nil
	}

	return true, nil
}
