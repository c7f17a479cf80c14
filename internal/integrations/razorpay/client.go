package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Arunkino/MindHaven-Backend/pkg/types"
)

const providerName = "razorpay"

// Client клиент Razorpay Orders API
type Client struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента Razorpay
func NewClient(baseURL, keyID, keySecret string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Name возвращает имя провайдера для сохранения в платеже
func (c *Client) Name() string {
	return providerName
}

// CreateOrder создает заказ на указанную сумму и возвращает его ID
func (c *Client) CreateOrder(ctx context.Context, amount types.Money, currency, receipt string) (string, error) {
	payload, err := json.Marshal(createOrderRequest{
		Amount:         amount.MinorUnits(),
		Currency:       currency,
		Receipt:        receipt,
		PaymentCapture: 1,
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		var body errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return "", fmt.Errorf("%w: %s", ErrInvalidRequest, body.Error.Description)
	case http.StatusUnauthorized:
		return "", ErrUnauthorized
	default:
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if order.ID == "" {
		return "", fmt.Errorf("%w: empty order id", ErrInvalidResponse)
	}

	c.log.Info("Razorpay order created: id=%s, amount=%d %s", order.ID, order.Amount, order.Currency)
	return order.ID, nil
}

// VerifySignature проверяет подпись checkout: HMAC-SHA256(order_id|payment_id) ключом API
func (c *Client) VerifySignature(_ context.Context, orderID, paymentID, signature string) (bool, error) {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature)), nil
}
