package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"storefront-checkout/internal/domain"
	"storefront-checkout/pkg/logger"
)

// Client fronts a Razorpay-style payment gateway. Initialization is lazy and
// happens at most once per process: the first order creation sets up the
// authenticated client, and a failed initialization is sticky so every later
// call fails fast instead of opening a broken payment sheet.
type Client struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client

	initOnce sync.Once
	initErr  error
}

func NewClient(keyID, keySecret, baseURL string, timeout time.Duration) *Client {
	return &Client{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) init() {
	if c.keyID == "" || c.keySecret == "" {
		c.initErr = fmt.Errorf("%w: gateway credentials not configured", domain.ErrPaymentUnavailable)
		return
	}
	logger.Info().Str("gateway", c.baseURL).Msg("Payment gateway client initialized")
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"` // smallest currency unit
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Notes    struct {
		Name    string `json:"name,omitempty"`
		Email   string `json:"email,omitempty"`
		Contact string `json:"contact,omitempty"`
	} `json:"notes"`
}

type createOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// CreateOrder registers a gateway-side order the payment sheet opens against.
// amountMinor must already be in the smallest currency unit (paise for INR).
func (c *Client) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string, prefill domain.PaymentPrefill) (*domain.GatewayOrder, error) {
	c.initOnce.Do(c.init)
	if c.initErr != nil {
		return nil, c.initErr
	}

	reqBody := createOrderRequest{
		Amount:   amountMinor,
		Currency: currency,
		Receipt:  receipt,
	}
	reqBody.Notes.Name = prefill.Name
	reqBody.Notes.Email = prefill.Email
	reqBody.Notes.Contact = prefill.Contact

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrPaymentUnavailable, resp.StatusCode, string(body))
	}

	var out createOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentUnavailable, err)
	}

	return &domain.GatewayOrder{
		ID:       out.ID,
		Amount:   out.Amount,
		Currency: out.Currency,
	}, nil
}

// VerifySignature checks the success-callback signature: an HMAC-SHA256 of
// "<gatewayOrderID>|<paymentID>" keyed with the API secret.
func (c *Client) VerifySignature(gatewayOrderID, paymentID, signature string) error {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return domain.ErrPaymentSignature
	}
	return nil
}
