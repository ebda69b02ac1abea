package phone

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"storefront-checkout/internal/domain"
)

// Client confirms phone numbers with an external verification endpoint.
type Client struct {
	verifyURL  string
	httpClient *http.Client
}

func NewClient(verifyURL string, timeout time.Duration) *Client {
	return &Client{
		verifyURL: verifyURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type verifyRequest struct {
	Number string `json:"number"`
}

type verifyResponse struct {
	IsValid bool `json:"isValid"`
}

// Verify checks the number's format first and only then asks the external
// service. A format failure never reaches the network. The number counts as
// verified only when the service explicitly confirms it; any other response
// or transport error is a verification failure.
func (c *Client) Verify(ctx context.Context, number string) error {
	if !domain.ValidPhone(number) {
		return domain.ErrInvalidPhoneFormat
	}

	body, err := json.Marshal(verifyRequest{Number: number})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrVerificationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrVerificationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrVerificationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", domain.ErrVerificationFailed, resp.StatusCode)
	}

	var out verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrVerificationFailed, err)
	}
	if !out.IsValid {
		return domain.ErrVerificationFailed
	}
	return nil
}
