package pincode

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"storefront-checkout/internal/domain"
)

// Client resolves pincodes against an external postal lookup API. The API
// returns a list of postal records per code; a status flag distinguishes
// found from not-found.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type postOffice struct {
	Name  string `json:"Name"`
	Block string `json:"Block"`
	State string `json:"State"`
}

type lookupRecord struct {
	Message    string       `json:"Message"`
	Status     string       `json:"Status"`
	PostOffice []postOffice `json:"PostOffice"`
}

// Lookup resolves a 6-digit pincode to deduplicated locality candidates and a
// state name. Anything shorter or malformed short-circuits without touching
// the network. State comes from the first postal record; the API does not
// guarantee consistency across records and we do not check for it.
func (c *Client) Lookup(ctx context.Context, pin string) (*domain.LookupResult, error) {
	if !domain.ValidPincode(pin) {
		return nil, domain.ErrInvalidPincode
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/pincode/%s", c.baseURL, pin), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLookupFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrLookupFailed, resp.StatusCode)
	}

	var records []lookupRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLookupFailed, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty response", domain.ErrLookupFailed)
	}

	rec := records[0]
	if rec.Status != "Success" || len(rec.PostOffice) == 0 {
		return nil, domain.ErrPincodeNotFound
	}

	result := &domain.LookupResult{
		State: rec.PostOffice[0].State,
	}
	result.Blocks = dedupe(rec.PostOffice, func(po postOffice) string { return po.Block })
	result.Street = dedupe(rec.PostOffice, func(po postOffice) string { return po.Name })
	return result, nil
}

// dedupe collects non-empty values preserving first-seen order.
func dedupe(records []postOffice, pick func(postOffice) string) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0, len(records))
	for _, rec := range records {
		v := pick(rec)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
