package whatsapp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// LookupResult reports whether a phone number is reachable on the messaging
// network.
type LookupResult struct {
	Exists bool `json:"exists"`
}

// Lookuper abstracts the messaging-network number lookup.
type Lookuper interface {
	Lookup(ctx context.Context, phone string) (LookupResult, error)
}

// Client queries the WhatsApp lookup API over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Lookup(ctx context.Context, phone string) (LookupResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/numbers/"+url.PathEscape(phone), nil)
	if err != nil {
		return LookupResult{}, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return LookupResult{}, fmt.Errorf("whatsapp lookup unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return LookupResult{}, fmt.Errorf("whatsapp lookup returned %d", resp.StatusCode)
	}

	var out LookupResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return LookupResult{}, fmt.Errorf("decode lookup response: %w", err)
	}
	return out, nil
}
