package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Gateway abstracts the mobile-money payment gateway.
type Gateway interface {
	// Initiate starts a payment and forwards the audit snapshot for
	// downstream notification consumers. A gateway-side rejection comes
	// back as Success=false with a message, not as an error.
	Initiate(ctx context.Context, req InitiateRequest, hook WebhookPayload) (InitiateResponse, error)
	// Status queries the current payment status for a bill.
	Status(ctx context.Context, billID string) (StatusResponse, error)
}

// HTTPGateway talks to the payment gateway over its REST API.
type HTTPGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPGateway(baseURL, apiKey string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type initiateBody struct {
	InitiateRequest
	Webhook WebhookPayload `json:"webhook"`
}

func (g *HTTPGateway) Initiate(ctx context.Context, req InitiateRequest, hook WebhookPayload) (InitiateResponse, error) {
	body, err := json.Marshal(initiateBody{InitiateRequest: req, Webhook: hook})
	if err != nil {
		return InitiateResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/bills", bytes.NewReader(body))
	if err != nil {
		return InitiateResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return InitiateResponse{}, fmt.Errorf("payment gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	var out InitiateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return InitiateResponse{}, fmt.Errorf("decode gateway response: %w", err)
	}
	return out, nil
}

func (g *HTTPGateway) Status(ctx context.Context, billID string) (StatusResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/bills/"+billID+"/status", nil)
	if err != nil {
		return StatusResponse{}, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return StatusResponse{}, fmt.Errorf("payment gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return StatusResponse{}, fmt.Errorf("gateway status query returned %d", resp.StatusCode)
	}

	var out StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return StatusResponse{}, fmt.Errorf("decode gateway response: %w", err)
	}
	return out, nil
}
