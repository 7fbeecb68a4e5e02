package paymentControllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to the payment gateway's REST API. The base URL is injected so
// tests can point it at a stub server.
type Client struct {
	apiURL     string
	secretKey  string
	httpClient *http.Client
}

func NewClient(apiURL, secretKey string) *Client {
	return &Client{
		apiURL:     strings.TrimRight(apiURL, "/"),
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Intent is the gateway's representation of an in-progress charge attempt.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

type intentResponse struct {
	Intent
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// CreateIntent requests a payment intent for the given amount in currency
// subunits. The cart and user ids travel as metadata so the webhook can
// reconcile the payment back to its cart. No retry is attempted here; a
// gateway failure propagates to the caller.
func (c *Client) CreateIntent(amountCents int64, currency, userID, cartID string) (*Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", currency)
	form.Set("metadata[user_id]", userID)
	form.Set("metadata[cart_id]", cartID)

	req, err := http.NewRequest(http.MethodPost, c.apiURL+"/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment gateway: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}

	var parsed intentResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("gateway error: %s", parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway API error (%d): %s", resp.StatusCode, string(body))
	}
	if parsed.ID == "" || parsed.ClientSecret == "" {
		return nil, fmt.Errorf("gateway returned an incomplete payment intent")
	}

	return &parsed.Intent, nil
}
