package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://sandbox.sslcommerz.com"

// Client talks to the SSLCommerz hosted-payment-page API. The gateway
// speaks plain form-POST and JSON, so this is a thin http.Client wrapper.
type Client struct {
	StoreID       string
	StorePassword string
	BaseURL       string
	HTTPClient    *http.Client
}

func NewClient(storeID, storePassword, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		StoreID:       storeID,
		StorePassword: storePassword,
		BaseURL:       baseURL,
		HTTPClient:    &http.Client{Timeout: 15 * time.Second},
	}
}

type InitiateRequest struct {
	TotalAmount   float64
	Currency      string
	TransactionID string
	SuccessURL    string
	FailURL       string
	CancelURL     string
	CustomerName  string
	CustomerEmail string
	ProductName   string
}

type InitiateResponse struct {
	Status         string `json:"status"`
	FailedReason   string `json:"failedreason"`
	GatewayPageURL string `json:"GatewayPageURL"`
	SessionKey     string `json:"sessionkey"`
}

// InitiatePayment opens a gateway session and returns the hosted page URL
// the customer should be redirected to.
func (c *Client) InitiatePayment(ctx context.Context, req InitiateRequest) (*InitiateResponse, error) {
	form := url.Values{}
	form.Set("store_id", c.StoreID)
	form.Set("store_passwd", c.StorePassword)
	form.Set("total_amount", fmt.Sprintf("%.2f", req.TotalAmount))
	form.Set("currency", req.Currency)
	form.Set("tran_id", req.TransactionID)
	form.Set("success_url", req.SuccessURL)
	form.Set("fail_url", req.FailURL)
	form.Set("cancel_url", req.CancelURL)
	form.Set("cus_name", req.CustomerName)
	form.Set("cus_email", req.CustomerEmail)
	form.Set("cus_add1", "Dhaka")
	form.Set("cus_city", "Dhaka")
	form.Set("cus_country", "Bangladesh")
	form.Set("cus_phone", "0000000000")
	form.Set("shipping_method", "NO")
	form.Set("product_name", req.ProductName)
	form.Set("product_category", "Food")
	form.Set("product_profile", "general")

	endpoint := c.BaseURL + "/gwprocess/v4/api.php"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway initiate returned status %d", resp.StatusCode)
	}

	var out InitiateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding gateway response: %w", err)
	}

	if out.Status != "SUCCESS" {
		return nil, fmt.Errorf("gateway session rejected: %s", out.FailedReason)
	}

	return &out, nil
}

type ValidationResponse struct {
	Status        string `json:"status"`
	TransactionID string `json:"tran_id"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	ValID         string `json:"val_id"`
}

// ValidatePayment re-checks a reported payment against the gateway's
// validation endpoint. Only a "VALID" status may be trusted.
func (c *Client) ValidatePayment(ctx context.Context, valID string) (*ValidationResponse, error) {
	query := url.Values{}
	query.Set("val_id", valID)
	query.Set("store_id", c.StoreID)
	query.Set("store_passwd", c.StorePassword)
	query.Set("format", "json")

	endpoint := c.BaseURL + "/validator/api/validationserverAPI.php?" + query.Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway validation returned status %d", resp.StatusCode)
	}

	var out ValidationResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding validation response: %w", err)
	}

	return &out, nil
}
