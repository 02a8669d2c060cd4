package binance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"binance-spot/internal/config"
	"binance-spot/internal/core"
)

// Client sends signed requests and decodes JSON object responses. It does
// not retry; every failure is returned to the caller.
type Client struct {
	signer     *Signer
	httpClient *http.Client
}

type Options struct {
	APIKey         string
	APISecret      string
	RestBaseURL    string
	HTTPTimeoutSec int64
	Clock          func() time.Time
}

func NewClient(cfg config.ExchangeConfig) (*Client, error) {
	return NewClientWithOptions(Options{
		APIKey:         cfg.APIKey,
		APISecret:      cfg.APISecret,
		RestBaseURL:    cfg.RestBaseURL,
		HTTPTimeoutSec: cfg.HTTPTimeoutSec,
	})
}

func NewClientWithOptions(opts Options) (*Client, error) {
	creds, err := NewCredentials(opts.APIKey, opts.APISecret)
	if err != nil {
		return nil, err
	}
	signer, err := NewSigner(creds, SignerOptions{BaseURL: opts.RestBaseURL, Clock: opts.Clock})
	if err != nil {
		return nil, err
	}
	timeout := 15 * time.Second
	if opts.HTTPTimeoutSec > 0 {
		timeout = time.Duration(opts.HTTPTimeoutSec) * time.Second
	}
	return &Client{
		signer:     signer,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) Signer() *Signer { return c.signer }

func (c *Client) CreateOrder(ctx context.Context, symbol string, side core.Side, quantity, price decimal.Decimal) (map[string]any, error) {
	req, err := c.signer.BuildOrderRequest(symbol, side, quantity, price)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, req)
}

func (c *Client) AccountBalance(ctx context.Context) (map[string]any, error) {
	req, err := c.signer.BuildBalanceRequest()
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, req)
}

func (c *Client) OrderStatus(ctx context.Context, symbol, orderID string) (map[string]any, error) {
	req, err := c.signer.BuildOrderStatusRequest(symbol, orderID)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, req)
}

func (c *Client) Do(ctx context.Context, sr SignedRequest) (map[string]any, error) {
	req, err := sr.HTTPRequest(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("level=WARN event=binance_request_failed method=%s url=%q err=%q", sr.Method, sr.URL, err.Error())
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode/100 != 2 {
		err := parseAPIError(resp.StatusCode, body)
		log.Printf("level=WARN event=binance_request_rejected method=%s url=%q status=%d err=%q", sr.Method, sr.URL, resp.StatusCode, err.Error())
		return nil, err
	}
	return decodeObject(body)
}

func decodeObject(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode binance response: %w", err)
	}
	if out == nil {
		return nil, fmt.Errorf("decode binance response: expected JSON object")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("decode binance response: trailing data after JSON object")
	}
	return out, nil
}

func parseAPIError(status int, body []byte) error {
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Msg != "" {
		return classifyAPIError(APIError{Status: status, Code: apiErr.Code, Msg: apiErr.Msg})
	}
	return HTTPError{Status: status, Body: strings.TrimSpace(string(body))}
}
