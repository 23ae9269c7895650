// Package remote talks to the agency's order, accounts and contact APIs.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrTransport marks failures below the application protocol: network errors,
// non-2xx HTTP statuses, undecodable bodies and an open circuit breaker.
var ErrTransport = errors.New("remote request failed")

const maxResponseSize = 1 << 20

type Config struct {
	OrdersBaseURL   string
	AccountsBaseURL string
	Timeout         time.Duration
	// BreakerFailures is the number of consecutive failures that opens the
	// breaker; BreakerCooldown is how long it stays open.
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

type Client struct {
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker[rawResponse]
	orders   string
	accounts string
}

type rawResponse struct {
	status int
	body   []byte
}

func NewClient(cfg Config) *Client {
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}
	if cfg.BreakerCooldown == 0 {
		cfg.BreakerCooldown = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[rawResponse](gobreaker.Settings{
		Name:    "agency-api",
		Timeout: cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
	})

	return &Client{
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker:  breaker,
		orders:   strings.TrimRight(cfg.OrdersBaseURL, "/"),
		accounts: strings.TrimRight(cfg.AccountsBaseURL, "/"),
	}
}

// CreateOrder posts the checkout payload to the order-creation endpoint.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	var resp CreateOrderResponse
	if err := c.doJSON(ctx, http.MethodPost, c.orders+"/order/createOrder", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// OrderDetails fetches the orders visible to the bearer token.
func (c *Client) OrderDetails(ctx context.Context, token string) (*OrderDetailsResponse, error) {
	var resp OrderDetailsResponse
	if err := c.doJSON(ctx, http.MethodGet, c.orders+"/order/getOrderDetails", token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SignIn checks credentials against the accounts API.
func (c *Client) SignIn(ctx context.Context, req SignInRequest) (*SignInResponse, error) {
	var resp SignInResponse
	if err := c.doJSON(ctx, http.MethodPost, c.accounts+"/auth/signin", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SubmitContact sends a contact lead.
func (c *Client) SubmitContact(ctx context.Context, req ContactRequest) (*ContactResponse, error) {
	var resp ContactResponse
	if err := c.doJSON(ctx, http.MethodPost, c.accounts+"/user/contact", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) doJSON(ctx context.Context, method, url, bearer string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request failed: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	raw, err := c.breaker.Execute(func() (rawResponse, error) {
		return c.send(req)
	})
	if err != nil {
		if errors.Is(err, ErrTransport) {
			return err
		}
		return fmt.Errorf("%w: %s %s: %w", ErrTransport, method, url, err)
	}

	if raw.status < 200 || raw.status > 299 {
		return fmt.Errorf("%w: %s %s: unexpected status %d", ErrTransport, method, url, raw.status)
	}
	if err := json.Unmarshal(raw.body, out); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrTransport, err)
	}
	return nil
}

// send counts network errors and 5xx responses against the breaker.
func (c *Client) send(req *http.Request) (rawResponse, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return rawResponse{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return rawResponse{}, fmt.Errorf("read response: %w", err)
	}
	raw := rawResponse{status: resp.StatusCode, body: data}
	if resp.StatusCode >= 500 {
		return raw, fmt.Errorf("%w: %s %s: server error %d", ErrTransport, req.Method, req.URL, resp.StatusCode)
	}
	return raw, nil
}
