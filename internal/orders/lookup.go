// Package orders looks up a shopper's orders on the agency's order API.
package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/somnath11som/webeF/internal/domain"
	"github.com/somnath11som/webeF/internal/remote"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrLoginRequired means the shopper has to sign in again: no token was
// available, or the order API refused or failed the lookup.
var ErrLoginRequired = errors.New("login required")

// DetailsFetcher is the order-details endpoint.
type DetailsFetcher interface {
	OrderDetails(ctx context.Context, token string) (*remote.OrderDetailsResponse, error)
}

// TokenStore is the durable side of the session.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
}

type Client struct {
	fetcher DetailsFetcher
	logger  *zap.Logger
	sfg     singleflight.Group // collapses concurrent lookups for one token

	fetchTimeout time.Duration
}

// DefaultFetchTimeout bounds one shared order-details request.
const DefaultFetchTimeout = 30 * time.Second

func NewClient(fetcher DetailsFetcher, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{fetcher: fetcher, logger: logger, fetchTimeout: DefaultFetchTimeout}
}

// Lookup resolves the bearer token and fetches the orders it may see.
// A non-empty linkToken (the "token" URL parameter) wins over the stored token
// and is persisted before the request goes out.
func (c *Client) Lookup(ctx context.Context, tokens TokenStore, linkToken string) ([]domain.Order, error) {
	token, err := c.resolveToken(ctx, tokens, linkToken)
	if err != nil {
		return nil, err
	}

	// the shared fetch outlives any single caller; each caller only waits on
	// its own ctx
	ch := c.sfg.DoChan(token, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
		defer cancel()
		return c.fetch(fetchCtx, token)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("order lookup: %w", ctx.Err())
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}

	shared := res.Val.([]domain.Order)
	out := make([]domain.Order, len(shared))
	copy(out, shared)
	return out, nil
}

func (c *Client) resolveToken(ctx context.Context, tokens TokenStore, linkToken string) (string, error) {
	if linkToken != "" {
		if err := tokens.SetToken(ctx, linkToken); err != nil {
			c.logger.Warn("persist link token failed", zap.Error(err))
		}
		return linkToken, nil
	}

	token, err := tokens.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLoginRequired, err)
	}
	if token == "" {
		return "", ErrLoginRequired
	}
	return token, nil
}

func (c *Client) fetch(ctx context.Context, token string) ([]domain.Order, error) {
	resp, err := c.fetcher.OrderDetails(ctx, token)
	if err != nil {
		c.logger.Warn("order lookup failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrLoginRequired, err)
	}
	if resp.Status != remote.StatusOK {
		c.logger.Info("order lookup refused", zap.Int("status", resp.Status))
		return nil, ErrLoginRequired
	}

	orders, err := decodeOrders(resp.Data)
	if err != nil {
		c.logger.Warn("malformed order details", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrLoginRequired, err)
	}
	return orders, nil
}

// decodeOrders reads the record collection in document order. The API keys
// records by order id; a list is accepted as well.
func decodeOrders(raw json.RawMessage) ([]domain.Order, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []domain.Order{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read order data: %w", err)
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		return nil, fmt.Errorf("order data must be an object or array, got %v", tok)
	}

	orders := make([]domain.Order, 0)
	for dec.More() {
		var key string
		if delim == '{' {
			k, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("read order key: %w", err)
			}
			key, _ = k.(string)
		}

		var o domain.Order
		if err := dec.Decode(&o); err != nil {
			return nil, fmt.Errorf("decode order %q: %w", key, err)
		}
		if o.ID == "" {
			o.ID = key
		}
		if err := o.Validate(); err != nil {
			return nil, fmt.Errorf("order %q: %w", key, err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}
