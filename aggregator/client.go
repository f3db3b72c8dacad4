// Package aggregator implements the read-only HTTP client for the token
// price aggregation service: the token list, the pairs list and the
// per-token detail endpoint.
package aggregator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/raykavin/pairwatch/core"
	"github.com/raykavin/pairwatch/logger"
)

// Default endpoints of the aggregation service.
const (
	DefaultTokenListURL = "https://price.jup.ag/v4/token-list"
	DefaultPairsURL     = "https://stats.jup.ag/coingecko/pairs"
	DefaultTokenInfoURL = "https://stats.jup.ag/coingecko/tokens"

	defaultTimeout = 10 * time.Second
)

// Client talks to the aggregation API. It is safe for sequential use only;
// nothing in pairwatch shares it across flows.
type Client struct {
	http         *http.Client
	tokenListURL string
	pairsURL     string
	tokenInfoURL string
	log          logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

// NewClient creates an aggregation API client. Empty URL settings fall back
// to the service defaults.
func NewClient(settings core.ScannerSettings, log logger.Logger, options ...Option) *Client {
	timeout := settings.HTTPTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := &Client{
		http:         &http.Client{Timeout: timeout},
		tokenListURL: settings.TokenListURL,
		pairsURL:     settings.PairsURL,
		tokenInfoURL: settings.TokenInfoURL,
		log:          log,
	}

	if client.tokenListURL == "" {
		client.tokenListURL = DefaultTokenListURL
	}
	if client.pairsURL == "" {
		client.pairsURL = DefaultPairsURL
	}
	if client.tokenInfoURL == "" {
		client.tokenInfoURL = DefaultTokenInfoURL
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// TokenList implements core.Aggregator.
func (c *Client) TokenList(ctx context.Context) ([]core.Token, error) {
	var response struct {
		Data []core.Token `json:"data"`
	}

	if err := c.getJSON(ctx, c.tokenListURL, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch token list: %w", err)
	}

	return response.Data, nil
}

// Pairs implements core.Aggregator.
func (c *Client) Pairs(ctx context.Context) ([]core.Pair, error) {
	var pairs []core.Pair
	if err := c.getJSON(ctx, c.pairsURL, &pairs); err != nil {
		return nil, fmt.Errorf("failed to fetch pairs: %w", err)
	}

	return pairs, nil
}

// TokenInfo implements core.Aggregator. A status other than 200 OK means the
// aggregator has no detail record for the address; that is reported as a nil
// record, not an error.
func (c *Client) TokenInfo(ctx context.Context, address string) (*core.TokenInfo, error) {
	url := fmt.Sprintf("%s/%s", c.tokenInfoURL, address)

	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch token info for %s: %w", address, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.WithField("status", resp.StatusCode).Debugf("no token info for %s", address)
		return nil, nil
	}

	var info core.TokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode token info for %s: %w", address, err)
	}

	return &info, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	resp, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}

	return nil
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	return c.http.Do(req)
}
