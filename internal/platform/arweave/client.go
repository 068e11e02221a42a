package arweave

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	sdkmath "cosmossdk.io/math"
)

const maxResponseBytes = 4 * 1024 * 1024

// Client talks to an Arweave gateway over HTTP.
type Client struct {
	gateway    string
	httpClient *http.Client
}

func NewClient(gateway string, timeout time.Duration) *Client {
	if gateway == "" {
		gateway = "https://arweave.net"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		gateway:    strings.TrimRight(gateway, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// StatusError is returned for non-2xx gateway responses.
type StatusError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("arweave %s: http %d: %s", e.Path, e.StatusCode, e.Body)
}

// Balance returns the wallet balance in winston.
func (c *Client) Balance(ctx context.Context, address string) (sdkmath.Int, error) {
	body, err := c.get(ctx, "/wallet/"+address+"/balance")
	if err != nil {
		return sdkmath.Int{}, err
	}
	return parseWinston(body)
}

// Anchor returns a recent block anchor for last_tx.
func (c *Client) Anchor(ctx context.Context) (string, error) {
	body, err := c.get(ctx, "/tx_anchor")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

// Price returns the reward in winston for storing size bytes, addressed to target.
func (c *Client) Price(ctx context.Context, size int, target string) (sdkmath.Int, error) {
	path := "/price/" + strconv.Itoa(size)
	if target != "" {
		path += "/" + target
	}
	body, err := c.get(ctx, path)
	if err != nil {
		return sdkmath.Int{}, err
	}
	return parseWinston(body)
}

// CreateTransaction builds an unsigned transaction with anchor and reward filled in.
func (c *Client) CreateTransaction(ctx context.Context, target string, data []byte, tags ...Tag) (*Transaction, error) {
	tx := NewTransaction(target, data, tags...)

	anchor, err := c.Anchor(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch anchor: %w", err)
	}
	reward, err := c.Price(ctx, len(data), target)
	if err != nil {
		return nil, fmt.Errorf("fetch price: %w", err)
	}

	tx.LastTx = anchor
	tx.Reward = reward
	return tx, nil
}

// Submit posts a signed transaction. A 208 (already known) counts as accepted.
func (c *Client) Submit(ctx context.Context, tx *Transaction) error {
	if tx.ID() == "" {
		return fmt.Errorf("transaction is not signed")
	}
	payload, err := json.Marshal(tx.wire())
	if err != nil {
		return fmt.Errorf("marshal transaction: %w", err)
	}
	_, err = c.do(ctx, http.MethodPost, "/tx", payload)
	return err
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.gateway+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Path: path, StatusCode: resp.StatusCode, Body: truncate(string(data), 256)}
	}
	return data, nil
}

func parseWinston(body []byte) (sdkmath.Int, error) {
	s := strings.TrimSpace(string(body))
	n, ok := sdkmath.NewIntFromString(s)
	if !ok {
		return sdkmath.Int{}, fmt.Errorf("invalid winston amount %q", truncate(s, 64))
	}
	return n, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
