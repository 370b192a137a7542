// Package rpc is a client for Ethereum-compatible JSON-RPC endpoints.
//
// Every call is one HTTP POST of a JSON-RPC 2.0 request and one decode of the
// response into a typed result:
//
//	c := rpc.New("https://mainnet-rpc.areon.network")
//	height, err := c.BlockNumber(ctx)
//	block, err := c.GetBlockByNumber(ctx, "0x807b3c", false)
//
// Numeric fields are returned as the hex strings the node sent. BlockNumber
// is the one exception and returns a uint64; use package numconv for the
// rest. Results are decoded strictly: a null result or a missing required
// field is an error, never a zero value.
//
// There are no retries. Failures come back as *CallError, classified as
// transport, decode, rpc or numeric_parse.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"
)

// maxErrorBody caps how much of a non-2xx body ends up in an error message.
const maxErrorBody = 512

// ClientConfig configures a Client. Only URL is required.
type ClientConfig struct {
	Name       string        // label used in logs; defaults to URL
	URL        string        // endpoint to POST to
	Timeout    time.Duration // per-request timeout; 0 keeps the transport default
	HTTPClient *http.Client  // overrides Timeout when set
	Logger     *slog.Logger  // nil discards logs
}

// Client sends JSON-RPC requests to a single endpoint. It is safe for
// concurrent use.
type Client struct {
	name       string
	url        string
	httpClient *http.Client
	logger     *slog.Logger
	nextID     atomic.Uint64
}

// New returns a Client for url with default settings. It performs no I/O
// and does not validate url.
func New(url string) *Client {
	return NewClient(ClientConfig{URL: url})
}

// NewClient returns a Client built from cfg.
func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	name := cfg.Name
	if name == "" {
		name = cfg.URL
	}

	return &Client{
		name:       name,
		url:        cfg.URL,
		httpClient: httpClient,
		logger:     logger.With("provider", name),
	}
}

// Name returns the label used in logs, which defaults to the URL.
func (c *Client) Name() string { return c.name }

// URL returns the endpoint the client posts to.
func (c *Client) URL() string { return c.url }

// Call sends method with positional params and decodes the whole response
// envelope, with the result as T. Result types that implement
// Validate() error are checked before Call returns.
func Call[T any](ctx context.Context, c *Client, method string, params ...any) (*Response[T], error) {
	raw, err := c.roundTrip(ctx, method, params)
	if err != nil {
		return nil, err
	}

	resp := &Response[T]{JSONRPC: raw.JSONRPC, ID: raw.ID}
	if err := json.Unmarshal(raw.Result, &resp.Result); err != nil {
		return nil, decodeError(method, fmt.Errorf("result does not match %T: %w", resp.Result, err))
	}
	if v, ok := any(&resp.Result).(validator); ok {
		if err := v.Validate(); err != nil {
			return nil, decodeError(method, err)
		}
	}
	return resp, nil
}

// Do is Call returning only the result.
func Do[T any](ctx context.Context, c *Client, method string, params ...any) (T, error) {
	resp, err := Call[T](ctx, c, method, params...)
	if err != nil {
		var zero T
		return zero, err
	}
	return resp.Result, nil
}

// roundTrip performs the HTTP exchange and decodes the envelope, leaving the
// result raw.
func (c *Client) roundTrip(ctx context.Context, method string, params []any) (*Response[json.RawMessage], error) {
	if params == nil {
		params = []any{}
	}
	req := Request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.nextID.Add(1),
	}
	log := c.logger.With("method", method, "id", req.ID)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, decodeError(method, fmt.Errorf("encode request: %w", err))
	}

	start := time.Now()
	respBody, status, err := c.post(ctx, body)
	latency := time.Since(start)
	if err != nil {
		log.Warn("rpc transport failure", "latency", latency, "error", err)
		return nil, transportError(method, err)
	}
	log.Debug("rpc call", "status", status, "latency", latency, "bytes", len(respBody))

	if status < 200 || status >= 300 {
		ce := transportError(method, fmt.Errorf("unexpected status: %s", snippet(respBody)))
		ce.StatusCode = status
		log.Warn("rpc http status", "status", status)
		return nil, ce
	}

	var resp Response[json.RawMessage]
	if err := json.Unmarshal(respBody, &resp); err != nil {
		log.Warn("rpc invalid response", "error", err)
		return nil, decodeError(method, fmt.Errorf("invalid JSON response: %w", err))
	}
	if resp.Error != nil {
		log.Warn("rpc error response", "code", resp.Error.Code, "message", resp.Error.Message)
		return nil, &CallError{Type: ErrorTypeRPC, Method: method, Err: resp.Error}
	}
	if len(resp.Result) == 0 || bytes.Equal(resp.Result, []byte("null")) {
		return nil, decodeError(method, ErrNullResult)
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, body []byte) ([]byte, int, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, 0, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, httpResp.StatusCode, fmt.Errorf("read response body: %w", err)
	}
	return respBody, httpResp.StatusCode, nil
}

func snippet(b []byte) string {
	b = bytes.TrimSpace(b)
	if len(b) > maxErrorBody {
		return string(b[:maxErrorBody]) + "…"
	}
	return string(b)
}
