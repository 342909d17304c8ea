package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mesh-intelligence/propai/pkg/types"
)

// Client calls document-store functions over HTTP.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient returns a client for endpoint. A nil httpClient means
// http.DefaultClient.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{endpoint: endpoint, http: httpClient}
}

// Endpoint returns the base URL the client posts to.
func (c *Client) Endpoint() string { return c.endpoint }

// Query runs a read function and decodes its value into out.
func (c *Client) Query(ctx context.Context, path string, args, out any) error {
	return c.call(ctx, "/api/query", path, args, out)
}

// Mutation runs a write function and decodes its value into out.
func (c *Client) Mutation(ctx context.Context, path string, args, out any) error {
	return c.call(ctx, "/api/mutation", path, args, out)
}

// Health checks that the store answers GET /health.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/health", nil)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrTransport, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrTransport, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health returned %s", types.ErrTransport, resp.Status)
	}
	return nil
}

func (c *Client) call(ctx context.Context, route, path string, args, out any) error {
	if args == nil {
		args = NoArgs{}
	}
	rawArgs, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encoding args for %s: %w", path, err)
	}
	body, err := json.Marshal(Request{Path: path, Args: rawArgs})
	if err != nil {
		return fmt.Errorf("encoding request for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+route, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: calling %s: %v", types.ErrTransport, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading %s reply: %v", types.ErrTransport, path, err)
	}
	var reply Response
	if err := json.Unmarshal(data, &reply); err != nil {
		return fmt.Errorf("%w: %s replied %s with a non-JSON body", types.ErrTransport, path, resp.Status)
	}

	if reply.Status != StatusSuccess {
		code := CodeInternal
		if reply.ErrorData != nil && reply.ErrorData.Code != "" {
			code = reply.ErrorData.Code
		}
		return &Error{Path: path, Code: code, Message: reply.ErrorMessage}
	}
	if out == nil || len(reply.Value) == 0 {
		return nil
	}
	if err := json.Unmarshal(reply.Value, out); err != nil {
		return fmt.Errorf("%w: decoding %s value: %v", types.ErrTransport, path, err)
	}
	return nil
}
