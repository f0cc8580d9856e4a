// Package api holds the REST clients for the ordering backend. A shared
// base Client owns the URL resolution, auth header, and JSON round-trip;
// thin typed clients sit on top of it per backend area.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const HeaderCorrelationID = "X-Correlation-Id"

// TokenSource supplies the bearer token attached to outgoing requests.
// An empty token means the request goes out unauthenticated and relies on
// cookie transport.
type TokenSource interface {
	Token() string
}

type Client struct {
	BaseURL *url.URL
	HTTP    *http.Client
	Tokens  TokenSource
}

func NewClient(baseURL string, httpClient *http.Client, tokens TokenSource) *Client {
	u, err := url.Parse(baseURL)
	if err != nil {
		// Fail fast: config error
		panic(fmt.Sprintf("invalid base url %q: %v", baseURL, err))
	}
	return &Client{BaseURL: u, HTTP: httpClient, Tokens: tokens}
}

// Do performs one JSON request. in is encoded as the body when non-nil; the
// response body is decoded into out when non-nil. Non-2xx responses become
// *Error carrying the backend's message; transport failures are returned
// as-is so callers can tell the two apart.
func (c *Client) Do(ctx context.Context, method, path, rawQuery string, in, out any) error {
	rel := &url.URL{Path: c.BaseURL.Path + path, RawQuery: rawQuery}
	u := c.BaseURL.ResolveReference(rel)

	var body *bytes.Buffer
	if in != nil {
		body = &bytes.Buffer{}
		if err := json.NewEncoder(body).Encode(in); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderCorrelationID, uuid.NewString())
	if c.Tokens != nil {
		if tok := c.Tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) Get(ctx context.Context, path, rawQuery string, out any) error {
	return c.Do(ctx, http.MethodGet, path, rawQuery, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPost, path, "", in, out)
}

func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPut, path, "", in, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, "", nil, nil)
}

// expandID fills the {id} placeholder in an endpoint template.
func expandID(template string, id int) string {
	return strings.Replace(template, "{id}", fmt.Sprintf("%d", id), 1)
}
