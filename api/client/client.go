// Package client is a Go client of the multisig HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/vocdoni/zk-multisig/api"
	"github.com/vocdoni/zk-multisig/log"
)

const (
	// HTTPGET is the method string used for calling Request()
	HTTPGET = http.MethodGet
	// HTTPPOST is the method string used for calling Request()
	HTTPPOST = http.MethodPost

	errCodeNot200 = "API error"

	// DefaultRetries is the number of attempts of every request when the
	// connection to the server fails.
	DefaultRetries = 3
	// DefaultRetryDelay is the wait between two attempts.
	DefaultRetryDelay = 500 * time.Millisecond
	// DefaultTimeout is the default timeout for the HTTP client
	DefaultTimeout = 10 * time.Second

	maxLoggedBody = 512
)

// HTTPclient is the multisig API HTTP client.
type HTTPclient struct {
	c          *http.Client
	host       *url.URL
	retries    int
	retryDelay time.Duration
}

// New returns a client of the API served at host. The host must answer to
// the ping endpoint.
func New(host string) (*HTTPclient, error) {
	hostURL, err := url.Parse(host)
	if err != nil {
		return nil, err
	}
	c := &HTTPclient{
		c: &http.Client{
			Transport: &http.Transport{
				IdleConnTimeout: DefaultTimeout,
				WriteBufferSize: 1 << 20,
				ReadBufferSize:  1 << 20,
			},
			Timeout: DefaultTimeout,
		},
		retries:    DefaultRetries,
		retryDelay: DefaultRetryDelay,
	}
	if err := c.SetHostAddr(hostURL); err != nil {
		return nil, err
	}
	log.Debugw("http client created", "host", hostURL.String())
	return c, nil
}

// SetHostAddr points the client to a new host and pings it.
func (c *HTTPclient) SetHostAddr(host *url.URL) error {
	c.host = host
	return c.ping()
}

func (c *HTTPclient) ping() error {
	data, status, err := c.Request(HTTPGET, nil, nil, api.PingEndpoint)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("%s: %d (%s)", errCodeNot200, status, data)
	}
	return nil
}

// SetRetries sets the number of attempts of every request. Values lower than
// one are ignored.
func (c *HTTPclient) SetRetries(n int) {
	if n > 0 {
		c.retries = n
	}
}

// SetRetryDelay sets the wait between two attempts.
func (c *HTTPclient) SetRetryDelay(d time.Duration) {
	c.retryDelay = d
}

// SetTimeout sets the timeout of the requests and of the response headers.
func (c *HTTPclient) SetTimeout(d time.Duration) {
	c.c.Timeout = d
	if tr, ok := c.c.Transport.(*http.Transport); ok {
		tr.ResponseHeaderTimeout = d
	}
}

// Request performs a request with the background context. See
// RequestContext.
func (c *HTTPclient) Request(method string, jsonBody any, params []string, urlPath ...string) ([]byte, int, error) {
	return c.RequestContext(context.Background(), method, jsonBody, params, urlPath...)
}

// RequestContext sends method to the endpoint made of the urlPath segments,
// with jsonBody encoded as JSON when not nil. params holds query parameters
// as key/value pairs; an unpaired last key is ignored. It returns the
// response body and status code. Only connection errors are retried.
func (c *HTTPclient) RequestContext(ctx context.Context, method string, jsonBody any,
	params []string, urlPath ...string,
) ([]byte, int, error) {
	var body []byte
	if jsonBody != nil {
		var err error
		if body, err = json.Marshal(jsonBody); err != nil {
			return nil, 0, fmt.Errorf("failed to marshal JSON: %w", err)
		}
	}
	u := c.endpointURL(params, urlPath...)
	log.Debugw("http client request", "type", method, "url", u, "body", truncate(body))

	resp, err := c.do(ctx, method, u, body)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, resp.StatusCode, nil
}

func (c *HTTPclient) endpointURL(params []string, urlPath ...string) string {
	u := *c.host
	u.Path = path.Join(u.Path, path.Join(urlPath...))
	if len(params) > 1 {
		values := url.Values{}
		for i := 0; i+1 < len(params); i += 2 {
			values.Set(params[i], params[i+1])
		}
		u.RawQuery = values.Encode()
	}
	return u.String()
}

func (c *HTTPclient) do(ctx context.Context, method, u string, body []byte) (*http.Response, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		var reqBody io.Reader
		if body != nil {
			reqBody = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Accept", "application/json")
		}
		resp, err := c.c.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		log.Warnw("http request failed", "error", err.Error(), "attempt", attempt, "retries", c.retries)
		if attempt == c.retries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.retryDelay):
		}
	}
	return nil, fmt.Errorf("http request failed after %d attempts: %w", c.retries, lastErr)
}

func truncate(body []byte) string {
	if len(body) > maxLoggedBody {
		return string(body[:maxLoggedBody]) + "..."
	}
	return string(body)
}
