// api/http_client.go
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Credentials is the bearer token attached to outgoing requests. An empty
// token sends no Authorization header.
type Credentials struct {
	Token string
}

type credentialsKey struct{}

// WithCredentials overrides the client's credentials for calls made with ctx.
func WithCredentials(ctx context.Context, creds Credentials) context.Context {
	return context.WithValue(ctx, credentialsKey{}, creds)
}

// HTTPClient struct to hold base URL and HTTP client configuration
type HTTPClient struct {
	BaseURL     string
	HTTPClient  *http.Client
	Credentials Credentials

	// OnUnauthorized runs when the API answers 401. The default does nothing;
	// the session is never cleared implicitly.
	OnUnauthorized func(endpoint string)
}

// NewHTTPClient creates a new instance of HTTPClient with default settings
func NewHTTPClient(baseURL string, creds Credentials) *HTTPClient {
	return &HTTPClient{
		BaseURL:     baseURL,
		Credentials: creds,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second, // Set a timeout for requests
		},
		OnUnauthorized: func(string) {},
	}
}

// Get issues a GET against endpoint and decodes the JSON body into response.
func (c *HTTPClient) Get(ctx context.Context, endpoint string, response interface{}) error {
	url := c.BaseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	creds := c.Credentials
	if override, ok := ctx.Value(credentialsKey{}).(Credentials); ok {
		creds = override
	}
	if creds.Token != "" {
		req.Header.Set("Authorization", "Bearer "+creds.Token)
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return &NetworkError{Endpoint: endpoint, Err: err}
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return &NetworkError{Endpoint: endpoint, Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		if res.StatusCode == http.StatusUnauthorized && c.OnUnauthorized != nil {
			c.OnUnauthorized(endpoint)
		}
		return &HTTPError{Endpoint: endpoint, StatusCode: res.StatusCode, Status: res.Status, Body: string(resBody)}
	}

	if response != nil {
		if err := json.Unmarshal(resBody, response); err != nil {
			return fmt.Errorf("failed to decode response of %s: %w", endpoint, err)
		}
	}

	return nil
}
