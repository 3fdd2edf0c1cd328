package sandbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/formforge/formforge/core"
)

// DefaultHTTPTimeout is the timeout used by provisioners created without a
// custom http.Client. Intentionally short to avoid hanging a run on a dead
// sandbox service.
const DefaultHTTPTimeout = 15 * time.Second

// APIError represents a sandbox service error response.
type APIError struct {
	StatusCode int
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sandbox api error (%d): %s", e.StatusCode, e.Message)
}

// HTTPOptions configure the HTTPProvisioner.
type HTTPOptions struct {
	// HTTPClient overrides the default client.
	HTTPClient *http.Client
	// Token is sent as a bearer token when non-empty.
	Token string
}

// HTTPProvisioner provisions sandboxes from an external service over REST:
// POST {base}/v1/sandboxes acquires, DELETE {base}/v1/sandboxes/{id}
// releases.
type HTTPProvisioner struct {
	baseURL    *url.URL
	httpClient *http.Client
	token      string
}

// NewHTTPProvisioner creates a provisioner for the sandbox service at rawURL.
func NewHTTPProvisioner(rawURL string, optFns ...func(o *HTTPOptions)) (*HTTPProvisioner, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("sandbox: invalid base url: %w", err)
	}
	opts := HTTPOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &HTTPProvisioner{baseURL: parsed, httpClient: opts.HTTPClient, token: opts.Token}, nil
}

// Acquire implements core.ResourceProvisioner.
func (p *HTTPProvisioner) Acquire(ctx context.Context, config map[string]any) (*core.ResourceHandle, error) {
	body, err := json.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("sandbox: encode config: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint("/v1/sandboxes"), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	p.authorize(req)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sandbox: acquire request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, decodeAPIError(resp)
	}

	var handle core.ResourceHandle
	if err := json.NewDecoder(resp.Body).Decode(&handle); err != nil {
		return nil, fmt.Errorf("sandbox: decode acquire response: %w", err)
	}
	if handle.ID == "" {
		return nil, fmt.Errorf("sandbox: service returned an empty sandbox id")
	}
	return &handle, nil
}

// Release implements core.ResourceProvisioner.
func (p *HTTPProvisioner) Release(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, p.endpoint("/v1/sandboxes/"+url.PathEscape(id)), nil)
	if err != nil {
		return err
	}
	p.authorize(req)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sandbox: release request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return decodeAPIError(resp)
	}
	return nil
}

func (p *HTTPProvisioner) endpoint(path string) string {
	ref := *p.baseURL
	ref.Path, _ = url.JoinPath(ref.Path, path)
	return ref.String()
}

func (p *HTTPProvisioner) authorize(req *http.Request) {
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil && len(data) > 0 {
		if jsonErr := json.Unmarshal(data, apiErr); jsonErr != nil {
			apiErr.Message = string(data)
		}
	}
	return apiErr
}
