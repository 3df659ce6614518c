package dataverse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/domain/resource"
)

const (
	// DefaultAPIVersion is the Web API version used unless WithAPIVersion says otherwise.
	DefaultAPIVersion = "9.2"

	// DefaultCallTimeout bounds a single Web API call.
	DefaultCallTimeout = 2 * time.Minute

	contentTypeJSON = "application/json; charset=utf-8"
)

// Client talks to one Dataverse environment.
type Client struct {
	// baseURL is the service root, e.g. https://org.crm.dynamics.com/api/data/v9.2/.
	baseURL *url.URL
	// httpClient attaches bearer tokens to every request.
	httpClient *http.Client

	// base is the transport tokens are layered on; nil means http.DefaultTransport.
	base http.RoundTripper
	// tokenSource overrides the client credentials flow when set.
	tokenSource oauth2.TokenSource

	apiVersion  string
	callTimeout time.Duration
	closed      bool
}

// Option configures client behaviour.
type Option func(*Client)

// WithAPIVersion selects the Web API version, e.g. "9.1".
func WithAPIVersion(version string) Option {
	return func(c *Client) {
		if version != "" {
			c.apiVersion = version
		}
	}
}

// WithCallTimeout sets a timeout for every Web API call.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithTransport sets the HTTP transport the client sends requests through.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.base = rt
	}
}

// WithTokenSource replaces the client credentials flow with a custom token source.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Client) {
		c.tokenSource = ts
	}
}

// Dial parses the connection string, prepares authentication and verifies the
// connection with a WhoAmI call. ctx also scopes token acquisition, so it should
// live as long as the client.
func Dial(ctx context.Context, connectionString string, opts ...Option) (*Client, error) {
	cs, err := ParseConnectionString(connectionString)
	if err != nil {
		return nil, err
	}

	client := &Client{
		apiVersion:  DefaultAPIVersion,
		callTimeout: DefaultCallTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	baseURL, err := url.Parse(fmt.Sprintf("%s://%s%s/api/data/v%s/", cs.URL.Scheme, cs.URL.Host, cs.URL.Path, client.apiVersion))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConnectionString, err)
	}

	client.baseURL = baseURL

	if client.tokenSource == nil {
		if err = cs.ValidateCredentials(); err != nil {
			return nil, err
		}

		credentials := &clientcredentials.Config{
			ClientID:     cs.ClientID,
			ClientSecret: cs.ClientSecret,
			TokenURL:     cs.TokenURL(),
			Scopes:       []string{cs.Scope()},
		}

		// Token requests run outside callContext, so the token client carries the timeout itself.
		tokenClient := &http.Client{
			Transport: client.base,
			Timeout:   client.callTimeout,
		}

		client.tokenSource = credentials.TokenSource(context.WithValue(ctx, oauth2.HTTPClient, tokenClient))
	}

	client.httpClient = &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.ReuseTokenSource(nil, client.tokenSource),
			Base:   client.base,
		},
	}

	if _, err = client.WhoAmI(ctx); err != nil {
		client.Close() //nolint:errcheck,gosec // Close never fails; the dial error matters.

		return nil, fmt.Errorf("connect to %s: %w", cs.URL.Host, err)
	}

	return client, nil
}

// Close releases idle connections. Further calls fail with ErrClosed.
func (c *Client) Close() error {
	if c == nil || c.closed {
		return nil
	}

	c.closed = true

	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
	}

	return nil
}

// WhoAmI returns the identity the client is authenticated as.
func (c *Client) WhoAmI(ctx context.Context) (*WhoAmIResponse, error) {
	var resp WhoAmIResponse
	if err := c.do(ctx, http.MethodGet, "WhoAmI", nil, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("who am i: %w", err)
	}

	return &resp, nil
}

// Execute runs an unbound action and decodes its result into response, which may be nil.
func (c *Client) Execute(ctx context.Context, request Request, response any) error {
	if err := c.do(ctx, http.MethodPost, request.Action(), nil, nil, request, response); err != nil {
		return fmt.Errorf("execute %s: %w", request.Action(), err)
	}

	return nil
}

// Update writes delta.Content into the content column of an existing record.
// Other columns are left untouched, and If-Match keeps PATCH from creating a record.
func (c *Client) Update(ctx context.Context, delta resource.Delta) error {
	e, err := entityOf(delta.Kind)
	if err != nil {
		return err
	}

	body := map[string]string{"content": delta.Content}
	header := http.Header{"If-Match": []string{"*"}}
	path := fmt.Sprintf("%s(%s)", e.set, delta.ID)

	if err = c.do(ctx, http.MethodPatch, path, nil, header, body, nil); err != nil {
		return fmt.Errorf("update %s %s: %w", delta.Kind, delta.ID, err)
	}

	return nil
}

// NewQueryContext returns a query context bound to the client.
func (c *Client) NewQueryContext() *QueryContext {
	return &QueryContext{client: c}
}

// do sends one request relative to the service root.
//
//nolint:cyclop // Request building and response handling read best in one place.
func (c *Client) do(
	ctx context.Context,
	method, path string,
	query url.Values,
	header http.Header,
	body, out any,
) error {
	if c.closed {
		return ErrClosed
	}

	target := c.baseURL.JoinPath(path)
	target.RawQuery = query.Encode()

	var payload io.Reader = http.NoBody

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}

		payload = bytes.NewReader(data)
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, method, target.String(), payload)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("OData-MaxVersion", "4.0")
	req.Header.Set("OData-Version", "4.0")

	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}

	for key, values := range header {
		req.Header[key] = values
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
