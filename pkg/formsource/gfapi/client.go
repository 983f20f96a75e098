// Package gfapi talks to a WordPress site through the Gravity Forms REST API
// v2.
package gfapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-formbridge/pkg/formsource"
	"github.com/goliatone/go-formbridge/pkg/gravity"
)

// APIPrefix is the route prefix of the Gravity Forms REST API.
const APIPrefix = "/wp-json/gf/v2"

// DefaultTimeout bounds each request when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// maxResponseBytes caps response bodies read from the remote site.
const maxResponseBytes = 8 << 20

// Client is a formsource.Source backed by a remote Gravity Forms install.
type Client struct {
	base    *url.URL
	http    *http.Client
	key     string
	secret  string
	timeout time.Duration
}

var (
	_ formsource.Source = (*Client)(nil)
	_ formsource.Probe  = (*Client)(nil)
)

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithCredentials sets the consumer key and secret sent as basic auth.
func WithCredentials(key, secret string) Option {
	return func(c *Client) {
		c.key = key
		c.secret = secret
	}
}

// WithTimeout bounds each request. Zero disables the per-request deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// New returns a client for the WordPress site at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("gfapi: base url is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("gfapi: parse base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("gfapi: unsupported scheme %q", parsed.Scheme)
	}
	parsed.Path = strings.TrimSuffix(parsed.Path, "/")

	client := &Client{
		base:    parsed,
		http:    &http.Client{},
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// Available implements formsource.Probe. A site without the Gravity Forms
// routes answers 404, which is reported as formsource.ErrUnavailable.
func (c *Client) Available(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/forms", nil)
	if err != nil {
		return fmt.Errorf("%w: %v", formsource.ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: unexpected status %s", formsource.ErrUnavailable, resp.Status)
	}
	return nil
}

// FetchForm implements formsource.Source.
func (c *Client) FetchForm(ctx context.Context, id gravity.ID) (gravity.Form, error) {
	resp, err := c.do(ctx, http.MethodGet, "/forms/"+url.PathEscape(id.String()), nil)
	if err != nil {
		return gravity.Form{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return gravity.Form{}, fmt.Errorf("gfapi: read form %s: %w", id, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return gravity.Form{}, formsource.ErrFormNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return gravity.Form{}, fmt.Errorf("gfapi: fetch form %s: unexpected status %s", id, resp.Status)
	}

	form, err := gravity.DecodeForm(data)
	if err != nil {
		return gravity.Form{}, fmt.Errorf("gfapi: form %s: %w", id, err)
	}
	if form.ID.IsZero() {
		form.ID = id
	}
	return form, nil
}

// SubmitForm implements formsource.Source. Gravity Forms answers 400 with a
// regular result body when validation fails, so both statuses decode.
func (c *Client) SubmitForm(ctx context.Context, id gravity.ID, body map[string]any) (gravity.SubmissionResult, error) {
	if body == nil {
		body = map[string]any{}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return gravity.SubmissionResult{}, fmt.Errorf("gfapi: encode submission: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/forms/"+url.PathEscape(id.String())+"/submissions", payload)
	if err != nil {
		return gravity.SubmissionResult{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return gravity.SubmissionResult{}, fmt.Errorf("gfapi: read submission result: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return gravity.SubmissionResult{}, formsource.ErrFormNotFound
	case resp.StatusCode == http.StatusBadRequest, resp.StatusCode >= 200 && resp.StatusCode < 300:
	default:
		return gravity.SubmissionResult{}, fmt.Errorf("gfapi: submit form %s: unexpected status %s", id, resp.Status)
	}

	return decodeResult(data)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	if c == nil || c.http == nil {
		return nil, errors.New("gfapi: client is not configured")
	}

	cancel := context.CancelFunc(func() {})
	if c.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
	}

	target := *c.base
	target.Path = c.base.Path + APIPrefix + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("gfapi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.key != "" || c.secret != "" {
		req.SetBasicAuth(c.key, c.secret)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("gfapi: %s %s: %w", method, target.Path, err)
	}
	// the deadline covers reading the body; closing it releases the timer
	resp.Body = &cancelBody{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

type cancelBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelBody) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}
