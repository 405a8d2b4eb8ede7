// Package euskalmet is the authenticated HTTP client for the Euskalmet
// open-data API, plus the endpoint catalogue and error taxonomy shared by
// the station and forecast coordinators.
package euskalmet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/urtzik/euskalmet-bridge/internal/auth"
)

// DefaultTokenTTL is the validity window for freshly minted request
// tokens. Tokens are regenerated per request, so the window only needs to
// outlive a single round trip.
const DefaultTokenTTL = time.Hour

// Client issues authenticated GET requests against the Euskalmet API.
// One Client (and its connection pool) lives for the lifetime of a
// configuration.
type Client struct {
	baseURL  string
	http     *http.Client
	cred     auth.Credential
	tokenTTL time.Duration
	circuit  *gobreaker.CircuitBreaker
}

// NewClient builds a Client around a shared http.Client. The per-call
// timeout is applied with request contexts, not on the http.Client.
func NewClient(httpClient *http.Client, baseURL string, cred auth.Credential, tokenTTL time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "euskalmet",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		baseURL:  baseURL,
		http:     httpClient,
		cred:     cred,
		tokenTTL: tokenTTL,
		circuit:  cb,
	}
}

// getJSON performs one authenticated GET and decodes the body into out.
// It returns found=false without an error when the response is a non-auth
// non-2xx status or the body is not the JSON shape the caller expects:
// a single missing payload must never crash a refresh cycle. Auth and
// network failures are returned as ErrAuthFailed / ErrTransport so call
// sites can decide whether the cycle survives.
func (c *Client) getJSON(ctx context.Context, path string, timeout time.Duration, out any) (bool, error) {
	token, err := auth.Issue(c.cred, c.tokenTTL)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	result, err := c.circuit.Execute(func() (interface{}, error) {
		return c.http.Do(req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return false, fmt.Errorf("%w: circuit open for %s", ErrTransport, c.baseURL)
		}
		return false, fmt.Errorf("%w: GET %s: %v", ErrTransport, url, err)
	}

	resp := result.(*http.Response)
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return false, fmt.Errorf("%w: HTTP %d from %s", ErrAuthFailed, resp.StatusCode, url)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		log.Printf("euskalmet: GET %s returned HTTP %d", url, resp.StatusCode)
		return false, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Printf("euskalmet: GET %s returned malformed JSON: %v", url, err)
		return false, nil
	}
	return true, nil
}

// GetJSON is the strict variant used by required calls: an absent or
// malformed payload becomes ErrUpstream instead of a silent miss.
func (c *Client) GetJSON(ctx context.Context, path string, timeout time.Duration, out any) error {
	found, err := c.getJSON(ctx, path, timeout, out)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: no usable payload from %s", ErrUpstream, path)
	}
	return nil
}
