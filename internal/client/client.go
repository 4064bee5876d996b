// Package client is the authenticated HTTP layer between the UI and the
// REST API: it attaches the stored bearer credential to every call,
// recovers from 401/403 with a single refresh attempt, and exposes the
// role resolver and workflow operations the screens are built on.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/tawhidislam22/business-management/internal/session"
)

const requestTimeout = 10 * time.Second

// APIError carries a backend error through to the caller verbatim.
type APIError struct {
	Status  int
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Client calls the REST API with bearer authentication.
type Client struct {
	baseURL string
	http    *http.Client
	store   *session.CredentialStore
	log     *zap.Logger

	// onAuthFailure runs when credential refresh terminally fails and the
	// client has been forced out. Typically session.Manager.ForceSignOut.
	onAuthFailure func(ctx context.Context)
}

func New(baseURL string, store *session.CredentialStore, log *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
		store:   store,
		log:     log,
	}
}

// SetAuthFailureHandler registers the forced sign-out hook.
func (c *Client) SetAuthFailureHandler(fn func(ctx context.Context)) {
	c.onAuthFailure = fn
}

// do runs one API call: encode body, attach bearer, decode the response
// into out. On 401/403 it refreshes the credential once and retries; if
// that fails the stored credentials are dropped and the auth-failure hook
// fires.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.send(ctx, method, path, body, c.store.AccessToken())
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		drain(resp)

		token, refreshErr := c.refresh(ctx)
		if refreshErr != nil {
			c.log.Warn("credential refresh failed, forcing sign-out", zap.Error(refreshErr))
			_ = c.store.Clear()
			if c.onAuthFailure != nil {
				c.onAuthFailure(ctx)
			}
			return &APIError{Status: resp.StatusCode, Message: "session expired, please sign in again"}
		}

		resp, err = c.send(ctx, method, path, body, token)
		if err != nil {
			return err
		}
	}

	return decode(resp, out)
}

func (c *Client) send(ctx context.Context, method, path string, body any, token string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.http.Do(req)
}

// refresh trades the stored refresh credential for a new access token.
// Exactly one attempt; no refresh credential means immediate failure.
func (c *Client) refresh(ctx context.Context) (string, error) {
	refreshToken := c.store.RefreshToken()
	if refreshToken == "" {
		return "", fmt.Errorf("no refresh credential stored")
	}

	var result struct {
		Token        string `json:"token"`
		RefreshToken string `json:"refreshToken"`
	}
	resp, err := c.send(ctx, http.MethodPost, "/refresh-token",
		map[string]string{"refreshToken": refreshToken}, "")
	if err != nil {
		return "", err
	}
	if err := decode(resp, &result); err != nil {
		return "", err
	}

	if result.RefreshToken != "" {
		// server rotates the refresh credential on every use
		if err := c.store.SetTokens(result.Token, result.RefreshToken); err != nil {
			return "", err
		}
	} else if err := c.store.SetAccessToken(result.Token); err != nil {
		return "", err
	}
	return result.Token, nil
}

func decode(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// Get issues an authenticated GET.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues an authenticated POST.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Patch issues an authenticated PATCH.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

// Delete issues an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
