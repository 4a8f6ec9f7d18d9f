// Package rest implements the HTTP plumbing shared by all provider variants:
// an authenticated GET client, the vendor pagination strategies, and the
// generic paginated-fetch loop that aggregates listing endpoints.
package rest

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitmeta/domain"
)

const defaultTimeout = 30 * time.Second

// Auth is the authorization header a platform expects on every request.
// A zero Auth sends no header (anonymous access).
type Auth struct {
	Header string
	Value  string
}

// BearerAuth builds an "Authorization: Bearer" header.
func BearerAuth(token string) Auth {
	if token == "" {
		return Auth{}
	}
	return Auth{Header: "Authorization", Value: "Bearer " + token}
}

// BasicAuth builds an "Authorization: Basic" header from user and password.
// Azure DevOps PATs use an empty user.
func BasicAuth(user, password string) Auth {
	if user == "" && password == "" {
		return Auth{}
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(user + ":" + password))
	return Auth{Header: "Authorization", Value: "Basic " + encoded}
}

// TokenAuth builds an "Authorization: token" header (Gitea convention).
func TokenAuth(token string) Auth {
	if token == "" {
		return Auth{}
	}
	return Auth{Header: "Authorization", Value: "token " + token}
}

// HeaderAuth builds a custom header, e.g. GitLab's PRIVATE-TOKEN.
func HeaderAuth(header, value string) Auth {
	if value == "" {
		return Auth{}
	}
	return Auth{Header: header, Value: value}
}

// Response is a fully-read HTTP response, retained so pagers can inspect the
// final URL, status and headers after the body has been consumed.
type Response struct {
	URL    string
	Status int
	Header http.Header
	Body   []byte
}

// Client issues authenticated GET requests against a platform's REST API.
type Client struct {
	auth       Auth
	httpClient *http.Client
}

// NewClient creates a client with the given auth header and a default timeout.
func NewClient(auth Auth) *Client {
	return &Client{
		auth: auth,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// NewClientWithHTTP creates a client backed by a caller-supplied http.Client,
// e.g. one produced by oauth2.NewClient.
func NewClientWithHTTP(auth Auth, httpClient *http.Client) *Client {
	return &Client{auth: auth, httpClient: httpClient}
}

// Get issues a GET request and reads the whole body. A non-2xx status yields
// a domain.FetchError; transport failures are wrapped and never retried here,
// since retry policy belongs to the caller.
func (c *Client) Get(ctx context.Context, rawURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %q: %w", rawURL, err)
	}
	if c.auth.Header != "" {
		req.Header.Set(c.auth.Header, c.auth.Value)
	}
	req.Header.Set("Accept", "application/json")

	logger.Debugf("GET %s", rawURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %q failed: %w", rawURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %q: %w", rawURL, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &domain.FetchError{Status: resp.StatusCode, URL: rawURL}
	}

	return &Response{
		URL:    rawURL,
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   body,
	}, nil
}
