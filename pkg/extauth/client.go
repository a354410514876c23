// Package extauth talks to the campus credential service that owns
// passwords. This API never stores credentials; it only learns who the
// caller is.
package extauth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrRejected means the service answered but did not accept the credentials.
	ErrRejected = errors.New("extauth: invalid credentials")
	// ErrUnavailable means the service could not be reached.
	ErrUnavailable = errors.New("extauth: service unavailable")
	// ErrNoEmail means the service accepted the login without returning an email.
	ErrNoEmail = errors.New("extauth: no email returned from external server")
)

// Identity is what the credential service tells us about a user.
type Identity struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type Client struct {
	url  string
	http *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

// Verify checks a register number and password against the service.
func (c *Client) Verify(ctx context.Context, registerNumber, password string) (*Identity, error) {
	body, err := json.Marshal(map[string]string{
		"register_number": registerNumber,
		"password":        password,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("extauth: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrRejected
	}

	var id Identity
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if id.Email == "" {
		return nil, ErrNoEmail
	}
	return &id, nil
}
