package clients

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"microshop/internal/services"
)

// UserClient talks to the user registry over HTTP. It implements
// services.UserVerifier for order creation and exposes CheckHealth for the
// readiness fan-check. Every call is a single attempt bounded by a
// timeout; there is no retry, backoff, or circuit breaker.
type UserClient struct {
	baseURL       string
	client        *http.Client
	verifyTimeout time.Duration
	healthTimeout time.Duration
}

// NewUserClient creates a client for the user registry at baseURL.
func NewUserClient(baseURL string, verifyTimeout, healthTimeout time.Duration) *UserClient {
	return &UserClient{
		baseURL:       baseURL,
		client:        &http.Client{},
		verifyTimeout: verifyTimeout,
		healthTimeout: healthTimeout,
	}
}

// VerifyUser issues one GET against the registry's read-by-id endpoint.
// A 2xx confirms the user, a 404 positively denies it, and everything
// else (other statuses, timeouts, transport failures) is Unknown: a
// failing dependency proves nothing about the user. Cancelling ctx
// abandons the call.
func (c *UserClient) VerifyUser(ctx context.Context, userID string) services.Existence {
	ctx, cancel := context.WithTimeout(ctx, c.verifyTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/api/v1/users/%s", c.baseURL, url.PathEscape(userID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Printf("Error building user verification request: %v", err)
		return services.ExistenceUnknown
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("Error verifying user %s: %v", userID, err)
		return services.ExistenceUnknown
	}
	defer closeBody(resp)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return services.ExistenceConfirmed
	case resp.StatusCode == http.StatusNotFound:
		return services.ExistenceAbsent
	default:
		log.Printf("Unexpected status %d verifying user %s", resp.StatusCode, userID)
		return services.ExistenceUnknown
	}
}

// CheckHealth probes the registry's health endpoint with its own, shorter
// timeout. Any non-200 response or transport failure is reported as an
// error; callers map that to degraded readiness, not unhealthiness.
func (c *UserClient) CheckHealth(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to build health request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("user service not reachable: %w", err)
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("user service health returned status %d", resp.StatusCode)
	}
	return nil
}

func closeBody(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
