// Package recruitmentclient is the auth service's outbound client for the
// recruitment service's internal person-provisioning endpoint.
package recruitmentclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// createPersonRequest mirrors the recruitment service's provisioning payload.
type createPersonRequest struct {
	PersonID       int64  `json:"person_id"`
	Email          string `json:"email"`
	PersonalNumber string `json:"pnr"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the recruitment service at baseURL. The timeout
// bounds the whole provisioning call; a timed-out call counts as a failure
// and triggers the saga's compensation.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CreateProfile asks the recruitment service to materialize a profile for a
// newly created identity. Success or failure is the only observable outcome.
func (c *Client) CreateProfile(ctx context.Context, personID int64, email, personalNumber string) error {
	body, err := json.Marshal(createPersonRequest{
		PersonID:       personID,
		Email:          email,
		PersonalNumber: personalNumber,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/recruitment/persons", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("recruitment service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a little of the body so the error is diagnosable
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("recruitment service returned %d: %s", resp.StatusCode, snippet)
	}
	return nil
}
