package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client calls the dispatcher service over HTTP. It implements the
// verification workflow's Mailer interface so the directory server can
// delegate email delivery to the microservice.
type Client struct {
	baseURL    string
	appURL     string
	httpClient *http.Client
}

// NewClient creates a dispatcher client. baseURL is the dispatcher address,
// appURL the application URL embedded in the emailed links.
func NewClient(baseURL, appURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		appURL:     appURL,
		httpClient: http.DefaultClient,
	}
}

func (c *Client) send(ctx context.Context, req SendEmailRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/send-email", bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("mailer service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		data, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("mailer service: %s", errResp.Error)
		}
		return fmt.Errorf("mailer service returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) SendSignupConfirmation(ctx context.Context, to, name, token string) error {
	return c.send(ctx, SendEmailRequest{
		To:     to,
		Type:   "signup_confirmation",
		Name:   name,
		Token:  token,
		AppURL: c.appURL,
	})
}

func (c *Client) SendPasswordReset(ctx context.Context, to, name, token string) error {
	return c.send(ctx, SendEmailRequest{
		To:     to,
		Type:   "password_reset",
		Name:   name,
		Token:  token,
		AppURL: c.appURL,
	})
}

// SendCustom relays a caller-composed email through the dispatcher.
func (c *Client) SendCustom(ctx context.Context, to, subject, html string) error {
	return c.send(ctx, SendEmailRequest{
		To:      to,
		Type:    "custom",
		Subject: subject,
		HTML:    html,
	})
}
