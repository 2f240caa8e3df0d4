package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Default endpoints of the forms-as-a-service fallbacks. Tests point the
// constructors at a local server instead.
const (
	Web3FormsEndpoint = "https://api.web3forms.com/submit"
	FormSubmitBaseURL = "https://formsubmit.co"
	FormspreeBaseURL  = "https://formspree.io"
)

// Web3Forms is fallback channel A, gated on an access key.
type Web3Forms struct {
	client     *http.Client
	endpoint   string
	accessKey  string
	recipients []string
	fromName   string
}

func NewWeb3Forms(client *http.Client, endpoint, accessKey string, recipients []string, fromName string) *Web3Forms {
	return &Web3Forms{
		client:     client,
		endpoint:   endpoint,
		accessKey:  accessKey,
		recipients: recipients,
		fromName:   fromName,
	}
}

func (c *Web3Forms) Name() string { return "web3forms" }

func (c *Web3Forms) Send(ctx context.Context, msg *Message) error {
	if c.accessKey == "" || len(c.recipients) == 0 {
		return ErrNotConfigured
	}

	payload := map[string]string{
		"access_key": c.accessKey,
		"subject":    msg.Subject,
		"from_name":  c.fromName,
		"name":       msg.SenderName,
		"email":      msg.SenderEmail,
		"message":    msg.Text,
		"to":         c.recipients[0],
		"cc":         strings.Join(c.recipients[1:], ","),
	}
	return postJSON(ctx, c.client, c.endpoint, payload)
}

// FormSubmit is fallback channel B. It needs no secret and is always
// attempted; the recipient address is part of the URL.
type FormSubmit struct {
	client     *http.Client
	baseURL    string
	recipients []string
}

func NewFormSubmit(client *http.Client, baseURL string, recipients []string) *FormSubmit {
	return &FormSubmit{
		client:     client,
		baseURL:    baseURL,
		recipients: recipients,
	}
}

func (c *FormSubmit) Name() string { return "formsubmit" }

func (c *FormSubmit) Send(ctx context.Context, msg *Message) error {
	if len(c.recipients) == 0 {
		return ErrNotConfigured
	}

	payload := map[string]string{
		"_subject":  msg.Subject,
		"_cc":       strings.Join(c.recipients[1:], ","),
		"_template": "box",
		"message":   msg.Text,
	}
	endpoint := fmt.Sprintf("%s/ajax/%s", c.baseURL, c.recipients[0])
	return postJSON(ctx, c.client, endpoint, payload)
}

// Formspree is fallback channel C, gated on a form id.
type Formspree struct {
	client     *http.Client
	baseURL    string
	formID     string
	recipients []string
}

func NewFormspree(client *http.Client, baseURL, formID string, recipients []string) *Formspree {
	return &Formspree{
		client:     client,
		baseURL:    baseURL,
		formID:     formID,
		recipients: recipients,
	}
}

func (c *Formspree) Name() string { return "formspree" }

func (c *Formspree) Send(ctx context.Context, msg *Message) error {
	if c.formID == "" {
		return ErrNotConfigured
	}

	payload := map[string]string{
		"name":     msg.SenderName,
		"email":    msg.SenderEmail,
		"message":  msg.Text,
		"_subject": msg.Subject,
		"_cc":      strings.Join(c.recipients, ","),
	}
	endpoint := fmt.Sprintf("%s/f/%s", c.baseURL, c.formID)
	return postJSON(ctx, c.client, endpoint, payload)
}

func postJSON(ctx context.Context, client *http.Client, endpoint string, payload map[string]string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("post failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, endpoint)
	}
	return nil
}
