// Package mailer delivers verification codes through the EmailJS REST API.
// Delivery is best-effort: callers decide whether to wait on the result,
// and the registration flow deliberately does not.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
)

// ErrEmptyRecipient means there is no destination address to deliver to.
// Checked before any network call is attempted.
var ErrEmptyRecipient = errors.New("recipient email address is empty")

// ErrDelivery wraps a failure reported by the email provider.
var ErrDelivery = errors.New("email delivery failed")

// Sender is the notification sink the registration flow dispatches to.
type Sender interface {
	SendVerificationCode(ctx context.Context, toEmail, code, eventTitle string) error
}

type EmailJS struct {
	endpoint   string
	serviceID  string
	templateID string
	publicKey  string
	client     *http.Client
}

func NewEmailJSFromEnv() *EmailJS {
	return &EmailJS{
		endpoint:   getEnv("EMAILJS_ENDPOINT", "https://api.emailjs.com/api/v1.0/email/send"),
		serviceID:  os.Getenv("EMAILJS_SERVICE_ID"),
		templateID: os.Getenv("EMAILJS_TEMPLATE_ID"),
		publicKey:  os.Getenv("EMAILJS_PUBLIC_KEY"),
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// SendVerificationCode posts the code to EmailJS. The template params
// (email, passcode, event_title) must match the template configured on the
// EmailJS side.
func (m *EmailJS) SendVerificationCode(ctx context.Context, toEmail, code, eventTitle string) error {
	if toEmail == "" {
		return ErrEmptyRecipient
	}

	payload := map[string]any{
		"service_id":  m.serviceID,
		"template_id": m.templateID,
		"user_id":     m.publicKey,
		"template_params": map[string]string{
			"email":       toEmail,
			"passcode":    code,
			"event_title": eventTitle,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrDelivery, resp.StatusCode)
	}
	return nil
}
