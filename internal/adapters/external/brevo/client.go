package brevo

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const apiBaseURL = "https://api.brevo.com/v3"

// Client sends transactional email through the Brevo API
type Client struct {
	httpClient *resty.Client
	remitente  string
}

// NewClient creates a Brevo client. remitente is the verified sender address.
func NewClient(apiKey, remitente string) *Client {
	client := resty.New().
		SetBaseURL(apiBaseURL).
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		SetHeader("api-key", apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: client,
		remitente:  remitente,
	}
}

// Enabled reports whether the client has a sender configured
func (c *Client) Enabled() bool {
	return c.remitente != ""
}

type emailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendRequest struct {
	Sender      emailAddress   `json:"sender"`
	To          []emailAddress `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

type sendResponse struct {
	MessageID string `json:"messageId"`
}

// SendEmail delivers a single HTML email
func (c *Client) SendEmail(destinatario, nombre, asunto, contenidoHTML string) error {
	request := sendRequest{
		Sender:      emailAddress{Email: c.remitente, Name: "Administración del Edificio"},
		To:          []emailAddress{{Email: destinatario, Name: nombre}},
		Subject:     asunto,
		HTMLContent: contenidoHTML,
	}

	var result sendResponse
	resp, err := c.httpClient.R().
		SetBody(request).
		SetResult(&result).
		Post("/smtp/email")

	if err != nil {
		return fmt.Errorf("error al contactar Brevo: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("Brevo rechazó el correo: %s", resp.Status())
	}

	return nil
}
