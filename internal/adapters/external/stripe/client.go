package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const apiBaseURL = "https://api.stripe.com/v1"

// webhook signatures older than this are rejected
const signatureTolerance = 5 * time.Minute

var (
	ErrSignatureInvalid = errors.New("firma del webhook inválida")
	ErrSignatureExpired = errors.New("firma del webhook expirada")
)

// Client is a minimal Stripe API client for payment intents
type Client struct {
	httpClient    *resty.Client
	webhookSecret string
}

// NewClient creates a Stripe client with the secret API key
func NewClient(secretKey, webhookSecret string) *Client {
	client := resty.New().
		SetBaseURL(apiBaseURL).
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		SetAuthToken(secretKey).
		SetHeader("Content-Type", "application/x-www-form-urlencoded")

	return &Client{
		httpClient:    client,
		webhookSecret: webhookSecret,
	}
}

// PaymentIntent is the subset of the Stripe object the backend cares about
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreatePaymentIntent creates a payment intent. Amounts are in the smallest
// currency unit (centavos).
func (c *Client) CreatePaymentIntent(amountCentavos int64, currency string, metadata map[string]string) (*PaymentIntent, error) {
	form := map[string]string{
		"amount":                               strconv.FormatInt(amountCentavos, 10),
		"currency":                             currency,
		"automatic_payment_methods[enabled]":   "true",
	}
	for key, value := range metadata {
		form["metadata["+key+"]"] = value
	}

	var intent PaymentIntent
	var stripeErr apiError
	resp, err := c.httpClient.R().
		SetFormData(form).
		SetResult(&intent).
		SetError(&stripeErr).
		Post("/payment_intents")

	if err != nil {
		return nil, fmt.Errorf("error al contactar Stripe: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("Stripe rechazó la solicitud: %s", stripeErr.Error.Message)
	}

	return &intent, nil
}

// GetPaymentIntent retrieves a payment intent by id
func (c *Client) GetPaymentIntent(id string) (*PaymentIntent, error) {
	var intent PaymentIntent
	var stripeErr apiError
	resp, err := c.httpClient.R().
		SetResult(&intent).
		SetError(&stripeErr).
		Get("/payment_intents/" + id)

	if err != nil {
		return nil, fmt.Errorf("error al contactar Stripe: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("Stripe rechazó la solicitud: %s", stripeErr.Error.Message)
	}

	return &intent, nil
}

// WebhookEvent is a verified Stripe event
type WebhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// VerifyWebhook checks the Stripe-Signature header against the payload and
// returns the parsed event. The header carries `t=<unix>,v1=<hmac>,...`; the
// signed message is `<t>.<payload>` with the webhook secret as HMAC key.
func (c *Client) VerifyWebhook(payload []byte, signatureHeader string) (*WebhookEvent, error) {
	var timestamp int64
	var signatures []string

	for _, part := range strings.Split(signatureHeader, ",") {
		pair := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(pair) != 2 {
			continue
		}
		switch pair[0] {
		case "t":
			parsed, err := strconv.ParseInt(pair[1], 10, 64)
			if err != nil {
				return nil, ErrSignatureInvalid
			}
			timestamp = parsed
		case "v1":
			signatures = append(signatures, pair[1])
		}
	}

	if timestamp == 0 || len(signatures) == 0 {
		return nil, ErrSignatureInvalid
	}
	if time.Since(time.Unix(timestamp, 0)) > signatureTolerance {
		return nil, ErrSignatureExpired
	}

	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	valid := false
	for _, signature := range signatures {
		if hmac.Equal([]byte(expected), []byte(signature)) {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrSignatureInvalid
	}

	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("error al parsear el evento: %w", err)
	}

	return &event, nil
}
