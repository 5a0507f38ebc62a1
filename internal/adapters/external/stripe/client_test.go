package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_test_secret"

func signPayload(secret string, timestamp int64, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookFirmaValida(t *testing.T) {
	client := NewClient("sk_test", testSecret)
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1"}}}`)
	now := time.Now().Unix()
	header := fmt.Sprintf("t=%d,v1=%s", now, signPayload(testSecret, now, payload))

	event, err := client.VerifyWebhook(payload, header)
	require.NoError(t, err)
	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, "payment_intent.succeeded", event.Type)
}

func TestVerifyWebhookFirmaIncorrecta(t *testing.T) {
	client := NewClient("sk_test", testSecret)
	payload := []byte(`{"id":"evt_1"}`)
	now := time.Now().Unix()
	header := fmt.Sprintf("t=%d,v1=%s", now, signPayload("otro_secreto", now, payload))

	_, err := client.VerifyWebhook(payload, header)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestVerifyWebhookPayloadAlterado(t *testing.T) {
	client := NewClient("sk_test", testSecret)
	payload := []byte(`{"id":"evt_1"}`)
	now := time.Now().Unix()
	header := fmt.Sprintf("t=%d,v1=%s", now, signPayload(testSecret, now, payload))

	_, err := client.VerifyWebhook([]byte(`{"id":"evt_2"}`), header)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestVerifyWebhookExpirado(t *testing.T) {
	client := NewClient("sk_test", testSecret)
	payload := []byte(`{"id":"evt_1"}`)
	old := time.Now().Add(-10 * time.Minute).Unix()
	header := fmt.Sprintf("t=%d,v1=%s", old, signPayload(testSecret, old, payload))

	_, err := client.VerifyWebhook(payload, header)
	assert.ErrorIs(t, err, ErrSignatureExpired)
}

func TestVerifyWebhookHeaderMalformado(t *testing.T) {
	client := NewClient("sk_test", testSecret)

	_, err := client.VerifyWebhook([]byte(`{}`), "garbage")
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}
