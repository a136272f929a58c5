package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/livestock-gva/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *APIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(config.WhatsAppConfig{
		AccessToken:   "secret",
		PhoneNumberID: "5550001",
		BaseURL:       srv.URL + "/",
		APIVersion:    "v20.0",
	})
}

func TestSendText(t *testing.T) {
	var got textPayload
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v20.0/5550001/messages", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.123"}]}`))
	})

	id, err := client.SendText(context.Background(), "919000000001", "Weekly GVA digest")
	require.NoError(t, err)
	assert.Equal(t, "wamid.123", id)
	assert.Equal(t, "whatsapp", got.MessagingProduct)
	assert.Equal(t, "919000000001", got.To)
	assert.Equal(t, "Weekly GVA digest", got.Text.Body)
}

func TestSendText_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid OAuth access token","code":190}}`))
	})

	_, err := client.SendText(context.Background(), "919000000001", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code=190")
	assert.Contains(t, err.Error(), "Invalid OAuth access token")
}

func TestSendText_RequiresRecipient(t *testing.T) {
	client := NewClient(config.WhatsAppConfig{BaseURL: "http://unused", APIVersion: "v20.0"})
	_, err := client.SendText(context.Background(), "", "hello")
	assert.Error(t, err)
}

func TestTruncate_KeepsValidUTF8(t *testing.T) {
	s := strings.Repeat("₹", 10) // 3 bytes each
	out := truncate(s, 7)
	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, "₹₹", out)
}
