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

	"github.com/mamadbah2/market/internal/config"
)

func TestSendTextMessage(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v20.0/123/messages", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
	}))
	defer server.Close()

	client := NewClient(config.WhatsAppConfig{AccessToken: "token", PhoneNumberID: "123", BaseURL: server.URL + "/", APIVersion: "v20.0"})

	resp, err := client.SendTextMessage(context.Background(), SendTextMessageRequest{To: "15550001", Body: "hello"})
	require.NoError(t, err)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "wamid.1", resp.Messages[0].ID)
	assert.Equal(t, "15550001", received["to"])
	assert.Equal(t, "hello", received["text"].(map[string]any)["body"])
}

func TestSendTextMessageAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid OAuth access token","code":190}}`))
	}))
	defer server.Close()

	client := NewClient(config.WhatsAppConfig{AccessToken: "bad", PhoneNumberID: "123", BaseURL: server.URL, APIVersion: "v20.0"})

	_, err := client.SendTextMessage(context.Background(), SendTextMessageRequest{To: "15550001", Body: "hello"})
	assert.EqualError(t, err, "whatsapp api error: code=190, message=Invalid OAuth access token")
}

func TestSendTextMessageRejectsLongBody(t *testing.T) {
	client := NewClient(config.WhatsAppConfig{BaseURL: "http://127.0.0.1:1", APIVersion: "v20.0"})

	_, err := client.SendTextMessage(context.Background(), SendTextMessageRequest{Body: strings.Repeat("x", MaxBodyLength+1)})
	assert.Error(t, err)
}

func TestSplitBody(t *testing.T) {
	assert.Equal(t, []string{"short"}, SplitBody("short", 10))
	assert.Equal(t, []string{"aaaa\nbbbb", "cccc"}, SplitBody("aaaa\nbbbb\ncccc", 9))
	assert.Equal(t, []string{"aaaaa", "aaaaa", "aa\nbb"}, SplitBody("aaaaaaaaaaaa\nbb", 5))
}

func TestSplitBodyKeepsRunesWhole(t *testing.T) {
	chunks := SplitBody(strings.Repeat("é", 5), 3)
	assert.Equal(t, []string{"é", "é", "é", "é", "é"}, chunks)

	chunks = SplitBody("Catalog: Jalapeño, Piñon, Crème Fraîche", 10)
	assert.Equal(t, "Catalog: Jalapeño, Piñon, Crème Fraîche", strings.Join(chunks, ""))
	for _, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk), "chunk %q", chunk)
		assert.LessOrEqual(t, len(chunk), 10)
	}

	assert.Equal(t, []string{"é", "é"}, SplitBody("éé", 1))
}
