package generative

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://openai.test/v1/"

func newMockedOpenAI(t *testing.T) (*OpenAIClient, *httpmock.MockTransport) {
	t.Helper()
	transport := httpmock.NewMockTransport()
	client := NewOpenAIClient(Config{
		OpenAIAPIKey:  "test-key",
		OpenAIBaseURL: testBaseURL,
	}, &http.Client{Transport: transport})
	return client, transport
}

// jsonResponder mirrors the providers: the SDKs only decode application/json bodies.
func jsonResponder(status int, body string) httpmock.Responder {
	return httpmock.NewStringResponder(status, body).
		HeaderSet(http.Header{"Content-Type": {"application/json"}})
}

func TestOpenAIClient_Chat(t *testing.T) {
	client, transport := newMockedOpenAI(t)
	transport.RegisterResponder("POST", testBaseURL+"chat/completions",
		jsonResponder(http.StatusOK, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-3.5-turbo",
			"choices": [{
				"index": 0,
				"finish_reason": "stop",
				"message": {"role": "assistant", "content": "{\"name\": \"J.R.R. Tolkien\"}"}
			}]
		}`))

	text, err := client.Chat(context.Background(), "About the following author: Tolkien")
	require.NoError(t, err)
	assert.Equal(t, `{"name": "J.R.R. Tolkien"}`, text)
	assert.Equal(t, 1, transport.GetTotalCallCount())
}

func TestOpenAIClient_ChatNoChoices(t *testing.T) {
	client, transport := newMockedOpenAI(t)
	transport.RegisterResponder("POST", testBaseURL+"chat/completions",
		jsonResponder(http.StatusOK, `{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`))

	_, err := client.Chat(context.Background(), "prompt")
	assert.Error(t, err)
}

func TestOpenAIClient_Image(t *testing.T) {
	client, transport := newMockedOpenAI(t)
	transport.RegisterResponder("POST", testBaseURL+"images/generations",
		jsonResponder(http.StatusOK, `{"created": 1700000000, "data": [{"b64_json": "aGVsbG8="}]}`))

	b64, err := client.Image(context.Background(), "J.R.R. Tolkien, portrait")
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8=", b64)
}

func TestOpenAIClient_RateLimitedIsNotRetried(t *testing.T) {
	client, transport := newMockedOpenAI(t)
	transport.RegisterResponder("POST", testBaseURL+"chat/completions",
		jsonResponder(http.StatusTooManyRequests,
			`{"error": {"message": "rate limited", "type": "requests", "code": "rate_limit_exceeded"}}`))

	provider := NewProvider(client, client, time.Second, nil)
	_, err := provider.Chat(context.Background(), "prompt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Contains(t, err.Error(), "429")
	assert.Equal(t, 1, transport.GetTotalCallCount())
}

func TestOpenAIClient_ServerErrorMapsToUnavailable(t *testing.T) {
	client, transport := newMockedOpenAI(t)
	transport.RegisterResponder("POST", testBaseURL+"images/generations",
		jsonResponder(http.StatusInternalServerError, `{"error": {"message": "boom"}}`))

	provider := NewProvider(client, client, time.Second, nil)
	_, err := provider.Image(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrUnavailable)
}
