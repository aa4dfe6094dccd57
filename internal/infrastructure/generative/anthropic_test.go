package generative

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnthropicClient_Chat(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder("POST", "https://api.anthropic.com/v1/messages",
		jsonResponder(http.StatusOK, `{
			"id": "msg_01",
			"type": "message",
			"role": "assistant",
			"model": "claude-3-5-sonnet-latest",
			"content": [{"type": "text", "text": "{\"title\": \"The Hobbit\"}"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`))

	client := NewAnthropicClient(Config{AnthropicAPIKey: "test-key"}, &http.Client{Transport: transport})

	text, err := client.Chat(context.Background(), "About the following book The Hobbit")
	require.NoError(t, err)
	assert.Equal(t, `{"title": "The Hobbit"}`, text)
}

func TestAnthropicClient_EmptyContent(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder("POST", "https://api.anthropic.com/v1/messages",
		jsonResponder(http.StatusOK, `{
			"id": "msg_02", "type": "message", "role": "assistant",
			"model": "claude-3-5-sonnet-latest", "content": [],
			"stop_reason": "end_turn", "usage": {"input_tokens": 1, "output_tokens": 0}
		}`))

	client := NewAnthropicClient(Config{AnthropicAPIKey: "test-key"}, &http.Client{Transport: transport})

	_, err := client.Chat(context.Background(), "prompt")
	assert.Error(t, err)
}
