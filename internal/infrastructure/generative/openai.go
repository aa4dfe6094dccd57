package generative

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIClient implements Chatter and Imager on the OpenAI API.
type OpenAIClient struct {
	client     openai.Client
	chatModel  string
	imageModel string
	imageSize  string
}

// NewOpenAIClient uses httpClient when non-nil (tests inject an httpmock'd client).
func NewOpenAIClient(cfg Config, httpClient *http.Client) *OpenAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.OpenAIAPIKey),
		option.WithMaxRetries(0),
	}
	if cfg.OpenAIBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.OpenAIBaseURL))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}

	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = "gpt-3.5-turbo"
	}
	imageModel := cfg.ImageModel
	if imageModel == "" {
		imageModel = "dall-e-2"
	}
	imageSize := cfg.ImageSize
	if imageSize == "" {
		imageSize = "256x256"
	}

	return &OpenAIClient{
		client:     openai.NewClient(opts...),
		chatModel:  chatModel,
		imageModel: imageModel,
		imageSize:  imageSize,
	}
}

// Chat sends prompt as a single user message and returns the first choice.
func (c *OpenAIClient) Chat(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.chatModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", describe(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in completion")
	}
	return resp.Choices[0].Message.Content, nil
}

// Image returns the first generated image as base64.
func (c *OpenAIClient) Image(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         prompt,
		Model:          openai.ImageModel(c.imageModel),
		N:              openai.Int(1),
		Size:           openai.ImageGenerateParamsSize(c.imageSize),
		ResponseFormat: openai.ImageGenerateParamsResponseFormatB64JSON,
	})
	if err != nil {
		return "", describe(err)
	}
	if len(resp.Data) == 0 {
		return "", errors.New("no image data")
	}
	return resp.Data[0].B64JSON, nil
}

func describe(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("openai status %d", apiErr.StatusCode)
	}
	return err
}
