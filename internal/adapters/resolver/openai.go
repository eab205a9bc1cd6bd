package resolver

import (
	"context"
	"fmt"

	"github.com/mikey/contact-email-guesser/internal/core"
	"github.com/mikey/contact-email-guesser/internal/utils"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// SourceOpenAI identifies domains resolved by OpenAI
const SourceOpenAI = "openai"

// ChatCompleter is the part of the OpenAI client the resolver uses
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIResolver asks an OpenAI chat model for a company's email domain
type OpenAIResolver struct {
	client        ChatCompleter
	modelName     string
	maxTokens     int
	temperature   float32
	topP          float32
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewOpenAIResolver creates a new OpenAI resolver
func NewOpenAIResolver(
	client ChatCompleter,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *OpenAIResolver {
	return &OpenAIResolver{
		client:        client,
		modelName:     modelName,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// ResolveDomain asks the model for the company's email domain
func (r *OpenAIResolver) ResolveDomain(ctx context.Context, companyName string) (*core.DomainResolution, error) {
	req := openai.ChatCompletionRequest{
		Model: r.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(r.textProcessor, companyName),
			},
		},
		MaxTokens:   r.maxTokens,
		Temperature: r.temperature,
		TopP:        r.topP,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := r.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion with OpenAI: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from OpenAI")
	}

	res, err := parseResponse(r.textProcessor, resp.Choices[0].Message.Content, SourceOpenAI)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("OpenAI resolved domain",
		zap.String("company", companyName),
		zap.String("domain", res.Domain),
		zap.String("model", r.modelName),
		zap.String("response_id", resp.ID))
	return res, nil
}
