package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/mikey/contact-email-guesser/internal/core"
	"github.com/mikey/contact-email-guesser/internal/utils"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// SourceGemini identifies domains resolved by Google Gemini
const SourceGemini = "gemini"

// ContentGenerator is the part of a Gemini model the resolver uses
type ContentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiResolver asks a Gemini model for a company's email domain
type GeminiResolver struct {
	client        *genai.Client
	model         ContentGenerator
	modelName     string
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewGeminiResolver creates a Gemini client and model for domain resolution
func NewGeminiResolver(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) (*GeminiResolver, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetTopP(topP)
	model.SetMaxOutputTokens(int32(maxTokens))
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = genai.NewUserContent(genai.Text(systemPrompt))

	r := NewGeminiResolverWithModel(model, modelName, logger, textProcessor)
	r.client = client
	return r, nil
}

// NewGeminiResolverWithModel creates a resolver around an existing model
func NewGeminiResolverWithModel(model ContentGenerator, modelName string, logger *zap.Logger, textProcessor *utils.TextProcessor) *GeminiResolver {
	return &GeminiResolver{
		model:         model,
		modelName:     modelName,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// Close closes the Gemini client
func (r *GeminiResolver) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// ResolveDomain asks the model for the company's email domain
func (r *GeminiResolver) ResolveDomain(ctx context.Context, companyName string) (*core.DomainResolution, error) {
	prompt := buildPrompt(r.textProcessor, companyName)

	resp, err := r.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with Gemini: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	res, err := parseResponse(r.textProcessor, sb.String(), SourceGemini)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Gemini resolved domain",
		zap.String("company", companyName),
		zap.String("domain", res.Domain),
		zap.String("model", r.modelName))
	return res, nil
}
