package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/mikey/contact-email-guesser/internal/core"
	"github.com/mikey/contact-email-guesser/internal/utils"
	"go.uber.org/zap"
)

// SourceBedrock identifies domains resolved by Amazon Bedrock
const SourceBedrock = "bedrock"

// BedrockInvoker is the part of the Bedrock runtime client the resolver uses
type BedrockInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// BedrockResolver asks a Bedrock model for a company's email domain
type BedrockResolver struct {
	client        BedrockInvoker
	modelID       string
	maxTokens     int
	temperature   float32
	topP          float32
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewBedrockResolver creates a new Bedrock resolver
func NewBedrockResolver(
	client BedrockInvoker,
	modelID string,
	maxTokens int,
	temperature float32,
	topP float32,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *BedrockResolver {
	return &BedrockResolver{
		client:        client,
		modelID:       modelID,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// ResolveDomain asks the model for the company's email domain
func (r *BedrockResolver) ResolveDomain(ctx context.Context, companyName string) (*core.DomainResolution, error) {
	prompt := buildPrompt(r.textProcessor, companyName)

	payload, err := r.requestBody(prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	resp, err := r.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(r.modelID),
		Body:        payload,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to invoke Bedrock model: %w", err)
	}

	responseText, err := r.responseText(resp.Body)
	if err != nil {
		return nil, err
	}

	res, err := parseResponse(r.textProcessor, responseText, SourceBedrock)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Bedrock resolved domain",
		zap.String("company", companyName),
		zap.String("domain", res.Domain),
		zap.String("model", r.modelID))
	return res, nil
}

func (r *BedrockResolver) requestBody(prompt string) ([]byte, error) {
	switch {
	case r.isAnthropicModel():
		return json.Marshal(map[string]interface{}{
			"anthropic_version": "bedrock-2023-05-31",
			"system":            systemPrompt,
			"max_tokens":        r.maxTokens,
			"temperature":       r.temperature,
			"top_p":             r.topP,
			"messages": []map[string]interface{}{
				{"role": "user", "content": prompt},
			},
		})
	case r.isAmazonTitanModel():
		return json.Marshal(map[string]interface{}{
			"inputText": prompt,
			"textGenerationConfig": map[string]interface{}{
				"maxTokenCount": r.maxTokens,
				"temperature":   r.temperature,
				"topP":          r.topP,
			},
		})
	default:
		return json.Marshal(map[string]interface{}{
			"prompt":      prompt,
			"max_tokens":  r.maxTokens,
			"temperature": r.temperature,
			"top_p":       r.topP,
		})
	}
}

func (r *BedrockResolver) responseText(body []byte) (string, error) {
	switch {
	case r.isAnthropicModel():
		var claudeResp struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		}
		if err := json.Unmarshal(body, &claudeResp); err != nil {
			return "", fmt.Errorf("failed to unmarshal Claude response: %w", err)
		}
		var sb strings.Builder
		for _, c := range claudeResp.Content {
			if c.Type == "text" {
				sb.WriteString(c.Text)
			}
		}
		if sb.Len() == 0 {
			return "", fmt.Errorf("empty response from Claude model")
		}
		return sb.String(), nil
	case r.isAmazonTitanModel():
		var titanResp struct {
			Results []struct {
				OutputText string `json:"outputText"`
			} `json:"results"`
		}
		if err := json.Unmarshal(body, &titanResp); err != nil {
			return "", fmt.Errorf("failed to unmarshal Titan response: %w", err)
		}
		if len(titanResp.Results) == 0 {
			return "", fmt.Errorf("empty response from Titan model")
		}
		return titanResp.Results[0].OutputText, nil
	default:
		var genericResp struct {
			Output     string `json:"output"`
			Text       string `json:"text"`
			Response   string `json:"response"`
			Generation string `json:"generation"`
		}
		if err := json.Unmarshal(body, &genericResp); err != nil {
			return "", fmt.Errorf("failed to unmarshal generic response: %w", err)
		}
		for _, s := range []string{genericResp.Output, genericResp.Text, genericResp.Response, genericResp.Generation} {
			if s != "" {
				return s, nil
			}
		}
		// Just use the raw response as a string
		return string(body), nil
	}
}

// isAnthropicModel checks if the model is an Anthropic Claude model
func (r *BedrockResolver) isAnthropicModel() bool {
	return strings.HasPrefix(r.modelID, "anthropic.claude") || strings.Contains(r.modelID, ".anthropic.claude")
}

// isAmazonTitanModel checks if the model is an Amazon Titan model
func (r *BedrockResolver) isAmazonTitanModel() bool {
	return strings.HasPrefix(r.modelID, "amazon.titan")
}
