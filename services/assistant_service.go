package services

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"leetStats/utils"
)

const (
	codePromptPrefix = "Only provide the direct and complete code solution for the following question, " +
		"with no explanations, citations, or comments. " +
		"Use neat formatting and Python unless another language is specified.\n\nQuestion: "
	textPromptPrefix = "Answer the following question in plain text with clear explanation. " +
		"Do not include references or citations.\n\nQuestion: "
)

var codeKeywords = []string{
	"code", "implement", "function", "algorithm", "how to", "write",
	"in python", "java", "c++", "javascript",
}

// TextGenerator produces a markdown reply for a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator is a TextGenerator backed by the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiGenerator(ctx context.Context, apiKey, modelName string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiGenerator{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

func (g *GeminiGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
		break
	}

	if b.Len() == 0 {
		return "", errors.New("model returned no text")
	}
	return b.String(), nil
}

func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

// AssistantService forwards free-text questions to a language model and
// renders the reply as HTML.
type AssistantService struct {
	generator TextGenerator
	logger    zerolog.Logger
}

// NewAssistantService accepts a nil generator; Ask then reports ErrAssistantDisabled.
func NewAssistantService(generator TextGenerator, logger zerolog.Logger) *AssistantService {
	return &AssistantService{
		generator: generator,
		logger:    logger.With().Str("component", "assistant").Logger(),
	}
}

// IsCodeQuestion reports whether the question asks for code rather than prose.
func IsCodeQuestion(question string) bool {
	q := strings.ToLower(question)
	for _, kw := range codeKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

func (s *AssistantService) Ask(ctx context.Context, question string) (template.HTML, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}
	if s.generator == nil {
		return "", ErrAssistantDisabled
	}

	kind := "text"
	prompt := textPromptPrefix + question
	if IsCodeQuestion(question) {
		kind = "code"
		prompt = codePromptPrefix + question
	}

	reply, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		assistantRequests.WithLabelValues(kind, "error").Inc()
		s.logger.Error().Err(err).Str("kind", kind).Msg("model request failed")
		return "", err
	}

	html, err := utils.RenderMarkdown(reply, kind == "code")
	if err != nil {
		assistantRequests.WithLabelValues(kind, "error").Inc()
		return "", err
	}

	assistantRequests.WithLabelValues(kind, "ok").Inc()
	return html, nil
}
