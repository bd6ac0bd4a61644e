// Package translation builds translation prompts and forwards them to the
// configured chat model providers.
package translation

import (
	"context"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	apperrors "polydoc-api/pkg/errors"
	"polydoc-api/pkg/logger"
	"polydoc-api/pkg/metrics"
)

var tracer = otel.Tracer("application.translation")

// Defaults applied when the provider config leaves sampling unset.
// Translation wants faithful output, so the temperature stays low; page
// texts can be long, so the output cap is generous.
const (
	defaultTemperature float32 = 0.3
	defaultMaxTokens           = 8192
)

// ModelFactory resolves chat models by provider name.
type ModelFactory interface {
	Get(ctx context.Context, name string) (model.BaseChatModel, error)
	ModelName(name string) string
	// Sampling reports the provider's configured temperature and max
	// tokens; zero values mean unset.
	Sampling(name string) (float32, int)
}

// Request carries one translation call.
type Request struct {
	Text           string
	SourceLanguage string
	TargetLanguage string
	// Provider selects the LLM provider; empty means the default.
	Provider string
	// TextType optionally declares the register of the source text. When
	// empty and the source is Arabic, the lexical classifier decides.
	TextType TextType
}

// Result is the translation outcome.
type Result struct {
	TranslatedText      string   `json:"translatedText"`
	UsedClassicalPrompt bool     `json:"usedClassicalPrompt"`
	TextType            TextType `json:"textType"`
	Model               string   `json:"model"`
}

// Service translates page text through the configured providers.
type Service struct {
	factory ModelFactory
}

func NewService(factory ModelFactory) *Service {
	return &Service{factory: factory}
}

// Translate builds the prompt for the request and returns the provider's
// output verbatim.
func (s *Service) Translate(ctx context.Context, req Request) (*Result, error) {
	ctx, span := tracer.Start(ctx, "translation.Translate")
	defer span.End()

	if strings.TrimSpace(req.Text) == "" || req.SourceLanguage == "" || req.TargetLanguage == "" {
		return nil, apperrors.ErrInvalidParam.WithDetail("text, sourceLanguage and targetLanguage are required")
	}

	textType := req.TextType
	if textType == "" && IsArabic(req.SourceLanguage) {
		textType = ClassifyArabicText(req.Text).TextType
	}
	if textType == "" {
		textType = TextTypeModern
	}

	useClassical := IsArabic(req.SourceLanguage) &&
		(IsClassicalRegister(textType) || modelHintsClassical(req.Provider))

	var prompt string
	if useClassical {
		prompt = BuildClassicalArabicPrompt(req.Text, req.TargetLanguage)
	} else {
		prompt = BuildModernPrompt(req.Text, req.SourceLanguage, req.TargetLanguage)
	}

	chatModel, err := s.factory.Get(ctx, req.Provider)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeLLMProviderError, "resolve chat model")
	}
	modelName := s.factory.ModelName(req.Provider)

	temperature, maxTokens := s.factory.Sampling(req.Provider)
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	span.SetAttributes(
		attribute.String("translation.source", req.SourceLanguage),
		attribute.String("translation.target", req.TargetLanguage),
		attribute.String("translation.text_type", string(textType)),
		attribute.Bool("translation.classical_prompt", useClassical),
		attribute.String("llm.model", modelName),
	)

	start := time.Now()
	outMsg, err := chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)},
		model.WithTemperature(temperature),
		model.WithMaxTokens(maxTokens),
	)
	if err != nil {
		span.RecordError(err)
		metrics.LLMCallTotal.WithLabelValues(req.Provider, modelName, "error").Inc()
		logger.Error(ctx, "translation LLM call failed", err,
			"source", req.SourceLanguage, "target", req.TargetLanguage, "model", modelName)
		return nil, apperrors.Wrap(err, apperrors.CodeTranslationFailed, "LLM translation call failed")
	}

	metrics.LLMCallTotal.WithLabelValues(req.Provider, modelName, "success").Inc()
	metrics.LLMCallDuration.WithLabelValues(req.Provider, modelName).Observe(time.Since(start).Seconds())
	if outMsg.ResponseMeta != nil && outMsg.ResponseMeta.Usage != nil {
		usage := outMsg.ResponseMeta.Usage
		metrics.LLMTokensUsed.WithLabelValues(req.Provider, modelName, "prompt").Add(float64(usage.PromptTokens))
		metrics.LLMTokensUsed.WithLabelValues(req.Provider, modelName, "completion").Add(float64(usage.CompletionTokens))
	}

	return &Result{
		TranslatedText:      outMsg.Content,
		UsedClassicalPrompt: useClassical,
		TextType:            textType,
		Model:               modelName,
	}, nil
}
