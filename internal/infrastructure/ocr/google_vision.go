package ocr

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/option"

	"polydoc-api/internal/config"
	"polydoc-api/pkg/metrics"
)

var tracer = otel.Tracer("infrastructure.ocr")

// DefaultMaxImageSize caps images for synchronous annotation (20MB).
const DefaultMaxImageSize = 20 * 1024 * 1024

// GoogleVisionService implements Service using the Cloud Vision API.
type GoogleVisionService struct {
	client        *vision.ImageAnnotatorClient
	maxImageSize  int64
	languageHints []string
}

// NewGoogleVisionService builds the Vision client with credentials from the
// environment: GOOGLE_CREDENTIALS (inline JSON) takes precedence, then
// GOOGLE_APPLICATION_CREDENTIALS (file path), then application default
// credentials.
func NewGoogleVisionService(ctx context.Context, cfg config.VisionConfig) (*GoogleVisionService, error) {
	var client *vision.ImageAnnotatorClient
	var err error

	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, fmt.Errorf("vision client from GOOGLE_CREDENTIALS: %w", err)
		}
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(credFile))
		if err != nil {
			return nil, fmt.Errorf("vision client from GOOGLE_APPLICATION_CREDENTIALS: %w", err)
		}
	} else {
		client, err = vision.NewImageAnnotatorClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("vision client from default credentials: %w", err)
		}
	}

	maxSize := cfg.MaxImageSize
	if maxSize <= 0 {
		maxSize = DefaultMaxImageSize
	}

	return &GoogleVisionService{
		client:        client,
		maxImageSize:  maxSize,
		languageHints: cfg.LanguageHints,
	}, nil
}

// NewGoogleVisionServiceWithClient wires an explicit client, for tests.
func NewGoogleVisionServiceWithClient(client *vision.ImageAnnotatorClient) *GoogleVisionService {
	return &GoogleVisionService{
		client:       client,
		maxImageSize: DefaultMaxImageSize,
	}
}

// Close releases the underlying Vision client.
func (s *GoogleVisionService) Close() error {
	return s.client.Close()
}

// RecognizeImage runs document text detection on a single page image.
func (s *GoogleVisionService) RecognizeImage(ctx context.Context, image io.Reader) (*Result, error) {
	ctx, span := tracer.Start(ctx, "ocr.RecognizeImage")
	defer span.End()

	start := time.Now()

	data, err := io.ReadAll(image)
	if err != nil {
		metrics.OCRRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("read image: %w", err)
	}
	if int64(len(data)) > s.maxImageSize {
		metrics.OCRRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %d bytes", ErrImageTooLarge, len(data))
	}
	span.SetAttributes(attribute.Int("ocr.image_bytes", len(data)))

	req := &visionpb.AnnotateImageRequest{
		Image: &visionpb.Image{Content: data},
		Features: []*visionpb.Feature{
			{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
		},
	}
	if len(s.languageHints) > 0 {
		req.ImageContext = &visionpb.ImageContext{LanguageHints: s.languageHints}
	}

	resp, err := s.client.BatchAnnotateImages(ctx, &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{req},
	})
	if err != nil {
		span.RecordError(err)
		metrics.OCRRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrRecognitionFailed, err)
	}
	if len(resp.Responses) == 0 {
		metrics.OCRRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: empty response", ErrRecognitionFailed)
	}
	annotated := resp.Responses[0]
	if annotated.Error != nil {
		metrics.OCRRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %s", ErrRecognitionFailed, annotated.Error.Message)
	}

	result, err := buildResult(annotated)
	if err != nil {
		metrics.OCRRequestsTotal.WithLabelValues("no_text").Inc()
		return nil, err
	}

	metrics.OCRRequestsTotal.WithLabelValues("success").Inc()
	metrics.OCRDuration.Observe(time.Since(start).Seconds())
	metrics.OCRConfidence.Observe(float64(result.Confidence))
	span.SetAttributes(
		attribute.Int("ocr.word_count", len(result.Words)),
		attribute.Float64("ocr.confidence", float64(result.Confidence)),
	)

	return result, nil
}

// buildResult flattens a document text annotation into the recognized text,
// word list, mean confidence, and the detected language set.
func buildResult(annotated *visionpb.AnnotateImageResponse) (*Result, error) {
	fullText := annotated.FullTextAnnotation
	if fullText == nil || strings.TrimSpace(fullText.Text) == "" {
		return nil, ErrNoText
	}

	var words []Word
	var confidenceSum float32
	languageSet := make(map[string]bool)

	for _, page := range fullText.Pages {
		for _, block := range page.Blocks {
			for _, paragraph := range block.Paragraphs {
				for _, word := range paragraph.Words {
					var text strings.Builder
					for _, symbol := range word.Symbols {
						text.WriteString(symbol.Text)
						if symbol.Property != nil {
							for _, lang := range symbol.Property.DetectedLanguages {
								if lang.LanguageCode != "" {
									languageSet[lang.LanguageCode] = true
								}
							}
						}
					}
					words = append(words, Word{Text: text.String(), Confidence: word.Confidence})
					confidenceSum += word.Confidence
				}
			}
		}
	}

	var confidence float32
	if len(words) > 0 {
		confidence = confidenceSum / float32(len(words))
	}

	languages := make([]string, 0, len(languageSet))
	for lang := range languageSet {
		languages = append(languages, lang)
	}
	sort.Strings(languages)

	return &Result{
		Text:          fullText.Text,
		Confidence:    confidence,
		Words:         words,
		LanguageCodes: languages,
		ProcessedAt:   time.Now(),
	}, nil
}
