package dto

import (
	"time"

	"polydoc-api/internal/infrastructure/ocr"
)

// OCRWord is one recognized word with its confidence.
type OCRWord struct {
	Text       string  `json:"text"`
	Confidence float32 `json:"confidence"`
}

// OCRResponse is the recognition result body.
type OCRResponse struct {
	Text          string    `json:"text"`
	Confidence    float32   `json:"confidence"`
	Words         []OCRWord `json:"words"`
	LanguageCodes []string  `json:"languageCodes,omitempty"`
	ProcessedAt   time.Time `json:"processedAt"`
}

// ToOCRResponse converts a recognition result into the wire shape.
func ToOCRResponse(result *ocr.Result) *OCRResponse {
	words := make([]OCRWord, 0, len(result.Words))
	for _, w := range result.Words {
		words = append(words, OCRWord{Text: w.Text, Confidence: w.Confidence})
	}
	return &OCRResponse{
		Text:          result.Text,
		Confidence:    result.Confidence,
		Words:         words,
		LanguageCodes: result.LanguageCodes,
		ProcessedAt:   result.ProcessedAt,
	}
}
