// Package ocr provides text recognition for scanned page images using the
// Google Cloud Vision API.
//
// Credentials come from the environment: GOOGLE_CREDENTIALS holds inline
// service-account JSON, GOOGLE_APPLICATION_CREDENTIALS points at a file;
// application default credentials are the fallback.
package ocr

import (
	"context"
	"errors"
	"io"
	"time"
)

// Service recognizes text in a scanned page image.
type Service interface {
	// RecognizeImage extracts text from a single page image.
	RecognizeImage(ctx context.Context, image io.Reader) (*Result, error)
}

// Result holds the outcome of recognizing one image.
type Result struct {
	// Text is the full recognized text in reading order.
	Text string `json:"text"`

	// Confidence is the mean word confidence, 0.0 to 1.0.
	Confidence float32 `json:"confidence"`

	// Words lists the recognized words with per-word confidence.
	Words []Word `json:"words"`

	// LanguageCodes are the languages detected in the image.
	LanguageCodes []string `json:"language_codes,omitempty"`

	// ProcessedAt is when recognition completed.
	ProcessedAt time.Time `json:"processed_at"`
}

// Word is one recognized word.
type Word struct {
	Text       string  `json:"text"`
	Confidence float32 `json:"confidence"`
}

// Recognition errors.
var (
	// ErrImageTooLarge is returned when the image exceeds the synchronous
	// processing limit.
	ErrImageTooLarge = errors.New("image exceeds the maximum size for recognition")

	// ErrNoText is returned when the image contains no readable text.
	ErrNoText = errors.New("image contains no readable text")

	// ErrRecognitionFailed is returned when the Vision API fails to process
	// the image.
	ErrRecognitionFailed = errors.New("text recognition failed")
)
