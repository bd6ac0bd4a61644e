package dto

import (
	"polydoc-api/internal/application/translation"
)

// TranslateRequest carries one translation call.
type TranslateRequest struct {
	Text           string `json:"text" binding:"required"`
	SourceLanguage string `json:"sourceLanguage" binding:"required"`
	TargetLanguage string `json:"targetLanguage" binding:"required"`
	Model          string `json:"model"`
	TextType       string `json:"textType"`
}

// ToRequest converts the request into the service request. The model field
// selects the provider; an empty value means the configured default.
func (r *TranslateRequest) ToRequest() translation.Request {
	return translation.Request{
		Text:           r.Text,
		SourceLanguage: r.SourceLanguage,
		TargetLanguage: r.TargetLanguage,
		Provider:       r.Model,
		TextType:       translation.TextType(r.TextType),
	}
}
