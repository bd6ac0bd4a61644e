package translation

import (
	"fmt"
	"strings"
)

// languageNames maps ISO 639 codes to English display names used inside
// prompts. Both two- and three-letter forms appear in stored data.
var languageNames = map[string]string{
	"ar": "Arabic", "ara": "Arabic",
	"en": "English", "eng": "English",
	"fr": "French", "fra": "French",
	"es": "Spanish", "spa": "Spanish",
	"de": "German", "deu": "German",
	"it": "Italian", "ita": "Italian",
	"pt": "Portuguese", "por": "Portuguese",
	"ru": "Russian", "rus": "Russian",
	"tr": "Turkish", "tur": "Turkish",
	"fa": "Persian", "fas": "Persian",
	"ur": "Urdu", "urd": "Urdu",
	"zh": "Chinese", "zho": "Chinese",
	"ja": "Japanese", "jpn": "Japanese",
	"nl": "Dutch", "nld": "Dutch",
}

// LanguageName resolves a language code to its display name, falling back to
// the raw code.
func LanguageName(code string) string {
	if name, ok := languageNames[strings.ToLower(code)]; ok {
		return name
	}
	return code
}

// IsArabic reports whether the language code denotes Arabic.
func IsArabic(code string) bool {
	c := strings.ToLower(code)
	return c == "ar" || c == "ara"
}

// BuildClassicalArabicPrompt renders the prompt for classical, religious or
// literary Arabic source text.
func BuildClassicalArabicPrompt(text, targetLanguage string) string {
	target := LanguageName(targetLanguage)
	return fmt.Sprintf(`You are an expert translator of classical Arabic texts, including religious, literary and scholarly works.

Translate the following classical Arabic text into %s. Preserve the register and rhetorical style of the original. Render religious formulae and honorifics with their established %s equivalents. Keep proper names transliterated consistently. Do not add commentary, notes or explanations; return only the translation.

Text:
%s`, target, target, text)
}

// BuildModernPrompt renders the generic prompt for all other source text.
func BuildModernPrompt(text, sourceLanguage, targetLanguage string) string {
	source := LanguageName(sourceLanguage)
	target := LanguageName(targetLanguage)
	return fmt.Sprintf(`You are a professional translator.

Translate the following %s text into %s. Produce natural, fluent %s that preserves the meaning and tone of the original. Do not add commentary or explanations; return only the translation.

Text:
%s`, source, target, target, text)
}

// modelHintsClassical reports whether the model identifier itself asks for
// the classical prompt path.
func modelHintsClassical(model string) bool {
	m := strings.ToLower(model)
	return strings.Contains(m, "classical") ||
		strings.Contains(m, "religious") ||
		strings.Contains(m, "literary")
}
