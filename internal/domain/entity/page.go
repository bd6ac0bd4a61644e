package entity

import (
	"regexp"
	"strings"
	"time"
)

// languageCodeRe matches two- or three-letter lowercase language codes.
var languageCodeRe = regexp.MustCompile(`^[a-z]{2,3}$`)

// IsLanguageCode reports whether s looks like an ISO 639 language code.
func IsLanguageCode(s string) bool {
	return languageCodeRe.MatchString(s)
}

// PageRef is a discriminated reference into a page group: either the root
// text or one of its translations. The legacy wire form overloads a single
// id space with "{groupID}_{lang}"; PageRef keeps the two cases apart in
// memory and only deals with the underscore encoding at parse/format time.
type PageRef struct {
	GroupID  string
	Language string // empty for the root page
}

// RootPageRef refers to a page group's root text.
func RootPageRef(groupID string) PageRef {
	return PageRef{GroupID: groupID}
}

// TranslationPageRef refers to one translation of a page group.
func TranslationPageRef(groupID, language string) PageRef {
	return PageRef{GroupID: groupID, Language: language}
}

// IsRoot reports whether the reference addresses the root text.
func (r PageRef) IsRoot() bool {
	return r.Language == ""
}

// String encodes the reference in the legacy wire form.
func (r PageRef) String() string {
	if r.IsRoot() {
		return r.GroupID
	}
	return r.GroupID + "_" + r.Language
}

// ParsePageRef decodes the legacy wire form. The suffix after the last
// underscore is treated as a language only when it validates as a language
// code; anything else is taken as a plain group id. Group ids produced by
// NewID never contain underscores, so the split is unambiguous for ids this
// system creates.
func ParsePageRef(s string) PageRef {
	idx := strings.LastIndex(s, "_")
	if idx <= 0 || idx == len(s)-1 {
		return RootPageRef(s)
	}
	suffix := s[idx+1:]
	if !IsLanguageCode(suffix) {
		return RootPageRef(s)
	}
	return TranslationPageRef(s[:idx], suffix)
}

// Page is the legacy per-language projection of a page group. It is a
// read-time view, never stored.
type Page struct {
	ID           string    `json:"id"`
	FileName     string    `json:"fileName"`
	Title        string    `json:"title"`
	OriginalText string    `json:"originalText"`
	EditedText   string    `json:"editedText"`
	Language     string    `json:"language"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RootPage projects the group's root text into the legacy page shape.
func (g *PageGroup) RootPage() *Page {
	return &Page{
		ID:           RootPageRef(g.ID).String(),
		FileName:     g.FileName,
		Title:        g.Title,
		OriginalText: g.RootText,
		EditedText:   g.RootText,
		Language:     g.RootLanguage,
		ImageURL:     g.ImageURL,
		Status:       string(g.Status),
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

// TranslationPage projects one translation into the legacy page shape, or
// nil when the group has no translation for the language.
func (g *PageGroup) TranslationPage(language string) *Page {
	text, ok := g.Translations[language]
	if !ok {
		return nil
	}
	return &Page{
		ID:           TranslationPageRef(g.ID, language).String(),
		FileName:     g.FileName,
		Title:        g.Title,
		OriginalText: text,
		EditedText:   text,
		Language:     language,
		ImageURL:     g.ImageURL,
		Status:       string(g.Status),
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}
