package entity

import (
	"fmt"
	"time"

	"github.com/gosimple/slug"
)

// PageGroupStatus is the review state of a page group.
type PageGroupStatus string

const (
	PageGroupStatusDraft       PageGroupStatus = "draft"
	PageGroupStatusApproved    PageGroupStatus = "approved"
	PageGroupStatusNeedsReview PageGroupStatus = "needs_review"
)

// PageGroup is the unit of translation: one root text plus zero or more
// per-language translations, optionally backed by a scanned source image.
type PageGroup struct {
	ID           string            `json:"id" gorm:"type:varchar(64);primaryKey"`
	Title        string            `json:"title" gorm:"type:varchar(255)"`
	FileName     string            `json:"fileName" gorm:"type:varchar(255);column:file_name"`
	RootLanguage string            `json:"rootLanguage" gorm:"type:varchar(8);column:root_language;not null"`
	RootText     string            `json:"rootText" gorm:"type:text;column:root_text"`
	Translations map[string]string `json:"translations" gorm:"type:jsonb;serializer:json"`
	ImageURL     string            `json:"imageUrl,omitempty" gorm:"type:text;column:image_url"`
	ImageBlobID  string            `json:"imageBlobId,omitempty" gorm:"type:varchar(255);column:image_blob_id"`
	Status       PageGroupStatus   `json:"status" gorm:"type:varchar(16);default:'draft'"`
	CreatedAt    time.Time         `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time         `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName names the backing table.
func (PageGroup) TableName() string {
	return "page_groups"
}

// NewPageGroup builds a page group with a fresh id and timestamps.
func NewPageGroup(title, fileName, rootLanguage, rootText string) *PageGroup {
	now := time.Now()
	if fileName == "" {
		fileName = fmt.Sprintf("%s-%d", slug.Make(title), now.UnixMilli())
	}
	return &PageGroup{
		ID:           NewID(),
		Title:        title,
		FileName:     fileName,
		RootLanguage: rootLanguage,
		RootText:     rootText,
		Translations: map[string]string{},
		Status:       PageGroupStatusDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate checks the required fields.
func (g *PageGroup) Validate() error {
	if !IsLanguageCode(g.RootLanguage) {
		return fmt.Errorf("invalid root language %q", g.RootLanguage)
	}
	return nil
}

// SetTranslation inserts or overwrites the translation for a language.
func (g *PageGroup) SetTranslation(language, text string) {
	if g.Translations == nil {
		g.Translations = map[string]string{}
	}
	g.Translations[language] = text
	g.UpdatedAt = time.Now()
}

// Translation returns the stored translation for a language, if any.
func (g *PageGroup) Translation(language string) (string, bool) {
	text, ok := g.Translations[language]
	return text, ok
}

// HasImage reports whether the group points at a stored source image.
func (g *PageGroup) HasImage() bool {
	return g.ImageBlobID != ""
}
