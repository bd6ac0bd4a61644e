// Package entity defines the domain entities.
package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectStatusActive   ProjectStatus = "active"
	ProjectStatusArchived ProjectStatus = "archived"
)

// Project is a long-lived container of page groups sharing a root language
// and a set of translation languages.
type Project struct {
	ID                   string        `json:"id" gorm:"type:varchar(64);primaryKey"`
	Title                string        `json:"title" gorm:"type:varchar(255);not null"`
	Description          string        `json:"description,omitempty" gorm:"type:text"`
	FileName             string        `json:"fileName" gorm:"type:varchar(255);column:file_name"`
	RootLanguage         string        `json:"rootLanguage" gorm:"type:varchar(8);column:root_language;not null"`
	TranslationLanguages []string      `json:"translationLanguages" gorm:"type:text[];column:translation_languages"`
	Status               ProjectStatus `json:"status" gorm:"type:varchar(16);default:'active'"`
	CreatedAt            time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt            time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`

	// PageGroupIDs is populated from the join table on read; it is not a
	// column of the projects table.
	PageGroupIDs []string `json:"pageGroups" gorm:"-"`
}

// TableName names the backing table.
func (Project) TableName() string {
	return "projects"
}

// NewProject builds a project with a fresh id and timestamps. The file name
// is derived from fileName when non-empty, otherwise slugified from the
// title with a timestamp suffix for uniqueness.
func NewProject(title, description, fileName, rootLanguage string, translationLanguages []string) *Project {
	now := time.Now()
	if fileName == "" {
		fileName = fmt.Sprintf("%s-%d", slug.Make(title), now.UnixMilli())
	}
	return &Project{
		ID:                   NewID(),
		Title:                title,
		Description:          description,
		FileName:             fileName,
		RootLanguage:         rootLanguage,
		TranslationLanguages: translationLanguages,
		Status:               ProjectStatusActive,
		PageGroupIDs:         []string{},
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// Validate checks the required fields and the language invariant: the root
// language must not appear among the translation languages.
func (p *Project) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("project title is required")
	}
	if !IsLanguageCode(p.RootLanguage) {
		return fmt.Errorf("invalid root language %q", p.RootLanguage)
	}
	if len(p.TranslationLanguages) == 0 {
		return fmt.Errorf("at least one translation language is required")
	}
	for _, lang := range p.TranslationLanguages {
		if !IsLanguageCode(lang) {
			return fmt.Errorf("invalid translation language %q", lang)
		}
		if lang == p.RootLanguage {
			return fmt.Errorf("root language %q cannot appear in translation languages", lang)
		}
	}
	return nil
}

// IsArchived reports whether the project is archived.
func (p *Project) IsArchived() bool {
	return p.Status == ProjectStatusArchived
}

// NewID generates a time-prefixed random identifier. The random part is a
// uuid, so ids never contain underscores and stay unambiguous next to the
// legacy translation-page encoding.
func NewID() string {
	return fmt.Sprintf("%x-%s", time.Now().UnixMilli(), uuid.NewString())
}
