package dto

import (
	"polydoc-api/internal/application/catalog"
	"polydoc-api/internal/domain/entity"
)

// CreateProjectRequest creates a project.
type CreateProjectRequest struct {
	Title                string   `json:"title" binding:"required"`
	Description          string   `json:"description"`
	FileName             string   `json:"fileName"`
	RootLanguage         string   `json:"rootLanguage" binding:"required"`
	TranslationLanguages []string `json:"translationLanguages" binding:"required,min=1"`
}

// ToInput converts the request into the service input.
func (r *CreateProjectRequest) ToInput() catalog.CreateProjectInput {
	return catalog.CreateProjectInput{
		Title:                r.Title,
		Description:          r.Description,
		FileName:             r.FileName,
		RootLanguage:         r.RootLanguage,
		TranslationLanguages: r.TranslationLanguages,
	}
}

// UpdateProjectRequest carries a partial project update; absent fields keep
// their stored values.
type UpdateProjectRequest struct {
	Title                *string  `json:"title"`
	Description          *string  `json:"description"`
	RootLanguage         *string  `json:"rootLanguage"`
	TranslationLanguages []string `json:"translationLanguages"`
	Status               *string  `json:"status"`
}

// ToInput converts the request into the service input.
func (r *UpdateProjectRequest) ToInput() catalog.UpdateProjectInput {
	in := catalog.UpdateProjectInput{
		Title:                r.Title,
		Description:          r.Description,
		RootLanguage:         r.RootLanguage,
		TranslationLanguages: r.TranslationLanguages,
	}
	if r.Status != nil {
		status := entity.ProjectStatus(*r.Status)
		in.Status = &status
	}
	return in
}

// ProjectPageRequest links or unlinks a page (group) and a project.
type ProjectPageRequest struct {
	PageID   string `json:"pageId" binding:"required"`
	Language string `json:"language"`
}

// SuccessResponse is the bare acknowledgement body.
type SuccessResponse struct {
	Success bool `json:"success"`
}
