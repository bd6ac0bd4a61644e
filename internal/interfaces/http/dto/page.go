package dto

import (
	"polydoc-api/internal/application/catalog"
	"polydoc-api/internal/domain/entity"
)

// CreatePageRequest is the JSON variant of legacy page creation. The
// multipart variant binds the same field names from the form.
type CreatePageRequest struct {
	Title        string `json:"title" form:"title"`
	FileName     string `json:"fileName" form:"fileName"`
	Language     string `json:"language" form:"language" binding:"required"`
	OriginalText string `json:"originalText" form:"originalText"`
	EditedText   string `json:"editedText" form:"editedText"`
	Status       string `json:"status" form:"status"`
	ProjectID    string `json:"projectId" form:"projectId"`
}

// ToInput converts the request into the service input.
func (r *CreatePageRequest) ToInput() catalog.CreatePageInput {
	return catalog.CreatePageInput{
		Title:        r.Title,
		FileName:     r.FileName,
		Language:     r.Language,
		OriginalText: r.OriginalText,
		EditedText:   r.EditedText,
		Status:       entity.PageGroupStatus(r.Status),
		ProjectID:    r.ProjectID,
	}
}

// UpdatePageRequest carries a partial legacy page update.
type UpdatePageRequest struct {
	Title      *string `json:"title"`
	EditedText *string `json:"editedText"`
	Status     *string `json:"status"`
}

// ToInput converts the request into the service input.
func (r *UpdatePageRequest) ToInput() catalog.UpdatePageInput {
	in := catalog.UpdatePageInput{
		Title:      r.Title,
		EditedText: r.EditedText,
	}
	if r.Status != nil {
		status := entity.PageGroupStatus(*r.Status)
		in.Status = &status
	}
	return in
}

// LinkPagesRequest links or unlinks a translation page and a root page.
type LinkPagesRequest struct {
	RootPageID        string `json:"rootPageId" binding:"required"`
	TranslationPageID string `json:"translationPageId" binding:"required"`
}
