package dto

import (
	"polydoc-api/internal/application/catalog"
	"polydoc-api/internal/domain/entity"
)

// UpdatePageGroupRequest carries a partial page group update. A non-null
// translations object replaces the stored one wholesale.
type UpdatePageGroupRequest struct {
	Title        *string           `json:"title"`
	RootText     *string           `json:"rootText"`
	Translations map[string]string `json:"translations"`
	Status       *string           `json:"status"`
}

// ToInput converts the request into the service input.
func (r *UpdatePageGroupRequest) ToInput() catalog.UpdatePageGroupInput {
	in := catalog.UpdatePageGroupInput{
		Title:        r.Title,
		RootText:     r.RootText,
		Translations: r.Translations,
	}
	if r.Status != nil {
		status := entity.PageGroupStatus(*r.Status)
		in.Status = &status
	}
	return in
}

// AddTranslationRequest inserts or overwrites one translation.
type AddTranslationRequest struct {
	Language string `json:"language" binding:"required"`
	Text     string `json:"text" binding:"required"`
}

// PageGroupResponse acknowledges a translation write with the fresh entity.
type PageGroupResponse struct {
	Success   bool              `json:"success"`
	PageGroup *entity.PageGroup `json:"pageGroup"`
}
