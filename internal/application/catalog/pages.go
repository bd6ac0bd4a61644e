package catalog

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"polydoc-api/internal/domain/entity"
	apperrors "polydoc-api/pkg/errors"
)

// CreatePageInput carries the legacy page creation fields. A page is created
// as a page group holding only root text.
type CreatePageInput struct {
	Title        string
	FileName     string
	Language     string
	OriginalText string
	EditedText   string
	Status       entity.PageGroupStatus
	ProjectID    string
	Image        *ImageUpload
}

// CreatePage is the legacy compatibility shim: it creates a page group with
// empty translations and projects it back into the page shape. A non-empty
// ProjectID also links the new group to that project.
func (s *Service) CreatePage(ctx context.Context, in CreatePageInput) (*entity.Page, error) {
	ctx, span := tracer.Start(ctx, "catalog.CreatePage")
	defer span.End()

	rootText := in.EditedText
	if rootText == "" {
		rootText = in.OriginalText
	}

	group, err := s.CreatePageGroup(ctx, CreatePageGroupInput{
		Title:        in.Title,
		FileName:     in.FileName,
		RootLanguage: in.Language,
		RootText:     rootText,
		Status:       in.Status,
		Image:        in.Image,
	})
	if err != nil {
		return nil, err
	}

	if in.ProjectID != "" {
		if err := s.AddPageGroupToProject(ctx, in.ProjectID, group.ID); err != nil {
			return nil, err
		}
	}

	return group.RootPage(), nil
}

// LoadPage resolves a legacy page id to its root-text or translation view.
// Returns (nil, nil) when the page group or the addressed translation does
// not exist.
func (s *Service) LoadPage(ctx context.Context, id string) (*entity.Page, error) {
	ctx, span := tracer.Start(ctx, "catalog.LoadPage")
	defer span.End()

	ref := entity.ParsePageRef(id)
	span.SetAttributes(
		attribute.String("page.group_id", ref.GroupID),
		attribute.Bool("page.is_root", ref.IsRoot()),
	)

	group, err := s.LoadPageGroup(ctx, ref.GroupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, nil
	}

	if ref.IsRoot() {
		return group.RootPage(), nil
	}
	return group.TranslationPage(ref.Language), nil
}

// UpdatePageInput carries a partial legacy page update.
type UpdatePageInput struct {
	Title      *string
	EditedText *string
	Status     *entity.PageGroupStatus
}

// UpdatePage dispatches a legacy page update to the page group's root fields
// or to one translation entry. Returns (nil, nil) when the target does not
// exist.
func (s *Service) UpdatePage(ctx context.Context, id string, in UpdatePageInput) (*entity.Page, error) {
	ctx, span := tracer.Start(ctx, "catalog.UpdatePage")
	defer span.End()

	ref := entity.ParsePageRef(id)

	group, err := s.groups.GetByID(ctx, ref.GroupID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "load page group for page update")
	}
	if group == nil {
		return nil, nil
	}

	if ref.IsRoot() {
		if in.Title != nil {
			group.Title = *in.Title
		}
		if in.EditedText != nil {
			group.RootText = *in.EditedText
		}
		if in.Status != nil {
			group.Status = *in.Status
		}
	} else {
		if _, ok := group.Translation(ref.Language); !ok {
			return nil, nil
		}
		if in.EditedText != nil {
			group.SetTranslation(ref.Language, *in.EditedText)
		}
		if in.Status != nil {
			group.Status = *in.Status
		}
	}

	if err := s.groups.Update(ctx, group); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "save page update")
	}
	s.invalidatePageGroup(ctx, group.ID)

	if ref.IsRoot() {
		return group.RootPage(), nil
	}
	return group.TranslationPage(ref.Language), nil
}

// DeletePage removes a legacy page: the whole group for a root reference,
// or a single translation entry otherwise. Returns false when the target
// did not exist.
func (s *Service) DeletePage(ctx context.Context, id string) (bool, error) {
	ctx, span := tracer.Start(ctx, "catalog.DeletePage")
	defer span.End()

	ref := entity.ParsePageRef(id)

	if ref.IsRoot() {
		return s.DeletePageGroup(ctx, ref.GroupID)
	}

	group, err := s.groups.GetByID(ctx, ref.GroupID)
	if err != nil {
		return false, apperrors.Wrap(err, apperrors.CodeDatabaseError, "load page group for page delete")
	}
	if group == nil {
		return false, nil
	}
	if _, ok := group.Translation(ref.Language); !ok {
		return false, nil
	}

	delete(group.Translations, ref.Language)
	if err := s.groups.Update(ctx, group); err != nil {
		return false, apperrors.Wrap(err, apperrors.CodeDatabaseError, "remove translation")
	}
	s.invalidatePageGroup(ctx, group.ID)
	return true, nil
}

// ListPages returns the legacy page views. With a language, it returns root
// pages in that language plus translation pages for it; without one, the
// root page of every group.
func (s *Service) ListPages(ctx context.Context, language string) ([]*entity.Page, error) {
	ctx, span := tracer.Start(ctx, "catalog.ListPages")
	defer span.End()

	groups, err := s.groups.ListByLanguage(ctx, "")
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "list page groups")
	}

	pages := make([]*entity.Page, 0, len(groups))
	for _, group := range groups {
		switch {
		case language == "" || group.RootLanguage == language:
			pages = append(pages, group.RootPage())
		default:
			if page := group.TranslationPage(language); page != nil {
				pages = append(pages, page)
			}
		}
	}
	return pages, nil
}

// ProjectWithPages groups a project's pages into flat per-language buckets.
type ProjectWithPages struct {
	Project         *entity.Project           `json:"project"`
	PagesByLanguage map[string][]*entity.Page `json:"pagesByLanguage"`
}

// GetProjectWithPages emits, for every linked page group, one root page and
// one page per translation, bucketed by language code. Returns (nil, nil)
// when the project does not exist.
func (s *Service) GetProjectWithPages(ctx context.Context, projectID string) (*ProjectWithPages, error) {
	ctx, span := tracer.Start(ctx, "catalog.GetProjectWithPages")
	defer span.End()

	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}

	groups, err := s.groups.ListByProject(ctx, projectID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "list project page groups")
	}

	byLanguage := make(map[string][]*entity.Page)
	for _, group := range groups {
		byLanguage[group.RootLanguage] = append(byLanguage[group.RootLanguage], group.RootPage())
		for lang := range group.Translations {
			if page := group.TranslationPage(lang); page != nil {
				byLanguage[lang] = append(byLanguage[lang], page)
			}
		}
	}

	return &ProjectWithPages{Project: project, PagesByLanguage: byLanguage}, nil
}

// LinkedPageSet pairs one root page with its translations by language.
type LinkedPageSet struct {
	RootPage     *entity.Page            `json:"rootPage"`
	Translations map[string]*entity.Page `json:"translations"`
}

// ProjectWithLinkedPages groups a project's pages by page group instead of
// by flat language buckets.
type ProjectWithLinkedPages struct {
	Project     *entity.Project  `json:"project"`
	LinkedPages []*LinkedPageSet `json:"linkedPages"`
}

// GetProjectWithLinkedPages returns the alternate aggregate: one entry per
// linked page group, each holding the root page and its translations.
// Returns (nil, nil) when the project does not exist.
func (s *Service) GetProjectWithLinkedPages(ctx context.Context, projectID string) (*ProjectWithLinkedPages, error) {
	ctx, span := tracer.Start(ctx, "catalog.GetProjectWithLinkedPages")
	defer span.End()

	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}

	groups, err := s.groups.ListByProject(ctx, projectID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "list project page groups")
	}

	linked := make([]*LinkedPageSet, 0, len(groups))
	for _, group := range groups {
		set := &LinkedPageSet{
			RootPage:     group.RootPage(),
			Translations: make(map[string]*entity.Page, len(group.Translations)),
		}
		for lang := range group.Translations {
			if page := group.TranslationPage(lang); page != nil {
				set.Translations[lang] = page
			}
		}
		linked = append(linked, set)
	}

	return &ProjectWithLinkedPages{Project: project, LinkedPages: linked}, nil
}

// AddPageToProject is the legacy alias for linking: the page id is taken as
// a page group id. The legacy language parameter is accepted and ignored.
func (s *Service) AddPageToProject(ctx context.Context, projectID, pageID, _ string) error {
	ref := entity.ParsePageRef(pageID)
	return s.AddPageGroupToProject(ctx, projectID, ref.GroupID)
}

// RemovePageFromProject is the legacy alias for unlinking.
func (s *Service) RemovePageFromProject(ctx context.Context, projectID, pageID string) error {
	ref := entity.ParsePageRef(pageID)
	return s.RemovePageGroupFromProject(ctx, projectID, ref.GroupID)
}

// LinkPages attaches a translation page to a root page. When the two refs
// address the same page group this only verifies the translation exists;
// across groups, the translation text is copied into the root page's group.
func (s *Service) LinkPages(ctx context.Context, rootPageID, translationPageID string) error {
	ctx, span := tracer.Start(ctx, "catalog.LinkPages")
	defer span.End()

	rootRef := entity.ParsePageRef(rootPageID)
	transRef := entity.ParsePageRef(translationPageID)
	if !rootRef.IsRoot() {
		return apperrors.ErrInvalidPageRef.WithDetail("rootPageId must reference a root page")
	}
	if transRef.IsRoot() {
		return apperrors.ErrInvalidPageRef.WithDetail("translationPageId must carry a language suffix")
	}

	rootGroup, err := s.groups.GetByID(ctx, rootRef.GroupID)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "load root page group")
	}
	if rootGroup == nil {
		return apperrors.ErrPageNotFound.WithDetail(rootPageID)
	}

	if transRef.GroupID == rootRef.GroupID {
		if _, ok := rootGroup.Translation(transRef.Language); !ok {
			return apperrors.ErrPageNotFound.WithDetail(translationPageID)
		}
		return nil
	}

	sourceGroup, err := s.groups.GetByID(ctx, transRef.GroupID)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "load translation page group")
	}
	if sourceGroup == nil {
		return apperrors.ErrPageNotFound.WithDetail(translationPageID)
	}

	text, ok := sourceGroup.Translation(transRef.Language)
	if !ok {
		// A root page in the target language can serve as the translation.
		if sourceGroup.RootLanguage != transRef.Language {
			return apperrors.ErrPageNotFound.WithDetail(translationPageID)
		}
		text = sourceGroup.RootText
	}

	rootGroup.SetTranslation(transRef.Language, text)
	if err := s.groups.Update(ctx, rootGroup); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "save page link")
	}
	s.invalidatePageGroup(ctx, rootGroup.ID)
	return nil
}

// UnlinkPages removes a translation entry from a root page's group.
// Unlinking an absent translation is a no-op.
func (s *Service) UnlinkPages(ctx context.Context, rootPageID, translationPageID string) error {
	ctx, span := tracer.Start(ctx, "catalog.UnlinkPages")
	defer span.End()

	rootRef := entity.ParsePageRef(rootPageID)
	transRef := entity.ParsePageRef(translationPageID)
	if !rootRef.IsRoot() {
		return apperrors.ErrInvalidPageRef.WithDetail("rootPageId must reference a root page")
	}
	if transRef.IsRoot() {
		return apperrors.ErrInvalidPageRef.WithDetail("translationPageId must carry a language suffix")
	}

	group, err := s.groups.GetByID(ctx, rootRef.GroupID)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "load root page group")
	}
	if group == nil {
		return apperrors.ErrPageNotFound.WithDetail(rootPageID)
	}

	if _, ok := group.Translation(transRef.Language); !ok {
		return nil
	}

	delete(group.Translations, transRef.Language)
	if err := s.groups.Update(ctx, group); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "save page unlink")
	}
	s.invalidatePageGroup(ctx, group.ID)
	return nil
}
