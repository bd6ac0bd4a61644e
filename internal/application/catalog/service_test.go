package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polydoc-api/internal/domain/entity"
	"polydoc-api/internal/domain/repository"
	apperrors "polydoc-api/pkg/errors"
)

// memStore is an in-memory stand-in for the postgres repositories.
type memStore struct {
	projects map[string]*entity.Project
	groups   map[string]*entity.PageGroup
	links    map[string][]string // project id -> page group ids, link order
}

func newMemStore() *memStore {
	return &memStore{
		projects: map[string]*entity.Project{},
		groups:   map[string]*entity.PageGroup{},
		links:    map[string][]string{},
	}
}

func cloneProject(p *entity.Project) *entity.Project {
	clone := *p
	clone.TranslationLanguages = append([]string(nil), p.TranslationLanguages...)
	clone.PageGroupIDs = append([]string(nil), p.PageGroupIDs...)
	return &clone
}

func cloneGroup(g *entity.PageGroup) *entity.PageGroup {
	clone := *g
	clone.Translations = map[string]string{}
	for k, v := range g.Translations {
		clone.Translations[k] = v
	}
	return &clone
}

type memProjectRepo struct{ store *memStore }

func (r *memProjectRepo) Create(_ context.Context, project *entity.Project) error {
	r.store.projects[project.ID] = cloneProject(project)
	return nil
}

func (r *memProjectRepo) GetByID(_ context.Context, id string) (*entity.Project, error) {
	p, ok := r.store.projects[id]
	if !ok {
		return nil, nil
	}
	clone := cloneProject(p)
	clone.PageGroupIDs = append([]string(nil), r.store.links[id]...)
	return clone, nil
}

func (r *memProjectRepo) Update(_ context.Context, project *entity.Project) error {
	if _, ok := r.store.projects[project.ID]; !ok {
		return fmt.Errorf("project %s not found", project.ID)
	}
	clone := cloneProject(project)
	clone.UpdatedAt = time.Now()
	r.store.projects[project.ID] = clone
	project.UpdatedAt = clone.UpdatedAt
	return nil
}

func (r *memProjectRepo) Delete(_ context.Context, id string) error {
	delete(r.store.projects, id)
	delete(r.store.links, id)
	return nil
}

func (r *memProjectRepo) List(_ context.Context, filter *repository.ProjectFilter) ([]*entity.Project, error) {
	var out []*entity.Project
	for id, p := range r.store.projects {
		if filter != nil && filter.Status != "" && p.Status != filter.Status {
			continue
		}
		clone := cloneProject(p)
		clone.PageGroupIDs = append([]string(nil), r.store.links[id]...)
		out = append(out, clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memProjectRepo) AddPageGroup(_ context.Context, projectID, pageGroupID string) error {
	for _, id := range r.store.links[projectID] {
		if id == pageGroupID {
			return nil
		}
	}
	r.store.links[projectID] = append(r.store.links[projectID], pageGroupID)
	return nil
}

func (r *memProjectRepo) RemovePageGroup(_ context.Context, projectID, pageGroupID string) error {
	ids := r.store.links[projectID]
	for i, id := range ids {
		if id == pageGroupID {
			r.store.links[projectID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memProjectRepo) ListPageGroupIDs(_ context.Context, projectID string) ([]string, error) {
	return append([]string(nil), r.store.links[projectID]...), nil
}

func (r *memProjectRepo) HasPageGroup(_ context.Context, projectID, pageGroupID string) (bool, error) {
	for _, id := range r.store.links[projectID] {
		if id == pageGroupID {
			return true, nil
		}
	}
	return false, nil
}

type memPageGroupRepo struct{ store *memStore }

func (r *memPageGroupRepo) Create(_ context.Context, group *entity.PageGroup) error {
	r.store.groups[group.ID] = cloneGroup(group)
	return nil
}

func (r *memPageGroupRepo) GetByID(_ context.Context, id string) (*entity.PageGroup, error) {
	g, ok := r.store.groups[id]
	if !ok {
		return nil, nil
	}
	return cloneGroup(g), nil
}

func (r *memPageGroupRepo) Update(_ context.Context, group *entity.PageGroup) error {
	if _, ok := r.store.groups[group.ID]; !ok {
		return fmt.Errorf("page group %s not found", group.ID)
	}
	clone := cloneGroup(group)
	clone.UpdatedAt = time.Now()
	r.store.groups[group.ID] = clone
	group.UpdatedAt = clone.UpdatedAt
	return nil
}

func (r *memPageGroupRepo) Delete(_ context.Context, id string) error {
	delete(r.store.groups, id)
	for projectID, ids := range r.store.links {
		for i, linked := range ids {
			if linked == id {
				r.store.links[projectID] = append(ids[:i], ids[i+1:]...)
				break
			}
		}
	}
	return nil
}

func (r *memPageGroupRepo) ListByProject(_ context.Context, projectID string) ([]*entity.PageGroup, error) {
	var out []*entity.PageGroup
	for _, id := range r.store.links[projectID] {
		if g, ok := r.store.groups[id]; ok {
			out = append(out, cloneGroup(g))
		}
	}
	return out, nil
}

func (r *memPageGroupRepo) ListByLanguage(_ context.Context, language string) ([]*entity.PageGroup, error) {
	var out []*entity.PageGroup
	for _, g := range r.store.groups {
		if language != "" && g.RootLanguage != language {
			continue
		}
		out = append(out, cloneGroup(g))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type memTx struct{}

func (memTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// memCache is a deterministic Cache with observable contents.
type memCache struct {
	entries map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}}
}

func (c *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func (c *memCache) GetOrLoadSafe(_ context.Context, key string, _ time.Duration, loader func() (interface{}, error)) ([]byte, error) {
	if data, ok := c.entries[key]; ok {
		return data, nil
	}
	value, err := loader()
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	c.entries[key] = data
	return data, nil
}

// memBlobs records uploads and deletions; failPut simulates an unavailable
// blob store.
type memBlobs struct {
	objects map[string][]byte
	deleted []string
	failPut bool
}

func newMemBlobs() *memBlobs {
	return &memBlobs{objects: map[string][]byte{}}
}

func (b *memBlobs) Put(_ context.Context, key, _ string, body io.Reader) (string, error) {
	if b.failPut {
		return "", errors.New("blob store unavailable")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	b.objects[key] = data
	return "mem://" + key, nil
}

func (b *memBlobs) Delete(_ context.Context, key string) error {
	delete(b.objects, key)
	b.deleted = append(b.deleted, key)
	return nil
}

type fixture struct {
	svc   *Service
	store *memStore
	cache *memCache
	blobs *memBlobs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	cache := newMemCache()
	blobs := newMemBlobs()
	svc := NewService(
		&memProjectRepo{store: store},
		&memPageGroupRepo{store: store},
		memTx{},
		cache,
		blobs,
		time.Minute,
	)
	return &fixture{svc: svc, store: store, cache: cache, blobs: blobs}
}

func TestCreateProject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	project, err := f.svc.CreateProject(ctx, CreateProjectInput{
		Title:                "Codex Arabicus",
		RootLanguage:         "ara",
		TranslationLanguages: []string{"eng", "fra"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"eng", "fra"}, project.TranslationLanguages)
	assert.Empty(t, project.PageGroupIDs)
	assert.Contains(t, f.cache.entries, projectCacheKey(project.ID))

	stored, err := f.svc.GetProject(ctx, project.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, project.Title, stored.Title)
}

func TestCreateProject_Invalid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateProject(ctx, CreateProjectInput{
		Title:                "Bad",
		RootLanguage:         "ara",
		TranslationLanguages: []string{"ara"},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidationFailed, apperrors.AsAppError(err).Code)
	assert.Empty(t, f.store.projects)
}

func TestUpdateProject_EmptyPatchOnlyBumpsUpdatedAt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	project, err := f.svc.CreateProject(ctx, CreateProjectInput{
		Title:                "Codex",
		Description:          "desc",
		RootLanguage:         "ara",
		TranslationLanguages: []string{"eng"},
	})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	updated, err := f.svc.UpdateProject(ctx, project.ID, UpdateProjectInput{})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, project.Title, updated.Title)
	assert.Equal(t, project.Description, updated.Description)
	assert.Equal(t, project.RootLanguage, updated.RootLanguage)
	assert.Equal(t, project.TranslationLanguages, updated.TranslationLanguages)
	assert.Equal(t, project.Status, updated.Status)
	assert.True(t, updated.UpdatedAt.After(project.UpdatedAt))
}

func TestUpdateProject_NotFound(t *testing.T) {
	f := newFixture(t)

	updated, err := f.svc.UpdateProject(context.Background(), "missing", UpdateProjectInput{})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestAddPageGroupToProject_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	project, group := f.seedProjectAndGroup(t, ctx)

	require.NoError(t, f.svc.AddPageGroupToProject(ctx, project.ID, group.ID))
	require.NoError(t, f.svc.AddPageGroupToProject(ctx, project.ID, group.ID))

	assert.Equal(t, []string{group.ID}, f.store.links[project.ID])
}

func TestAddPageGroupToProject_UnknownIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	project, group := f.seedProjectAndGroup(t, ctx)

	err := f.svc.AddPageGroupToProject(ctx, "missing", group.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeProjectNotFound, apperrors.AsAppError(err).Code)

	err = f.svc.AddPageGroupToProject(ctx, project.ID, "missing")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodePageGroupNotFound, apperrors.AsAppError(err).Code)

	err = f.svc.RemovePageFromProject(ctx, project.ID, "missing")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodePageGroupNotFound, apperrors.AsAppError(err).Code)
}

func TestDeleteProject_Cascade(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	project, group := f.seedProjectAndGroup(t, ctx)
	require.NoError(t, f.svc.AddPageGroupToProject(ctx, project.ID, group.ID))

	// Give the group a stored image so the cascade has a blob to collect.
	stored := f.store.groups[group.ID]
	stored.ImageBlobID = "pages/scan-1.png"
	f.blobs.objects["pages/scan-1.png"] = []byte("img")

	deleted, err := f.svc.DeleteProject(ctx, project.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	gone, err := f.svc.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	groupGone, err := f.svc.LoadPageGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Nil(t, groupGone)

	assert.Contains(t, f.blobs.deleted, "pages/scan-1.png")
}

func TestDeleteProject_NotFound(t *testing.T) {
	f := newFixture(t)

	deleted, err := f.svc.DeleteProject(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestAddTranslationToPageGroup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	group, err := f.svc.CreatePageGroup(ctx, CreatePageGroupInput{
		Title:        "Folio 1",
		RootLanguage: "eng",
		RootText:     "Hello",
		Translations: map[string]string{"spa": "Hola"},
	})
	require.NoError(t, err)

	updated, err := f.svc.AddTranslationToPageGroup(ctx, group.ID, "fra", "Bonjour")
	require.NoError(t, err)
	require.NotNil(t, updated)

	fresh, err := f.svc.LoadPageGroup(ctx, group.ID)
	require.NoError(t, err)
	require.NotNil(t, fresh)
	assert.Equal(t, "Bonjour", fresh.Translations["fra"])
	assert.Equal(t, "Hola", fresh.Translations["spa"])
}

func TestAddTranslation_InvalidLanguageAndMissingGroup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddTranslationToPageGroup(ctx, "any", "french", "Bonjour")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidParam, apperrors.AsAppError(err).Code)

	group, err := f.svc.AddTranslationToPageGroup(ctx, "missing", "fra", "Bonjour")
	require.NoError(t, err)
	assert.Nil(t, group)
}

func TestCreatePage_RoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	page, err := f.svc.CreatePage(ctx, CreatePageInput{
		Title:      "Folio 2",
		Language:   "deu",
		EditedText: "Guten Tag",
	})
	require.NoError(t, err)

	loaded, err := f.svc.LoadPage(ctx, page.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "deu", loaded.Language)
	assert.Equal(t, "Guten Tag", loaded.EditedText)
	assert.Equal(t, loaded.EditedText, loaded.OriginalText)
}

func TestLoadPage_SyntheticTranslationID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	group, err := f.svc.CreatePageGroup(ctx, CreatePageGroupInput{
		RootLanguage: "eng",
		RootText:     "Hello",
		Translations: map[string]string{"spa": "Hola"},
	})
	require.NoError(t, err)

	page, err := f.svc.LoadPage(ctx, group.ID+"_spa")
	require.NoError(t, err)
	require.NotNil(t, page)
	assert.Equal(t, "spa", page.Language)
	assert.Equal(t, "Hola", page.EditedText)

	missing, err := f.svc.LoadPage(ctx, group.ID+"_fra")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGetProjectWithPages_Scenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	project, err := f.svc.CreateProject(ctx, CreateProjectInput{
		Title:                "Test",
		RootLanguage:         "eng",
		TranslationLanguages: []string{"ara"},
	})
	require.NoError(t, err)

	group, err := f.svc.CreatePageGroup(ctx, CreatePageGroupInput{
		RootLanguage: "eng",
		RootText:     "Hello",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.AddPageGroupToProject(ctx, project.ID, group.ID))

	result, err := f.svc.GetProjectWithPages(ctx, project.ID)
	require.NoError(t, err)
	require.NotNil(t, result)

	require.Len(t, result.PagesByLanguage["eng"], 1)
	assert.Equal(t, "Hello", result.PagesByLanguage["eng"][0].EditedText)
	assert.Empty(t, result.PagesByLanguage["ara"])

	_, err = f.svc.AddTranslationToPageGroup(ctx, group.ID, "ara", "مرحبا")
	require.NoError(t, err)

	result, err = f.svc.GetProjectWithPages(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, result.PagesByLanguage["ara"], 1)
	assert.Equal(t, "مرحبا", result.PagesByLanguage["ara"][0].EditedText)
}

func TestGetProjectWithLinkedPages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	project, group := f.seedProjectAndGroup(t, ctx)
	require.NoError(t, f.svc.AddPageGroupToProject(ctx, project.ID, group.ID))
	_, err := f.svc.AddTranslationToPageGroup(ctx, group.ID, "eng", "Hello")
	require.NoError(t, err)

	result, err := f.svc.GetProjectWithLinkedPages(ctx, project.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Len(t, result.LinkedPages, 1)

	set := result.LinkedPages[0]
	assert.Equal(t, group.ID, set.RootPage.ID)
	require.Contains(t, set.Translations, "eng")
	assert.Equal(t, "Hello", set.Translations["eng"].EditedText)
}

func TestCreatePageGroup_ImageUploadFailureDegradesSilently(t *testing.T) {
	f := newFixture(t)
	f.blobs.failPut = true
	ctx := context.Background()

	group, err := f.svc.CreatePageGroup(ctx, CreatePageGroupInput{
		RootLanguage: "ara",
		RootText:     "نص",
		Image: &ImageUpload{
			FileName:    "scan.png",
			ContentType: "image/png",
			Data:        bytesReader("fake image"),
		},
	})
	require.NoError(t, err)
	assert.Empty(t, group.ImageURL)
	assert.Empty(t, group.ImageBlobID)
	assert.False(t, group.HasImage())
}

func TestCreatePageGroup_WithImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	group, err := f.svc.CreatePageGroup(ctx, CreatePageGroupInput{
		FileName:     "folio-3",
		RootLanguage: "ara",
		RootText:     "نص",
		Image: &ImageUpload{
			FileName:    "scan.PNG",
			ContentType: "image/png",
			Data:        bytesReader("fake image"),
		},
	})
	require.NoError(t, err)
	assert.True(t, group.HasImage())
	assert.Contains(t, f.blobs.objects, group.ImageBlobID)
	assert.Equal(t, "mem://"+group.ImageBlobID, group.ImageURL)
}

func TestUpdatePageGroup_TranslationsWholeReplace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	group, err := f.svc.CreatePageGroup(ctx, CreatePageGroupInput{
		RootLanguage: "eng",
		RootText:     "Hello",
		Translations: map[string]string{"fra": "Bonjour", "spa": "Hola"},
	})
	require.NoError(t, err)

	updated, err := f.svc.UpdatePageGroup(ctx, group.ID, UpdatePageGroupInput{
		Translations: map[string]string{"deu": "Hallo"},
	})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, map[string]string{"deu": "Hallo"}, updated.Translations)
}

func TestLoadPageGroup_ReadThroughCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	group, err := f.svc.CreatePageGroup(ctx, CreatePageGroupInput{
		RootLanguage: "eng",
		RootText:     "cached",
	})
	require.NoError(t, err)

	// Mutate storage behind the cache: the stale cached copy wins until an
	// invalidating write.
	f.store.groups[group.ID].RootText = "changed in storage"

	loaded, err := f.svc.LoadPageGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, "cached", loaded.RootText)

	_, err = f.svc.UpdatePageGroup(ctx, group.ID, UpdatePageGroupInput{})
	require.NoError(t, err)

	fresh, err := f.svc.LoadPageGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, "changed in storage", fresh.RootText)
}

func TestLoadPageGroup_MissPopulatesCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	group, err := f.svc.CreatePageGroup(ctx, CreatePageGroupInput{
		RootLanguage: "eng",
		RootText:     "Hello",
	})
	require.NoError(t, err)

	delete(f.cache.entries, pageGroupCacheKey(group.ID))

	loaded, err := f.svc.LoadPageGroup(ctx, group.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Hello", loaded.RootText)
	assert.Contains(t, f.cache.entries, pageGroupCacheKey(group.ID))
}

func TestGetProject_MissingNeverCached(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	project, err := f.svc.GetProject(ctx, "no-such-project")
	require.NoError(t, err)
	assert.Nil(t, project)
	assert.Empty(t, f.cache.entries)

	group, err := f.svc.LoadPageGroup(ctx, "no-such-group")
	require.NoError(t, err)
	assert.Nil(t, group)
	assert.Empty(t, f.cache.entries)
}

func TestDeletePage_TranslationEntryOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	group, err := f.svc.CreatePageGroup(ctx, CreatePageGroupInput{
		RootLanguage: "eng",
		RootText:     "Hello",
		Translations: map[string]string{"fra": "Bonjour"},
	})
	require.NoError(t, err)

	deleted, err := f.svc.DeletePage(ctx, group.ID+"_fra")
	require.NoError(t, err)
	assert.True(t, deleted)

	fresh, err := f.svc.LoadPageGroup(ctx, group.ID)
	require.NoError(t, err)
	require.NotNil(t, fresh)
	assert.NotContains(t, fresh.Translations, "fra")

	// Root delete removes the whole group.
	deleted, err = f.svc.DeletePage(ctx, group.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	gone, err := f.svc.LoadPageGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestDeletePage_Missing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	deleted, err := f.svc.DeletePage(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, deleted)

	group, err := f.svc.CreatePageGroup(ctx, CreatePageGroupInput{
		RootLanguage: "eng",
		RootText:     "Hello",
	})
	require.NoError(t, err)

	deleted, err = f.svc.DeletePage(ctx, group.ID+"_fra")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestListPages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreatePageGroup(ctx, CreatePageGroupInput{
		RootLanguage: "eng",
		RootText:     "Hello",
		Translations: map[string]string{"fra": "Bonjour"},
	})
	require.NoError(t, err)
	_, err = f.svc.CreatePageGroup(ctx, CreatePageGroupInput{
		RootLanguage: "fra",
		RootText:     "Salut",
	})
	require.NoError(t, err)

	all, err := f.svc.ListPages(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	french, err := f.svc.ListPages(ctx, "fra")
	require.NoError(t, err)
	require.Len(t, french, 2)
	for _, page := range french {
		assert.Equal(t, "fra", page.Language)
	}

	english, err := f.svc.ListPages(ctx, "eng")
	require.NoError(t, err)
	assert.Len(t, english, 1)
}

func TestLinkAndUnlinkPages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	root, err := f.svc.CreatePageGroup(ctx, CreatePageGroupInput{
		RootLanguage: "ara",
		RootText:     "النص",
	})
	require.NoError(t, err)

	source, err := f.svc.CreatePageGroup(ctx, CreatePageGroupInput{
		RootLanguage: "eng",
		RootText:     "The text",
	})
	require.NoError(t, err)

	// Attach the English root page as the Arabic group's translation.
	require.NoError(t, f.svc.LinkPages(ctx, root.ID, source.ID+"_eng"))

	fresh, err := f.svc.LoadPageGroup(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, "The text", fresh.Translations["eng"])

	require.NoError(t, f.svc.UnlinkPages(ctx, root.ID, root.ID+"_eng"))
	fresh, err = f.svc.LoadPageGroup(ctx, root.ID)
	require.NoError(t, err)
	assert.NotContains(t, fresh.Translations, "eng")

	// Unlinking again is a no-op.
	require.NoError(t, f.svc.UnlinkPages(ctx, root.ID, root.ID+"_eng"))
}

func TestLinkPages_BadRefs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	group, err := f.svc.CreatePageGroup(ctx, CreatePageGroupInput{
		RootLanguage: "ara",
		RootText:     "نص",
	})
	require.NoError(t, err)

	err = f.svc.LinkPages(ctx, group.ID+"_eng", group.ID+"_fra")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidPageRef, apperrors.AsAppError(err).Code)

	err = f.svc.LinkPages(ctx, group.ID, group.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidPageRef, apperrors.AsAppError(err).Code)

	err = f.svc.LinkPages(ctx, "missing", group.ID+"_eng")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodePageNotFound, apperrors.AsAppError(err).Code)
}

func (f *fixture) seedProjectAndGroup(t *testing.T, ctx context.Context) (*entity.Project, *entity.PageGroup) {
	t.Helper()

	project, err := f.svc.CreateProject(ctx, CreateProjectInput{
		Title:                "Seed",
		RootLanguage:         "ara",
		TranslationLanguages: []string{"eng"},
	})
	require.NoError(t, err)

	group, err := f.svc.CreatePageGroup(ctx, CreatePageGroupInput{
		Title:        "Seed Folio",
		RootLanguage: "ara",
		RootText:     "نص",
	})
	require.NoError(t, err)

	return project, group
}

func bytesReader(s string) io.Reader {
	return strings.NewReader(s)
}
