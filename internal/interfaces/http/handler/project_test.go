package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polydoc-api/internal/application/catalog"
	"polydoc-api/internal/domain/entity"
	"polydoc-api/internal/domain/repository"
	apperrors "polydoc-api/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeProjectCatalog implements ProjectCatalog via overridable function
// fields; unset fields return zero values.
type fakeProjectCatalog struct {
	createProject         func(ctx context.Context, in catalog.CreateProjectInput) (*entity.Project, error)
	getProjects           func(ctx context.Context, filter *repository.ProjectFilter) ([]*entity.Project, error)
	getWithPages          func(ctx context.Context, projectID string) (*catalog.ProjectWithPages, error)
	getWithLinkedPages    func(ctx context.Context, projectID string) (*catalog.ProjectWithLinkedPages, error)
	updateProject         func(ctx context.Context, id string, in catalog.UpdateProjectInput) (*entity.Project, error)
	deleteProject         func(ctx context.Context, id string) (bool, error)
	addPageToProject      func(ctx context.Context, projectID, pageID, language string) error
	removePageFromProject func(ctx context.Context, projectID, pageID string) error
}

func (f *fakeProjectCatalog) CreateProject(ctx context.Context, in catalog.CreateProjectInput) (*entity.Project, error) {
	if f.createProject != nil {
		return f.createProject(ctx, in)
	}
	return nil, nil
}

func (f *fakeProjectCatalog) GetProjects(ctx context.Context, filter *repository.ProjectFilter) ([]*entity.Project, error) {
	if f.getProjects != nil {
		return f.getProjects(ctx, filter)
	}
	return nil, nil
}

func (f *fakeProjectCatalog) GetProjectWithPages(ctx context.Context, projectID string) (*catalog.ProjectWithPages, error) {
	if f.getWithPages != nil {
		return f.getWithPages(ctx, projectID)
	}
	return nil, nil
}

func (f *fakeProjectCatalog) GetProjectWithLinkedPages(ctx context.Context, projectID string) (*catalog.ProjectWithLinkedPages, error) {
	if f.getWithLinkedPages != nil {
		return f.getWithLinkedPages(ctx, projectID)
	}
	return nil, nil
}

func (f *fakeProjectCatalog) UpdateProject(ctx context.Context, id string, in catalog.UpdateProjectInput) (*entity.Project, error) {
	if f.updateProject != nil {
		return f.updateProject(ctx, id, in)
	}
	return nil, nil
}

func (f *fakeProjectCatalog) DeleteProject(ctx context.Context, id string) (bool, error) {
	if f.deleteProject != nil {
		return f.deleteProject(ctx, id)
	}
	return false, nil
}

func (f *fakeProjectCatalog) AddPageToProject(ctx context.Context, projectID, pageID, language string) error {
	if f.addPageToProject != nil {
		return f.addPageToProject(ctx, projectID, pageID, language)
	}
	return nil
}

func (f *fakeProjectCatalog) RemovePageFromProject(ctx context.Context, projectID, pageID string) error {
	if f.removePageFromProject != nil {
		return f.removePageFromProject(ctx, projectID, pageID)
	}
	return nil
}

func newProjectRouter(svc ProjectCatalog) *gin.Engine {
	h := NewProjectHandler(svc)
	r := gin.New()
	r.GET("/projects", h.ListProjects)
	r.POST("/projects", h.CreateProject)
	r.GET("/projects/:id", h.GetProject)
	r.PUT("/projects/:id", h.UpdateProject)
	r.DELETE("/projects/:id", h.DeleteProject)
	r.POST("/projects/:id/pages", h.AddPage)
	r.DELETE("/projects/:id/pages", h.RemovePage)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Contains(t, body, "error")
	return body["error"]
}

func TestCreateProject_Created(t *testing.T) {
	svc := &fakeProjectCatalog{
		createProject: func(_ context.Context, in catalog.CreateProjectInput) (*entity.Project, error) {
			return entity.NewProject(in.Title, in.Description, in.FileName, in.RootLanguage, in.TranslationLanguages), nil
		},
	}
	r := newProjectRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/projects", gin.H{
		"title":                "Codex",
		"rootLanguage":         "ara",
		"translationLanguages": []string{"eng"},
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var project entity.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &project))
	assert.Equal(t, "Codex", project.Title)
	assert.Equal(t, []string{"eng"}, project.TranslationLanguages)
	assert.NotEmpty(t, project.ID)
}

func TestCreateProject_MissingFields(t *testing.T) {
	r := newProjectRouter(&fakeProjectCatalog{})

	w := doJSON(t, r, http.MethodPost, "/projects", gin.H{"title": "no languages"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, errorBody(t, w))
}

func TestCreateProject_ValidationError(t *testing.T) {
	svc := &fakeProjectCatalog{
		createProject: func(context.Context, catalog.CreateProjectInput) (*entity.Project, error) {
			return nil, apperrors.ErrValidationFailed.WithDetail("root language cannot appear in translation languages")
		},
	}
	r := newProjectRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/projects", gin.H{
		"title":                "Bad",
		"rootLanguage":         "ara",
		"translationLanguages": []string{"ara"},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorBody(t, w), "root language")
}

func TestGetProject_NotFound(t *testing.T) {
	r := newProjectRouter(&fakeProjectCatalog{})

	w := doJSON(t, r, http.MethodGet, "/projects/missing", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "project not found", errorBody(t, w))
}

func TestGetProject_WithPages(t *testing.T) {
	group := entity.NewPageGroup("Folio", "folio", "eng", "Hello")
	svc := &fakeProjectCatalog{
		getWithPages: func(_ context.Context, projectID string) (*catalog.ProjectWithPages, error) {
			return &catalog.ProjectWithPages{
				Project: entity.NewProject("Test", "", "", "eng", []string{"ara"}),
				PagesByLanguage: map[string][]*entity.Page{
					"eng": {group.RootPage()},
				},
			}, nil
		},
	}
	r := newProjectRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/projects/p1", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Project         *entity.Project           `json:"project"`
		PagesByLanguage map[string][]*entity.Page `json:"pagesByLanguage"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.PagesByLanguage["eng"], 1)
	assert.Equal(t, "Hello", body.PagesByLanguage["eng"][0].EditedText)
}

func TestDeleteProject(t *testing.T) {
	svc := &fakeProjectCatalog{
		deleteProject: func(_ context.Context, id string) (bool, error) {
			return id == "known", nil
		},
	}
	r := newProjectRouter(svc)

	w := doJSON(t, r, http.MethodDelete, "/projects/known", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = doJSON(t, r, http.MethodDelete, "/projects/unknown", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemovePage_UnknownPageIsClientError(t *testing.T) {
	svc := &fakeProjectCatalog{
		removePageFromProject: func(_ context.Context, _, pageID string) error {
			return apperrors.ErrPageGroupNotFound.WithDetail(pageID)
		},
	}
	r := newProjectRouter(svc)

	w := doJSON(t, r, http.MethodDelete, "/projects/p1/pages", gin.H{"pageId": "ghost"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "page group not found", errorBody(t, w))
}

func TestAddPage_MissingPageID(t *testing.T) {
	r := newProjectRouter(&fakeProjectCatalog{})

	w := doJSON(t, r, http.MethodPost, "/projects/p1/pages", gin.H{"language": "eng"})

	require.Equal(t, http.StatusBadRequest, w.Code)
}
