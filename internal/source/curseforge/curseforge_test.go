package curseforge_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"mcw/internal/domain"
	"mcw/internal/source"
	"mcw/internal/source/curseforge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T, apiKey string, handler http.HandlerFunc) *curseforge.CurseForge {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := curseforge.New(server.Client(), apiKey)
	c.Client().SetBaseURL(server.URL)
	return c
}

func TestCurseForge_GetProject(t *testing.T) {
	c := newTestCatalog(t, "key", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/mods/238222", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("x-api-key"))
		w.Write([]byte(`{"data": {
			"id": 238222,
			"classId": 6,
			"name": "Just Enough Items",
			"slug": "jei",
			"summary": "View items and recipes",
			"downloadCount": 1000,
			"authors": [{"id": 1, "name": "mezz"}],
			"latestFiles": [
				{"id": 1, "modId": 238222, "gameVersions": ["1.20.1", "Forge", "Client"], "isAvailable": true}
			]
		}}`))
	})

	p, err := c.GetProject(context.Background(), "238222")
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderCurseForge, p.Provider)
	assert.Equal(t, "238222", p.ID)
	assert.Equal(t, "jei", p.Slug)
	assert.Equal(t, domain.ProjectMod, p.Type)
	assert.Equal(t, "mezz", p.Author)
	assert.Equal(t, []string{"Forge"}, p.Loaders)
	// "Client" is neither a loader nor a version token
	assert.Equal(t, []string{"1.20.1"}, p.GameVersions)
}

func TestCurseForge_GetProjectRejectsNonNumericID(t *testing.T) {
	c := newTestCatalog(t, "key", func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := c.GetProject(context.Background(), "jei")
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestCurseForge_GetVersions(t *testing.T) {
	c := newTestCatalog(t, "key", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/mods/238222/files", r.URL.Path)
		w.Write([]byte(`{"data": [
			{
				"id": 500,
				"modId": 238222,
				"displayName": "jei-1.20.1-15.2.0.27",
				"fileName": "jei-1.20.1-forge-15.2.0.27.jar",
				"releaseType": 2,
				"fileLength": 4096,
				"downloadUrl": "https://edge.example/jei.jar",
				"gameVersions": ["1.20.1", "Forge"],
				"hashes": [
					{"value": "cafebabe", "algo": 1},
					{"value": "ignored", "algo": 2}
				],
				"dependencies": [
					{"modId": 250398, "relationType": 3},
					{"modId": 60089, "relationType": 2},
					{"modId": 99999, "relationType": 5}
				],
				"isAvailable": true
			},
			{"id": 501, "modId": 238222, "isAvailable": false}
		]}`))
	})

	versions, err := c.GetVersions(context.Background(), "238222", "1.20.1", "forge")
	require.NoError(t, err)
	// Unavailable files are dropped
	require.Len(t, versions, 1)

	v := versions[0]
	assert.Equal(t, "500", v.ID)
	assert.Equal(t, "238222", v.ProjectID)
	assert.Equal(t, domain.MaturityBeta, v.Maturity)
	assert.Equal(t, []string{"1.20.1"}, v.GameVersions)
	assert.Equal(t, []string{"Forge"}, v.Loaders)

	require.Len(t, v.Dependencies, 3)
	assert.Equal(t, domain.Dependency{ProjectID: "250398", Kind: domain.DependencyRequired}, v.Dependencies[0])
	assert.Equal(t, domain.Dependency{ProjectID: "60089", Kind: domain.DependencyOptional}, v.Dependencies[1])
	assert.Equal(t, domain.Dependency{ProjectID: "99999", Kind: domain.DependencyIncompatible}, v.Dependencies[2])

	f := v.PrimaryFile()
	require.NotNil(t, f)
	assert.Equal(t, "jei-1.20.1-forge-15.2.0.27.jar", f.Filename)
	assert.Equal(t, "cafebabe", f.SHA1)
	assert.Equal(t, int64(4096), f.Size)
}

func TestCurseForge_GetDownloadURL(t *testing.T) {
	c := newTestCatalog(t, "key", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/mods/238222/files/500/download-url", r.URL.Path)
		w.Write([]byte(`{"data": "https://edge.example/jei.jar"}`))
	})

	url, err := c.GetDownloadURL(context.Background(), "238222", "500")
	require.NoError(t, err)
	assert.Equal(t, "https://edge.example/jei.jar", url)
}

func TestCurseForge_GetDownloadURLRestricted(t *testing.T) {
	c := newTestCatalog(t, "key", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": ""}`))
	})

	_, err := c.GetDownloadURL(context.Background(), "238222", "500")
	assert.ErrorIs(t, err, domain.ErrDownloadFailed)
}

func TestCurseForge_MissingKeyMapsToAuthError(t *testing.T) {
	c := newTestCatalog(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("x-api-key"))
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := c.GetProject(context.Background(), "238222")
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestCurseForge_Search(t *testing.T) {
	c := newTestCatalog(t, "key", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/mods/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "432", q.Get("gameId"))
		assert.Equal(t, "jei", q.Get("searchFilter"))
		assert.Equal(t, "6", q.Get("classId"))
		w.Write([]byte(`{"data": [
			{"id": 238222, "classId": 6, "name": "Just Enough Items", "slug": "jei"}
		], "pagination": {"totalCount": 1}}`))
	})

	projects, err := c.Search(context.Background(), source.SearchQuery{
		Query: "jei",
		Type:  domain.ProjectMod,
	})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "238222", projects[0].ID)
}
