package source_test

import (
	"context"
	"testing"

	"mcw/internal/domain"
	"mcw/internal/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct {
	id domain.Provider
}

func (s *stubCatalog) ID() domain.Provider { return s.id }
func (s *stubCatalog) Name() string        { return string(s.id) }

func (s *stubCatalog) Search(context.Context, source.SearchQuery) ([]domain.Project, error) {
	return nil, nil
}

func (s *stubCatalog) GetProject(context.Context, string) (*domain.Project, error) {
	return nil, domain.ErrProjectNotFound
}

func (s *stubCatalog) GetVersions(context.Context, string, string, string) ([]domain.Version, error) {
	return nil, nil
}

func (s *stubCatalog) GetDownloadURL(context.Context, string, string) (string, error) {
	return "", nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := source.NewRegistry()
	c := &stubCatalog{id: domain.ProviderModrinth}
	r.Register(c)

	got, err := r.Get(domain.ProviderModrinth)
	require.NoError(t, err)
	assert.Same(t, source.Catalog(c), got)
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := source.NewRegistry()
	_, err := r.Get(domain.ProviderCurseForge)
	assert.Error(t, err)
}

func TestRegistry_List(t *testing.T) {
	r := source.NewRegistry()
	r.Register(&stubCatalog{id: domain.ProviderModrinth})
	r.Register(&stubCatalog{id: domain.ProviderCurseForge})

	assert.Len(t, r.List(), 2)
}

func TestRegistry_ReRegisterReplaces(t *testing.T) {
	r := source.NewRegistry()
	first := &stubCatalog{id: domain.ProviderModrinth}
	second := &stubCatalog{id: domain.ProviderModrinth}
	r.Register(first)
	r.Register(second)

	got, err := r.Get(domain.ProviderModrinth)
	require.NoError(t, err)
	assert.Same(t, source.Catalog(second), got)
	assert.Len(t, r.List(), 1)
}
