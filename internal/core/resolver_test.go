package core_test

import (
	"context"
	"errors"
	"testing"

	"mcw/internal/core"
	"mcw/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// graphFixture wires a Resolver against an in-memory dependency graph
type graphFixture struct {
	projects  map[string]domain.Project
	versions  map[string]domain.Version
	installed map[string]bool
}

func newGraphFixture() *graphFixture {
	return &graphFixture{
		projects:  make(map[string]domain.Project),
		versions:  make(map[string]domain.Version),
		installed: make(map[string]bool),
	}
}

func (g *graphFixture) add(id string, deps ...domain.Dependency) {
	g.projects[id] = domain.Project{
		Provider: domain.ProviderModrinth,
		ID:       id,
		Slug:     id + "-slug",
		Title:    id,
		Type:     domain.ProjectMod,
	}
	g.versions[id] = domain.Version{
		ID:           id + "-v1",
		ProjectID:    id,
		Dependencies: deps,
	}
}

func (g *graphFixture) resolver() *core.Resolver {
	return &core.Resolver{
		FetchProject: func(_ context.Context, projectID string) (*domain.Project, error) {
			p, ok := g.projects[projectID]
			if !ok {
				return nil, domain.ErrProjectNotFound
			}
			return &p, nil
		},
		FetchCompatibleVersion: func(_ context.Context, project *domain.Project, _, _ string) (*domain.Version, error) {
			v, ok := g.versions[project.ID]
			if !ok {
				return nil, domain.ErrNoCompatibleVersion
			}
			return &v, nil
		},
		IsInstalled: func(project *domain.Project) *domain.InstalledRecord {
			if g.installed[project.ID] {
				return &domain.InstalledRecord{ProjectID: project.ID, Provider: project.Provider}
			}
			return nil
		},
	}
}

func (g *graphFixture) resolve(t *testing.T, rootID string) *core.Plan {
	t.Helper()
	root := g.projects[rootID]
	rootVersion := g.versions[rootID]
	plan, err := g.resolver().Resolve(context.Background(), &root, &rootVersion, "1.20.1", "fabric")
	require.NoError(t, err)
	return plan
}

func planIDs(plan *core.Plan) []string {
	ids := make([]string, 0, len(plan.Nodes))
	for _, n := range plan.Nodes {
		ids = append(ids, n.Project.ID)
	}
	return ids
}

func TestResolver_NoDependencies(t *testing.T) {
	g := newGraphFixture()
	g.add("A")

	plan := g.resolve(t, "A")
	assert.Empty(t, plan.Nodes)
	assert.Empty(t, plan.Warnings)
}

func TestResolver_Chain(t *testing.T) {
	g := newGraphFixture()
	g.add("A", domain.Dependency{ProjectID: "B", Kind: domain.DependencyRequired})
	g.add("B", domain.Dependency{ProjectID: "C", Kind: domain.DependencyRequired})
	g.add("C")

	plan := g.resolve(t, "A")
	// Deepest first: C before B
	assert.Equal(t, []string{"C", "B"}, planIDs(plan))
	for _, n := range plan.Nodes {
		assert.Equal(t, domain.DependencyRequired, n.Kind)
		require.NotNil(t, n.Version)
	}
}

func TestResolver_SharedDependencyOnce(t *testing.T) {
	g := newGraphFixture()
	g.add("A",
		domain.Dependency{ProjectID: "B", Kind: domain.DependencyRequired},
		domain.Dependency{ProjectID: "C", Kind: domain.DependencyOptional},
	)
	g.add("B", domain.Dependency{ProjectID: "C", Kind: domain.DependencyRequired})
	g.add("C")

	plan := g.resolve(t, "A")
	require.ElementsMatch(t, []string{"B", "C"}, planIDs(plan))

	// C is reachable both optionally and as a requirement of B; it must
	// appear exactly once, classified required
	for _, n := range plan.Nodes {
		assert.Equal(t, domain.DependencyRequired, n.Kind, n.Project.ID)
	}
}

func TestResolver_PromotionPropagates(t *testing.T) {
	g := newGraphFixture()
	// A optionally wants B, B requires C. When A later requires B through D,
	// both B and C must become required.
	g.add("A",
		domain.Dependency{ProjectID: "B", Kind: domain.DependencyOptional},
		domain.Dependency{ProjectID: "D", Kind: domain.DependencyRequired},
	)
	g.add("B", domain.Dependency{ProjectID: "C", Kind: domain.DependencyRequired})
	g.add("C")
	g.add("D", domain.Dependency{ProjectID: "B", Kind: domain.DependencyRequired})

	plan := g.resolve(t, "A")
	kinds := make(map[string]domain.DependencyKind)
	for _, n := range plan.Nodes {
		kinds[n.Project.ID] = n.Kind
	}
	assert.Equal(t, domain.DependencyRequired, kinds["B"])
	assert.Equal(t, domain.DependencyRequired, kinds["C"])
	assert.Equal(t, domain.DependencyRequired, kinds["D"])
}

func TestResolver_OptionalParentDemotesChildren(t *testing.T) {
	g := newGraphFixture()
	g.add("A", domain.Dependency{ProjectID: "B", Kind: domain.DependencyOptional})
	g.add("B", domain.Dependency{ProjectID: "C", Kind: domain.DependencyRequired})
	g.add("C")

	plan := g.resolve(t, "A")
	for _, n := range plan.Nodes {
		assert.Equal(t, domain.DependencyOptional, n.Kind, n.Project.ID)
	}
	assert.Empty(t, plan.Required())
}

func TestResolver_CycleTerminates(t *testing.T) {
	g := newGraphFixture()
	g.add("A", domain.Dependency{ProjectID: "B", Kind: domain.DependencyRequired})
	g.add("B", domain.Dependency{ProjectID: "A", Kind: domain.DependencyRequired})

	plan := g.resolve(t, "A")
	// The back-edge to the root is dropped; only B lands in the plan
	assert.Equal(t, []string{"B"}, planIDs(plan))
}

func TestResolver_MutualDependencyCycle(t *testing.T) {
	g := newGraphFixture()
	g.add("A", domain.Dependency{ProjectID: "B", Kind: domain.DependencyRequired})
	g.add("B", domain.Dependency{ProjectID: "C", Kind: domain.DependencyRequired})
	g.add("C", domain.Dependency{ProjectID: "B", Kind: domain.DependencyRequired})

	plan := g.resolve(t, "A")
	assert.ElementsMatch(t, []string{"B", "C"}, planIDs(plan))
}

func TestResolver_AlreadyInstalledStopsDescent(t *testing.T) {
	g := newGraphFixture()
	g.add("A", domain.Dependency{ProjectID: "B", Kind: domain.DependencyRequired})
	g.add("B", domain.Dependency{ProjectID: "C", Kind: domain.DependencyRequired})
	g.add("C")
	g.installed["B"] = true

	plan := g.resolve(t, "A")
	require.Len(t, plan.Nodes, 1)
	assert.Equal(t, "B", plan.Nodes[0].Project.ID)
	assert.True(t, plan.Nodes[0].AlreadyInstalled)
	assert.Nil(t, plan.Nodes[0].Version)
	assert.Empty(t, plan.Required())
}

func TestResolver_IgnoresNonActionableKinds(t *testing.T) {
	g := newGraphFixture()
	g.add("A",
		domain.Dependency{ProjectID: "B", Kind: domain.DependencyIncompatible},
		domain.Dependency{ProjectID: "C", Kind: domain.DependencyEmbedded},
	)
	g.add("B")
	g.add("C")

	plan := g.resolve(t, "A")
	assert.Empty(t, plan.Nodes)
}

func TestResolver_FetchFailureBecomesWarning(t *testing.T) {
	g := newGraphFixture()
	g.add("A",
		domain.Dependency{ProjectID: "missing", Kind: domain.DependencyRequired},
		domain.Dependency{ProjectID: "B", Kind: domain.DependencyRequired},
	)
	g.add("B")

	plan := g.resolve(t, "A")
	assert.Equal(t, []string{"B"}, planIDs(plan))
	require.Len(t, plan.Warnings, 1)
	assert.True(t, errors.Is(plan.Warnings[0], domain.ErrProjectNotFound))
}

func TestResolver_NoCompatibleVersionBecomesWarning(t *testing.T) {
	g := newGraphFixture()
	g.add("A", domain.Dependency{ProjectID: "B", Kind: domain.DependencyRequired})
	g.projects["B"] = domain.Project{Provider: domain.ProviderModrinth, ID: "B", Slug: "b-slug", Type: domain.ProjectMod}

	plan := g.resolve(t, "A")
	assert.Empty(t, plan.Nodes)
	require.Len(t, plan.Warnings, 1)
	assert.True(t, errors.Is(plan.Warnings[0], domain.ErrNoCompatibleVersion))
}

func TestResolver_ContextCancellation(t *testing.T) {
	g := newGraphFixture()
	g.add("A", domain.Dependency{ProjectID: "B", Kind: domain.DependencyRequired})
	g.add("B")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	root := g.projects["A"]
	rootVersion := g.versions["A"]
	_, err := g.resolver().Resolve(ctx, &root, &rootVersion, "1.20.1", "fabric")
	assert.ErrorIs(t, err, context.Canceled)
}
