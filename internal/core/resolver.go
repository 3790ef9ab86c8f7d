package core

import (
	"context"
	"fmt"
	"sort"

	"mcw/internal/domain"
)

// Resolver expands a version's declared dependencies into a flat,
// deduplicated install plan. The three callbacks are the only contact with
// the outside world, which keeps the walk testable against synthetic graphs.
//
// Known gap: when the same project is required through two paths at
// incompatible versions, the first resolved version wins; only the
// required/optional classification is reconciled.
type Resolver struct {
	// FetchProject loads a dependency's project metadata by id
	FetchProject func(ctx context.Context, projectID string) (*domain.Project, error)
	// FetchCompatibleVersion picks the version of project to install for
	// the given request, or fails with domain.ErrNoCompatibleVersion
	FetchCompatibleVersion func(ctx context.Context, project *domain.Project, gameVersion, loader string) (*domain.Version, error)
	// IsInstalled returns the installed record for project, or nil
	IsInstalled func(project *domain.Project) *domain.InstalledRecord
}

// Plan is the outcome of a dependency resolution. Nodes are ordered deepest
// dependency first so installing front to back satisfies each node before
// its dependents. Warnings carry per-branch fetch failures that were skipped
// without aborting the walk.
type Plan struct {
	Nodes    []domain.ResolvedDependency
	Warnings []error
}

// Required returns the nodes classified as required and not yet installed
func (p *Plan) Required() []domain.ResolvedDependency {
	var out []domain.ResolvedDependency
	for _, n := range p.Nodes {
		if n.Kind == domain.DependencyRequired && !n.AlreadyInstalled {
			out = append(out, n)
		}
	}
	return out
}

// depNode is the resolver's mutable bookkeeping for one discovered project.
// children holds the actionable declarations of the resolved version so a
// later optional→required promotion can be re-propagated.
type depNode struct {
	project   domain.Project
	version   *domain.Version
	kind      domain.DependencyKind
	installed bool
	children  []domain.Dependency
	depth     int
	seq       int
}

// workItem is one pending dependency declaration with the classification of
// the node that declared it.
type workItem struct {
	decl       domain.Dependency
	parentKind domain.DependencyKind
	depth      int
}

// Resolve walks root's dependency graph breadth-first with an explicit
// worklist (bounded against malformed or adversarial graphs) and an owned
// visited map. The root's own id and slug are pre-seeded so self-cycles and
// back-edges to the root never produce a node. A dependency reached as
// required after being recorded as optional is promoted, and the promotion
// propagates through its already-recorded children. Visited state lives only
// for the duration of the call.
func (r *Resolver) Resolve(ctx context.Context, root *domain.Project, rootVersion *domain.Version, gameVersion, loader string) (*Plan, error) {
	plan := &Plan{}

	// nil marks "seen but nothing to install": the root itself and
	// branches whose metadata fetch failed.
	visited := make(map[string]*depNode)
	visited[root.ID] = nil
	if root.Slug != "" {
		visited[root.Slug] = nil
	}

	var nodes []*depNode
	var queue []workItem
	for _, d := range rootVersion.Dependencies {
		if d.Kind.Actionable() {
			queue = append(queue, workItem{decl: d, parentKind: domain.DependencyRequired, depth: 1})
		}
	}

	seq := 0
	for len(queue) > 0 {
		select {
		case <-ctx.Done():
			return plan, ctx.Err()
		default:
		}

		item := queue[0]
		queue = queue[1:]

		kind := item.decl.Kind
		if item.parentKind == domain.DependencyOptional {
			// A required dependency of an optional mod is itself only
			// optional unless something else requires it
			kind = domain.DependencyOptional
		}

		if node, seen := visited[item.decl.ProjectID]; seen {
			if node == nil {
				continue
			}
			if kind == domain.DependencyRequired && node.kind == domain.DependencyOptional {
				node.kind = domain.DependencyRequired
				for _, child := range node.children {
					queue = append(queue, workItem{decl: child, parentKind: domain.DependencyRequired, depth: node.depth + 1})
				}
			}
			continue
		}
		visited[item.decl.ProjectID] = nil

		project, err := r.FetchProject(ctx, item.decl.ProjectID)
		if err != nil {
			plan.Warnings = append(plan.Warnings, fmt.Errorf("dependency %s: %w", item.decl.ProjectID, err))
			continue
		}

		node := &depNode{project: *project, kind: kind, depth: item.depth, seq: seq}
		seq++
		visited[item.decl.ProjectID] = node
		if project.Slug != "" {
			visited[project.Slug] = node
		}

		if rec := r.IsInstalled(project); rec != nil {
			node.installed = true
			nodes = append(nodes, node)
			continue
		}

		version, err := r.FetchCompatibleVersion(ctx, project, gameVersion, loader)
		if err != nil {
			plan.Warnings = append(plan.Warnings, fmt.Errorf("dependency %s (%s): %w", project.Slug, item.decl.ProjectID, err))
			visited[item.decl.ProjectID] = nil
			if project.Slug != "" {
				visited[project.Slug] = nil
			}
			continue
		}

		node.version = version
		for _, child := range version.Dependencies {
			if !child.Kind.Actionable() {
				continue
			}
			node.children = append(node.children, child)
			queue = append(queue, workItem{decl: child, parentKind: node.kind, depth: item.depth + 1})
		}
		nodes = append(nodes, node)
	}

	// Deepest dependencies first so a required node further up never
	// re-installs something a leaf already provided
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].depth != nodes[j].depth {
			return nodes[i].depth > nodes[j].depth
		}
		return nodes[i].seq < nodes[j].seq
	})

	for _, n := range nodes {
		plan.Nodes = append(plan.Nodes, domain.ResolvedDependency{
			Project:          n.project,
			Version:          n.version,
			Kind:             n.kind,
			AlreadyInstalled: n.installed,
		})
	}
	return plan, nil
}
