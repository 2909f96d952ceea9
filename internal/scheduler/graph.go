package scheduler

import "github.com/nishant152030/Project-manager-2/pkg/models"

// taskGraph is the dependency graph of one request, indexed by input position.
type taskGraph struct {
	// titles holds task titles in request order.
	titles []string
	// inDegree counts the distinct unscheduled dependencies of each task.
	inDegree []int
	// dependents lists, for each task, the tasks that wait on it.
	dependents [][]int
}

// buildGraph validates titles and references and returns the graph.
// Titles must be unique. Every dependency must name a task in the request;
// the first offending (task, dependency) pair in input order is reported.
// Repeated dependencies within one task count once.
func buildGraph(tasks []models.TaskSpec) (*taskGraph, error) {
	n := len(tasks)
	index := make(map[string]int, n)
	titles := make([]string, n)

	for i, t := range tasks {
		if _, dup := index[t.Title]; dup {
			return nil, &DuplicateTitleError{Title: t.Title}
		}
		index[t.Title] = i
		titles[i] = t.Title
	}

	for _, t := range tasks {
		for _, dep := range t.Dependencies {
			if _, ok := index[dep]; !ok {
				return nil, &UnknownDependencyError{Task: t.Title, Dependency: dep}
			}
		}
	}

	g := &taskGraph{
		titles:     titles,
		inDegree:   make([]int, n),
		dependents: make([][]int, n),
	}
	for i, t := range tasks {
		seen := make(map[int]struct{}, len(t.Dependencies))
		for _, dep := range t.Dependencies {
			j := index[dep]
			if _, ok := seen[j]; ok {
				continue
			}
			seen[j] = struct{}{}
			g.inDegree[i]++
			g.dependents[j] = append(g.dependents[j], i)
		}
	}

	return g, nil
}

// edgeCount returns the number of distinct dependency edges.
func (g *taskGraph) edgeCount() int {
	total := 0
	for _, d := range g.dependents {
		total += len(d)
	}
	return total
}
