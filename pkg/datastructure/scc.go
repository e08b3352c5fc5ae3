package datastructure

import (
	"log"

	"github.com/MarioFengW/route-planning/pkg/util"
)

// StronglyConnectedComponents runs Kosaraju's algorithm over the directed
// road network. Components come out in condensation topological order.
func (g *Graph) StronglyConnectedComponents() [][]int64 {
	reverseAdj := make(map[int64][]int64, len(g.vertices))
	for from, edges := range g.adjacency {
		for _, e := range edges {
			reverseAdj[e.To] = append(reverseAdj[e.To], from)
		}
	}

	order := make([]int64, 0, len(g.vertices))
	visited := make(map[int64]bool, len(g.vertices))
	for _, id := range g.sortedIDs {
		if !visited[id] {
			g.dfs(id, &order, visited, nil)
		}
	}

	order = util.ReverseG(order)

	visited = make(map[int64]bool, len(g.vertices))
	components := make([][]int64, 0)
	for _, v := range order {
		if !visited[v] {
			component := make([]int64, 0)
			g.dfs(v, &component, visited, reverseAdj)
			components = append(components, component)
		}
	}

	log.Printf("strongly connected components count: %d", len(components))
	return components
}

func (g *Graph) dfs(v int64, output *[]int64, visited map[int64]bool, reverseAdj map[int64][]int64) {
	visited[v] = true

	if reverseAdj == nil {
		for _, e := range g.adjacency[v] {
			if !visited[e.To] {
				g.dfs(e.To, output, visited, reverseAdj)
			}
		}
	} else {
		for _, u := range reverseAdj[v] {
			if !visited[u] {
				g.dfs(u, output, visited, reverseAdj)
			}
		}
	}

	*output = append(*output, v)
}

// LargestComponent builds a subgraph restricted to the biggest strongly
// connected component, so any two of its vertices can reach each other.
// Disconnected fragments of an osm extract would otherwise make most snapped
// query pairs unroutable.
func (g *Graph) LargestComponent() (*Graph, error) {
	components := g.StronglyConnectedComponents()
	if len(components) == 0 {
		return g, nil
	}

	largest := components[0]
	for _, component := range components[1:] {
		if len(component) > len(largest) {
			largest = component
		}
	}
	if len(largest) == len(g.vertices) {
		return g, nil
	}

	keep := make(map[int64]struct{}, len(largest))
	for _, id := range largest {
		keep[id] = struct{}{}
	}

	vertices := make([]Vertex, 0, len(largest))
	edges := make([]Edge, 0)
	for _, id := range g.sortedIDs {
		if _, ok := keep[id]; !ok {
			continue
		}
		vertices = append(vertices, g.vertices[id])
		for _, e := range g.adjacency[id] {
			if _, ok := keep[e.To]; ok {
				edges = append(edges, e)
			}
		}
	}

	log.Printf("restricted road network to largest component: %d of %d vertices",
		len(vertices), len(g.vertices))
	return NewGraph(vertices, edges)
}
