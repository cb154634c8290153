// elMotif: tools for selecting DNA sequence motifs and motif clusters.
// Copyright (c) 2026 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elmotif/blob/master/LICENSE.txt>.

/*
Package mcluster partitions a motif similarity graph into motif
clusters (mclusters).

Nodes are motif identifiers of the form motif_<group>_<index>, where
the group token names the training set a motif was discovered in.
An mcluster is a connected component of the graph whose motifs come
from at least a given number of distinct groups.
*/
package mcluster

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"github.com/exascience/elmotif/utils"
)

type edge struct {
	u, v int
}

func makeEdge(u, v int) edge {
	if u > v {
		u, v = v, u
	}
	return edge{u, v}
}

// A Graph is an undirected graph with string nodes. Nodes are kept
// in the order in which they were first added.
type Graph struct {
	nodes     []string
	lines     []int
	index     map[string]int
	adjacent  [][]int
	edges     map[edge]struct{}
	selfLoops map[int]struct{}
}

// NewGraph allocates and initializes an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		index:     make(map[string]int),
		edges:     make(map[edge]struct{}),
		selfLoops: make(map[int]struct{}),
	}
}

func (g *Graph) addNode(node string, line int) int {
	if i, found := g.index[node]; found {
		return i
	}
	i := len(g.nodes)
	g.index[node] = i
	g.nodes = append(g.nodes, node)
	g.lines = append(g.lines, line)
	g.adjacent = append(g.adjacent, nil)
	return i
}

func (g *Graph) addEdge(u, v string, line int) {
	i, j := g.addNode(u, line), g.addNode(v, line)
	if i == j {
		g.selfLoops[i] = struct{}{}
		return
	}
	e := makeEdge(i, j)
	if _, found := g.edges[e]; found {
		return
	}
	g.edges[e] = struct{}{}
	g.adjacent[i] = append(g.adjacent[i], j)
	g.adjacent[j] = append(g.adjacent[j], i)
}

// AddNode adds a node without edges, unless it already exists.
func (g *Graph) AddNode(node string) {
	g.addNode(node, 0)
}

// AddEdge adds an undirected edge, and its nodes if necessary.
// Duplicate edges are ignored.
func (g *Graph) AddEdge(u, v string) {
	g.addEdge(u, v, 0)
}

// Nodes returns the nodes in the order they were added.
func (g *Graph) Nodes() []string {
	return append([]string(nil), g.nodes...)
}

// NumberOfNodes returns the number of nodes.
func (g *Graph) NumberOfNodes() int {
	return len(g.nodes)
}

// NumberOfEdges returns the number of edges, including self-loops.
func (g *Graph) NumberOfEdges() int {
	return len(g.edges) + len(g.selfLoops)
}

// NumberOfSelfLoops returns the number of edges from a node to itself.
func (g *Graph) NumberOfSelfLoops() int {
	return len(g.selfLoops)
}

// HasEdge reports whether u and v are connected by an edge.
func (g *Graph) HasEdge(u, v string) bool {
	i, found := g.index[u]
	if !found {
		return false
	}
	j, found := g.index[v]
	if !found {
		return false
	}
	if i == j {
		_, found = g.selfLoops[i]
		return found
	}
	_, found = g.edges[makeEdge(i, j)]
	return found
}

// RemoveSelfLoops removes all edges from a node to itself, and
// returns how many were removed. The nodes stay in the graph.
func (g *Graph) RemoveSelfLoops() int {
	n := len(g.selfLoops)
	g.selfLoops = make(map[int]struct{})
	return n
}

// A Component is a connected component of a Graph.
type Component struct {
	// Nodes are in the order they were added to the graph.
	Nodes []string
}

// Components returns the connected components of the graph. Components
// are discovered by visiting the nodes in the order they were added.
func (g *Graph) Components() []Component {
	var components []Component
	visited := bitset.New(uint(len(g.nodes)))
	for start := range g.nodes {
		if visited.Test(uint(start)) {
			continue
		}
		visited.Set(uint(start))
		members := []int{start}
		for next := 0; next < len(members); next++ {
			for _, neighbor := range g.adjacent[members[next]] {
				if !visited.Test(uint(neighbor)) {
					visited.Set(uint(neighbor))
					members = append(members, neighbor)
				}
			}
		}
		sort.Ints(members)
		nodes := make([]string, len(members))
		for i, member := range members {
			nodes[i] = g.nodes[member]
		}
		components = append(components, Component{Nodes: nodes})
	}
	return components
}

// GroupToken returns the group token of a motif identifier, the second
// underscore-delimited field. For example, the group of motif_01_05
// is 01.
func GroupToken(node string) (string, error) {
	fields := strings.SplitN(node, "_", 3)
	if len(fields) < 2 {
		return "", fmt.Errorf("node %v is not of the form motif_<group>_<index>", node)
	}
	return fields[1], nil
}

// Groups returns the distinct group tokens of the component's nodes,
// in order of first occurrence.
func (c Component) Groups() ([]string, error) {
	var groups []string
	seen := make(map[string]bool)
	for _, node := range c.Nodes {
		group, err := GroupToken(node)
		if err != nil {
			return nil, err
		}
		if !seen[group] {
			seen[group] = true
			groups = append(groups, group)
		}
	}
	return groups, nil
}

func (g *Graph) checkNodes(nodes []string) error {
	for _, node := range nodes {
		if _, err := GroupToken(node); err != nil {
			return &utils.FormatError{Line: g.lines[g.index[node]], Msg: err.Error()}
		}
	}
	return nil
}

// Clusters removes all self-loops and returns the connected
// components with at least threshold distinct groups, in discovery
// order. A node that is not a valid motif identifier is reported as
// a *utils.FormatError.
func (g *Graph) Clusters(threshold int) ([]Component, error) {
	g.RemoveSelfLoops()
	var clusters []Component
	for _, component := range g.Components() {
		groups, err := component.Groups()
		if err != nil {
			return nil, g.checkNodes(component.Nodes)
		}
		if len(groups) >= threshold {
			clusters = append(clusters, component)
		}
	}
	return clusters, nil
}
