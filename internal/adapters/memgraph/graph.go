// Package memgraph holds a constructed weighted graph in memory: addressed
// nodes, addressed directed edges, and a per-node weight map. It is the
// container the graph builder writes into and the serialization boundary
// for downstream consumers.
package memgraph

import (
	"encoding/json"
	"sort"

	"slackgraph/internal/domain"
	"slackgraph/internal/ports"
)

// Graph implements ports.GraphSink. Adds are idempotent per address;
// SetNodeWeight overwrites.
type Graph struct {
	nodes   map[domain.NodeAddress]domain.Node
	edges   map[domain.EdgeAddress]domain.Edge
	weights map[domain.NodeAddress]float64
}

var _ ports.GraphSink = (*Graph)(nil)

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodes:   make(map[domain.NodeAddress]domain.Node),
		edges:   make(map[domain.EdgeAddress]domain.Edge),
		weights: make(map[domain.NodeAddress]float64),
	}
}

// AddNode records a node; re-adding the same address keeps one copy.
func (g *Graph) AddNode(n domain.Node) {
	g.nodes[n.Address] = n
}

// AddEdge records an edge; re-adding the same address keeps one copy.
func (g *Graph) AddEdge(e domain.Edge) {
	g.edges[e.Address] = e
}

// SetNodeWeight assigns (or overwrites) the weight of a node address.
func (g *Graph) SetNodeWeight(addr domain.NodeAddress, weight float64) {
	g.weights[addr] = weight
}

// NodeCount returns the number of distinct nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// NodeWeight returns the assigned weight of a node address, if any.
func (g *Graph) NodeWeight(addr domain.NodeAddress) (float64, bool) {
	w, ok := g.weights[addr]
	return w, ok
}

// Node returns the node stored at addr, if any.
func (g *Graph) Node(addr domain.NodeAddress) (domain.Node, bool) {
	n, ok := g.nodes[addr]
	return n, ok
}

// Nodes returns all nodes sorted by address, so repeated builds of the
// same mirror produce identical listings.
func (g *Graph) Nodes() []domain.Node {
	nodes := make([]domain.Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Address < nodes[j].Address })
	return nodes
}

// Edges returns all edges sorted by address.
func (g *Graph) Edges() []domain.Edge {
	edges := make([]domain.Edge, 0, len(g.edges))
	for _, e := range g.edges {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].Address < edges[j].Address })
	return edges
}

type nodeJSON struct {
	Address     string   `json:"address"`
	Description string   `json:"description"`
	TimestampMs int64    `json:"timestampMs"`
	Weight      *float64 `json:"weight,omitempty"`
}

type edgeJSON struct {
	Address     string `json:"address"`
	TimestampMs int64  `json:"timestampMs"`
	Src         string `json:"src"`
	Dst         string `json:"dst"`
}

type graphJSON struct {
	Nodes []nodeJSON `json:"nodes"`
	Edges []edgeJSON `json:"edges"`
}

// MarshalJSON serializes the graph as sorted node and edge lists, the
// shape most graph consumers and visualizers expect.
func (g *Graph) MarshalJSON() ([]byte, error) {
	out := graphJSON{
		Nodes: make([]nodeJSON, 0, len(g.nodes)),
		Edges: make([]edgeJSON, 0, len(g.edges)),
	}
	for _, n := range g.Nodes() {
		jn := nodeJSON{
			Address:     string(n.Address),
			Description: n.Description,
			TimestampMs: n.TimestampMs,
		}
		if w, ok := g.weights[n.Address]; ok {
			weight := w
			jn.Weight = &weight
		}
		out.Nodes = append(out.Nodes, jn)
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, edgeJSON{
			Address:     string(e.Address),
			TimestampMs: e.TimestampMs,
			Src:         string(e.Src),
			Dst:         string(e.Dst),
		})
	}
	return json.Marshal(out)
}
