// pkg/airport/graph.go
// Copyright(c) 2024 airportsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package airport holds the static airport surface graph and the
// config/model/instance data loaded alongside it. None of it mutates once
// loaded: the planner, scheduler, and simulator packages only ever read
// from an *AirportGraph.
package airport

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/airportsim/surfaceops/pkg/util"
)

// VertexKind classifies a Vertex's role on the surface.
type VertexKind int

const (
	KindGate VertexKind = iota
	KindSpot
	KindIntersection
	KindRunway
)

// Vertex is a point on the airport surface graph.
type Vertex struct {
	ID       int
	Name     string
	Kind     VertexKind
	X, Y     float64
	OutEdges []int // indices into AirportGraph.Edges
}

// Edge is a directed taxi link between two vertices.
type Edge struct {
	ID       int
	Name     string
	U, V     int // vertex ids
	Length   float64
	SpeedCap float64 // 0 means unconstrained
}

// AirportGraph is the directed taxi-link graph. It is immutable after
// Load/Build: vertex and edge slices are never resized or reordered once
// construction finishes.
type AirportGraph struct {
	Vertices []Vertex
	Edges    []Edge

	byName    map[string]int // vertex name -> id
	edgeName  map[string]int // edge name -> id
	gates     []int
	runways   []int
	spots     []int
}

// rawNode/rawLink/rawGraphFile mirror the YAML shape of a pre-built graph
// file (the -graph flag) as well as of the individual -node/-link/-spot/
// -runway files used to synthesize one.
type rawNode struct {
	Name string  `yaml:"name"`
	Kind string  `yaml:"kind"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

type rawLink struct {
	Name     string  `yaml:"name"`
	From     string  `yaml:"from"`
	To       string  `yaml:"to"`
	Length   float64 `yaml:"length"`
	SpeedCap float64 `yaml:"speed_cap"`
}

type rawGraphFile struct {
	Nodes []rawNode `yaml:"nodes"`
	Links []rawLink `yaml:"links"`
}

func parseKind(s string) VertexKind {
	switch s {
	case "gate":
		return KindGate
	case "spot":
		return KindSpot
	case "runway":
		return KindRunway
	default:
		return KindIntersection
	}
}

// LoadGraph reads a single pre-built graph YAML file (the -graph flag).
func LoadGraph(path string) (*AirportGraph, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw rawGraphFile
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	return buildGraph(raw.Nodes, raw.Links)
}

// LoadGraphParts builds a graph from the separate -node/-link/-spot/
// -runway files the CLI accepts when -graph is absent. spotPath and
// runwayPath augment the node kinds read from nodePath: a name listed in
// spotPath or runwayPath overrides whatever kind the node file gave it.
func LoadGraphParts(nodePath, linkPath, spotPath, runwayPath string) (*AirportGraph, error) {
	nodeBytes, err := os.ReadFile(nodePath)
	if err != nil {
		return nil, err
	}
	var nodes struct {
		Nodes []rawNode `yaml:"nodes"`
	}
	if err := yaml.Unmarshal(nodeBytes, &nodes); err != nil {
		return nil, err
	}

	linkBytes, err := os.ReadFile(linkPath)
	if err != nil {
		return nil, err
	}
	var links struct {
		Links []rawLink `yaml:"links"`
	}
	if err := yaml.Unmarshal(linkBytes, &links); err != nil {
		return nil, err
	}

	override := func(path, kind string) error {
		if path == "" {
			return nil
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var names struct {
			Names []string `yaml:"names"`
		}
		if err := yaml.Unmarshal(b, &names); err != nil {
			return err
		}
		set := make(map[string]bool, len(names.Names))
		for _, n := range names.Names {
			set[n] = true
		}
		for i := range nodes.Nodes {
			if set[nodes.Nodes[i].Name] {
				nodes.Nodes[i].Kind = kind
			}
		}
		return nil
	}
	if err := override(spotPath, "spot"); err != nil {
		return nil, err
	}
	if err := override(runwayPath, "runway"); err != nil {
		return nil, err
	}

	return buildGraph(nodes.Nodes, links.Links)
}

// buildGraph assembles the graph from raw node/link records, accumulating
// every problem it finds via an ErrorLogger rather than bailing out at
// the first bad node or link, so a malformed graph file gets reported in
// one pass instead of fix-one-rerun-find-the-next.
func buildGraph(nodes []rawNode, links []rawLink) (*AirportGraph, error) {
	g := &AirportGraph{
		byName:   make(map[string]int, len(nodes)),
		edgeName: make(map[string]int, len(links)),
	}

	var el util.ErrorLogger
	el.Push("nodes")
	for _, n := range nodes {
		el.Push(n.Name)
		if _, dup := g.byName[n.Name]; dup {
			el.Error(ErrDuplicateVertex)
			el.Pop()
			continue
		}
		id := len(g.Vertices)
		g.byName[n.Name] = id
		kind := parseKind(n.Kind)
		g.Vertices = append(g.Vertices, Vertex{ID: id, Name: n.Name, Kind: kind, X: n.X, Y: n.Y})
		switch kind {
		case KindGate:
			g.gates = append(g.gates, id)
		case KindRunway:
			g.runways = append(g.runways, id)
		case KindSpot:
			g.spots = append(g.spots, id)
		}
		el.Pop()
	}
	el.Pop()

	el.Push("links")
	for _, l := range links {
		el.Push(l.Name)
		if _, dup := g.edgeName[l.Name]; dup {
			el.Error(ErrDuplicateEdge)
			el.Pop()
			continue
		}
		u, ok := g.byName[l.From]
		if !ok {
			el.Error(ErrUnknownVertex)
			el.Pop()
			continue
		}
		v, ok := g.byName[l.To]
		if !ok {
			el.Error(ErrUnknownVertex)
			el.Pop()
			continue
		}
		id := len(g.Edges)
		g.edgeName[l.Name] = id
		g.Edges = append(g.Edges, Edge{ID: id, Name: l.Name, U: u, V: v, Length: l.Length, SpeedCap: l.SpeedCap})
		g.Vertices[u].OutEdges = append(g.Vertices[u].OutEdges, id)
		el.Pop()
	}
	el.Pop()

	if el.HaveErrors() {
		return nil, errors.New(el.String())
	}
	return g, nil
}

// VertexByName returns the vertex id for name, or ErrUnknownVertex.
func (g *AirportGraph) VertexByName(name string) (int, error) {
	id, ok := g.byName[name]
	if !ok {
		return 0, ErrUnknownVertex
	}
	return id, nil
}

// EdgeByName returns the edge id for name, or ErrUnknownEdge.
func (g *AirportGraph) EdgeByName(name string) (int, error) {
	id, ok := g.edgeName[name]
	if !ok {
		return 0, ErrUnknownEdge
	}
	return id, nil
}

// EdgeBetween returns the id of the edge from u to v, if one exists.
func (g *AirportGraph) EdgeBetween(u, v int) (int, bool) {
	for _, eid := range g.Vertices[u].OutEdges {
		if g.Edges[eid].V == v {
			return eid, true
		}
	}
	return 0, false
}

// OutEdges returns the edge ids leaving vertex v.
func (g *AirportGraph) OutEdges(v int) []int {
	return g.Vertices[v].OutEdges
}

// Gates returns the vertex ids of all gate vertices, in load order.
func (g *AirportGraph) Gates() []int { return g.gates }

// Runways returns the vertex ids of all runway vertices, in load order.
func (g *AirportGraph) Runways() []int { return g.runways }

// Spots returns the vertex ids of all spot vertices, in load order.
func (g *AirportGraph) Spots() []int { return g.spots }
