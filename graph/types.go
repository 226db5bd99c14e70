// Package graph defines the directed road graph over which routes are
// enumerated and scored: Node, Edge, Graph, and RoutePath, plus Graph's
// validation and Dijkstra shortest-path contract (§3, §4.1).
//
// A Graph is immutable after construction and is shared by reference across
// every goroutine that uses it — no internal locking is needed because
// nothing ever mutates it post-build, matching §5's "Graph: immutable and
// shared by all routines after construction."
package graph

import "sort"

// NodeID is an opaque, hashable, totally ordered (lexicographic) node
// identifier. Lexicographic order is used wherever a deterministic tie-break
// is required.
type NodeID string

// Node is a vertex in the road graph. Equality and hashing are by ID only;
// Name/Lat/Lon are descriptive payload.
type Node struct {
	ID   NodeID
	Name string
	Lat  float64
	Lon  float64
}

// Edge is a directed connection between two nodes. Equality and hashing are
// by (From, To) only — the graph is a simple directed graph; parallel edges
// between the same ordered pair are rejected at construction.
type Edge struct {
	From              NodeID
	To                NodeID
	TravelTimeSeconds float64
	DistanceMeters    float64
	IsBridge          bool
	BridgeID          string // empty iff !IsBridge
}

// Key returns the (From, To) pair used for equality, hashing, and the
// graph's adjacency maps.
func (e *Edge) Key() (NodeID, NodeID) { return e.From, e.To }

// RoutePath is a contiguous sequence of nodes and connecting edges from an
// origin to a destination (§3). len(Nodes) == len(Edges)+1, n >= 2.
type RoutePath struct {
	Nodes            []NodeID
	Edges            []*Edge
	TotalTravelTime  float64
	TotalDistance    float64
	BridgeCount      int
}

// NewRoutePath builds a RoutePath from an ordered node/edge sequence,
// computing totals and validating contiguity (Invariant 1, §8).
func NewRoutePath(nodes []NodeID, edges []*Edge) (*RoutePath, error) {
	p := &RoutePath{Nodes: nodes, Edges: edges}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	for _, e := range edges {
		p.TotalTravelTime += e.TravelTimeSeconds
		p.TotalDistance += e.DistanceMeters
		if e.IsBridge {
			p.BridgeCount++
		}
	}
	return p, nil
}

// Validate checks the contiguity invariant: edges[i].From == nodes[i] and
// edges[i].To == nodes[i+1] for all i, and len(nodes) >= 2.
func (p *RoutePath) Validate() error {
	if len(p.Nodes) < 2 {
		return errInvalidPathf("route must have at least two nodes, got %d", len(p.Nodes))
	}
	if len(p.Edges) != len(p.Nodes)-1 {
		return errInvalidPathf("route has %d nodes but %d edges, want %d", len(p.Nodes), len(p.Edges), len(p.Nodes)-1)
	}
	for i, e := range p.Edges {
		if e.From != p.Nodes[i] || e.To != p.Nodes[i+1] {
			return errInvalidPathf("edge %d (%s->%s) does not connect nodes[%d]=%s to nodes[%d]=%s",
				i, e.From, e.To, i, p.Nodes[i], i+1, p.Nodes[i+1])
		}
	}
	return nil
}

// IdentityKey returns a string uniquely identifying this route by its node
// sequence only: equality and hashing for RoutePath are by the node sequence
// alone, never by edge weights or bridge metadata.
func (p *RoutePath) IdentityKey() string {
	return joinNodeIDs(p.Nodes)
}

func joinNodeIDs(nodes []NodeID) string {
	strs := make([]string, len(nodes))
	for i, n := range nodes {
		strs[i] = string(n)
	}
	return joinWithSep(strs, "\x1f")
}

func joinWithSep(strs []string, sep string) string {
	out := ""
	for i, s := range strs {
		if i > 0 {
			out += sep
		}
		out += s
	}
	return out
}

// sortedNodeIDs returns a new, sorted copy of ids for deterministic
// iteration and tie-breaking.
func sortedNodeIDs(ids []NodeID) []NodeID {
	out := make([]NodeID, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
