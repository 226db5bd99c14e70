package graph

import (
	"math"
	"sort"

	"github.com/plm/bridge-routing-engine/policy"
)

// Graph is the immutable, validated directed road graph. Construct it with
// Build; there is no exported way to mutate a Graph afterward.
type Graph struct {
	nodes       map[NodeID]*Node
	edges       []*Edge
	outAdj      map[NodeID][]*Edge // ordered by (To,From) for determinism
	inAdj       map[NodeID][]*Edge
	bridgeIndex map[string][]*Edge
	nodeOrder   []NodeID // sorted, for deterministic full-graph iteration
}

// ValidationResult is the structured outcome of graph construction (§3).
type ValidationResult struct {
	IsValid     bool
	Errors      []string
	Warnings    []string
	NodeCount   int
	EdgeCount   int
	BridgeCount int
}

// Build validates nodes and edges per §3's construction rules and, if no
// error is found, returns an immutable Graph plus a ValidationResult with
// IsValid=true. If any error is found, Build returns a nil Graph, the
// ValidationResult describing every problem found, and a non-nil error
// wrapping rterr.ErrInvalidGraph.
//
// bridgePolicy may be nil; a nil policy rejects every bridge edge (every
// bridge_id is "not accepted"), which is almost certainly not what a caller
// wants, so passing nil is only useful for graphs with no bridges.
func Build(nodes []Node, edges []Edge, bridgePolicy policy.BridgeIDPolicy) (*Graph, ValidationResult, error) {
	res := ValidationResult{}

	nodeMap := make(map[NodeID]*Node, len(nodes))
	for i := range nodes {
		n := nodes[i]
		if n.ID == "" {
			res.Errors = append(res.Errors, "node has empty ID")
			continue
		}
		if _, dup := nodeMap[n.ID]; dup {
			res.Errors = append(res.Errors, "duplicate node ID: "+string(n.ID))
			continue
		}
		cp := n
		nodeMap[n.ID] = &cp
	}

	seenPairs := make(map[[2]NodeID]struct{}, len(edges))
	validEdges := make([]*Edge, 0, len(edges))

	for i := range edges {
		e := edges[i]
		if e.From == e.To {
			res.Errors = append(res.Errors, "self-loop not allowed: "+string(e.From))
			continue
		}
		if _, ok := nodeMap[e.From]; !ok {
			res.Errors = append(res.Errors, "edge references unknown from-node: "+string(e.From))
			continue
		}
		if _, ok := nodeMap[e.To]; !ok {
			res.Errors = append(res.Errors, "edge references unknown to-node: "+string(e.To))
			continue
		}
		if !isFinitePositive(e.TravelTimeSeconds) {
			res.Errors = append(res.Errors, "edge "+string(e.From)+"->"+string(e.To)+" has non-positive or non-finite travel time")
			continue
		}
		if !isFinitePositive(e.DistanceMeters) {
			res.Errors = append(res.Errors, "edge "+string(e.From)+"->"+string(e.To)+" has non-positive or non-finite distance")
			continue
		}
		if e.IsBridge != (e.BridgeID != "") {
			res.Errors = append(res.Errors, "edge "+string(e.From)+"->"+string(e.To)+" has is_bridge inconsistent with bridge_id presence")
			continue
		}
		if e.IsBridge {
			accepted := bridgePolicy != nil && bridgePolicy.IsAcceptedBridgeID(e.BridgeID, true)
			if !accepted {
				res.Errors = append(res.Errors, "edge "+string(e.From)+"->"+string(e.To)+" carries unaccepted bridge_id "+e.BridgeID)
				continue
			}
		}
		pair := [2]NodeID{e.From, e.To}
		if _, dup := seenPairs[pair]; dup {
			res.Errors = append(res.Errors, "duplicate edge between ordered pair "+string(e.From)+"->"+string(e.To))
			continue
		}
		seenPairs[pair] = struct{}{}

		cp := e
		validEdges = append(validEdges, &cp)
	}

	res.NodeCount = len(nodeMap)
	res.EdgeCount = len(validEdges)
	for _, e := range validEdges {
		if e.IsBridge {
			res.BridgeCount++
		}
	}
	res.IsValid = len(res.Errors) == 0

	if !res.IsValid {
		return nil, res, errInvalidGraphf("%d error(s) found during construction", len(res.Errors))
	}

	g := &Graph{
		nodes:       nodeMap,
		edges:       validEdges,
		outAdj:      make(map[NodeID][]*Edge),
		inAdj:       make(map[NodeID][]*Edge),
		bridgeIndex: make(map[string][]*Edge),
	}
	for id := range nodeMap {
		g.nodeOrder = append(g.nodeOrder, id)
	}
	sort.Slice(g.nodeOrder, func(i, j int) bool { return g.nodeOrder[i] < g.nodeOrder[j] })

	for _, e := range validEdges {
		g.outAdj[e.From] = append(g.outAdj[e.From], e)
		g.inAdj[e.To] = append(g.inAdj[e.To], e)
		if e.IsBridge {
			g.bridgeIndex[e.BridgeID] = append(g.bridgeIndex[e.BridgeID], e)
		}
	}
	for id, list := range g.outAdj {
		sortEdges(list)
		g.outAdj[id] = list
	}
	for id, list := range g.inAdj {
		sortEdges(list)
		g.inAdj[id] = list
	}

	return g, res, nil
}

func sortEdges(edges []*Edge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].To != edges[j].To {
			return edges[i].To < edges[j].To
		}
		return edges[i].From < edges[j].From
	})
}

func isFinitePositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// Validate recomputes a ValidationResult from the graph's current (already
// validated) state. It always returns IsValid=true for a Graph obtained via
// Build, by construction.
func (g *Graph) Validate() ValidationResult {
	bridgeCount := 0
	for _, e := range g.edges {
		if e.IsBridge {
			bridgeCount++
		}
	}
	return ValidationResult{
		IsValid:     true,
		NodeCount:   len(g.nodes),
		EdgeCount:   len(g.edges),
		BridgeCount: bridgeCount,
	}
}

// Contains reports whether node id exists in the graph.
func (g *Graph) Contains(id NodeID) bool {
	_, ok := g.nodes[id]
	return ok
}

// Node returns the node with the given ID, or nil if absent.
func (g *Graph) Node(id NodeID) *Node { return g.nodes[id] }

// OutgoingEdges returns node's outgoing edges, ordered by (To, From).
func (g *Graph) OutgoingEdges(node NodeID) []*Edge { return g.outAdj[node] }

// IncomingEdges returns node's incoming edges, ordered by (To, From).
func (g *Graph) IncomingEdges(node NodeID) []*Edge { return g.inAdj[node] }

// EdgesForBridge returns every edge tagged with the given bridge ID.
func (g *Graph) EdgesForBridge(bridgeID string) []*Edge { return g.bridgeIndex[bridgeID] }

// BridgeIDs returns every distinct bridge ID present in the graph, sorted.
func (g *Graph) BridgeIDs() []string {
	ids := make([]string, 0, len(g.bridgeIndex))
	for id := range g.bridgeIndex {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Edges returns every edge in the graph, in insertion order.
func (g *Graph) Edges() []*Edge { return g.edges }

// NodeIDs returns every node ID in the graph, sorted lexicographically.
func (g *Graph) NodeIDs() []NodeID { return g.nodeOrder }

// Signature returns the deterministic graph signature used by the
// enumerator's memoization cache key (§4.2): the sorted concatenation of
// edge tuples (from, to, travel_time, distance, is_bridge, bridge_id).
func (g *Graph) Signature() string {
	tuples := make([]string, len(g.edges))
	for i, e := range g.edges {
		tuples[i] = edgeTuple(e)
	}
	sort.Strings(tuples)
	return joinWithSep(tuples, "\x1e")
}

func edgeTuple(e *Edge) string {
	bridge := "0"
	if e.IsBridge {
		bridge = "1"
	}
	return string(e.From) + "\x1f" + string(e.To) + "\x1f" +
		floatKey(e.TravelTimeSeconds) + "\x1f" + floatKey(e.DistanceMeters) + "\x1f" +
		bridge + "\x1f" + e.BridgeID
}

func floatKey(v float64) string {
	// A stable, sortable textual encoding is sufficient here; the signature
	// is only ever compared for equality, never ordered numerically.
	return fmtFloat(v)
}
