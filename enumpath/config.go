// Package enumpath implements the §4.2 path enumerator: a DFS enumerator for
// small graphs, Yen's K-shortest-paths algorithm (adapted from
// engine/router/yen.go's spur-node construction) for larger ones, an
// Auto mode that picks between them, and a memoization cache keyed by the
// graph's signature plus the enumeration config.
package enumpath

import "github.com/plm/bridge-routing-engine/rterr"

// Mode selects which enumeration strategy EnumeratePaths uses.
type Mode int

const (
	// Auto picks DFS or Yen K-shortest based on graph size (§4.2's
	// "|V|>20 or |E|>50 or k_shortest<max_paths/2 selects Yen").
	Auto Mode = iota
	DFS
	YenKShortest
)

func (m Mode) String() string {
	switch m {
	case Auto:
		return "auto"
	case DFS:
		return "dfs"
	case YenKShortest:
		return "yen_k_shortest"
	default:
		return "unknown"
	}
}

// PathEnumConfig controls one EnumeratePaths call (§4.2).
type PathEnumConfig struct {
	Mode Mode

	// MaxPaths bounds the number of routes returned.
	MaxPaths int

	// MaxDepth bounds the number of edges a DFS-enumerated route may use.
	MaxDepth int

	// MaxTravelTime rejects any route whose total travel time exceeds it;
	// 0 means unbounded.
	MaxTravelTime float64

	// MaxTimeOverShortest rejects any route whose total travel time exceeds
	// the true shortest path's travel time by more than this many seconds;
	// 0 means unbounded.
	MaxTimeOverShortest float64

	// KShortestPaths is the K passed to Yen's algorithm when Mode selects it
	// (directly, or via Auto).
	KShortestPaths int

	AllowCycles bool

	// RandomSeed is not read by the enumeration algorithms; it only takes
	// part in the memoization cache key. Enumeration order is fully
	// deterministic (§4.2).
	RandomSeed uint64

	EnableCaching bool
}

// DefaultPathEnumConfig mirrors the scoring defaults' performance knobs.
func DefaultPathEnumConfig() PathEnumConfig {
	return PathEnumConfig{
		Mode:                Auto,
		MaxPaths:            10,
		MaxDepth:            12,
		MaxTravelTime:       0,
		MaxTimeOverShortest: 0,
		KShortestPaths:      10,
		AllowCycles:         false,
		RandomSeed:          0,
		EnableCaching:       true,
	}
}

// Validate enforces the constraints §4.2/§4.6 place on enumeration config.
func (c PathEnumConfig) Validate() error {
	if c.MaxPaths <= 0 {
		return rterr.InvalidConfiguration("enumpath.max_paths must be positive")
	}
	if c.MaxDepth <= 0 {
		return rterr.InvalidConfiguration("enumpath.max_depth must be positive")
	}
	if c.MaxTravelTime < 0 {
		return rterr.InvalidConfiguration("enumpath.max_travel_time must be non-negative")
	}
	if c.MaxTimeOverShortest < 0 {
		return rterr.InvalidConfiguration("enumpath.max_time_over_shortest must be non-negative")
	}
	if c.KShortestPaths <= 0 {
		return rterr.InvalidConfiguration("enumpath.k_shortest_paths must be positive")
	}
	return nil
}

// resolveMode applies the Auto heuristic of §4.2 against a graph's size.
func resolveMode(cfg PathEnumConfig, numNodes, numEdges int) Mode {
	if cfg.Mode != Auto {
		return cfg.Mode
	}
	if numNodes > 20 || numEdges > 50 || cfg.KShortestPaths < cfg.MaxPaths/2 {
		return YenKShortest
	}
	return DFS
}
