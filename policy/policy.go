// Package policy declares the bridge-ID acceptance hook the embedding
// application supplies (§6). The core never hardcodes which bridge IDs are
// canonical or synthetic/test; it only consumes this narrow interface.
package policy

// BridgeIDPolicy is implemented by the embedding application. The core asks
// it two questions: is this ID canonical, and is it accepted at all
// (canonical or synthetic/test)?
type BridgeIDPolicy interface {
	// IsValidBridgeID reports whether id is in the canonical set.
	IsValidBridgeID(id string) bool

	// IsAcceptedBridgeID reports whether id is canonical, or — when
	// allowSynthetic is true — also accepted as a synthetic/test ID.
	IsAcceptedBridgeID(id string, allowSynthetic bool) bool

	// AllCanonicalIDs yields every canonical bridge ID, in the iterator
	// style introduced by Go 1.23's range-over-func (the source interface's
	// Iterator<String>).
	AllCanonicalIDs() func(yield func(string) bool)
}

// Static is a fixed-set BridgeIDPolicy backed by two string sets, convenient
// for tests and for small embedding applications that don't need a live
// lookup service.
type Static struct {
	canonical map[string]struct{}
	synthetic map[string]struct{}
}

// NewStatic builds a Static policy from canonical and synthetic/test ID
// lists.
func NewStatic(canonical, synthetic []string) *Static {
	s := &Static{
		canonical: make(map[string]struct{}, len(canonical)),
		synthetic: make(map[string]struct{}, len(synthetic)),
	}
	for _, id := range canonical {
		s.canonical[id] = struct{}{}
	}
	for _, id := range synthetic {
		s.synthetic[id] = struct{}{}
	}
	return s
}

// IsValidBridgeID reports whether id is canonical.
func (s *Static) IsValidBridgeID(id string) bool {
	_, ok := s.canonical[id]
	return ok
}

// IsAcceptedBridgeID reports whether id is canonical or, when allowSynthetic
// is true, a known synthetic/test ID.
func (s *Static) IsAcceptedBridgeID(id string, allowSynthetic bool) bool {
	if s.IsValidBridgeID(id) {
		return true
	}
	if !allowSynthetic {
		return false
	}
	_, ok := s.synthetic[id]
	return ok
}

// AllCanonicalIDs yields every canonical ID in no particular order; callers
// needing deterministic order should sort the drained slice themselves.
func (s *Static) AllCanonicalIDs() func(yield func(string) bool) {
	return func(yield func(string) bool) {
		for id := range s.canonical {
			if !yield(id) {
				return
			}
		}
	}
}
