// Package rterr defines the closed error taxonomy shared by every component
// of the bridge routing engine (graph, enumpath, eta, scorer, predictor).
//
// Each sentinel below is a tagged variant with a fixed recovery policy,
// documented on the variant itself. Callers should match with errors.Is
// against the sentinel, not against formatted message text.
package rterr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidGraph is fatal at graph construction: the supplied nodes or
	// edges violate an invariant (dangling endpoint, non-positive weight,
	// bridge-id mismatch, duplicate ordered edge).
	ErrInvalidGraph = errors.New("rterr: invalid graph")

	// ErrInvalidPath indicates a route failed contiguity validation or has
	// fewer than two nodes. The affected route is dropped from batch results.
	ErrInvalidPath = errors.New("rterr: invalid path")

	// ErrNodeNotFound indicates an operation referenced a node absent from
	// the graph. Fatal for the call that raised it.
	ErrNodeNotFound = errors.New("rterr: node not found")

	// ErrNoPathExists is recoverable: callers may return an empty result.
	ErrNoPathExists = errors.New("rterr: no path exists")

	// ErrInvalidConfiguration is fatal at construction time.
	ErrInvalidConfiguration = errors.New("rterr: invalid configuration")

	// ErrPredictionFailed is a per-route failure in batch scoring; other
	// routes proceed.
	ErrPredictionFailed = errors.New("rterr: prediction failed")

	// ErrFeatureGenerationFailed carries the same per-route recovery policy
	// as ErrPredictionFailed.
	ErrFeatureGenerationFailed = errors.New("rterr: feature generation failed")

	// ErrEmptyPathSet is raised when batch scoring is invoked with no input.
	ErrEmptyPathSet = errors.New("rterr: empty path set")

	// ErrNumericalError surfaces when aggregation produces a non-finite or
	// out-of-range probability.
	ErrNumericalError = errors.New("rterr: numerical error")

	// ErrUnsupportedBridges is informational; the engine never returns it by
	// default (unsupported bridges degrade to a default probability), but it
	// is available for callers that want to detect the condition explicitly.
	ErrUnsupportedBridges = errors.New("rterr: unsupported bridges")
)

// InvalidGraph wraps ErrInvalidGraph with a human-readable reason.
func InvalidGraph(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidGraph, reason)
}

// InvalidPath wraps ErrInvalidPath with a human-readable reason.
func InvalidPath(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidPath, reason)
}

// NodeNotFound wraps ErrNodeNotFound with the offending node ID.
func NodeNotFound(id string) error {
	return fmt.Errorf("%w: %q", ErrNodeNotFound, id)
}

// NoPathExists wraps ErrNoPathExists with the endpoints that could not be
// connected.
func NoPathExists(start, end string) error {
	return fmt.Errorf("%w: %q -> %q", ErrNoPathExists, start, end)
}

// InvalidConfiguration wraps ErrInvalidConfiguration with a reason.
func InvalidConfiguration(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, reason)
}

// PredictionFailed wraps ErrPredictionFailed around an optional cause,
// avoiding recursive wrapping if cause already carries the sentinel.
func PredictionFailed(reason string, cause error) error {
	if cause != nil {
		if errors.Is(cause, ErrPredictionFailed) {
			return cause
		}
		return fmt.Errorf("%w: %s: %v", ErrPredictionFailed, reason, cause)
	}
	return fmt.Errorf("%w: %s", ErrPredictionFailed, reason)
}

// FeatureGenerationFailed wraps ErrFeatureGenerationFailed with a reason.
func FeatureGenerationFailed(reason string) error {
	return fmt.Errorf("%w: %s", ErrFeatureGenerationFailed, reason)
}

// EmptyPathSet wraps ErrEmptyPathSet with a reason.
func EmptyPathSet(reason string) error {
	return fmt.Errorf("%w: %s", ErrEmptyPathSet, reason)
}

// NumericalError wraps ErrNumericalError with a reason.
func NumericalError(reason string) error {
	return fmt.Errorf("%w: %s", ErrNumericalError, reason)
}

// UnsupportedBridgesError carries the list of bridge IDs the predictor does
// not support, for callers that opt into detecting the condition via
// errors.As instead of the default default-probability degradation.
type UnsupportedBridgesError struct {
	IDs []string
}

func (e *UnsupportedBridgesError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnsupportedBridges, strings.Join(e.IDs, ", "))
}

func (e *UnsupportedBridgesError) Unwrap() error { return ErrUnsupportedBridges }

// EnumError is returned by the path enumerator; from EnumeratePaths it wraps
// one of ErrNodeNotFound, ErrNoPathExists, or ErrInvalidPath so callers can
// branch with errors.Is while still seeing the offending IDs in the message.
// The enumeration cache's encode/decode helpers also use it to wrap gob and
// flate errors.
type EnumError struct {
	Op    string // "enumerate_paths", "shortest_path", ...
	Cause error
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("rterr: %s: %v", e.Op, e.Cause)
}

func (e *EnumError) Unwrap() error { return e.Cause }

// NewEnumError wraps cause with the operation name that produced it.
func NewEnumError(op string, cause error) error {
	return &EnumError{Op: op, Cause: cause}
}
