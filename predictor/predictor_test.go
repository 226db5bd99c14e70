package predictor

import (
	"math"
	"testing"

	"github.com/plm/bridge-routing-engine/feature"
)

func TestValidateBridgeIDRejectsEmpty(t *testing.T) {
	if err := ValidateBridgeID(""); err == nil {
		t.Fatal("expected error for empty bridge id")
	}
	if err := ValidateBridgeID("br1"); err != nil {
		t.Fatalf("unexpected error for valid bridge id: %v", err)
	}
}

func TestValidateFeaturesRejectsNonFinite(t *testing.T) {
	var v [feature.VectorLen]float64
	if err := ValidateFeatures(v); err != nil {
		t.Fatalf("unexpected error for zero vector: %v", err)
	}
	v[3] = math.NaN()
	if err := ValidateFeatures(v); err == nil {
		t.Fatal("expected error for NaN feature")
	}
	v[3] = math.Inf(1)
	if err := ValidateFeatures(v); err == nil {
		t.Fatal("expected error for Inf feature")
	}
}

func TestValidateBatchSize(t *testing.T) {
	if err := ValidateBatchSize(10, 32); err != nil {
		t.Fatalf("unexpected error within bound: %v", err)
	}
	if err := ValidateBatchSize(40, 32); err == nil {
		t.Fatal("expected error when batch size exceeds max")
	}
	if err := ValidateBatchSize(1000, 0); err != nil {
		t.Fatal("expected no limit when maxBatchSize is 0")
	}
}
