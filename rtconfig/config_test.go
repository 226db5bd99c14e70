package rtconfig

import "testing"

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig() should validate cleanly, got %v", err)
	}
}

func TestValidateRejectsOutOfRangeProbability(t *testing.T) {
	c := DefaultConfig()
	c.Scoring.MinProbability = 1.5
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for out-of-range min_probability")
	}
}

func TestValidateRejectsInvertedBounds(t *testing.T) {
	c := DefaultConfig()
	c.Scoring.MinProbability = 0.9
	c.Scoring.MaxProbability = 0.1
	if err := c.Validate(); err == nil {
		t.Fatal("expected error when min_probability > max_probability")
	}
}

func TestValidateRejectsNonLogDomain(t *testing.T) {
	c := DefaultConfig()
	c.Scoring.UseLogDomain = false
	if err := c.Validate(); err == nil {
		t.Fatal("expected error when use_log_domain is disabled")
	}
}

func TestValidateRejectsNonPositiveBatchSize(t *testing.T) {
	c := DefaultConfig()
	c.Prediction.BatchSize = 0
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for non-positive batch_size")
	}
}
