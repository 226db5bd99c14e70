package feature

import (
	"testing"
	"time"
)

func TestSeedDeterministic(t *testing.T) {
	s1 := Seed("br1", 42, 7)
	s2 := Seed("br1", 42, 7)
	if s1 != s2 {
		t.Fatal("Seed must be deterministic for identical inputs")
	}
}

func TestSeedVariesByBridgeID(t *testing.T) {
	s1 := Seed("br1", 42, 7)
	s2 := Seed("br2", 42, 7)
	if s1 == s2 {
		t.Fatal("expected different seeds for different bridge ids")
	}
}

func TestLCGFloat64InRange(t *testing.T) {
	lcg := NewLCG(Seed("br1", 0, 0))
	for i := 0; i < 1000; i++ {
		v := lcg.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64() out of [0,1): %v", v)
		}
	}
}

func TestTimeBucketPacking(t *testing.T) {
	cases := []struct {
		hour, minute int
		want         uint32
	}{
		{0, 0, 0},
		{0, 4, 0},
		{0, 5, 1},
		{1, 0, 12},
		{23, 55, 287},
	}
	for _, c := range cases {
		got := TimeBucket(c.hour, c.minute)
		if got != c.want {
			t.Errorf("TimeBucket(%d,%d) = %d, want %d", c.hour, c.minute, got, c.want)
		}
	}
}

func TestVectorDeterministic(t *testing.T) {
	et := time.Date(2026, 3, 5, 8, 30, 0, 0, time.UTC)
	ctx := RouteContext{EdgeTravelTimeSeconds: 30, EdgeDistanceMeters: 300, RouteTotalTravelTime: 600}

	v1 := Vector("br1", et, 99, ctx)
	v2 := Vector("br1", et, 99, ctx)
	if v1 != v2 {
		t.Fatal("Vector must be deterministic for identical inputs")
	}
}

func TestVectorTimeOfDayComponents(t *testing.T) {
	midnight := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	v := Vector("br1", midnight, 0, RouteContext{})
	if v[0] < -1e-9 || v[0] > 1e-9 {
		t.Errorf("sin(minuteOfDay) at midnight should be ~0, got %v", v[0])
	}
	if v[1] < 1-1e-9 {
		t.Errorf("cos(minuteOfDay) at midnight should be ~1, got %v", v[1])
	}
}
