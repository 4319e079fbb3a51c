package logging

import "testing"

func TestNewProgressSampler(t *testing.T) {
	tests := []struct {
		name       string
		bucketSize float64
		wantSize   float64
	}{
		{"default bucket size for zero", 0, 10},
		{"default bucket size for negative", -1, 10},
		{"custom bucket size", 25, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewProgressSampler(tt.bucketSize)
			if s.bucketSize != tt.wantSize {
				t.Errorf("bucketSize = %v, want %v", s.bucketSize, tt.wantSize)
			}
			if s.lastBucket != -1 {
				t.Errorf("lastBucket = %d, want -1", s.lastBucket)
			}
		})
	}
}

func TestProgressSampler_NilSampler(t *testing.T) {
	var s *ProgressSampler
	if !s.ShouldLog(50, "render") {
		t.Error("ShouldLog on nil sampler should always return true")
	}
}

func TestProgressSampler_Buckets(t *testing.T) {
	s := NewProgressSampler(25)

	steps := []struct {
		percent float64
		want    bool
	}{
		{0, true},
		{10, false},
		{24.9, false},
		{25, true},
		{30, false},
		{75, true},
		{100, true},
		{150, false},
	}
	for _, step := range steps {
		if got := s.ShouldLog(step.percent, "render"); got != step.want {
			t.Fatalf("ShouldLog(%v) = %v, want %v", step.percent, got, step.want)
		}
	}
}

func TestProgressSampler_StageChangeResetsBuckets(t *testing.T) {
	s := NewProgressSampler(10)
	if !s.ShouldLog(50, "render") {
		t.Fatal("first event should log")
	}
	if s.ShouldLog(50, "render") {
		t.Fatal("repeat should not log")
	}
	if !s.ShouldLog(50, "verify") {
		t.Fatal("stage change should log")
	}
	if s.lastStage != "verify" {
		t.Fatalf("lastStage = %q, want verify", s.lastStage)
	}
	if s.ShouldLog(-1, "verify") {
		t.Fatal("unknown percent with same stage should not log")
	}
	if !s.ShouldLog(0, "render") {
		t.Fatal("returning to an earlier stage should log again")
	}
}
