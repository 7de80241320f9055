package clock

import (
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	clock := &RealClock{}

	before := time.Now()
	actual := clock.Now()
	after := time.Now()

	if actual.Before(before) || actual.After(after) {
		t.Errorf("RealClock.Now() returned time outside expected range: got %v, expected between %v and %v", actual, before, after)
	}
}

func TestStepClock_Now(t *testing.T) {
	start := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		step  time.Duration
		calls int
		want  time.Time
	}{
		{"first reading is start", time.Second, 1, start},
		{"advances by step", time.Second, 3, start.Add(2 * time.Second)},
		{"zero step stays fixed", 0, 5, start},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := NewStepClock(start, tt.step)
			var got time.Time
			for i := 0; i < tt.calls; i++ {
				got = clock.Now()
			}
			if !got.Equal(tt.want) {
				t.Errorf("after %d calls Now() = %v, want %v", tt.calls, got, tt.want)
			}
		})
	}
}
