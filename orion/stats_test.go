package orion

import (
	"testing"
	"time"
)

func TestFrameTimes(t *testing.T) {
	var times FrameTimes

	if times.FPS() != 0 {
		t.Fatalf("expected no fps without frames")
	}

	start := time.Unix(0, 0)

	var reports int
	for idx := range 120 {
		if times.tickAt(start.Add(time.Duration(idx) * 10 * time.Millisecond)) {
			reports++
		}
	}

	if reports != 2 {
		t.Fatalf("expected two reports, got %d", reports)
	}

	if times.FrameCount != 120 {
		t.Fatalf("expected 120 frames, got %d", times.FrameCount)
	}

	if times.AverageDuration != 10*time.Millisecond || times.MaxDuration != 10*time.Millisecond {
		t.Fatalf("unexpected durations: avg=%s max=%s", times.AverageDuration, times.MaxDuration)
	}

	if fps := times.FPS(); fps < 99.9 || fps > 100.1 {
		t.Fatalf("expected 100 fps, got %f", fps)
	}
}
