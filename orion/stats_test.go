package orion

import (
	"testing"
	"time"
)

func TestFrameTimes_Tick(t *testing.T) {
	var times FrameTimes

	start := time.Unix(1000, 0)

	var reports int
	for frame := range 120 {
		if times.tick(start.Add(time.Duration(frame) * 10 * time.Millisecond)) {
			reports++
		}
	}

	if times.FrameCount != 120 {
		t.Errorf("FrameCount = %d, want 120", times.FrameCount)
	}

	if reports != 2 {
		t.Errorf("reported %d times, want 2", reports)
	}

	if times.AverageDuration != 10*time.Millisecond {
		t.Errorf("AverageDuration = %s, want 10ms", times.AverageDuration)
	}

	if times.Delta != 10*time.Millisecond {
		t.Errorf("Delta = %s, want 10ms", times.Delta)
	}

	if fps := times.FPS(); fps < 99.9 || fps > 100.1 {
		t.Errorf("FPS() = %f, want 100", fps)
	}
}

func TestFrameTimes_MaxDuration(t *testing.T) {
	var times FrameTimes

	now := time.Unix(1000, 0)
	for _, d := range []time.Duration{0, 5 * time.Millisecond, 40 * time.Millisecond, 5 * time.Millisecond} {
		now = now.Add(d)
		times.tick(now)
	}

	if times.MaxDuration != 40*time.Millisecond {
		t.Errorf("MaxDuration = %s, want 40ms", times.MaxDuration)
	}
}

func TestFrameTimes_FPSWithoutFrames(t *testing.T) {
	var times FrameTimes

	if fps := times.FPS(); fps != 0 {
		t.Errorf("FPS() = %f, want 0", fps)
	}
}
