package profile_test

import (
	"slices"
	"testing"

	"github.com/ardnew/varsub/profile"
)

func TestProfiler_StartNoMode(t *testing.T) {
	t.Parallel()

	// must not panic and must be stoppable more than once
	s := profile.Profiler{Path: t.TempDir()}.Start()
	s.Stop()
	s.Stop()
}

func TestProfiler_StartUnknownMode(t *testing.T) {
	t.Parallel()

	profile.Profiler{Mode: "bogus", Path: t.TempDir(), Quiet: true}.Start().Stop()
}

func TestModes(t *testing.T) {
	t.Parallel()

	modes := profile.Modes()

	if profile.Enabled() != (len(modes) > 0) {
		t.Errorf("Enabled() = %v with modes %v", profile.Enabled(), modes)
	}

	if !slices.IsSorted(modes) {
		t.Errorf("Modes() not sorted: %v", modes)
	}

	if profile.Enabled() && !slices.Contains(modes, "cpu") {
		t.Errorf("Modes() = %v, missing cpu", modes)
	}
}
