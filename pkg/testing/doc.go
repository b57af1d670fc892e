// Package testing provides test support for surface trees and transition
// playback.
//
// # Deterministic Time
//
// Install a FakeClock so playback and lifecycle timestamps are controlled
// by the test:
//
//	clock := gantrytest.NewFakeClock()
//	prev := animation.SetClock(clock)
//	defer animation.SetClock(prev)
//
//	driver.Play(anim)
//	clock.Advance(200 * time.Millisecond)
//	driver.Step()
//
// # Snapshot Testing
//
// Capture a surface tree and compare it against a golden file:
//
//	snap := gantrytest.TreeSnapshot(host)
//	snap.MatchesFile(t, "testdata/stack_pushed.snapshot.json")
//
// Update golden files with:
//
//	GANTRY_UPDATE_SNAPSHOTS=1 go test ./...
//
// Fingerprint condenses a snapshot into a stable hash for quick equality
// checks across test runs and for labeling journal entries.
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import gantrytest "github.com/go-drift/gantry/pkg/testing"
package testing
