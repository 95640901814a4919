// Package testing provides a test harness for tether trees.
//
// # Quick Start
//
// Create a tester, mount a tree, and make assertions:
//
//	func TestCounter(t *testing.T) {
//	    tester := tethertest.NewTesterWithT(t)
//	    tester.Mount(counter.View())
//
//	    // Find elements
//	    button := tester.Find(tethertest.ByText("Increment")).First()
//
//	    // Fire events
//	    tester.Tap(tethertest.ByText("Increment"))
//
//	    // Assert state
//	    if !tester.Find(tethertest.ByText("Count: 1")).Exists() {
//	        t.Error("expected 'Count: 1' text")
//	    }
//	}
//
// The tester renders into an in-memory htmldom document whose body holds a
// single container div. Event handlers created during Mount are kept in the
// tester's own proxy registry and released by Cleanup.
//
// # Snapshot Testing
//
// Capture and compare the container's subtree:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/counter.snapshot.json")
//
// Update snapshots with:
//
//	TETHER_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import tethertest "github.com/go-drift/tether/pkg/testing"
package testing
