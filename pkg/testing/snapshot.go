package testing

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/go-drift/gantry/pkg/surface"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the structure of a surface tree at one instant.
type Snapshot struct {
	Root *Node `json:"root"`
}

// Node is one surface in the serialized tree. Frames are stored as
// [left, top, width, height] in the parent's coordinate space; children
// are listed back to front.
type Node struct {
	Name        string     `json:"name,omitempty"`
	Frame       [4]float64 `json:"frame"`
	Alpha       float64    `json:"alpha"`
	Hidden      bool       `json:"hidden,omitempty"`
	Interactive bool       `json:"interactive"`
	Stretch     bool       `json:"stretch,omitempty"`
	Children    []*Node    `json:"children,omitempty"`
}

// TreeSnapshot captures the frame, opacity, and flags of every surface in
// the tree rooted at root. A nil root yields an empty snapshot.
func TreeSnapshot(root *surface.Surface) *Snapshot {
	snap := &Snapshot{}
	if root != nil {
		snap.Root = captureNode(root)
	}
	return snap
}

func captureNode(s *surface.Surface) *Node {
	frame := s.Frame()
	node := &Node{
		Name:        s.Name(),
		Frame:       [4]float64{frame.Left, frame.Top, frame.Width(), frame.Height()},
		Alpha:       s.Alpha(),
		Hidden:      s.Hidden(),
		Interactive: s.Interactive(),
		Stretch:     s.Stretch(),
	}
	for _, child := range s.Children() {
		node.Children = append(node.Children, captureNode(child))
	}
	return node
}

// Fingerprint returns a hex digest over the snapshot's canonical JSON
// form. Two trees that agree on structure, frames, opacities, and flags
// produce the same fingerprint.
func (s *Snapshot) Fingerprint() string {
	data, _ := marshalSnapshot(s)
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When GANTRY_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("GANTRY_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: GANTRY_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: GANTRY_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a unified diff between this snapshot and other. Returns
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	maxLen := len(expectedLines)
	if len(actualLines) > maxLen {
		maxLen = len(actualLines)
	}

	for i := 0; i < maxLen; i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}

	return buf.String()
}
