// Command gantry is the development tool for the gantry container-content
// lifecycle library. It ships a terminal playground for the stack container,
// scene file validation, and journal inspection.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/go-drift/gantry/cmd/gantry/internal/config"
	"github.com/go-drift/gantry/pkg/journal"
	"github.com/go-drift/gantry/pkg/scene"
	"github.com/go-drift/gantry/pkg/surface"
	gantrytesting "github.com/go-drift/gantry/pkg/testing"
	"github.com/go-drift/gantry/pkg/transition"
)

const version = "0.1.0"

// CLI defines the command-line interface for gantry.
var CLI struct {
	Demo    DemoCmd      `cmd:"" help:"Run the interactive container playground"`
	Scene   SceneGroup   `cmd:"" help:"Scene file operations"`
	Journal JournalGroup `cmd:"" help:"Lifecycle journal operations"`
	Version VersionCmd   `cmd:"" help:"Print version information"`
}

// SceneGroup contains scene file operations.
type SceneGroup struct {
	Validate SceneValidateCmd `cmd:"" help:"Parse a scene file and print its tree"`
}

// JournalGroup contains journal operations.
type JournalGroup struct {
	Dump JournalDumpCmd `cmd:"" help:"Print recorded lifecycle events"`
}

// VersionCmd prints version information.
type VersionCmd struct{}

// Run prints the version.
func (c *VersionCmd) Run() error {
	fmt.Printf("gantry %s\n", version)
	return nil
}

// SceneValidateCmd parses a scene file and prints the resulting surface tree
// with its structural fingerprint.
type SceneValidateCmd struct {
	Path string `arg:"" help:"Scene file to validate" type:"existingfile"`
}

// Run validates the scene file.
func (c *SceneValidateCmd) Run() error {
	root, err := scene.LoadFile(c.Path)
	if err != nil {
		return err
	}
	printSurface(root, 0)
	fmt.Printf("fingerprint: %s\n", gantrytesting.TreeSnapshot(root).Fingerprint())
	return nil
}

func printSurface(s *surface.Surface, depth int) {
	name := s.Name()
	if name == "" {
		name = "(unnamed)"
	}
	f := s.Frame()
	fmt.Printf("%s%s frame=(%g %g %g %g) alpha=%g\n",
		strings.Repeat("  ", depth), name, f.Left, f.Top, f.Width(), f.Height(), s.Alpha())
	for _, child := range s.Children() {
		printSurface(child, depth+1)
	}
}

// JournalDumpCmd prints recorded lifecycle events, newest first, and can
// export the whole journal as an xz-compressed JSON-lines bundle.
type JournalDumpCmd struct {
	Path   string `arg:"" help:"Journal database file" type:"existingfile"`
	Limit  int    `help:"Maximum events to print (0 prints everything)" default:"50"`
	Export string `help:"Write the full journal to this .xz bundle" type:"path"`
}

// Run dumps the journal.
func (c *JournalDumpCmd) Run() error {
	store, err := journal.Open(c.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if c.Export != "" {
		f, err := os.Create(c.Export)
		if err != nil {
			return fmt.Errorf("create export: %w", err)
		}
		defer f.Close()
		if err := store.ExportXZ(f); err != nil {
			return err
		}
		fmt.Printf("exported journal to %s\n", c.Export)
		return nil
	}

	entries, err := store.Recent(c.Limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("journal is empty")
		return nil
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s  %-15s  %s", e.At.Format(time.RFC3339), e.Type, e.Handle)
		if e.Controller != "" {
			line += "  " + e.Controller
		}
		fmt.Println(line)
	}
	return nil
}

// DemoCmd runs the interactive terminal playground: a stack container whose
// children are pushed and popped with selectable transition kinds, rendered
// as a colored grid each frame.
type DemoCmd struct {
	Kind     string        `help:"Transition kind for pushes (overrides gantry.yaml)"`
	Duration time.Duration `help:"Transition duration (overrides the kind's default)" default:"-1ns"`
	Inspect  string        `help:"Serve the lifecycle inspector on this address"`
	Journal  string        `help:"Record lifecycle events to this SQLite file" type:"path"`
	Scenes   []string      `help:"Scene files to push as children, cycled in order" type:"existingfile"`
}

// Run starts the playground.
func (c *DemoCmd) Run() error {
	root, err := config.FindProjectRoot()
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(root)
	if err != nil {
		return err
	}

	kind := cfg.Kind
	if c.Kind != "" {
		k, err := transition.ParseKind(c.Kind)
		if err != nil {
			return err
		}
		kind = k
	}
	duration := cfg.Duration
	if c.Duration >= 0 {
		duration = c.Duration
	}
	inspectAddr := cfg.InspectAddr
	if c.Inspect != "" {
		inspectAddr = c.Inspect
	}
	journalPath := cfg.JournalPath
	if c.Journal != "" {
		journalPath = c.Journal
	}

	return runDemo(demoOptions{
		kind:        kind,
		duration:    duration,
		inspectAddr: inspectAddr,
		journalPath: journalPath,
		scenes:      c.Scenes,
	})
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("gantry"),
		kong.Description("Container-content lifecycle playground and diagnostics"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
