package main

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/gantry/pkg/animation"
	"github.com/go-drift/gantry/pkg/contain"
	"github.com/go-drift/gantry/pkg/containers"
	"github.com/go-drift/gantry/pkg/geometry"
	"github.com/go-drift/gantry/pkg/inspect"
	"github.com/go-drift/gantry/pkg/journal"
	"github.com/go-drift/gantry/pkg/raster"
	"github.com/go-drift/gantry/pkg/scene"
	"github.com/go-drift/gantry/pkg/surface"
	"github.com/go-drift/gantry/pkg/transition"
)

// The host surface uses terminal-cell coordinates, so one raster pixel maps
// onto one character cell.
const (
	hostWidth  = 36
	hostHeight = 18
	framePace  = 50 * time.Millisecond
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1)
	frameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238"))
)

type demoOptions struct {
	kind        transition.Kind
	duration    time.Duration
	inspectAddr string
	journalPath string
	scenes      []string
}

// frameMsg paces the animation driver.
type frameMsg time.Time

type demoModel struct {
	opts     demoOptions
	host     *surface.Surface
	registry *contain.Registry
	driver   *animation.Driver
	stack    *containers.Stack
	kinds    []transition.Kind
	kindIdx  int
	pushed   int
	status   string
}

func newDemoModel(opts demoOptions) *demoModel {
	host := surface.NewNamed("host", geometry.RectFromLTWH(0, 0, hostWidth, hostHeight))
	registry := contain.NewRegistry()
	driver := animation.NewDriver()

	m := &demoModel{
		opts:     opts,
		host:     host,
		registry: registry,
		driver:   driver,
		kinds:    transition.Kinds(),
	}
	for i, k := range m.kinds {
		if k == opts.kind {
			m.kindIdx = i
		}
	}

	m.stack = containers.NewStack(host, registry, driver, m.rootController())
	return m
}

// rootController builds the permanent bottom content.
func (m *demoModel) rootController() contain.Controller {
	return &contain.ContentController{Build: func() *surface.Surface {
		s := surface.NewNamed("home", geometry.RectFromLTWH(0, 0, hostWidth, hostHeight))
		banner := surface.NewNamed("home-banner", geometry.RectFromLTWH(2, 2, hostWidth-4, 4))
		s.AddChild(banner)
		return s
	}}
}

// nextController returns the controller for the next push: the configured
// scene files cycled in order, or a generated card when none were given.
func (m *demoModel) nextController() contain.Controller {
	m.pushed++
	if len(m.opts.scenes) > 0 {
		return scene.Controller(m.opts.scenes[(m.pushed-1)%len(m.opts.scenes)])
	}
	name := fmt.Sprintf("card-%d", m.pushed)
	return &contain.ContentController{Build: func() *surface.Surface {
		s := surface.NewNamed(name, geometry.RectFromLTWH(0, 0, hostWidth, hostHeight))
		title := surface.NewNamed(name+"-title", geometry.RectFromLTWH(2, 1, hostWidth-4, 3))
		body := surface.NewNamed(name+"-body", geometry.RectFromLTWH(2, 5, hostWidth-4, hostHeight-7))
		s.AddChild(title)
		s.AddChild(body)
		return s
	}}
}

func (m *demoModel) kind() transition.Kind { return m.kinds[m.kindIdx] }

func (m *demoModel) Init() tea.Cmd {
	return frameTick()
}

func frameTick() tea.Cmd {
	return tea.Tick(framePace, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.driver.Step()
		return m, frameTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "p", "enter":
			handle := m.stack.Push(m.nextController(), m.kind(), m.opts.duration)
			m.status = fmt.Sprintf("pushed %s with %s (%v)", handle.ID().String()[:8], handle.Kind(), handle.Duration())
		case "o", "backspace":
			if popped := m.stack.Pop(); popped != nil {
				m.status = fmt.Sprintf("popping %s", popped.ID().String()[:8])
			} else {
				m.status = "root cannot be popped"
			}
		case "tab", "k":
			m.kindIdx = (m.kindIdx + 1) % len(m.kinds)
			m.status = fmt.Sprintf("next push uses %s", m.kind())
		}
	}
	return m, nil
}

func (m *demoModel) View() string {
	header := titleStyle.Render("gantry playground")
	status := statusStyle.Render(fmt.Sprintf(
		"kind %s · depth %d · playing %d",
		m.kind(), m.stack.Depth(), m.driver.Active(),
	))

	grid := frameStyle.Render(renderGrid(raster.Render(m.host)))

	footer := footerStyle.Render("p push · o pop · tab kind · q quit")
	lines := header + "  " + status + "\n" + grid + "\n" + footer
	if m.status != "" {
		lines += "\n" + statusStyle.Render(m.status)
	}
	return lines + "\n"
}

// renderGrid maps the rendered image onto colored terminal cells, two
// characters per pixel to keep the aspect ratio roughly square.
func renderGrid(img *image.RGBA) string {
	b := img.Bounds()
	var out string
	for y := b.Min.Y; y < b.Max.Y; y++ {
		if y > b.Min.Y {
			out += "\n"
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if a == 0 {
				out += "  "
				continue
			}
			hex := fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(bl>>8))
			out += lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
		}
	}
	return out
}

// runDemo wires the optional inspector and journal around the playground and
// blocks until the user quits.
func runDemo(opts demoOptions) error {
	m := newDemoModel(opts)

	if opts.journalPath != "" {
		store, err := journal.Open(opts.journalPath)
		if err != nil {
			return err
		}
		defer store.Close()
		unsubscribe := journal.Attach(m.registry, store)
		defer unsubscribe()
	}

	if opts.inspectAddr != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		hub := inspect.NewHub()
		go hub.Run(ctx)
		unsubscribe := inspect.Attach(m.registry, hub)
		defer unsubscribe()

		server := inspect.NewServer(hub, m.registry, func() *surface.Surface { return m.host })
		go func() {
			if err := http.ListenAndServe(opts.inspectAddr, server); err != nil {
				fmt.Fprintf(os.Stderr, "inspector: %v\n", err)
			}
		}()
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
