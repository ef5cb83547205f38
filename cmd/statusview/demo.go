package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	statusview "github.com/hakkabon/StatusView"
	"github.com/hakkabon/StatusView/termview"
)

// demoWidth is the banner width in terminal cells.
const demoWidth = 36

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run an interactive banner demo in the terminal",
	Long: `Run an interactive terminal demo of the banner choreography.

Banners can be spawned at each of the six screen anchors, stacked,
tapped with the mouse, and retracted, without a daemon or a Wayland
session.

Key bindings:
  1           Banner at top
  2 / 3       Banner at top-left / top-right
  4           Banner at bottom
  5 / 6       Banner at bottom-left / bottom-right
  h           Hide the newest banner
  f           Force-hide everything
  q           Quit`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

// demoKeyMap defines the key bindings for the demo.
type demoKeyMap struct {
	Top         key.Binding
	TopLeft     key.Binding
	TopRight    key.Binding
	Bottom      key.Binding
	BottomLeft  key.Binding
	BottomRight key.Binding
	Hide        key.Binding
	ForceHide   key.Binding
	Quit        key.Binding
}

// ShortHelp returns a short help message.
func (k demoKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Top, k.Bottom, k.Hide, k.ForceHide, k.Quit}
}

// FullHelp returns a full help message.
func (k demoKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Top, k.TopLeft, k.TopRight},
		{k.Bottom, k.BottomLeft, k.BottomRight},
		{k.Hide, k.ForceHide, k.Quit},
	}
}

func defaultDemoKeyMap() demoKeyMap {
	return demoKeyMap{
		Top: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "top"),
		),
		TopLeft: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "top-left"),
		),
		TopRight: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "top-right"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "bottom"),
		),
		BottomLeft: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "bottom-left"),
		),
		BottomRight: key.NewBinding(
			key.WithKeys("6"),
			key.WithHelp("6", "bottom-right"),
		),
		Hide: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hide newest"),
		),
		ForceHide: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "force-hide all"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	demoTitleStyle = lipgloss.NewStyle().Bold(true)
	demoDimStyle   = lipgloss.NewStyle().Faint(true)
)

type demoModel struct {
	host  *termview.Host
	coord *statusview.Coordinator
	keys  demoKeyMap
	help  help.Model

	started time.Time
	shown   int
	width   int
	height  int
}

func (m demoModel) Init() tea.Cmd {
	return termview.Tick()
}

func (m demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.host.SetSize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case termview.FrameMsg:
		return m, termview.Tick()

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.host.TapAt(msg.X, msg.Y)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Top):
			return m.spawn(statusview.AnchorTop)
		case key.Matches(msg, m.keys.TopLeft):
			return m.spawn(statusview.AnchorTopLeft)
		case key.Matches(msg, m.keys.TopRight):
			return m.spawn(statusview.AnchorTopRight)
		case key.Matches(msg, m.keys.Bottom):
			return m.spawn(statusview.AnchorBottom)
		case key.Matches(msg, m.keys.BottomLeft):
			return m.spawn(statusview.AnchorBottomLeft)
		case key.Matches(msg, m.keys.BottomRight):
			return m.spawn(statusview.AnchorBottomRight)
		case key.Matches(msg, m.keys.Hide):
			active := m.coord.Active(m.host)
			if len(active) > 0 {
				active[len(active)-1].Hide()
			}
			return m, nil
		case key.Matches(msg, m.keys.ForceHide):
			m.coord.ForceHideAllIn(m.host)
			return m, nil
		}
	}
	return m, nil
}

func (m demoModel) spawn(anchor statusview.Anchor) (tea.Model, tea.Cmd) {
	o := cfg.Options()
	o.Position = anchor
	o.Width = demoWidth
	m.shown++

	title := fmt.Sprintf("Banner %d", m.shown)
	subtitle := fmt.Sprintf("%s, demo started %s", anchor, humanize.Time(m.started))

	n, err := statusview.New(m.coord, m.host, title, subtitle, o)
	if err != nil {
		logger.Warn("failed to create banner", "error", err)
		return m, nil
	}
	if err := n.Show(); err != nil {
		logger.Warn("failed to show banner", "error", err)
	}
	return m, nil
}

func (m demoModel) View() string {
	header := demoTitleStyle.Render("statusview demo")
	sub := demoDimStyle.Render(fmt.Sprintf("%d banner(s) shown, %d active",
		m.shown, m.coord.ActiveCount()))

	content := lipgloss.JoinVertical(lipgloss.Left,
		"",
		"  "+header,
		"  "+sub,
		"",
		"  "+m.help.View(m.keys),
	)
	return m.host.Overlay(content)
}

func runDemo(cmd *cobra.Command, args []string) error {
	host := termview.NewHost(80, 24, logger)
	defer host.Close()

	coord := statusview.NewCoordinator(host, host, host.Measurer(), logger)
	defer coord.Close()

	m := demoModel{
		host:    host,
		coord:   coord,
		keys:    defaultDemoKeyMap(),
		help:    help.New(),
		started: time.Now(),
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("demo failed: %w", err)
	}
	return nil
}
