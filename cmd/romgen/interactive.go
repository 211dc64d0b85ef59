package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/romgen"
	"github.com/wippyai/romgen/layout"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	setStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4B4B"))

	clearStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type previewKeys struct {
	Prev  key.Binding
	Next  key.Binding
	Write key.Binding
	Quit  key.Binding
}

func (k previewKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Write, k.Quit}
}

func (k previewKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newPreviewKeys() previewKeys {
	return previewKeys{
		Prev:  key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←/h", "prev plane")),
		Next:  key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→/l", "next plane")),
		Write: key.NewBinding(key.WithKeys("w", "enter"), key.WithHelp("w", "write")),
		Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "abort")),
	}
}

type previewModel struct {
	res    *romgen.Result
	input  string
	output string
	pager  paginator.Model
	help   help.Model
	keys   previewKeys
	write  bool
}

func newPreviewModel(res *romgen.Result, input, output string) *previewModel {
	keys := newPreviewKeys()
	p := paginator.New()
	p.Type = paginator.Arabic
	p.PerPage = 1
	p.SetTotalPages(res.Geometry.Planes())
	p.KeyMap = paginator.KeyMap{PrevPage: keys.Prev, NextPage: keys.Next}

	return &previewModel{
		res:    res,
		input:  input,
		output: output,
		pager:  p,
		help:   help.New(),
		keys:   keys,
	}
}

func (m *previewModel) Init() tea.Cmd {
	return nil
}

func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Write):
			m.write = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.pager, cmd = m.pager.Update(msg)
	return m, cmd
}

type cell struct {
	row   int
	state layout.State
}

// planeRow renders one length slot: both bytes of the pair interleaved in
// row-axis order.
func (m *previewModel) planeRow(plane, slot int) string {
	g := m.res.Geometry
	var cells []cell
	var vals []string
	for pair := 0; pair < 2; pair++ {
		i := plane*g.PlaneWrap + slot*2 + pair
		if i >= len(m.res.Payload) {
			continue
		}
		v := m.res.Payload[i]
		vals = append(vals, fmt.Sprintf("%02X", v))
		for b := 0; b < layout.BitsPerByte; b++ {
			cells = append(cells, cell{row: g.RowCoord(i, b), state: layout.StateOf(v, b)})
		}
	}
	sort.Slice(cells, func(a, b int) bool { return cells[a].row < cells[b].row })

	var b strings.Builder
	first := plane*g.PlaneWrap + slot*2
	b.WriteString(labelStyle.Render(fmt.Sprintf("%3d-%3d", first, first+1)))
	b.WriteString(" ")
	b.WriteString(fmt.Sprintf("%-5s ", strings.Join(vals, " ")))
	for _, c := range cells {
		if c.state == layout.Set {
			b.WriteString(setStyle.Render("█"))
		} else {
			b.WriteString(clearStyle.Render("░"))
		}
	}
	return b.String()
}

func (m *previewModel) View() string {
	g := m.res.Geometry
	plane := m.pager.Page

	var b strings.Builder
	b.WriteString(titleStyle.Render("ROM Preview"))
	b.WriteString(" ")
	b.WriteString(m.input)
	b.WriteString(" → ")
	b.WriteString(m.output)
	b.WriteString("\n")
	lo, hi := g.Bounds()
	b.WriteString(helpStyle.Render(fmt.Sprintf("region %v to %v, %d bits", lo, hi, len(m.res.Placements))))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Plane %d  (vertical offset %d)\n\n", plane, g.VerticalCoord(plane*g.PlaneWrap)))
	for slot := 0; slot < g.PlaneWrap/2; slot++ {
		b.WriteString(m.planeRow(plane, slot))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.pager.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// runInteractive shows the preview and reports whether the user chose to
// write the schematic.
func runInteractive(res *romgen.Result, opts romgen.Options) (bool, error) {
	p := tea.NewProgram(newPreviewModel(res, opts.Input, opts.Output), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(*previewModel)
	return ok && m.write, nil
}
