package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/scatterfield/pkg/scene"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle    = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// previewTransforms is how many transforms the detail pane lists.
const previewTransforms = 5

// =============================================================================
// LayerListModel - Interactive layer browser
// =============================================================================

// LayerListModel is the bubbletea model for browsing the layers of a scene.
type LayerListModel struct {
	Scene  *scene.Result
	Cursor int
	Height int
	Offset int
}

// NewLayerListModel creates a browser over res.
func NewLayerListModel(res *scene.Result) LayerListModel {
	return LayerListModel{Scene: res, Height: 15}
}

func (m LayerListModel) Init() tea.Cmd {
	return nil
}

func (m LayerListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	n := len(m.Scene.Layers)
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < n-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = max(n-1, 0)
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-12, 3)
	}

	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m, nil
}

func (m LayerListModel) View() string {
	var b strings.Builder

	res := m.Scene
	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s · seed %d", res.Plan.Name, res.Plan.Seed)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(res.Layers))
	for i := m.Offset; i < end; i++ {
		lr := res.Layers[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-20s %-8s %4d/%-4d", cursor, lr.Layer.Name, lr.Layer.Sampler,
			len(lr.Transforms), lr.Layer.Requested())

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case lr.Partial():
			b.WriteString(StyleWarning.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if len(res.Layers) > 0 {
		b.WriteString("\n")
		b.WriteString(detailBoxStyle.Render(layerDetail(res.Layers[m.Cursor])))
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(res.Layers))))
	}

	return b.String()
}

// layerDetail describes one layer: its sampler parameters, the outcome and
// the first few transforms.
func layerDetail(lr scene.LayerResult) string {
	l := lr.Layer
	var lines []string
	add := func(key, format string, args ...any) {
		lines = append(lines, listDimStyle.Render(fmt.Sprintf("%-12s", key))+" "+fmt.Sprintf(format, args...))
	}

	if l.Asset != "" {
		add("asset", "%s", l.Asset)
	}
	switch l.Sampler {
	case scene.SamplerGrid:
		add("grid", "%d×%d, spacing %g, jitter %g", l.Width, l.Height, l.Spacing, l.Jitter)
		add("center", "(%g, %g)", l.Center.X, l.Center.Z)
	case scene.SamplerPoisson:
		add("poisson", "count %d, min distance %g", l.Count, l.MinDistance)
	}
	if s := lr.Poisson; s != nil {
		add("attempts", "%d (%d rejected)", s.Attempts, s.Rejected)
		if s.Exhausted {
			add("budget", "%s", StyleWarning.Render("exhausted"))
		}
	}
	if len(lr.Points) > 1 {
		add("gap", "min %.2f · mean %.2f · σ %.2f", lr.Spacing.Min, lr.Spacing.Mean, lr.Spacing.StdDev)
	}

	for i, t := range lr.Transforms {
		if i == previewTransforms {
			lines = append(lines, listDimStyle.Render(fmt.Sprintf("… %d more", len(lr.Transforms)-previewTransforms)))
			break
		}
		add(fmt.Sprintf("#%d", i), "(%.2f, %.2f, %.2f)", t.Translation.X, t.Translation.Y, t.Translation.Z)
	}
	return strings.Join(lines, "\n")
}
