package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/orbifold/cytoconv/pkg/cyto"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle    = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// inspectCommand creates the interactive element browser.
func (c *CLI) inspectCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Browse the elements of a graph or element list",
		Long: `Browse elements interactively. Graph files are converted first.

Keys: ↑/↓ move, tab cycles all/nodes/edges, enter toggles the data view, q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			els, err := c.loadElements(cmd.Context(), args[0], noCache)
			if err != nil {
				return err
			}
			if len(els) == 0 {
				printInfo("No elements in %s", args[0])
				return nil
			}
			p := tea.NewProgram(NewElementListModel(els), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the conversion cache")
	return cmd
}

// =============================================================================
// ElementListModel - Interactive element browser
// =============================================================================

// elementFilter narrows the visible elements.
type elementFilter int

const (
	filterAll elementFilter = iota
	filterNodes
	filterEdges
)

func (f elementFilter) String() string {
	switch f {
	case filterNodes:
		return "nodes"
	case filterEdges:
		return "edges"
	default:
		return "all"
	}
}

// ElementListModel is the bubbletea model for browsing elements.
type ElementListModel struct {
	Elements []cyto.Element
	Cursor   int
	Height   int
	Offset   int
	Detail   bool

	filter  elementFilter
	visible []int
}

// NewElementListModel creates a new element list model.
func NewElementListModel(els []cyto.Element) ElementListModel {
	m := ElementListModel{Elements: els, Height: 15}
	m.applyFilter()
	return m
}

func (m *ElementListModel) applyFilter() {
	m.visible = m.visible[:0]
	for i, el := range m.Elements {
		switch {
		case m.filter == filterNodes && !el.IsNode():
			continue
		case m.filter == filterEdges && !el.IsEdge():
			continue
		}
		m.visible = append(m.visible, i)
	}
	m.Cursor, m.Offset = 0, 0
}

// Selected returns the element under the cursor.
func (m ElementListModel) Selected() (cyto.Element, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.visible) {
		return cyto.Element{}, false
	}
	return m.Elements[m.visible[m.Cursor]], true
}

func (m ElementListModel) Init() tea.Cmd {
	return nil
}

func (m ElementListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.visible)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "tab":
			m.filter = (m.filter + 1) % 3
			m.visible = append([]int(nil), m.visible...)
			m.applyFilter()
		case "enter":
			m.Detail = !m.Detail
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ElementListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Elements"))
	b.WriteString(" ")
	b.WriteString(listDimStyle.Render("(" + m.filter.String() + ")"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  tab filter  ⏎ data  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.visible) {
		end = len(m.visible)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		el := m.Elements[m.visible[i]]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, string(el.Group), el.ID(), describeElement(el)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Group", "ID", "Details").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 3 {
				return listDimStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.visible)), len(m.visible))))

	if el, ok := m.Selected(); ok && m.Detail {
		b.WriteString("\n")
		b.WriteString(detailBoxStyle.Render(formatData(el)))
	}
	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// describeElement summarizes an element in one line: the position of a node
// or the endpoints of an edge.
func describeElement(el cyto.Element) string {
	if el.IsEdge() {
		return el.Source() + " " + iconArrow + " " + el.Target()
	}
	if el.Position != nil {
		return fmt.Sprintf("(%g, %g)", el.Position.X, el.Position.Y)
	}
	return ""
}

func formatData(el cyto.Element) string {
	data, err := json.MarshalIndent(el.Data, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}
