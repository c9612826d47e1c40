// Package tui provides interactive terminal UI components.
package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultListWidth  = 48
	defaultListHeight = 16
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// SelectionAction represents the user's action in the selection UI.
type SelectionAction int

const (
	// ActionNone indicates no action was taken.
	ActionNone SelectionAction = iota
	// ActionSelected indicates the user selected a column.
	ActionSelected
	// ActionStopped indicates the user cancelled the selection.
	ActionStopped
)

// SelectionResult holds the result of a TUI column selection.
type SelectionResult struct {
	Action SelectionAction
	Column string
}

type columnItem struct {
	name  string
	index int
}

func (i columnItem) FilterValue() string { return i.name }

type columnDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
	ordinal  lipgloss.Style
}

func newDelegate() columnDelegate {
	return columnDelegate{
		normal: lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("252")),
		selected: lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("237")).
			Bold(true),
		ordinal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true),
	}
}

func (d columnDelegate) Height() int                         { return 1 }
func (d columnDelegate) Spacing() int                        { return 0 }
func (d columnDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d columnDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	column, ok := item.(columnItem)
	if !ok {
		return
	}

	line := fmt.Sprintf("%s %s", d.ordinal.Render(fmt.Sprintf("%2d.", column.index+1)), column.name)

	style := d.normal
	if idx == m.Index() {
		style = d.selected
	}
	_, _ = fmt.Fprint(w, style.Render(line))
}

type model struct {
	list   list.Model
	source string
	result SelectionResult
}

func newModel(source string, columns []string) *model {
	listItems := make([]list.Item, len(columns))
	for i, name := range columns {
		listItems[i] = columnItem{name: name, index: i}
	}

	l := list.New(listItems, newDelegate(), defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	return &model{
		list:   l,
		source: source,
		result: SelectionResult{
			Action: ActionNone,
		},
	}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if selected, ok := m.list.SelectedItem().(columnItem); ok {
				m.result = SelectionResult{
					Action: ActionSelected,
					Column: selected.name,
				}
				return m, tea.Quit
			}
		case "ctrl+c", "q", "esc":
			m.result = SelectionResult{Action: ActionStopped}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 20)
		height := clamp(defaultListHeight, msg.Height-6, 5)
		m.list.SetSize(width, height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	header := headerStyle.Render(fmt.Sprintf("Select a column from: %s", m.source))
	listView := m.list.View()
	help := helpStyle.Render("Up/Down navigate | Enter select | q cancel")
	return lipgloss.JoinVertical(lipgloss.Left, header, listView, help)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)

// SelectColumn presents an interactive selection UI for the columns of a
// staged table. The source name is shown in the header.
func SelectColumn(source string, columns []string) (SelectionResult, error) {
	if len(columns) == 0 {
		return SelectionResult{Action: ActionStopped}, nil
	}

	m := newModel(source, columns)
	finalModel, err := runProgram(m)
	if err != nil {
		return SelectionResult{}, err
	}

	if typed, ok := finalModel.(*model); ok {
		return typed.result, nil
	}

	return SelectionResult{}, fmt.Errorf("unexpected program result")
}

func clamp(preferred, available, minimum int) int {
	if available < minimum {
		return minimum
	}
	if available < preferred {
		return available
	}
	return preferred
}
