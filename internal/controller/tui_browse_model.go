package controller

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// testDelegate renders one test row of the browser list.
type testDelegate struct{}

func (d testDelegate) Height() int  { return 1 }
func (d testDelegate) Spacing() int { return 0 }
func (d testDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d testDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	test, ok := item.(TestItem)
	if !ok {
		return
	}

	isSelected := index == m.Index()

	nameStyle := lipgloss.NewStyle()
	if isSelected {
		nameStyle = nameStyle.
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)
	}

	width := m.Width() - 10
	name := test.Name

	if width > 0 && lipgloss.Width(name) > width {
		runes := []rune(name)
		if width > 1 && len(runes) > width {
			name = string(runes[:width-1]) + "…"
		}
	}

	line := fmt.Sprintf("%s %s  %s",
		styledMark(test.Status),
		nameStyle.Render(name),
		skipStyle.Render(test.Duration),
	)
	_, _ = fmt.Fprint(w, line)
}

// browseModel is the Bubble Tea model behind Browse: a filterable test list
// with a detail pane for the selected test's messages and errors.
type browseModel struct {
	list       list.Model
	items      []TestItem
	showDetail bool
	width      int
	height     int
}

func newBrowseModel(items []TestItem) browseModel {
	listItems := make([]list.Item, 0, len(items))
	for _, item := range items {
		listItems = append(listItems, item)
	}

	l := list.New(listItems, testDelegate{}, 0, 0)
	l.Title = "Tests"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return browseModel{list: l, items: items}
}

func (b browseModel) Init() tea.Cmd {
	return nil
}

func (b browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.list.SetSize(msg.Width, msg.Height-1)

		return b, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if b.showDetail {
				b.showDetail = false
				return b, nil
			}

			return b, tea.Quit
		case "enter":
			b.showDetail = !b.showDetail
			return b, nil
		case "esc":
			if b.showDetail {
				b.showDetail = false
				return b, nil
			}
		}
	}

	var cmd tea.Cmd
	b.list, cmd = b.list.Update(msg)

	return b, cmd
}

func (b browseModel) View() string {
	if b.showDetail {
		return b.detailView()
	}

	return b.list.View()
}

func (b browseModel) detailView() string {
	item, ok := b.list.SelectedItem().(TestItem)
	if !ok {
		return "no test selected\n"
	}

	var sb strings.Builder

	sb.WriteString(suiteStyle.Render(item.Name))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%s  %s  %s\n", styledMark(item.Status), item.Suite, item.Duration))

	if len(item.Messages) > 0 {
		sb.WriteString(groupStyle.Render("\nOutput:\n"))

		for _, message := range item.Messages {
			sb.WriteString(message)
			sb.WriteString("\n")
		}
	}

	if len(item.Errors) > 0 {
		sb.WriteString(failStyle.Render("\nErrors:\n"))

		for _, errText := range item.Errors {
			sb.WriteString(errText)
			sb.WriteString("\n")
		}
	}

	sb.WriteString(skipStyle.Render("\nenter/esc back · q quit\n"))

	return sb.String()
}
