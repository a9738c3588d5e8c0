package controller

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func browseItems() []TestItem {
	return []TestItem{
		{Name: "adds numbers", Status: "success", Suite: "test/sample_test.dart", Duration: "52ms"},
		{
			Name:     "Intentionally failing tests Simple assertion failure",
			Status:   "failure",
			Suite:    "test/sample_test.dart",
			Duration: "52ms",
			Messages: []string{"about to fail"},
			Errors:   []string{"Expected: <2>\n  Actual: <1>"},
		},
	}
}

func sizedBrowseModel(t *testing.T) browseModel {
	t.Helper()

	model := newBrowseModel(browseItems())

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	sized, ok := updated.(browseModel)
	require.True(t, ok)

	return sized
}

func TestBrowseModelView(t *testing.T) {
	model := sizedBrowseModel(t)

	view := model.View()
	assert.Contains(t, view, "adds numbers")
}

func TestBrowseModelQuit(t *testing.T) {
	model := sizedBrowseModel(t)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestBrowseModelDetail(t *testing.T) {
	model := sizedBrowseModel(t)

	// Select the failing test and open its detail pane.
	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model = updated.(browseModel)

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(browseModel)

	view := model.View()
	assert.Contains(t, view, "Simple assertion failure")
	assert.Contains(t, view, "about to fail")
	assert.Contains(t, view, "Expected: <2>")

	// Esc returns to the list.
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model = updated.(browseModel)
	assert.Contains(t, model.View(), "adds numbers")
}
