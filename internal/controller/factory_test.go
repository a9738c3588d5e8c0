package controller

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestNewUI(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	t.Run("plain text without a TTY", func(t *testing.T) {
		ui := NewUI(cmd, false)
		assert.IsType(t, &SimpleUI{}, ui)
	})

	t.Run("interactive with a TTY", func(t *testing.T) {
		ui := NewUI(cmd, true)
		assert.IsType(t, &TUI{}, ui)
	})
}

func TestIsTTY(t *testing.T) {
	assert.False(t, IsTTY(&bytes.Buffer{}))
}
