package adapter

import (
	"bufio"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalTestRunnerAdapter(t *testing.T) {
	runner := NewLocalTestRunnerAdapter()

	t.Run("streams the producer's stdout", func(t *testing.T) {
		stdout, wait, err := runner.StartMachineRun(context.Background(), "", "echo", []string{`{"type":"done","success":true,"time":1}`})
		require.NoError(t, err)

		scanner := bufio.NewScanner(stdout)
		require.True(t, scanner.Scan())
		assert.Equal(t, `{"type":"done","success":true,"time":1}`, scanner.Text())

		assert.NoError(t, wait())
	})

	t.Run("unknown command fails to start", func(t *testing.T) {
		_, _, err := runner.StartMachineRun(context.Background(), "", "definitely-not-a-command-xyz", nil)
		assert.Error(t, err)
	})
}
