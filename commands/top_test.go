package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopCommandFlags(t *testing.T) {
	tests := []struct {
		flag         string
		defaultValue string
	}{
		{"refresh", "0s"},
		{"no-watch", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			flag := topCmd.Flags().Lookup(tt.flag)
			require.NotNil(t, flag)
			assert.Equal(t, tt.defaultValue, flag.DefValue)
		})
	}
}

func TestRunTopValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "top", "--refresh", "10ms")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--refresh must be at least 100ms")
}
