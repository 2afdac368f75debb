package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoggingFlags(t *testing.T) {
	cmd := &cobra.Command{}
	RegisterLoggingFlags(cmd.PersistentFlags())

	assert.NotNil(t, cmd.PersistentFlags().Lookup(FormatFlagName))
	assert.NotNil(t, cmd.PersistentFlags().Lookup(LevelFlagName))
	assert.NotNil(t, cmd.PersistentFlags().Lookup(OutputFlagName))
}

func TestGetBaseLogger(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		level    string
		output   string
		contains string
	}{
		{"json debug to stdout", FormatJSON, LevelDebug, OutputStdout, `"msg":"hello"`},
		{"text info to stderr", FormatText, LevelInfo, OutputStderr, "msg=hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			cmd := &cobra.Command{}
			cmd.SetOut(&stdout)
			cmd.SetErr(&stderr)
			RegisterLoggingFlags(cmd.Flags())

			require.NoError(t, cmd.Flags().Set(FormatFlagName, tt.format))
			require.NoError(t, cmd.Flags().Set(LevelFlagName, tt.level))
			require.NoError(t, cmd.Flags().Set(OutputFlagName, tt.output))

			logger, err := GetBaseLogger(cmd)
			require.NoError(t, err)

			logger.Info("hello")

			out := stderr.String()
			if tt.output == OutputStdout {
				out = stdout.String()
			}

			assert.Contains(t, out, tt.contains)
		})
	}
}

func TestLevelFromCommand(t *testing.T) {
	for name, want := range map[string]slog.Level{
		LevelDebug: slog.LevelDebug,
		LevelInfo:  slog.LevelInfo,
		LevelWarn:  slog.LevelWarn,
		LevelError: slog.LevelError,
	} {
		cmd := &cobra.Command{}
		RegisterLoggingFlags(cmd.Flags())
		require.NoError(t, cmd.Flags().Set(LevelFlagName, name))

		got, err := levelFromCommand(cmd)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	cmd := &cobra.Command{}
	RegisterLoggingFlags(cmd.Flags())
	assert.Error(t, cmd.Flags().Set(LevelFlagName, "trace"))

	got, err := levelFromCommand(cmd)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, got)
}
