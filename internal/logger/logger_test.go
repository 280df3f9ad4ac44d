package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug", zapcore.InfoLevel))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("WARN", zapcore.InfoLevel))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("loud", zapcore.InfoLevel))
}

func TestSetupWithoutFileIsSilent(t *testing.T) {
	log, done, err := Setup(Config{Level: "debug"})
	require.NoError(t, err)
	defer done()
	assert.False(t, log.Core().Enabled(zapcore.ErrorLevel))
}

func TestSetupWritesFile(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sonar.log")
			log, done, err := Setup(Config{Level: "info", Format: format, File: path})
			require.NoError(t, err)

			log.Debug("hidden")
			log.Info("sweep started")
			done()

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			out := string(data)
			assert.Contains(t, out, "sweep started")
			assert.NotContains(t, out, "hidden")
			if format == "json" {
				assert.True(t, strings.HasPrefix(out, "{"))
			}
		})
	}
}

func TestSetupBadPath(t *testing.T) {
	_, _, err := Setup(Config{File: filepath.Join(t.TempDir(), "missing", "x.log")})
	assert.Error(t, err)
}
