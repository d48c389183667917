package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLevels(t *testing.T) {
	orig := log
	t.Cleanup(func() { log = orig })

	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"", logrus.WarnLevel},
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"bogus", logrus.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			require.NoError(t, Init(Config{Level: tt.level, Stderr: &bytes.Buffer{}}))
			assert.Equal(t, tt.want, Logger().GetLevel())
		})
	}
}

func TestInitWritesToStderrAndFile(t *testing.T) {
	orig := log
	t.Cleanup(func() { log = orig })

	var buf bytes.Buffer
	file := filepath.Join(t.TempDir(), "logs", "cmdref.log")
	require.NoError(t, Init(Config{Level: "info", File: file, Stderr: &buf}))

	WithComponent("test").Info("catalog loaded")

	assert.Contains(t, buf.String(), "catalog loaded")
	assert.Contains(t, buf.String(), "component=test")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "catalog loaded")
}

func TestInitJSON(t *testing.T) {
	orig := log
	t.Cleanup(func() { log = orig })

	var buf bytes.Buffer
	require.NoError(t, Init(Config{Level: "info", JSON: true, Stderr: &buf}))
	Logger().Info("hello")

	assert.Contains(t, buf.String(), `"msg":"hello"`)
}
