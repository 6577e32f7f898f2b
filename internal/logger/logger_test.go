package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFile_ProdWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asman.log")

	log, err := NewFile("prod", path)
	require.NoError(t, err)
	log.With("component", "test").Info("lesson ready", "class", 2)
	log.Debug("hidden at info level")
	log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"lesson ready"`)
	assert.Contains(t, string(data), `"component":"test"`)
	assert.Contains(t, string(data), `"class":2`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Error("discarded", "k", "v")
	assert.NotNil(t, log.Desugar())
}
