package logger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesDailyFile(t *testing.T) {
	dir := t.TempDir()

	log, err := New("debug", "json", dir)
	require.NoError(t, err)
	log.Info("hello")
	_ = log.Sync()

	data, err := os.ReadFile(filepath.Join(dir, time.Now().Format("2006-01-02")+".log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"service_name":"mci-http-service"`)
}

func TestNew_ConsoleFormat(t *testing.T) {
	log, err := New("warn", "console", "")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(-1))
}
