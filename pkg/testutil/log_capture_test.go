package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/keepstack-chart/pkg/log"
)

func TestCaptureLogOutput(t *testing.T) {
	output, err := CaptureLogOutput(log.LevelDebug, func() {
		log.Info("captured message", "key", "value")
	})
	require.NoError(t, err)
	assert.Contains(t, output, "captured message")
	assert.Contains(t, output, "value")
}

func TestCaptureLogOutputRespectsLevel(t *testing.T) {
	output, err := CaptureLogOutput(log.LevelWarn, func() {
		log.Debug("too quiet")
		log.Warn("loud enough")
	})
	require.NoError(t, err)
	assert.NotContains(t, output, "too quiet")
	assert.Contains(t, output, "loud enough")
}

func TestCaptureJSONLogs(t *testing.T) {
	_, logs, err := CaptureJSONLogs(log.LevelInfo, func() {
		log.Info("structured entry", "component", "api")
	})
	require.NoError(t, err)
	require.NotEmpty(t, logs)

	AssertLogContainsJSON(t, logs, map[string]interface{}{
		"msg":       "structured entry",
		"component": "api",
	})
}

func TestSuppressLogging(t *testing.T) {
	restore := SuppressLogging()
	log.Error("this should go nowhere")
	restore()

	output, err := CaptureLogOutput(log.LevelInfo, func() {
		log.Info("after restore")
	})
	require.NoError(t, err)
	assert.Contains(t, output, "after restore", "logging works again after restore")
}

func TestCaptureLogging(t *testing.T) {
	done := CaptureLogging()
	log.Info("buffered line")
	output := done()
	assert.Contains(t, output, "buffered line")
}
