// Package testutil provides logging helpers for tests: suppressing log
// output, capturing it as text, and capturing it as parsed JSON entries.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/keepstack-chart/pkg/log"
)

// mutex protects concurrent access to the global logger state.
var mutex sync.Mutex

// SuppressLogging redirects all logging output to io.Discard during test
// execution. Call the returned function to restore the original output.
func SuppressLogging() func() {
	mutex.Lock()
	defer mutex.Unlock()

	restoreLog := log.SetOutput(io.Discard)
	return func() {
		mutex.Lock()
		defer mutex.Unlock()
		restoreLog()
	}
}

// CaptureLogging captures log output written through pkg/log. Call the
// returned function to restore the original output and retrieve the captured
// text. Direct writes to os.Stdout or os.Stderr are not captured.
func CaptureLogging() func() string {
	mutex.Lock()

	var logBuf bytes.Buffer
	restoreLog := log.SetOutput(&logBuf)

	return func() string {
		defer mutex.Unlock()
		restoreLog()
		return logBuf.String()
	}
}

// CaptureLogOutput runs testFunc at the given log level and returns whatever
// it logged. The original output and level are restored before returning.
func CaptureLogOutput(logLevel log.Level, testFunc func()) (string, error) {
	originalLevel := log.CurrentLevel()

	var logBuf bytes.Buffer
	restoreLog := log.SetOutput(&logBuf)
	defer restoreLog()

	log.SetLevel(logLevel)
	defer log.SetLevel(originalLevel)

	var panicErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = fmt.Errorf("panic during log capture: %v", r)
			}
		}()
		testFunc()
	}()

	return logBuf.String(), panicErr
}

// CaptureJSONLogs runs testFunc at the given log level and parses each
// captured line as a JSON log entry. The default handler emits JSON, so no
// environment juggling is needed.
func CaptureJSONLogs(logLevel log.Level, testFunc func()) (logOutput string, parsedLogs []map[string]interface{}, err error) {
	logOutput, err = CaptureLogOutput(logLevel, testFunc)
	if err != nil {
		return logOutput, nil, err
	}

	if strings.TrimSpace(logOutput) == "" {
		return logOutput, nil, nil
	}

	for i, line := range strings.Split(strings.TrimSpace(logOutput), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var entry map[string]interface{}
		if unmarshalErr := json.Unmarshal([]byte(line), &entry); unmarshalErr != nil {
			return logOutput, parsedLogs, fmt.Errorf("failed to unmarshal log line %d as JSON: %w", i+1, unmarshalErr)
		}
		parsedLogs = append(parsedLogs, entry)
	}
	return logOutput, parsedLogs, nil
}

// AssertLogContainsJSON checks that at least one captured log entry contains
// all the key-value pairs of expectedLog.
func AssertLogContainsJSON(t *testing.T, logs []map[string]interface{}, expectedLog map[string]interface{}) {
	t.Helper()
	for _, logEntry := range logs {
		if containsAll(logEntry, expectedLog) {
			return
		}
	}

	expectedJSON, _ := json.MarshalIndent(expectedLog, "", "  ")
	actualJSON, _ := json.MarshalIndent(logs, "", "  ")
	assert.Fail(t, "Expected log entry not found",
		"Expected log containing:\n%s\n\nActual captured logs:\n%s",
		string(expectedJSON), string(actualJSON))
}

// containsAll reports whether entry has every key-value pair of want.
func containsAll(entry, want map[string]interface{}) bool {
	for key, wantValue := range want {
		gotValue, ok := entry[key]
		if !ok || fmt.Sprintf("%v", gotValue) != fmt.Sprintf("%v", wantValue) {
			return false
		}
	}
	return true
}
