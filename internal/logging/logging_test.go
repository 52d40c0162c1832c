package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestDebug_DisabledInProduction(t *testing.T) {
	var buf bytes.Buffer

	logger := log.NewWithOptions(&buf, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(log.DebugLevel)

	appLogger := &AppLogger{
		logger: logger,
		debug:  false, // Production mode
	}

	appLogger.Debug("debug message that should not appear")

	output := buf.String()
	if strings.Contains(output, "debug message that should not appear") {
		t.Errorf("Expected debug message to be suppressed in production mode, got: %s", output)
	}
}

func TestInfoAndErrorAlwaysLogged(t *testing.T) {
	logger, buf := NewTestLogger()

	logger.Info("server starting", "version", "0.2.0")
	logger.Error("tool failed", "tool", "check_contract_risk")

	output := buf.String()
	if !strings.Contains(output, "server starting") {
		t.Errorf("Expected info message in output, got: %s", output)
	}
	if !strings.Contains(output, "version=0.2.0") {
		t.Errorf("Expected key-value pair in output, got: %s", output)
	}
	if !strings.Contains(output, "tool failed") {
		t.Errorf("Expected error message in output, got: %s", output)
	}
}

func TestDebugObject(t *testing.T) {
	logger, buf := NewTestLogger()

	logger.DebugObject("finding", struct{ Category string }{Category: "penalty"})

	output := buf.String()
	if !strings.Contains(output, "Object dump") {
		t.Errorf("Expected object dump in output, got: %s", output)
	}
	if !strings.Contains(output, "penalty") {
		t.Errorf("Expected object fields in output, got: %s", output)
	}
}

func TestLogPerformance(t *testing.T) {
	logger, buf := NewTestLogger()

	logger.LogPerformance("check_contract_risk", time.Now().Add(-time.Millisecond))

	output := buf.String()
	if !strings.Contains(output, "Performance") {
		t.Errorf("Expected performance entry in output, got: %s", output)
	}
	if !strings.Contains(output, "check_contract_risk") {
		t.Errorf("Expected operation name in output, got: %s", output)
	}
}

func TestPackageLevelLogging(t *testing.T) {
	// Package-level helpers route through the default logger; they must not
	// panic even before any explicit initialization.
	Info("package level info")
	Warn("package level warn")
	Debug("package level debug")
}
