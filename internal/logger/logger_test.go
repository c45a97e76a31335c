package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	err := Init(Config{ConfigDir: configDir})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}
	if got := Logger.GetLevel(); got != log.WarnLevel {
		t.Errorf("default level = %v, want %v", got, log.WarnLevel)
	}
	if want := filepath.Join(logDir, "progresio.log"); Path() != want {
		t.Errorf("Path() = %q, want %q", Path(), want)
	}

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message", "parameter", "sleep")
	Error("Test error message")
}

func TestInitWritesToFile(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "custom-logs")

	if err := Init(Config{ConfigDir: t.TempDir(), LogDir: logDir, Level: "info"}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	Info("entry logged", "day", "2026-01-15")

	data, err := os.ReadFile(filepath.Join(logDir, "progresio.log"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "entry logged") {
		t.Errorf("log file does not contain message, got %q", string(data))
	}
}

func TestInitDebugMode(t *testing.T) {
	err := Init(Config{Debug: true, Level: "error", ConfigDir: filepath.Join(t.TempDir(), "config")})
	if err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}
	if got := Logger.GetLevel(); got != log.DebugLevel {
		t.Errorf("debug level = %v, want %v", got, log.DebugLevel)
	}
}

func TestInitInvalidLevel(t *testing.T) {
	if err := Init(Config{Level: "chatty", ConfigDir: t.TempDir()}); err == nil {
		t.Error("Init() expected error for unknown level")
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}
