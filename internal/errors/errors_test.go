package errors

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "wrapped error",
			err:      fmt.Errorf("opening store: %w", errors.New("connection refused")),
			expected: "Error: opening store: connection refused",
		},
		{
			name:     "error with hint",
			err:      WithHint(errors.New("database not initialized"), "run 'progresio init'"),
			expected: "Error: database not initialized\nHint: run 'progresio init'",
		},
		{
			name:     "wrapped hint keeps suggestion",
			err:      fmt.Errorf("loading: %w", WithHint(errors.New("no such parameter"), "see 'progresio parameter list'")),
			expected: "Error: loading: no such parameter\nHint: see 'progresio parameter list'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestWithHint(t *testing.T) {
	if WithHint(nil, "anything") != nil {
		t.Error("WithHint(nil) should return nil")
	}

	base := errors.New("base")
	if !errors.Is(WithHint(base, "hint"), base) {
		t.Error("WithHint() should unwrap to the original error")
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("failed to load %s: %d entries", "sleep", 3)
	want := "Error: failed to load sleep: 3 entries"
	if got != want {
		t.Errorf("Formatf() = %q, want %q", got, want)
	}
}

func TestFatal(t *testing.T) {
	if os.Getenv("TEST_FATAL") == "1" {
		Fatal(errors.New("fatal error occurred"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatal$")
	cmd.Env = append(os.Environ(), "TEST_FATAL=1")
	var stderr strings.Builder
	cmd.Stderr = &stderr
	err := cmd.Run()

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		t.Fatalf("process exited with %v, want exit status 1", err)
	}
	if !strings.Contains(stderr.String(), "Error: fatal error occurred") {
		t.Errorf("stderr = %q, want it to contain the formatted error", stderr.String())
	}
}

func TestFatalNil(t *testing.T) {
	// Should return without exiting
	Fatal(nil)
}
