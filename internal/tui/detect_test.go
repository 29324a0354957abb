package tui

import "testing"

func TestDetectMode_EnvOverrides(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"explicit non-interactive", "ORDERLENS_NON_INTERACTIVE", "1"},
		{"CI environment", "CI", "true"},
		{"NO_COLOR set", "NO_COLOR", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if got := DetectMode(); got != ModeNonInteractive {
				t.Errorf("DetectMode() = %v, want ModeNonInteractive", got)
			}
		})
	}
}

func TestDetectMode_NonInteractiveFlagMustBeOne(t *testing.T) {
	t.Setenv("ORDERLENS_NON_INTERACTIVE", "0")
	t.Setenv("CI", "")
	t.Setenv("NO_COLOR", "")

	// Under `go test` stdin is not a terminal, so this still resolves to
	// non-interactive via the terminal check rather than the env override.
	if got := DetectMode(); got != ModeNonInteractive {
		t.Errorf("DetectMode() = %v, want ModeNonInteractive", got)
	}
}

func TestIsInteractive_MatchesDetectMode(t *testing.T) {
	if IsInteractive() != (DetectMode() == ModeInteractive) {
		t.Error("IsInteractive disagrees with DetectMode")
	}
}
