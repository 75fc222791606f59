package style

import (
	"strings"
	"testing"
)

func TestDisabledReturnsPlainText(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("MANUBOT_NO_COLOR", "")

	Init(false)

	tests := []struct {
		name string
		fn   func(string) string
	}{
		{"Success", Success},
		{"Warning", Warning},
		{"Error", Error},
		{"Critical", Critical},
		{"Info", Info},
		{"Header", Header},
		{"Muted", Muted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "test message"
			output := tt.fn(input)

			if output != input {
				t.Errorf("%s() with disabled styling: got %q, want %q", tt.name, output, input)
			}

			if strings.Contains(output, "\x1b[") {
				t.Errorf("%s() with disabled styling contains ANSI codes: %q", tt.name, output)
			}
		})
	}
}

func TestEnabledReturnsStyledText(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("MANUBOT_NO_COLOR", "")

	Init(true)
	defer Init(false)

	if !Enabled() {
		t.Fatal("Enabled() = false after Init(true)")
	}

	output := Error("boom")
	if !strings.Contains(output, "boom") {
		t.Errorf("Error() lost its input: %q", output)
	}
	if !strings.Contains(output, "\x1b[") {
		t.Errorf("Error() with enabled styling has no ANSI codes: %q", output)
	}
	if GetColors().Error != DefaultColors.Error {
		t.Errorf("GetColors().Error = %q, want %q", GetColors().Error, DefaultColors.Error)
	}
}

func TestNoColorEnvDisablesStyling(t *testing.T) {
	for _, env := range []string{"NO_COLOR", "MANUBOT_NO_COLOR"} {
		t.Run(env, func(t *testing.T) {
			t.Setenv("NO_COLOR", "")
			t.Setenv("MANUBOT_NO_COLOR", "")
			t.Setenv(env, "1")

			Init(true)
			defer Init(false)

			if Enabled() {
				t.Errorf("%s set but styling is enabled", env)
			}
			if got := Warning("plain"); got != "plain" {
				t.Errorf("Warning() = %q, want plain text", got)
			}
		})
	}
}
