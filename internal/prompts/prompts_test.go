package prompts

import (
	"strings"
	"testing"
)

func TestBuildFullPromptRoundTrip(t *testing.T) {
	custom := "## Identity\nYou are Alex from Dispatch.\n"
	full := BuildFullPrompt(custom)

	if !strings.HasPrefix(full, "## Style Guardrails") {
		t.Fatalf("expected system prefix at start")
	}
	if got := ExtractUserPrompt(full); got != custom {
		t.Fatalf("expected custom prompt back, got %q", got)
	}
}

func TestExtractUserPromptWithoutSeparator(t *testing.T) {
	raw := "just a bare prompt"
	if got := ExtractUserPrompt(raw); got != raw {
		t.Fatalf("expected prompt unchanged, got %q", got)
	}
}
