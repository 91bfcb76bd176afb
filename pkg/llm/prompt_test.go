package llm

import (
	"strings"
	"testing"
	"time"
)

func TestBuildUserPrompt(t *testing.T) {
	req := GenerateRequest{
		Now:              time.Date(2025, 3, 7, 14, 30, 0, 0, time.UTC),
		Language:         "German",
		CountPerCategory: 3,
		ExcludeTitles:    []string{"Old story", "Older story"},
	}

	prompt := buildUserPrompt(req)

	for _, want := range []string{
		"Friday, 7 March 2025 14:30",
		"3 best good news stories",
		"3 most shocking news stories",
		"in German",
		"Old story, Older story",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildUserPrompt_NoExclusions(t *testing.T) {
	req := GenerateRequest{
		Now:              time.Now(),
		Language:         "English",
		CountPerCategory: 3,
	}

	prompt := buildUserPrompt(req)

	if strings.Contains(prompt, "Already reported") {
		t.Errorf("prompt mentions exclusions without any titles:\n%s", prompt)
	}
}
