package prompt

import (
	"strings"
	"testing"
)

func TestRenderReplacesKnownPlaceholders(t *testing.T) {
	out := Render("발표 목적: {purpose}, 대상: {audience}", map[string]string{
		"purpose":  "보고",
		"audience": "경영진",
	})
	if out != "발표 목적: 보고, 대상: 경영진" {
		t.Fatalf("unexpected render output: %q", out)
	}
}

func TestRenderKeepsUnknownPlaceholders(t *testing.T) {
	out := Render("known {purpose} unknown {mystery}", map[string]string{"purpose": "보고"})
	if out != "known 보고 unknown {mystery}" {
		t.Fatalf("unknown placeholder must stay verbatim, got %q", out)
	}
}

func TestRenderDoesNotReexpandInsertedValues(t *testing.T) {
	// A value containing placeholder syntax must be inserted literally.
	out := Render("{a} and {b}", map[string]string{
		"a": "{b}",
		"b": "value",
	})
	if out != "{b} and value" {
		t.Fatalf("inserted values must not be re-expanded, got %q", out)
	}
}

func TestRenderReplacesRepeatedPlaceholders(t *testing.T) {
	out := Render("{x} {x} {x}", map[string]string{"x": "y"})
	if out != "y y y" {
		t.Fatalf("got %q", out)
	}
}

func TestRenderIgnoresMalformedPlaceholders(t *testing.T) {
	// Placeholders must start with a letter; these are left untouched.
	tmpl := "{1abc} {} { spaced }"
	out := Render(tmpl, map[string]string{"1abc": "no", "": "no", " spaced ": "no"})
	if out != tmpl {
		t.Fatalf("malformed placeholders must stay verbatim, got %q", out)
	}
}

func TestDefaultsAreComplete(t *testing.T) {
	cfg := Defaults()
	if !cfg.IsComplete() {
		t.Fatal("built-in defaults must be complete")
	}
	for _, name := range []string{"{inputText}", "{purpose}", "{slideCount}", "{scriptInstruction}"} {
		if !strings.Contains(cfg.TextTemplate, name) {
			t.Errorf("text template missing placeholder %s", name)
		}
	}
	for _, name := range []string{"{fileName}", "{fileExtension}", "{extractedText}"} {
		if !strings.Contains(cfg.FileTemplate, name) {
			t.Errorf("file template missing placeholder %s", name)
		}
	}
}

func TestIsCompleteRejectsEmptyFields(t *testing.T) {
	cfg := Defaults()
	cfg.SystemMessage = ""
	if cfg.IsComplete() {
		t.Fatal("config with empty system message must not be complete")
	}
}
