package deck

import (
	"reflect"
	"testing"
)

func TestPlaceholderDeckShape(t *testing.T) {
	d := Placeholder(PlaceholderInput{Purpose: "보고", Audience: "경영진", SourceHint: "report.docx"})

	if d.Title != "보고 프레젠테이션" {
		t.Errorf("title = %q, want %q", d.Title, "보고 프레젠테이션")
	}
	if len(d.Slides) != 4 {
		t.Fatalf("slide count = %d, want 4", len(d.Slides))
	}

	wantTypes := []SlideType{SlideTypeTitle, SlideTypePoints, SlideTypePoints, SlideTypeConclusion}
	for i, s := range d.Slides {
		if s.Type != wantTypes[i] {
			t.Errorf("slide %d type = %q, want %q", i+1, s.Type, wantTypes[i])
		}
		if s.Script != "" {
			t.Errorf("slide %d carries a script; placeholder decks must not", i+1)
		}
		if s.MainCopy == "" {
			t.Errorf("slide %d has no headline", i+1)
		}
	}

	seen := map[string]bool{}
	for _, s := range d.Slides {
		if seen[s.ID] {
			t.Errorf("duplicate slide id %q", s.ID)
		}
		seen[s.ID] = true
	}
}

func TestPlaceholderIsDeterministic(t *testing.T) {
	in := PlaceholderInput{Purpose: "제안", Audience: "고객사", SourceHint: "텍스트 입력 (120자)"}
	if !reflect.DeepEqual(Placeholder(in), Placeholder(in)) {
		t.Fatal("same input must yield the same deck")
	}
}
