// Package deck defines the canonical slide deck schema and the strict
// normalizer that turns raw LLM output into it. The canonical shape is the
// richer mainCopy/body/visualSuggestion/script revision; the older
// title/content wire spelling is accepted at the parse boundary only and
// never exists in memory.
package deck

// SlideType is the closed set of slide layouts the renderer understands.
type SlideType string

const (
	SlideTypeTitle      SlideType = "title"
	SlideTypePoints     SlideType = "points"
	SlideTypeComparison SlideType = "comparison"
	SlideTypeTimeline   SlideType = "timeline"
	SlideTypeConclusion SlideType = "conclusion"
)

// knownSlideTypes guards the closed set; anything else normalizes to points.
var knownSlideTypes = map[SlideType]bool{
	SlideTypeTitle:      true,
	SlideTypePoints:     true,
	SlideTypeComparison: true,
	SlideTypeTimeline:   true,
	SlideTypeConclusion: true,
}

// BulletPoint is one body entry: a primary point with optional sub-points.
type BulletPoint struct {
	Point string   `json:"point"`
	Sub   []string `json:"sub,omitempty"`
}

// Slide is a single normalized slide.
type Slide struct {
	ID                string        `json:"id"`
	MainCopy          string        `json:"mainCopy"`
	SubCopy           string        `json:"subCopy,omitempty"`
	Body              []BulletPoint `json:"body"`
	VisualSuggestions []string      `json:"visualSuggestion,omitempty"`
	Script            string        `json:"script,omitempty"`
	Type              SlideType     `json:"type"`
}

// Deck is the normalized slide deck returned to the caller. Slides is always
// non-empty and slide ids are unique within the deck.
type Deck struct {
	Title    string  `json:"title"`
	Purpose  string  `json:"purpose"`
	Audience string  `json:"audience"`
	Slides   []Slide `json:"slides"`
}
