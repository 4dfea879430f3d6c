package deck

import "fmt"

// PlaceholderInput carries the request fields the placeholder deck reflects
// back to the user. SourceHint is a short description of what was submitted
// (a file name or a text-length summary).
type PlaceholderInput struct {
	Purpose    string
	Audience   string
	SourceHint string
}

// Placeholder builds the deterministic stand-in deck served when the LLM
// credentials are missing or rejected. It is always exactly four slides
// (title, two points, conclusion), carries no scripts, and is pure: the same
// input yields the same deck.
func Placeholder(in PlaceholderInput) *Deck {
	return &Deck{
		Title:    fmt.Sprintf("%s 프레젠테이션", in.Purpose),
		Purpose:  in.Purpose,
		Audience: in.Audience,
		Slides: []Slide{
			{
				ID:       "slide-1",
				MainCopy: fmt.Sprintf("%s 프레젠테이션", in.Purpose),
				SubCopy:  fmt.Sprintf("%s 대상", in.Audience),
				Type:     SlideTypeTitle,
				VisualSuggestions: []string{
					"표지 이미지: 주제를 상징하는 단순한 배경",
				},
			},
			{
				ID:       "slide-2",
				MainCopy: "개요",
				SubCopy:  "입력하신 내용을 바탕으로 구성됩니다",
				Type:     SlideTypePoints,
				Body: []BulletPoint{
					{Point: "발표 배경과 목적 정리"},
					{Point: fmt.Sprintf("입력 자료: %s", in.SourceHint)},
					{Point: "핵심 메시지 도출"},
				},
				VisualSuggestions: []string{
					"3단 구성 다이어그램",
				},
			},
			{
				ID:       "slide-3",
				MainCopy: "주요 내용",
				SubCopy:  "AI 연결 후 실제 내용으로 대체됩니다",
				Type:     SlideTypePoints,
				Body: []BulletPoint{
					{Point: "첫 번째 핵심 포인트", Sub: []string{"세부 설명이 여기에 들어갑니다"}},
					{Point: "두 번째 핵심 포인트", Sub: []string{"세부 설명이 여기에 들어갑니다"}},
					{Point: "세 번째 핵심 포인트"},
				},
				VisualSuggestions: []string{
					"불릿 리스트와 아이콘",
				},
			},
			{
				ID:       "slide-4",
				MainCopy: "마무리",
				SubCopy:  "감사합니다",
				Type:     SlideTypeConclusion,
				Body: []BulletPoint{
					{Point: "핵심 내용 요약"},
					{Point: "다음 단계 제안"},
				},
				VisualSuggestions: []string{
					"요약 슬라이드: 핵심 키워드 강조",
				},
			},
		},
	}
}
