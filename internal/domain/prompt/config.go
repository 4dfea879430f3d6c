package prompt

import "time"

// Config is the operator-editable prompt configuration. It is loaded fresh
// on every generation call so admin edits take effect without a restart.
type Config struct {
	SystemMessage string     `json:"systemMessage"`
	FileTemplate  string     `json:"filePromptTemplate"`
	TextTemplate  string     `json:"textPromptTemplate"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// IsComplete reports whether all three editable fields are non-empty.
// Saving an incomplete configuration is rejected.
func (c Config) IsComplete() bool {
	return c.SystemMessage != "" && c.FileTemplate != "" && c.TextTemplate != ""
}

// Defaults returns the built-in prompt configuration, used whenever the
// backing store is absent or unreadable.
func Defaults() Config {
	return Config{
		SystemMessage: "당신은 전문적인 프레젠테이션 컨설턴트입니다. 텍스트나 문서를 분석하여 체계적이고 상세한 PPT 슬라이드를 생성하는 전문가입니다. " +
			"단순한 키워드 나열이 아닌, 구조화된 정보와 구체적인 설명을 포함한 고품질 슬라이드를 제작합니다. 항상 JSON 형식으로만 응답하세요.",
		FileTemplate: `다음 파일의 내용을 분석하여 프레젠테이션 슬라이드를 생성해주세요.

파일명: {fileName}
파일 형식: {fileExtension}
파일 내용:
{extractedText}

발표 목적: {purpose}
대상 청중: {audience}
슬라이드 수: {slideCount}장
어조: {tone}
언어: {language}
{scriptInstruction}
각 슬라이드는 id, mainCopy, subCopy, body(point와 sub 배열), visualSuggestion, type 필드를 가진 JSON 객체로 응답하세요.`,
		TextTemplate: `다음 텍스트를 분석하여 프레젠테이션 슬라이드를 생성해주세요.

입력 텍스트:
{inputText}

발표 목적: {purpose}
대상 청중: {audience}
슬라이드 수: {slideCount}장
어조: {tone}
언어: {language}
{scriptInstruction}
각 슬라이드는 id, mainCopy, subCopy, body(point와 sub 배열), visualSuggestion, type 필드를 가진 JSON 객체로 응답하세요.`,
	}
}
