// Package extract converts uploaded documents into plain text for the
// generation pipeline. Dispatch is by lowercased file extension; every
// format-specific failure degrades to a best-effort placeholder so a broken
// document never aborts the user's request. The only hard failure is a plain
// text file that cannot be read at all.
package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Format identifies the source document class of extracted text.
type Format string

const (
	FormatPlainText           Format = "plain_text"
	FormatWord                Format = "word"
	FormatPDF                 Format = "pdf"
	FormatLegacyWordProcessor Format = "hwp"
	FormatUnsupported         Format = "unsupported"
)

// DefaultMaxTextLength bounds extracted text so the rendered prompt stays
// inside the downstream model's input-token budget.
const DefaultMaxTextLength = 10000

// truncationMarker is appended whenever extracted text is cut at the limit.
const truncationMarker = "\n\n... (텍스트가 길어서 일부만 포함됨)"

// Content is the result of a text extraction.
type Content struct {
	Text     string
	Format   Format
	Warnings []string
}

// Service extracts normalized text from uploaded files.
type Service struct {
	maxTextLen int
}

// New creates a Service with the default text-length ceiling.
func New() *Service {
	return &Service{maxTextLen: DefaultMaxTextLength}
}

// NewWithMaxLength creates a Service with a custom ceiling. Values <= 0 fall
// back to the default.
func NewWithMaxLength(maxLen int) *Service {
	if maxLen <= 0 {
		maxLen = DefaultMaxTextLength
	}
	return &Service{maxTextLen: maxLen}
}

// Extract reads the file at path and returns its text content. originalName
// is the name the user uploaded, which carries the extension that drives
// dispatch (the stored file may have a generated name).
func (s *Service) Extract(ctx context.Context, path, originalName string) (*Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(originalName)), ".")
	var c *Content
	switch ext {
	case "txt":
		text, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("extract: read text file %q: %w", path, err)
		}
		c = &Content{Text: string(text), Format: FormatPlainText}
	case "docx", "doc":
		c = s.extractWord(path, originalName, ext)
	case "pdf":
		c = s.extractPDF(path, originalName)
	case "hwp":
		// No pure-Go HWP reader exists; downstream generation works from the
		// filename alone.
		c = &Content{
			Text:     fmt.Sprintf("HWP 파일은 텍스트 추출을 지원하지 않습니다.\n파일명: %s\n파일 이름을 참고하여 슬라이드를 생성해주세요.", originalName),
			Format:   FormatLegacyWordProcessor,
			Warnings: []string{"hwp text extraction unsupported, used filename fallback"},
		}
	default:
		c = s.extractOther(path, originalName, ext)
	}

	s.truncate(c)
	return c, nil
}

// extractWord handles docx/doc. Extraction failure degrades to a filename
// placeholder; this format class never fails outright.
func (s *Service) extractWord(path, originalName, ext string) *Content {
	text, err := extractDocxText(path)
	if err != nil || strings.TrimSpace(text) == "" {
		return &Content{
			Text:     fmt.Sprintf("%s 파일을 읽을 수 없습니다: %s", strings.ToUpper(ext), originalName),
			Format:   FormatWord,
			Warnings: []string{fmt.Sprintf("%s extraction failed, used filename fallback", ext)},
		}
	}
	return &Content{Text: text, Format: FormatWord}
}

// extractPDF degrades to a filename placeholder on any parse failure.
func (s *Service) extractPDF(path, originalName string) *Content {
	text, err := extractPDFText(path)
	if err != nil || strings.TrimSpace(text) == "" {
		return &Content{
			Text:     fmt.Sprintf("PDF 파일을 읽을 수 없습니다: %s", originalName),
			Format:   FormatPDF,
			Warnings: []string{"pdf extraction failed, used filename fallback"},
		}
	}
	return &Content{Text: text, Format: FormatPDF}
}

// extractOther reports filename, size and format for the residual bucket.
// Even a failed read degrades further to a filename-only placeholder.
func (s *Service) extractOther(path, originalName, ext string) *Content {
	info, err := os.Stat(path)
	if err != nil {
		return &Content{
			Text:     fmt.Sprintf("파일명: %s", originalName),
			Format:   FormatUnsupported,
			Warnings: []string{"file unreadable, used filename fallback"},
		}
	}
	label := strings.ToUpper(ext)
	if label == "" {
		label = "UNKNOWN"
	}
	return &Content{
		Text: fmt.Sprintf("파일명: %s\n파일 크기: %dKB\n파일 형식: %s\n\n이 파일의 내용을 기반으로 슬라이드를 생성해주세요.",
			originalName, (info.Size()+1023)/1024, label),
		Format:   FormatUnsupported,
		Warnings: []string{"format unreadable, used file metadata fallback"},
	}
}

// truncate cuts c.Text at the ceiling and appends the fixed marker. The
// ceiling counts characters, not bytes — cutting at a byte offset would keep
// a third of the budget for Korean text and could split a rune, leaving
// invalid UTF-8 in the prompt.
func (s *Service) truncate(c *Content) {
	if utf8.RuneCountInString(c.Text) <= s.maxTextLen {
		return
	}
	runes := []rune(c.Text)
	c.Text = string(runes[:s.maxTextLen]) + truncationMarker
	c.Warnings = append(c.Warnings, "text truncated to length limit")
}
