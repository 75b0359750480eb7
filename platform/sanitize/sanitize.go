// Package sanitize provides text sanitization utilities for dealer-provided free text.
package sanitize

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHTML removes all markup from s and returns the decoded text content.
// Script and style element bodies are dropped entirely. A second pass runs
// over the decoded text so entity-encoded tags are removed as well.
func StripHTML(s string) string {
	return stripOnce(stripOnce(s))
}

func stripOnce(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}

	tokenizer := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	skipDepth := 0

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.StartTagToken:
			if isRawTextElement(tokenizer) {
				skipDepth++
			}
		case html.EndTagToken:
			if skipDepth > 0 && isRawTextElement(tokenizer) {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(tokenizer.Text())
			}
		}
	}
}

func isRawTextElement(t *html.Tokenizer) bool {
	name, _ := t.TagName()
	switch string(name) {
	case "script", "style":
		return true
	default:
		return false
	}
}

// Text sanitizes a string for safe text storage. Use for inquiry text,
// notes and addresses.
func Text(s string) string {
	return StripHTML(s)
}

// TextPtr is a helper for optional string pointers
func TextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	result := Text(*s)
	return &result
}
