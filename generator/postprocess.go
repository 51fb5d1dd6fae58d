package generator

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var hashtagRe = regexp.MustCompile(`#[\p{L}\p{N}_]+`)

// PostProcess 校验模型输出并检查风格问题；正文不做改写。
func PostProcess(raw string, topic string, style Style) (Post, error) {
	body := strings.TrimSpace(raw)
	if body == "" {
		return Post{}, errors.New("model returned empty post")
	}

	var warnings []string
	if n := len(strings.Fields(body)); style.MinWords > 0 && style.MaxWords > 0 &&
		(n < style.MinWords || n > style.MaxWords) {
		warnings = append(warnings, fmt.Sprintf("word count %d outside %d-%d", n, style.MinWords, style.MaxWords))
	}
	tags := extractHashtags(body)
	if len(tags) == 0 {
		warnings = append(warnings, "no hashtags")
	}
	if hasEmoji(body) {
		warnings = append(warnings, "contains emoji")
	}
	for _, kind := range markdownKinds(body) {
		warnings = append(warnings, "markdown "+kind)
	}

	return Post{
		Topic:    topic,
		Text:     body,
		Hashtags: tags,
		Warnings: warnings,
	}, nil
}

func extractHashtags(body string) []string {
	seen := map[string]bool{}
	var tags []string
	for _, tag := range hashtagRe.FindAllString(body, -1) {
		key := strings.ToLower(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		tags = append(tags, tag)
	}
	return tags
}

func hasEmoji(body string) bool {
	for _, r := range body {
		if unicode.Is(unicode.So, r) || (r >= 0x1F300 && r <= 0x1FAFF) {
			return true
		}
	}
	return false
}

// markdownKinds lists the markdown constructs LinkedIn would show literally.
func markdownKinds(body string) []string {
	src := []byte(body)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	found := map[string]bool{}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			found["heading"] = true
		case ast.KindEmphasis:
			found["emphasis"] = true
		case ast.KindLink, ast.KindImage:
			found["link"] = true
		case ast.KindCodeSpan, ast.KindFencedCodeBlock:
			found["code"] = true
		}
		return ast.WalkContinue, nil
	})

	kinds := make([]string, 0, len(found))
	for k := range found {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

const quoteTrim = "\"'`“”‘’"

// cleanImagePrompt strips surrounding quotes, collapses whitespace and caps the length.
func cleanImagePrompt(raw string) string {
	p := strings.TrimSpace(raw)
	p = strings.Trim(p, quoteTrim)
	p = strings.Join(strings.Fields(p), " ")
	if r := []rune(p); len(r) > MaxImagePromptLength {
		p = strings.TrimSpace(string(r[:MaxImagePromptLength]))
	}
	return p
}
