package generator

import (
	"fmt"
	"strings"
)

const (
	PostTemperature        = 0.7
	PostMaxTokens          = 1024
	ImagePromptTemperature = 0.8
	ImagePromptMaxTokens   = 100
	MaxImagePromptLength   = 100
)

// ImageAngles are the framings model-derived image prompts rotate through.
var ImageAngles = []string{
	"data visualization, charts and dashboards",
	"futuristic technology, AI and neural networks",
	"professionals collaborating around data",
}

// Prompt 表示发送给 LLM 的消息及生成参数。
type Prompt struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// BuildPostPrompt renders the instruction for the main post body.
func BuildPostPrompt(topic string, style Style) Prompt {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("You are %s creating a LinkedIn post.\n\n", style.Persona))
	sb.WriteString(fmt.Sprintf("Topic: %s\n\n", topic))
	sb.WriteString("Create an engaging, professional LinkedIn post about this topic. The post should:\n")
	if style.MinWords > 0 && style.MaxWords > 0 {
		sb.WriteString(fmt.Sprintf("- Be %d-%d words\n", style.MinWords, style.MaxWords))
	}
	if style.Audience != "" {
		sb.WriteString(fmt.Sprintf("- Provide value to %s\n", style.Audience))
	}
	sb.WriteString("- Be conversational but professional\n")
	sb.WriteString("- Follow this structure:\n")
	for i, item := range style.Structure {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, item))
	}
	if len(style.Forbidden) > 0 {
		sb.WriteString("\nDo not use ")
		sb.WriteString(strings.Join(style.Forbidden, ", "))
		sb.WriteString(".\n")
	}
	sb.WriteString("Write the post directly as plain text without markdown formatting.")

	p := Prompt{
		System:      fmt.Sprintf("You are %s.", style.Persona),
		User:        sb.String(),
		MaxTokens:   PostMaxTokens,
		Temperature: PostTemperature,
	}
	if style.MaxTokens > 0 {
		p.MaxTokens = style.MaxTokens
	}
	if style.Temperature > 0 {
		p.Temperature = style.Temperature
	}
	return p
}

// BuildImagePrompt asks for one short image description for topic from the given angle.
func BuildImagePrompt(topic, angle string) Prompt {
	user := fmt.Sprintf("Create a short image generation prompt (max %d characters) for a professional LinkedIn post about: %s\n"+
		"Focus on: %s\n"+
		"Style: modern, clean, professional, no text in image\n"+
		"Return only the prompt, nothing else.", MaxImagePromptLength, topic, angle)

	return Prompt{
		User:        user,
		MaxTokens:   ImagePromptMaxTokens,
		Temperature: ImagePromptTemperature,
	}
}
