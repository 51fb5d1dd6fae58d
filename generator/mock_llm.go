package generator

import (
	"context"
	"fmt"
	"strings"
)

// MockLLM 一个简单的占位实现，便于本地调试，不调用外部模型。
// Post requests get a fixed post body; image prompt requests get a short description.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	topic := promptField(prompt.User, "Topic:")
	if topic == "" {
		topic = promptField(prompt.User, "about:")
	}

	if strings.Contains(prompt.User, "image generation prompt") {
		focus := promptField(prompt.User, "Focus on:")
		return fmt.Sprintf("%q", strings.TrimSpace(topic+", "+focus+", clean modern illustration")), nil
	}

	var sb strings.Builder
	sb.WriteString("Most teams underestimate how much " + topic + " shapes their results.\n\n")
	sb.WriteString("This is a dry-run post generated without calling a language model. ")
	sb.WriteString("It exists so the pipeline can be exercised end to end.\n\n")
	sb.WriteString("- Start small and measure\n- Automate the boring parts\n- Review results every week\n\n")
	sb.WriteString("What has worked for you?\n\n")
	sb.WriteString("#DataScience #MachineLearning #Analytics")
	return sb.String(), nil
}

// promptField returns what follows label on the same line.
func promptField(text, label string) string {
	_, rest, ok := strings.Cut(text, label)
	if !ok {
		return ""
	}
	line, _, _ := strings.Cut(rest, "\n")
	return strings.TrimSpace(line)
}
