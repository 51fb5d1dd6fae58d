package generator

import (
	"context"
	"errors"
	"fmt"

	"auto_linkedin_poster/logger"
)

// Agent 负责根据主题生成帖子正文和配图提示词。
type Agent struct {
	llm   LLMClient
	style Style
	log   logger.Logger
}

func NewAgent(llm LLMClient, style Style, log logger.Logger) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Agent{llm: llm, style: style, log: log}, nil
}

// WritePost drafts the post body for topic. Any completion failure is returned.
func (a *Agent) WritePost(ctx context.Context, topic string) (Post, error) {
	raw, err := a.llm.Complete(ctx, BuildPostPrompt(topic, a.style))
	if err != nil {
		return Post{}, fmt.Errorf("generate post: %w", err)
	}
	post, err := PostProcess(raw, topic, a.style)
	if err != nil {
		return Post{}, fmt.Errorf("generate post: %w", err)
	}
	for _, w := range post.Warnings {
		a.log.Warn("post style check", logger.String("issue", w))
	}
	return post, nil
}

// ImagePrompts asks the model for one prompt per angle, up to n and at most
// len(ImageAngles). Failed or empty completions are left out, so the result
// may be shorter than requested.
func (a *Agent) ImagePrompts(ctx context.Context, topic string, n int) []string {
	n = min(n, len(ImageAngles))
	prompts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		raw, err := a.llm.Complete(ctx, BuildImagePrompt(topic, ImageAngles[i]))
		if err != nil {
			a.log.Warn("image prompt failed", logger.Int("index", i+1), logger.Error(err))
			continue
		}
		p := cleanImagePrompt(raw)
		if p == "" {
			a.log.Warn("image prompt empty", logger.Int("index", i+1))
			continue
		}
		a.log.Info("image prompt ready", logger.Int("index", i+1), logger.String("prompt", p))
		prompts = append(prompts, p)
	}
	return prompts
}
