package generator

import (
	"context"
	"fmt"
)

// LLMClient 抽象大模型客户端，便于替换/Mock。
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings 提供给具体实现的基础配置。
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// NewLLM picks the client implementation for settings.Provider.
func NewLLM(settings LLMSettings) (LLMClient, error) {
	switch settings.Provider {
	case "groq":
		// Groq 提供 OpenAI 兼容接口，需填写 base_url。
		if settings.BaseURL == "" {
			return nil, fmt.Errorf("llm provider groq requires a base url (OpenAI-compatible endpoint)")
		}
		return NewOpenAILLMFromConfig(&settings)
	case "openai":
		return NewOpenAILLMFromConfig(&settings)
	case "mock":
		return MockLLM{}, nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", settings.Provider)
	}
}
