package generator_test

import (
	"testing"

	"auto_linkedin_poster/generator"
	"github.com/stretchr/testify/assert"
)

func TestBuildPostPrompt(t *testing.T) {
	p := generator.BuildPostPrompt("Data visualization best practices", generator.DefaultStyle())

	assert.Contains(t, p.User, "Topic: Data visualization best practices")
	assert.Contains(t, p.User, "150-300 words")
	assert.Contains(t, p.User, "3-5 relevant hashtags")
	assert.Contains(t, p.System, "data science professional")
	assert.Equal(t, generator.PostMaxTokens, p.MaxTokens)
	assert.InDelta(t, generator.PostTemperature, p.Temperature, 1e-9)
}

func TestBuildPostPrompt_StyleOverrides(t *testing.T) {
	style := generator.DefaultStyle()
	style.Persona = "a platform engineer"
	style.MaxTokens = 600
	style.Temperature = 0.75

	p := generator.BuildPostPrompt("Kubernetes upgrades", style)

	assert.Equal(t, "You are a platform engineer.", p.System)
	assert.Equal(t, 600, p.MaxTokens)
	assert.InDelta(t, 0.75, p.Temperature, 1e-9)
}

func TestBuildImagePrompt(t *testing.T) {
	p := generator.BuildImagePrompt("Feature engineering", generator.ImageAngles[0])

	assert.Empty(t, p.System)
	assert.Contains(t, p.User, "max 100 characters")
	assert.Contains(t, p.User, "about: Feature engineering")
	assert.Contains(t, p.User, "Focus on: data visualization")
	assert.Equal(t, generator.ImagePromptMaxTokens, p.MaxTokens)
	assert.InDelta(t, generator.ImagePromptTemperature, p.Temperature, 1e-9)
}
