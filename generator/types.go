package generator

// Style describes how a post should read.
type Style struct {
	Persona  string
	Audience string
	MinWords int
	MaxWords int
	// Structure lists the parts a post must contain, in order.
	Structure []string
	// Forbidden lists content the model must not produce.
	Forbidden []string
	// MaxTokens and Temperature tune the post completion; zero values fall
	// back to PostMaxTokens and PostTemperature.
	MaxTokens   int
	Temperature float64
}

// DefaultStyle is the data science professional voice.
func DefaultStyle() Style {
	return Style{
		Persona:  "an expert data science professional who writes engaging LinkedIn content",
		Audience: "data science professionals",
		MinWords: 150,
		MaxWords: 300,
		Structure: []string{
			"A hook in the first sentence that grabs attention",
			"2-3 sentences of context explaining why the topic matters",
			"3-4 practical, actionable insights or tips",
			"A closing call-to-action that invites discussion",
			"3-5 relevant hashtags at the end",
		},
		Forbidden: []string{
			"emojis",
			"meta-commentary or explanations about the post",
			"generic greetings such as \"Hello LinkedIn\"",
		},
	}
}

// Post is the model's draft after post-processing.
type Post struct {
	Topic    string
	Text     string
	Hashtags []string
	// Warnings lists style rules the draft appears to break. They are
	// reported, never fixed: Text is what gets published.
	Warnings []string
}
