package pipeline

import "fmt"

// State is a stage of a run. A run moves forward only.
type State int

const (
	SelectTopic State = iota
	GenerateText
	GeneratePrompts
	RenderImages
	UploadImages
	Publish
	Cleanup
	Done
	Failed
)

var stateNames = [...]string{
	SelectTopic:     "select_topic",
	GenerateText:    "generate_text",
	GeneratePrompts: "generate_prompts",
	RenderImages:    "render_images",
	UploadImages:    "upload_images",
	Publish:         "publish",
	Cleanup:         "cleanup",
	Done:            "done",
	Failed:          "failed",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == Done || s == Failed
}
