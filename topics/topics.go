// Package topics picks the subject of a post from a fixed candidate list.
package topics

import (
	"errors"
	"math/rand"
	"strings"
)

// ErrNoCandidates is returned when a selector is built from an empty list.
var ErrNoCandidates = errors.New("topic candidate list is empty")

// Default lists the data science topic areas posts rotate through.
var Default = []string{
	"Latest breakthroughs in machine learning",
	"Data science best practices and tips",
	"AI and ethics in 2026",
	"Python data science libraries and tools",
	"Real-world applications of AI",
	"Career advice for data scientists",
	"Data visualization techniques",
	"Big data and cloud computing trends",
	"Natural language processing advancements",
	"Computer vision and image recognition",
	"Deep learning architectures",
	"MLOps and model deployment",
	"Data engineering pipelines",
	"Statistical modeling techniques",
	"AI in healthcare and medicine",
	"Generative AI applications",
	"Time series forecasting methods",
	"A/B testing and experimentation",
	"Feature engineering strategies",
	"Data science interview preparation",
}

// Selector draws topics uniformly from an immutable candidate list.
type Selector struct {
	candidates []string
	rnd        *rand.Rand
}

// NewSelector copies candidates, dropping blank entries. A nil rnd uses the
// package-level source.
func NewSelector(candidates []string, rnd *rand.Rand) (*Selector, error) {
	kept := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return nil, ErrNoCandidates
	}
	return &Selector{candidates: kept, rnd: rnd}, nil
}

// Pick returns one candidate.
func (s *Selector) Pick() string {
	if s.rnd == nil {
		return s.candidates[rand.Intn(len(s.candidates))]
	}
	return s.candidates[s.rnd.Intn(len(s.candidates))]
}

// Candidates returns a copy of the list the selector draws from.
func (s *Selector) Candidates() []string {
	out := make([]string, len(s.candidates))
	copy(out, s.candidates)
	return out
}
