package imagegen

import (
	"context"
	"math/rand"
	"strings"
)

const (
	promptSuffix    = "professional, no text"
	maxPromptLength = 100
)

var (
	subjects = []string{
		"abstract data network",
		"glowing bar charts",
		"neural network nodes",
		"team reviewing dashboards",
		"flowing streams of numbers",
		"cloud server racks",
		"robot hand and human hand",
		"magnifier over graphs",
	}
	settings = []string{
		"modern office",
		"futuristic city skyline",
		"minimal studio backdrop",
		"digital landscape",
		"bright conference room",
		"starfield of data",
	}
	palettes = []string{
		"blue and white tones",
		"teal and orange accents",
		"soft gradient lighting",
		"flat vector style",
		"isometric 3d render",
		"warm corporate colors",
	}
)

// Combinatorial builds image prompts locally from fixed pools of subjects,
// settings and palettes. It never calls the network.
type Combinatorial struct {
	rnd *rand.Rand
}

// NewCombinatorial uses rnd for every draw; nil uses the package-level source.
func NewCombinatorial(rnd *rand.Rand) *Combinatorial {
	return &Combinatorial{rnd: rnd}
}

// ImagePrompts returns n prompts. The topic is not used.
func (c *Combinatorial) ImagePrompts(_ context.Context, _ string, n int) []string {
	prompts := make([]string, 0, max(n, 0))
	for i := 0; i < n; i++ {
		p := strings.Join([]string{c.pick(subjects), c.pick(settings), c.pick(palettes), promptSuffix}, ", ")
		if len(p) > maxPromptLength {
			p = p[:maxPromptLength]
		}
		prompts = append(prompts, p)
	}
	return prompts
}

func (c *Combinatorial) pick(pool []string) string {
	if c.rnd == nil {
		return pool[rand.Intn(len(pool))]
	}
	return pool[c.rnd.Intn(len(pool))]
}
