package imagegen

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"auto_linkedin_poster/logger"
	"github.com/go-resty/resty/v2"
)

const (
	ImageWidth     = 1200
	ImageHeight    = 630
	RequestTimeout = 60 * time.Second
	DefaultPause   = time.Second
)

// Image is a rendered file owned by the run's Scratch.
type Image struct {
	Prompt string
	Seed   int
	Path   string
	Size   int64
}

// Renderer downloads images from a generate-by-URL service such as
// image.pollinations.ai, one request at a time.
type Renderer struct {
	client *resty.Client
	// Pause is the politeness delay between consecutive requests.
	Pause time.Duration
	log   logger.Logger
}

func NewRenderer(baseURL string, log logger.Logger) *Renderer {
	if log == nil {
		log = logger.NewNop()
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(RequestTimeout).
		SetHeader("User-Agent", "auto-linkedin-poster/1.0")
	return &Renderer{client: client, Pause: DefaultPause, log: log}
}

// Render turns each prompt into a file in scratch, in order. Seeds are the
// 1-based prompt positions. Failed prompts are logged and left out; an empty
// result is not an error.
func (r *Renderer) Render(ctx context.Context, scratch *Scratch, prompts []string) []Image {
	var images []Image
	for i, prompt := range prompts {
		if i > 0 && !sleep(ctx, r.Pause) {
			r.log.Warn("image rendering interrupted", logger.Error(ctx.Err()))
			break
		}
		seed := i + 1
		img, err := r.renderOne(ctx, scratch, prompt, seed)
		if err != nil {
			r.log.Warn("image render failed", logger.Int("seed", seed), logger.Error(err))
			continue
		}
		r.log.Info("image rendered", logger.Int("seed", seed), logger.String("path", img.Path), logger.Int64("bytes", img.Size))
		images = append(images, img)
	}
	return images
}

func (r *Renderer) renderOne(ctx context.Context, scratch *Scratch, prompt string, seed int) (Image, error) {
	resp, err := r.client.R().
		SetContext(ctx).
		SetPathParam("prompt", prompt).
		SetQueryParams(map[string]string{
			"width":  strconv.Itoa(ImageWidth),
			"height": strconv.Itoa(ImageHeight),
			"nologo": "true",
			"seed":   strconv.Itoa(seed),
		}).
		Get("/prompt/{prompt}")
	if err != nil {
		return Image{}, fmt.Errorf("request image: %w", err)
	}
	if !resp.IsSuccess() {
		return Image{}, fmt.Errorf("image service returned %d: %s", resp.StatusCode(), truncate(resp.String(), 300))
	}
	body := resp.Body()
	if len(body) == 0 {
		return Image{}, errors.New("image service returned an empty body")
	}

	path, err := scratch.Write(body, ".jpg")
	if err != nil {
		return Image{}, err
	}
	return Image{Prompt: prompt, Seed: seed, Path: path, Size: int64(len(body))}, nil
}

// sleep waits for d or until ctx is done; it reports whether the full wait elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
