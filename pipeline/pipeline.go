// Package pipeline runs one post from topic selection to publication.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"auto_linkedin_poster/generator"
	"auto_linkedin_poster/imagegen"
	"auto_linkedin_poster/logger"
	"auto_linkedin_poster/publisher"
	"github.com/google/uuid"
)

var (
	// ErrGenerateText means no post body could be produced; nothing was published.
	ErrGenerateText = errors.New("text generation failed")
	// ErrPublishFailed means the platform did not create the post.
	ErrPublishFailed = errors.New("publish failed")
)

type TopicPicker interface {
	Pick() string
}

type PostWriter interface {
	WritePost(ctx context.Context, topic string) (generator.Post, error)
}

type PromptSource interface {
	ImagePrompts(ctx context.Context, topic string, n int) []string
}

type ImageRenderer interface {
	Render(ctx context.Context, scratch *imagegen.Scratch, prompts []string) []imagegen.Image
}

type MediaUploader interface {
	UploadImages(ctx context.Context, paths []string) []string
}

type PostPublisher interface {
	Publish(ctx context.Context, text string, assets []string) (publisher.PostResult, error)
}

// Deps are the collaborators of a run. Prompts, Renderer and Uploader may be
// nil when ImageCount is zero.
type Deps struct {
	Topics    TopicPicker
	Writer    PostWriter
	Prompts   PromptSource
	Renderer  ImageRenderer
	Uploader  MediaUploader
	Publisher PostPublisher
}

type Options struct {
	// ImageCount is the number of images requested; 0 posts text only.
	ImageCount int
	// ImageDir holds rendered images while the run is in progress.
	ImageDir string
}

// Report summarises what a run did.
type Report struct {
	RunID   string
	Topic   string
	Post    generator.Post
	Prompts []string
	Images  []imagegen.Image
	Assets  []string
	Result  publisher.PostResult
	States  []State
	Final   State
}

func (r *Report) enter(s State) {
	r.States = append(r.States, s)
}

type Runner struct {
	deps Deps
	opts Options
	log  logger.Logger
}

func New(deps Deps, opts Options, log logger.Logger) (*Runner, error) {
	if deps.Topics == nil || deps.Writer == nil || deps.Publisher == nil {
		return nil, errors.New("topics, writer and publisher are required")
	}
	if opts.ImageCount < 0 {
		return nil, fmt.Errorf("image count must not be negative, got %d", opts.ImageCount)
	}
	if opts.ImageCount > 0 && (deps.Prompts == nil || deps.Renderer == nil || deps.Uploader == nil) {
		return nil, errors.New("prompts, renderer and uploader are required when images are enabled")
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Runner{deps: deps, opts: opts, log: log}, nil
}

// Run executes one post. Rendered images are deleted before Run returns on
// every path, panics included. A failed text generation or publish is
// returned wrapped in ErrGenerateText or ErrPublishFailed; failures in the
// image stages only reduce the number of images posted.
func (r *Runner) Run(ctx context.Context) (report Report, err error) {
	report.RunID = uuid.NewString()
	log := r.log.With(logger.String("run_id", report.RunID))

	var scratch *imagegen.Scratch
	defer func() {
		report.enter(Cleanup)
		if scratch != nil {
			if cerr := scratch.RemoveAll(); cerr != nil {
				log.Error("✗ cleanup left files behind", logger.Strings("files", scratch.Files()), logger.Error(cerr))
				err = errors.Join(err, fmt.Errorf("cleanup: %w", cerr))
			} else if len(report.Images) > 0 {
				log.Info("✓ temporary images removed", logger.Int("count", len(report.Images)))
			}
		}

		p := recover()
		if err != nil || p != nil {
			report.Final = Failed
		} else {
			report.Final = Done
		}
		report.enter(report.Final)
		if p != nil {
			panic(p)
		}
	}()

	report.enter(SelectTopic)
	report.Topic = r.deps.Topics.Pick()
	log.Info("selected topic", logger.String("topic", report.Topic))

	report.enter(GenerateText)
	post, err := r.deps.Writer.WritePost(ctx, report.Topic)
	if err != nil {
		log.Error("✗ post generation failed", logger.Error(err))
		return report, fmt.Errorf("%w: %w", ErrGenerateText, err)
	}
	report.Post = post
	log.Info("✓ post generated",
		logger.Int("words", len(strings.Fields(post.Text))),
		logger.Strings("hashtags", post.Hashtags))

	if r.opts.ImageCount > 0 {
		scratch, err = imagegen.NewScratch(r.opts.ImageDir)
		if err != nil {
			log.Warn("image directory unavailable, posting text only", logger.Error(err))
			scratch, err = nil, nil
		} else {
			report.Assets = r.images(ctx, log, scratch, &report)
		}
	} else {
		log.Info("image generation disabled, posting text only")
	}

	report.enter(Publish)
	res, err := r.deps.Publisher.Publish(ctx, post.Text, report.Assets)
	report.Result = res
	if err != nil {
		var statusErr *publisher.StatusError
		if errors.As(err, &statusErr) {
			log.Error("✗ failed to publish post",
				logger.Int("status", statusErr.Status),
				logger.String("response", statusErr.Body))
		} else {
			log.Error("✗ failed to publish post", logger.Error(err))
		}
		return report, fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	log.Info("✓ successfully posted",
		logger.String("post_id", res.ID),
		logger.Int("images", len(report.Assets)))
	return report, nil
}

// images runs the prompt, render and upload stages and returns the uploaded
// asset references. It never fails the run.
func (r *Runner) images(ctx context.Context, log logger.Logger, scratch *imagegen.Scratch, report *Report) []string {
	report.enter(GeneratePrompts)
	report.Prompts = r.deps.Prompts.ImagePrompts(ctx, report.Topic, r.opts.ImageCount)
	if len(report.Prompts) == 0 {
		log.Warn("no image prompts, posting text only", logger.Int("requested", r.opts.ImageCount))
		return nil
	}
	log.Info("✓ image prompts ready", logger.Int("count", len(report.Prompts)), logger.Int("requested", r.opts.ImageCount))

	report.enter(RenderImages)
	report.Images = r.deps.Renderer.Render(ctx, scratch, report.Prompts)
	if len(report.Images) == 0 {
		log.Warn("no images rendered, posting text only")
		return nil
	}
	log.Info("✓ images rendered", logger.Int("count", len(report.Images)))

	report.enter(UploadImages)
	paths := make([]string, len(report.Images))
	for i, img := range report.Images {
		paths[i] = img.Path
	}
	assets := r.deps.Uploader.UploadImages(ctx, paths)
	if len(assets) == 0 {
		log.Warn("no images uploaded, posting text only")
		return nil
	}
	log.Info("✓ images uploaded", logger.Int("count", len(assets)), logger.Int("rendered", len(paths)))
	return assets
}
