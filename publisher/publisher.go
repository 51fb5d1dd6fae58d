package publisher

import (
	"errors"
	"fmt"
	"time"

	"auto_linkedin_poster/logger"
	"github.com/go-resty/resty/v2"
)

const (
	registerUploadPath = "/assets"
	ugcPostsPath       = "/ugcPosts"

	imageRecipe       = "urn:li:digitalmediaRecipe:feedshare-image"
	uploadMechanism   = "com.linkedin.digitalmedia.uploading.MediaUploadHttpRequest"
	restliHeader      = "X-Restli-Protocol-Version"
	restliVersion     = "2.0.0"
	restliIDHeader    = "X-RestLi-Id"
	defaultAPITimeout = 60 * time.Second
)

// Options holds the LinkedIn credentials and endpoint.
type Options struct {
	APIURL      string
	AccessToken string
	// AuthorURN owns uploaded assets and the post, e.g. urn:li:person:abc123.
	AuthorURN string
}

// StatusError is returned when LinkedIn answers with an unexpected status.
type StatusError struct {
	Op     string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.Status, e.Body)
}

// Publisher uploads images and creates posts through the LinkedIn REST API.
// Every call is attempted once.
type Publisher struct {
	client *resty.Client
	author string
	log    logger.Logger
}

// New creates a Publisher. No request is made until an upload or publish.
func New(opts Options, log logger.Logger) (*Publisher, error) {
	if opts.AccessToken == "" || opts.AuthorURN == "" {
		return nil, errors.New("linkedin access token and author urn are required")
	}
	if opts.APIURL == "" {
		return nil, errors.New("linkedin api url is required")
	}
	if log == nil {
		log = logger.NewNop()
	}

	client := resty.New().
		SetBaseURL(opts.APIURL).
		SetTimeout(defaultAPITimeout).
		SetAuthToken(opts.AccessToken).
		SetHeader(restliHeader, restliVersion)

	return &Publisher{
		client: client,
		author: opts.AuthorURN,
		log:    log,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
