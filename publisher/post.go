package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"auto_linkedin_poster/logger"
)

const (
	MediaCategoryNone  = "NONE"
	MediaCategoryImage = "IMAGE"
)

// UGCPost is the body of a ugcPosts create call.
type UGCPost struct {
	Author          string          `json:"author"`
	LifecycleState  string          `json:"lifecycleState"`
	SpecificContent SpecificContent `json:"specificContent"`
	Visibility      Visibility      `json:"visibility"`
}

type SpecificContent struct {
	ShareContent ShareContent `json:"com.linkedin.ugc.ShareContent"`
}

type ShareContent struct {
	ShareCommentary    Text    `json:"shareCommentary"`
	ShareMediaCategory string  `json:"shareMediaCategory"`
	Media              []Media `json:"media,omitempty"`
}

type Text struct {
	Text string `json:"text"`
}

type Media struct {
	Status      string `json:"status"`
	Description Text   `json:"description"`
	Media       string `json:"media"`
	Title       Text   `json:"title"`
}

type Visibility struct {
	MemberNetworkVisibility string `json:"com.linkedin.ugc.MemberNetworkVisibility"`
}

// PostResult describes a created post.
type PostResult struct {
	ID     string
	Status int
}

// BuildPost assembles a public, published post. With no assets it is a
// text-only share.
func BuildPost(author, text string, assets []string) UGCPost {
	share := ShareContent{
		ShareCommentary:    Text{Text: text},
		ShareMediaCategory: MediaCategoryNone,
	}
	if len(assets) > 0 {
		share.ShareMediaCategory = MediaCategoryImage
		for i, asset := range assets {
			share.Media = append(share.Media, Media{
				Status:      "READY",
				Description: Text{Text: fmt.Sprintf("Content %d", i+1)},
				Media:       asset,
				Title:       Text{Text: fmt.Sprintf("Visual %d", i+1)},
			})
		}
	}

	return UGCPost{
		Author:          author,
		LifecycleState:  "PUBLISHED",
		SpecificContent: SpecificContent{ShareContent: share},
		Visibility:      Visibility{MemberNetworkVisibility: "PUBLIC"},
	}
}

// Publish creates the post in a single request. Only 201 Created counts as
// success; any other status comes back as a *StatusError carrying the body.
func (p *Publisher) Publish(ctx context.Context, text string, assets []string) (PostResult, error) {
	post := BuildPost(p.author, text, assets)

	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(post).
		Post(ugcPostsPath)
	if err != nil {
		return PostResult{}, fmt.Errorf("create post: %w", err)
	}
	if resp.StatusCode() != http.StatusCreated {
		return PostResult{Status: resp.StatusCode()}, &StatusError{
			Op:     "create post",
			Status: resp.StatusCode(),
			Body:   truncate(resp.String(), 2000),
		}
	}

	result := PostResult{ID: resp.Header().Get(restliIDHeader), Status: resp.StatusCode()}
	if result.ID == "" {
		var body struct {
			ID string `json:"id"`
		}
		if json.Unmarshal(resp.Body(), &body) == nil {
			result.ID = body.ID
		}
	}
	p.log.Info("post created",
		logger.String("post_id", result.ID),
		logger.String("media_category", post.SpecificContent.ShareContent.ShareMediaCategory),
		logger.Int("media", len(assets)))
	return result, nil
}
