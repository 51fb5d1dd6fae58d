package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"auto_linkedin_poster/logger"
)

// UploadState tracks one image through the two-step upload.
type UploadState int

const (
	UploadPending UploadState = iota
	UploadRegistered
	UploadUploaded
	UploadFailed
)

func (s UploadState) String() string {
	switch s {
	case UploadPending:
		return "pending"
	case UploadRegistered:
		return "registered"
	case UploadUploaded:
		return "uploaded"
	case UploadFailed:
		return "failed"
	default:
		return fmt.Sprintf("UploadState(%d)", int(s))
	}
}

// MediaUpload is the outcome for a single image.
type MediaUpload struct {
	Path      string
	State     UploadState
	Asset     string
	UploadURL string
	Err       error
}

type registerUploadRequest struct {
	RegisterUploadRequest registerUploadBody `json:"registerUploadRequest"`
}

type registerUploadBody struct {
	Recipes              []string              `json:"recipes"`
	Owner                string                `json:"owner"`
	ServiceRelationships []serviceRelationship `json:"serviceRelationships"`
}

type serviceRelationship struct {
	RelationshipType string `json:"relationshipType"`
	Identifier       string `json:"identifier"`
}

type registerUploadResp struct {
	Value struct {
		UploadMechanism map[string]struct {
			UploadURL string `json:"uploadUrl"`
		} `json:"uploadMechanism"`
		Asset string `json:"asset"`
	} `json:"value"`
}

// UploadImages registers and uploads each file in order and returns the asset
// URNs of the images that completed both steps. Failures are logged and skipped.
func (p *Publisher) UploadImages(ctx context.Context, paths []string) []string {
	var assets []string
	for i, path := range paths {
		m := p.Upload(ctx, path)
		fields := []logger.Field{logger.Int("index", i+1), logger.String("state", m.State.String())}
		if m.State != UploadUploaded {
			p.log.Warn("image upload failed", append(fields, logger.Error(m.Err))...)
			continue
		}
		p.log.Info("image uploaded", append(fields, logger.String("asset", m.Asset))...)
		assets = append(assets, m.Asset)
	}
	return assets
}

// Upload moves one image from UploadPending to UploadUploaded or UploadFailed.
func (p *Publisher) Upload(ctx context.Context, path string) MediaUpload {
	m := MediaUpload{Path: path, State: UploadPending}

	uploadURL, asset, err := p.registerUpload(ctx)
	if err != nil {
		m.State, m.Err = UploadFailed, err
		return m
	}
	m.State, m.UploadURL, m.Asset = UploadRegistered, uploadURL, asset

	if err := p.uploadBinary(ctx, uploadURL, path); err != nil {
		m.State, m.Err = UploadFailed, err
		m.Asset = ""
		return m
	}
	m.State = UploadUploaded
	return m
}

func (p *Publisher) registerUpload(ctx context.Context) (string, string, error) {
	body := registerUploadRequest{RegisterUploadRequest: registerUploadBody{
		Recipes: []string{imageRecipe},
		Owner:   p.author,
		ServiceRelationships: []serviceRelationship{{
			RelationshipType: "OWNER",
			Identifier:       "urn:li:userGeneratedContent",
		}},
	}}

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("action", "registerUpload").
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(registerUploadPath)
	if err != nil {
		return "", "", fmt.Errorf("register upload: %w", err)
	}
	if !resp.IsSuccess() {
		return "", "", &StatusError{Op: "register upload", Status: resp.StatusCode(), Body: truncate(resp.String(), 500)}
	}

	var data registerUploadResp
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return "", "", fmt.Errorf("register upload: decode response: %w", err)
	}
	uploadURL := data.Value.UploadMechanism[uploadMechanism].UploadURL
	if uploadURL == "" || data.Value.Asset == "" {
		return "", "", fmt.Errorf("register upload: response missing upload url or asset")
	}
	return uploadURL, data.Value.Asset, nil
}

func (p *Publisher) uploadBinary(ctx context.Context, uploadURL, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("upload image: %w", err)
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(data).
		Put(uploadURL)
	if err != nil {
		return fmt.Errorf("upload image: %w", err)
	}
	if resp.StatusCode() != http.StatusCreated {
		return &StatusError{Op: "upload image", Status: resp.StatusCode(), Body: truncate(resp.String(), 500)}
	}
	return nil
}
