package imagegen_test

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"auto_linkedin_poster/imagegen"
	"auto_linkedin_poster/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type imageRequest struct {
	rawPath string
	query   map[string]string
}

// imageService serves fake JPEG bytes, failing for the listed seeds.
func imageService(t *testing.T, failSeeds ...string) (*httptest.Server, func() []imageRequest) {
	t.Helper()
	var mu sync.Mutex
	var reqs []imageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		mu.Lock()
		reqs = append(reqs, imageRequest{
			rawPath: r.URL.EscapedPath(),
			query: map[string]string{
				"width": q.Get("width"), "height": q.Get("height"),
				"nologo": q.Get("nologo"), "seed": q.Get("seed"),
			},
		})
		mu.Unlock()

		for _, s := range failSeeds {
			if q.Get("seed") == s {
				http.Error(w, "model overloaded", http.StatusBadGateway)
				return
			}
		}
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("\xff\xd8\xff\xe0fake-jpeg-" + q.Get("seed")))
	}))
	t.Cleanup(srv.Close)
	return srv, func() []imageRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]imageRequest(nil), reqs...)
	}
}

func newRenderer(url string) *imagegen.Renderer {
	r := imagegen.NewRenderer(url, logger.NewNop())
	r.Pause = 0
	return r
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestRender_AllSucceed(t *testing.T) {
	srv, requests := imageService(t)
	dir := t.TempDir()
	scratch, err := imagegen.NewScratch(dir)
	require.NoError(t, err)

	prompts := []string{"glowing bar charts, modern office", "team at a whiteboard & coffee/tea"}
	images := newRenderer(srv.URL).Render(context.Background(), scratch, prompts)

	require.Len(t, images, 2)
	for i, img := range images {
		assert.Equal(t, prompts[i], img.Prompt)
		assert.Equal(t, i+1, img.Seed)
		assert.True(t, strings.HasPrefix(filepath.Base(img.Path), "linkedin_image_"))
		data, err := os.ReadFile(img.Path)
		require.NoError(t, err)
		assert.Equal(t, int64(len(data)), img.Size)
	}
	assert.NotEqual(t, images[0].Path, images[1].Path)
	assert.Equal(t, []string{images[0].Path, images[1].Path}, scratch.Files())

	reqs := requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "/prompt/glowing%20bar%20charts%2C%20modern%20office", reqs[0].rawPath)
	assert.Equal(t, "/prompt/team%20at%20a%20whiteboard%20&%20coffee%2Ftea", reqs[1].rawPath)
	assert.Equal(t, map[string]string{"width": "1200", "height": "630", "nologo": "true", "seed": "1"}, reqs[0].query)
	assert.Equal(t, "2", reqs[1].query["seed"])
}

func TestRender_SkipsFailedPrompt(t *testing.T) {
	srv, requests := imageService(t, "2")
	scratch, err := imagegen.NewScratch(t.TempDir())
	require.NoError(t, err)

	images := newRenderer(srv.URL).Render(context.Background(), scratch, []string{"one", "two", "three"})

	require.Len(t, images, 2)
	assert.Equal(t, "one", images[0].Prompt)
	assert.Equal(t, "three", images[1].Prompt)
	assert.Equal(t, 3, images[1].Seed)
	assert.Len(t, requests(), 3)
}

func TestRender_AllFail(t *testing.T) {
	srv, _ := imageService(t, "1", "2")
	dir := t.TempDir()
	scratch, err := imagegen.NewScratch(dir)
	require.NoError(t, err)

	images := newRenderer(srv.URL).Render(context.Background(), scratch, []string{"one", "two"})

	assert.Empty(t, images)
	assert.Empty(t, listDir(t, dir))
}

func TestRender_Unreachable(t *testing.T) {
	scratch, err := imagegen.NewScratch(t.TempDir())
	require.NoError(t, err)

	images := newRenderer("http://127.0.0.1:1").Render(context.Background(), scratch, []string{"one"})
	assert.Empty(t, images)
}

func TestRender_PausesBetweenRequests(t *testing.T) {
	srv, _ := imageService(t)
	scratch, err := imagegen.NewScratch(t.TempDir())
	require.NoError(t, err)

	r := newRenderer(srv.URL)
	r.Pause = 50 * time.Millisecond

	start := time.Now()
	images := r.Render(context.Background(), scratch, []string{"a", "b", "c"})
	require.Len(t, images, 3)
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestRender_StopsWhenCancelled(t *testing.T) {
	srv, requests := imageService(t)
	scratch, err := imagegen.NewScratch(t.TempDir())
	require.NoError(t, err)

	r := newRenderer(srv.URL)
	r.Pause = time.Hour
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	images := r.Render(ctx, scratch, []string{"a", "b"})
	assert.Len(t, images, 1)
	assert.Len(t, requests(), 1)
}

func TestScratch_RemoveAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	scratch, err := imagegen.NewScratch(dir)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := scratch.Write([]byte("x"), ".jpg")
		require.NoError(t, err)
	}
	require.Len(t, listDir(t, dir), 3)

	// A file removed behind the scratch's back is not an error.
	require.NoError(t, os.Remove(scratch.Files()[0]))

	require.NoError(t, scratch.RemoveAll())
	assert.Empty(t, listDir(t, dir))
	assert.Empty(t, scratch.Files())
}

func TestCombinatorial(t *testing.T) {
	c := imagegen.NewCombinatorial(rand.New(rand.NewSource(7)))

	prompts := c.ImagePrompts(context.Background(), "ignored", 4)
	require.Len(t, prompts, 4)
	for _, p := range prompts {
		assert.True(t, strings.HasSuffix(p, ", professional, no text"), p)
		assert.LessOrEqual(t, len(p), 100)
		assert.Len(t, strings.Split(p, ", "), 5)
	}

	assert.Empty(t, c.ImagePrompts(context.Background(), "ignored", 0))
}
