// Package tmdb fetches movie poster images from the TMDB image CDN.
package tmdb

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"time"

	// Poster bodies are JPEG in practice, but the CDN can serve PNG.
	_ "image/jpeg"
	_ "image/png"
)

// DefaultBaseURL is the w500-sized poster origin.
const DefaultBaseURL = "https://image.tmdb.org/t/p/w500"

const fetchTimeout = 5 * time.Second

// ImageClient downloads poster images by their TMDB poster path.
type ImageClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewImageClient(baseURL string) *ImageClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &ImageClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: fetchTimeout},
	}
}

// FetchPoster downloads and decodes the poster at posterPath (a
// slash-prefixed path like "/abc.jpg"). A non-OK status, transport failure
// or undecodable body is an error; callers decide whether to absorb it.
func (c *ImageClient) FetchPoster(ctx context.Context, posterPath string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+posterPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build poster request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download poster: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("poster download returned status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode poster: %w", err)
	}
	return img, nil
}
