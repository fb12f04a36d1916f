// Package cover renders watchlist cover images: a fixed-layout collage of up
// to four poster thumbnails, degrading to a bundled default image when no
// poster can be fetched.
package cover

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"log/slog"
	"sync"

	xdraw "golang.org/x/image/draw"

	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/metrics"
	"github.com/ARUNBALACHOCKALINGAM/feel-o-cinema-other/models"
)

//go:embed default-cover.jpg
var defaultCover []byte

const (
	// maxPosters caps how many movies contribute to a collage.
	maxPosters = 4

	// Grid cell geometry. Posters are stretched to fit, aspect ignored.
	cellWidth  = 600
	cellHeight = 900

	jpegQuality = 85
)

// PosterFetcher is the slice of the image client the composer depends on.
type PosterFetcher interface {
	FetchPoster(ctx context.Context, posterPath string) (image.Image, error)
}

// Composer builds cover images from a watchlist's movie sequence.
type Composer struct {
	fetcher PosterFetcher
}

func NewComposer(fetcher PosterFetcher) *Composer {
	return &Composer{fetcher: fetcher}
}

// Render fetches posters for the first movies in the sequence and composes
// the cover. The returned bytes are always JPEG:
//
//   - no poster could be fetched: the bundled default cover, verbatim
//   - one poster: that poster at its native size
//   - two to four posters: a 600x900-cell grid, two columns, row-major,
//     fill order matching the movie sequence; unfilled cells stay black
//
// Individual fetch failures degrade the collage instead of failing it.
func (c *Composer) Render(ctx context.Context, movies []models.Movie) ([]byte, error) {
	posters := c.fetchPosters(ctx, movies)

	switch len(posters) {
	case 0:
		metrics.CoverRendersTotal.WithLabelValues("default").Inc()
		return defaultCover, nil
	case 1:
		metrics.CoverRendersTotal.WithLabelValues("posters").Inc()
		// A lone poster ships at its fetched size; only grids resize.
		return encodeJPEG(posters[0])
	default:
		metrics.CoverRendersTotal.WithLabelValues("posters").Inc()
		return encodeJPEG(composeGrid(posters))
	}
}

// fetchPosters downloads the posters for up to the first maxPosters movies
// concurrently. Results keep movie-sequence order; movies without a poster
// path and failed fetches are dropped.
func (c *Composer) fetchPosters(ctx context.Context, movies []models.Movie) []image.Image {
	if len(movies) > maxPosters {
		movies = movies[:maxPosters]
	}

	slots := make([]image.Image, len(movies))
	var wg sync.WaitGroup
	for i, movie := range movies {
		path := movie.PosterPath()
		if path == "" {
			continue
		}
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			img, err := c.fetcher.FetchPoster(ctx, path)
			if err != nil {
				metrics.PosterFetchFailuresTotal.Inc()
				slog.Warn("Skipping poster for cover", "poster_path", path, "error", err)
				return
			}
			slots[i] = img
		}(i, path)
	}
	wg.Wait()

	posters := make([]image.Image, 0, len(slots))
	for _, img := range slots {
		if img != nil {
			posters = append(posters, img)
		}
	}
	return posters
}

// composeGrid lays 2-4 posters onto a black canvas of 600x900 cells:
// cols = min(2, n), rows = ceil(n / cols), filled left-to-right,
// top-to-bottom.
func composeGrid(posters []image.Image) image.Image {
	n := len(posters)
	cols := 2
	if n < cols {
		cols = n
	}
	rows := (n + cols - 1) / cols

	canvas := image.NewRGBA(image.Rect(0, 0, cellWidth*cols, cellHeight*rows))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	for i, poster := range posters {
		col := i % cols
		row := i / cols
		cell := image.Rect(col*cellWidth, row*cellHeight, (col+1)*cellWidth, (row+1)*cellHeight)
		xdraw.CatmullRom.Scale(canvas, cell, poster, poster.Bounds(), xdraw.Src, nil)
	}
	return canvas
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode cover image: %w", err)
	}
	return buf.Bytes(), nil
}
