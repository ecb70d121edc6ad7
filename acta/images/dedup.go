package images

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/log"
	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"

	"uqbar/config"
)

// ImageEmbedder abstracts an image->embedding generator. One vector
// per input image.
type ImageEmbedder interface {
	EmbedImages(ctx context.Context, paths []string) ([][]float64, error)
	ModelName() string
}

// CohereImages implements ImageEmbedder on the Cohere Embed v2 API.
type CohereImages struct {
	client *cohereclient.Client
	model  string
}

// NewCohereImages returns nil when no API key is configured; callers
// treat a nil embedder as dedup-disabled.
func NewCohereImages(apiKey string) *CohereImages {
	if apiKey == "" {
		return nil
	}
	return &CohereImages{
		client: cohereclient.NewClient(cohereclient.WithToken(apiKey)),
		model:  "embed-english-v3.0",
	}
}

func (c *CohereImages) ModelName() string { return c.model }

// EmbedImages encodes each file as a base64 data URL and requests one
// embedding per image. The API accepts one image per call.
func (c *CohereImages) EmbedImages(ctx context.Context, paths []string) ([][]float64, error) {
	out := make([][]float64, 0, len(paths))
	for _, p := range paths {
		dataURL, err := fileToDataURL(p)
		if err != nil {
			return nil, err
		}

		callCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
		resp, err := c.client.V2.Embed(callCtx, &cohere.V2EmbedRequest{
			Images:         []string{dataURL},
			Model:          c.model,
			InputType:      cohere.EmbedInputTypeImage,
			EmbeddingTypes: []cohere.EmbeddingType{cohere.EmbeddingTypeFloat},
		})
		cancel()
		if err != nil {
			return nil, fmt.Errorf("cohere embed image %s: %w", p, err)
		}
		if resp == nil || resp.Embeddings == nil || resp.Embeddings.Float == nil ||
			len(resp.Embeddings.Float) == 0 {
			return nil, fmt.Errorf("cohere embed image %s: empty response", p)
		}
		out = append(out, resp.Embeddings.Float[0])
	}
	return out, nil
}

func fileToDataURL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Dedup removes near-duplicate pictures from the sequential png set in
// dir, keeping the first of each similar pair. Returns the survivors.
// With a nil embedder (or an API failure) the full set survives.
func Dedup(ctx context.Context, embedder ImageEmbedder, dir string) []string {
	paths := PNGPaths(dir)
	if embedder == nil || len(paths) < 2 {
		return paths
	}

	vecs, err := embedder.EmbedImages(ctx, paths)
	if err != nil {
		log.Warn("image dedup disabled for this trend", "err", err)
		return paths
	}

	removed := make(map[int]bool)
	for i := 0; i < len(paths); i++ {
		if removed[i] {
			continue
		}
		for j := i + 1; j < len(paths); j++ {
			if removed[j] {
				continue
			}
			if CosineSimilarity(vecs[i], vecs[j]) >= config.DedupThreshold {
				removed[j] = true
			}
		}
	}

	var kept []string
	for i, p := range paths {
		if removed[i] {
			if err := os.Remove(p); err != nil {
				log.Warn("failed to remove duplicate image", "path", p, "err", err)
			}
			continue
		}
		kept = append(kept, p)
	}
	log.Info("image dedup complete", "dir", dir, "kept", len(kept), "removed", len(paths)-len(kept))
	return kept
}

// CosineSimilarity returns the cosine of the angle between two vectors,
// or 0 when either has zero magnitude.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
