package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"kannadabaruthe/internal/models"
)

const fallbackTTSTimeout = 10 * time.Second

// FallbackTTSStrategy uses the free translate text-to-speech endpoint.
// It needs no credentials, so it sits last in the chain as the voice of
// last resort.
type FallbackTTSStrategy struct {
	cacheDir string
	client   *http.Client
}

// NewFallbackTTSStrategy creates the no-credential fallback strategy
func NewFallbackTTSStrategy(cacheDir string) *FallbackTTSStrategy {
	return &FallbackTTSStrategy{
		cacheDir: cacheDir,
		client:   &http.Client{Timeout: fallbackTTSTimeout},
	}
}

func (s *FallbackTTSStrategy) Name() string {
	return "fallback-tts"
}

func (s *FallbackTTSStrategy) Available(phrase models.Phrase, useGoogleTTS bool) bool {
	return phrase.Kn != ""
}

func (s *FallbackTTSStrategy) Synthesize(ctx context.Context, phrase models.Phrase) (string, error) {
	filename := fmt.Sprintf("fallback_%d.mp3", phrase.ID)
	outputPath := filepath.Join(s.cacheDir, filename)
	if _, err := os.Stat(outputPath); err == nil {
		return filename, nil
	}

	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", phrase.Kn)
	params.Set("tl", "kn")
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(phrase.Kn)))

	fullURL := "https://translate.google.com/translate_tts?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	// Set user agent (required by the endpoint)
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create audio file: %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, resp.Body); err != nil {
		os.Remove(outputPath)
		return "", fmt.Errorf("failed to save audio: %w", err)
	}
	return filename, nil
}
