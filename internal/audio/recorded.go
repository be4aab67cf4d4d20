package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"kannadabaruthe/internal/models"
)

const recordedFetchTimeout = 10 * time.Second

// RecordedStrategy serves audio recorded for the phrase by an author.
// Remote recordings are fetched once and cached alongside synthesized audio.
type RecordedStrategy struct {
	cacheDir string
	client   *http.Client
}

// NewRecordedStrategy creates the recorded-audio strategy
func NewRecordedStrategy(cacheDir string) *RecordedStrategy {
	return &RecordedStrategy{
		cacheDir: cacheDir,
		client:   &http.Client{Timeout: recordedFetchTimeout},
	}
}

func (s *RecordedStrategy) Name() string {
	return "recorded"
}

func (s *RecordedStrategy) Available(phrase models.Phrase, useGoogleTTS bool) bool {
	return phrase.AudioData != ""
}

func (s *RecordedStrategy) Synthesize(ctx context.Context, phrase models.Phrase) (string, error) {
	filename := fmt.Sprintf("recorded_%d%s", phrase.ID, recordingExt(phrase.AudioData))
	cached := filepath.Join(s.cacheDir, filename)
	if _, err := os.Stat(cached); err == nil {
		return filename, nil
	}

	if strings.HasPrefix(phrase.AudioData, "http://") || strings.HasPrefix(phrase.AudioData, "https://") {
		if err := s.fetch(ctx, phrase.AudioData, cached); err != nil {
			return "", err
		}
		return filename, nil
	}

	// Local reference: the recording already sits in the cache dir
	local := filepath.Join(s.cacheDir, filepath.Base(phrase.AudioData))
	if _, err := os.Stat(local); err != nil {
		return "", fmt.Errorf("recording not found: %w", err)
	}
	return filepath.Base(phrase.AudioData), nil
}

func (s *RecordedStrategy) fetch(ctx context.Context, url, outputPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch recording: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create audio file: %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, resp.Body); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("failed to save recording: %w", err)
	}
	return nil
}

func recordingExt(ref string) string {
	ext := filepath.Ext(ref)
	switch strings.ToLower(ext) {
	case ".mp3", ".webm", ".ogg", ".wav", ".m4a":
		return ext
	default:
		return ".webm"
	}
}
