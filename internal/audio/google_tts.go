package audio

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"kannadabaruthe/internal/models"
)

const (
	cloudTTSEndpoint = "https://texttospeech.googleapis.com/v1/text:synthesize"
	cloudTTSScope    = "https://www.googleapis.com/auth/cloud-platform"
	cloudTTSTimeout  = 10 * time.Second
)

// CloudTTSStrategy synthesizes Kannada speech with Google Cloud
// Text-to-Speech. It authenticates with an API key, or with an OAuth2
// token source built from a service-account credentials file.
type CloudTTSStrategy struct {
	cacheDir    string
	apiKey      string
	tokenSource oauth2.TokenSource
	client      *http.Client
}

// NewCloudTTSStrategy creates the cloud TTS strategy. Either apiKey or
// credentialsFile may be empty; with neither set the strategy reports
// itself unavailable.
func NewCloudTTSStrategy(cacheDir, apiKey, credentialsFile string) (*CloudTTSStrategy, error) {
	s := &CloudTTSStrategy{
		cacheDir: cacheDir,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: cloudTTSTimeout},
	}

	if credentialsFile != "" {
		data, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read Google credentials: %w", err)
		}
		creds, err := google.CredentialsFromJSON(context.Background(), data, cloudTTSScope)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Google credentials: %w", err)
		}
		s.tokenSource = creds.TokenSource
	}

	return s, nil
}

func (s *CloudTTSStrategy) Name() string {
	return "cloud-tts"
}

// Available requires the learner preference to be on and credentials configured
func (s *CloudTTSStrategy) Available(phrase models.Phrase, useGoogleTTS bool) bool {
	return useGoogleTTS && phrase.Kn != "" && (s.apiKey != "" || s.tokenSource != nil)
}

func (s *CloudTTSStrategy) Synthesize(ctx context.Context, phrase models.Phrase) (string, error) {
	filename := fmt.Sprintf("cloud_%d.mp3", phrase.ID)
	outputPath := filepath.Join(s.cacheDir, filename)
	if _, err := os.Stat(outputPath); err == nil {
		return filename, nil
	}

	requestBody := map[string]interface{}{
		"input":       map[string]string{"text": phrase.Kn},
		"voice":       map[string]string{"languageCode": "kn-IN", "name": "kn-IN-Wavenet-A"},
		"audioConfig": map[string]string{"audioEncoding": "MP3"},
	}
	body, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := cloudTTSEndpoint
	if s.apiKey != "" && s.tokenSource == nil {
		url += "?key=" + s.apiKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if s.tokenSource != nil {
		token, err := s.tokenSource.Token()
		if err != nil {
			return "", fmt.Errorf("failed to mint access token: %w", err)
		}
		token.SetAuthHeader(req)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call TTS API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("TTS API request failed with status %d", resp.StatusCode)
	}

	var result struct {
		AudioContent string `json:"audioContent"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode TTS response: %w", err)
	}
	if result.AudioContent == "" {
		return "", fmt.Errorf("TTS response carried no audio")
	}

	audio, err := base64.StdEncoding.DecodeString(result.AudioContent)
	if err != nil {
		return "", fmt.Errorf("failed to decode audio content: %w", err)
	}

	if err := os.WriteFile(outputPath, audio, 0o644); err != nil {
		return "", fmt.Errorf("failed to save audio file: %w", err)
	}
	return filename, nil
}
