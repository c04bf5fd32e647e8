package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"
)

// Client talks to the OpenAI audio endpoints for synthesis and transcription
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a speech client from the environment. It returns
// ErrUnavailable when OPENAI_API_KEY is not set.
func NewClient() (*Client, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, ErrUnavailable
	}

	return &Client{
		apiKey:     apiKey,
		baseURL:    "https://api.openai.com/v1",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type speechRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
	Voice string `json:"voice"`
}

// Speak implements Speaker over the /audio/speech endpoint
func (c *Client) Speak(ctx context.Context, text, languageTag string) ([]byte, error) {
	body, err := json.Marshal(speechRequest{
		Model: "tts-1",
		Input: text,
		Voice: "alloy",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal speech request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/speech", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("speech synthesis returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Recognize implements Recognizer over the /audio/transcriptions endpoint
func (c *Client) Recognize(ctx context.Context, audio []byte, languageTag string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "voice.ogg")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(audio); err != nil {
		return "", err
	}
	if err := writer.WriteField("model", "whisper-1"); err != nil {
		return "", err
	}
	// The endpoint takes a bare ISO 639-1 code
	if lang := primaryLanguage(languageTag); lang != "" {
		if err := writer.WriteField("language", lang); err != nil {
			return "", err
		}
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to transcribe speech: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcription returned status %d", resp.StatusCode)
	}

	var parsed transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to parse transcription response: %v", err)
	}
	transcript := strings.TrimSpace(parsed.Text)
	if transcript == "" {
		return "", ErrNoSpeech
	}
	return transcript, nil
}

// primaryLanguage extracts "es" from "es-ES"
func primaryLanguage(tag string) string {
	if i := strings.IndexByte(tag, '-'); i > 0 {
		return tag[:i]
	}
	return tag
}
