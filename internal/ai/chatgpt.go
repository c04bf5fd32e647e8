package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/example/espbot/pkg/models"
)

// ChatGPT represents a client for the OpenAI ChatGPT API
type ChatGPT struct {
	apiKey      string
	apiURL      string
	maxTokens   int
	temperature float64
}

// New creates a new ChatGPT client
func New() (*ChatGPT, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	return &ChatGPT{
		apiKey:      apiKey,
		apiURL:      "https://api.openai.com/v1/chat/completions",
		maxTokens:   120,
		temperature: 0.7,
	}, nil
}

// Message represents a message in the ChatGPT conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a request to the ChatGPT API
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// ChatResponse represents a response from the ChatGPT API
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GenerateExample generates an example sentence pair for the given card
func (c *ChatGPT) GenerateExample(card *models.Flashcard) (models.Example, error) {
	prompt := fmt.Sprintf(
		"Write one short, practical Spanish sentence that naturally uses '%s' (English: '%s'), "+
			"then its English translation on the next line. Return exactly two lines, nothing else.",
		card.Spanish, card.English,
	)

	messages := []Message{
		{Role: "system", Content: "You are an assistant for learning Spanish. Your job is to produce high-quality usage examples of Spanish vocabulary."},
		{Role: "user", Content: prompt},
	}

	content, err := c.complete(messages, c.maxTokens, c.temperature)
	if err != nil {
		return models.Example{}, err
	}

	lines := strings.SplitN(strings.TrimSpace(content), "\n", 2)
	example := models.Example{Spanish: strings.TrimSpace(lines[0])}
	if len(lines) > 1 {
		example.English = strings.TrimSpace(lines[1])
	}
	if example.Spanish == "" {
		return models.Example{}, fmt.Errorf("empty example returned for '%s'", card.Spanish)
	}
	return example, nil
}

// GenerateExampleWithFallback generates an example with fallback to the
// card's stored examples
func (c *ChatGPT) GenerateExampleWithFallback(card *models.Flashcard) models.Example {
	example, err := c.GenerateExample(card)
	if err != nil {
		fmt.Printf("Error generating example for '%s': %v\n", card.Spanish, err)

		if len(card.Examples) > 0 {
			return card.Examples[0]
		}
		return models.Example{
			Spanish: fmt.Sprintf("Una frase con '%s'.", card.Spanish),
			English: fmt.Sprintf("A sentence with '%s'.", card.English),
		}
	}
	return example
}

// GenerateCommonMistake asks for a typical learner mistake for the card
func (c *ChatGPT) GenerateCommonMistake(card *models.Flashcard) (string, error) {
	prompt := fmt.Sprintf(
		"Name one common mistake learners make with the Spanish word '%s' (English: '%s'). Answer in one short sentence.",
		card.Spanish, card.English,
	)

	messages := []Message{
		{Role: "system", Content: "You are an assistant for learning Spanish. Point out typical learner mistakes briefly."},
		{Role: "user", Content: prompt},
	}

	return c.complete(messages, c.maxTokens, 0.3)
}

func (c *ChatGPT) complete(messages []Message, maxTokens int, temperature float64) (string, error) {
	request := ChatRequest{
		Model:       "gpt-3.5-turbo",
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	requestData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %v", err)
	}

	req, err := http.NewRequest("POST", c.apiURL, bytes.NewBuffer(requestData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	var response ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %v", err)
	}

	if response.Error != nil {
		return "", fmt.Errorf("API error: %s", response.Error.Message)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
