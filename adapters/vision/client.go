package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"dimcheck/internal/config"
	"dimcheck/ports"
)

const extractionPrompt = `Identify every numeric product dimension visible in this image ` +
	`(widths, depths, heights, diameters), in inches. Respond with valid JSON only, ` +
	`in the form {"dimensions": [24, 12.5, 30]}. Use an empty array if no dimensions are visible.`

const systemContext = "You are a product quality-control assistant that reads " +
	"dimension callouts from product images and responds with valid JSON."

// Client calls an OpenAI-compatible chat-completions endpoint with image
// content and decodes the structured JSON reply.
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	maxTokens   int
	temperature float64
	timeout     time.Duration
	httpClient  *http.Client
}

// extractionResult is the JSON shape the model is instructed to return.
type extractionResult struct {
	Dimensions []float64 `json:"dimensions"`
}

// NewClient creates a vision extraction client
func NewClient(cfg config.VisionConfig) *Client {
	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	log.Printf("[VisionClient] Initializing client with model=%s, temp=%.2f, maxTokens=%d, timeout=%v",
		cfg.Model, cfg.Temperature, cfg.MaxTokens, timeout)

	return &Client{
		apiKey:      cfg.APIKey,
		baseURL:     cfg.BaseURL,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     timeout,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// ExtractDimensions sends one image to the model and returns the detected
// dimension numbers. The caller decides whether this item is worth the cost;
// this client never consults the reference table.
func (c *Client) ExtractDimensions(ctx context.Context, item ports.ExtractionItem) ([]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	imageURL, err := c.resolveImageURL(item)
	if err != nil {
		return nil, err
	}

	type contentPart struct {
		Type     string `json:"type"`
		Text     string `json:"text,omitempty"`
		ImageURL *struct {
			URL string `json:"url"`
		} `json:"image_url,omitempty"`
	}
	type message struct {
		Role    string `json:"role"`
		Content any    `json:"content"`
	}
	type requestBody struct {
		Model               string    `json:"model"`
		Messages            []message `json:"messages"`
		Temperature         float64   `json:"temperature"`
		MaxCompletionTokens int       `json:"max_completion_tokens,omitempty"`
		ResponseFormat      struct {
			Type string `json:"type"`
		} `json:"response_format"`
	}

	imagePart := contentPart{Type: "image_url"}
	imagePart.ImageURL = &struct {
		URL string `json:"url"`
	}{URL: imageURL}

	reqBody := requestBody{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: systemContext},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: extractionPrompt},
				imagePart,
			}},
		},
		Temperature:         c.temperature,
		MaxCompletionTokens: c.maxTokens,
	}
	reqBody.ResponseFormat.Type = "json_object"

	log.Printf("[VisionClient] Requesting extraction for %s (model=%s)", item.FileName, c.model)

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("request timeout after %v: %w", c.timeout, err)
		}
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vision API error (status %d): %s", resp.StatusCode, string(body))
	}

	var envelope struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse API response: %w", err)
	}
	if len(envelope.Choices) == 0 {
		return nil, fmt.Errorf("no choices in API response")
	}

	result, err := decodeStructured[extractionResult](envelope.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	log.Printf("[VisionClient] %s: extracted %d dimensions", item.FileName, len(result.Dimensions))
	return result.Dimensions, nil
}

// resolveImageURL produces a URL the API accepts: either the caller-supplied
// remote URL, or a base64 data URL built from the local file.
func (c *Client) resolveImageURL(item ports.ExtractionItem) (string, error) {
	if item.ImageURL != "" {
		return item.ImageURL, nil
	}
	if item.ImagePath == "" {
		return "", fmt.Errorf("extraction item %q has neither image path nor URL", item.FileName)
	}

	data, err := os.ReadFile(item.ImagePath)
	if err != nil {
		return "", fmt.Errorf("failed to read image %s: %w", item.ImagePath, err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(item.ImagePath))
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)), nil
}
