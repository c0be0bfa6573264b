// internal/pkg/recommend/client.go
package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
)

const maxRecommendations = 3

// Recommender produces short product suggestions for a checkout. A nil or
// empty result means no suggestions were available; implementations never
// return an error because the call is best-effort by contract.
type Recommender interface {
	Recommend(ctx context.Context, productNames []string) []string
}

// Client calls an OpenAI-compatible chat completions gateway
type Client struct {
	gatewayURL string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a new recommendation client
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	return &Client{
		gatewayURL: cfg.AI.GatewayURL,
		apiKey:     cfg.AI.APIKey,
		model:      cfg.AI.Model,
		httpClient: &http.Client{Timeout: cfg.AI.Timeout},
		logger:     logger,
	}
}

// Chat completions API structures
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Recommend asks the gateway for 2-3 complementary product suggestions based
// on the purchased product names. Any failure is logged and swallowed.
func (c *Client) Recommend(ctx context.Context, productNames []string) []string {
	if len(productNames) == 0 {
		return nil
	}

	reqData := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are a helpful shopping assistant. Suggest 2-3 complementary products based on what the customer purchased.",
			},
			{
				Role: "user",
				Content: fmt.Sprintf("The customer just bought: %s. Suggest 2-3 complementary products they might also like. Keep suggestions brief and practical.",
					strings.Join(productNames, ", ")),
			},
		},
	}

	jsonData, err := json.Marshal(reqData)
	if err != nil {
		c.logger.WithError(err).Warn("Failed to marshal recommendation request")
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL, bytes.NewBuffer(jsonData))
	if err != nil {
		c.logger.WithError(err).Warn("Failed to create recommendation request")
		return nil
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).Warn("Recommendation gateway unreachable")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithField("status", resp.StatusCode).Warn("Recommendation gateway returned non-success status")
		return nil
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		c.logger.WithError(err).Warn("Failed to decode recommendation response")
		return nil
	}

	if len(chatResp.Choices) == 0 {
		return nil
	}

	return splitSuggestions(chatResp.Choices[0].Message.Content)
}

// splitSuggestions turns the model's response text into up to three
// non-empty suggestion lines
func splitSuggestions(content string) []string {
	var suggestions []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		suggestions = append(suggestions, line)
		if len(suggestions) == maxRecommendations {
			break
		}
	}
	return suggestions
}
