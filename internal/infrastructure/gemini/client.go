package gemini

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const modelName = "gemini-1.5-flash"

// MatchParty is one side of a match as seen by the explanation prompt.
type MatchParty struct {
	Name    string
	Teaches []string
	Learns  []string
}

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger *log.Logger
}

func NewGeminiClient(ctx context.Context, apiKey string, logger *log.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	if logger == nil {
		logger = log.Default()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)
	model.SetMaxOutputTokens(120)

	return &GeminiClient{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// GenerateMatchExplanation asks the model for one sentence on why two users
// can help each other. When the API is unavailable it falls back to a
// fixed template so callers always get text.
func (c *GeminiClient) GenerateMatchExplanation(ctx context.Context, user1, user2 MatchParty) (string, error) {
	prompt := fmt.Sprintf(`
		Two users of a skill exchange platform were matched.
		%s can teach: %s. %s wants to learn: %s.
		%s can teach: %s. %s wants to learn: %s.

		Task: Write one short, friendly sentence explaining why they should connect.
		Output: Just the sentence.
	`,
		user1.Name, strings.Join(user1.Teaches, ", "), user1.Name, strings.Join(user1.Learns, ", "),
		user2.Name, strings.Join(user2.Teaches, ", "), user2.Name, strings.Join(user2.Learns, ", "),
	)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		c.logger.Printf("gemini unavailable, using fallback explanation: %v", err)
		return FallbackExplanation(user1, user2), nil
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return FallbackExplanation(user1, user2), nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return FallbackExplanation(user1, user2), nil
	}
	return text, nil
}

// FallbackExplanation builds the explanation without calling the model.
func FallbackExplanation(user1, user2 MatchParty) string {
	return fmt.Sprintf("%s can teach %s %s, and %s can teach %s %s.",
		user1.Name, user2.Name, listOrSomething(user1.Teaches),
		user2.Name, user1.Name, listOrSomething(user2.Teaches),
	)
}

func listOrSomething(items []string) string {
	switch len(items) {
	case 0:
		return "something new"
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}
