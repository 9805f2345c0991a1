package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewClient(apiKey string) (*Client, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-pro")
	model.SetTemperature(0.7)

	return &Client{
		client: client,
		model:  model,
	}, nil
}

func (c *Client) Close() {
	c.client.Close()
}

// SuggestBios drafts three short roommate-listing bios. When the API is
// unavailable it falls back to deterministic stock copy so the endpoint
// still responds.
func (c *Client) SuggestBios(ctx context.Context, firstName, location string, traits []string) (map[string]string, error) {
	prompt := fmt.Sprintf(`
		Write 3 short, friendly bios for a roommate-matching profile.
		Name: %s
		Location: %s
		Lifestyle: %s

		Task: each bio is 1-2 sentences, first person, welcoming but honest
		about lifestyle. No emojis.
		Output: JSON object with keys "bio1", "bio2", "bio3".
	`, firstName, location, strings.Join(traits, ", "))

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return c.fallbackBios(firstName, location, traits), nil
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return c.fallbackBios(firstName, location, traits), nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	responseText := strings.TrimSpace(sb.String())
	// Clean up markdown code blocks if present
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")

	var bios map[string]string
	if err := json.Unmarshal([]byte(strings.TrimSpace(responseText)), &bios); err != nil || len(bios) == 0 {
		return c.fallbackBios(firstName, location, traits), nil
	}
	return bios, nil
}

func (c *Client) fallbackBios(firstName, location string, traits []string) map[string]string {
	lifestyle := "an easygoing lifestyle"
	if len(traits) > 0 {
		lifestyle = strings.Join(traits, ", ")
	}
	return map[string]string{
		"bio1": fmt.Sprintf("Hi, I'm %s, looking for a roommate in %s. Expect %s and someone who pays rent on time.", firstName, location, lifestyle),
		"bio2": fmt.Sprintf("%s here - settled in %s and hoping to share a place with someone compatible. My lifestyle in short: %s.", firstName, location, lifestyle),
		"bio3": fmt.Sprintf("Looking to split a place in %s. I keep things simple: %s. Say hi if that sounds like a fit.", location, lifestyle),
	}
}
