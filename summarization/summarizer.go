package summarization

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"go-structura/types"
)

// GenerateConditionSummary asks OpenAI for a short plain-language summary of
// one assessment, suitable for the top of a report. Callers treat failures as
// non-fatal and render the report without a summary.
func GenerateConditionSummary(ctx context.Context, a types.Assessment, client *openai.Client) (string, error) {
	prompt := buildPrompt(a)

	resp, err := client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4oMini,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are an assistant that summarizes building surface inspection results concisely for property owners.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   150,
			N:           1,
			Temperature: 0.5, // Lower temperature for more focused summary
		},
	)

	if err != nil {
		return "", fmt.Errorf("openai chat completion error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai returned empty response or choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func buildPrompt(a types.Assessment) string {
	var damages []string
	for kind, count := range a.Counts {
		if count > 0 {
			damages = append(damages, fmt.Sprintf("%s x%d", kind, count))
		}
	}
	damageList := "none"
	if len(damages) > 0 {
		damageList = strings.Join(damages, ", ")
	}

	return fmt.Sprintf(
		"Summarize the condition of a building surface for its owner. Severity: %s. Health score: %d out of 100. Detected damage: %s. Recommended precautions: %s. Provide a concise summary (2-3 sentences maximum), plain language, no markup.",
		a.Severity, a.HealthScore, damageList, strings.Join(a.Precautions, " "),
	)
}
