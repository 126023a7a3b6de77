package suggestion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gapfit/gapfit/internal/config"
	"github.com/gapfit/gapfit/pkg/freetime"
	"github.com/gapfit/gapfit/pkg/location"
	log "github.com/sirupsen/logrus"
)

// OracleClient asks an external model to rank destinations for a set of free
// blocks. The client is strictly optional: every call is bounded by a timeout
// and any failure surfaces as an error the caller recovers from by using the
// deterministic ranking instead.
type OracleClient interface {
	GenerateSuggestions(ctx context.Context, blocks []freetime.FreeBlock, candidates []location.Destination, activityMinutes int) ([]OracleSuggestion, error)
}

// OracleSuggestion is one entry from the oracle's response.
type OracleSuggestion struct {
	Rank       int     `json:"rank"`
	Date       string  `json:"date"`
	LocationId string  `json:"location_id"`
	Reasoning  string  `json:"reasoning"`
	Confidence float64 `json:"confidence"`
}

type OracleClientImpl struct {
	cfg    config.Oracle
	client *http.Client
}

func NewOracleClient(cfg config.Oracle) *OracleClientImpl {
	return &OracleClientImpl{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSec) * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *OracleClientImpl) GenerateSuggestions(ctx context.Context, blocks []freetime.FreeBlock, candidates []location.Destination, activityMinutes int) ([]OracleSuggestion, error) {
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("oracle API key not configured")
	}

	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are a helpful assistant that provides activity suggestions in JSON format. Always return valid JSON only, no markdown code blocks.",
			},
			{
				Role:    "user",
				Content: buildPrompt(blocks, candidates, activityMinutes),
			},
		},
		Temperature: 0.7,
		MaxTokens:   2000,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	log.Debugf("calling suggestion oracle with model %s", c.cfg.Model)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oracle request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oracle returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("could not decode oracle response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("oracle returned no choices")
	}

	return parseOracleContent(parsed.Choices[0].Message.Content)
}

func buildPrompt(blocks []freetime.FreeBlock, candidates []location.Destination, activityMinutes int) string {
	type promptBlock struct {
		Date             string `json:"date"`
		Start            string `json:"start"`
		End              string `json:"end"`
		AvailableMinutes int    `json:"available_minutes"`
		PreviousClass    string `json:"previous_class"`
		NextClass        string `json:"next_class"`
	}
	type promptLocation struct {
		Id       string `json:"id"`
		Name     string `json:"name"`
		Address  string `json:"address"`
		Category string `json:"category"`
	}

	promptBlocks := make([]promptBlock, 0, len(blocks))
	for _, block := range blocks {
		pb := promptBlock{
			Date:             block.Date,
			Start:            block.Start.Format("15:04"),
			End:              block.End.Format("15:04"),
			AvailableMinutes: block.AvailableMinutes,
		}
		if block.Previous != nil {
			pb.PreviousClass = block.Previous.CourseLabel
		}
		if block.Next != nil {
			pb.NextClass = block.Next.CourseLabel
		}
		promptBlocks = append(promptBlocks, pb)
	}

	promptLocations := make([]promptLocation, 0, len(candidates))
	for _, candidate := range candidates {
		promptLocations = append(promptLocations, promptLocation{
			Id:       candidate.Id,
			Name:     candidate.Name,
			Address:  candidate.Address,
			Category: candidate.Category,
		})
	}

	blocksJSON, _ := json.MarshalIndent(promptBlocks, "", "  ")
	locationsJSON, _ := json.MarshalIndent(promptLocations, "", "  ")

	return fmt.Sprintf(`You are an activity suggestion assistant for college students.

STUDENT'S FREE TIME BLOCKS:
%s

ACTIVITY DURATION: %d minutes

AVAILABLE LOCATIONS:
%s

INSTRUCTIONS:
1. For each free time block, check whether the activity fits including commute time (estimate 5-15 minutes each way)
2. Prefer locations close to the student's previous and next classes
3. Suggest the best 1-3 locations per suitable block
4. Rank suggestions by quality (1 = best)

RESPONSE FORMAT (JSON only, no markdown):
{"suggestions": [{"rank": 1, "date": "YYYY-MM-DD", "location_id": "id", "reasoning": "why", "confidence": 0.95}]}

Generate suggestions now. Return ONLY valid JSON:`, blocksJSON, activityMinutes, locationsJSON)
}

// parseOracleContent extracts the suggestion list from the model's reply,
// tolerating markdown code fences around the JSON.
func parseOracleContent(content string) ([]OracleSuggestion, error) {
	content = strings.TrimSpace(content)
	if idx := strings.Index(content, "```json"); idx >= 0 {
		content = content[idx+len("```json"):]
	} else if idx := strings.Index(content, "```"); idx >= 0 {
		content = content[idx+len("```"):]
	}
	if idx := strings.Index(content, "```"); idx >= 0 {
		content = content[:idx]
	}
	content = strings.TrimSpace(content)

	var parsed struct {
		Suggestions []OracleSuggestion `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("could not parse oracle content: %w", err)
	}
	return parsed.Suggestions, nil
}
