package nutrition

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fdg312/fittrack/internal/config"
)

var errInvalidCalorie = errors.New("Invalid calorie value returned")

// GeminiProvider спрашивает у Gemini калорийность продукта одним запросом
// generateContent и валидирует ответ.
type GeminiProvider struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewGeminiProvider(cfg *config.Config) *GeminiProvider {
	timeoutSeconds := cfg.OracleTimeoutSeconds
	if timeoutSeconds <= 0 {
		timeoutSeconds = 20
	}

	return &GeminiProvider{
		apiKey:  cfg.GeminiAPIKey,
		model:   cfg.GeminiModel,
		baseURL: strings.TrimRight(cfg.GeminiBaseURL, "/"),
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
	}
}

func (p *GeminiProvider) CaloriesPer100g(ctx context.Context, item string) (float64, error) {
	if strings.TrimSpace(item) == "" {
		return 0, ErrItemRequired
	}
	if p.apiKey == "" {
		return 0, ErrNotConfigured
	}

	requestPayload := generateContentRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(item)}}}},
		GenerationConfig: generationConfig{
			Temperature:      0.1,
			MaxOutputTokens:  100,
			ResponseMIMEType: "application/json",
		},
	}

	body, err := json.Marshal(requestPayload)
	if err != nil {
		return 0, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.baseURL, p.model, p.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("Gemini API Error: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("Gemini API Error: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("Gemini API Error: %s", upstreamMessage(responseBody, resp.Status))
	}

	var parsed generateContentResponse
	if err := json.Unmarshal(responseBody, &parsed); err != nil {
		return 0, fmt.Errorf("Gemini API Error: %w", err)
	}

	raw := ""
	if len(parsed.Candidates) > 0 && len(parsed.Candidates[0].Content.Parts) > 0 {
		raw = strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	}
	if raw == "" {
		return 0, errors.New("Empty response from AI")
	}

	return parseCalories(raw)
}

func buildPrompt(item string) string {
	return fmt.Sprintf(`Act as a nutrition database. Provide the average calories for %q per 100g.
Return ONLY a valid JSON object.
Format: {"calories_per_100g": number}`, item)
}

// upstreamMessage достаёт сообщение об ошибке из тела ответа, иначе
// возвращает status text.
func upstreamMessage(body []byte, status string) string {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return status
}

// parseCalories снимает обрамление code fence, парсит JSON и приводит
// calories_per_100g к числу.
func parseCalories(raw string) (float64, error) {
	clean := strings.ReplaceAll(raw, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	var parsed struct {
		CaloriesPer100g any `json:"calories_per_100g"`
	}
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return 0, errInvalidCalorie
	}

	var calories float64
	switch v := parsed.CaloriesPer100g.(type) {
	case float64:
		calories = v
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, errInvalidCalorie
		}
		calories = n
	default:
		return 0, errInvalidCalorie
	}

	if math.IsNaN(calories) || math.IsInf(calories, 0) {
		return 0, errInvalidCalorie
	}

	return calories, nil
}

type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMIMEType string  `json:"responseMimeType"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}
