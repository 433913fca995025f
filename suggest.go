package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

/* ─── Request / Response types ───────────────────────────────────────── */

// catalogSuggestRequest is the request body for POST /api/catalog/suggest.
type catalogSuggestRequest struct {
	Description string `json:"description"`
	Type        string `json:"type"`
}

// catalogSuggestion is the structured per-100g (or per-100ml for drinks)
// nutrition density returned by the AI, ready to prefill the custom-item
// form. Confidence is 1-5 indicating how accurate the estimate is.
type catalogSuggestion struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Kcal100    float64 `json:"kcal_100"`
	Protein100 float64 `json:"protein_100"`
	Carb100    float64 `json:"carb_100"`
	Fat100     float64 `json:"fat_100"`
	Confidence int     `json:"confidence"`
}

/* ─── OpenAI prompt constants ────────────────────────────────────────── */

const foodDensityPrompt = `You are a nutrition assistant. The user describes a food. Return its nutrition density PER 100 GRAMS as a JSON object with:
- "name" (string, cleaned up title case)
- "kcal_100" (number, kcal per 100 g)
- "protein_100" (number, grams of protein per 100 g)
- "carb_100" (number, grams of carbohydrate per 100 g)
- "fat_100" (number, grams of fat per 100 g)
- "confidence" (integer 1-5: 5=exact known nutritional data, 4=very close estimate, 3=reasonable estimate, 2=rough guess, 1=very uncertain)

Ignore any quantity in the description — values are always per 100 g. Always provide your best estimate, using similar foods to approximate unfamiliar ones. Only return {"error": "unrecognized"} if the input is not food at all (e.g. random characters, non-food objects).
Return only valid JSON, no explanation.`

const drinkDensityPrompt = `You are a nutrition assistant. The user describes a drink. Return its nutrition density PER 100 ML as a JSON object with:
- "name" (string, cleaned up title case)
- "kcal_100" (number, kcal per 100 ml)
- "protein_100" (number, grams of protein per 100 ml)
- "carb_100" (number, grams of carbohydrate per 100 ml)
- "fat_100" (number, grams of fat per 100 ml)
- "confidence" (integer 1-5: 5=exact known nutritional data, 4=very close estimate, 3=reasonable estimate, 2=rough guess, 1=very uncertain)

Ignore any quantity in the description — values are always per 100 ml. Always provide your best estimate, using similar drinks to approximate unfamiliar ones. Only return {"error": "unrecognized"} if the input is not a drink at all.
Return only valid JSON, no explanation.`

/* ─── OpenAI HTTP client ─────────────────────────────────────────────── */

// openAIMessage is a single message in the OpenAI chat completions request.
type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// openAIRequest is the request body for the OpenAI chat completions API.
type openAIRequest struct {
	Model          string                 `json:"model"`
	Messages       []openAIMessage        `json:"messages"`
	Temperature    float64                `json:"temperature"`
	ResponseFormat map[string]interface{} `json:"response_format"`
}

// callOpenAI sends a chat completions request and returns the raw content string
// from the first choice. Uses raw net/http to avoid pulling in the OpenAI SDK.
func callOpenAI(ctx context.Context, messages []openAIMessage, baseURL string) (string, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY not set")
	}

	reqBody := openAIRequest{
		Model:       "gpt-4o-mini",
		Messages:    messages,
		Temperature: 0,
		ResponseFormat: map[string]interface{}{
			"type": "json_object",
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", baseURL+"/v1/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai returned status %d: %s", resp.StatusCode, string(respBytes))
	}

	// Parse the response to extract choices[0].message.content
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return result.Choices[0].Message.Content, nil
}

/* ─── Handler ────────────────────────────────────────────────────────── */

// suggestCatalogItem handles POST /api/catalog/suggest.
// Accepts a free-text food or drink description, calls OpenAI to estimate its
// per-100g nutrition density, and returns a suggestion the client can use to
// prefill a custom catalog item.
func (h *Handler) suggestCatalogItem(c *gin.Context) {
	var req catalogSuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Description) == "" {
		apiError(c, http.StatusBadRequest, "description is required")
		return
	}
	if req.Type == "" {
		req.Type = "food"
	}
	if !validCatalogTypes[req.Type] {
		apiError(c, http.StatusBadRequest, "type must be one of: food, drink")
		return
	}

	systemPrompt := foodDensityPrompt
	if req.Type == "drink" {
		systemPrompt = drinkDensityPrompt
	}

	messages := []openAIMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: req.Description},
	}

	content, err := callOpenAI(c.Request.Context(), messages, h.openAIBaseURL)
	if err != nil {
		log.Printf("[suggest] OpenAI error: %v", err)
		apiError(c, http.StatusInternalServerError, "openai request failed")
		return
	}

	// Check if the AI returned an "unrecognized" error
	var errorResp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(content), &errorResp); err != nil {
		log.Printf("[suggest] Failed to parse OpenAI response: %v", err)
		apiError(c, http.StatusInternalServerError, "openai request failed")
		return
	}
	if errorResp.Error == "unrecognized" {
		c.JSON(http.StatusOK, gin.H{"error": "unrecognized"})
		return
	}

	// Parse the suggestion
	var suggestion catalogSuggestion
	if err := json.Unmarshal([]byte(content), &suggestion); err != nil {
		log.Printf("[suggest] Failed to parse suggestion JSON: %v", err)
		apiError(c, http.StatusInternalServerError, "openai request failed")
		return
	}
	suggestion.Type = req.Type

	// Validate that we got a usable response (at minimum, name and calories)
	if suggestion.Name == "" || suggestion.Kcal100 == 0 {
		c.JSON(http.StatusOK, gin.H{"error": "unrecognized"})
		return
	}

	c.JSON(http.StatusOK, suggestion)
}
