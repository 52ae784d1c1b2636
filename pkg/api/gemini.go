package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

type GeminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
			Role string `json:"role"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
	ModelVersion string `json:"modelVersion"`
}

// Entity is one named entity as returned by the model.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// EntityClient asks a Gemini model to list the named entities in a text.
type EntityClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewEntityClient(apiKey, model string, timeout time.Duration) *EntityClient {
	return &EntityClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// WithBaseURL points the client at another endpoint, e.g. a test server.
func (c *EntityClient) WithBaseURL(baseURL string) *EntityClient {
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

const entityPrompt = `Extract every named entity from the transcript below.

Rules:
- Label people as PERSON, organisations as ORG, places as GPE.
- Copy each entity exactly as it is written in the text, one entry per mention.
- Speaker placeholders such as "Speaker1" are NOT people.
- Do not guess entities that are not present.

Return ONLY a JSON array of objects with the keys "text" and "label".

--- TRANSCRIPT START ---
%s
--- TRANSCRIPT END ---`

// ExtractEntities sends text to the model and decodes the entity list it
// returns.
func (c *EntityClient) ExtractEntities(ctx context.Context, text string) ([]Entity, error) {
	startTime := time.Now()
	zap.S().Infof("Requesting entities for text of %d words from %s", len(strings.Fields(text)), c.model)

	payload := map[string]any{
		"contents": []map[string]any{{"parts": []map[string]string{{"text": fmt.Sprintf(entityPrompt, text)}}}},
		"generationConfig": map[string]any{
			"temperature":      0,
			"responseMimeType": "application/json",
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed marshal entity payload: %w", err)
	}

	apiURL := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed create entity request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("entity API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("entity API non-OK status: %s. Body: %s", resp.Status, string(respBody))
	}

	var response GeminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed decode entity response: %w", err)
	}
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content in entity response")
	}

	entities, err := parseEntities(response.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return nil, err
	}
	zap.S().Infof("Received %d entities in %v", len(entities), time.Since(startTime))
	return entities, nil
}

// parseEntities decodes the model's JSON array, tolerating a markdown code
// fence around it.
func parseEntities(raw string) ([]Entity, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var entities []Entity
	if err := json.Unmarshal([]byte(raw), &entities); err != nil {
		return nil, fmt.Errorf("failed decode entity list: %w", err)
	}
	return entities, nil
}
