// Package summarize wraps the Hugging Face inference API to condense a
// report section into short bullets. It is stateless; every failure mode
// degrades to a single diagnostic bullet rather than an error.
package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"duoreport/internal/utils"
)

const DefaultAPIURL = "https://api-inference.huggingface.co/models/facebook/bart-large-cnn"

const (
	maxInputLen      = 1024
	minContentLen    = 50
	msgNoContent     = "No content to summarize"
	msgTooShort      = "Content too short to summarize"
	msgUnavailable   = "Summary generation temporarily unavailable. Please try again."
	msgRequestFailed = "Error generating summary. Please try again."
)

type Client struct {
	apiURL string
	http   *http.Client
	log    *zap.Logger
}

func NewClient(apiURL string, log *zap.Logger) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &Client{
		apiURL: apiURL,
		http:   &http.Client{Timeout: 30 * time.Second},
		log:    log,
	}
}

// Bullets summarizes the given section markup into sentence bullets. The
// result is always non-empty; short or missing content and upstream
// failures all yield one diagnostic bullet.
func (c *Client) Bullets(ctx context.Context, content string) []string {
	clean := utils.StripTags(content)
	if clean == "" {
		return []string{msgNoContent}
	}
	if len(clean) < minContentLen {
		return []string{msgTooShort}
	}
	if len(clean) > maxInputLen {
		clean = clean[:maxInputLen]
	}

	body, err := json.Marshal(map[string]string{"inputs": clean})
	if err != nil {
		return []string{msgRequestFailed}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return []string{msgRequestFailed}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("summarization request failed", zap.Error(err))
		return []string{msgRequestFailed}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("summarization API returned non-200", zap.Int("status", resp.StatusCode))
		return []string{msgUnavailable}
	}

	var result []struct {
		SummaryText string `json:"summary_text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil || len(result) == 0 {
		return []string{msgUnavailable}
	}

	bullets := splitBullets(result[0].SummaryText)
	if len(bullets) == 0 {
		return []string{msgUnavailable}
	}
	return bullets
}

// splitBullets breaks a summary into one bullet per sentence.
func splitBullets(summary string) []string {
	var bullets []string
	for _, sentence := range strings.Split(summary, ". ") {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		if !strings.HasSuffix(sentence, ".") {
			sentence += "."
		}
		bullets = append(bullets, sentence)
	}
	return bullets
}
