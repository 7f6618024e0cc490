package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"FinCast/internal/domain/models"
	domsvc "FinCast/internal/domain/service"
)

// HTTPTextScorer scores financial text against a FinBERT classification
// service over HTTP. The service returns the winning label, its confidence,
// and the full distribution over {negative, neutral, positive}.
type HTTPTextScorer struct {
	base      *HTTPServiceBase
	maxTokens int
}

// NewHTTPTextScorer builds a scorer client for the given inference endpoint.
func NewHTTPTextScorer(serviceURL string, timeout time.Duration, maxTokens int) *HTTPTextScorer {
	if maxTokens <= 0 {
		maxTokens = 512
	}
	return &HTTPTextScorer{base: NewHTTPServiceBase(serviceURL, timeout), maxTokens: maxTokens}
}

type scoreReq struct {
	Text string `json:"text"`
}

type scoreResp struct {
	Sentiment string             `json:"sentiment"`
	Score     float64            `json:"score"`
	Scores    map[string]float64 `json:"scores"`
}

// Score classifies a single text. Input is truncated to the model window, no
// chunking of longer documents. Transport and decode errors propagate.
func (s *HTTPTextScorer) Score(ctx context.Context, text string) (models.TextScore, error) {
	var result models.TextScore
	var sr scoreResp
	err := s.base.PostJSON(ctx, "/score", scoreReq{Text: truncateTokens(text, s.maxTokens)}, &sr)
	if err != nil {
		return result, fmt.Errorf("score text: %w", err)
	}
	if sr.Sentiment == "" {
		return result, fmt.Errorf("score text: empty classifier response")
	}
	result.Sentiment = sr.Sentiment
	result.Score = sr.Score
	result.Scores = sr.Scores
	return result, nil
}

// truncateTokens keeps at most n whitespace-delimited tokens. It approximates
// the tokenizer's window; the service applies the exact cutoff.
func truncateTokens(text string, n int) string {
	fields := strings.Fields(text)
	if len(fields) <= n {
		return text
	}
	return strings.Join(fields[:n], " ")
}

var _ domsvc.TextScorer = (*HTTPTextScorer)(nil)
