package tavily

import (
	"context"
	"fmt"
	"time"

	"FinCast/internal/domain/models"
	drepo "FinCast/internal/domain/repository"
	xhttp "FinCast/pkg/http"
	xlogger "FinCast/pkg/logger"
	"FinCast/pkg/util"
)

// Client implements a NewsProvider backed by the Tavily search API.
type Client struct {
	apiKey  string
	baseURL string
	client  *xhttp.Client
	logger  *xlogger.Logger
	metrics drepo.Metrics
}

// New creates a Tavily news client. The API credential is required; a missing
// key is a configuration error and fails construction.
func New(apiKey, baseURL string, timeout time.Duration, logger *xlogger.Logger, metrics drepo.Metrics) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("tavily api key is required")
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
		logger:  logger,
		metrics: metrics,
	}, nil
}

var _ drepo.NewsProvider = (*Client)(nil)

type searchRequest struct {
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int    `json:"max_results"`
	TimeRange   string `json:"time_range"`
	Topic       string `json:"topic"`
}

type searchResponse struct {
	Results []struct {
		Title         string  `json:"title"`
		URL           string  `json:"url"`
		Content       string  `json:"content"`
		PublishedDate string  `json:"published_date"`
		Source        string  `json:"source"`
		Score         float64 `json:"score"`
	} `json:"results"`
}

// Search returns up to maxResults articles matching the query, newest-ranked
// first as delivered by the provider. Any fetch failure degrades to an empty
// slice; it is logged, never surfaced.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]models.Article, error) {
	var resp searchResponse
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.baseURL + "/search",
		Headers: map[string]string{
			"Content-Type":  "application/json",
			"Authorization": "Bearer " + c.apiKey,
		},
		Body: searchRequest{
			Query:       query,
			SearchDepth: "advanced",
			MaxResults:  maxResults,
			TimeRange:   "month",
			Topic:       "news",
		},
	}, &resp)
	if err != nil {
		c.metrics.RecordProviderError("tavily")
		c.logger.Warn("news fetch failed", xlogger.String("query", query), xlogger.Error(err))
		return []models.Article{}, nil
	}

	articles := make([]models.Article, 0, len(resp.Results))
	for _, r := range resp.Results {
		// the provider mixes RFC3339 timestamps and bare dates; normalize
		// to an ISO date and keep the raw value when it parses as neither
		published := r.PublishedDate
		if t, ok := util.ParseTime(published); ok {
			published = t.Format("2006-01-02")
		}
		articles = append(articles, models.Article{
			Title:         r.Title,
			URL:           r.URL,
			Content:       r.Content,
			PublishedDate: published,
			Source:        r.Source,
			Score:         r.Score,
		})
	}
	c.logger.Debug("news fetched", xlogger.String("query", query), xlogger.Int("count", len(articles)))
	return articles, nil
}

// SetBaseURL points the client at a different endpoint, used by tests.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }
