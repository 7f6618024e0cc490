package usecase

import (
	"context"
	"fmt"

	"FinCast/internal/domain/models"
	domrepo "FinCast/internal/domain/repository"
	domsvc "FinCast/internal/domain/service"
	xlogger "FinCast/pkg/logger"
)

// SentimentAnalyzer turns recent news coverage of a company into one
// aggregate sentiment verdict.
type SentimentAnalyzer struct {
	news        domrepo.NewsProvider
	scorer      domsvc.TextScorer
	metrics     domrepo.Metrics
	logger      *xlogger.Logger
	maxArticles int
}

func NewSentimentAnalyzer(news domrepo.NewsProvider, scorer domsvc.TextScorer, metrics domrepo.Metrics, logger *xlogger.Logger, maxArticles int) *SentimentAnalyzer {
	if maxArticles <= 0 {
		maxArticles = 20
	}
	return &SentimentAnalyzer{
		news:        news,
		scorer:      scorer,
		metrics:     metrics,
		logger:      logger,
		maxArticles: maxArticles,
	}
}

// ScoreCompany fetches recent articles about the company, classifies title
// and body of each, and aggregates into a single result. Zero articles is a
// defined outcome, not an error: {neutral, 0, []}. Classifier transport
// errors propagate.
func (a *SentimentAnalyzer) ScoreCompany(ctx context.Context, name, ticker string) (models.SentimentResult, error) {
	query := fmt.Sprintf("%s (%s) stock market news sentiment analysis financial", name, ticker)

	articles, err := a.news.Search(ctx, query, a.maxArticles)
	if err != nil {
		// news provider degrades internally; an error here is unexpected
		a.logger.Error("news search failed", xlogger.String("ticker", ticker), xlogger.Error(err))
		articles = nil
	}
	if len(articles) == 0 {
		a.logger.Info("no articles found, returning neutral default", xlogger.String("ticker", ticker))
		return models.EmptySentimentResult(), nil
	}

	scored := make([]models.ScoredArticle, 0, len(articles))
	var total float64
	for _, art := range articles {
		title, err := a.scorer.Score(ctx, art.Title)
		if err != nil {
			return models.SentimentResult{}, fmt.Errorf("score title for %s: %w", ticker, err)
		}
		content, err := a.scorer.Score(ctx, art.Content)
		if err != nil {
			return models.SentimentResult{}, fmt.Errorf("score content for %s: %w", ticker, err)
		}

		// Weighted blend of the winning-class confidences. The blend does not
		// look at which class won, so a confident negative title and a
		// confident positive body push the score the same direction. Kept
		// bug-compatible with the model this service replaces.
		combined := 0.4*title.Score + 0.6*content.Score
		total += combined

		scored = append(scored, models.ScoredArticle{
			Title:            art.Title,
			URL:              art.URL,
			PublishedDate:    art.PublishedDate,
			Source:           art.Source,
			TitleSentiment:   title,
			ContentSentiment: content,
			CombinedScore:    combined,
		})
	}
	a.metrics.RecordArticlesScored(len(scored))

	mean := total / float64(len(scored))
	result := models.SentimentResult{
		OverallSentiment: labelFor(mean),
		SentimentScore:   mean,
		Articles:         scored,
	}
	a.metrics.RecordSentimentScore(ticker, mean)
	a.logger.Info("company sentiment scored",
		xlogger.String("ticker", ticker),
		xlogger.Int("articles", len(scored)),
		xlogger.String("label", result.OverallSentiment),
		xlogger.Float64("score", mean))
	return result, nil
}

// labelFor maps an aggregate score to a label. Both boundaries are closed:
// exactly 0.6 is positive, exactly 0.4 is negative.
func labelFor(score float64) string {
	switch {
	case score >= 0.6:
		return models.SentimentPositive
	case score <= 0.4:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}
