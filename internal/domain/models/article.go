package models

// Sentiment labels produced by the classifier.
const (
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
	SentimentPositive = "positive"
)

// Article is one news item returned by the news provider. Consumed once by
// the sentiment pipeline, never persisted.
type Article struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content"`
	PublishedDate string  `json:"published_date"`
	Source        string  `json:"source"`
	Score         float64 `json:"score"`
}

// TextScore is the classifier output for a single text: the winning label,
// its confidence, and the full distribution over the three labels.
type TextScore struct {
	Sentiment string             `json:"sentiment"`
	Score     float64            `json:"score"`
	Scores    map[string]float64 `json:"scores"`
}

// ScoredArticle is an article with per-text classifier results attached.
type ScoredArticle struct {
	Title            string    `json:"title"`
	URL              string    `json:"url"`
	PublishedDate    string    `json:"published_date"`
	Source           string    `json:"source"`
	TitleSentiment   TextScore `json:"title_sentiment"`
	ContentSentiment TextScore `json:"content_sentiment"`
	CombinedScore    float64   `json:"combined_sentiment_score"`
}

// SentimentResult aggregates article scores into one per-company verdict.
type SentimentResult struct {
	OverallSentiment string          `json:"overall_sentiment"`
	SentimentScore   float64         `json:"sentiment_score"`
	Articles         []ScoredArticle `json:"articles"`
}

// EmptySentimentResult is the defined default when no articles are available:
// neutral label, zero score, empty article list.
func EmptySentimentResult() SentimentResult {
	return SentimentResult{
		OverallSentiment: SentimentNeutral,
		SentimentScore:   0,
		Articles:         []ScoredArticle{},
	}
}
