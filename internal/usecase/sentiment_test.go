package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"FinCast/internal/domain/models"
	xlogger "FinCast/pkg/logger"
)

func newAnalyzer(news *fakeNews, scorer *fakeScorer) *SentimentAnalyzer {
	return NewSentimentAnalyzer(news, scorer, nopMetrics{}, xlogger.Nop(), 20)
}

func TestScoreCompanyNoArticles(t *testing.T) {
	a := newAnalyzer(&fakeNews{}, &fakeScorer{})

	res, err := a.ScoreCompany(context.Background(), "Apple Inc.", "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OverallSentiment != models.SentimentNeutral {
		t.Errorf("label = %q, want neutral", res.OverallSentiment)
	}
	if res.SentimentScore != 0 {
		t.Errorf("score = %v, want 0", res.SentimentScore)
	}
	if res.Articles == nil || len(res.Articles) != 0 {
		t.Errorf("articles = %#v, want empty non-nil slice", res.Articles)
	}
}

func TestScoreCompanyCombinedWeights(t *testing.T) {
	news := &fakeNews{articles: []models.Article{article(1)}}
	scorer := &fakeScorer{byPrefix: map[string]models.TextScore{
		"title-1":   {Sentiment: models.SentimentPositive, Score: 0.9},
		"content-1": {Sentiment: models.SentimentNegative, Score: 0.7},
	}}
	a := newAnalyzer(news, scorer)

	res, err := a.ScoreCompany(context.Background(), "Apple Inc.", "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 0.4*0.9 + 0.6*0.7
	if len(res.Articles) != 1 {
		t.Fatalf("articles = %d, want 1", len(res.Articles))
	}
	if math.Abs(res.Articles[0].CombinedScore-want) > 1e-12 {
		t.Errorf("combined = %v, want %v", res.Articles[0].CombinedScore, want)
	}
	if math.Abs(res.SentimentScore-want) > 1e-12 {
		t.Errorf("aggregate = %v, want %v with one article", res.SentimentScore, want)
	}
}

func TestLabelBoundariesClosed(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0.61, models.SentimentPositive},
		{0.6, models.SentimentPositive},
		{0.59, models.SentimentNeutral},
		{0.41, models.SentimentNeutral},
		{0.4, models.SentimentNegative},
		{0.39, models.SentimentNegative},
	}
	for _, tc := range cases {
		if got := labelFor(tc.score); got != tc.want {
			t.Errorf("labelFor(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestScoreCompanyAggregatesMean(t *testing.T) {
	news := &fakeNews{articles: []models.Article{article(1), article(2)}}
	scorer := &fakeScorer{byPrefix: map[string]models.TextScore{
		"title-1":   {Sentiment: models.SentimentPositive, Score: 1.0},
		"content-1": {Sentiment: models.SentimentPositive, Score: 1.0},
		"title-2":   {Sentiment: models.SentimentPositive, Score: 0.5},
		"content-2": {Sentiment: models.SentimentPositive, Score: 0.5},
	}}
	a := newAnalyzer(news, scorer)

	res, err := a.ScoreCompany(context.Background(), "Apple Inc.", "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// articles combine to 1.0 and 0.5, mean 0.75 -> positive
	if math.Abs(res.SentimentScore-0.75) > 1e-12 {
		t.Errorf("aggregate = %v, want 0.75", res.SentimentScore)
	}
	if res.OverallSentiment != models.SentimentPositive {
		t.Errorf("label = %q, want positive", res.OverallSentiment)
	}
}

func TestScoreCompanyScorerErrorPropagates(t *testing.T) {
	news := &fakeNews{articles: []models.Article{article(1)}}
	scorer := &fakeScorer{err: errors.New("inference service down")}
	a := newAnalyzer(news, scorer)

	if _, err := a.ScoreCompany(context.Background(), "Apple Inc.", "AAPL"); err == nil {
		t.Fatal("expected classifier error to propagate")
	}
}
