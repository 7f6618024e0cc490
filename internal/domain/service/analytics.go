package service

import (
	"context"

	"FinCast/internal/domain/models"
)

// TextScorer classifies free text into {negative, neutral, positive} with
// confidence scores, backed by a pretrained financial-domain model.
type TextScorer interface {
	Score(ctx context.Context, text string) (models.TextScore, error)
}
