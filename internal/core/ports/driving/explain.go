package driving

import (
	"context"

	"github.com/veridia-labs/tirads-cli/internal/core/domain"
)

// Explainer produces structured guideline explanations for an evaluation.
type Explainer interface {
	// Explain retrieves evidence per guideline partition, generates one
	// completion and splits it into the three sections. A generation
	// failure is returned as an error; callers render it with
	// domain.DegradedAnswer so the three-section shape is preserved.
	Explain(ctx context.Context, eval domain.Evaluation) (*domain.GuidelineAnswer, error)

	// GuidelineSummary returns a short evidence digest from the Turkish
	// guideline partition for the given level and action.
	GuidelineSummary(ctx context.Context, trLevel string, action domain.Action) string
}
