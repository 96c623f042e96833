// Package related retrieves and filters candidate articles covering the
// same story, for the cross-check signal.
package related

import (
	"context"

	"github.com/infomate/veracity/internal/model"
)

// Provider is one external search backend. Search returns at most the
// provider's configured result count; failures are reported as errors and
// degrade to an empty contribution, never failing the aggregate call.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string) ([]model.RelatedArticle, error)
}
