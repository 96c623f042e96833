package related

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"github.com/infomate/veracity/internal/model"
	"go.uber.org/zap"
)

// maxResults bounds the aggregate after filtering.
const maxResults = 5

// Aggregator fans a keyword query out to the configured providers and
// filters the combined results against the subject article.
type Aggregator struct {
	providers []Provider
	logger    *zap.Logger
}

// NewAggregator creates an aggregator over the given providers. Provider
// order determines result order in the combined list.
func NewAggregator(logger *zap.Logger, providers ...Provider) *Aggregator {
	return &Aggregator{
		providers: providers,
		logger:    logger,
	}
}

// FindRelated searches all providers concurrently and returns up to
// maxResults stubs that are neither near-duplicates of the subject title
// nor too generic to compare. Empty keywords short-circuit to an empty
// result without issuing any search.
func (a *Aggregator) FindRelated(ctx context.Context, keywords []string, subjectTitle string) []model.RelatedArticle {
	query := strings.TrimSpace(strings.Join(keywords, " "))
	if query == "" {
		return []model.RelatedArticle{}
	}

	// One slot per provider keeps the combined order deterministic
	// regardless of which search returns first.
	results := make([][]model.RelatedArticle, len(a.providers))
	var wg sync.WaitGroup
	for i, provider := range a.providers {
		wg.Add(1)
		go func(idx int, p Provider) {
			defer wg.Done()
			articles, err := p.Search(ctx, query)
			if err != nil {
				a.logger.Warn("related search failed",
					zap.String("provider", p.Name()),
					zap.Error(err))
				return
			}
			results[idx] = articles
		}(i, provider)
	}
	wg.Wait()

	var combined []model.RelatedArticle
	for _, r := range results {
		combined = append(combined, r...)
	}

	return Dedupe(combined, subjectTitle)
}

// Dedupe drops candidates that are near-duplicates of the subject or too
// generic to compare, preserving input order and capping at maxResults.
// It is idempotent: filtering an already-filtered list is a no-op.
func Dedupe(candidates []model.RelatedArticle, subjectTitle string) []model.RelatedArticle {
	subject := normalizeTitle(subjectTitle)

	filtered := make([]model.RelatedArticle, 0, maxResults)
	kept := make([]string, 0, maxResults)
	for _, candidate := range candidates {
		norm := normalizeTitle(candidate.Title)
		if len([]rune(norm)) < 2 {
			continue // too generic to compare
		}
		if subject != "" && (strings.Contains(subject, norm) || strings.Contains(norm, subject)) {
			continue // near-duplicate of the subject itself
		}
		if containsAny(kept, norm) {
			continue // same story already kept
		}
		filtered = append(filtered, candidate)
		kept = append(kept, norm)
		if len(filtered) == maxResults {
			break
		}
	}
	return filtered
}

func containsAny(kept []string, norm string) bool {
	for _, k := range kept {
		if strings.Contains(k, norm) || strings.Contains(norm, k) {
			return true
		}
	}
	return false
}

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// normalizeTitle strips whitespace and non-word characters so containment
// comparison sees only the contiguous core phrase.
func normalizeTitle(s string) string {
	return nonWord.ReplaceAllString(strings.ToLower(s), "")
}
