// Package pipeline orchestrates one analysis request: fetch, extract,
// score, cross-reference, aggregate.
package pipeline

import (
	"context"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/infomate/veracity/internal/classifier"
	"github.com/infomate/veracity/internal/extract"
	"github.com/infomate/veracity/internal/fetch"
	"github.com/infomate/veracity/internal/llm"
	"github.com/infomate/veracity/internal/model"
	"github.com/infomate/veracity/internal/related"
	"github.com/infomate/veracity/internal/score"
	"github.com/infomate/veracity/internal/signal"
	"github.com/infomate/veracity/internal/trust"
	"go.uber.org/zap"
)

// minBodyLength is the minimum body size (in runes) required to score.
const minBodyLength = 50

// Pipeline wires the extraction and scoring stages together. All handles
// are immutable after construction and safe for concurrent requests.
type Pipeline struct {
	fetcher    *fetch.Client
	extractor  *extract.Extractor
	trustTable *trust.Table

	sensational *signal.Sensationalism
	commercial  *signal.Commercial
	freshness   *signal.Freshness
	classify    *signal.Classifier
	judgment    *signal.LLMJudgment
	crossCheck  *signal.CrossCheck

	related    *related.Aggregator
	aggregator *score.Aggregator
	logger     *zap.Logger
}

// New constructs a pipeline from config. The browser renderer is optional:
// when it cannot start, the pipeline degrades to plain HTTP fetching. The
// returned cleanup stops the browser if one was launched.
func New(cfg *model.Config, logger *zap.Logger) (*Pipeline, func(), error) {
	cleanup := func() {}

	var renderer fetch.Renderer
	if cfg.Browser.Enabled {
		browser, err := fetch.NewBrowserRenderer(cfg.Browser)
		if err != nil {
			logger.Warn("browser renderer unavailable, using plain fetch", zap.Error(err))
		} else {
			renderer = browser
			cleanup = func() { _ = browser.Close() }
		}
	}

	var table *trust.Table
	var err error
	if cfg.Trust.TablePath != "" {
		table, err = trust.NewFromFile(cfg.Trust.TablePath)
	} else {
		table, err = trust.New()
	}
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	var judge llm.Judge
	if cfg.LLM.APIKey != "" {
		judge, err = llm.NewOpenAIJudge(cfg.LLM)
		if err != nil {
			logger.Warn("judgment service unavailable", zap.Error(err))
			judge = nil
		}
	}

	return &Pipeline{
		fetcher:     fetch.NewClient(cfg, renderer, logger),
		extractor:   extract.New(),
		trustTable:  table,
		sensational: signal.NewSensationalism(),
		commercial:  signal.NewCommercial(),
		freshness:   signal.NewFreshness(),
		classify:    signal.NewClassifier(classifier.New(cfg.Classifier), logger),
		judgment:    signal.NewLLMJudgment(judge, logger),
		crossCheck:  signal.NewCrossCheck(judge, logger),
		related: related.NewAggregator(logger,
			related.NewNaverProvider(cfg.Search),
			related.NewKakaoProvider(cfg.Search)),
		aggregator: score.NewAggregator(),
		logger:     logger,
	}, cleanup, nil
}

// NewWithComponents builds a pipeline from pre-constructed collaborators.
// Used by tests to substitute fakes.
func NewWithComponents(
	fetcher *fetch.Client,
	table *trust.Table,
	predictor classifier.Predictor,
	judge llm.Judge,
	agg *related.Aggregator,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		fetcher:     fetcher,
		extractor:   extract.New(),
		trustTable:  table,
		sensational: signal.NewSensationalism(),
		commercial:  signal.NewCommercial(),
		freshness:   signal.NewFreshness(),
		classify:    signal.NewClassifier(predictor, logger),
		judgment:    signal.NewLLMJudgment(judge, logger),
		crossCheck:  signal.NewCrossCheck(judge, logger),
		related:     agg,
		aggregator:  score.NewAggregator(),
		logger:      logger,
	}
}

// Analyze runs the full pipeline for one URL. Individual signal failures
// degrade to their documented neutral defaults; only invalid input, fetch
// failure or an extraction shortfall abort the request.
func (p *Pipeline) Analyze(ctx context.Context, rawURL string) (*model.Analysis, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &InputError{Message: "invalid URL: scheme and host are required"}
	}

	start := time.Now()
	fetched, err := p.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, &FetchError{Err: err}
	}

	facts := p.extractor.Extract(fetched.HTML, rawURL)
	trustRecord := p.trustTable.Lookup(facts.Publisher)

	if facts.Title == "" || utf8.RuneCountInString(facts.Body) < minBodyLength {
		partial := &model.Analysis{
			RequestedURL:    rawURL,
			PublisherName:   facts.Publisher,
			PublishedDate:   facts.DisplayDate(),
			ScrapedTitle:    facts.Title,
			MediaTrust:      trustRecord,
			AIPrediction:    nil,
			RelatedArticles: []model.RelatedArticle{},
			SearchKeywords:  []string{},
			Cached:          fetched.Cached,
			AnalyzedAt:      time.Now().UTC(),
		}
		return nil, &ExtractionError{
			Message: "article title or body could not be extracted, or body is too short",
			Partial: partial,
		}
	}

	detailed := map[string]model.SubScore{
		model.SignalSensationalism: p.sensational.Score(facts),
		model.SignalCommercial:     p.commercial.Score(facts, rawURL),
		model.SignalFreshness:      p.freshness.Score(facts),
		model.SignalTrust: {
			Score: trustRecord.Score,
			Label: trustRecord.Category,
			Detail: map[string]any{
				"rank":      trustRecord.Rank,
				"publisher": facts.Publisher,
			},
		},
	}

	classifierScore, prediction := p.classify.Score(ctx, facts)
	detailed[model.SignalClassifier] = classifierScore

	judgmentScore, keywords := p.judgment.Score(ctx, facts)
	detailed[model.SignalLLM] = judgmentScore
	if keywords == nil {
		// Clients probe these keys on the degraded path; keep them as
		// empty arrays rather than null.
		keywords = []string{}
	}

	relatedArticles := p.related.FindRelated(ctx, keywords, facts.Title)
	detailed[model.SignalCrossCheck] = p.crossCheck.Score(ctx, facts, relatedArticles)

	verdict := p.aggregator.Aggregate(detailed)

	p.logger.Info("analysis complete",
		zap.String("url", rawURL),
		zap.String("publisher", facts.Publisher),
		zap.Float64("final_score", verdict.FinalScore),
		zap.String("grade", verdict.Grade),
		zap.Duration("elapsed", time.Since(start)))

	return &model.Analysis{
		RequestedURL:    rawURL,
		PublisherName:   facts.Publisher,
		PublishedDate:   facts.DisplayDate(),
		ScrapedTitle:    facts.Title,
		MediaTrust:      trustRecord,
		AIPrediction:    prediction,
		DetailedScores:  detailed,
		FinalAnalysis:   verdict,
		RelatedArticles: relatedArticles,
		SearchKeywords:  keywords,
		Cached:          fetched.Cached,
		AnalyzedAt:      time.Now().UTC(),
	}, nil
}
