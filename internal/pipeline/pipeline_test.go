package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/infomate/veracity/internal/fetch"
	"github.com/infomate/veracity/internal/llm"
	"github.com/infomate/veracity/internal/model"
	"github.com/infomate/veracity/internal/related"
	"github.com/infomate/veracity/internal/trust"
	"go.uber.org/zap"
)

const articlePage = `<!DOCTYPE html>
<html><head>
<meta property="og:site_name" content="KBS">
<meta property="article:published_time" content="2020-01-15T09:00:00+09:00">
</head><body>
<h1>기준금리 동결 결정</h1>
<article>
<p>한국은행 금융통화위원회는 오늘 기준금리를 현 수준에서 유지하기로 결정했다고 밝혔다.</p>
<p>물가 상승률이 목표 범위에 근접했다는 판단에 따른 것이다. 시장에서는 대체로 예상된 결정이라는 평가가 나온다.</p>
</article>
</body></html>`

const thinPage = `<html><head><meta property="og:site_name" content="어느블로그"></head>
<body><h1>짧은 글</h1><p>본문이 거의 없음.</p></body></html>`

type stubPredictor struct {
	prediction *model.Prediction
	err        error
}

func (s *stubPredictor) Predict(_ context.Context, _, _ string) (*model.Prediction, error) {
	return s.prediction, s.err
}

type stubJudge struct{}

func (stubJudge) JudgeArticle(_ context.Context, _, _ string) (*llm.Judgment, error) {
	return &llm.Judgment{
		Score:    75,
		Verdict:  "True",
		Reason:   "출처와 수치가 구체적임",
		Keywords: []string{"기준금리", "한국은행"},
	}, nil
}

func (stubJudge) CheckConsistency(_ context.Context, _, _ string, _ []string) (*llm.Consistency, error) {
	return &llm.Consistency{Level: llm.ConsistencyHigh, Reason: "보도 내용 일치"}, nil
}

type stubProvider struct{ articles []model.RelatedArticle }

func (stubProvider) Name() string { return "stub" }

func (s stubProvider) Search(_ context.Context, _ string) ([]model.RelatedArticle, error) {
	return s.articles, nil
}

func newTestPipeline(t *testing.T, handler http.Handler) (*Pipeline, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := model.DefaultConfig()
	cfg.HTTP.RespectRobots = false

	table, err := trust.New()
	if err != nil {
		t.Fatalf("load trust table: %v", err)
	}

	logger := zap.NewNop()
	p := NewWithComponents(
		fetch.NewClient(cfg, nil, logger),
		table,
		&stubPredictor{prediction: &model.Prediction{
			Prediction:     "True",
			TruePercentage: 80,
			FakePercentage: 20,
		}},
		stubJudge{},
		related.NewAggregator(logger, stubProvider{articles: []model.RelatedArticle{
			{Source: model.SourceNaver, Title: "시장 반응 엇갈려", Link: "https://news.example.com/2"},
		}}),
		logger,
	)
	return p, srv
}

func TestAnalyze_FullPath(t *testing.T) {
	p, srv := newTestPipeline(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(articlePage))
	}))

	analysis, err := p.Analyze(context.Background(), srv.URL+"/article/1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if analysis.PublisherName != "KBS" {
		t.Errorf("unexpected publisher %q", analysis.PublisherName)
	}
	if analysis.ScrapedTitle != "기준금리 동결 결정" {
		t.Errorf("unexpected title %q", analysis.ScrapedTitle)
	}
	if analysis.MediaTrust.Rank == nil || *analysis.MediaTrust.Rank != 1 {
		t.Errorf("unexpected trust record %+v", analysis.MediaTrust)
	}
	if analysis.AIPrediction == nil || analysis.AIPrediction.Prediction != "True" {
		t.Errorf("unexpected prediction %+v", analysis.AIPrediction)
	}
	if len(analysis.SearchKeywords) != 2 {
		t.Errorf("unexpected keywords %v", analysis.SearchKeywords)
	}
	if len(analysis.RelatedArticles) != 1 {
		t.Errorf("unexpected related articles %+v", analysis.RelatedArticles)
	}
	if len(analysis.DetailedScores) != 7 {
		t.Errorf("expected all 7 sub-scores, got %d", len(analysis.DetailedScores))
	}

	// classifier 80*.20 + llm 75*.25 + trust 85*.15 + crosscheck 90*.15
	// + sensationalism 100*.10 + commercial 100*.10 + freshness 60*.05 = 84.0
	if analysis.FinalAnalysis.FinalScore != 84.0 {
		t.Errorf("expected final 84.0, got %v", analysis.FinalAnalysis.FinalScore)
	}
	if analysis.FinalAnalysis.Grade != "A" {
		t.Errorf("expected grade A, got %s", analysis.FinalAnalysis.Grade)
	}
	if analysis.Cached {
		t.Error("first fetch must not be served from cache")
	}
}

func TestAnalyze_SecondRequestServedFromCache(t *testing.T) {
	hits := 0
	p, srv := newTestPipeline(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write([]byte(articlePage))
	}))

	url := srv.URL + "/article/1"
	if _, err := p.Analyze(context.Background(), url); err != nil {
		t.Fatalf("first analyze: %v", err)
	}
	second, err := p.Analyze(context.Background(), url)
	if err != nil {
		t.Fatalf("second analyze: %v", err)
	}

	if !second.Cached {
		t.Error("second response should be flagged cached")
	}
	if hits != 1 {
		t.Errorf("expected a single origin fetch, got %d", hits)
	}
}

func TestAnalyze_ShortBodyYieldsPartial(t *testing.T) {
	p, srv := newTestPipeline(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(thinPage))
	}))

	_, err := p.Analyze(context.Background(), srv.URL+"/post/1")

	var extractionErr *ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	partial := extractionErr.Partial
	if partial == nil {
		t.Fatal("expected partial analysis")
	}
	if partial.PublisherName != "어느블로그" {
		t.Errorf("unexpected partial publisher %q", partial.PublisherName)
	}
	if partial.ScrapedTitle != "짧은 글" {
		t.Errorf("unexpected partial title %q", partial.ScrapedTitle)
	}
	if partial.PublishedDate != model.DateUnknownDisplay {
		t.Errorf("unexpected partial date %q", partial.PublishedDate)
	}
	if partial.AIPrediction != nil {
		t.Errorf("partial must not carry a prediction, got %+v", partial.AIPrediction)
	}
}

func TestAnalyze_InvalidURL(t *testing.T) {
	p, _ := newTestPipeline(t, http.NotFoundHandler())

	cases := []string{"", "not a url", "/relative/path", "example.com/no-scheme"}
	for _, raw := range cases {
		_, err := p.Analyze(context.Background(), raw)
		var inputErr *InputError
		if !errors.As(err, &inputErr) {
			t.Errorf("%q: expected InputError, got %v", raw, err)
		}
	}
}

func TestAnalyze_OriginFailureIsFetchError(t *testing.T) {
	p, srv := newTestPipeline(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "origin down", http.StatusInternalServerError)
	}))

	_, err := p.Analyze(context.Background(), srv.URL+"/article/1")

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
}

func TestAnalyze_ClassifierOutageDegradesToNeutral(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(articlePage))
	}))
	defer srv.Close()

	cfg := model.DefaultConfig()
	cfg.HTTP.RespectRobots = false
	table, err := trust.New()
	if err != nil {
		t.Fatal(err)
	}
	logger := zap.NewNop()
	p := NewWithComponents(
		fetch.NewClient(cfg, nil, logger),
		table,
		&stubPredictor{err: errors.New("connection refused")},
		nil, // judgment service not configured
		related.NewAggregator(logger),
		logger,
	)

	analysis, err := p.Analyze(context.Background(), srv.URL+"/article/1")
	if err != nil {
		t.Fatalf("signal outages must not fail the request: %v", err)
	}

	if analysis.AIPrediction == nil || !analysis.AIPrediction.Unavailable {
		t.Errorf("expected the unavailable prediction echo, got %+v", analysis.AIPrediction)
	}
	if analysis.AIPrediction.Prediction != "Unknown" {
		t.Errorf("unexpected fallback prediction %q", analysis.AIPrediction.Prediction)
	}
	if got := analysis.DetailedScores[model.SignalClassifier].Score; got != 50 {
		t.Errorf("expected neutral classifier score, got %v", got)
	}
	if !analysis.DetailedScores[model.SignalLLM].Missing {
		t.Error("expected missing judgment sub-score")
	}
	if got := analysis.DetailedScores[model.SignalCrossCheck].Score; got != 70 {
		t.Errorf("expected unverifiable cross-check, got %v", got)
	}
	if len(analysis.RelatedArticles) != 0 {
		t.Errorf("no keywords should mean no related articles, got %+v", analysis.RelatedArticles)
	}

	// classifier 50*.20 + llm 50*.25 + trust 85*.15 + crosscheck 70*.15
	// + sensationalism 100*.10 + commercial 100*.10 + freshness 60*.05 = 68.75
	if analysis.FinalAnalysis.FinalScore != 68.75 {
		t.Errorf("expected final 68.75, got %v", analysis.FinalAnalysis.FinalScore)
	}

	// Even with nothing found, the payload keeps these keys as empty
	// arrays so clients can probe them without null checks.
	data, err := json.Marshal(analysis)
	if err != nil {
		t.Fatalf("marshal analysis: %v", err)
	}
	for _, want := range []string{`"related_articles":[]`, `"search_keywords":[]`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("payload missing %s:\n%s", want, data)
		}
	}
}
