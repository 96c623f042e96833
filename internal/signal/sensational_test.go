package signal

import (
	"strings"
	"testing"

	"github.com/infomate/veracity/internal/model"
)

func TestSensationalism_CleanArticle(t *testing.T) {
	s := NewSensationalism()
	got := s.Score(model.ArticleFacts{
		Title: "한국은행 기준금리 동결",
		Body:  "한국은행 금융통화위원회는 기준금리를 현 수준에서 유지하기로 했다.",
	})

	if got.Score != 100 {
		t.Errorf("expected 100, got %v", got.Score)
	}
	if got.Label != "normal" {
		t.Errorf("unexpected label %q", got.Label)
	}
	if got.Detail["match_count"] != 0 {
		t.Errorf("expected 0 matches, got %v", got.Detail["match_count"])
	}
}

func TestSensationalism_DistinctTermsAcrossTitleAndBody(t *testing.T) {
	s := NewSensationalism()
	// Three distinct terms; the body repeating title terms adds nothing.
	got := s.Score(model.ArticleFacts{
		Title: "속보 충격 비트코인 폭락",
		Body:  "충격적인 폭락 소식에 투자자들이 술렁였다.",
	})

	if got.Score != 70 {
		t.Errorf("expected 70, got %v", got.Score)
	}
	if got.Label != "sensational" {
		t.Errorf("unexpected label %q", got.Label)
	}
	if got.Detail["match_count"] != 3 {
		t.Errorf("expected 3 distinct matches, got %v", got.Detail["match_count"])
	}
}

func TestSensationalism_PenaltyCapsAtFifty(t *testing.T) {
	s := NewSensationalism()
	got := s.Score(model.ArticleFacts{
		Title: "충격 경악 발칵 소름 멘붕 단독 속보",
		Body:  "긴급 초유 역대급 논란",
	})

	if got.Score != 50 {
		t.Errorf("expected floor of 50, got %v", got.Score)
	}
}

func TestSensationalism_BodyScanLimitedToLede(t *testing.T) {
	s := NewSensationalism()
	// The only term sits past the 500-rune scan window.
	got := s.Score(model.ArticleFacts{
		Title: "평범한 제목",
		Body:  strings.Repeat("가", 600) + " 충격",
	})

	if got.Score != 100 {
		t.Errorf("expected terms beyond the lede to be ignored, got %v", got.Score)
	}
}
