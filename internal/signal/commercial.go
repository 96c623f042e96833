package signal

import (
	"regexp"
	"strings"

	"github.com/infomate/veracity/internal/model"
)

// commercialThreshold is the distinct-pattern count at which content is
// classified commercial outright.
const commercialThreshold = 3

// commercialPatterns match promotional language: purchase calls-to-action,
// coupons and discounts, referral/shortlink domains.
var commercialPatterns = []*regexp.Regexp{
	regexp.MustCompile(`구매\s*하기|바로\s*구매|지금\s*구매`),
	regexp.MustCompile(`할인\s*쿠폰|쿠폰\s*코드|프로모션\s*코드`),
	regexp.MustCompile(`최저가|특가|초특가|파격\s*세일`),
	regexp.MustCompile(`제휴\s*링크|파트너스\s*활동|수수료를?\s*제공받`),
	regexp.MustCompile(`무료\s*배송|당일\s*배송`),
	regexp.MustCompile(`(?i)(bit\.ly|link\.coupang|smartstore\.naver)`),
	regexp.MustCompile(`품절\s*임박|한정\s*수량|마감\s*임박`),
}

// shoppingDomains are substrings of known shopping-platform hosts.
var shoppingDomains = []string{
	"coupang.com",
	"smartstore.naver.com",
	"shopping.naver.com",
	"gmarket.co.kr",
	"11st.co.kr",
	"auction.co.kr",
	"tmon.co.kr",
	"wemakeprice.com",
}

// Commercial detects promotional or shopping content masquerading as news.
type Commercial struct{}

// NewCommercial creates the provider.
func NewCommercial() *Commercial {
	return &Commercial{}
}

// Score scans the full body against the promotional patterns and the URL
// against the shopping domains. Commercial content scores 60, borderline
// (1-2 patterns) scores 80, clean scores 100.
func (c *Commercial) Score(facts model.ArticleFacts, rawURL string) model.SubScore {
	matchCount := 0
	var matchedPatterns []string
	for _, pattern := range commercialPatterns {
		if pattern.MatchString(facts.Body) {
			matchCount++
			matchedPatterns = append(matchedPatterns, pattern.String())
		}
	}

	shopURL := ""
	for _, domain := range shoppingDomains {
		if strings.Contains(rawURL, domain) {
			shopURL = domain
			break
		}
	}

	isCommercial := matchCount >= commercialThreshold || shopURL != ""

	score := 100.0
	label := "clean"
	switch {
	case isCommercial:
		score = 60
		label = "commercial"
	case matchCount > 0:
		score = 80
		label = "borderline"
	}

	return model.SubScore{
		Score: score,
		Label: label,
		Detail: map[string]any{
			"pattern_matches": matchCount,
			"patterns":        matchedPatterns,
			"shopping_domain": shopURL,
			"is_commercial":   isCommercial,
		},
	}
}
