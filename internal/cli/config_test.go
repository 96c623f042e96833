package cli

import "testing"

func TestLoadConfig_CredentialEnvFallbacks(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("NAVER_CLIENT_ID", "naver-id")
	t.Setenv("NAVER_CLIENT_SECRET", "naver-secret")
	t.Setenv("KAKAO_API_KEY", "kakao-key")
	t.Setenv("CLASSIFIER_ENDPOINT", "http://classifier:9000")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if cfg.LLM.APIKey != "sk-env" {
		t.Errorf("LLM key not picked up: %q", cfg.LLM.APIKey)
	}
	if cfg.Search.NaverClientID != "naver-id" || cfg.Search.NaverClientSecret != "naver-secret" {
		t.Errorf("naver credentials not picked up: %+v", cfg.Search)
	}
	if cfg.Search.KakaoAPIKey != "kakao-key" {
		t.Errorf("kakao key not picked up: %q", cfg.Search.KakaoAPIKey)
	}
	if cfg.Classifier.Endpoint != "http://classifier:9000" {
		t.Errorf("classifier endpoint not picked up: %q", cfg.Classifier.Endpoint)
	}
}

func TestLoadConfig_DefaultsSurvive(t *testing.T) {
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("unexpected default addr %q", cfg.Server.Addr)
	}
	if !cfg.Cache.Enabled || cfg.Cache.TTL.Minutes() != 10 {
		t.Errorf("unexpected cache defaults %+v", cfg.Cache)
	}
}

func TestRedact(t *testing.T) {
	if got := redact("sk-secret"); got != "********" {
		t.Errorf("redact should mask non-empty secrets, got %q", got)
	}
	if got := redact(""); got != "" {
		t.Errorf("redact of empty must stay empty, got %q", got)
	}
}
