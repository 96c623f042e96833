package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// configCmd manages configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Veracity configuration",
	Long: `Manage Veracity configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (VERACITY_*, OPENAI_API_KEY, NAVER_CLIENT_ID/SECRET, KAKAO_API_KEY, CLASSIFIER_ENDPOINT)
3. Config file (~/.veracity/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if configFile := viper.ConfigFileUsed(); configFile != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", configFile)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		// Secrets stay out of the dump.
		cfg.LLM.APIKey = redact(cfg.LLM.APIKey)
		cfg.Search.NaverClientSecret = redact(cfg.Search.NaverClientSecret)
		cfg.Search.KakaoAPIKey = redact(cfg.Search.KakaoAPIKey)
		cfg.Classifier.APIKey = redact(cfg.Classifier.APIKey)

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		fmt.Println(string(data))
		return nil
	},
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
