// Package cli implements the veracity command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/infomate/veracity/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "veracity",
	Short: "Veracity - composite trustworthiness scoring for news articles",
	Long: `Veracity ingests a news-article URL and produces a composite
trustworthiness verdict.

It extracts structured facts (publisher, publish date, title, body) from
rendered HTML through ordered fallback chains, scores the article through
independent signals (classifier, LLM judgment, publisher trust, lexical
heuristics, cross-referencing, recency), and combines them into one
auditable weighted score with an A-D grade.

Every sub-score carries its evidence; a failing signal degrades to its
documented neutral default instead of failing the request.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("veracity v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.veracity/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(home + "/.veracity")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("VERACITY")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig resolves the effective configuration: defaults, then config
// file, then the well-known credential environment variables.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.Search.NaverClientID == "" {
		cfg.Search.NaverClientID = os.Getenv("NAVER_CLIENT_ID")
	}
	if cfg.Search.NaverClientSecret == "" {
		cfg.Search.NaverClientSecret = os.Getenv("NAVER_CLIENT_SECRET")
	}
	if cfg.Search.KakaoAPIKey == "" {
		cfg.Search.KakaoAPIKey = os.Getenv("KAKAO_API_KEY")
	}
	if cfg.Classifier.Endpoint == "" {
		cfg.Classifier.Endpoint = os.Getenv("CLASSIFIER_ENDPOINT")
	}

	return cfg, nil
}
