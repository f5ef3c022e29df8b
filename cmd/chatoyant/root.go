package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Global flag values.
var (
	providerName string
	modelName    string
	apiKey       string
	baseURL      string
	configPath   string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "chatoyant",
	Short: "Talk to LLM providers from the command line",
	Long: `Chatoyant is a thin command-line front end for the chatoyant SDK.
It sends chat completions, generates images, and lists models against
OpenAI-compatible providers, DeepSeek, Groq, and Anthropic.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&providerName, "provider", "p", "openai", "provider to talk to (openai, deepseek, groq, anthropic)")
	pf.StringVarP(&modelName, "model", "m", "", "model identifier (provider default when empty)")
	pf.StringVar(&apiKey, "api-key", "", "API key (falls back to the provider's environment variable)")
	pf.StringVar(&baseURL, "base-url", "", "override the provider base URL")
	pf.StringVarP(&configPath, "config", "c", "", "path to a chatoyant config file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(versionCmd)
}
