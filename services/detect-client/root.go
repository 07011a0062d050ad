package main

import (
	"os"

	"github.com/spf13/cobra"
)

// options are the flags shared by every subcommand.
type options struct {
	url      string
	apiKey   string
	language string
	jsonOut  bool
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "detect-client",
		Short:         "Client for the AI voice detection API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.url, "url", envOr("VOICEDETECT_URL", "http://localhost:8000"), "Base URL of the detection API")
	rootCmd.PersistentFlags().StringVar(&opts.apiKey, "api-key", os.Getenv("VOICE_API_KEY"), "API key sent in X-API-Key")
	rootCmd.PersistentFlags().StringVarP(&opts.language, "language", "l", "english", "Language of the audio (tamil, english, hindi, malayalam, telugu)")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "Print the raw JSON response")

	rootCmd.AddCommand(newDetectCommand(opts))
	rootCmd.AddCommand(newLocalCommand(opts))
	rootCmd.AddCommand(newSampleCommand())

	return rootCmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
