package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"voicedetect/common/detector"
	"voicedetect/common/models"
)

func newLocalCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "local <file>",
		Short: "Run the detection pipeline in-process, without a server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			audio, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read audio: %w", err)
			}
			lang, err := detector.ParseLanguage(opts.language)
			if err != nil {
				return err
			}
			res, err := detector.New().Detect(detector.AudioPayload{Audio: audio, Language: lang})
			if err != nil {
				return err
			}
			resp := models.NewDetectionResponse(res)

			out := cmd.OutOrStdout()
			if opts.jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			printResponse(out, args[0], &resp)
			return nil
		},
	}
}
