package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// silentFrame is a minimal MPEG-1 Layer III frame header followed by zeros.
var silentFrame = []byte{
	0xFF, 0xFB, 0x90, 0x64, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}

func newSampleCommand() *cobra.Command {
	var frames int
	cmd := &cobra.Command{
		Use:   "sample <path>",
		Short: "Write a short silent MP3 file for testing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if frames < 1 {
				return fmt.Errorf("--frames must be at least 1")
			}
			data := bytes.Repeat(silentFrame, frames)
			if err := os.WriteFile(args[0], data, 0o644); err != nil {
				return fmt.Errorf("write sample: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%d bytes)\n", args[0], len(data))
			return nil
		},
	}
	cmd.Flags().IntVar(&frames, "frames", 100, "Number of frames to write")
	return cmd
}
