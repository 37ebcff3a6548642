package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scribe/internal/transcribe"
)

// runTranscribe performs one transcription. Failures are printed and the
// command still succeeds, matching the long-standing exit status of the tool.
func runTranscribe(cmd *cobra.Command, ctx *commandContext, audioPath, outputPath string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger(cmd)
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	driver := transcribe.NewFromConfig(cfg, logger)
	outcome := driver.Transcribe(cmd.Context(), audioPath, outputPath)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderOutcome(outcome, shouldColorize(out)))
	return nil
}
