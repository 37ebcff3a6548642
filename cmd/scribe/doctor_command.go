package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/deps"
	"scribe/internal/device"
	"scribe/internal/language"
	"scribe/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the transcription runtime is ready",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("Configuration", colorize) {
				fmt.Fprintln(out, line)
			}
			configDetail := ctx.configPath
			if !ctx.configExists {
				configDetail += " (not found, using defaults)"
			}
			fmt.Fprintln(out, renderStatusLine("Config", statusInfo, configDetail, colorize))
			fmt.Fprintln(out, renderStatusLine("Backend", statusInfo, cfg.Transcription.Backend, colorize))
			fmt.Fprintln(out, renderStatusLine("Model", statusInfo, cfg.Transcription.Model, colorize))
			fmt.Fprintln(out, renderStatusLine("Language", statusInfo, language.DisplayName(cfg.Transcription.Language), colorize))
			fmt.Fprintln(out)

			statuses := preflight.CheckSystemDeps(cfg)
			for _, line := range renderSectionHeader("Dependencies", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderTable([]string{"Name", "Status", "Detail"}, dependencyRows(statuses)))
			fmt.Fprintln(out)

			for _, line := range renderSectionHeader("Checks", colorize) {
				fmt.Fprintln(out, line)
			}
			results := preflight.RunAll(cmd.Context(), cfg, device.NewSystemProbe())
			failed := 0
			for _, result := range results {
				kind := statusOK
				if !result.Passed {
					kind = statusError
					failed++
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}

			missing := deps.MissingRequired(statuses)
			if problems := failed + len(missing); problems > 0 {
				names := make([]string, 0, len(missing))
				for _, status := range missing {
					names = append(names, status.Name)
				}
				if len(names) > 0 {
					fmt.Fprintln(out, renderStatusLine("Missing", statusError, strings.Join(names, ", "), colorize))
				}
				return fmt.Errorf("doctor found %d problem(s)", problems)
			}
			fmt.Fprintln(out, renderStatusLine("Summary", statusOK, "ready to transcribe", colorize))
			return nil
		},
	}
}

func dependencyRows(statuses []deps.Status) [][]string {
	rows := make([][]string, 0, len(statuses))
	for _, status := range statuses {
		state := "ready"
		detail := status.Path
		switch {
		case !status.Available && status.Optional:
			state = "optional"
			detail = status.Detail
		case !status.Available:
			state = "missing"
			detail = status.Detail
		}
		if status.Description != "" {
			detail = strings.TrimSpace(detail + " - " + status.Description)
		}
		rows = append(rows, []string{status.Name, state, detail})
	}
	return rows
}
