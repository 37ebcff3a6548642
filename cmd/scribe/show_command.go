package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"scribe/internal/transcript"
)

func newShowCommand() *cobra.Command {
	var withText bool

	cmd := &cobra.Command{
		Use:         "show <transcript-file>",
		Short:       "Summarize a transcript written by scribe",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read transcript: %w", err)
			}
			header, body, err := transcript.ParseHeader(string(content))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			out := cmd.OutOrStdout()
			rows := [][]string{
				{"File", path},
				{"Source", header.Source},
				{"Transcribed", header.GeneratedAt.Format(transcript.DateLayout)},
				{"Words", strconv.Itoa(len(strings.Fields(body)))},
				{"Characters", strconv.Itoa(utf8.RuneCountInString(body))},
			}
			fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows))
			if withText {
				fmt.Fprintln(out)
				fmt.Fprintln(out, body)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withText, "text", false, "Print the transcript text after the summary")
	return cmd
}
