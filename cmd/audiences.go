package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/microlearn/internal/lessons"
)

var audiencesCmd = &cobra.Command{
	Use:   "audiences",
	Short: "List the audience levels a lesson can target",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-22s  %s\n", "Value", "Label")
		fmt.Fprintln(out, strings.Repeat("─", 52))
		for _, a := range lessons.Audiences() {
			mark := ""
			if a == lessons.DefaultAudience {
				mark = "  (default)"
			}
			fmt.Fprintf(out, "%-22s  %s%s\n", a, a.Label(), mark)
		}
		return nil
	},
}
