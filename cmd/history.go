package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/microlearn/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent lesson requests and their outcomes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		outcome, _ := cmd.Flags().GetString("outcome")

		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := cmd.Context()
		repo := s.EventRepo()
		events, err := repo.QueryGenerations(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query generations: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No lessons generated yet.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-13s  %-20s  %3s  %-8s  %7s  %s\n",
			"ID", "Timestamp", "Outcome", "Audience", "Qs", "Research", "Ms", "Topic")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		for _, e := range events {
			if outcome != "" && e.Outcome != outcome {
				continue
			}
			research := "ok"
			if e.ResearchDegraded {
				research = "degraded"
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-13s  %-20s  %3d  %-8s  %7d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Outcome,
				truncate(e.Audience, 20),
				e.Questions,
				research,
				e.LatencyMs,
				truncate(e.Topic, 40),
			)
		}

		counts, err := repo.OutcomeCounts(ctx)
		if err != nil {
			return fmt.Errorf("count outcomes: %w", err)
		}
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s %d", k, counts[k])
		}
		fmt.Fprintln(out, strings.Repeat("─", 100))
		fmt.Fprintf(out, "All time: %s\n", strings.Join(parts, ", "))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	historyCmd.Flags().StringP("outcome", "o", "", "Filter by outcome (ok, invalid-topic, failed, cancelled)")
}
