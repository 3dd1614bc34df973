package cmd

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"github.com/abhisek/interviewkit/internal/render"
	"github.com/abhisek/interviewkit/internal/store"
	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM requests, usage and cost",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		after, _ := cmd.Flags().GetInt64("after")

		return withStore(cmd, func(s *store.Store) error {
			events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{
				Limit:   limit,
				After:   after,
				Purpose: purpose,
			})
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			_, err = lipgloss.Fprintln(cmd.OutOrStdout(), render.EventList(events))
			return err
		})
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full request and response of one LLM request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		return withStore(cmd, func(s *store.Store) error {
			e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}
			if e == nil {
				return fmt.Errorf("event %d not found", id)
			}
			_, err = lipgloss.Fprint(cmd.OutOrStdout(), render.EventDetail(e))
			return err
		})
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage per purpose and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(s *store.Store) error {
			repo := s.EventRepo()
			purposes, err := repo.LLMUsageByPurpose(cmd.Context())
			if err != nil {
				return fmt.Errorf("query usage: %w", err)
			}
			models, err := repo.LLMUsageByModel(cmd.Context())
			if err != nil {
				return fmt.Errorf("query model usage: %w", err)
			}
			_, err = lipgloss.Fprintln(cmd.OutOrStdout(), render.UsageReport(purposes, models))
			return err
		})
	},
}

var llmPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the most recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		keep, _ := cmd.Flags().GetInt("keep")

		return withStore(cmd, func(s *store.Store) error {
			removed, err := s.EventRepo().PruneLLMEvents(cmd.Context(), keep)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d events, kept the latest %d.\n", removed, keep)
			return nil
		})
	},
}

// withStore opens the event database for the duration of fn.
func withStore(cmd *cobra.Command, fn func(*store.Store) error) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	return fn(s)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. interview-kit)")
	llmListCmd.Flags().Int64("after", 0, "Only show events with a sequence number above this")

	llmPruneCmd.Flags().Int("keep", 100, "Number of most recent events to keep")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd, llmPruneCmd)
}
