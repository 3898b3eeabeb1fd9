package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantamisecode-hub/groona-insights/pkg/services/stream"
)

type AskCmd struct {
	profilePath string
	question    string
	interval    time.Duration
}

func NewAskCmd() *cobra.Command {
	ac := &AskCmd{}
	cmd := &cobra.Command{
		Use:   "ask",
		Short: "Ask the backend for a narrative insight, streamed to the terminal",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.profilePath, "profile", "", "Path to the configuration profile")
	cmd.Flags().StringVar(&ac.question, "question", "", "Question to ask about the portfolio")
	cmd.Flags().DurationVar(&ac.interval, "interval", 15*time.Millisecond, "Typewriter pacing between characters")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("question")

	return cmd
}

func (ac *AskCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 120*time.Second)
	defer cancel()

	app, err := BuildApp(ac.profilePath)
	if err != nil {
		return err
	}

	content, err := app.Backend.GenerateInsights(ctx, ac.question, nil)
	if err != nil {
		return fmt.Errorf("failed to generate insights: %w", err)
	}

	out := cmd.OutOrStdout()
	if content == "" {
		fmt.Fprintln(out, "no insights available")
		return nil
	}

	// Reveal emits growing prefixes of the same string, so the byte
	// offset of the last emission is the start of the next delta.
	written := 0
	for s := range stream.Reveal(ctx, content, ac.interval) {
		fmt.Fprint(out, s[written:])
		written = len(s)
	}
	fmt.Fprintln(out)
	return nil
}
