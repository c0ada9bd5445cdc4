package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cinelog/internal/letterboxd"
	"cinelog/internal/notifications"
	"cinelog/internal/pipeline"
	"cinelog/internal/ratingsync"
	"cinelog/internal/tmdb"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var windowFlag int
	var noRatingSync bool

	cmd := &cobra.Command{
		Use:     "sync",
		Aliases: []string{"run"},
		Short:   "Fetch recent diary entries and reconcile vault notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if windowFlag > 0 {
				cfg.Letterboxd.Window = windowFlag
			}

			logger, err := ctx.buildLogger()
			if err != nil {
				return err
			}

			feed, err := letterboxd.New(cfg.Letterboxd.Username, cfg.Letterboxd.BaseURL)
			if err != nil {
				return fmt.Errorf("letterboxd client: %w", err)
			}

			tmdbOpts := []tmdb.Option{}
			if cfg.TMDB.RequestsPerSecond > 0 {
				tmdbOpts = append(tmdbOpts, tmdb.WithRequestsPerSecond(cfg.TMDB.RequestsPerSecond))
			}
			metadata, err := tmdb.New(cfg.TMDB.AccessToken, cfg.TMDB.BaseURL, cfg.TMDB.Language, tmdbOpts...)
			if err != nil {
				return fmt.Errorf("tmdb client: %w", err)
			}

			var sink ratingsync.Sink
			if cfg.Kinopoisk.Enabled && !noRatingSync {
				kp, err := ratingsync.NewKinopoisk(cmd.Context(), cfg.Kinopoisk.DriverPath, cfg.Kinopoisk.ProfileDir, cfg.Kinopoisk.URL, logger)
				if err != nil {
					return fmt.Errorf("rating sync: %w", err)
				}
				defer func() {
					if closeErr := kp.Close(); closeErr != nil {
						logger.Warn("failed to close rating sink", "error", closeErr)
					}
				}()
				sink = kp
			}

			p, err := pipeline.New(cfg, feed, metadata, sink, notifications.NewService(cfg), logger)
			if err != nil {
				return err
			}

			summary, runErr := p.Run(cmd.Context())
			out := cmd.OutOrStdout()
			if len(summary.Outcomes) > 0 {
				fmt.Fprintln(out, renderSummary(summary))
			}
			fmt.Fprintf(out, "Processed %d entries (%d failed) in %s\n",
				summary.Processed(), summary.Failed(), summary.Duration.Round(summaryDurationUnit))
			return runErr
		},
	}

	cmd.Flags().IntVarP(&windowFlag, "window", "w", 0, "Number of recent diary entries to process (default from config)")
	cmd.Flags().BoolVar(&noRatingSync, "no-rating-sync", false, "Skip pushing ratings to the rating sink")
	return cmd
}
