package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"review_collector/internal/domain"
	"review_collector/internal/scheduler"
	"review_collector/internal/service"
)

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext(parent context.Context, logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			logger.Info("received shutdown signal", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

func (c *cli) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show which integrations are configured and database statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			renderStatus(out, c.cfg.Status())

			db, gateway, err := c.openGateway(cmd.Context())
			if err != nil {
				fmt.Fprintln(out, err)
				return nil
			}
			defer db.Close()

			stats, err := gateway.Stats(cmd.Context())
			if err != nil {
				c.logger.Error("failed to read statistics", "error", err)
				return nil
			}
			renderStats(out, stats)
			return nil
		},
	}
}

func (c *cli) shoesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shoes",
		Short: "Manage tracked shoes",
	}
	cmd.AddCommand(
		c.shoesListCommand(),
		c.shoesAddCommand(),
		c.shoesImportCommand(),
		c.shoesDiscoverCommand(),
	)
	return cmd
}

func (c *cli) shoesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tracked shoes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close(c.logger)

			shoes, err := a.shoes.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list shoes: %w", err)
			}
			renderShoes(cmd.OutOrStdout(), shoes)
			return nil
		},
	}
}

func (c *cli) shoesAddCommand() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "add BRAND MODEL",
		Short: "Add a shoe to track",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close(c.logger)

			id, created, err := a.shoes.Add(cmd.Context(), args[0], args[1], category)
			if err != nil {
				return fmt.Errorf("add shoe: %w", err)
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "added %s %s (%s)\n", args[0], args[1], id)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "already tracked: %s %s (%s)\n", args[0], args[1], id)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", domain.DefaultCategory, "shoe category")
	return cmd
}

func (c *cli) shoesImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Import the predefined list of popular models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close(c.logger)

			stats := a.shoes.ImportPredefined(cmd.Context())
			renderImport(cmd.OutOrStdout(), stats)
			return nil
		},
	}
}

func (c *cli) shoesDiscoverCommand() *cobra.Command {
	var (
		limit int
		save  bool
	)

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Find trending shoes through web search",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close(c.logger)

			refs, stats, err := a.shoes.Discover(cmd.Context(), limit, save)
			if err != nil {
				return fmt.Errorf("discover shoes: %w", err)
			}
			out := cmd.OutOrStdout()
			renderRefs(out, refs)
			if save {
				renderImport(out, stats)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 30, "maximum number of shoes to return")
	cmd.Flags().BoolVar(&save, "save", false, "add discovered shoes to the database")
	return cmd
}

func (c *cli) collectCommand() *cobra.Command {
	var (
		providers  []string
		maxResults int
	)

	cmd := &cobra.Command{
		Use:   "collect SHOE_ID",
		Short: "Collect sources for one shoe",
		Long: "Collect sources for one shoe. Providers: youtube, twitter, reddit, " +
			"twitter-api, and social (twitter and reddit).",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext(cmd.Context(), c.logger)
			defer cancel()

			a, err := c.newApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close(c.logger)

			stats, err := a.collect.CollectShoe(ctx, args[0], providers, maxResults)
			if err != nil {
				return fmt.Errorf("collect: %w", err)
			}
			renderCollectStats(cmd.OutOrStdout(), stats)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&providers, "sources", "s", nil, "providers to query (default from config)")
	cmd.Flags().IntVarP(&maxResults, "max", "n", 0, "maximum results per provider (default from config)")
	return cmd
}

// batchRun adapts one collect-all invocation to scheduler.Runner.
type batchRun struct {
	svc        *service.CollectService
	limit      int
	providers  []string
	maxResults int
	render     func([]*domain.CollectStats)
}

func (b *batchRun) Run(ctx context.Context) error {
	all, err := b.svc.CollectAll(ctx, b.limit, b.providers, b.maxResults)
	b.render(all)
	return err
}

func (c *cli) collectAllCommand() *cobra.Command {
	var (
		limit      int
		providers  []string
		maxResults int
		every      time.Duration
		schedule   string
		daemon     bool
	)

	cmd := &cobra.Command{
		Use:   "collect-all",
		Short: "Collect sources for the newest shoes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext(cmd.Context(), c.logger)
			defer cancel()

			a, err := c.newApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close(c.logger)

			if daemon && every <= 0 {
				every = c.cfg.Collect.Interval
			}

			out := cmd.OutOrStdout()
			run := &batchRun{
				svc:        a.collect,
				limit:      limit,
				providers:  providers,
				maxResults: maxResults,
				render: func(all []*domain.CollectStats) {
					for _, stats := range all {
						renderCollectStats(out, stats)
					}
				},
			}

			var sched interface{ Start(context.Context) error }
			switch {
			case schedule != "":
				if sched, err = scheduler.NewCron(run, schedule, c.cfg.Collect.RunTimeout, c.logger); err != nil {
					return err
				}
			case every > 0:
				sched = scheduler.NewScheduler(run, every, c.cfg.Collect.RunTimeout, c.logger)
			default:
				return run.Run(ctx)
			}

			if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "number of shoes to process (default from config)")
	cmd.Flags().StringSliceVarP(&providers, "sources", "s", nil, "providers to query (default from config)")
	cmd.Flags().IntVarP(&maxResults, "max", "n", 0, "maximum results per provider (default from config)")
	cmd.Flags().DurationVar(&every, "every", 0, "repeat the batch at this interval until interrupted")
	cmd.Flags().StringVar(&schedule, "cron", "", "repeat the batch on a cron expression, e.g. \"0 3 * * *\"")
	cmd.Flags().BoolVar(&daemon, "daemon", false, "repeat the batch every collect.interval until interrupted")
	cmd.MarkFlagsMutuallyExclusive("every", "cron")
	cmd.MarkFlagsMutuallyExclusive("daemon", "cron")
	return cmd
}

func (c *cli) sourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sources SHOE_ID",
		Short: "List published sources for a shoe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close(c.logger)

			sources, err := a.collect.ListSources(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("list sources: %w", err)
			}
			renderSources(cmd.OutOrStdout(), sources)
			return nil
		},
	}
}
