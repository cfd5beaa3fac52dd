package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/codeshot"
	"github.com/gogpu/codeshot/gist"
	"github.com/gogpu/codeshot/internal/bot"
	"github.com/gogpu/codeshot/internal/config"
	"github.com/gogpu/codeshot/internal/server"
	"github.com/gogpu/codeshot/internal/telegram"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server, the Telegram bot and the gist sweeper",
		Long: `Run the HTTP image server and the gist sweeper. The Telegram bot is started
as well when a token is configured (telegram.token or TELEGRAM_BOT_TOKEN).`,
		Example: `  codeshot serve --config codeshot.toml
  TELEGRAM_BOT_TOKEN=123:abc codeshot serve --addr :9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.HTTP.Addr = addr
			}
			if !flags.verbose {
				level := parseLevel(cfg.Log.Level)
				logger := newLogger(os.Stderr, level)
				installLogger(logger)
				cmd.SetContext(withLogger(cmd.Context(), logger))
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides http.addr)")
	return cmd
}

func runServe(ctx context.Context, cfg config.Config) error {
	logger := loggerFromContext(ctx)

	ropts, err := rendererOptions(cfg.Render)
	if err != nil {
		return err
	}
	pool, err := codeshot.NewPool(cfg.Render.Workers, ropts...)
	if err != nil {
		return err
	}
	defer pool.Close()

	store, err := gist.Open(ctx, storeConfig(cfg.Store))
	if err != nil {
		return fmt.Errorf("open gist store: %w", err)
	}
	defer store.Close()

	g, ctx := errgroup.WithContext(ctx)

	srv := server.New(pool, store, server.Config{
		MaxSourceBytes: cfg.Render.MaxSourceBytes,
		RequestTimeout: cfg.HTTP.RequestTimeout,
		PublicURL:      cfg.HTTP.PublicURL,
		Logger:         codeshot.Component("server"),
	})
	g.Go(func() error {
		logger.Info("http server listening", "addr", cfg.HTTP.Addr, "public_url", cfg.HTTP.PublicURL)
		return server.ListenAndServe(ctx, cfg.HTTP.Addr, srv)
	})

	sweeper := &gist.Sweeper{
		Store:     store,
		Retention: cfg.Store.Retention,
		Interval:  cfg.Store.SweepInterval,
		Logger:    codeshot.Component("gist"),
	}
	g.Go(func() error { return sweeper.Run(ctx) })

	if cfg.BotEnabled() {
		api := telegram.NewClient(cfg.Telegram.Token, telegram.WithBaseURL(cfg.Telegram.APIURL))
		b := bot.New(api, pool, store, bot.Config{
			PublicURL:      cfg.HTTP.PublicURL,
			MaxSourceBytes: cfg.Render.MaxSourceBytes,
			PollTimeout:    cfg.Telegram.PollTimeout,
			Concurrency:    cfg.Render.Workers,
			Logger:         codeshot.Component("bot"),
		})
		g.Go(func() error {
			logger.Info("telegram bot polling", "workers", cfg.Render.Workers)
			return b.Run(ctx)
		})
	} else {
		logger.Warn("telegram bot disabled: no token configured")
	}

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("shut down")
	return nil
}
