package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/microlearn/internal/app"
	"github.com/abhisek/microlearn/internal/lessons"
	"github.com/abhisek/microlearn/internal/llm"
	"github.com/abhisek/microlearn/internal/logging"
	"github.com/abhisek/microlearn/internal/store"
)

// deps are the long-lived collaborators shared by the TUI and the
// generate command.
type deps struct {
	logger  *zap.Logger
	store   *store.Store
	service *lessons.Service
	llmCfg  llm.Config
	closers []func()
}

func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

// buildDeps sets up logging, the optional usage log, the LLM provider and
// the lesson service. Callers must Close the result.
func buildDeps(cmd *cobra.Command) (*deps, error) {
	d := &deps{}

	logPath, _ := cmd.Flags().GetString("log-file")
	if logPath == "" {
		logPath = logging.DefaultPath()
	}
	level, _ := cmd.Flags().GetString("log-level")
	logger, flush, err := logging.New(logging.Options{Path: logPath, Level: level})
	if err != nil {
		// An unwritable log file must not stop the app.
		logger, flush = zap.NewNop(), func() {}
		cmd.PrintErrln("logging disabled:", err)
	}
	d.logger = logger
	d.closers = append(d.closers, flush)

	var repo store.EventRepo
	if noRecord, _ := cmd.Flags().GetBool("no-record"); !noRecord {
		st, err := openStore(cmd)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("open usage log: %w", err)
		}
		d.store = st
		d.closers = append(d.closers, func() { _ = st.Close() })
		repo = st.EventRepo()
	}

	provider, cfg, err := llm.NewProviderFromEnv(cmd.Context(), repo, logger)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("configure LLM provider: %w", err)
	}
	d.llmCfg = cfg
	logger.Info("llm provider configured",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model()),
		logging.String("api_key", cfg.APIKey()),
	)

	lessonCfg, err := lessons.ConfigFromEnv()
	if err != nil {
		d.Close()
		return nil, err
	}

	opts := []lessons.Option{lessons.WithLogger(logger)}
	if repo != nil {
		opts = append(opts, lessons.WithEventRepo(repo))
	}
	d.service = lessons.NewService(provider, lessonCfg, opts...)
	return d, nil
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := buildDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	skip, _ := cmd.Flags().GetBool("no-splash")
	return app.Run(cmd.Context(), app.Options{
		Generator:  d.service,
		Logger:     d.logger,
		SkipSplash: skip,
	})
}
