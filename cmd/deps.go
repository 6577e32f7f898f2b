package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atulsharma648-byte/ASMan/internal/config"
	"github.com/atulsharma648-byte/ASMan/internal/lessons"
	"github.com/atulsharma648-byte/ASMan/internal/llm"
	"github.com/atulsharma648-byte/ASMan/internal/logger"
	"github.com/atulsharma648-byte/ASMan/internal/store"
)

// deps is everything a command needs to run the lesson pipeline.
type deps struct {
	cfg     config.Config
	log     *logger.Logger
	store   *store.Store
	service *lessons.Service
	model   string
}

// buildDeps loads configuration, opens the in-memory event log and builds
// the pipeline. A missing credential is not an error: the pipeline then
// serves fallback lessons only. Quiet drops logs unless --log-file is set.
func buildDeps(cmd *cobra.Command, quiet bool) (*deps, error) {
	cfg := config.Load()
	if p, _ := cmd.Flags().GetString("provider"); p != "" {
		cfg.LLM.Provider = p
	}

	log, err := newLogger(cmd, cfg.LogMode, quiet)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(store.MemoryDSN)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	repo := st.EventRepo()

	d := &deps{cfg: cfg, log: log, store: st}

	provider, err := llm.NewProvider(cmd.Context(), cfg.LLM, repo, log)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		log.Info("no LLM credential found, serving fallback lessons")
	case err != nil:
		log.Warn("LLM provider unavailable, serving fallback lessons", "error", err)
		provider = nil
	default:
		d.model = provider.ModelID()
		log.Info("LLM provider ready", "provider", cfg.LLM.Provider, "model", d.model)
	}

	d.service = lessons.NewService(lessons.NewClient(provider, cfg.Lessons), repo, log)
	return d, nil
}

func newLogger(cmd *cobra.Command, mode string, quiet bool) (*logger.Logger, error) {
	var (
		log *logger.Logger
		err error
	)
	path, _ := cmd.Flags().GetString("log-file")
	switch {
	case path != "":
		log, err = logger.NewFile(mode, path)
	case quiet:
		return logger.Nop(), nil
	default:
		log, err = logger.New(mode)
	}
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

func (d *deps) Close() {
	if err := d.store.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "close event log:", err)
	}
	d.log.Sync()
}
