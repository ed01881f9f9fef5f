package main

import (
	"context"
	"fmt"
	"log/slog"

	"aventra/internal/api"
	"aventra/internal/board"
	"aventra/internal/config"
	"aventra/internal/store"
)

// withState opens the local client storage for the duration of fn.
func withState(cfg *config.Config, fn func(*store.Store) error) error {
	st, err := store.Open(cfg.StatePath)
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	defer st.Close()
	return fn(st)
}

// resolveUserID prefers the --user flag over the stored identity.
func resolveUserID(ctx context.Context, st *store.Store, flags *globalFlags) (int64, error) {
	if flags.userID > 0 {
		return flags.userID, nil
	}
	if flags.userID < 0 {
		return 0, fmt.Errorf("invalid --user %d", flags.userID)
	}
	return st.UserID(ctx)
}

func newBoard(cfg *config.Config, userID int64) (*board.Reconciler, error) {
	strategy, err := board.ParseStrategy(cfg.SyncStrategy)
	if err != nil {
		return nil, err
	}
	logger := slog.Default()
	client := api.NewClient(cfg.APIURL).WithLogger(logger)
	logger.Debug("board client", "api_url", client.BaseURL(), "user_id", userID, "strategy", strategy)
	return board.New(client, client, board.NewCache(), board.Options{
		UserID:   userID,
		Strategy: strategy,
		Notifier: board.LogNotifier{Logger: logger},
		Logger:   logger,
	}), nil
}

// boardLoad says how much a command depends on the fetched task list.
type boardLoad int

const (
	// loadRequired fails the command when the board cannot be fetched.
	loadRequired boardLoad = iota
	// loadOptional uses the board for labels and merges only.
	loadOptional
	// loadSkip issues the mutation without fetching the board.
	loadSkip
)

// withBoard builds a board for fn, loading it according to mode, and
// unmounts it afterwards.
func withBoard(ctx context.Context, cfg *config.Config, flags *globalFlags, mode boardLoad, fn func(*board.Reconciler) error) error {
	var userID int64
	err := withState(cfg, func(st *store.Store) error {
		id, err := resolveUserID(ctx, st, flags)
		userID = id
		return err
	})
	if err != nil {
		return err
	}

	b, err := newBoard(cfg, userID)
	if err != nil {
		return err
	}
	defer b.Unmount()

	switch mode {
	case loadRequired:
		if err := b.Load(ctx); err != nil {
			return err
		}
	case loadOptional:
		if err := b.Load(ctx); err != nil {
			slog.Debug("continuing without board", "error", err)
		}
	}
	return fn(b)
}
