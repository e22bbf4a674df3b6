package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/webdoc/internal/eventstore"
)

// HistoryCmd implements 'webdoc history'.
type HistoryCmd struct {
	Limit int    `short:"n" help:"Number of runs to show" default:"10"`
	Run   string `name:"run" help:"Show the events of a single run"`
	Path  string `help:"History database (overrides history.path)" type:"path"`
	JSON  bool   `name:"json" help:"Print as JSON"`
}

func (h *HistoryCmd) Run(global *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config, false)
	if err != nil {
		return err
	}
	root.configureLogging(cfg)
	path := cfg.History.Path
	if h.Path != "" {
		path = h.Path
	}

	store, err := eventstore.NewSQLiteStore(path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	if h.Run != "" {
		return h.printRun(ctx, global, store)
	}

	projection := eventstore.NewRunHistoryProjection(store, h.Limit)
	if err := projection.Rebuild(ctx); err != nil {
		return err
	}
	runs := projection.GetHistory()
	if h.JSON {
		return writeJSON(global.out(), runs)
	}
	_, err = fmt.Fprintln(global.out(), renderHistory(runs))
	return err
}

type eventView struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Payload   any    `json:"payload"`
}

func (h *HistoryCmd) printRun(ctx context.Context, global *Global, store eventstore.Store) error {
	events, err := store.GetByRunID(ctx, h.Run)
	if err != nil {
		return err
	}
	if !h.JSON {
		for _, ev := range events {
			_, _ = fmt.Fprintf(global.out(), "%s  %-20s %s\n",
				ev.Timestamp().Local().Format("15:04:05.000"), ev.Type(), ev.Payload())
		}
		return nil
	}
	views := make([]eventView, 0, len(events))
	for _, ev := range events {
		views = append(views, eventView{
			Type:      ev.Type(),
			Timestamp: ev.Timestamp().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
			Payload:   rawJSON(ev.Payload()),
		})
	}
	return writeJSON(global.out(), views)
}
