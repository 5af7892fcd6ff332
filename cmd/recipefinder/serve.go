package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"recipefinder/server"
	"recipefinder/tools"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the recipe finder web pages and tool API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, "server")
			if err != nil {
				return err
			}
			defer a.Close()

			categories, areas := dropdowns(ctx, a)

			s, err := server.NewServer(a.cfg.Server, server.Deps{
				Pantry:     a.pantry,
				Finder:     a.finder,
				Pages:      a.pages,
				Tools:      tools.NewRegistry(a.pantry, a.finder, a.pages),
				Categories: categories,
				Areas:      areas,
			})
			if err != nil {
				return err
			}
			return s.Start(ctx)
		},
	}
}

// dropdowns fetches the live category and area lists. Failures fall back to
// the server's built-in lists.
func dropdowns(ctx context.Context, a *app) ([]string, []string) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	categories, err := a.source.Categories(ctx)
	if err != nil {
		slog.Warn("SETUP: Using default categories", "error", err)
		categories = nil
	}
	areas, err := a.source.Areas(ctx)
	if err != nil {
		slog.Warn("SETUP: Using default areas", "error", err)
		areas = nil
	}
	return categories, areas
}
