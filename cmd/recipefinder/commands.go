package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"recipefinder"
	"recipefinder/export"
	"recipefinder/slack"
)

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var (
		kind       string
		others     string
		exportPath string
	)
	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search recipes by ingredient, category, area or name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), "search")
			if err != nil {
				return err
			}
			defer a.Close()

			filter := recipefinder.ParseFilter(kind, strings.Join(args, " "), others)
			res, err := a.finder.Search(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if exportPath != "" {
				if err := export.WriteFile(exportPath, res.Recipes); err != nil {
					return fmt.Errorf("export: %w", err)
				}
			}
			return opts.writer(cmd).Serialize(res)
		},
	}
	cmd.Flags().StringVarP(&kind, "type", "t", recipefinder.KindIngredient, "search type (ingredient, category, area, name)")
	cmd.Flags().StringVar(&others, "others", "", "comma-separated ingredients every result must also contain")
	cmd.Flags().StringVar(&exportPath, "export", "", "also write results to a .csv or .xlsx file")
	return cmd
}

func newPantryCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pantry",
		Short: "Manage the pantry and search with it",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List pantry items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), "pantry")
			if err != nil {
				return err
			}
			defer a.Close()
			return opts.writer(cmd).Serialize(a.pantry.Items())
		},
	}

	addCmd := &cobra.Command{
		Use:   "add <item>...",
		Short: "Add items to the pantry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), "pantry")
			if err != nil {
				return err
			}
			defer a.Close()
			for _, item := range args {
				if !a.pantry.Add(cmd.Context(), item) {
					fmt.Fprintf(cmd.ErrOrStderr(), "skipped %q (empty or already in pantry)\n", item)
				}
			}
			return opts.writer(cmd).Serialize(a.pantry.Items())
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove <item>...",
		Short: "Remove items from the pantry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), "pantry")
			if err != nil {
				return err
			}
			defer a.Close()
			for _, item := range args {
				if !a.pantry.Remove(cmd.Context(), item) {
					fmt.Fprintf(cmd.ErrOrStderr(), "%q is not in the pantry\n", item)
				}
			}
			return opts.writer(cmd).Serialize(a.pantry.Items())
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the pantry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), "pantry")
			if err != nil {
				return err
			}
			defer a.Close()
			a.pantry.Clear(cmd.Context())
			return opts.writer(cmd).Serialize(a.pantry.Items())
		},
	}

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Find recipes using any pantry item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), "pantry")
			if err != nil {
				return err
			}
			defer a.Close()
			res, err := a.finder.SearchPantry(cmd.Context())
			if err != nil {
				return err
			}
			return opts.writer(cmd).Serialize(res)
		},
	}

	cmd.AddCommand(listCmd, addCmd, removeCmd, clearCmd, searchCmd)
	return cmd
}

func newRandomCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "random",
		Short: "Show a random recipe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), "random")
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := a.finder.Random(cmd.Context())
			if err != nil {
				return err
			}
			page, err := a.pages.Load(cmd.Context(), id)
			if err != nil {
				return err
			}
			return opts.writer(cmd).Serialize(page)
		},
	}
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	var debug bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a recipe with suggestions from its area and category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), "detail")
			if err != nil {
				return err
			}
			defer a.Close()

			page, err := a.pages.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if debug {
				recipefinder.Fdump(cmd.ErrOrStderr(), page)
			}
			return opts.writer(cmd).Serialize(page)
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "dump the decoded page to stderr")
	return cmd
}

func newCategoriesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List recipe categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), "labels")
			if err != nil {
				return err
			}
			defer a.Close()
			list, err := a.source.Categories(cmd.Context())
			if err != nil {
				return err
			}
			return opts.writer(cmd).Serialize(list)
		},
	}
}

func newAreasCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "areas",
		Short: "List cuisines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), "labels")
			if err != nil {
				return err
			}
			defer a.Close()
			list, err := a.source.Areas(cmd.Context())
			if err != nil {
				return err
			}
			return opts.writer(cmd).Serialize(list)
		},
	}
}

func newShareCmd() *cobra.Command {
	var (
		channel string
		baseURL string
	)
	cmd := &cobra.Command{
		Use:   "share <id>",
		Short: "Post a recipe to Slack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), "share")
			if err != nil {
				return err
			}
			defer a.Close()

			if a.cfg.Slack.WebhookURL == "" {
				return fmt.Errorf("SLACK_WEBHOOK_URL must be set to share recipes")
			}
			if channel == "" {
				channel = a.cfg.Slack.Channel
			}

			page, err := a.pages.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			link := ""
			if baseURL != "" {
				link = strings.TrimSuffix(baseURL, "/") + "/recipe/" + page.Recipe.ID
			}

			client := slack.NewClient(a.cfg.Slack.WebhookURL, http.DefaultClient)
			if err := client.ShareRecipe(cmd.Context(), channel, *page.Recipe, link); err != nil {
				return fmt.Errorf("failed to post recipe to Slack: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "shared %q to %s\n", page.Recipe.Name, channel)
			return nil
		},
	}
	cmd.Flags().StringVar(&channel, "channel", "", "Slack channel (default SLACK_CHANNEL)")
	cmd.Flags().StringVar(&baseURL, "link-base", "", "base URL of a running server to link the recipe page")
	return cmd
}
