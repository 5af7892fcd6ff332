package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"recipefinder/output"
)

const name = "recipefinder"

type rootOptions struct {
	output   string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           name,
		Short:         "recipefinder - find recipes from what is in your pantry",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if output.Format(opts.output).IsUnknown() {
				return fmt.Errorf("unknown output format %q (want json, yaml or table)", opts.output)
			}
			var level slog.Level
			if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
				return fmt.Errorf("invalid log level %q: %w", opts.logLevel, err)
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", string(output.FormatTable), "output format (json, yaml, table)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newServeCmd(),
		newSearchCmd(opts),
		newPantryCmd(opts),
		newRandomCmd(opts),
		newShowCmd(opts),
		newCategoriesCmd(opts),
		newAreasCmd(opts),
		newShareCmd(),
	)
	return cmd
}

func (o *rootOptions) writer(cmd *cobra.Command) *output.Writer {
	return output.NewWriter(output.Format(o.output), cmd.OutOrStdout())
}
