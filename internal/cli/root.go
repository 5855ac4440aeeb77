// Package cli implements the tzmoment command line tool.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/ngrash/go-moment/moment"
	"github.com/ngrash/go-moment/tzcat"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	CatalogPath string // optional YAML catalog overriding the builtin one
	Zone        string // default timezone id
	Locale      string // BCP 47 tag for month names
}

// Env builds the moment environment from the global flags.
func (o *RootOptions) Env() (*moment.Env, error) {
	env := moment.Default()
	if o.CatalogPath != "" {
		c, err := tzcat.LoadFile(o.CatalogPath)
		if err != nil {
			return nil, err
		}
		env.Catalog = c
	}
	if o.Locale != "" {
		env.Names = localeNames(o.Locale)
	}
	return env, nil
}

// NewRootCommand creates the root command for the tzmoment CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tzmoment",
		Short: "Inspect and convert timezone-aware instants",
		Long:  "tzmoment formats, parses, shifts and compares minute-resolution instants against a two-offset timezone catalog.",
	}

	cmd.PersistentFlags().StringVar(&opts.CatalogPath, "catalog", "", "YAML timezone catalog file (default: builtin)")
	cmd.PersistentFlags().StringVar(&opts.Zone, "zone", "UTC", "default timezone id")
	cmd.PersistentFlags().StringVar(&opts.Locale, "locale", "", "BCP 47 language tag for month names")

	cmd.AddCommand(NewFormatCommand(opts))
	cmd.AddCommand(NewParseCommand(opts))
	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewDiffCommand(opts))
	cmd.AddCommand(NewZonesCommand(opts))

	return cmd
}
