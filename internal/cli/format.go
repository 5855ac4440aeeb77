package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ngrash/go-moment/locale"
	"github.com/ngrash/go-moment/timefmt"
)

func localeNames(tag string) *locale.Names {
	return locale.ForString(tag)
}

// NewFormatCommand renders a millisecond timestamp in a zone.
func NewFormatCommand(opts *RootOptions) *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "format <unix-ms>",
		Short: "Format a millisecond timestamp in the default zone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("timestamp: %w", err)
			}
			env, err := opts.Env()
			if err != nil {
				return err
			}
			m, err := env.New(ms, opts.Zone)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), m.Format(pattern))
			return nil
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", timefmt.DefaultPattern, "format pattern")
	return cmd
}
