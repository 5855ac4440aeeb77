package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewConvertCommand re-interprets a timestamp in another zone.
func NewConvertCommand(opts *RootOptions) *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "convert <unix-ms> <from-zone> <to-zone>",
		Short: "Show a timestamp's wall clock in two zones",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("timestamp: %w", err)
			}
			env, err := opts.Env()
			if err != nil {
				return err
			}
			from, err := env.New(ms, args[1])
			if err != nil {
				return err
			}
			to, err := from.CloneTo(args[2])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", from.Zone(), from.Format(pattern))
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", to.Zone(), to.Format(pattern))
			return nil
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", "", "format pattern (default: the standard pattern)")
	return cmd
}
