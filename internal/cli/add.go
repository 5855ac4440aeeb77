package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ngrash/go-moment/moment"
)

// NewAddCommand shifts a timestamp by a number of units.
func NewAddCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <unix-ms> <value> <unit>",
		Short: "Shift a timestamp by n minutes, hours, days, weeks, months or years",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("timestamp: %w", err)
			}
			value, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("value: %w", err)
			}
			env, err := opts.Env()
			if err != nil {
				return err
			}
			m, err := env.New(ms, opts.Zone)
			if err != nil {
				return err
			}
			if _, err := m.Add(value, moment.Unit(args[2])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d  %s\n", m.UnixMilli(), m)
			return nil
		},
	}
	return cmd
}
