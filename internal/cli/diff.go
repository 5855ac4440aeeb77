package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ngrash/go-moment/moment"
)

// NewDiffCommand prints the difference of two timestamps in a unit.
func NewDiffCommand(opts *RootOptions) *cobra.Command {
	var asFloat bool

	cmd := &cobra.Command{
		Use:   "diff <unix-ms-a> <unix-ms-b> <unit>",
		Short: "Difference a minus b expressed in a unit",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("timestamp a: %w", err)
			}
			b, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("timestamp b: %w", err)
			}
			env, err := opts.Env()
			if err != nil {
				return err
			}
			ma, err := env.New(a, opts.Zone)
			if err != nil {
				return err
			}
			mb, err := env.New(b, opts.Zone)
			if err != nil {
				return err
			}
			d, err := ma.Diff(mb, moment.Unit(args[2]), asFloat)
			if err != nil {
				return err
			}
			if asFloat {
				fmt.Fprintf(cmd.OutOrStdout(), "%g\n", d)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\n", int64(d))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asFloat, "float", false, "include the fractional remainder")
	return cmd
}
