package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ngrash/go-moment/timefmt"
)

// NewParseCommand parses an input string and prints the serialized form.
func NewParseCommand(opts *RootOptions) *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "parse <input>",
		Short: "Parse a string against a pattern and print {timestamp, timezone}",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.Env()
			if err != nil {
				return err
			}
			m, err := env.Parse(args[0], pattern, opts.Zone)
			if err != nil {
				return err
			}
			out, err := json.Marshal(m.Serialized())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", timefmt.DefaultPattern, "format pattern")
	return cmd
}
